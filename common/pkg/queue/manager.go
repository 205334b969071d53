/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package queue

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/embedding"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/vision"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

// idleSleep is how long a worker waits before polling again when no task
// is pending.
const idleSleep = 500 * time.Millisecond

// Manager drives the analysis workers over the task table. Claims go
// through a SKIP LOCKED update, so several processes can run workers
// against the same database without stepping on each other.
type Manager struct {
	dbClient   dbclient.Interface
	storage    storage.Interface
	vision     vision.Interface
	embedding  embedding.Interface
	httpClient httpclient.Interface
	tags       tags.Interface

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	running bool
}

// Status is the admin view of the queue.
type Status struct {
	Running bool           `json:"running"`
	Workers int            `json:"workers"`
	Counts  map[string]int `json:"counts"`
}

var (
	managerOnce    sync.Once
	defaultManager *Manager
)

// NewManager returns the process-wide queue manager. The database client
// must be initialized first.
func NewManager() *Manager {
	managerOnce.Do(func() {
		defaultManager = newManager(dbclient.NewClient(), storage.NewManager(),
			vision.NewClient(), embedding.NewClient(), httpclient.NewHttpClient())
	})
	return defaultManager
}

func newManager(db dbclient.Interface, store storage.Interface, v vision.Interface,
	e embedding.Interface, hc httpclient.Interface) *Manager {
	return &Manager{
		dbClient:   db,
		storage:    store,
		vision:     v,
		embedding:  e,
		httpClient: hc,
		tags:       tags.New(db),
	}
}

// Start recovers stuck tasks and launches the worker pool. Workers run on
// a background context so the caller's request context cannot kill them.
// When a previous pool is still draining, Start waits for it first.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}
	if m.wg != nil {
		m.wg.Wait()
	}

	olderThan := time.Duration(commonconfig.GetQueueStuckMinutes()) * time.Minute
	reset, err := m.dbClient.ResetStuckTasks(ctx, dbclient.QueueTaskTypes(), olderThan)
	if err != nil {
		return err
	}
	if reset > 0 {
		klog.Infof("reset %d stuck tasks to pending", reset)
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.wg = &sync.WaitGroup{}
	workers := commonconfig.GetQueueMaxWorkers()
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			wait.UntilWithContext(workerCtx, m.runOnce, idleSleep)
		}()
	}
	m.running = true
	klog.Infof("queue started with %d workers", workers)
	return nil
}

// Stop halts claiming and returns immediately; tasks already claimed run
// to completion on their own detached contexts.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.cancel()
	m.running = false
	klog.Info("queue stopping, in-flight tasks will finish")
}

// Wait blocks until all worker goroutines have exited. Used on process
// shutdown after Stop.
func (m *Manager) Wait() {
	m.mu.Lock()
	wg := m.wg
	m.mu.Unlock()
	if wg != nil {
		wg.Wait()
	}
}

// IsRunning reports whether the worker pool is accepting new tasks.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// GetStatus returns the running flag, worker count and per-status task
// counts.
func (m *Manager) GetStatus(ctx context.Context) (*Status, error) {
	counts, err := m.dbClient.CountTasksByStatus(ctx, dbclient.QueueTaskTypes())
	if err != nil {
		return nil, err
	}
	status := &Status{Counts: counts}
	m.mu.Lock()
	status.Running = m.running
	m.mu.Unlock()
	if status.Running {
		status.Workers = commonconfig.GetQueueMaxWorkers()
	}
	return status, nil
}

// runOnce drains pending tasks until the queue is empty, then returns so
// the surrounding wait loop applies the idle sleep.
func (m *Manager) runOnce(ctx context.Context) {
	for {
		task, err := m.dbClient.ClaimNextTask(ctx, dbclient.QueueTaskTypes())
		if err != nil {
			if ctx.Err() == nil {
				klog.ErrorS(err, "failed to claim next task")
			}
			return
		}
		if task == nil {
			return
		}
		m.process(task)

		interval := time.Duration(commonconfig.GetQueueBatchIntervalSecond()) * time.Second
		if interval > 0 && !sleepCtx(ctx, interval) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// EnqueueAnalyze inserts one analyze task per image, skipping images that
// already sit in a live analyze or rebuild task. Returns how many tasks
// were added.
func (m *Manager) EnqueueAnalyze(ctx context.Context, imageIds []int64, callbackURL string) (int, error) {
	return m.enqueue(ctx, common.TaskTypeAnalyzeImage, imageIds, callbackURL)
}

// EnqueueRebuild inserts rebuild_vector tasks with the same dedup rule as
// EnqueueAnalyze.
func (m *Manager) EnqueueRebuild(ctx context.Context, imageIds []int64, callbackURL string) (int, error) {
	return m.enqueue(ctx, common.TaskTypeRebuildVector, imageIds, callbackURL)
}

func (m *Manager) enqueue(ctx context.Context, taskType string, imageIds []int64, callbackURL string) (int, error) {
	if len(imageIds) == 0 {
		return 0, nil
	}
	busy, err := m.dbClient.FilterImageIdsWithActiveAnalyze(ctx, imageIds)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, imageId := range imageIds {
		if busy[imageId] {
			continue
		}
		busy[imageId] = true
		payload, err := json.Marshal(&analyzePayload{ImageId: imageId, CallbackURL: callbackURL})
		if err != nil {
			return added, err
		}
		task := &dbclient.Task{
			Id:      uuid.NewString(),
			Type:    taskType,
			Payload: types.JSONText(payload),
		}
		if err = m.dbClient.InsertTask(ctx, task); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// ClearPending deletes queued tasks that have not started yet.
func (m *Manager) ClearPending(ctx context.Context) (int64, error) {
	return m.dbClient.ClearPendingTasks(ctx, dbclient.QueueTaskTypes())
}

// ClearFinished deletes completed, failed and cancelled task rows.
func (m *Manager) ClearFinished(ctx context.Context) (int64, error) {
	return m.dbClient.ClearFinishedTasks(ctx, dbclient.QueueTaskTypes())
}

// RetryFailed flips failed tasks back to pending.
func (m *Manager) RetryFailed(ctx context.Context) (int64, error) {
	return m.dbClient.RetryFailedTasks(ctx, dbclient.QueueTaskTypes())
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
