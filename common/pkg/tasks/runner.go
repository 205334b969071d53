/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbmodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	notifymodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
)

const (
	// checkpointEvery is how many dispatched items pass between progress
	// writes and cancellation checks.
	checkpointEvery = 100
	// checkpointMaxGap forces a checkpoint when items are slow, so the row
	// never looks stuck to other replicas while work is advancing.
	checkpointMaxGap = time.Minute
	// collectPageSize is the page size used when gathering image ids from
	// the location table.
	collectPageSize = 1000
)

// errTaskCancelled aborts a run when the task row was flipped to cancelled.
var errTaskCancelled = errors.New("task cancelled")

// errSkipped marks an item that needed no work, counted apart from real
// successes in the progress record.
var errSkipped = errors.New("skipped")

// Runner executes storage tasks: endpoint-to-endpoint syncs, unlinks, hard
// deletes and backup sweeps. Tasks are regular task rows claimed with SKIP
// LOCKED, so any replica may pick up work created by another. Shutting down
// mid-run leaves the row in processing; the stuck-task reset on the next
// Start returns it to pending.
type Runner struct {
	dbClient dbclient.Interface
	storage  storage.Interface

	mu      sync.Mutex
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	cron    *cron.Cron
	backup  *BackupController
	started bool
}

var (
	runnerOnce    sync.Once
	defaultRunner *Runner
)

// NewRunner returns the shared storage task runner.
func NewRunner() *Runner {
	runnerOnce.Do(func() {
		defaultRunner = newRunner(dbclient.NewClient(), storage.NewManager())
	})
	return defaultRunner
}

func newRunner(db dbclient.Interface, store storage.Interface) *Runner {
	return &Runner{dbClient: db, storage: store}
}

// Start recovers tasks a previous run left in processing, resumes pending
// ones, and launches the backup controller and the maintenance cron.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}

	olderThan := time.Duration(commonconfig.GetQueueStuckMinutes()) * time.Minute
	reset, err := r.dbClient.ResetStuckTasks(ctx, dbclient.StorageTaskTypes(), olderThan)
	if err != nil {
		return err
	}
	if reset > 0 {
		klog.Infof("reset %d stuck storage tasks to pending", reset)
	}

	r.baseCtx, r.cancel = context.WithCancel(context.Background())
	r.backup = newBackupController(r.dbClient, r.storage)
	r.backup.Run(r.baseCtx)
	r.startCron()
	r.started = true

	// Resume whatever is pending, including rows recovered above.
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.dispatchPending()
	}()

	klog.Info("storage task runner started")
	return nil
}

// Stop cancels running tasks and stops the cron. Interrupted task rows stay
// in processing and are recovered by the next Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	if r.cron != nil {
		r.cron.Stop()
		r.cron = nil
	}
	r.cancel()
	r.started = false
	klog.Info("storage task runner stopping")
}

// Wait blocks until every in-flight task goroutine has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// TriggerBackup schedules one image for replication to the backup endpoint.
// A no-op when the runner is not started.
func (r *Runner) TriggerBackup(imageId int64) {
	r.mu.Lock()
	backup := r.backup
	started := r.started
	r.mu.Unlock()
	if !started || backup == nil {
		return
	}
	backup.Trigger(imageId)
}

// CancelTask requests cancellation of a queued or running storage task.
// Running tasks notice the flip at their next checkpoint.
func (r *Runner) CancelTask(ctx context.Context, taskId string) (bool, error) {
	return r.dbClient.CancelTask(ctx, taskId)
}

// dispatchPending claims pending storage tasks until none are left and runs
// each in its own goroutine. Safe to call from several places at once: the
// SKIP LOCKED claim hands every row to exactly one caller.
func (r *Runner) dispatchPending() {
	r.mu.Lock()
	ctx := r.baseCtx
	started := r.started
	r.mu.Unlock()
	if !started {
		return
	}
	for {
		task, err := r.dbClient.ClaimNextTask(ctx, dbclient.StorageTaskTypes())
		if err != nil {
			if ctx.Err() == nil {
				klog.ErrorS(err, "failed to claim storage task")
			}
			return
		}
		if task == nil {
			return
		}
		r.wg.Add(1)
		go func(task *dbclient.Task) {
			defer r.wg.Done()
			r.execute(ctx, task)
		}(task)
	}
}

func (r *Runner) execute(ctx context.Context, task *dbclient.Task) {
	klog.Infof("running storage task %s (%s)", task.Id, task.Type)
	var progress *progressTracker
	var err error
	switch task.Type {
	case common.TaskTypeStorageSync:
		progress, err = r.runSync(ctx, task)
	case common.TaskTypeStorageUnlink:
		progress, err = r.runUnlink(ctx, task)
	case common.TaskTypeStorageDelete:
		progress, err = r.runHardDelete(ctx, task)
	case common.TaskTypeStorageBackup:
		progress, err = r.runBackupSweep(ctx, task)
	default:
		err = commonerrors.NewBadRequest(fmt.Sprintf("unknown storage task type %q", task.Type))
	}
	if ctx.Err() != nil {
		// Shutting down. The row stays in processing and is reset to
		// pending on the next start.
		klog.Infof("storage task %s interrupted by shutdown", task.Id)
		return
	}
	r.finishTask(ctx, task, progress, err)
}

func (r *Runner) finishTask(ctx context.Context, task *dbclient.Task, p *progressTracker, runErr error) {
	if p == nil {
		p = newProgressTracker(0)
	}
	doc := p.document()
	switch {
	case errors.Is(runErr, errTaskCancelled):
		// CancelTask already flipped the row; keep the final numbers visible.
		if err := r.dbClient.UpdateTaskProgress(ctx, task.Id, doc); err != nil {
			klog.ErrorS(err, "failed to record progress of cancelled task", "task", task.Id)
		}
		klog.Infof("storage task %s stopped at operator request", task.Id)
	case runErr != nil:
		klog.Warningf("storage task %s failed: %v", task.Id, runErr)
		if err := r.dbClient.UpdateTaskProgress(ctx, task.Id, doc); err != nil {
			klog.ErrorS(err, "failed to record progress of failed task", "task", task.Id)
		}
		if err := r.dbClient.FailTask(ctx, task.Id, runErr.Error()); err != nil {
			klog.ErrorS(err, "failed to mark task failed", "task", task.Id)
		}
		r.notifyTaskFailed(ctx, task, runErr)
	default:
		if err := r.dbClient.CompleteTask(ctx, task.Id, doc); err != nil {
			klog.ErrorS(err, "failed to mark task completed", "task", task.Id)
		}
		klog.Infof("storage task %s completed", task.Id)
	}
}

func (r *Runner) notifyTaskFailed(ctx context.Context, task *dbclient.Task, runErr error) {
	err := r.dbClient.SubmitNotification(ctx, &dbmodel.Notification{
		Topic: notifymodel.TopicTaskFailed,
		UID:   task.Id,
		Data: map[string]interface{}{
			"task_id":   task.Id,
			"task_type": task.Type,
			"error":     runErr.Error(),
		},
	})
	if err != nil {
		klog.ErrorS(err, "failed to submit task failure notification", "task", task.Id)
	}
}

// forEachImage runs fn over imageIds with bounded concurrency, recording
// outcomes in p. Every checkpointEvery items (or checkpointMaxGap of wall
// time) it persists progress and honors operator cancellation. Item
// failures are recorded, never fatal; only cancellation or a cancelled
// context stops the loop early.
func (r *Runner) forEachImage(ctx context.Context, taskId string, imageIds []int64, p *progressTracker,
	fn func(ctx context.Context, imageId int64) error) error {

	concurrency := commonconfig.GetTaskBatchConcurrency()
	delay := time.Duration(commonconfig.GetTaskItemDelayMillis()) * time.Millisecond
	semaphore := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	lastCheckpoint := time.Now()

	var loopErr error
	for i, imageId := range imageIds {
		if err := ctx.Err(); err != nil {
			loopErr = err
			break
		}
		if (i > 0 && i%checkpointEvery == 0) || time.Since(lastCheckpoint) > checkpointMaxGap {
			if err := r.checkpoint(ctx, taskId, p); err != nil {
				loopErr = err
				break
			}
			lastCheckpoint = time.Now()
		}

		select {
		case <-ctx.Done():
			loopErr = ctx.Err()
		case semaphore <- struct{}{}:
		}
		if loopErr != nil {
			break
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer func() { <-semaphore }()
			err := fn(ctx, id)
			switch {
			case errors.Is(err, errSkipped):
				p.skip()
			case err != nil:
				p.fail(id, err)
			default:
				p.success()
			}
		}(imageId)

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				loopErr = ctx.Err()
			case <-timer.C:
			}
			if loopErr != nil {
				break
			}
		}
	}
	wg.Wait()
	return loopErr
}

// checkpoint persists current progress and reports errTaskCancelled when an
// operator cancelled the task. Transient write failures are logged and do
// not interrupt the run.
func (r *Runner) checkpoint(ctx context.Context, taskId string, p *progressTracker) error {
	row, err := r.dbClient.GetTask(ctx, taskId)
	if err != nil {
		klog.ErrorS(err, "failed to read task during checkpoint", "task", taskId)
		return nil
	}
	if row == nil || row.Status == common.TaskStatusCancelled {
		return errTaskCancelled
	}
	if err = r.dbClient.UpdateTaskProgress(ctx, taskId, p.document()); err != nil {
		klog.ErrorS(err, "failed to write task progress", "task", taskId)
	}
	return nil
}

func (r *Runner) mustGetEndpoint(ctx context.Context, id int64) (*dbclient.StorageEndpoint, error) {
	endpoint, err := r.dbClient.GetStorageEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if endpoint == nil {
		return nil, commonerrors.NewNotFound(common.StorageEndpointKind, fmt.Sprintf("%d", id))
	}
	return endpoint, nil
}

// collectEndpointImageIds walks the location table and returns every image
// that has a copy on the endpoint.
func (r *Runner) collectEndpointImageIds(ctx context.Context, endpointId int64) ([]int64, error) {
	var ids []int64
	err := r.dbClient.IterLocationsByEndpoint(ctx, endpointId, collectPageSize, func(rows []*dbclient.ImageLocation) error {
		for _, row := range rows {
			ids = append(ids, row.ImageId)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// collectEndpointLocations is collectEndpointImageIds keeping the full rows.
func (r *Runner) collectEndpointLocations(ctx context.Context, endpointId int64) ([]*dbclient.ImageLocation, error) {
	var locations []*dbclient.ImageLocation
	err := r.dbClient.IterLocationsByEndpoint(ctx, endpointId, collectPageSize, func(rows []*dbclient.ImageLocation) error {
		locations = append(locations, rows...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locations, nil
}
