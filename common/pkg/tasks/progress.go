/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"encoding/json"
	"sync"

	"github.com/jmoiron/sqlx/types"
	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
)

// Progress is the result document of a storage task. It is written into the
// task row at every checkpoint and once more when the task finishes, so
// operators can watch a long run advance.
type Progress struct {
	Total       int                    `json:"total"`
	Success     int                    `json:"success"`
	Failed      int                    `json:"failed"`
	FailedItems []FailedItem           `json:"failed_items,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

type FailedItem struct {
	ImageId int64  `json:"image_id"`
	Error   string `json:"error"`
}

// progressTracker accumulates per-item outcomes from concurrent workers.
// FailedItems is capped to keep the row small; the full failed-id set is
// kept in memory for completion hooks.
type progressTracker struct {
	mu        sync.Mutex
	progress  Progress
	itemsCap  int
	failedIds map[int64]bool
	skipped   int
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{
		progress:  Progress{Total: total},
		itemsCap:  commonconfig.GetTaskFailedItemsCap(),
		failedIds: make(map[int64]bool),
	}
}

func (t *progressTracker) success() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Success++
}

// skip counts an item that needed no work. Skips count as successes in the
// totals so that Success+Failed always adds up to the processed count.
func (t *progressTracker) skip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Success++
	t.skipped++
}

func (t *progressTracker) fail(imageId int64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Failed++
	t.failedIds[imageId] = true
	if len(t.progress.FailedItems) < t.itemsCap {
		t.progress.FailedItems = append(t.progress.FailedItems, FailedItem{
			ImageId: imageId,
			Error:   err.Error(),
		})
	}
}

func (t *progressTracker) setExtra(key string, value interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.progress.Extra == nil {
		t.progress.Extra = make(map[string]interface{})
	}
	t.progress.Extra[key] = value
}

// failedSet returns a copy of every failed image id, including the ones
// beyond the FailedItems cap.
func (t *progressTracker) failedSet() map[int64]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int64]bool, len(t.failedIds))
	for id := range t.failedIds {
		out[id] = true
	}
	return out
}

func (t *progressTracker) snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.progress
	p.FailedItems = append([]FailedItem(nil), t.progress.FailedItems...)
	p.Extra = nil
	if len(t.progress.Extra) > 0 || t.skipped > 0 {
		p.Extra = make(map[string]interface{}, len(t.progress.Extra)+1)
		for k, v := range t.progress.Extra {
			p.Extra[k] = v
		}
		if t.skipped > 0 {
			p.Extra["skipped"] = t.skipped
		}
	}
	return p
}

// document renders the current snapshot as the JSON result column value.
func (t *progressTracker) document() types.JSONText {
	data, err := json.Marshal(t.snapshot())
	if err != nil {
		klog.ErrorS(err, "failed to marshal task progress")
		return types.JSONText(`{}`)
	}
	return types.JSONText(data)
}
