/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/cespare/xxhash/v2"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	TTask = "task"
)

var (
	getTaskCmd       = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TTask)
	insertTaskFormat = `INSERT INTO ` + TTask + ` (%s) VALUES (%s)`

	// claimNextTaskCmd flips the oldest pending row of the wanted types to
	// processing. SKIP LOCKED keeps concurrent workers from blocking on the
	// same row, so each claim lands on a distinct task.
	claimNextTaskCmd = fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = $3
		WHERE id = (
			SELECT id FROM %s
			WHERE status = $4 AND type = ANY($1)
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		) RETURNING *`, TTask, TTask)

	resetStuckTasksCmd = fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = $2
		WHERE status = $3 AND type = ANY($4) AND updated_at < $5`, TTask)

	// Images that already sit in a live analyze or rebuild task.
	selectActiveAnalyzeImagesCmd = fmt.Sprintf(`SELECT DISTINCT (payload->>'image_id')::bigint FROM %s
		WHERE type = ANY($1) AND status = ANY($2)
		  AND (payload->>'image_id')::bigint = ANY($3)`, TTask)

	completeTaskCmd = fmt.Sprintf(`UPDATE %s SET status = $1, result = $2, updated_at = $3, completed_at = $3
		WHERE id = $4`, TTask)
	failTaskCmd = fmt.Sprintf(`UPDATE %s SET status = $1, error = $2, updated_at = $3, completed_at = $3
		WHERE id = $4`, TTask)
	cancelTaskCmd = fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = $2, completed_at = $2
		WHERE id = $3 AND status = ANY($4)`, TTask)
	updateTaskProgressCmd = fmt.Sprintf(`UPDATE %s SET result = $1, updated_at = $2 WHERE id = $3`, TTask)
	clearTasksCmd         = fmt.Sprintf(`DELETE FROM %s WHERE status = ANY($1) AND type = ANY($2)`, TTask)
	retryFailedTasksCmd   = fmt.Sprintf(`UPDATE %s SET status = $1, error = NULL, updated_at = $2
		WHERE status = $3 AND type = ANY($4)`, TTask)
	countTasksByStatusCmd = fmt.Sprintf(`SELECT status, COUNT(*) AS cnt FROM %s
		WHERE type = ANY($1) GROUP BY status`, TTask)

	// A live storage task referencing the endpoint in any of its payload
	// roles blocks new storage tasks on that endpoint.
	getActiveStorageTaskCmd = fmt.Sprintf(`SELECT id FROM %s
		WHERE type = ANY($1) AND status = ANY($2)
		  AND (payload->>'endpoint_id' = $3
		    OR payload->>'source_endpoint_id' = $3
		    OR payload->>'target_endpoint_id' = $3)
		LIMIT 1`, TTask)
)

// queueTaskTypes are the types handled by queue workers.
var queueTaskTypes = []string{common.TaskTypeAnalyzeImage, common.TaskTypeRebuildVector}

// storageTaskTypes are the long-running types handled by the task runner.
var storageTaskTypes = []string{
	common.TaskTypeStorageSync,
	common.TaskTypeStorageDelete,
	common.TaskTypeStorageUnlink,
	common.TaskTypeStorageBackup,
}

// QueueTaskTypes returns the task types consumed by queue workers.
func QueueTaskTypes() []string { return append([]string(nil), queueTaskTypes...) }

// StorageTaskTypes returns the long-running storage task types.
func StorageTaskTypes() []string { return append([]string(nil), storageTaskTypes...) }

// InsertTask persists a new task row in pending state.
func (c *Client) InsertTask(ctx context.Context, task *Task) error {
	if task == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	fillTaskDefaults(task)
	_, err = db.NamedExecContext(ctx, generateCommand(*task, insertTaskFormat, ""), task)
	if err != nil {
		klog.ErrorS(err, "failed to insert task", "id", task.Id, "type", task.Type)
	}
	return err
}

// GetTask retrieves a task by id, returning nil when it does not exist.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	if id == "" {
		return nil, commonerrors.NewBadRequest("task id is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	task := &Task{}
	err = db.GetContext(ctx, task, getTaskCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// SelectTasks retrieves multiple task records.
func (c *Client) SelectTasks(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Task, error) {
	startTime := time.Now().UTC()
	defer func() {
		if query != nil {
			strQuery := dbutils.CvtToSqlStr(query)
			klog.Infof("select task, query: %s, orderBy: %v, limit: %d, offset: %d, cost (%v)",
				strQuery, orderBy, limit, offset, time.Since(startTime))
		}
	}()
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TTask).
		Where(query).
		OrderBy(orderBy...)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var tasks []*Task
	if c.RequestTimeout > 0 {
		ctx2, cancel := context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
		err = db.SelectContext(ctx2, &tasks, sql, args...)
	} else {
		err = db.SelectContext(ctx, &tasks, sql, args...)
	}
	return tasks, err
}

// CountTasks returns the total count of tasks matching the criteria.
func (c *Client) CountTasks(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	sql, args, err := sqrl.Select("COUNT(*)").PlaceholderFormat(sqrl.Dollar).From(TTask).Where(query).ToSql()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, sql, args...)
	return cnt, err
}

// ClaimNextTask atomically claims the oldest pending task of the given types
// and returns it in processing state, or nil when nothing is pending.
func (c *Client) ClaimNextTask(ctx context.Context, taskTypes []string) (*Task, error) {
	if len(taskTypes) == 0 {
		return nil, commonerrors.NewBadRequest("task types are empty")
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	task := &Task{}
	err = db.GetContext(ctx, task, claimNextTaskCmd,
		pq.Array(taskTypes), common.TaskStatusProcessing, time.Now().UTC(), common.TaskStatusPending)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		klog.ErrorS(err, "failed to claim next task", "types", taskTypes)
		return nil, err
	}
	return task, nil
}

// ResetStuckTasks flips processing rows whose last update is older than
// olderThan back to pending and returns how many were reset.
func (c *Client) ResetStuckTasks(ctx context.Context, taskTypes []string, olderThan time.Duration) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := db.ExecContext(ctx, resetStuckTasksCmd,
		common.TaskStatusPending, time.Now().UTC(), common.TaskStatusProcessing, pq.Array(taskTypes), cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FilterImageIdsWithActiveAnalyze returns the subset of imageIds that already
// have a pending or processing analyze/rebuild task, in one query.
func (c *Client) FilterImageIdsWithActiveAnalyze(ctx context.Context, imageIds []int64) (map[int64]bool, error) {
	if len(imageIds) == 0 {
		return map[int64]bool{}, nil
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var busy []int64
	err = db.SelectContext(ctx, &busy, selectActiveAnalyzeImagesCmd,
		pq.Array(queueTaskTypes),
		pq.Array([]string{common.TaskStatusPending, common.TaskStatusProcessing}),
		pq.Array(imageIds))
	if err != nil {
		return nil, err
	}
	result := make(map[int64]bool, len(busy))
	for _, id := range busy {
		result[id] = true
	}
	return result, nil
}

// CompleteTask marks a task completed with its result document.
func (c *Client) CompleteTask(ctx context.Context, id string, result types.JSONText) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	if result == nil {
		result = types.JSONText(`{}`)
	}
	_, err = db.ExecContext(ctx, completeTaskCmd, common.TaskStatusCompleted, result, time.Now().UTC(), id)
	if err != nil {
		klog.ErrorS(err, "failed to complete task", "id", id)
	}
	return err
}

// FailTask marks a task failed, recording the error text on the row.
func (c *Client) FailTask(ctx context.Context, id string, errMsg string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, failTaskCmd, common.TaskStatusFailed, errMsg, time.Now().UTC(), id)
	if err != nil {
		klog.ErrorS(err, "failed to fail task", "id", id)
	}
	return err
}

// CancelTask cancels a pending or processing task. It reports whether a row
// was actually flipped; a processing task stops at its next checkpoint.
func (c *Client) CancelTask(ctx context.Context, id string) (bool, error) {
	db, err := c.getDB()
	if err != nil {
		return false, err
	}
	res, err := db.ExecContext(ctx, cancelTaskCmd, common.TaskStatusCancelled, time.Now().UTC(), id,
		pq.Array([]string{common.TaskStatusPending, common.TaskStatusProcessing}))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// UpdateTaskProgress checkpoints the result document of a running task.
func (c *Client) UpdateTaskProgress(ctx context.Context, id string, result types.JSONText) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, updateTaskProgressCmd, result, time.Now().UTC(), id)
	return err
}

// ClearPendingTasks deletes pending rows of the given types.
func (c *Client) ClearPendingTasks(ctx context.Context, taskTypes []string) (int64, error) {
	return c.clearTasks(ctx, []string{common.TaskStatusPending}, taskTypes)
}

// ClearFinishedTasks deletes completed, failed and cancelled rows of the
// given types.
func (c *Client) ClearFinishedTasks(ctx context.Context, taskTypes []string) (int64, error) {
	return c.clearTasks(ctx, []string{
		common.TaskStatusCompleted, common.TaskStatusFailed, common.TaskStatusCancelled,
	}, taskTypes)
}

func (c *Client) clearTasks(ctx context.Context, statuses, taskTypes []string) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, clearTasksCmd, pq.Array(statuses), pq.Array(taskTypes))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RetryFailedTasks flips failed rows of the given types back to pending.
func (c *Client) RetryFailedTasks(ctx context.Context, taskTypes []string) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, retryFailedTasksCmd,
		common.TaskStatusPending, time.Now().UTC(), common.TaskStatusFailed, pq.Array(taskTypes))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountTasksByStatus returns per-status counts of the given task types.
func (c *Client) CountTasksByStatus(ctx context.Context, taskTypes []string) (map[string]int, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	rows := []struct {
		Status string `db:"status"`
		Cnt    int    `db:"cnt"`
	}{}
	if err = db.SelectContext(ctx, &rows, countTasksByStatusCmd, pq.Array(taskTypes)); err != nil {
		return nil, err
	}
	result := make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Cnt
	}
	return result, nil
}

// EndpointLockKey derives the advisory-lock key guarding storage task
// creation for one endpoint.
func EndpointLockKey(endpointId int64) int64 {
	return int64(xxhash.Sum64String(fmt.Sprintf("storage-endpoint:%d", endpointId)))
}

// sortedEndpointIds returns the ids in ascending order without mutating the
// caller's slice. Advisory locks must be taken in a fixed order, or two
// creations naming the same endpoints in opposite order can deadlock.
func sortedEndpointIds(endpointIds []int64) []int64 {
	ids := append([]int64(nil), endpointIds...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CreateStorageTasksExclusive inserts the batch tasks of one storage
// operation unless another live storage task already references one of the
// endpoints. The check and the inserts run under per-endpoint transactional
// advisory locks, closing the race window between two concurrent creations.
// Batches of the same operation do not block each other because they are
// inserted in one call.
func (c *Client) CreateStorageTasksExclusive(ctx context.Context, tasks []*Task, endpointIds []int64) error {
	if len(tasks) == 0 {
		return commonerrors.NewBadRequest("the input is empty")
	}
	return c.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, endpointId := range sortedEndpointIds(endpointIds) {
			if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, EndpointLockKey(endpointId)); err != nil {
				return err
			}
		}
		for _, endpointId := range endpointIds {
			var busyTaskId string
			err := tx.GetContext(ctx, &busyTaskId, getActiveStorageTaskCmd,
				pq.Array(storageTaskTypes),
				pq.Array([]string{common.TaskStatusPending, common.TaskStatusProcessing}),
				fmt.Sprintf("%d", endpointId))
			if err == nil {
				return commonerrors.NewEndpointBusy(fmt.Sprintf(
					"endpoint %d is already referenced by running task %s", endpointId, busyTaskId))
			}
			if err != sql.ErrNoRows {
				return err
			}
		}
		for _, task := range tasks {
			fillTaskDefaults(task)
			if _, err := tx.NamedExecContext(ctx, generateCommand(*task, insertTaskFormat, ""), task); err != nil {
				return err
			}
		}
		return nil
	})
}

func fillTaskDefaults(task *Task) {
	now := time.Now().UTC()
	if !task.CreatedAt.Valid {
		task.CreatedAt = pq.NullTime{Time: now, Valid: true}
	}
	if !task.UpdatedAt.Valid {
		task.UpdatedAt = pq.NullTime{Time: now, Valid: true}
	}
	if task.Status == "" {
		task.Status = common.TaskStatusPending
	}
	if task.Payload == nil {
		task.Payload = types.JSONText(`{}`)
	}
	if task.Result == nil {
		task.Result = types.JSONText(`{}`)
	}
}
