/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jmoiron/sqlx/types"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	dbmodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
	notifymodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
	mock_storage "github.com/AMD-AIG-AIMA/Iris/common/pkg/storage/mock"
)

type runnerMocks struct {
	db      *mock_client.MockInterface
	storage *mock_storage.MockInterface
}

func newTestRunner(ctrl *gomock.Controller) (*Runner, *runnerMocks) {
	mocks := &runnerMocks{
		db:      mock_client.NewMockInterface(ctrl),
		storage: mock_storage.NewMockInterface(ctrl),
	}
	return newRunner(mocks.db, mocks.storage), mocks
}

func TestRunnerLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().ResetStuckTasks(gomock.Any(), dbclient.StorageTaskTypes(), gomock.Any()).
		Return(int64(2), nil)
	mocks.db.EXPECT().ClaimNextTask(gomock.Any(), dbclient.StorageTaskTypes()).
		Return(nil, nil).AnyTimes()

	assert.NoError(t, r.Start(context.Background()))
	assert.True(t, r.IsRunning())

	// second start is a no-op
	assert.NoError(t, r.Start(context.Background()))

	r.Stop()
	assert.False(t, r.IsRunning())
	r.Wait()
}

func TestRunnerStartResetError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().ResetStuckTasks(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), assert.AnError)

	assert.Error(t, r.Start(context.Background()))
	assert.False(t, r.IsRunning())
}

func TestRunnerExecutesClaimedSyncTask(t *testing.T) {
	viper.Set("storage.task_batch_concurrency", 1)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := &dbclient.StorageEndpoint{Id: 1, Name: "local-primary", Provider: common.ProviderLocal, IsEnabled: true}
	target := &dbclient.StorageEndpoint{Id: 2, Name: "mirror-a", Provider: common.ProviderS3, IsEnabled: true}

	payload, err := json.Marshal(&syncPayload{
		SourceEndpointId: 1,
		TargetEndpointId: 2,
		ImageIds:         []int64{7},
		BatchIndex:       1,
		TotalBatches:     1,
	})
	assert.NoError(t, err)
	claimed := &dbclient.Task{
		Id:      "task-sync-1",
		Type:    common.TaskTypeStorageSync,
		Status:  common.TaskStatusProcessing,
		Payload: types.JSONText(payload),
	}

	mocks.db.EXPECT().ResetStuckTasks(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	mocks.db.EXPECT().ClaimNextTask(gomock.Any(), dbclient.StorageTaskTypes()).Return(claimed, nil)
	mocks.db.EXPECT().ClaimNextTask(gomock.Any(), dbclient.StorageTaskTypes()).Return(nil, nil).AnyTimes()

	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)

	// initial checkpoint
	mocks.db.EXPECT().GetTask(gomock.Any(), "task-sync-1").Return(claimed, nil)
	mocks.db.EXPECT().UpdateTaskProgress(gomock.Any(), "task-sync-1", gomock.Any()).Return(nil)

	// image 7 is not on the target yet and synced on the source
	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(2)).Return(nil, nil)
	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(1)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 1,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(7), source, target, "images/ab/7.jpg", false).
		Return(nil)

	done := make(chan types.JSONText, 1)
	mocks.db.EXPECT().CompleteTask(gomock.Any(), "task-sync-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, result types.JSONText) error {
			done <- result
			return nil
		},
	)

	assert.NoError(t, r.Start(context.Background()))
	select {
	case result := <-done:
		progress := &Progress{}
		assert.NoError(t, json.Unmarshal(result, progress))
		assert.Equal(t, 1, progress.Total)
		assert.Equal(t, 1, progress.Success)
		assert.Equal(t, 0, progress.Failed)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the sync task to finish")
	}
	r.Stop()
	r.Wait()
}

func TestForEachImageRecordsOutcomes(t *testing.T) {
	viper.Set("storage.task_batch_concurrency", 2)
	viper.Set("storage.task_failed_items_cap", 50)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _ := newTestRunner(ctrl)

	progress := newProgressTracker(3)
	err := r.forEachImage(context.Background(), "task-a", []int64{1, 2, 3}, progress,
		func(ctx context.Context, imageId int64) error {
			switch imageId {
			case 1:
				return nil
			case 2:
				return errSkipped
			default:
				return assert.AnError
			}
		})
	assert.NoError(t, err)

	snap := progress.snapshot()
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.Success)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, 1, len(snap.FailedItems))
	assert.Equal(t, int64(3), snap.FailedItems[0].ImageId)
	assert.Equal(t, 1, snap.Extra["skipped"])
}

func TestForEachImageStopsAtCancelledCheckpoint(t *testing.T) {
	viper.Set("storage.task_batch_concurrency", 4)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().GetTask(gomock.Any(), "task-b").
		Return(&dbclient.Task{Id: "task-b", Status: common.TaskStatusCancelled}, nil)

	imageIds := make([]int64, 150)
	for i := range imageIds {
		imageIds[i] = int64(i + 1)
	}
	var processed atomic.Int32
	progress := newProgressTracker(len(imageIds))
	err := r.forEachImage(context.Background(), "task-b", imageIds, progress,
		func(ctx context.Context, imageId int64) error {
			processed.Add(1)
			return nil
		})
	assert.ErrorIs(t, err, errTaskCancelled)
	// the cancellation check runs before item 101 is dispatched
	assert.Equal(t, int32(100), processed.Load())
}

func TestForEachImageStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _ := newTestRunner(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var processed atomic.Int32
	progress := newProgressTracker(2)
	err := r.forEachImage(ctx, "task-c", []int64{1, 2}, progress,
		func(ctx context.Context, imageId int64) error {
			processed.Add(1)
			return nil
		})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), processed.Load())
}

func TestCheckpointToleratesReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().GetTask(gomock.Any(), "task-d").Return(nil, assert.AnError)

	// a transient read failure must not kill a long run
	assert.NoError(t, r.checkpoint(context.Background(), "task-d", newProgressTracker(1)))
}

func TestCheckpointDetectsDeletedRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().GetTask(gomock.Any(), "task-e").Return(nil, nil)

	err := r.checkpoint(context.Background(), "task-e", newProgressTracker(1))
	assert.ErrorIs(t, err, errTaskCancelled)
}

func TestFinishTaskFailureNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().UpdateTaskProgress(gomock.Any(), "task-f", gomock.Any()).Return(nil)
	mocks.db.EXPECT().FailTask(gomock.Any(), "task-f", assert.AnError.Error()).Return(nil)

	var note *dbmodel.Notification
	mocks.db.EXPECT().SubmitNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, n *dbmodel.Notification) error {
			note = n
			return nil
		},
	)

	task := &dbclient.Task{Id: "task-f", Type: common.TaskTypeStorageSync}
	r.finishTask(context.Background(), task, newProgressTracker(4), assert.AnError)

	assert.Equal(t, notifymodel.TopicTaskFailed, note.Topic)
	assert.Equal(t, "task-f", note.UID)
	assert.Equal(t, common.TaskTypeStorageSync, note.Data["task_type"])
}

func TestFinishTaskCancelledKeepsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	// only the final numbers are written; the row keeps its cancelled status
	mocks.db.EXPECT().UpdateTaskProgress(gomock.Any(), "task-g", gomock.Any()).Return(nil)

	task := &dbclient.Task{Id: "task-g", Type: common.TaskTypeStorageUnlink}
	r.finishTask(context.Background(), task, newProgressTracker(9), errTaskCancelled)
}

func TestExecuteUnknownTypeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	mocks.db.EXPECT().UpdateTaskProgress(gomock.Any(), "task-h", gomock.Any()).Return(nil)
	var failMsg string
	mocks.db.EXPECT().FailTask(gomock.Any(), "task-h", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id, errMsg string) error {
			failMsg = errMsg
			return nil
		},
	)
	mocks.db.EXPECT().SubmitNotification(gomock.Any(), gomock.Any()).Return(nil)

	r.execute(context.Background(), &dbclient.Task{Id: "task-h", Type: "not-a-task-type"})
	assert.Contains(t, failMsg, "not-a-task-type")
}

func TestProgressTrackerCapsFailedItems(t *testing.T) {
	viper.Set("storage.task_failed_items_cap", 2)
	defer viper.Set("storage.task_failed_items_cap", 50)

	progress := newProgressTracker(5)
	progress.fail(1, assert.AnError)
	progress.fail(2, assert.AnError)
	progress.fail(3, assert.AnError)
	progress.success()

	snap := progress.snapshot()
	assert.Equal(t, 3, snap.Failed)
	assert.Equal(t, 1, snap.Success)
	assert.Equal(t, 2, len(snap.FailedItems))

	// the uncapped set still knows every failed id
	failed := progress.failedSet()
	assert.Equal(t, 3, len(failed))
	assert.True(t, failed[3])
}
