/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func TestCreateHardDeleteRejectsLocalEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	endpoint := testEndpoint(1, "local-primary", common.ProviderLocal)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(endpoint, nil)

	_, err := r.CreateHardDelete(context.Background(), 1)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestCreateHardDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	endpoint := testEndpoint(2, "mirror-a", common.ProviderS3)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(endpoint, nil)

	var created []*dbclient.Task
	mocks.db.EXPECT().CreateStorageTasksExclusive(gomock.Any(), gomock.Any(), []int64{2}).DoAndReturn(
		func(ctx context.Context, tasks []*dbclient.Task, endpointIds []int64) error {
			created = tasks
			return nil
		},
	)

	taskId, err := r.CreateHardDelete(context.Background(), 2)
	assert.NoError(t, err)
	assert.NotEmpty(t, taskId)
	assert.Equal(t, common.TaskTypeStorageDelete, created[0].Type)

	payload := &hardDeletePayload{}
	assert.NoError(t, json.Unmarshal(created[0].Payload, payload))
	assert.Equal(t, int64(2), payload.EndpointId)
}

func TestRunHardDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	endpoint := testEndpoint(2, "mirror-a", common.ProviderS3)
	payload, err := json.Marshal(&hardDeletePayload{EndpointId: 2})
	assert.NoError(t, err)
	task := &dbclient.Task{
		Id:      "task-del-1",
		Type:    common.TaskTypeStorageDelete,
		Status:  common.TaskStatusProcessing,
		Payload: types.JSONText(payload),
	}

	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(endpoint, nil)
	expectUnlinkLocations(mocks, 2, []*dbclient.ImageLocation{
		{ImageId: 3, EndpointId: 2, ObjectKey: "images/ac/3.webp"},
	})
	mocks.db.EXPECT().GetTask(gomock.Any(), task.Id).Return(task, nil)
	mocks.db.EXPECT().UpdateTaskProgress(gomock.Any(), task.Id, gomock.Any()).Return(nil)

	mocks.storage.EXPECT().Delete(gomock.Any(), endpoint, "images/ac/3.webp").Return(nil)
	mocks.db.EXPECT().DeleteImageLocation(gomock.Any(), int64(3), int64(2)).Return(nil)

	progress, err := r.runHardDelete(context.Background(), task)
	assert.NoError(t, err)

	snap := progress.snapshot()
	assert.Equal(t, 1, snap.Total)
	assert.Equal(t, 1, snap.Success)
}

func TestRunHardDeleteRefusesLocalRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	endpoint := testEndpoint(1, "local-primary", common.ProviderLocal)
	payload, err := json.Marshal(&hardDeletePayload{EndpointId: 1})
	assert.NoError(t, err)
	task := &dbclient.Task{
		Id:      "task-del-2",
		Type:    common.TaskTypeStorageDelete,
		Status:  common.TaskStatusProcessing,
		Payload: types.JSONText(payload),
	}

	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(endpoint, nil)

	_, err = r.runHardDelete(context.Background(), task)
	assert.True(t, commonerrors.IsBadRequest(err))
}
