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
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func testEndpoint(id int64, name, provider string) *dbclient.StorageEndpoint {
	return &dbclient.StorageEndpoint{
		Id:        id,
		Name:      name,
		Provider:  provider,
		IsEnabled: true,
		IsHealthy: true,
	}
}

func TestCreateSyncValidatesRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)
	ctx := context.Background()

	t.Run("missing endpoints", func(t *testing.T) {
		_, err := r.CreateSync(ctx, &SyncRequest{})
		assert.True(t, commonerrors.IsBadRequest(err))
	})

	t.Run("source equals target", func(t *testing.T) {
		_, err := r.CreateSync(ctx, &SyncRequest{SourceEndpointId: 3, TargetEndpointId: 3})
		assert.True(t, commonerrors.IsBadRequest(err))
	})

	t.Run("unknown source", func(t *testing.T) {
		mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(8)).Return(nil, nil)
		_, err := r.CreateSync(ctx, &SyncRequest{SourceEndpointId: 8, TargetEndpointId: 9})
		assert.True(t, commonerrors.IsNotFound(err))
	})

	t.Run("disabled target", func(t *testing.T) {
		source := testEndpoint(1, "local-primary", common.ProviderLocal)
		target := testEndpoint(2, "mirror-a", common.ProviderS3)
		target.IsEnabled = false
		mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
		mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)
		_, err := r.CreateSync(ctx, &SyncRequest{SourceEndpointId: 1, TargetEndpointId: 2})
		assert.True(t, commonerrors.IsBadRequest(err))
	})
}

func TestCreateSyncSplitsBatches(t *testing.T) {
	viper.Set("storage.sync_batch_size", 2)
	defer viper.Set("storage.sync_batch_size", 500)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)

	var created []*dbclient.Task
	var lockedEndpoints []int64
	mocks.db.EXPECT().CreateStorageTasksExclusive(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tasks []*dbclient.Task, endpointIds []int64) error {
			created = tasks
			lockedEndpoints = endpointIds
			return nil
		},
	)

	ids, err := r.CreateSync(context.Background(), &SyncRequest{
		SourceEndpointId: 1,
		TargetEndpointId: 2,
		ImageIds:         []int64{10, 11, 12},
		ForceOverwrite:   true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(ids))
	assert.Equal(t, []int64{1, 2}, lockedEndpoints)

	assert.Equal(t, 2, len(created))
	first := &syncPayload{}
	assert.NoError(t, json.Unmarshal(created[0].Payload, first))
	assert.Equal(t, []int64{10, 11}, first.ImageIds)
	assert.Equal(t, 1, first.BatchIndex)
	assert.Equal(t, 2, first.TotalBatches)
	assert.True(t, first.ForceOverwrite)

	second := &syncPayload{}
	assert.NoError(t, json.Unmarshal(created[1].Payload, second))
	assert.Equal(t, []int64{12}, second.ImageIds)
	assert.Equal(t, 2, second.BatchIndex)
	assert.Equal(t, common.TaskTypeStorageSync, created[1].Type)
}

func TestCreateSyncCollectsSourceImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)

	mocks.db.EXPECT().IterLocationsByEndpoint(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, endpointId int64, batch int, fn func([]*dbclient.ImageLocation) error) error {
			return fn([]*dbclient.ImageLocation{
				{ImageId: 5, EndpointId: 1, ObjectKey: "images/aa/5.png"},
				{ImageId: 6, EndpointId: 1, ObjectKey: "images/ab/6.png"},
			})
		},
	)

	var created []*dbclient.Task
	mocks.db.EXPECT().CreateStorageTasksExclusive(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tasks []*dbclient.Task, endpointIds []int64) error {
			created = tasks
			return nil
		},
	)

	_, err := r.CreateSync(context.Background(), &SyncRequest{SourceEndpointId: 1, TargetEndpointId: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(created))

	payload := &syncPayload{}
	assert.NoError(t, json.Unmarshal(created[0].Payload, payload))
	assert.Equal(t, []int64{5, 6}, payload.ImageIds)
}

func TestCreateSyncNothingToSync(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)
	mocks.db.EXPECT().IterLocationsByEndpoint(gomock.Any(), int64(1), gomock.Any(), gomock.Any()).Return(nil)

	_, err := r.CreateSync(context.Background(), &SyncRequest{SourceEndpointId: 1, TargetEndpointId: 2})
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestCreateSyncEndpointBusy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)
	mocks.db.EXPECT().CreateStorageTasksExclusive(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(commonerrors.NewEndpointBusy("endpoint mirror-a already has a storage task running"))

	_, err := r.CreateSync(context.Background(), &SyncRequest{
		SourceEndpointId: 1,
		TargetEndpointId: 2,
		ImageIds:         []int64{4},
	})
	assert.True(t, commonerrors.IsEndpointBusy(err))
}

func TestSyncOneSkipsUpToDateCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)

	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(2)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 2,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().Exists(gomock.Any(), target, "images/ab/7.jpg").Return(true, nil)

	err := r.syncOne(context.Background(), 7, source, target, false)
	assert.ErrorIs(t, err, errSkipped)
}

func TestSyncOneRecopiesMissingObject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)

	// the row says synced but the object is gone from the store
	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(2)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 2,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().Exists(gomock.Any(), target, "images/ab/7.jpg").Return(false, nil)

	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(1)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 1,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(7), source, target, "images/ab/7.jpg", false).
		Return(nil)

	assert.NoError(t, r.syncOne(context.Background(), 7, source, target, false))
}

func TestSyncOneForceSkipsFreshnessCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)

	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(1)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 1,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(7), source, target, "images/ab/7.jpg", true).
		Return(nil)

	assert.NoError(t, r.syncOne(context.Background(), 7, source, target, true))
}

func TestSyncOneRequiresSyncedSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)

	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(2)).Return(nil, nil)
	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(1)).Return(nil, nil)

	err := r.syncOne(context.Background(), 7, source, target, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "local-primary")
}

func TestSyncOneMarksFailedCopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	source := testEndpoint(1, "local-primary", common.ProviderLocal)
	target := testEndpoint(2, "mirror-a", common.ProviderS3)

	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(2)).Return(nil, nil)
	mocks.db.EXPECT().GetImageLocation(gomock.Any(), int64(7), int64(1)).Return(&dbclient.ImageLocation{
		ImageId:    7,
		EndpointId: 1,
		ObjectKey:  "images/ab/7.jpg",
		SyncStatus: common.SyncStatusSynced,
	}, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(7), source, target, "images/ab/7.jpg", false).
		Return(assert.AnError)
	mocks.db.EXPECT().UpdateLocationSyncStatus(gomock.Any(), int64(7), int64(2),
		common.SyncStatusFailed, assert.AnError.Error()).Return(nil)

	err := r.syncOne(context.Background(), 7, source, target, false)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestProcessPendingLocations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mocks := newTestRunner(ctrl)

	target := testEndpoint(2, "mirror-a", common.ProviderS3)
	source := testEndpoint(1, "local-primary", common.ProviderLocal)

	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(target, nil)
	mocks.db.EXPECT().ListPendingLocations(gomock.Any(), int64(2), 100).Return([]*dbclient.ImageLocation{
		{ImageId: 5, EndpointId: 2, ObjectKey: "images/aa/5.png", SyncStatus: common.SyncStatusPending},
		{ImageId: 6, EndpointId: 2, ObjectKey: "images/ab/6.png", SyncStatus: common.SyncStatusPending},
	}, nil)

	// image 5 mirrors fine
	mocks.db.EXPECT().GetPrimaryLocation(gomock.Any(), int64(5)).Return(&dbclient.ImageLocation{
		ImageId: 5, EndpointId: 1, ObjectKey: "images/aa/5.png", IsPrimary: true,
	}, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(5), source, target, "images/aa/5.png", false).
		Return(nil)

	// image 6 fails and is marked, the pass keeps going
	mocks.db.EXPECT().GetPrimaryLocation(gomock.Any(), int64(6)).Return(&dbclient.ImageLocation{
		ImageId: 6, EndpointId: 1, ObjectKey: "images/ab/6.png", IsPrimary: true,
	}, nil)
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(1)).Return(source, nil)
	mocks.storage.EXPECT().CopyBetweenEndpoints(gomock.Any(), int64(6), source, target, "images/ab/6.png", false).
		Return(assert.AnError)
	mocks.db.EXPECT().UpdateLocationSyncStatus(gomock.Any(), int64(6), int64(2),
		common.SyncStatusFailed, assert.AnError.Error()).Return(nil)

	processed, err := r.ProcessPendingLocations(context.Background(), 2, 100)
	assert.NoError(t, err)
	assert.Equal(t, 1, processed)
}
