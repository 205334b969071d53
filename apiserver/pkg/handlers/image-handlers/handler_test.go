/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	mock_storage "github.com/AMD-AIG-AIMA/Iris/common/pkg/storage/mock"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/stringutil"
)

type fakeQueue struct {
	analyzed  []int64
	rebuilt   []int64
	enqueueed int
	err       error
}

func (f *fakeQueue) EnqueueAnalyze(_ context.Context, imageIds []int64, _ string) (int, error) {
	f.analyzed = append(f.analyzed, imageIds...)
	return f.enqueueed, f.err
}

func (f *fakeQueue) EnqueueRebuild(_ context.Context, imageIds []int64, _ string) (int, error) {
	f.rebuilt = append(f.rebuilt, imageIds...)
	return f.enqueueed, f.err
}

type fakeBackup struct {
	triggered []int64
}

func (f *fakeBackup) TriggerBackup(imageId int64) {
	f.triggered = append(f.triggered, imageId)
}

func newTestHandler(ctrl *gomock.Controller) (*Handler, *mock_client.MockInterface, *mock_storage.MockInterface, *fakeQueue, *fakeBackup) {
	db := mock_client.NewMockInterface(ctrl)
	store := mock_storage.NewMockInterface(ctrl)
	q := &fakeQueue{enqueueed: 1}
	b := &fakeBackup{}
	h := &Handler{
		dbClient: db,
		storage:  store,
		tags:     tags.New(db),
		queue:    q,
		backup:   b,
	}
	return h, db, store, q, b
}

// pngBytes renders a small PNG with the given dimensions.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func localEndpoint(id int64) *dbclient.StorageEndpoint {
	endpoint := &dbclient.StorageEndpoint{
		Id:        id,
		Name:      "local",
		Provider:  common.ProviderLocal,
		IsEnabled: true,
	}
	endpoint.BucketName.String, endpoint.BucketName.Valid = "images", true
	return endpoint
}

func unclassifiedCategory() *dbclient.Tag {
	return &dbclient.Tag{Id: common.UnclassifiedCategoryId, Name: "unclassified", Level: common.TagLevelCategory}
}

func TestIngestBytesHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, store, _, backup := newTestHandler(ctrl)
	data := pngBytes(t, 4, 3)
	hash := stringutil.MD5Bytes(data)

	db.EXPECT().GetDefaultUploadEndpoint(gomock.Any()).Return(localEndpoint(1), nil)
	// Once for the object-key prefix, once inside the upload tag write.
	db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
		Return(unclassifiedCategory(), nil).Times(2)
	db.EXPECT().CountImagesByHash(gomock.Any(), hash).Return(0, nil)
	store.EXPECT().Upload(gomock.Any(), gomock.Any(), hash[0:2]+"/"+hash[2:4]+"/"+hash+".png", data).
		Return(nil)
	db.EXPECT().InsertImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, img *dbclient.Image) (int64, error) {
			assert.Equal(t, hash, img.FileHash)
			assert.Equal(t, "png", img.FileType)
			assert.Equal(t, 4, img.Width)
			assert.Equal(t, 3, img.Height)
			assert.Equal(t, "u-1", img.UploadedBy.String)
			return 42, nil
		})
	db.EXPECT().UpsertImageLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, loc *dbclient.ImageLocation) error {
			assert.Equal(t, int64(42), loc.ImageId)
			assert.True(t, loc.IsPrimary)
			assert.Equal(t, common.SyncStatusSynced, loc.SyncStatus)
			return nil
		})
	db.EXPECT().GetTagByName(gomock.Any(), gomock.Any()).Return(nil, nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).Return(nil)

	result, err := h.ingestBytes(context.Background(), data, "", &IngestOptions{
		AutoAnalyze: ptr.To(false),
		uploadedBy:  "u-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), result.Id)
	assert.Equal(t, hash, result.FileHash)
	assert.False(t, result.Duplicate)
	assert.False(t, result.Enqueued)
	assert.Equal(t, []int64{42}, backup.triggered)
}

func TestIngestBytesUploadFailureWritesNoRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, store, _, backup := newTestHandler(ctrl)
	data := pngBytes(t, 2, 2)

	db.EXPECT().GetDefaultUploadEndpoint(gomock.Any()).Return(localEndpoint(1), nil)
	db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
		Return(unclassifiedCategory(), nil)
	db.EXPECT().CountImagesByHash(gomock.Any(), gomock.Any()).Return(0, nil)
	store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	_, err := h.ingestBytes(context.Background(), data, "", &IngestOptions{})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, backup.triggered)
}

func TestIngestBytesMarksDuplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, store, q, _ := newTestHandler(ctrl)
	data := pngBytes(t, 2, 2)

	db.EXPECT().GetDefaultUploadEndpoint(gomock.Any()).Return(localEndpoint(1), nil)
	db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
		Return(unclassifiedCategory(), nil).Times(2)
	db.EXPECT().CountImagesByHash(gomock.Any(), gomock.Any()).Return(2, nil)
	store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	db.EXPECT().InsertImage(gomock.Any(), gomock.Any()).Return(int64(7), nil)
	db.EXPECT().UpsertImageLocation(gomock.Any(), gomock.Any()).Return(nil)
	db.EXPECT().GetTagByName(gomock.Any(), gomock.Any()).Return(nil, nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).Return(nil)

	result, err := h.ingestBytes(context.Background(), data, "", &IngestOptions{AutoAnalyze: ptr.To(true)})
	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.True(t, result.Enqueued)
	assert.Equal(t, []int64{7}, q.analyzed)
}

func TestIngestBytesRejectsNonImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _, _ := newTestHandler(ctrl)

	_, err := h.ingestBytes(context.Background(), []byte("not an image"), "", &IngestOptions{})
	assert.True(t, commonerrors.IsBadRequest(err))

	_, err = h.ingestBytes(context.Background(), nil, "", &IngestOptions{})
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestShouldEnqueue(t *testing.T) {
	h := &Handler{}

	// User tags plus a description enqueue regardless of the override.
	assert.True(t, h.shouldEnqueue(&IngestOptions{
		Tags:        []string{"fox"},
		Description: "a fox",
		AutoAnalyze: ptr.To(false),
	}))
	assert.True(t, h.shouldEnqueue(&IngestOptions{AutoAnalyze: ptr.To(true)}))
	assert.False(t, h.shouldEnqueue(&IngestOptions{AutoAnalyze: ptr.To(false)}))
}

func TestPickUploadEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, _, _, _ := newTestHandler(ctrl)
	ctx := context.Background()

	t.Run("explicit endpoint must exist and be enabled", func(t *testing.T) {
		db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(9)).Return(nil, nil)
		_, err := h.pickUploadEndpoint(ctx, 9)
		assert.True(t, commonerrors.IsNotFound(err))

		disabled := localEndpoint(9)
		disabled.IsEnabled = false
		db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(9)).Return(disabled, nil)
		_, err = h.pickUploadEndpoint(ctx, 9)
		assert.True(t, commonerrors.IsBadRequest(err))
	})

	t.Run("falls back to the built-in local endpoint", func(t *testing.T) {
		db.EXPECT().GetDefaultUploadEndpoint(gomock.Any()).Return(nil, nil)
		db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(common.DefaultLocalEndpointId)).
			Return(localEndpoint(common.DefaultLocalEndpointId), nil)
		endpoint, err := h.pickUploadEndpoint(ctx, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(common.DefaultLocalEndpointId), endpoint.Id)
	})
}

func testContext(t *testing.T, method, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, nil)
	return c
}

func TestDeleteImageCleansOrphanObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, store, _, _ := newTestHandler(ctrl)
	c := testContext(t, http.MethodDelete, "/api/v1/images/42")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserSelf)

	img := &dbclient.Image{Id: 42, FileHash: "abc"}
	img.UploadedBy.String, img.UploadedBy.Valid = "u-1", true
	loc := &dbclient.ImageLocation{ImageId: 42, EndpointId: 2, ObjectKey: "ab/cd/abc.png"}

	db.EXPECT().GetImage(gomock.Any(), int64(42)).Return(img, nil)
	db.EXPECT().GetImageLocations(gomock.Any(), int64(42)).Return([]*dbclient.ImageLocation{loc}, nil)
	db.EXPECT().DeleteImageCascade(gomock.Any(), int64(42)).Return(nil)
	db.EXPECT().CountImagesByHash(gomock.Any(), "abc").Return(0, nil)
	db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(localEndpoint(2), nil)
	store.EXPECT().Delete(gomock.Any(), gomock.Any(), "ab/cd/abc.png").Return(nil)

	rsp, err := h.deleteImage(c)
	assert.NoError(t, err)
	assert.Equal(t, true, rsp["deleted"])
}

func TestDeleteImageKeepsSharedHashObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, _, _, _ := newTestHandler(ctrl)
	c := testContext(t, http.MethodDelete, "/api/v1/images/42")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserAdmin)

	img := &dbclient.Image{Id: 42, FileHash: "abc"}
	db.EXPECT().GetImage(gomock.Any(), int64(42)).Return(img, nil)
	db.EXPECT().GetImageLocations(gomock.Any(), int64(42)).
		Return([]*dbclient.ImageLocation{{ImageId: 42, EndpointId: 2, ObjectKey: "k"}}, nil)
	db.EXPECT().DeleteImageCascade(gomock.Any(), int64(42)).Return(nil)
	// Another row still shares the hash: no storage deletes may happen.
	db.EXPECT().CountImagesByHash(gomock.Any(), "abc").Return(1, nil)

	_, err := h.deleteImage(c)
	assert.NoError(t, err)
}

func TestDeleteImageRejectsNonOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, _, _, _ := newTestHandler(ctrl)
	c := testContext(t, http.MethodDelete, "/api/v1/images/42")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Set(common.UserId, "intruder")
	c.Set(common.UserType, common.UserSelf)

	img := &dbclient.Image{Id: 42, FileHash: "abc"}
	img.UploadedBy.String, img.UploadedBy.Valid = "u-1", true
	db.EXPECT().GetImage(gomock.Any(), int64(42)).Return(img, nil)

	_, err := h.deleteImage(c)
	assert.True(t, commonerrors.IsForbidden(err))
}

func TestVisibleImageHidesPrivateImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db, _, _, _ := newTestHandler(ctrl)
	c := testContext(t, http.MethodGet, "/api/v1/images/5")
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	img := &dbclient.Image{Id: 5, IsPublic: false}
	img.UploadedBy.String, img.UploadedBy.Valid = "owner", true
	db.EXPECT().GetImage(gomock.Any(), int64(5)).Return(img, nil)

	_, err := h.visibleImage(c)
	assert.True(t, commonerrors.IsNotFound(err))
}
