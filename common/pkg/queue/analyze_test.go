/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jmoiron/sqlx/types"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	mock_embedding "github.com/AMD-AIG-AIMA/Iris/common/pkg/embedding/mock"
	mock_storage "github.com/AMD-AIG-AIMA/Iris/common/pkg/storage/mock"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/vision"
	mock_vision "github.com/AMD-AIG-AIMA/Iris/common/pkg/vision/mock"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

type managerMocks struct {
	db        *mock_client.MockInterface
	storage   *mock_storage.MockInterface
	vision    *mock_vision.MockInterface
	embedding *mock_embedding.MockInterface
}

func newMockManager(ctrl *gomock.Controller) (*Manager, *managerMocks) {
	mocks := &managerMocks{
		db:        mock_client.NewMockInterface(ctrl),
		storage:   mock_storage.NewMockInterface(ctrl),
		vision:    mock_vision.NewMockInterface(ctrl),
		embedding: mock_embedding.NewMockInterface(ctrl),
	}
	m := newManager(mocks.db, mocks.storage, mocks.vision, mocks.embedding, httpclient.NewHttpClient())
	return m, mocks
}

func TestAnalyzeVisionPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(7)).Return(&dbclient.Image{
		Id:       7,
		FileType: "jpg",
	}, nil)
	// First read supplies the category for prompt selection and shows the
	// image has no normal tags yet.
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		{ImageId: 7, TagId: 12, Level: common.TagLevelCategory, Name: "anime"},
	}, nil)
	mocks.storage.EXPECT().FetchImageBytes(gomock.Any(), gomock.Any()).Return([]byte("fake-image"), nil)
	mocks.vision.EXPECT().Analyze(gomock.Any(), []byte("fake-image"), "jpg", int64(12)).Return(&vision.Result{
		Description: "a red fox in grass",
		Tags:        []string{"fox", " grass ", "1080p", ""},
	}, nil)
	mocks.db.EXPECT().UpdateImageDescription(gomock.Any(), int64(7), "a red fox in grass").Return(nil)
	mocks.db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceAI).Return(&dbclient.Tag{
		Id: 101, Name: "fox", Level: common.TagLevelNormal,
	}, nil)
	mocks.db.EXPECT().ResolveTag(gomock.Any(), "grass", common.TagSourceAI).Return(&dbclient.Tag{
		Id: 102, Name: "grass", Level: common.TagLevelNormal,
	}, nil)
	// A name colliding with a resolution tag must not be attached.
	mocks.db.EXPECT().ResolveTag(gomock.Any(), "1080p", common.TagSourceAI).Return(&dbclient.Tag{
		Id: 3, Name: "1080p", Level: common.TagLevelResolution,
	}, nil)
	mocks.db.EXPECT().ReplaceImageAITags(gomock.Any(), int64(7), []int64{101, 102}).Return(nil)
	// Second read returns the final tag set the embedding text is built from.
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		{ImageId: 7, TagId: 12, Level: common.TagLevelCategory, Name: "anime"},
		{ImageId: 7, TagId: 55, Level: common.TagLevelNormal, Name: "pet", Source: common.TagSourceUser},
		{ImageId: 7, TagId: 101, Level: common.TagLevelNormal, Name: "fox", Source: common.TagSourceAI},
	}, nil)
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), "a red fox in grass", []string{"pet", "fox"}).
		Return([]float32{0.1, 0.2}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(7), pgvector.NewVector([]float32{0.1, 0.2})).Return(nil)

	outcome, err := m.analyze(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, outcome.VisionUsed)
	assert.False(t, outcome.Skipped)
	assert.Equal(t, "a red fox in grass", outcome.Description)
	assert.Equal(t, []string{"pet", "fox"}, outcome.Tags)
}

func TestAnalyzeKeepsExistingMetadata(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(9)).Return(&dbclient.Image{
		Id:          9,
		FileType:    "png",
		Description: sql.NullString{String: "portrait of a cat", Valid: true},
	}, nil)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(9)).Return([]*dbclient.ImageTagDetail{
		{ImageId: 9, TagId: 10, Level: common.TagLevelCategory, Name: "unclassified"},
		{ImageId: 9, TagId: 44, Level: common.TagLevelNormal, Name: "cat"},
	}, nil)
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), "portrait of a cat", []string{"cat"}).
		Return([]float32{0.5}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(9), pgvector.NewVector([]float32{0.5})).Return(nil)

	outcome, err := m.analyze(ctx, 9)
	assert.NoError(t, err)
	assert.False(t, outcome.VisionUsed)
	assert.False(t, outcome.Skipped)
	assert.Equal(t, "portrait of a cat", outcome.Description)
	assert.Equal(t, []string{"cat"}, outcome.Tags)
}

func TestAnalyzeDisallowedExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(3)).Return(&dbclient.Image{
		Id:       3,
		FileType: "tiff",
	}, nil)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(3)).Return(nil, nil)
	// The image still gets a vector so tag search can rank it.
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), "", nil).Return([]float32{0.0}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(3), pgvector.NewVector([]float32{0.0})).Return(nil)

	outcome, err := m.analyze(ctx, 3)
	assert.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.Contains(t, outcome.SkipReason, "tiff")
	assert.False(t, outcome.VisionUsed)
}

func TestAnalyzeUnsupportedFormatCompletesAsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(4)).Return(&dbclient.Image{
		Id:          4,
		FileType:    "gif",
		Description: sql.NullString{String: "old meme", Valid: true},
	}, nil)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(4)).Return(nil, nil)
	mocks.storage.EXPECT().FetchImageBytes(gomock.Any(), gomock.Any()).Return([]byte("gif-bytes"), nil)
	mocks.vision.EXPECT().Analyze(gomock.Any(), gomock.Any(), "gif", int64(0)).
		Return(nil, commonerrors.NewImageFormatUnsupported("gif conversion is disabled"))
	// Partial metadata still produces a vector.
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), "old meme", nil).Return([]float32{0.3}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(4), pgvector.NewVector([]float32{0.3})).Return(nil)

	outcome, err := m.analyze(ctx, 4)
	assert.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.Contains(t, outcome.SkipReason, "gif conversion is disabled")
}

func TestAnalyzeVisionErrorFailsTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(5)).Return(&dbclient.Image{
		Id:       5,
		FileType: "jpg",
	}, nil)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(5)).Return(nil, nil)
	mocks.storage.EXPECT().FetchImageBytes(gomock.Any(), gomock.Any()).Return([]byte("img"), nil)
	mocks.vision.EXPECT().Analyze(gomock.Any(), gomock.Any(), "jpg", int64(0)).
		Return(nil, commonerrors.NewUpstreamUnavailable("model endpoint down"))

	outcome, err := m.analyze(ctx, 5)
	assert.Nil(t, outcome)
	assert.Error(t, err)
	assert.True(t, commonerrors.IsUpstreamUnavailable(err))
}

func TestAnalyzeMissingImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)
	ctx := context.Background()

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(404)).Return(nil, nil)

	outcome, err := m.analyze(ctx, 404)
	assert.Nil(t, outcome)
	assert.True(t, commonerrors.IsNotFound(err))
}

func TestProcessMalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)

	mocks.db.EXPECT().FailTask(gomock.Any(), "task-bad", gomock.Any()).Return(nil)

	m.process(&dbclient.Task{
		Id:      "task-bad",
		Type:    common.TaskTypeAnalyzeImage,
		Payload: types.JSONText(`{not json`),
	})
}

func TestProcessRejectsMissingImageId(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)

	var captured string
	mocks.db.EXPECT().FailTask(gomock.Any(), "task-empty", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, errMsg string) error {
			captured = errMsg
			return nil
		},
	)

	m.process(&dbclient.Task{
		Id:      "task-empty",
		Type:    common.TaskTypeAnalyzeImage,
		Payload: types.JSONText(`{}`),
	})
	assert.Contains(t, captured, "no image id")
}

func TestProcessPersistsOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, mocks := newMockManager(ctrl)

	mocks.db.EXPECT().GetImage(gomock.Any(), int64(9)).Return(&dbclient.Image{
		Id:          9,
		FileType:    "png",
		Description: sql.NullString{String: "city at night", Valid: true},
	}, nil)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(9)).Return([]*dbclient.ImageTagDetail{
		{ImageId: 9, TagId: 20, Level: common.TagLevelNormal, Name: "city"},
	}, nil)
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), "city at night", []string{"city"}).
		Return([]float32{0.7}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(9), gomock.Any()).Return(nil)

	var result types.JSONText
	mocks.db.EXPECT().CompleteTask(gomock.Any(), "task-ok", gomock.Any()).DoAndReturn(
		func(ctx context.Context, id string, doc types.JSONText) error {
			result = doc
			return nil
		},
	)

	m.process(&dbclient.Task{
		Id:      "task-ok",
		Type:    common.TaskTypeAnalyzeImage,
		Payload: types.JSONText(`{"image_id": 9}`),
	})

	outcome := &analyzeOutcome{}
	assert.NoError(t, json.Unmarshal(result, outcome))
	assert.False(t, outcome.VisionUsed)
	assert.Equal(t, "city at night", outcome.Description)
	assert.Equal(t, []string{"city"}, outcome.Tags)
}

func TestProcessPostsCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	received := make(chan callbackBody, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := callbackBody{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		received <- body
	}))
	defer server.Close()

	m, mocks := newMockManager(ctrl)

	// Loaded once by the analysis and once more for callback enrichment.
	mocks.db.EXPECT().GetImage(gomock.Any(), int64(5)).Return(&dbclient.Image{
		Id:          5,
		FileType:    "png",
		Width:       1920,
		Height:      1080,
		Description: sql.NullString{String: "harbor at dawn", Valid: true},
	}, nil).Times(2)
	mocks.db.EXPECT().GetImageTags(gomock.Any(), int64(5)).Return([]*dbclient.ImageTagDetail{
		{ImageId: 5, TagId: 30, Level: common.TagLevelNormal, Name: "harbor"},
	}, nil)
	mocks.embedding.EXPECT().EmbedForImage(gomock.Any(), gomock.Any(), gomock.Any()).Return([]float32{0.2}, nil)
	mocks.db.EXPECT().UpdateImageEmbedding(gomock.Any(), int64(5), gomock.Any()).Return(nil)
	mocks.db.EXPECT().CompleteTask(gomock.Any(), "task-cb", gomock.Any()).Return(nil)
	mocks.db.EXPECT().GetImageLocations(gomock.Any(), int64(5)).Return([]*dbclient.ImageLocation{
		{ImageId: 5, EndpointId: 2, ObjectKey: "aa/bb/hash.png", IsPrimary: true},
	}, nil)
	endpoint := &dbclient.StorageEndpoint{Id: 2, Name: "cdn", Provider: common.ProviderS3}
	endpoint.PublicURLPrefix = sql.NullString{String: "https://cdn.example.com", Valid: true}
	mocks.db.EXPECT().GetStorageEndpoint(gomock.Any(), int64(2)).Return(endpoint, nil)

	payload, _ := json.Marshal(&analyzePayload{ImageId: 5, CallbackURL: server.URL})
	m.process(&dbclient.Task{
		Id:      "task-cb",
		Type:    common.TaskTypeAnalyzeImage,
		Payload: types.JSONText(payload),
	})

	select {
	case body := <-received:
		assert.Equal(t, "task-cb", body.TaskId)
		assert.Equal(t, int64(5), body.ImageId)
		assert.Equal(t, common.TaskStatusCompleted, body.Status)
		assert.True(t, body.Success)
		assert.Equal(t, []string{"harbor"}, body.Tags)
		assert.Equal(t, "https://cdn.example.com/aa/bb/hash.png", body.URL)
		assert.Equal(t, 1920, body.Width)
		assert.Equal(t, 1080, body.Height)
		assert.Empty(t, body.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not delivered")
	}
}

func TestProcessPostsFailureCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	received := make(chan callbackBody, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := callbackBody{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		received <- body
	}))
	defer server.Close()

	m, mocks := newMockManager(ctrl)

	// The missing image is also what cuts enrichment short.
	mocks.db.EXPECT().GetImage(gomock.Any(), int64(6)).Return(nil, nil).Times(2)
	mocks.db.EXPECT().FailTask(gomock.Any(), "task-fail", gomock.Any()).Return(nil)

	payload, _ := json.Marshal(&analyzePayload{ImageId: 6, CallbackURL: server.URL})
	m.process(&dbclient.Task{
		Id:      "task-fail",
		Type:    common.TaskTypeAnalyzeImage,
		Payload: types.JSONText(payload),
	})

	select {
	case body := <-received:
		assert.Equal(t, common.TaskStatusFailed, body.Status)
		assert.False(t, body.Success)
		assert.Empty(t, body.Tags)
		assert.Empty(t, body.URL)
		assert.NotEmpty(t, body.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not delivered")
	}
}

func TestPostCallbackRetriesServerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m, _ := newMockManager(ctrl)
	m.postCallback(server.URL, &callbackBody{TaskId: "task-retry", Status: common.TaskStatusCompleted})
	assert.Equal(t, 2, attempts)
}

func TestPostCallbackDoesNotRetryClientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	m, _ := newMockManager(ctrl)
	m.postCallback(server.URL, &callbackBody{TaskId: "task-reject", Status: common.TaskStatusCompleted})
	assert.Equal(t, 1, attempts)
}
