/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search

import (
	"context"
	"testing"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	mock_embedding "github.com/AMD-AIG-AIMA/Iris/common/pkg/embedding/mock"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mock_client.MockInterface, *mock_embedding.MockInterface) {
	db := mock_client.NewMockInterface(ctrl)
	emb := mock_embedding.NewMockInterface(ctrl)
	return newService(db, emb), db, emb
}

func testImage(id int64, uploadedBy string) *dbclient.Image {
	return &dbclient.Image{
		Id:         id,
		FileHash:   "hash-a",
		FileType:   "jpg",
		FileSizeMB: 1.5,
		Width:      1920,
		Height:     1080,
		IsPublic:   true,
		UploadedBy: dbutils.NullString(uploadedBy),
	}
}

func cdnEndpoint(id int64) *dbclient.StorageEndpoint {
	return &dbclient.StorageEndpoint{
		Id:              id,
		Name:            "mirror-a",
		Provider:        common.ProviderS3,
		BucketName:      dbutils.NullString("images"),
		PublicURLPrefix: dbutils.NullString("https://cdn.example.com"),
		IsEnabled:       true,
		IsHealthy:       true,
	}
}

func expectEnrichment(db *mock_client.MockInterface, imageIds []int64) {
	db.EXPECT().GetImageTagsByImageIds(gomock.Any(), imageIds).Return([]*dbclient.ImageTagDetail{
		{ImageId: imageIds[0], TagId: 101, Name: "fox", Level: common.TagLevelNormal, Source: common.TagSourceUser},
	}, nil)
	db.EXPECT().GetLocationsByImageIds(gomock.Any(), imageIds).Return([]*dbclient.ImageLocation{
		{ImageId: imageIds[0], EndpointId: 1, ObjectKey: "images/ab/1.jpg",
			IsPrimary: true, SyncStatus: common.SyncStatusSynced},
	}, nil)
	db.EXPECT().SelectStorageEndpoints(gomock.Any(), nil, nil, 0, 0).
		Return([]*dbclient.StorageEndpoint{cdnEndpoint(1)}, nil)
	db.EXPECT().GetUsersByIds(gomock.Any(), []string{"u-1"}).
		Return([]*dbclient.User{{Id: "u-1", Username: "alice"}}, nil)
}

func TestSearchListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db, _ := newTestService(ctrl)

	db.EXPECT().SelectImages(gomock.Any(), gomock.Any(),
		[]string{"created_at DESC", "id DESC"}, 20, 0).
		Return([]*dbclient.Image{testImage(1, "u-1")}, nil)
	db.EXPECT().CountImages(gomock.Any(), gomock.Any()).Return(5, nil)
	expectEnrichment(db, []int64{1})

	resp, err := s.Search(context.Background(), &Request{VisibleToUserId: "u-1"})
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, "https://cdn.example.com/images/ab/1.jpg", item.URL)
	assert.Equal(t, "alice", item.UploaderName)
	assert.Len(t, item.Tags, 1)
	assert.Equal(t, "fox", item.Tags[0].Name)
	assert.Zero(t, item.FinalScore)
}

func TestSearchHybrid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db, emb := newTestService(ctrl)

	emb.EXPECT().Embed(gomock.Any(), "fox").Return([]float32{0.1, 0.2}, nil)
	db.EXPECT().SearchScoredImages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query sqrl.Sqlizer) ([]*dbclient.ScoredImage, error) {
			sql, args, err := query.ToSql()
			assert.NoError(t, err)
			assert.Contains(t, sql, "AS final_score")
			assert.Contains(t, sql, "ORDER BY final_score DESC")
			assert.Contains(t, sql, "LIMIT 20")
			assert.NotEmpty(t, args)
			return []*dbclient.ScoredImage{{
				Image:       *testImage(1, "u-1"),
				VectorScore: 0.9,
				TagScore:    1,
				FinalScore:  0.93,
			}}, nil
		})
	db.EXPECT().CountImages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cond sqrl.Sqlizer) (int, error) {
			sql, _, err := cond.ToSql()
			assert.NoError(t, err)
			// The count reuses the pass rule inline, without aliases.
			assert.Contains(t, sql, "embedding <=>")
			assert.NotContains(t, sql, "vector_score")
			return 1, nil
		})
	expectEnrichment(db, []int64{1})

	resp, err := s.Search(context.Background(), &Request{Text: " fox ", VisibleToUserId: "u-1"})
	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 0.9, resp.Items[0].VectorScore)
	assert.Equal(t, 1.0, resp.Items[0].TagScore)
	assert.Equal(t, 0.93, resp.Items[0].FinalScore)
}

func TestSearchEmbedErrorFailsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, emb := newTestService(ctrl)

	emb.EXPECT().Embed(gomock.Any(), "fox").Return(nil, assert.AnError)

	_, err := s.Search(context.Background(), &Request{Text: "fox"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSearchRejectsBadSort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, _ := newTestService(ctrl)

	_, err := s.Search(context.Background(), &Request{SortBy: "file_hash"})
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestEnrichImagesEmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, _ := newTestService(ctrl)

	views, err := s.EnrichImages(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, views)
}

func TestEnrichImagesFallsBackToOriginalURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db, _ := newTestService(ctrl)

	image := testImage(2, "")
	image.OriginalURL = dbutils.NullString("https://source.example.com/2.jpg")

	db.EXPECT().GetImageTagsByImageIds(gomock.Any(), []int64{2}).Return(nil, nil)
	// The only location is still syncing, so nothing can serve the bytes.
	db.EXPECT().GetLocationsByImageIds(gomock.Any(), []int64{2}).Return([]*dbclient.ImageLocation{
		{ImageId: 2, EndpointId: 1, ObjectKey: "ab/2.jpg", SyncStatus: common.SyncStatusPending},
	}, nil)
	db.EXPECT().SelectStorageEndpoints(gomock.Any(), nil, nil, 0, 0).
		Return([]*dbclient.StorageEndpoint{cdnEndpoint(1)}, nil)

	views, err := s.EnrichImages(context.Background(), []*dbclient.Image{image})
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, "https://source.example.com/2.jpg", views[0].URL)
	assert.Empty(t, views[0].Tags)
	assert.Empty(t, views[0].UploaderName)
}
