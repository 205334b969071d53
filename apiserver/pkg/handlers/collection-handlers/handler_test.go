/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package collection_handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
)

type fakeSearcher struct{}

func (fakeSearcher) Search(context.Context, *search.Request) (*search.Response, error) {
	return &search.Response{}, nil
}

func (fakeSearcher) EnrichImages(_ context.Context, images []*dbclient.Image) ([]*search.ImageView, error) {
	views := make([]*search.ImageView, 0, len(images))
	for _, image := range images {
		views = append(views, &search.ImageView{Id: image.Id})
	}
	return views, nil
}

func newTestHandler(ctrl *gomock.Controller) (*Handler, *mock_client.MockInterface) {
	db := mock_client.NewMockInterface(ctrl)
	return &Handler{dbClient: db, searcher: fakeSearcher{}}, db
}

func jsonContext(t *testing.T, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func privateCollection(id int64, owner string) *dbclient.Collection {
	collection := &dbclient.Collection{Id: id, Name: "picks"}
	collection.CreatedBy.String, collection.CreatedBy.Valid = owner, true
	return collection
}

func TestCreateCollectionRecordsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodPost, "/api/v1/collections", `{"name":"  picks  "}`)
	c.Set(common.UserId, "u-1")

	db.EXPECT().InsertCollection(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, collection *dbclient.Collection) (int64, error) {
			assert.Equal(t, "picks", collection.Name)
			assert.Equal(t, "u-1", collection.CreatedBy.String)
			return 7, nil
		})

	view, err := h.createCollection(c)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), view.Id)
	assert.Equal(t, "u-1", view.CreatedBy)
}

func TestListCollectionsScopesToViewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/collections", "")
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().SelectCollections(gomock.Any(), gomock.Any(), gomock.Any(), 0, 0).
		DoAndReturn(func(_ context.Context, cond interface{}, _ []string, _, _ int) ([]*dbclient.Collection, error) {
			assert.NotNil(t, cond)
			return []*dbclient.Collection{privateCollection(7, "u-1")}, nil
		})
	db.EXPECT().CountCollectionImages(gomock.Any(), int64(7)).Return(3, nil)

	views, err := h.listCollections(c)
	assert.NoError(t, err)
	assert.Len(t, views, 1)
	assert.Equal(t, 3, views[0].ImageCount)
}

func TestListCollectionsAdminSeesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/collections", "")
	c.Set(common.UserId, "admin")
	c.Set(common.UserType, common.UserAdmin)

	db.EXPECT().SelectCollections(gomock.Any(), nil, gomock.Any(), 0, 0).
		Return([]*dbclient.Collection{}, nil)

	views, err := h.listCollections(c)
	assert.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetCollectionImagesHidesPrivateCollections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/collections/7/images", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(common.UserId, "u-2")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().GetCollection(gomock.Any(), int64(7)).Return(privateCollection(7, "u-1"), nil)

	_, err := h.getCollectionImages(c)
	assert.True(t, commonerrors.IsNotFound(err))
}

func TestGetCollectionImagesEnriches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/collections/7/images", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().GetCollection(gomock.Any(), int64(7)).Return(privateCollection(7, "u-1"), nil)
	db.EXPECT().GetCollectionImageIds(gomock.Any(), int64(7)).Return([]int64{5, 6}, nil)
	db.EXPECT().GetImagesByIds(gomock.Any(), []int64{5, 6}).
		Return([]*dbclient.Image{{Id: 5}, {Id: 6}}, nil)

	views, err := h.getCollectionImages(c)
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, int64(5), views[0].Id)
}

func TestAddImagesRejectsNonOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodPost, "/api/v1/collections/7/images", `{"image_ids":[5]}`)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(common.UserId, "u-2")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().GetCollection(gomock.Any(), int64(7)).Return(privateCollection(7, "u-1"), nil)

	_, err := h.addImages(c)
	assert.True(t, commonerrors.IsForbidden(err))
}

func TestDeleteCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodDelete, "/api/v1/collections/7", "")
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().GetCollection(gomock.Any(), int64(7)).Return(privateCollection(7, "u-1"), nil)
	db.EXPECT().DeleteCollection(gomock.Any(), int64(7)).Return(nil)

	rsp, err := h.deleteCollection(c)
	assert.NoError(t, err)
	assert.Equal(t, true, rsp["deleted"])
}
