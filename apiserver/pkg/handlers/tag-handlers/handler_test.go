/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tag_handlers

import (
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
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
)

func newTestHandler(ctrl *gomock.Controller) (*Handler, *mock_client.MockInterface) {
	db := mock_client.NewMockInterface(ctrl)
	return &Handler{dbClient: db, tags: tags.New(db)}, db
}

func jsonContext(t *testing.T, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestListTagsRejectsUnknownLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/tags?level=7", "")

	_, err := h.listTags(c)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestListTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodGet, "/api/v1/tags?level=2&page=2&page_size=10", "")

	db.EXPECT().SelectTags(gomock.Any(), gomock.Any(), gomock.Any(), 10, 10).
		Return([]*dbclient.Tag{{Id: 5, Name: "fox", Level: common.TagLevelNormal}}, nil)
	db.EXPECT().CountTags(gomock.Any(), gomock.Any()).Return(31, nil)

	rsp, err := h.listTags(c)
	assert.NoError(t, err)
	assert.Equal(t, 31, rsp.Total)
	assert.Len(t, rsp.Items, 1)
	assert.Equal(t, "fox", rsp.Items[0].Name)
}

func TestDeleteTagProtectsSeededLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodDelete, "/api/v1/tags/10", "")
	c.Params = gin.Params{{Key: "id", Value: "10"}}

	db.EXPECT().GetTag(gomock.Any(), int64(10)).
		Return(&dbclient.Tag{Id: 10, Level: common.TagLevelCategory}, nil)

	_, err := h.deleteTag(c)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestBatchAddScopesToOwnImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodPost, "/api/v1/tags:batch-add",
		`{"image_ids":[1,2],"names":["fox"]}`)
	c.Set(common.UserId, "u-1")
	c.Set(common.UserType, common.UserSelf)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).
		Return(&dbclient.Tag{Id: 9, Name: "fox", Level: common.TagLevelNormal}, nil)
	db.EXPECT().BatchAddImageTags(gomock.Any(), []int64{1, 2}, []int64{9},
		common.TagSourceUser, "u-1", "u-1").Return(nil)

	rsp, err := h.batchAdd(c)
	assert.NoError(t, err)
	assert.Equal(t, 2, rsp["images"])
}

func TestBatchReplaceAdminTouchesAnyImage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, db := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodPost, "/api/v1/tags:batch-replace",
		`{"image_ids":[3],"names":[]}`)
	c.Set(common.UserId, "admin-1")
	c.Set(common.UserType, common.UserAdmin)

	db.EXPECT().BatchReplaceImageTags(gomock.Any(), []int64{3}, []int64{},
		common.TagSourceUser, "admin-1", "").Return(nil)

	rsp, err := h.batchReplace(c)
	assert.NoError(t, err)
	assert.Equal(t, 1, rsp["images"])
}

func TestBatchAddRequiresImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _ := newTestHandler(ctrl)
	c := jsonContext(t, http.MethodPost, "/api/v1/tags:batch-add", `{"names":["fox"]}`)

	_, err := h.batchAdd(c)
	assert.True(t, commonerrors.IsBadRequest(err))
}
