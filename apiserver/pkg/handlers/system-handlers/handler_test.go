/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package system_handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func jsonContext(t *testing.T, method, target, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestSetConfigPushesIntoProcess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mock_client.NewMockInterface(ctrl)
	h := &Handler{dbClient: db}
	c := jsonContext(t, http.MethodPut, "/api/v1/system/config",
		`{"key":"search.default_limit","value":"50"}`)

	db.EXPECT().SetConfigValue(gomock.Any(), "search.default_limit", "50").Return(nil)

	rsp, err := h.setConfig(c)
	assert.NoError(t, err)
	assert.Equal(t, "50", rsp["value"])
	assert.Equal(t, 50, commonconfig.GetSearchDefaultLimit())
}

func TestSetConfigRequiresKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := &Handler{dbClient: mock_client.NewMockInterface(ctrl)}
	c := jsonContext(t, http.MethodPut, "/api/v1/system/config", `{"value":"x"}`)

	_, err := h.setConfig(c)
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestListAuditLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := mock_client.NewMockInterface(ctrl)
	h := &Handler{dbClient: db}
	c := jsonContext(t, http.MethodGet, "/api/v1/system/audit-logs?user_id=u-1&page_size=10", "")

	db.EXPECT().SelectAuditLogs(gomock.Any(), gomock.Any(), gomock.Any(), 10, 0).
		Return([]*dbclient.AuditLog{{Id: 1, UserId: "u-1", HttpMethod: "POST", RequestPath: "/api/v1/images", ResponseStatus: 200}}, nil)
	db.EXPECT().CountAuditLogs(gomock.Any(), gomock.Any()).Return(1, nil)

	rsp, err := h.listAuditLogs(c)
	assert.NoError(t, err)
	assert.Equal(t, 1, rsp.Total)
	assert.Equal(t, "u-1", rsp.Items[0].UserId)
}
