/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package system_handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// Handler serves the runtime configuration store and the audit trail.
type Handler struct {
	dbClient dbclient.Interface
}

func NewHandler() *Handler {
	return &Handler{dbClient: dbclient.NewClient()}
}

// SetConfigRequest writes one runtime setting.
type SetConfigRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

// AuditLogView is the response shape of one audit entry. Request and
// response bodies stay out of the listing; they are large and already
// sanitized at capture time.
type AuditLogView struct {
	Id             int64      `json:"id"`
	UserId         string     `json:"user_id"`
	UserName       string     `json:"user_name,omitempty"`
	UserType       string     `json:"user_type,omitempty"`
	ClientIP       string     `json:"client_ip,omitempty"`
	HttpMethod     string     `json:"http_method"`
	RequestPath    string     `json:"request_path"`
	ResourceType   string     `json:"resource_type,omitempty"`
	ResourceName   string     `json:"resource_name,omitempty"`
	ResponseStatus int        `json:"response_status"`
	LatencyMs      int64      `json:"latency_ms,omitempty"`
	TraceId        string     `json:"trace_id,omitempty"`
	CreateTime     *time.Time `json:"create_time,omitempty"`
}

// ListAuditLogsResponse is one audit page.
type ListAuditLogsResponse struct {
	Total int             `json:"total"`
	Items []*AuditLogView `json:"items"`
}

// listConfig returns every runtime setting.
func (h *Handler) listConfig(c *gin.Context) (map[string]string, error) {
	return h.dbClient.ListConfigValues(c.Request.Context())
}

// setConfig writes one runtime setting and pushes it into the process
// configuration, so typed getters observe the change without a restart.
func (h *Handler) setConfig(c *gin.Context) (gin.H, error) {
	req := &SetConfigRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, commonerrors.NewBadRequest("the config key is empty")
	}
	if err := h.dbClient.SetConfigValue(c.Request.Context(), key, req.Value); err != nil {
		return nil, err
	}
	commonconfig.SetValue(key, req.Value)
	return gin.H{"key": key, "value": req.Value}, nil
}

// listAuditLogs pages through the audit trail, newest first.
func (h *Handler) listAuditLogs(c *gin.Context) (*ListAuditLogsResponse, error) {
	conds := sqrl.And{}
	if userId := c.Query("user_id"); userId != "" {
		conds = append(conds, sqrl.Eq{"user_id": userId})
	}
	if method := c.Query("method"); method != "" {
		conds = append(conds, sqrl.Eq{"http_method": strings.ToUpper(method)})
	}
	if resource := c.Query("resource_type"); resource != "" {
		conds = append(conds, sqrl.Eq{"resource_type": resource})
	}
	limit, _ := strconv.Atoi(c.Query("page_size"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	var cond sqrl.Sqlizer
	if len(conds) > 0 {
		cond = conds
	}
	rows, err := h.dbClient.SelectAuditLogs(c.Request.Context(), cond,
		[]string{"create_time DESC", "id DESC"}, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := h.dbClient.CountAuditLogs(c.Request.Context(), cond)
	if err != nil {
		return nil, err
	}
	items := make([]*AuditLogView, 0, len(rows))
	for _, row := range rows {
		items = append(items, auditLogView(row))
	}
	return &ListAuditLogsResponse{Total: total, Items: items}, nil
}

func auditLogView(row *dbclient.AuditLog) *AuditLogView {
	view := &AuditLogView{
		Id:             row.Id,
		UserId:         row.UserId,
		UserName:       row.UserName.String,
		UserType:       row.UserType.String,
		ClientIP:       row.ClientIP.String,
		HttpMethod:     row.HttpMethod,
		RequestPath:    row.RequestPath,
		ResourceType:   row.ResourceType.String,
		ResourceName:   row.ResourceName.String,
		ResponseStatus: row.ResponseStatus,
		LatencyMs:      row.LatencyMs.Int64,
		TraceId:        row.TraceId.String,
	}
	if row.CreateTime.Valid {
		t := row.CreateTime.Time
		view.CreateTime = &t
	}
	return view
}

type handleFunc[T any] func(*gin.Context) (T, error)

func handle[T any](c *gin.Context, fn handleFunc[T]) {
	rsp, err := fn(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	code := http.StatusOK
	if c.Writer.Status() > 0 {
		code = c.Writer.Status()
	}
	c.JSON(code, rsp)
}
