/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"fmt"
	"strconv"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
)

// startSync creates batch sync tasks between two endpoints.
func (h *Handler) startSync(c *gin.Context) (gin.H, error) {
	req := &tasks.SyncRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	taskIds, err := h.runner.CreateSync(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return gin.H{"task_ids": taskIds, "batches": len(taskIds)}, nil
}

// unlinkEndpoint detaches every location of an endpoint, optionally
// deleting the stored files too.
func (h *Handler) unlinkEndpoint(c *gin.Context) (gin.H, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	req := &UnlinkRequest{}
	if err = c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	taskId, err := h.runner.CreateUnlink(c.Request.Context(), endpoint.Id, req.DeleteFiles)
	if err != nil {
		return nil, err
	}
	return gin.H{"task_id": taskId}, nil
}

// hardDeleteEndpoint destroys every object and location of an endpoint.
// The request must confirm twice: the flag and the literal text.
func (h *Handler) hardDeleteEndpoint(c *gin.Context) (gin.H, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	req := &HardDeleteRequest{}
	if err = c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	if !req.Confirm || req.ConfirmText != hardDeleteConfirmText {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf(
			"a hard delete requires confirm=true and confirm_text=%q", hardDeleteConfirmText))
	}
	taskId, err := h.runner.CreateHardDelete(c.Request.Context(), endpoint.Id)
	if err != nil {
		return nil, err
	}
	return gin.H{"task_id": taskId}, nil
}

// listTasks pages through storage tasks, optionally narrowed by type or
// status. Queue tasks share the table and show up under their own types.
func (h *Handler) listTasks(c *gin.Context) (*ListTasksResponse, error) {
	conds := sqrl.And{}
	if taskType := c.Query("type"); taskType != "" {
		conds = append(conds, sqrl.Eq{"type": taskType})
	}
	if status := c.Query("status"); status != "" {
		conds = append(conds, sqrl.Eq{"status": status})
	}
	limit, _ := strconv.Atoi(c.Query("page_size"))
	if limit <= 0 || limit > 200 {
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
	rows, err := h.dbClient.SelectTasks(c.Request.Context(), cond,
		[]string{"created_at DESC", "id DESC"}, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := h.dbClient.CountTasks(c.Request.Context(), cond)
	if err != nil {
		return nil, err
	}
	items := make([]*TaskView, 0, len(rows))
	for _, task := range rows {
		items = append(items, taskView(task))
	}
	return &ListTasksResponse{Total: total, Items: items}, nil
}

func (h *Handler) getTask(c *gin.Context) (*TaskView, error) {
	task, err := h.pathTask(c)
	if err != nil {
		return nil, err
	}
	return taskView(task), nil
}

// cancelTask requests cancellation; a finished task reports canceled=false.
func (h *Handler) cancelTask(c *gin.Context) (gin.H, error) {
	task, err := h.pathTask(c)
	if err != nil {
		return nil, err
	}
	canceled, err := h.runner.CancelTask(c.Request.Context(), task.Id)
	if err != nil {
		return nil, err
	}
	return gin.H{"id": task.Id, "canceled": canceled}, nil
}

func (h *Handler) pathTask(c *gin.Context) (*dbclient.Task, error) {
	id := c.Param("id")
	if id == "" {
		return nil, commonerrors.NewBadRequest("the task id is required")
	}
	task, err := h.dbClient.GetTask(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, commonerrors.NewNotFound(common.TaskKind, id)
	}
	return task, nil
}
