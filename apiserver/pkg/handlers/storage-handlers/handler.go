/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
)

// taskRunner is the long-task surface the handler needs. *tasks.Runner
// implements it; tests substitute a fake.
type taskRunner interface {
	CreateSync(ctx context.Context, req *tasks.SyncRequest) ([]string, error)
	CreateUnlink(ctx context.Context, endpointId int64, deleteFiles bool) (string, error)
	CreateHardDelete(ctx context.Context, endpointId int64) (string, error)
	CancelTask(ctx context.Context, taskId string) (bool, error)
}

// Handler serves the storage surface: endpoint management and the
// long-running storage tasks.
type Handler struct {
	dbClient dbclient.Interface
	storage  storage.Interface
	runner   taskRunner
}

// NewHandler wires the handler against the process-wide services.
func NewHandler(runner *tasks.Runner) *Handler {
	return &Handler{
		dbClient: dbclient.NewClient(),
		storage:  storage.NewManager(),
		runner:   runner,
	}
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
