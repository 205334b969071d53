/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/queue"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

// enqueuer is the queue surface the handler needs. *queue.Manager
// implements it; tests substitute a fake.
type enqueuer interface {
	EnqueueAnalyze(ctx context.Context, imageIds []int64, callbackURL string) (int, error)
	EnqueueRebuild(ctx context.Context, imageIds []int64, callbackURL string) (int, error)
}

// backupTrigger hands a freshly ingested image to the replication
// controller. *tasks.Runner implements it.
type backupTrigger interface {
	TriggerBackup(imageId int64)
}

// Handler serves the image surface: ingestion (upload, remote URL, zip
// archive), listing, update and delete.
type Handler struct {
	dbClient   dbclient.Interface
	storage    storage.Interface
	tags       tags.Interface
	search     search.Interface
	queue      enqueuer
	backup     backupTrigger
	httpClient httpclient.Interface
}

// NewHandler wires the handler against the process-wide services.
func NewHandler(runner *tasks.Runner) *Handler {
	db := dbclient.NewClient()
	return &Handler{
		dbClient:   db,
		storage:    storage.NewManager(),
		tags:       tags.NewService(),
		search:     search.NewService(),
		queue:      queue.NewManager(),
		backup:     runner,
		httpClient: httpclient.NewHttpClient(),
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
	// If a status was previously set, use that status in the response.
	if c.Writer.Status() > 0 {
		code = c.Writer.Status()
	}
	switch rspType := any(rsp).(type) {
	case []byte:
		c.Data(code, common.JsonContentType, rspType)
	case string:
		c.Data(code, common.JsonContentType, []byte(rspType))
	default:
		c.JSON(code, rspType)
	}
}
