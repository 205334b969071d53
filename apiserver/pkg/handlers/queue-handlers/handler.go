/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package queue_handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/queue"
)

// manager is the queue control surface. *queue.Manager implements it.
type manager interface {
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	GetStatus(ctx context.Context) (*queue.Status, error)
	EnqueueAnalyze(ctx context.Context, imageIds []int64, callbackURL string) (int, error)
	ClearPending(ctx context.Context) (int64, error)
	ClearFinished(ctx context.Context) (int64, error)
	RetryFailed(ctx context.Context) (int64, error)
}

// Handler serves the queue control routes.
type Handler struct {
	queue manager
}

func NewHandler() *Handler {
	return &Handler{queue: queue.NewManager()}
}

// EnqueueRequest schedules analyze tasks for existing images.
type EnqueueRequest struct {
	ImageIds    []int64 `json:"image_ids" binding:"required"`
	CallbackURL string  `json:"callback_url,omitempty"`
}

func (h *Handler) start(c *gin.Context) (gin.H, error) {
	// The workers outlive the request, so they run on a detached context.
	if err := h.queue.Start(context.Background()); err != nil {
		return nil, err
	}
	return gin.H{"running": true}, nil
}

func (h *Handler) stop(c *gin.Context) (gin.H, error) {
	h.queue.Stop()
	return gin.H{"running": false}, nil
}

func (h *Handler) status(c *gin.Context) (*queue.Status, error) {
	return h.queue.GetStatus(c.Request.Context())
}

func (h *Handler) enqueue(c *gin.Context) (gin.H, error) {
	req := &EnqueueRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	added, err := h.queue.EnqueueAnalyze(c.Request.Context(), req.ImageIds, req.CallbackURL)
	if err != nil {
		return nil, err
	}
	return gin.H{"enqueued": added}, nil
}

func (h *Handler) clearPending(c *gin.Context) (gin.H, error) {
	cleared, err := h.queue.ClearPending(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"cleared": cleared}, nil
}

func (h *Handler) clearFinished(c *gin.Context) (gin.H, error) {
	cleared, err := h.queue.ClearFinished(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"cleared": cleared}, nil
}

func (h *Handler) retryFailed(c *gin.Context) (gin.H, error) {
	retried, err := h.queue.RetryFailed(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"retried": retried}, nil
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
