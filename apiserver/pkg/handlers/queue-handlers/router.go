/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package queue_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitQueueRouter registers the queue control routes. Lifecycle and bulk
// operations are admin-only; enqueue and status serve any signed-in user.
func InitQueueRouter(e *gin.Engine, h *Handler) {
	group := e.Group("/api/v1/queue", middleware.Authorize())
	{
		group.GET("status", func(c *gin.Context) {
			handle(c, h.status)
		})
		group.POST("enqueue", middleware.AuditLog(), func(c *gin.Context) {
			handle(c, h.enqueue)
		})
	}
	adminGroup := e.Group("/api/v1/queue", middleware.Authorize(), middleware.RequireAdmin(), middleware.AuditLog())
	{
		adminGroup.POST("start", func(c *gin.Context) {
			handle(c, h.start)
		})
		adminGroup.POST("stop", func(c *gin.Context) {
			handle(c, h.stop)
		})
		adminGroup.POST("clear-pending", func(c *gin.Context) {
			handle(c, h.clearPending)
		})
		adminGroup.POST("clear-finished", func(c *gin.Context) {
			handle(c, h.clearFinished)
		})
		adminGroup.POST("retry-failed", func(c *gin.Context) {
			handle(c, h.retryFailed)
		})
	}
}
