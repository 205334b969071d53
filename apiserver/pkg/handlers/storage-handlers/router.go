/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitStorageRouter registers the endpoint and storage-task routes. The
// whole surface is admin-only: endpoints carry credentials and the tasks
// move or destroy objects.
func InitStorageRouter(e *gin.Engine, h *Handler) {
	endpointGroup := e.Group("/api/v1/storage/endpoints",
		middleware.Authorize(), middleware.RequireAdmin(), middleware.AuditLog())
	{
		endpointGroup.GET("", func(c *gin.Context) {
			handle(c, h.listEndpoints)
		})
		endpointGroup.POST("", func(c *gin.Context) {
			handle(c, h.createEndpoint)
		})
		endpointGroup.GET(":id", func(c *gin.Context) {
			handle(c, h.getEndpoint)
		})
		endpointGroup.PUT(":id", func(c *gin.Context) {
			handle(c, h.updateEndpoint)
		})
		endpointGroup.DELETE(":id", func(c *gin.Context) {
			handle(c, h.deleteEndpoint)
		})
		endpointGroup.GET(":id/deletion-impact", func(c *gin.Context) {
			handle(c, h.deletionImpact)
		})
		endpointGroup.POST(":id/test-connection", func(c *gin.Context) {
			handle(c, h.testConnection)
		})
		endpointGroup.POST(":id/set-default-upload", func(c *gin.Context) {
			handle(c, h.setDefaultUpload)
		})
		endpointGroup.POST(":id/unlink", func(c *gin.Context) {
			handle(c, h.unlinkEndpoint)
		})
		endpointGroup.POST(":id/hard-delete", func(c *gin.Context) {
			handle(c, h.hardDeleteEndpoint)
		})
	}
	taskGroup := e.Group("/api/v1/storage/tasks",
		middleware.Authorize(), middleware.RequireAdmin())
	{
		taskGroup.GET("", func(c *gin.Context) {
			handle(c, h.listTasks)
		})
		taskGroup.GET(":id", func(c *gin.Context) {
			handle(c, h.getTask)
		})
		taskGroup.GET(":id/watch", h.watchTask)
		taskGroup.POST(":id/cancel", middleware.AuditLog(), func(c *gin.Context) {
			handle(c, h.cancelTask)
		})
	}
	syncGroup := e.Group("/api/v1/storage/sync",
		middleware.Authorize(), middleware.RequireAdmin(), middleware.AuditLog())
	{
		syncGroup.POST("", func(c *gin.Context) {
			handle(c, h.startSync)
		})
	}
}
