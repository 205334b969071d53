/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tag_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitTagRouter registers the tag vocabulary and batch tagging routes.
func InitTagRouter(e *gin.Engine, h *Handler) {
	tagGroup := e.Group("/api/v1/tags", middleware.Authorize())
	{
		tagGroup.GET("", func(c *gin.Context) {
			handle(c, h.listTags)
		})
		tagGroup.POST("", middleware.AuditLog(), func(c *gin.Context) {
			handle(c, h.createTag)
		})
		tagGroup.DELETE(":id", middleware.RequireAdmin(), middleware.AuditLog(), func(c *gin.Context) {
			handle(c, h.deleteTag)
		})
	}
	batchAddGroup := e.Group("/api/v1/tags:batch-add", middleware.Authorize(), middleware.AuditLog())
	{
		batchAddGroup.POST("", func(c *gin.Context) {
			handle(c, h.batchAdd)
		})
	}
	batchReplaceGroup := e.Group("/api/v1/tags:batch-replace", middleware.Authorize(), middleware.AuditLog())
	{
		batchReplaceGroup.POST("", func(c *gin.Context) {
			handle(c, h.batchReplace)
		})
	}
}
