/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package collection_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitCollectionRouter registers the collection routes.
func InitCollectionRouter(e *gin.Engine, h *Handler) {
	readGroup := e.Group("/api/v1/collections", middleware.Authorize())
	{
		readGroup.GET("", func(c *gin.Context) {
			handle(c, h.listCollections)
		})
		readGroup.GET(":id/images", func(c *gin.Context) {
			handle(c, h.getCollectionImages)
		})
	}
	writeGroup := e.Group("/api/v1/collections", middleware.Authorize(), middleware.AuditLog())
	{
		writeGroup.POST("", func(c *gin.Context) {
			handle(c, h.createCollection)
		})
		writeGroup.POST(":id/images", func(c *gin.Context) {
			handle(c, h.addImages)
		})
		writeGroup.DELETE(":id/images/:imageId", func(c *gin.Context) {
			handle(c, h.removeImage)
		})
		writeGroup.DELETE(":id", func(c *gin.Context) {
			handle(c, h.deleteCollection)
		})
	}
}
