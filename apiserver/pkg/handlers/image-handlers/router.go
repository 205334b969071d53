/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitImageRouter registers the image ingestion and management routes.
func InitImageRouter(e *gin.Engine, h *Handler) {
	imageGroup := e.Group("/api/v1/images", middleware.Authorize(), middleware.AuditLog())
	{
		imageGroup.POST("", func(c *gin.Context) {
			handle(c, h.uploadImage)
		})
		imageGroup.PUT(":id", func(c *gin.Context) {
			handle(c, h.updateImage)
		})
		imageGroup.DELETE(":id", func(c *gin.Context) {
			handle(c, h.deleteImage)
		})
	}
	urlGroup := e.Group("/api/v1/images:url", middleware.Authorize(), middleware.AuditLog())
	{
		urlGroup.POST("", func(c *gin.Context) {
			handle(c, h.ingestFromURL)
		})
	}
	archiveGroup := e.Group("/api/v1/images:archive", middleware.Authorize(), middleware.AuditLog())
	{
		archiveGroup.POST("", func(c *gin.Context) {
			handle(c, h.ingestArchive)
		})
	}
	readGroup := e.Group("/api/v1/images", middleware.OptionalAuthorize())
	{
		readGroup.GET("", func(c *gin.Context) {
			handle(c, h.listImages)
		})
		readGroup.GET(":id", func(c *gin.Context) {
			handle(c, h.getImage)
		})
	}
}
