/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitSearchRouter registers the search route. Anonymous callers only see
// public images, so authorization is optional here.
func InitSearchRouter(e *gin.Engine, h *Handler) {
	group := e.Group("/api/v1/search", middleware.OptionalAuthorize())
	{
		group.POST("", func(c *gin.Context) {
			handle(c, h.search)
		})
	}
}
