/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package system_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitSystemRouter registers the runtime-config and audit routes.
func InitSystemRouter(e *gin.Engine, h *Handler) {
	group := e.Group("/api/v1/system", middleware.Authorize(), middleware.RequireAdmin())
	{
		group.GET("config", func(c *gin.Context) {
			handle(c, h.listConfig)
		})
		group.PUT("config", middleware.AuditLog(), func(c *gin.Context) {
			handle(c, h.setConfig)
		})
		group.GET("audit-logs", func(c *gin.Context) {
			handle(c, h.listAuditLogs)
		})
	}
}
