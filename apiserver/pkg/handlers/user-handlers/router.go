/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package user_handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
)

// InitUserRouter registers registration, session and roster routes.
func InitUserRouter(e *gin.Engine, h *Handler) {
	openGroup := e.Group("/api/v1/users")
	{
		openGroup.POST("register", func(c *gin.Context) {
			handle(c, h.register)
		})
		openGroup.POST("login", func(c *gin.Context) {
			handle(c, h.login)
		})
		openGroup.POST("logout", func(c *gin.Context) {
			handle(c, h.logout)
		})
	}
	authGroup := e.Group("/api/v1/users", middleware.Authorize())
	{
		authGroup.GET("me", func(c *gin.Context) {
			handle(c, h.me)
		})
		authGroup.GET("", middleware.RequireAdmin(), func(c *gin.Context) {
			handle(c, h.listUsers)
		})
	}
}
