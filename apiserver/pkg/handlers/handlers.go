/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	collection_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/collection-handlers"
	data_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/data-handlers"
	image_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/image-handlers"
	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/middleware"
	queue_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/queue-handlers"
	search_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/search-handlers"
	storage_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/storage-handlers"
	system_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/system-handlers"
	tag_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/tag-handlers"
	user_handlers "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/user-handlers"
	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
)

// InitHttpHandlers builds the Gin engine and registers every API route.
// The long-task runner is shared with the image and storage handlers so
// uploads can trigger backups and admins can launch sync jobs.
func InitHttpHandlers(runner *tasks.Runner) *gin.Engine {
	engine := gin.New()
	engine.Use(apiutils.Logger(), gin.Recovery())
	if commonconfig.IsTracingEnable() {
		engine.Use(middleware.HandleTracing())
	}
	engine.NoRoute(func(c *gin.Context) {
		apiutils.AbortWithApiError(c, commonerrors.NewNotFoundWithMessage(c.Request.RequestURI+" not found"))
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	image_handlers.InitImageRouter(engine, image_handlers.NewHandler(runner))
	search_handlers.InitSearchRouter(engine, search_handlers.NewHandler())
	tag_handlers.InitTagRouter(engine, tag_handlers.NewHandler())
	collection_handlers.InitCollectionRouter(engine, collection_handlers.NewHandler())
	queue_handlers.InitQueueRouter(engine, queue_handlers.NewHandler())
	storage_handlers.InitStorageRouter(engine, storage_handlers.NewHandler(runner))
	user_handlers.InitUserRouter(engine, user_handlers.NewHandler())
	system_handlers.InitSystemRouter(engine, system_handlers.NewHandler())
	data_handlers.InitDataRouter(engine, data_handlers.NewHandler())

	return engine
}
