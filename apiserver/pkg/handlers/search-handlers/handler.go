/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search_handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
)

// Handler serves the hybrid search route.
type Handler struct {
	searcher search.Interface
}

func NewHandler() *Handler {
	return &Handler{searcher: search.NewService()}
}

// search parses the request body and binds the visibility scope to the
// authenticated caller before delegating to the search service.
func (h *Handler) search(c *gin.Context) (*search.Response, error) {
	req := &search.Request{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	req.VisibleToUserId = c.GetString(common.UserId)
	req.SkipVisibility = c.GetString(common.UserType) == common.UserAdmin
	return h.searcher.Search(c.Request.Context(), req)
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
