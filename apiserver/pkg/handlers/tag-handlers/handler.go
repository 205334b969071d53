/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tag_handlers

import (
	"net/http"
	"strconv"
	"strings"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
)

// Handler serves the tag vocabulary and the batch tagging routes.
type Handler struct {
	dbClient dbclient.Interface
	tags     tags.Interface
}

func NewHandler() *Handler {
	return &Handler{
		dbClient: dbclient.NewClient(),
		tags:     tags.NewService(),
	}
}

// listTags returns a page of the vocabulary, optionally narrowed by level
// or a name substring. Categories and resolutions sort by their seeded
// order, normal tags by popularity.
func (h *Handler) listTags(c *gin.Context) (*ListTagsResponse, error) {
	conds := sqrl.And{}
	if raw := c.Query("level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < common.TagLevelCategory || level > common.TagLevelNormal {
			return nil, commonerrors.NewBadRequest("level must be 0, 1 or 2")
		}
		conds = append(conds, sqrl.Eq{"level": level})
	}
	if keyword := strings.TrimSpace(c.Query("keyword")); keyword != "" {
		conds = append(conds, sqrl.ILike{"name": "%" + keyword + "%"})
	}
	limit, offset := pagination(c)

	var cond sqrl.Sqlizer
	if len(conds) > 0 {
		cond = conds
	}
	rows, err := h.dbClient.SelectTags(c.Request.Context(), cond,
		[]string{"level ASC", "sort_order ASC", "usage_count DESC", "name ASC"}, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := h.dbClient.CountTags(c.Request.Context(), cond)
	if err != nil {
		return nil, err
	}
	return &ListTagsResponse{Total: total, Items: tagViews(rows)}, nil
}

// createTag creates a normal-level tag on behalf of the caller. The
// category and resolution levels are seeded, never created over the API.
func (h *Handler) createTag(c *gin.Context) (*TagView, error) {
	req := &CreateTagRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	tag, err := h.tags.CreateUserTag(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return tagView(tag), nil
}

// deleteTag removes a normal-level tag and its associations.
func (h *Handler) deleteTag(c *gin.Context) (gin.H, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, commonerrors.NewBadRequest("the tag id must be a positive integer")
	}
	tag, err := h.dbClient.GetTag(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, commonerrors.NewNotFound(common.TagKind, c.Param("id"))
	}
	if tag.Level != common.TagLevelNormal {
		return nil, commonerrors.NewBadRequest("only normal tags can be deleted")
	}
	if err = h.dbClient.DeleteTag(c.Request.Context(), id); err != nil {
		return nil, err
	}
	return gin.H{"id": id, "deleted": true}, nil
}

// batchAdd associates the named tags with every listed image. Non-admin
// callers only touch their own uploads.
func (h *Handler) batchAdd(c *gin.Context) (gin.H, error) {
	req, ownedBy, err := h.batchRequest(c)
	if err != nil {
		return nil, err
	}
	err = h.tags.BatchAddByNames(c.Request.Context(), req.ImageIds, req.Names,
		c.GetString(common.UserId), ownedBy)
	if err != nil {
		return nil, err
	}
	return gin.H{"images": len(req.ImageIds)}, nil
}

// batchReplace swaps the normal-level tag set of every listed image.
func (h *Handler) batchReplace(c *gin.Context) (gin.H, error) {
	req, ownedBy, err := h.batchRequest(c)
	if err != nil {
		return nil, err
	}
	err = h.tags.BatchReplaceByNames(c.Request.Context(), req.ImageIds, req.Names,
		c.GetString(common.UserId), ownedBy)
	if err != nil {
		return nil, err
	}
	return gin.H{"images": len(req.ImageIds)}, nil
}

func (h *Handler) batchRequest(c *gin.Context) (*BatchTagRequest, string, error) {
	req := &BatchTagRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, "", commonerrors.NewBadRequest(err.Error())
	}
	if len(req.ImageIds) == 0 {
		return nil, "", commonerrors.NewBadRequest("image_ids is empty")
	}
	ownedBy := ""
	if c.GetString(common.UserType) != common.UserAdmin {
		ownedBy = c.GetString(common.UserId)
	}
	return req, ownedBy, nil
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("page_size"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
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
