/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package collection_handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
)

// Handler serves user-curated image collections.
type Handler struct {
	dbClient dbclient.Interface
	searcher search.Interface
}

func NewHandler() *Handler {
	return &Handler{
		dbClient: dbclient.NewClient(),
		searcher: search.NewService(),
	}
}

// CollectionRequest creates a collection.
type CollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public,omitempty"`
}

// CollectionView is the response shape of one collection.
type CollectionView struct {
	Id          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	IsPublic    bool       `json:"is_public"`
	ImageCount  int        `json:"image_count"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CollectionImagesRequest adds images to a collection.
type CollectionImagesRequest struct {
	ImageIds []int64 `json:"image_ids" binding:"required"`
}

func (h *Handler) listCollections(c *gin.Context) ([]*CollectionView, error) {
	var cond sqrl.Sqlizer
	if c.GetString(common.UserType) != common.UserAdmin {
		cond = sqrl.Or{
			sqrl.Eq{"is_public": true},
			sqrl.Eq{"created_by": c.GetString(common.UserId)},
		}
	}
	rows, err := h.dbClient.SelectCollections(c.Request.Context(), cond,
		[]string{"created_at DESC"}, 0, 0)
	if err != nil {
		return nil, err
	}
	views := make([]*CollectionView, 0, len(rows))
	for _, collection := range rows {
		view := collectionView(collection)
		if count, err := h.dbClient.CountCollectionImages(c.Request.Context(), collection.Id); err == nil {
			view.ImageCount = count
		}
		views = append(views, view)
	}
	return views, nil
}

func (h *Handler) createCollection(c *gin.Context) (*CollectionView, error) {
	req := &CollectionRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, commonerrors.NewBadRequest("the collection name is empty")
	}
	collection := &dbclient.Collection{
		Name:        strings.TrimSpace(req.Name),
		Description: dbutils.NullString(req.Description),
		CreatedBy:   dbutils.NullString(c.GetString(common.UserId)),
		IsPublic:    req.IsPublic,
	}
	id, err := h.dbClient.InsertCollection(c.Request.Context(), collection)
	if err != nil {
		return nil, err
	}
	collection.Id = id
	return collectionView(collection), nil
}

// getCollectionImages returns the collection's images, enriched the same
// way search results are.
func (h *Handler) getCollectionImages(c *gin.Context) ([]*search.ImageView, error) {
	collection, err := h.readableCollection(c)
	if err != nil {
		return nil, err
	}
	imageIds, err := h.dbClient.GetCollectionImageIds(c.Request.Context(), collection.Id)
	if err != nil {
		return nil, err
	}
	images, err := h.dbClient.GetImagesByIds(c.Request.Context(), imageIds)
	if err != nil {
		return nil, err
	}
	return h.searcher.EnrichImages(c.Request.Context(), images)
}

func (h *Handler) addImages(c *gin.Context) (gin.H, error) {
	collection, err := h.ownedCollection(c)
	if err != nil {
		return nil, err
	}
	req := &CollectionImagesRequest{}
	if err = c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	if err = h.dbClient.AddImagesToCollection(c.Request.Context(), collection.Id, req.ImageIds); err != nil {
		return nil, err
	}
	return gin.H{"added": len(req.ImageIds)}, nil
}

func (h *Handler) removeImage(c *gin.Context) (gin.H, error) {
	collection, err := h.ownedCollection(c)
	if err != nil {
		return nil, err
	}
	imageId, err := strconv.ParseInt(c.Param("imageId"), 10, 64)
	if err != nil || imageId <= 0 {
		return nil, commonerrors.NewBadRequest("the image id must be a positive integer")
	}
	if err = h.dbClient.RemoveImageFromCollection(c.Request.Context(), collection.Id, imageId); err != nil {
		return nil, err
	}
	return gin.H{"removed": imageId}, nil
}

func (h *Handler) deleteCollection(c *gin.Context) (gin.H, error) {
	collection, err := h.ownedCollection(c)
	if err != nil {
		return nil, err
	}
	if err = h.dbClient.DeleteCollection(c.Request.Context(), collection.Id); err != nil {
		return nil, err
	}
	return gin.H{"id": collection.Id, "deleted": true}, nil
}

func (h *Handler) readableCollection(c *gin.Context) (*dbclient.Collection, error) {
	collection, err := h.pathCollection(c)
	if err != nil {
		return nil, err
	}
	if collection.IsPublic || c.GetString(common.UserType) == common.UserAdmin ||
		collection.CreatedBy.String == c.GetString(common.UserId) {
		return collection, nil
	}
	return nil, commonerrors.NewNotFound(common.CollectionKind, c.Param("id"))
}

func (h *Handler) ownedCollection(c *gin.Context) (*dbclient.Collection, error) {
	collection, err := h.pathCollection(c)
	if err != nil {
		return nil, err
	}
	if c.GetString(common.UserType) == common.UserAdmin ||
		collection.CreatedBy.String == c.GetString(common.UserId) {
		return collection, nil
	}
	return nil, commonerrors.NewForbidden("only the owner or an administrator may modify this collection")
}

func (h *Handler) pathCollection(c *gin.Context) (*dbclient.Collection, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, commonerrors.NewBadRequest("the collection id must be a positive integer")
	}
	collection, err := h.dbClient.GetCollection(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, commonerrors.NewNotFound(common.CollectionKind, c.Param("id"))
	}
	return collection, nil
}

func collectionView(collection *dbclient.Collection) *CollectionView {
	view := &CollectionView{
		Id:          collection.Id,
		Name:        collection.Name,
		Description: collection.Description.String,
		CreatedBy:   collection.CreatedBy.String,
		IsPublic:    collection.IsPublic,
	}
	if collection.CreatedAt.Valid {
		t := collection.CreatedAt.Time
		view.CreatedAt = &t
	}
	return view
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
