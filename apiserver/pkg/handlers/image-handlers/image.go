/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/stringutil"
)

// listImages is the query-parameter face of the textless search path, so
// listing and searching share filters, visibility and enrichment.
func (h *Handler) listImages(c *gin.Context) (*ListImagesResponse, error) {
	req := &search.Request{
		Tags:           stringutil.Split(c.Query("tags"), ","),
		Keyword:        c.Query("keyword"),
		UserId:         c.Query("user_id"),
		PendingOnly:    c.Query("pending") == "true",
		DuplicatesOnly: c.Query("duplicates") == "true",
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}
	req.CategoryId, _ = strconv.ParseInt(c.Query("category_id"), 10, 64)
	req.ResolutionId, _ = strconv.ParseInt(c.Query("resolution_id"), 10, 64)
	req.Page, _ = strconv.Atoi(c.Query("page"))
	req.PageSize, _ = strconv.Atoi(c.Query("page_size"))
	applyVisibility(c, req)
	return h.search.Search(c.Request.Context(), req)
}

// applyVisibility binds the scope of a listing or search to the caller's
// identity. Admins see everything.
func applyVisibility(c *gin.Context, req *search.Request) {
	req.VisibleToUserId = c.GetString(common.UserId)
	req.SkipVisibility = c.GetString(common.UserType) == common.UserAdmin
}

func (h *Handler) getImage(c *gin.Context) (*search.ImageView, error) {
	image, err := h.visibleImage(c)
	if err != nil {
		return nil, err
	}
	views, err := h.search.EnrichImages(c.Request.Context(), []*dbclient.Image{image})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (h *Handler) updateImage(c *gin.Context) (*search.ImageView, error) {
	image, err := h.ownedImage(c)
	if err != nil {
		return nil, err
	}
	req := &UpdateImageRequest{}
	if err = c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	ctx := c.Request.Context()
	userId := c.GetString(common.UserId)

	if req.Description != nil || req.IsPublic != nil {
		if req.Description != nil {
			image.Description.String = *req.Description
			image.Description.Valid = *req.Description != ""
		}
		if req.IsPublic != nil {
			image.IsPublic = *req.IsPublic
		}
		if err = h.dbClient.UpdateImage(ctx, image); err != nil {
			return nil, err
		}
	}
	if req.TagIds != nil {
		if err = h.tags.SetImageTagsByIds(ctx, image.Id, *req.TagIds, userId); err != nil {
			return nil, err
		}
	}
	if req.CategoryId != nil {
		if err = h.tags.SetCategory(ctx, image.Id, *req.CategoryId, userId); err != nil {
			return nil, err
		}
	}

	// The embedding is derived from the description and the tag set, so
	// either change schedules a rebuild.
	if req.Description != nil || req.TagIds != nil {
		if _, err = h.queue.EnqueueRebuild(ctx, []int64{image.Id}, ""); err != nil {
			klog.ErrorS(err, "failed to enqueue embedding rebuild", "imageId", image.Id)
		}
	}

	if image, err = h.dbClient.GetImage(ctx, image.Id); err != nil {
		return nil, err
	}
	views, err := h.search.EnrichImages(ctx, []*dbclient.Image{image})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// deleteImage removes the rows first, then cleans up the stored objects.
// Objects shared with another image row through the same hash are left
// alone, and cleanup failures only log: the row deletion already stands.
func (h *Handler) deleteImage(c *gin.Context) (gin.H, error) {
	image, err := h.ownedImage(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	locations, err := h.dbClient.GetImageLocations(ctx, image.Id)
	if err != nil {
		return nil, err
	}
	if err = h.dbClient.DeleteImageCascade(ctx, image.Id); err != nil {
		return nil, err
	}

	remaining, err := h.dbClient.CountImagesByHash(ctx, image.FileHash)
	if err != nil {
		klog.ErrorS(err, "failed to count remaining hash references", "imageId", image.Id)
	} else if remaining == 0 {
		h.cleanupObjects(ctx, image.Id, locations)
	}
	return gin.H{"id": image.Id, "deleted": true}, nil
}

func (h *Handler) cleanupObjects(ctx context.Context, imageId int64, locations []*dbclient.ImageLocation) {
	for _, loc := range locations {
		endpoint, err := h.dbClient.GetStorageEndpoint(ctx, loc.EndpointId)
		if err != nil || endpoint == nil {
			klog.ErrorS(err, "failed to resolve endpoint for cleanup",
				"imageId", imageId, "endpointId", loc.EndpointId)
			continue
		}
		if err = h.storage.Delete(ctx, endpoint, loc.ObjectKey); err != nil {
			klog.ErrorS(err, "failed to delete stored object",
				"imageId", imageId, "endpoint", endpoint.Name, "objectKey", loc.ObjectKey)
		}
	}
}

// visibleImage loads the path image and checks the caller may read it.
// Private images are indistinguishable from missing ones to outsiders.
func (h *Handler) visibleImage(c *gin.Context) (*dbclient.Image, error) {
	image, err := h.pathImage(c)
	if err != nil {
		return nil, err
	}
	if image.IsPublic || c.GetString(common.UserType) == common.UserAdmin ||
		(image.UploadedBy.Valid && image.UploadedBy.String == c.GetString(common.UserId)) {
		return image, nil
	}
	return nil, commonerrors.NewNotFound(common.ImageKind, c.Param("id"))
}

// ownedImage loads the path image and checks the caller may write it.
func (h *Handler) ownedImage(c *gin.Context) (*dbclient.Image, error) {
	image, err := h.pathImage(c)
	if err != nil {
		return nil, err
	}
	if c.GetString(common.UserType) == common.UserAdmin ||
		(image.UploadedBy.Valid && image.UploadedBy.String == c.GetString(common.UserId)) {
		return image, nil
	}
	return nil, commonerrors.NewForbidden("only the uploader or an administrator may modify this image")
}

func (h *Handler) pathImage(c *gin.Context) (*dbclient.Image, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, commonerrors.NewBadRequest("the image id must be a positive integer")
	}
	image, err := h.dbClient.GetImage(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, commonerrors.NewNotFound(common.ImageKind, c.Param("id"))
	}
	return image, nil
}
