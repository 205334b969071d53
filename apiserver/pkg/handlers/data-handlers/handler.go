/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package data_handlers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// Handler serves the objects of local storage endpoints straight from
// disk. S3 endpoints serve through their own URLs, never through here.
type Handler struct {
	root string
}

func NewHandler() *Handler {
	return &Handler{root: commonconfig.GetStorageLocalRoot()}
}

// InitDataRouter registers the local object route.
func InitDataRouter(e *gin.Engine, h *Handler) {
	e.GET("/data/:bucket/*filepath", h.serveObject)
}

// serveObject maps /data/{bucket}/{key} onto the local root. The resolved
// path must stay inside the bucket directory, so encoded traversal
// segments cannot escape it.
func (h *Handler) serveObject(c *gin.Context) {
	fullPath, err := h.resolve(c.Param("bucket"), c.Param("filepath"))
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	info, err := os.Stat(fullPath)
	if err != nil || info.IsDir() {
		apiutils.AbortWithApiError(c, commonerrors.NewObjectMissing(
			strings.TrimPrefix(c.Param("filepath"), "/")))
		return
	}
	c.File(fullPath)
}

func (h *Handler) resolve(bucket, objectPath string) (string, error) {
	bucket = filepath.Clean(bucket)
	if bucket == "." || bucket == ".." || strings.ContainsAny(bucket, `/\`) {
		return "", commonerrors.NewBadRequest("invalid bucket name")
	}
	bucketDir, err := filepath.Abs(filepath.Join(h.root, bucket))
	if err != nil {
		return "", commonerrors.NewBadRequest("invalid object path")
	}
	fullPath, err := filepath.Abs(filepath.Join(bucketDir, filepath.Clean("/"+objectPath)))
	if err != nil || !strings.HasPrefix(fullPath, bucketDir+string(filepath.Separator)) {
		return "", commonerrors.NewBadRequest("invalid object path")
	}
	return fullPath, nil
}
