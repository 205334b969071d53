/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tags"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/imageutil"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/stringutil"
)

const megabyte = 1 << 20

// uploadImage ingests one multipart file.
func (h *Handler) uploadImage(c *gin.Context) (*IngestResult, error) {
	data, _, err := readMultipartFile(c)
	if err != nil {
		return nil, err
	}
	opts := parseFormOptions(c)
	return h.ingestBytes(c.Request.Context(), data, "", opts)
}

// ingestFromURL fetches a remote image and ingests it.
func (h *Handler) ingestFromURL(c *gin.Context) (*IngestResult, error) {
	req := &URLIngestRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, commonerrors.NewBadRequest("a valid http(s) url is required")
	}
	rsp, err := h.httpClient.Get(req.URL)
	if err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("failed to fetch %s: %v", req.URL, err))
	}
	if !rsp.IsSuccess() {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("failed to fetch %s: http %d", req.URL, rsp.StatusCode))
	}
	opts := req.IngestOptions
	opts.uploadedBy = c.GetString(common.UserId)
	return h.ingestBytes(c.Request.Context(), rsp.Body, req.URL, &opts)
}

// ingestArchive unpacks a zip upload and ingests every entry with the
// shared options. Entry failures are reported per item, never fatal.
func (h *Handler) ingestArchive(c *gin.Context) (*ArchiveIngestResult, error) {
	data, _, err := readMultipartFile(c)
	if err != nil {
		return nil, err
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, commonerrors.NewBadRequest("the uploaded file is not a zip archive")
	}
	opts := parseFormOptions(c)

	result := &ArchiveIngestResult{}
	maxEntries := commonconfig.GetArchiveMaxEntries()
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if maxEntries > 0 && result.Total >= maxEntries {
			return nil, commonerrors.NewBadRequest(
				fmt.Sprintf("the archive exceeds the %d entry limit", maxEntries))
		}
		result.Total++
		item := &ArchiveEntryResult{Name: entry.Name}
		result.Items = append(result.Items, item)

		entryBytes, err := readArchiveEntry(entry)
		if err == nil {
			item.Result, err = h.ingestBytes(c.Request.Context(), entryBytes, "", opts)
		}
		if err != nil {
			item.Error = err.Error()
			result.Failed++
			continue
		}
		result.Success++
	}
	if result.Total == 0 {
		return nil, commonerrors.NewBadRequest("the archive contains no files")
	}
	return result, nil
}

// ingestBytes is the ingestion pipeline every path funnels into: hash,
// probe, store, record, tag, enqueue, replicate. A storage failure aborts
// before any row is written.
func (h *Handler) ingestBytes(ctx context.Context, data []byte, originalURL string, opts *IngestOptions) (*IngestResult, error) {
	if len(data) == 0 {
		return nil, commonerrors.NewBadRequest("the image data is empty")
	}
	if maxMB := commonconfig.GetUploadMaxMB(); maxMB > 0 && len(data) > maxMB*megabyte {
		return nil, commonerrors.NewRequestEntityTooLargeError(
			fmt.Sprintf("the image exceeds the %d MB limit", maxMB))
	}
	info, err := imageutil.Probe(data)
	if err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	fileHash := stringutil.MD5Bytes(data)

	endpoint, err := h.pickUploadEndpoint(ctx, opts.EndpointId)
	if err != nil {
		return nil, err
	}
	categoryCode, err := h.categoryCode(ctx, opts.CategoryId)
	if err != nil {
		return nil, err
	}
	objectKey := storage.DeriveObjectKey(fileHash, info.Format, categoryCode)

	duplicates, err := h.dbClient.CountImagesByHash(ctx, fileHash)
	if err != nil {
		return nil, err
	}

	if err = h.storage.Upload(ctx, endpoint, objectKey, data); err != nil {
		return nil, err
	}

	image := &dbclient.Image{
		FileHash:    fileHash,
		FileType:    info.Format,
		FileSizeMB:  float64(len(data)) / megabyte,
		Width:       info.Width,
		Height:      info.Height,
		Description: dbutils.NullString(opts.Description),
		OriginalURL: dbutils.NullString(originalURL),
		UploadedBy:  dbutils.NullString(opts.uploadedBy),
		IsPublic:    opts.IsPublic,
	}
	imageId, err := h.dbClient.InsertImage(ctx, image)
	if err != nil {
		return nil, err
	}
	err = h.dbClient.UpsertImageLocation(ctx, &dbclient.ImageLocation{
		ImageId:    imageId,
		EndpointId: endpoint.Id,
		ObjectKey:  objectKey,
		IsPrimary:  true,
		SyncStatus: common.SyncStatusSynced,
		SyncedAt:   pq.NullTime{Time: time.Now().UTC(), Valid: true},
	})
	if err != nil {
		return nil, err
	}
	err = h.tags.ApplyUploadTags(ctx, imageId, &tags.UploadTags{
		Names:      opts.Tags,
		CategoryId: opts.CategoryId,
		Width:      info.Width,
		Height:     info.Height,
		AddedBy:    opts.uploadedBy,
	})
	if err != nil {
		return nil, err
	}

	result := &IngestResult{
		Id:        imageId,
		URL:       storage.BuildURL(endpoint, objectKey),
		FileHash:  fileHash,
		FileType:  info.Format,
		Width:     info.Width,
		Height:    info.Height,
		Duplicate: duplicates > 0,
	}
	if h.shouldEnqueue(opts) {
		added, err := h.queue.EnqueueAnalyze(ctx, []int64{imageId}, opts.CallbackURL)
		if err != nil {
			klog.ErrorS(err, "failed to enqueue analysis", "imageId", imageId)
		}
		result.Enqueued = added > 0
	}
	h.backup.TriggerBackup(imageId)
	return result, nil
}

// shouldEnqueue decides whether ingestion schedules an analyze task. User
// metadata always enqueues: the queue skips the vision call and only
// embeds, so user-provided descriptions become searchable immediately.
func (h *Handler) shouldEnqueue(opts *IngestOptions) bool {
	if len(opts.Tags) > 0 && opts.Description != "" {
		return true
	}
	if opts.AutoAnalyze != nil {
		return *opts.AutoAnalyze
	}
	return commonconfig.IsAutoAnalyzeEnable()
}

// pickUploadEndpoint resolves the write target: the explicit endpoint when
// given, else the default-upload endpoint, else the built-in local one.
func (h *Handler) pickUploadEndpoint(ctx context.Context, endpointId int64) (*dbclient.StorageEndpoint, error) {
	if endpointId != 0 {
		endpoint, err := h.dbClient.GetStorageEndpoint(ctx, endpointId)
		if err != nil {
			return nil, err
		}
		if endpoint == nil {
			return nil, commonerrors.NewNotFound(common.StorageEndpointKind, strconv.FormatInt(endpointId, 10))
		}
		if !endpoint.IsEnabled {
			return nil, commonerrors.NewBadRequest(fmt.Sprintf("endpoint %s is disabled", endpoint.Name))
		}
		return endpoint, nil
	}
	endpoint, err := h.dbClient.GetDefaultUploadEndpoint(ctx)
	if err != nil {
		return nil, err
	}
	if endpoint == nil {
		if endpoint, err = h.dbClient.GetStorageEndpoint(ctx, common.DefaultLocalEndpointId); err != nil {
			return nil, err
		}
		if endpoint == nil {
			return nil, commonerrors.NewInternalError("no upload endpoint is configured")
		}
	}
	return endpoint, nil
}

// categoryCode returns the optional object-key prefix of the chosen
// category. The unclassified default carries none.
func (h *Handler) categoryCode(ctx context.Context, categoryId int64) (string, error) {
	category, err := h.tags.Category(ctx, categoryId)
	if err != nil {
		return "", err
	}
	return category.Code.String, nil
}

func readMultipartFile(c *gin.Context) ([]byte, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, commonerrors.NewBadRequest("the file field is required")
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, commonerrors.NewBadRequest(err.Error())
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, commonerrors.NewInternalError(err.Error())
	}
	return data, header, nil
}

func readArchiveEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseFormOptions reads the shared ingestion options from multipart form
// fields. Tags arrive comma separated.
func parseFormOptions(c *gin.Context) *IngestOptions {
	opts := &IngestOptions{
		Description: c.PostForm("description"),
		IsPublic:    c.PostForm("is_public") == "true",
		CallbackURL: c.PostForm("callback_url"),
		uploadedBy:  c.GetString(common.UserId),
	}
	if names := stringutil.Split(c.PostForm("tags"), ","); len(names) > 0 {
		opts.Tags = names
	}
	if id, err := strconv.ParseInt(c.PostForm("category_id"), 10, 64); err == nil {
		opts.CategoryId = id
	}
	if id, err := strconv.ParseInt(c.PostForm("endpoint_id"), 10, 64); err == nil {
		opts.EndpointId = id
	}
	if raw := c.PostForm("auto_analyze"); raw != "" {
		auto := raw == "true"
		opts.AutoAnalyze = &auto
	}
	return opts
}
