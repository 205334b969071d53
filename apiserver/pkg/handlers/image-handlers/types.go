/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package image_handlers

import (
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/search"
)

// IngestOptions are the caller-controlled knobs shared by every ingestion
// path. On multipart requests they arrive as form fields, on the URL path
// as the JSON body.
type IngestOptions struct {
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	CategoryId  int64    `json:"category_id,omitempty"`
	EndpointId  int64    `json:"endpoint_id,omitempty"`
	IsPublic    bool     `json:"is_public,omitempty"`
	// AutoAnalyze overrides the image.auto_analyze setting when present.
	AutoAnalyze *bool  `json:"auto_analyze,omitempty"`
	CallbackURL string `json:"callback_url,omitempty"`

	// uploadedBy comes from the authenticated identity, never the body.
	uploadedBy string
}

// URLIngestRequest ingests a remote image.
type URLIngestRequest struct {
	URL string `json:"url"`
	IngestOptions
}

// IngestResult reports one stored image.
type IngestResult struct {
	Id        int64  `json:"id"`
	URL       string `json:"url,omitempty"`
	FileHash  string `json:"file_hash"`
	FileType  string `json:"file_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Enqueued  bool   `json:"enqueued"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// ArchiveEntryResult is the per-entry outcome of an archive ingestion.
type ArchiveEntryResult struct {
	Name   string        `json:"name"`
	Error  string        `json:"error,omitempty"`
	Result *IngestResult `json:"result,omitempty"`
}

// ArchiveIngestResult summarizes a zip upload.
type ArchiveIngestResult struct {
	Total   int                   `json:"total"`
	Success int                   `json:"success"`
	Failed  int                   `json:"failed"`
	Items   []*ArchiveEntryResult `json:"items"`
}

// UpdateImageRequest mutates image metadata. Nil fields stay untouched.
type UpdateImageRequest struct {
	Description *string  `json:"description,omitempty"`
	TagIds      *[]int64 `json:"tag_ids,omitempty"`
	CategoryId  *int64   `json:"category_id,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
}

// ListImagesResponse is a page of enriched images.
type ListImagesResponse = search.Response
