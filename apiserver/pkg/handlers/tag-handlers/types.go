/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tag_handlers

import (
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
)

// TagView is the response shape of one vocabulary entry.
type TagView struct {
	Id          int64  `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Source      string `json:"source"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
	UsageCount  int    `json:"usage_count"`
}

// ListTagsResponse is one vocabulary page.
type ListTagsResponse struct {
	Total int       `json:"total"`
	Items []*TagView `json:"items"`
}

// CreateTagRequest creates a normal-level tag.
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// BatchTagRequest applies names to a set of images.
type BatchTagRequest struct {
	ImageIds []int64  `json:"image_ids"`
	Names    []string `json:"names"`
}

func tagView(tag *dbclient.Tag) *TagView {
	return &TagView{
		Id:          tag.Id,
		Name:        tag.Name,
		Level:       tag.Level,
		Source:      tag.Source,
		Code:        tag.Code.String,
		Description: tag.Description.String,
		SortOrder:   tag.SortOrder,
		UsageCount:  tag.UsageCount,
	}
}

func tagViews(rows []*dbclient.Tag) []*TagView {
	views := make([]*TagView, 0, len(rows))
	for _, tag := range rows {
		views = append(views, tagView(tag))
	}
	return views
}
