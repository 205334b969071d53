/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package vision

import (
	"context"
)

// Result is what the vision model produced for one image.
type Result struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Interface analyzes image bytes with a multimodal model. The category id
// selects a category-specific prompt when one is configured; zero means no
// category.
type Interface interface {
	Analyze(ctx context.Context, data []byte, format string, categoryId int64) (*Result, error)
}
