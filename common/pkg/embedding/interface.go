/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package embedding

import (
	"context"
	"strings"
)

// Interface turns text into the fixed-dimension vectors stored on images.
type Interface interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedForImage(ctx context.Context, description string, tags []string) ([]float32, error)
	// Dimensions is the configured vector width; it must match the DB column.
	Dimensions() int
}

// TextForImage joins a description and its tags into the canonical
// embedding input. Search queries embed plain text, so keeping the tag
// rendering stable matters for score comparability.
func TextForImage(description string, tags []string) string {
	text := strings.TrimSpace(description)
	if len(tags) > 0 {
		if text != "" {
			text += "\n"
		}
		text += "tags: " + strings.Join(tags, ", ")
	}
	return text
}
