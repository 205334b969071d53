/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package vision

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// chatResponse covers both response dialects the adapter accepts: the
// OpenAI-compatible choices array and the Google Gemini candidates array.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Models wrap the JSON in prose or markdown fences; grab the outermost object.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractContent pulls the model's text out of a raw response body.
func extractContent(body []byte) (string, error) {
	rsp := &chatResponse{}
	if err := json.Unmarshal(body, rsp); err != nil {
		return "", fmt.Errorf("malformed model response: %v", err)
	}
	if rsp.Error != nil && rsp.Error.Message != "" {
		return "", fmt.Errorf("model error: %s", rsp.Error.Message)
	}
	if len(rsp.Choices) > 0 {
		return rsp.Choices[0].Message.Content, nil
	}
	var sb strings.Builder
	for _, candidate := range rsp.Candidates {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() > 0 {
		return sb.String(), nil
	}
	return "", fmt.Errorf("model response carries no content")
}

// parseContent extracts the structured result from the model text. When no
// JSON object can be recovered the raw text becomes the description.
func parseContent(content string) *Result {
	if match := jsonObjectRe.FindString(content); match != "" {
		payload := &Result{}
		if err := json.Unmarshal([]byte(match), payload); err == nil {
			payload.Description = strings.TrimSpace(payload.Description)
			payload.Tags = cleanTags(payload.Tags)
			return payload
		}
	}
	return &Result{Description: strings.TrimSpace(content)}
}

// cleanTags trims whitespace and drops empty or duplicate entries while
// preserving the model's order.
func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
