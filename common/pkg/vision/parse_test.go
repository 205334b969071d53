/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package vision

import (
	"strings"
	"testing"

	"gotest.tools/assert"
)

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{
			name: "openai choices shape",
			body: `{"choices":[{"message":{"content":"a red fox"}}]}`,
			want: "a red fox",
		},
		{
			name: "gemini candidates shape",
			body: `{"candidates":[{"content":{"parts":[{"text":"a red "},{"text":"fox"}]}}]}`,
			want: "a red fox",
		},
		{
			name: "choices win when both shapes are present",
			body: `{"choices":[{"message":{"content":"first"}}],"candidates":[{"content":{"parts":[{"text":"second"}]}}]}`,
			want: "first",
		},
		{
			name:    "model error message is surfaced",
			body:    `{"error":{"message":"quota exceeded"}}`,
			wantErr: "quota exceeded",
		},
		{
			name:    "malformed body",
			body:    `{"choices":`,
			wantErr: "malformed",
		},
		{
			name:    "response without content",
			body:    `{}`,
			wantErr: "no content",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractContent([]byte(tt.body))
			if tt.wantErr != "" {
				assert.Assert(t, err != nil)
				assert.Assert(t, strings.Contains(err.Error(), tt.wantErr))
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestParseContent(t *testing.T) {
	t.Run("bare json object", func(t *testing.T) {
		got := parseContent(`{"description":"a red fox","tags":["fox","animal"]}`)
		assert.Equal(t, got.Description, "a red fox")
		assert.DeepEqual(t, got.Tags, []string{"fox", "animal"})
	})

	t.Run("json inside markdown fences", func(t *testing.T) {
		content := "```json\n{\"description\":\"a red fox\",\"tags\":[\"fox\"]}\n```"
		got := parseContent(content)
		assert.Equal(t, got.Description, "a red fox")
		assert.DeepEqual(t, got.Tags, []string{"fox"})
	})

	t.Run("json wrapped in prose", func(t *testing.T) {
		content := `Here is the analysis: {"description":"a red fox","tags":["fox"]} hope it helps`
		got := parseContent(content)
		assert.Equal(t, got.Description, "a red fox")
	})

	t.Run("plain text becomes the description", func(t *testing.T) {
		got := parseContent("  a red fox in the snow  ")
		assert.Equal(t, got.Description, "a red fox in the snow")
		assert.Equal(t, len(got.Tags), 0)
	})

	t.Run("braces that are not the payload fall back to raw text", func(t *testing.T) {
		content := "the sign reads {unclear}"
		got := parseContent(content)
		assert.Equal(t, got.Description, content)
	})

	t.Run("tags are trimmed and deduplicated", func(t *testing.T) {
		got := parseContent(`{"description":" x ","tags":[" fox","fox",""," snow "]}`)
		assert.Equal(t, got.Description, "x")
		assert.DeepEqual(t, got.Tags, []string{"fox", "snow"})
	})
}
