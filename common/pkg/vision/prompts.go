/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package vision

import (
	"fmt"
	"os"
	"strconv"

	"sigs.k8s.io/yaml"
)

// defaultPrompt is used when no prompts file is configured or the category
// has no dedicated entry. The JSON contract matches what parseContent expects.
const defaultPrompt = `Analyze this image and respond with exactly one JSON object, no other text:
{"description": "<one or two sentences describing the image>", "tags": ["<tag1>", "<tag2>", ...]}
Provide 5 to 10 concise tags covering subject, style, colors and mood.`

// Prompts holds the model instructions, optionally specialized per category
// tag id. Keys of Categories are decimal tag ids; YAML integer keys are
// accepted since sigs.k8s.io/yaml stringifies them.
type Prompts struct {
	Default    string            `json:"default"`
	Categories map[string]string `json:"categories"`
}

// DefaultPrompts returns the built-in prompt set.
func DefaultPrompts() *Prompts {
	return &Prompts{Default: defaultPrompt}
}

// LoadPrompts reads the prompt file. An empty path yields the built-in set.
func LoadPrompts(path string) (*Prompts, error) {
	if path == "" {
		return DefaultPrompts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file %s: %v", path, err)
	}
	prompts := &Prompts{}
	if err = yaml.Unmarshal(data, prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %v", path, err)
	}
	if prompts.Default == "" {
		prompts.Default = defaultPrompt
	}
	return prompts, nil
}

// For returns the prompt for a category, falling back to the default.
func (p *Prompts) For(categoryId int64) string {
	if categoryId > 0 {
		if prompt, ok := p.Categories[strconv.FormatInt(categoryId, 10)]; ok && prompt != "" {
			return prompt
		}
	}
	return p.Default
}
