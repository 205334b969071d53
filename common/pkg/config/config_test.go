/*
 * Copyright (C) 2025-2025, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func loadTestConfig(t *testing.T, content string) {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	assert.NoError(t, err)

	viper.Reset()
	err = LoadConfig(configPath)
	assert.NoError(t, err)
}

func TestQueueMaxWorkersClamp(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expected      int
	}{
		{
			name:          "default when unset",
			configContent: "server:\n  port: 8088\n",
			expected:      2,
		},
		{
			name:          "in range",
			configContent: "queue:\n  max_workers: 5\n",
			expected:      5,
		},
		{
			name:          "clamped to lower bound",
			configContent: "queue:\n  max_workers: 0\n",
			expected:      1,
		},
		{
			name:          "clamped to upper bound",
			configContent: "queue:\n  max_workers: 64\n",
			expected:      10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loadTestConfig(t, tt.configContent)
			assert.Equal(t, tt.expected, GetQueueMaxWorkers())
		})
	}
}

func TestSearchWeightDefaults(t *testing.T) {
	loadTestConfig(t, "server:\n  port: 8088\n")

	assert.Equal(t, 0.7, GetSearchVectorWeight())
	assert.Equal(t, 0.3, GetSearchTagWeight())
	assert.Equal(t, 0.5, GetSearchScoreThreshold())
}

func TestSearchWeightOverride(t *testing.T) {
	loadTestConfig(t, `
search:
  vector_weight: 0.6
  tag_weight: 0.4
  score_threshold: 0.35
`)

	assert.Equal(t, 0.6, GetSearchVectorWeight())
	assert.Equal(t, 0.4, GetSearchTagWeight())
	assert.Equal(t, 0.35, GetSearchScoreThreshold())
}

func TestVisionAllowedExtensions(t *testing.T) {
	loadTestConfig(t, "vision:\n  allowed_extensions: jpg, png , webp\n")
	assert.Equal(t, []string{"jpg", "png", "webp"}, GetVisionAllowedExtensions())

	loadTestConfig(t, "server:\n  port: 8088\n")
	assert.Equal(t, []string{"jpg", "jpeg", "png", "webp", "gif"}, GetVisionAllowedExtensions())
}

func TestStoragePathPrefixTrimsSlashes(t *testing.T) {
	loadTestConfig(t, "storage:\n  path_prefix: /archive/imgs/\n")
	assert.Equal(t, "archive/imgs", GetStoragePathPrefix())
}

func TestServerBaseURLTrimsTrailingSlash(t *testing.T) {
	loadTestConfig(t, "server:\n  base_url: http://iris.local:8088/\n")
	assert.Equal(t, "http://iris.local:8088", GetServerBaseURL())
}

func TestEmbeddingDefaults(t *testing.T) {
	loadTestConfig(t, "server:\n  port: 8088\n")

	assert.Equal(t, "api", GetEmbeddingMode())
	assert.Equal(t, 1024, GetEmbeddingDimensions())
	assert.Equal(t, 30, GetEmbeddingTimeoutSecond())
}
