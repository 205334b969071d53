/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// apiClient talks to an OpenAI-compatible embeddings endpoint.
type apiClient struct {
	client     *openai.Client
	dimensions int
}

func newAPIClient() *apiClient {
	// Operators paste the endpoint either as ".../v1" or the full
	// ".../v1/embeddings" URL; the SDK appends the path itself.
	baseURL := strings.TrimRight(commonconfig.GetEmbeddingAPIURL(), "/")
	baseURL = strings.TrimSuffix(baseURL, "/embeddings")

	config := openai.DefaultConfig(commonconfig.GetEmbeddingAPIKey())
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{
		Timeout: time.Duration(commonconfig.GetEmbeddingTimeoutSecond()) * time.Second,
	}
	return &apiClient{
		client:     openai.NewClientWithConfig(config),
		dimensions: commonconfig.GetEmbeddingDimensions(),
	}
}

func (c *apiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	response, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(commonconfig.GetEmbeddingModel()),
	})
	if err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("embedding request failed: %v", err))
	}
	if len(response.Data) == 0 {
		return nil, commonerrors.NewUpstreamUnavailable("embedding response carries no data")
	}
	return checkDimensions(response.Data[0].Embedding, c.dimensions)
}

func (c *apiClient) EmbedForImage(ctx context.Context, description string, tags []string) ([]float32, error) {
	return c.Embed(ctx, TextForImage(description, tags))
}

func (c *apiClient) Dimensions() int {
	return c.dimensions
}

func checkDimensions(vector []float32, want int) ([]float32, error) {
	if len(vector) != want {
		return nil, fmt.Errorf("embedding dimension mismatch: model returned %d, configured %d", len(vector), want)
	}
	return vector, nil
}
