/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

// localClient talks to a self-hosted sentence-transformers server that
// exposes POST /embed and GET /health.
type localClient struct {
	httpClient httpclient.Interface
	baseURL    string
	dimensions int
	healthOnce sync.Once
}

type localEmbedRequest struct {
	Texts []string `json:"texts"`
}

type localEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func newLocalClient() *localClient {
	baseURL := strings.TrimRight(commonconfig.GetEmbeddingLocalURL(), "/")
	baseURL = strings.TrimSuffix(baseURL, "/embed")
	return &localClient{
		httpClient: httpclient.NewHttpClientWithTimeout(
			time.Duration(commonconfig.GetEmbeddingTimeoutSecond()) * time.Second),
		baseURL:    baseURL,
		dimensions: commonconfig.GetEmbeddingDimensions(),
	}
}

// checkHealth runs once, on first use. The model loads lazily on the
// server side and the first probe forces that load before real traffic.
func (c *localClient) checkHealth() {
	result, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		klog.Warningf("embedding server health check failed: %v", err)
		return
	}
	if result.StatusCode != http.StatusOK {
		klog.Warningf("embedding server health check returned status %d", result.StatusCode)
	}
}

func (c *localClient) Embed(ctx context.Context, text string) ([]float32, error) {
	c.healthOnce.Do(c.checkHealth)

	request, err := httpclient.BuildRequest(c.baseURL+"/embed", http.MethodPost, &localEmbedRequest{Texts: []string{text}})
	if err != nil {
		return nil, err
	}
	result, err := c.httpClient.Do(request.WithContext(ctx))
	if err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("embedding request failed: %v", err))
	}
	if result.StatusCode != http.StatusOK {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("embedding server returned status %d", result.StatusCode))
	}

	var response localEmbedResponse
	if err = json.Unmarshal(result.Body, &response); err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("malformed embedding response: %v", err))
	}
	if len(response.Embeddings) == 0 {
		return nil, commonerrors.NewUpstreamUnavailable("embedding response carries no vectors")
	}
	return checkDimensions(response.Embeddings[0], c.dimensions)
}

func (c *localClient) EmbedForImage(ctx context.Context, description string, tags []string) ([]float32, error) {
	return c.Embed(ctx, TextForImage(description, tags))
}

func (c *localClient) Dimensions() int {
	return c.dimensions
}
