/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/imageutil"
)

// Client calls an OpenAI-compatible multimodal chat endpoint. The request
// is typed with the go-openai structures; the response is parsed leniently
// because self-hosted gateways answer in several dialects.
type Client struct {
	httpClient httpclient.Interface
	prompts    *Prompts
}

var (
	once     sync.Once
	instance *Client
)

// NewClient returns the process-wide vision client. Prompt-file problems
// fall back to the built-in prompt with a warning instead of failing boot.
func NewClient() Interface {
	once.Do(func() {
		prompts, err := LoadPrompts(commonconfig.GetVisionPromptsFile())
		if err != nil {
			klog.Warningf("failed to load vision prompts, using built-in default: %v", err)
			prompts = DefaultPrompts()
		}
		instance = &Client{
			httpClient: httpclient.NewHttpClientWithTimeout(
				time.Duration(commonconfig.GetVisionTimeoutSecond()) * time.Second),
			prompts: prompts,
		}
	})
	return instance
}

// IsExtensionAllowed reports whether the configured vision model accepts
// the file extension. The queue completes tasks on disallowed extensions
// as skipped rather than failed.
func IsExtensionAllowed(ext string) bool {
	ext = imageutil.NormalizeFormat(ext)
	for _, allowed := range commonconfig.GetVisionAllowedExtensions() {
		if imageutil.NormalizeFormat(allowed) == ext {
			return true
		}
	}
	return false
}

// Analyze sends the image to the model and returns its description and
// tags. Oversized inputs are recompressed first; GIFs are converted to PNG
// or rejected with an ImageFormatUnsupported error depending on config.
func (c *Client) Analyze(ctx context.Context, data []byte, format string, categoryId int64) (*Result, error) {
	data, format, err := preprocess(data, format)
	if err != nil {
		return nil, err
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeOf(format), base64.StdEncoding.EncodeToString(data))
	request := openai.ChatCompletionRequest{
		Model: commonconfig.GetVisionModel(),
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: c.prompts.For(categoryId)},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
			},
		}},
	}

	headers := make([]string, 0, 2)
	if key := commonconfig.GetVisionAPIKey(); key != "" {
		headers = append(headers, "Authorization", "Bearer "+key)
	}
	httpReq, err := httpclient.BuildRequest(commonconfig.GetVisionAPIURL(), http.MethodPost, request, headers...)
	if err != nil {
		return nil, err
	}
	result, err := c.httpClient.Do(httpReq.WithContext(ctx))
	if err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(fmt.Sprintf("vision request failed: %v", err))
	}
	if result.StatusCode != http.StatusOK {
		return nil, commonerrors.NewUpstreamUnavailable(
			fmt.Sprintf("vision endpoint returned %d: %s", result.StatusCode, truncate(string(result.Body), 256)))
	}

	content, err := extractContent(result.Body)
	if err != nil {
		return nil, commonerrors.NewUpstreamUnavailable(err.Error())
	}
	return parseContent(content), nil
}

// preprocess enforces the model input contract: no animation, bounded size.
func preprocess(data []byte, format string) ([]byte, string, error) {
	format = imageutil.NormalizeFormat(format)
	if format == "gif" {
		if !commonconfig.IsVisionConvertGif() {
			return nil, "", commonerrors.NewImageFormatUnsupported("gif analysis is disabled")
		}
		converted, err := imageutil.EncodePNG(data)
		if err != nil {
			return nil, "", fmt.Errorf("failed to convert gif: %v", err)
		}
		data, format = converted, "png"
	}
	if maxBytes := commonconfig.GetVisionMaxImageSizeKB() * 1024; len(data) > maxBytes {
		compressed, err := imageutil.Recompress(data, maxBytes)
		if err != nil {
			return nil, "", fmt.Errorf("failed to recompress image: %v", err)
		}
		data, format = compressed, "jpg"
	}
	return data, format, nil
}

func mimeOf(format string) string {
	switch imageutil.NormalizeFormat(format) {
	case "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/" + format
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
