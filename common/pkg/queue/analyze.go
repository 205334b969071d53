/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx/types"
	"github.com/pgvector/pgvector-go"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/vision"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

// processTimeout bounds one task end to end, covering the vision and
// embedding calls plus the row updates.
const processTimeout = 5 * time.Minute

// analyzePayload is the payload document of analyze and rebuild tasks.
type analyzePayload struct {
	ImageId     int64  `json:"image_id"`
	CallbackURL string `json:"callback_url,omitempty"`
}

// analyzeOutcome is persisted as the task result document.
type analyzeOutcome struct {
	Skipped     bool     `json:"skipped,omitempty"`
	SkipReason  string   `json:"skip_reason,omitempty"`
	VisionUsed  bool     `json:"vision_used"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// callbackBody is POSTed to the payload's callback URL once the task row
// reached a terminal state. It carries the merged final tag list, a serving
// URL and the image dimensions so receivers need no follow-up query.
type callbackBody struct {
	TaskId  string   `json:"task_id"`
	ImageId int64    `json:"image_id"`
	Status  string   `json:"status"`
	Success bool     `json:"success"`
	Tags    []string `json:"tags,omitempty"`
	URL     string   `json:"url,omitempty"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Error   string   `json:"error,omitempty"`
}

// process runs one claimed task on a detached context, so a queue stop
// does not abort row updates halfway through.
func (m *Manager) process(task *dbclient.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	payload := &analyzePayload{}
	if err := json.Unmarshal(task.Payload, payload); err != nil {
		m.finish(ctx, task, payload, nil, commonerrors.NewBadRequest(
			fmt.Sprintf("malformed task payload: %v", err)))
		return
	}
	if payload.ImageId <= 0 {
		m.finish(ctx, task, payload, nil, commonerrors.NewBadRequest("task payload carries no image id"))
		return
	}
	outcome, err := m.analyze(ctx, payload.ImageId)
	m.finish(ctx, task, payload, outcome, err)
}

func (m *Manager) finish(ctx context.Context, task *dbclient.Task,
	payload *analyzePayload, outcome *analyzeOutcome, analyzeErr error) {
	status := common.TaskStatusCompleted
	errMsg := ""
	if analyzeErr != nil {
		status = common.TaskStatusFailed
		errMsg = analyzeErr.Error()
		klog.Warningf("task %s on image %d failed: %v", task.Id, payload.ImageId, analyzeErr)
		if err := m.dbClient.FailTask(ctx, task.Id, errMsg); err != nil {
			klog.ErrorS(err, "failed to record task failure", "id", task.Id)
		}
	} else {
		doc, err := json.Marshal(outcome)
		if err != nil {
			doc = []byte(`{}`)
		}
		if err = m.dbClient.CompleteTask(ctx, task.Id, types.JSONText(doc)); err != nil {
			klog.ErrorS(err, "failed to record task completion", "id", task.Id)
		}
	}
	// The callback fires after the row state is committed and never blocks
	// the worker.
	if payload.CallbackURL != "" {
		body := &callbackBody{
			TaskId:  task.Id,
			ImageId: payload.ImageId,
			Status:  status,
			Success: analyzeErr == nil,
			Error:   errMsg,
		}
		if outcome != nil {
			body.Tags = outcome.Tags
		}
		m.describeImage(ctx, payload.ImageId, body)
		go m.postCallback(payload.CallbackURL, body)
	}
}

// describeImage fills the callback body with the image's dimensions and a
// serving URL resolved from its primary location. Enrichment is best
// effort: a missing row leaves the fields empty rather than suppressing
// the callback.
func (m *Manager) describeImage(ctx context.Context, imageId int64, body *callbackBody) {
	image, err := m.dbClient.GetImage(ctx, imageId)
	if err != nil || image == nil {
		return
	}
	body.Width = image.Width
	body.Height = image.Height
	body.URL = image.OriginalURL.String

	locations, err := m.dbClient.GetImageLocations(ctx, imageId)
	if err != nil {
		return
	}
	// GetImageLocations orders primary first.
	for _, loc := range locations {
		if !loc.IsPrimary && loc.SyncStatus != common.SyncStatusSynced {
			continue
		}
		endpoint, err := m.dbClient.GetStorageEndpoint(ctx, loc.EndpointId)
		if err != nil || endpoint == nil {
			continue
		}
		body.URL = storage.BuildURL(endpoint, loc.ObjectKey)
		return
	}
}

// analyze performs the description/tags/embedding pipeline for one image.
// The row update order is fixed: description, then AI tags, then embedding.
func (m *Manager) analyze(ctx context.Context, imageId int64) (*analyzeOutcome, error) {
	image, err := m.dbClient.GetImage(ctx, imageId)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, commonerrors.NewNotFound(common.ImageKind, strconv.FormatInt(imageId, 10))
	}
	imageTags, err := m.dbClient.GetImageTags(ctx, imageId)
	if err != nil {
		return nil, err
	}
	categoryId := int64(0)
	var tagNames []string
	for _, tag := range imageTags {
		switch tag.Level {
		case common.TagLevelCategory:
			categoryId = tag.TagId
		case common.TagLevelNormal:
			tagNames = append(tagNames, tag.Name)
		}
	}
	description := ""
	if image.Description.Valid {
		description = strings.TrimSpace(image.Description.String)
	}

	// Images that already carry both a description and tags keep them:
	// user-provided metadata and the rebuild path only need a new vector.
	if description != "" && len(tagNames) > 0 {
		if err = m.embedAndStore(ctx, imageId, description, tagNames); err != nil {
			return nil, err
		}
		return &analyzeOutcome{Description: description, Tags: tagNames}, nil
	}

	if !vision.IsExtensionAllowed(image.FileType) {
		if err = m.embedAndStore(ctx, imageId, "", nil); err != nil {
			return nil, err
		}
		return &analyzeOutcome{
			Skipped:    true,
			SkipReason: fmt.Sprintf("extension %s is not allowed for analysis", image.FileType),
		}, nil
	}

	data, err := m.storage.FetchImageBytes(ctx, image)
	if err != nil {
		return nil, err
	}
	visionResult, err := m.vision.Analyze(ctx, data, image.FileType, categoryId)
	if err != nil {
		// A rejected format (GIF with conversion disabled) completes as
		// skipped rather than failed, with whatever metadata exists.
		if commonerrors.IsImageFormatUnsupported(err) {
			if embedErr := m.embedAndStore(ctx, imageId, description, tagNames); embedErr != nil {
				return nil, embedErr
			}
			return &analyzeOutcome{Skipped: true, SkipReason: err.Error()}, nil
		}
		return nil, err
	}

	if visionResult.Description != "" {
		description = visionResult.Description
		if err = m.dbClient.UpdateImageDescription(ctx, imageId, description); err != nil {
			return nil, err
		}
	}
	if err = m.tags.SetImageTags(ctx, imageId, visionResult.Tags, common.TagSourceAI, ""); err != nil {
		return nil, err
	}

	// Embed from the final tag set: preserved user tags plus the fresh AI
	// tags, in stored order.
	finalTags, err := m.dbClient.GetImageTags(ctx, imageId)
	if err != nil {
		return nil, err
	}
	finalNames := make([]string, 0, len(finalTags))
	for _, tag := range finalTags {
		if tag.Level == common.TagLevelNormal {
			finalNames = append(finalNames, tag.Name)
		}
	}
	if err = m.embedAndStore(ctx, imageId, description, finalNames); err != nil {
		return nil, err
	}
	return &analyzeOutcome{
		VisionUsed:  true,
		Description: description,
		Tags:        finalNames,
	}, nil
}

func (m *Manager) embedAndStore(ctx context.Context, imageId int64, description string, tagNames []string) error {
	vector, err := m.embedding.EmbedForImage(ctx, description, tagNames)
	if err != nil {
		return err
	}
	return m.dbClient.UpdateImageEmbedding(ctx, imageId, pgvector.NewVector(vector))
}

// postCallback delivers the result document, retrying transient failures
// with exponential backoff. Delivery is attempted at most three times in
// total (two retries); 4xx responses are not retried. Callbacks are best
// effort: a receiver that keeps failing is logged and dropped.
func (m *Manager) postCallback(url string, body *callbackBody) {
	timeout := time.Duration(commonconfig.GetCallbackTimeoutSecond()) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	deliver := func() error {
		request, err := httpclient.BuildRequest(url, http.MethodPost, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		result, err := m.httpClient.Do(request.WithContext(ctx))
		if err != nil {
			return err
		}
		if result.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("callback returned status %d", result.StatusCode)
		}
		if result.StatusCode >= http.StatusBadRequest {
			return backoff.Permanent(fmt.Errorf("callback returned status %d", result.StatusCode))
		}
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(deliver, policy); err != nil {
		klog.Warningf("callback to %s failed: %v", url, err)
	}
}
