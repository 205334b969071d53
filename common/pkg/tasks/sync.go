/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// SyncRequest describes an endpoint-to-endpoint copy operation. An empty
// ImageIds means every image stored on the source endpoint.
type SyncRequest struct {
	SourceEndpointId int64   `json:"source_endpoint_id"`
	TargetEndpointId int64   `json:"target_endpoint_id"`
	ImageIds         []int64 `json:"image_ids,omitempty"`
	ForceOverwrite   bool    `json:"force_overwrite,omitempty"`
}

// syncPayload is the payload of one storage_sync batch row. Large requests
// are split into batches so progress is visible per chunk and a crash does
// not restart the whole set.
type syncPayload struct {
	SourceEndpointId int64   `json:"source_endpoint_id"`
	TargetEndpointId int64   `json:"target_endpoint_id"`
	ImageIds         []int64 `json:"image_ids"`
	ForceOverwrite   bool    `json:"force_overwrite,omitempty"`
	BatchIndex       int     `json:"batch_index"`
	TotalBatches     int     `json:"total_batches"`
}

// CreateSync validates the request, splits it into batch tasks and inserts
// them all at once under the endpoint locks. Returns the created task ids.
// Fails with EndpointBusy when another storage task already runs against
// either endpoint.
func (r *Runner) CreateSync(ctx context.Context, req *SyncRequest) ([]string, error) {
	if req == nil || req.SourceEndpointId == 0 || req.TargetEndpointId == 0 {
		return nil, commonerrors.NewBadRequest("source and target endpoints are required")
	}
	if req.SourceEndpointId == req.TargetEndpointId {
		return nil, commonerrors.NewBadRequest("source and target endpoints must differ")
	}
	source, err := r.mustGetEndpoint(ctx, req.SourceEndpointId)
	if err != nil {
		return nil, err
	}
	target, err := r.mustGetEndpoint(ctx, req.TargetEndpointId)
	if err != nil {
		return nil, err
	}
	if !target.IsEnabled {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("target endpoint %s is disabled", target.Name))
	}

	imageIds := req.ImageIds
	if len(imageIds) == 0 {
		if imageIds, err = r.collectEndpointImageIds(ctx, source.Id); err != nil {
			return nil, err
		}
	}
	if len(imageIds) == 0 {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("endpoint %s holds no images to sync", source.Name))
	}

	batchSize := commonconfig.GetSyncBatchSize()
	var batches [][]int64
	for start := 0; start < len(imageIds); start += batchSize {
		end := start + batchSize
		if end > len(imageIds) {
			end = len(imageIds)
		}
		batches = append(batches, imageIds[start:end])
	}

	tasks := make([]*dbclient.Task, 0, len(batches))
	for i, batch := range batches {
		payload, err := json.Marshal(&syncPayload{
			SourceEndpointId: source.Id,
			TargetEndpointId: target.Id,
			ImageIds:         batch,
			ForceOverwrite:   req.ForceOverwrite,
			BatchIndex:       i + 1,
			TotalBatches:     len(batches),
		})
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &dbclient.Task{
			Id:      uuid.NewString(),
			Type:    common.TaskTypeStorageSync,
			Payload: types.JSONText(payload),
		})
	}
	endpointIds := []int64{source.Id, target.Id}
	if err = r.dbClient.CreateStorageTasksExclusive(ctx, tasks, endpointIds); err != nil {
		return nil, err
	}
	klog.Infof("created %d sync tasks from endpoint %s to %s covering %d images",
		len(tasks), source.Name, target.Name, len(imageIds))

	r.dispatchPending()

	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.Id)
	}
	return ids, nil
}

func (r *Runner) runSync(ctx context.Context, task *dbclient.Task) (*progressTracker, error) {
	payload := &syncPayload{}
	if err := json.Unmarshal(task.Payload, payload); err != nil {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("malformed sync payload: %v", err))
	}
	source, err := r.mustGetEndpoint(ctx, payload.SourceEndpointId)
	if err != nil {
		return nil, err
	}
	target, err := r.mustGetEndpoint(ctx, payload.TargetEndpointId)
	if err != nil {
		return nil, err
	}

	p := newProgressTracker(len(payload.ImageIds))
	if payload.TotalBatches > 0 {
		p.setExtra("batch_index", payload.BatchIndex)
		p.setExtra("total_batches", payload.TotalBatches)
	}
	if err = r.checkpoint(ctx, task.Id, p); err != nil {
		return p, err
	}

	err = r.forEachImage(ctx, task.Id, payload.ImageIds, p, func(ctx context.Context, imageId int64) error {
		return r.syncOne(ctx, imageId, source, target, payload.ForceOverwrite)
	})
	return p, err
}

// syncOne copies one image from source to target. Images already synced to
// the target are verified against the store and skipped unless force is
// set.
func (r *Runner) syncOne(ctx context.Context, imageId int64, source, target *dbclient.StorageEndpoint, force bool) error {
	if !force {
		location, err := r.dbClient.GetImageLocation(ctx, imageId, target.Id)
		if err != nil {
			return err
		}
		if location != nil && location.SyncStatus == common.SyncStatusSynced {
			exists, err := r.storage.Exists(ctx, target, location.ObjectKey)
			if err == nil && exists {
				return errSkipped
			}
		}
	}

	sourceLocation, err := r.dbClient.GetImageLocation(ctx, imageId, source.Id)
	if err != nil {
		return err
	}
	if sourceLocation == nil || sourceLocation.SyncStatus != common.SyncStatusSynced {
		return fmt.Errorf("image %d has no synced copy on endpoint %s", imageId, source.Name)
	}

	if err = r.storage.CopyBetweenEndpoints(ctx, imageId, source, target, sourceLocation.ObjectKey, force); err != nil {
		if updateErr := r.dbClient.UpdateLocationSyncStatus(ctx, imageId, target.Id,
			common.SyncStatusFailed, err.Error()); updateErr != nil {
			klog.ErrorS(updateErr, "failed to record sync failure", "image", imageId, "endpoint", target.Id)
		}
		return err
	}
	return nil
}

// ProcessPendingLocations copies up to limit pending locations of one
// endpoint from their image's primary copy. Used by the auto-mirror cron
// pass; per-row failures are marked on the location and do not stop the
// pass. Returns how many rows were brought to synced.
func (r *Runner) ProcessPendingLocations(ctx context.Context, endpointId int64, limit int) (int, error) {
	target, err := r.mustGetEndpoint(ctx, endpointId)
	if err != nil {
		return 0, err
	}
	rows, err := r.dbClient.ListPendingLocations(ctx, endpointId, limit)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, row := range rows {
		primary, err := r.dbClient.GetPrimaryLocation(ctx, row.ImageId)
		if err != nil {
			return processed, err
		}
		if primary == nil || primary.EndpointId == endpointId {
			continue
		}
		source, err := r.dbClient.GetStorageEndpoint(ctx, primary.EndpointId)
		if err != nil {
			return processed, err
		}
		if source == nil {
			continue
		}
		if err = r.storage.CopyBetweenEndpoints(ctx, row.ImageId, source, target, row.ObjectKey, false); err != nil {
			klog.Warningf("mirror of image %d to endpoint %s failed: %v", row.ImageId, target.Name, err)
			if updateErr := r.dbClient.UpdateLocationSyncStatus(ctx, row.ImageId, endpointId,
				common.SyncStatusFailed, err.Error()); updateErr != nil {
				klog.ErrorS(updateErr, "failed to record mirror failure", "image", row.ImageId, "endpoint", endpointId)
			}
			continue
		}
		processed++
	}
	return processed, nil
}
