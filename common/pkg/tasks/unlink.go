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
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// unlinkPayload detaches an endpoint from the catalog. With DeleteFiles the
// stored objects are removed too, and images whose only copy lived on the
// endpoint lose their catalog rows.
type unlinkPayload struct {
	EndpointId  int64 `json:"endpoint_id"`
	DeleteFiles bool  `json:"delete_files,omitempty"`
}

// CreateUnlink inserts an unlink task for the endpoint and starts it.
func (r *Runner) CreateUnlink(ctx context.Context, endpointId int64, deleteFiles bool) (string, error) {
	endpoint, err := r.mustGetEndpoint(ctx, endpointId)
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(&unlinkPayload{EndpointId: endpoint.Id, DeleteFiles: deleteFiles})
	if err != nil {
		return "", err
	}
	task := &dbclient.Task{
		Id:      uuid.NewString(),
		Type:    common.TaskTypeStorageUnlink,
		Payload: types.JSONText(payload),
	}
	if err = r.dbClient.CreateStorageTasksExclusive(ctx, []*dbclient.Task{task}, []int64{endpoint.Id}); err != nil {
		return "", err
	}
	klog.Infof("created unlink task %s for endpoint %s (delete files: %v)", task.Id, endpoint.Name, deleteFiles)

	r.dispatchPending()
	return task.Id, nil
}

func (r *Runner) runUnlink(ctx context.Context, task *dbclient.Task) (*progressTracker, error) {
	payload := &unlinkPayload{}
	if err := json.Unmarshal(task.Payload, payload); err != nil {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("malformed unlink payload: %v", err))
	}
	endpoint, err := r.mustGetEndpoint(ctx, payload.EndpointId)
	if err != nil {
		return nil, err
	}

	// Orphans are images whose only copy is on this endpoint. Resolved up
	// front: once location rows start disappearing the query no longer
	// answers the question.
	var orphans []int64
	if payload.DeleteFiles {
		if orphans, err = r.dbClient.SelectOrphanImageIds(ctx, endpoint.Id); err != nil {
			return nil, err
		}
	}

	locations, err := r.collectEndpointLocations(ctx, endpoint.Id)
	if err != nil {
		return nil, err
	}

	p := newProgressTracker(len(locations))
	if err = r.checkpoint(ctx, task.Id, p); err != nil {
		return p, err
	}

	objectKeys := make(map[int64]string, len(locations))
	imageIds := make([]int64, 0, len(locations))
	for _, location := range locations {
		objectKeys[location.ImageId] = location.ObjectKey
		imageIds = append(imageIds, location.ImageId)
	}

	err = r.forEachImage(ctx, task.Id, imageIds, p, func(ctx context.Context, imageId int64) error {
		if payload.DeleteFiles {
			if err := r.storage.Delete(ctx, endpoint, objectKeys[imageId]); err != nil {
				return err
			}
		}
		return r.dbClient.DeleteImageLocation(ctx, imageId, endpoint.Id)
	})
	if err != nil {
		return p, err
	}

	// Images that just lost their only copy lose their catalog rows too.
	// Items that failed above still have data somewhere, keep them.
	if payload.DeleteFiles && len(orphans) > 0 {
		failed := p.failedSet()
		deleted := 0
		for _, imageId := range orphans {
			if failed[imageId] {
				continue
			}
			if err := r.dbClient.DeleteImageCascade(ctx, imageId); err != nil {
				klog.ErrorS(err, "failed to delete orphaned image", "image", imageId)
				continue
			}
			deleted++
		}
		p.setExtra("orphans_deleted", deleted)
	}
	return p, nil
}
