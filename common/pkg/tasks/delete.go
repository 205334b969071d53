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

// hardDeletePayload removes every object an endpoint stores along with the
// location rows. Image catalog rows survive; copies on other endpoints are
// untouched.
type hardDeletePayload struct {
	EndpointId int64 `json:"endpoint_id"`
}

// CreateHardDelete inserts a hard-delete task for an object storage
// endpoint. Local endpoints are refused: their directories hold the only
// self-served copies and are cleaned up through unlink instead.
func (r *Runner) CreateHardDelete(ctx context.Context, endpointId int64) (string, error) {
	endpoint, err := r.mustGetEndpoint(ctx, endpointId)
	if err != nil {
		return "", err
	}
	if endpoint.Provider == common.ProviderLocal {
		return "", commonerrors.NewBadRequest("hard delete is only supported for object storage endpoints")
	}
	payload, err := json.Marshal(&hardDeletePayload{EndpointId: endpoint.Id})
	if err != nil {
		return "", err
	}
	task := &dbclient.Task{
		Id:      uuid.NewString(),
		Type:    common.TaskTypeStorageDelete,
		Payload: types.JSONText(payload),
	}
	if err = r.dbClient.CreateStorageTasksExclusive(ctx, []*dbclient.Task{task}, []int64{endpoint.Id}); err != nil {
		return "", err
	}
	klog.Infof("created hard delete task %s for endpoint %s", task.Id, endpoint.Name)

	r.dispatchPending()
	return task.Id, nil
}

func (r *Runner) runHardDelete(ctx context.Context, task *dbclient.Task) (*progressTracker, error) {
	payload := &hardDeletePayload{}
	if err := json.Unmarshal(task.Payload, payload); err != nil {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("malformed hard delete payload: %v", err))
	}
	endpoint, err := r.mustGetEndpoint(ctx, payload.EndpointId)
	if err != nil {
		return nil, err
	}
	if endpoint.Provider == common.ProviderLocal {
		return nil, commonerrors.NewBadRequest("hard delete is only supported for object storage endpoints")
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
		if err := r.storage.Delete(ctx, endpoint, objectKeys[imageId]); err != nil {
			return err
		}
		return r.dbClient.DeleteImageLocation(ctx, imageId, endpoint.Id)
	})
	return p, err
}
