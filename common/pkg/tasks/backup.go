/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/controller"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
)

const backupWorkers = 2

// BackupController replicates single images to the backup endpoint as they
// are ingested. Items are image ids; failed copies are retried with
// backoff by the queue. A full sweep for images missed while the process
// was down runs as a storage_backup task.
type BackupController struct {
	dbClient dbclient.Interface
	storage  storage.Interface
	ctrl     *controller.Controller
}

func newBackupController(db dbclient.Interface, store storage.Interface) *BackupController {
	b := &BackupController{dbClient: db, storage: store}
	b.ctrl = controller.NewController("image-backup", b, backupWorkers)
	return b
}

func (b *BackupController) Run(ctx context.Context) {
	b.ctrl.Run(ctx)
}

// Trigger schedules one image for replication. Duplicate triggers for an
// image still waiting in the queue collapse into one.
func (b *BackupController) Trigger(imageId int64) {
	b.ctrl.Add(imageId)
}

func (b *BackupController) Do(ctx context.Context, item interface{}) (controller.Result, error) {
	imageId, ok := item.(int64)
	if !ok {
		return controller.Result{}, nil
	}
	backup, err := b.dbClient.GetBackupEndpoint(ctx)
	if err != nil {
		return controller.Result{}, err
	}
	if backup == nil || !backup.IsEnabled {
		return controller.Result{}, nil
	}
	if err = replicateToBackup(ctx, b.dbClient, b.storage, imageId, backup); err != nil && !errors.Is(err, errSkipped) {
		klog.Warningf("backup of image %d failed: %v", imageId, err)
		return controller.Result{}, err
	}
	return controller.Result{}, nil
}

// replicateToBackup copies one image to the backup endpoint from its
// primary location. Images already on the backup, or gone from the
// catalog, report errSkipped.
func replicateToBackup(ctx context.Context, db dbclient.Interface, store storage.Interface,
	imageId int64, backup *dbclient.StorageEndpoint) error {
	location, err := db.GetImageLocation(ctx, imageId, backup.Id)
	if err != nil {
		return err
	}
	if location != nil && location.SyncStatus == common.SyncStatusSynced {
		return errSkipped
	}
	primary, err := db.GetPrimaryLocation(ctx, imageId)
	if err != nil {
		return err
	}
	if primary == nil {
		return errSkipped
	}
	if primary.EndpointId == backup.Id {
		return errSkipped
	}
	source, err := db.GetStorageEndpoint(ctx, primary.EndpointId)
	if err != nil {
		return err
	}
	if source == nil {
		return fmt.Errorf("endpoint %d holding image %d no longer exists", primary.EndpointId, imageId)
	}
	return store.CopyBetweenEndpoints(ctx, imageId, source, backup, primary.ObjectKey, false)
}

// backupPayload is the payload of a storage_backup sweep task.
type backupPayload struct {
	EndpointId int64 `json:"endpoint_id"`
}

// CreateBackupSweep inserts a sweep task replicating every image the backup
// endpoint is missing. Requires a configured, enabled backup endpoint.
func (r *Runner) CreateBackupSweep(ctx context.Context) (string, error) {
	backup, err := r.dbClient.GetBackupEndpoint(ctx)
	if err != nil {
		return "", err
	}
	if backup == nil {
		return "", commonerrors.NewBadRequest("no backup endpoint is configured")
	}
	if !backup.IsEnabled {
		return "", commonerrors.NewBadRequest(fmt.Sprintf("backup endpoint %s is disabled", backup.Name))
	}
	payload, err := json.Marshal(&backupPayload{EndpointId: backup.Id})
	if err != nil {
		return "", err
	}
	task := &dbclient.Task{
		Id:      uuid.NewString(),
		Type:    common.TaskTypeStorageBackup,
		Payload: types.JSONText(payload),
	}
	if err = r.dbClient.CreateStorageTasksExclusive(ctx, []*dbclient.Task{task}, []int64{backup.Id}); err != nil {
		return "", err
	}
	klog.Infof("created backup sweep task %s for endpoint %s", task.Id, backup.Name)

	r.dispatchPending()
	return task.Id, nil
}

func (r *Runner) runBackupSweep(ctx context.Context, task *dbclient.Task) (*progressTracker, error) {
	payload := &backupPayload{}
	if err := json.Unmarshal(task.Payload, payload); err != nil {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("malformed backup payload: %v", err))
	}
	backup, err := r.mustGetEndpoint(ctx, payload.EndpointId)
	if err != nil {
		return nil, err
	}

	var imageIds []int64
	afterId := int64(0)
	for {
		page, err := r.dbClient.SelectImageIdsMissingOnEndpoint(ctx, backup.Id, afterId, collectPageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		imageIds = append(imageIds, page...)
		afterId = page[len(page)-1]
	}

	p := newProgressTracker(len(imageIds))
	if err = r.checkpoint(ctx, task.Id, p); err != nil {
		return p, err
	}

	err = r.forEachImage(ctx, task.Id, imageIds, p, func(ctx context.Context, imageId int64) error {
		return replicateToBackup(ctx, r.dbClient, r.storage, imageId, backup)
	})
	return p, err
}
