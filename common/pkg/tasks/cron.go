/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tasks

import (
	"context"
	"fmt"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/robfig/cron/v3"
	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbmodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	notifymodel "github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
)

// autoMirrorBatch bounds how many pending locations one mirror pass copies
// per endpoint.
const autoMirrorBatch = 100

// startCron schedules the maintenance passes. SkipIfStillRunning keeps slow
// passes from piling up. Called with r.mu held.
func (r *Runner) startCron() {
	ctx := r.baseCtx
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	addJob := func(spec, name string, fn func(context.Context)) {
		if spec == "" {
			return
		}
		if _, err := c.AddFunc(spec, func() { fn(ctx) }); err != nil {
			klog.ErrorS(err, "failed to schedule maintenance job", "job", name, "spec", spec)
			return
		}
		klog.Infof("scheduled %s with spec %q", name, spec)
	}
	addJob(commonconfig.GetHealthCheckCron(), "endpoint health check", r.healthCheckPass)
	addJob(commonconfig.GetAutoMirrorCron(), "auto mirror", r.autoMirrorPass)
	addJob(commonconfig.GetBackupSchedule(), "backup sweep", r.backupSweepPass)

	c.Start()
	r.cron = c
}

// healthCheckPass probes every enabled endpoint and records the outcome. A
// healthy-to-unhealthy transition raises a notification; recoveries are
// only logged.
func (r *Runner) healthCheckPass(ctx context.Context) {
	endpoints, err := r.dbClient.SelectStorageEndpoints(ctx, sqrl.Eq{"is_enabled": true}, nil, 0, 0)
	if err != nil {
		klog.ErrorS(err, "failed to list endpoints for health check")
		return
	}
	for _, endpoint := range endpoints {
		probeErr := r.storage.TestEndpoint(ctx, endpoint)
		healthy := probeErr == nil
		checkErr := ""
		if probeErr != nil {
			checkErr = probeErr.Error()
		}
		if err = r.dbClient.UpdateEndpointHealth(ctx, endpoint.Id, healthy, checkErr); err != nil {
			klog.ErrorS(err, "failed to record endpoint health", "endpoint", endpoint.Name)
			continue
		}
		if !healthy && endpoint.IsHealthy {
			klog.Warningf("endpoint %s turned unhealthy: %v", endpoint.Name, probeErr)
			r.notifyEndpointUnhealthy(ctx, endpoint, checkErr)
		} else if healthy && !endpoint.IsHealthy {
			klog.Infof("endpoint %s recovered", endpoint.Name)
		}
	}
}

func (r *Runner) notifyEndpointUnhealthy(ctx context.Context, endpoint *dbclient.StorageEndpoint, checkErr string) {
	err := r.dbClient.SubmitNotification(ctx, &dbmodel.Notification{
		Topic: notifymodel.TopicEndpointUnhealthy,
		UID:   fmt.Sprintf("endpoint-%d-%s", endpoint.Id, endpoint.LastHealthCheck.Time.UTC().Format("20060102T150405")),
		Data: map[string]interface{}{
			"endpoint_id":   endpoint.Id,
			"endpoint_name": endpoint.Name,
			"error":         checkErr,
		},
	})
	if err != nil {
		klog.ErrorS(err, "failed to submit endpoint health notification", "endpoint", endpoint.Name)
	}
}

// autoMirrorPass advances pending locations on endpoints that opted into
// automatic mirroring.
func (r *Runner) autoMirrorPass(ctx context.Context) {
	endpoints, err := r.dbClient.SelectStorageEndpoints(ctx, sqrl.And{
		sqrl.Eq{"is_enabled": true},
		sqrl.Eq{"auto_sync_enabled": true},
	}, nil, 0, 0)
	if err != nil {
		klog.ErrorS(err, "failed to list endpoints for auto mirror")
		return
	}
	for _, endpoint := range endpoints {
		processed, err := r.ProcessPendingLocations(ctx, endpoint.Id, autoMirrorBatch)
		if err != nil {
			klog.ErrorS(err, "auto mirror pass failed", "endpoint", endpoint.Name)
			continue
		}
		if processed > 0 {
			klog.Infof("auto mirrored %d images to endpoint %s", processed, endpoint.Name)
		}
	}
}

// backupSweepPass starts the scheduled full backup sweep. A sweep already
// running against the backup endpoint is left alone.
func (r *Runner) backupSweepPass(ctx context.Context) {
	taskId, err := r.CreateBackupSweep(ctx)
	if err != nil {
		if commonerrors.IsEndpointBusy(err) {
			klog.V(2).Infof("backup sweep not started: %v", err)
			return
		}
		klog.ErrorS(err, "failed to start scheduled backup sweep")
		return
	}
	klog.Infof("scheduled backup sweep started as task %s", taskId)
}
