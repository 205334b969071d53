/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"encoding/json"
	"time"

	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/tasks"
)

// EndpointRequest creates or updates a storage endpoint. The secret access
// key is write-only: it is encrypted at rest and never echoed back.
type EndpointRequest struct {
	Name               string `json:"name"`
	Provider           string `json:"provider"`
	EndpointURL        string `json:"endpoint_url,omitempty"`
	Region             string `json:"region,omitempty"`
	BucketName         string `json:"bucket_name,omitempty"`
	PathStyle          bool   `json:"path_style,omitempty"`
	PathPrefix         string `json:"path_prefix,omitempty"`
	AccessKeyId        string `json:"access_key_id,omitempty"`
	SecretAccessKey    string `json:"secret_access_key,omitempty"`
	PublicURLPrefix    string `json:"public_url_prefix,omitempty"`
	Role               string `json:"role,omitempty"`
	IsEnabled          *bool  `json:"is_enabled,omitempty"`
	AutoSyncEnabled    *bool  `json:"auto_sync_enabled,omitempty"`
	SyncFromEndpointId int64  `json:"sync_from_endpoint_id,omitempty"`
	ReadPriority       *int   `json:"read_priority,omitempty"`
	ReadWeight         *int   `json:"read_weight,omitempty"`
}

// EndpointView is the sanitized response shape of one endpoint.
type EndpointView struct {
	Id                 int64      `json:"id"`
	Name               string     `json:"name"`
	Provider           string     `json:"provider"`
	EndpointURL        string     `json:"endpoint_url,omitempty"`
	Region             string     `json:"region,omitempty"`
	BucketName         string     `json:"bucket_name,omitempty"`
	PathStyle          bool       `json:"path_style"`
	PathPrefix         string     `json:"path_prefix,omitempty"`
	PublicURLPrefix    string     `json:"public_url_prefix,omitempty"`
	Role               string     `json:"role"`
	IsEnabled          bool       `json:"is_enabled"`
	IsDefaultUpload    bool       `json:"is_default_upload"`
	AutoSyncEnabled    bool       `json:"auto_sync_enabled"`
	SyncFromEndpointId int64      `json:"sync_from_endpoint_id,omitempty"`
	ReadPriority       int        `json:"read_priority"`
	ReadWeight         int        `json:"read_weight"`
	IsHealthy          bool       `json:"is_healthy"`
	LastHealthCheck    *time.Time `json:"last_health_check,omitempty"`
	HealthCheckError   string     `json:"health_check_error,omitempty"`
	HasCredentials     bool       `json:"has_credentials"`
	LocationCount      int        `json:"location_count,omitempty"`
}

// ListEndpointsResponse is the endpoint roster.
type ListEndpointsResponse struct {
	Total int             `json:"total"`
	Items []*EndpointView `json:"items"`
}

// DeletionImpact previews what removing an endpoint would strand.
type DeletionImpact struct {
	EndpointId     int64   `json:"endpoint_id"`
	LocationCount  int     `json:"location_count"`
	OrphanImageIds []int64 `json:"orphan_image_ids"`
	OrphanCount    int     `json:"orphan_count"`
}

// UnlinkRequest detaches an endpoint's locations, optionally deleting the
// stored files as well.
type UnlinkRequest struct {
	DeleteFiles bool `json:"delete_files,omitempty"`
}

// HardDeleteRequest requires a double confirmation before objects and
// location rows are destroyed.
type HardDeleteRequest struct {
	Confirm     bool   `json:"confirm"`
	ConfirmText string `json:"confirm_text"`
}

// hardDeleteConfirmText is the literal a hard delete must repeat.
const hardDeleteConfirmText = "DELETE"

// TaskView is the response shape of one storage task.
type TaskView struct {
	Id          string          `json:"id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Progress    *tasks.Progress `json:"progress,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// ListTasksResponse is one task page.
type ListTasksResponse struct {
	Total int         `json:"total"`
	Items []*TaskView `json:"items"`
}

func endpointView(endpoint *dbclient.StorageEndpoint) *EndpointView {
	view := &EndpointView{
		Id:                 endpoint.Id,
		Name:               endpoint.Name,
		Provider:           endpoint.Provider,
		EndpointURL:        endpoint.EndpointURL.String,
		Region:             endpoint.Region.String,
		BucketName:         endpoint.BucketName.String,
		PathStyle:          endpoint.PathStyle,
		PathPrefix:         endpoint.PathPrefix.String,
		PublicURLPrefix:    endpoint.PublicURLPrefix.String,
		Role:               endpoint.Role,
		IsEnabled:          endpoint.IsEnabled,
		IsDefaultUpload:    endpoint.IsDefaultUpload,
		AutoSyncEnabled:    endpoint.AutoSyncEnabled,
		SyncFromEndpointId: endpoint.SyncFromEndpointId.Int64,
		ReadPriority:       endpoint.ReadPriority,
		ReadWeight:         endpoint.ReadWeight,
		IsHealthy:          endpoint.IsHealthy,
		HealthCheckError:   endpoint.HealthCheckError.String,
		HasCredentials:     endpoint.AccessKeyId.Valid && endpoint.AccessKeyId.String != "",
	}
	if endpoint.LastHealthCheck.Valid {
		t := endpoint.LastHealthCheck.Time
		view.LastHealthCheck = &t
	}
	return view
}

func taskView(task *dbclient.Task) *TaskView {
	view := &TaskView{
		Id:      task.Id,
		Type:    task.Type,
		Status:  task.Status,
		Payload: json.RawMessage(task.Payload),
		Error:   task.Error.String,
	}
	if len(task.Result) > 0 {
		progress := &tasks.Progress{}
		if err := json.Unmarshal(task.Result, progress); err == nil {
			view.Progress = progress
		}
	}
	if task.CreatedAt.Valid {
		t := task.CreatedAt.Time
		view.CreatedAt = &t
	}
	if task.UpdatedAt.Valid {
		t := task.UpdatedAt.Time
		view.UpdatedAt = &t
	}
	if task.CompletedAt.Valid {
		t := task.CompletedAt.Time
		view.CompletedAt = &t
	}
	return view
}
