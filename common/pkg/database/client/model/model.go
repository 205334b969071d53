/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package model holds the gorm models backing schema migration and the
// gorm-driven write paths. Query-heavy paths use the sqlx structs in the
// parent package instead.
package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Image is one stored image. The embedding column is managed with raw DDL
// because its dimension comes from configuration, so it is not declared here.
type Image struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FileHash    string    `gorm:"column:file_hash;type:char(32);index"`
	FileType    string    `gorm:"column:file_type;type:varchar(16)"`
	FileSizeMB  float64   `gorm:"column:file_size_mb"`
	Width       int       `gorm:"column:width"`
	Height      int       `gorm:"column:height"`
	Description *string   `gorm:"column:description;type:text"`
	OriginalURL *string   `gorm:"column:original_url;type:text"`
	UploadedBy  *string   `gorm:"column:uploaded_by;type:varchar(64);index"`
	IsPublic    bool      `gorm:"column:is_public;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Image) TableName() string { return "image" }

type StorageEndpoint struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name               string     `gorm:"column:name;type:varchar(128);uniqueIndex"`
	Provider           string     `gorm:"column:provider;type:varchar(16)"`
	EndpointURL        *string    `gorm:"column:endpoint_url;type:text"`
	Region             *string    `gorm:"column:region;type:varchar(64)"`
	BucketName         *string    `gorm:"column:bucket_name;type:varchar(128)"`
	PathStyle          bool       `gorm:"column:path_style;default:false"`
	PathPrefix         *string    `gorm:"column:path_prefix;type:varchar(256)"`
	AccessKeyID        *string    `gorm:"column:access_key_id;type:text"`
	SecretAccessKey    *string    `gorm:"column:secret_access_key;type:text"`
	PublicURLPrefix    *string    `gorm:"column:public_url_prefix;type:text"`
	Role               string     `gorm:"column:role;type:varchar(16);default:primary"`
	IsEnabled          bool       `gorm:"column:is_enabled;default:true"`
	IsDefaultUpload    bool       `gorm:"column:is_default_upload;default:false"`
	AutoSyncEnabled    bool       `gorm:"column:auto_sync_enabled;default:false"`
	SyncFromEndpointID *int64     `gorm:"column:sync_from_endpoint_id"`
	ReadPriority       int        `gorm:"column:read_priority;default:0"`
	ReadWeight         int        `gorm:"column:read_weight;default:1"`
	IsHealthy          bool       `gorm:"column:is_healthy;default:true"`
	LastHealthCheck    *time.Time `gorm:"column:last_health_check"`
	HealthCheckError   *string    `gorm:"column:health_check_error;type:text"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageEndpoint) TableName() string { return "storage_endpoint" }

type ImageLocation struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ImageID    int64      `gorm:"column:image_id;uniqueIndex:uniq_location_image_endpoint;index"`
	EndpointID int64      `gorm:"column:endpoint_id;uniqueIndex:uniq_location_image_endpoint;index"`
	ObjectKey  string     `gorm:"column:object_key;type:text"`
	IsPrimary  bool       `gorm:"column:is_primary;default:false"`
	SyncStatus string     `gorm:"column:sync_status;type:varchar(16);default:pending;index"`
	SyncError  *string    `gorm:"column:sync_error;type:text"`
	SyncedAt   *time.Time `gorm:"column:synced_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (ImageLocation) TableName() string { return "image_location" }

type Tag struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:varchar(128);uniqueIndex"`
	Level       int       `gorm:"column:level;index"`
	Source      string    `gorm:"column:source;type:varchar(16)"`
	Code        *string   `gorm:"column:code;type:varchar(64)"`
	Description *string   `gorm:"column:description;type:text"`
	SortOrder   int       `gorm:"column:sort_order;default:0"`
	UsageCount  int       `gorm:"column:usage_count;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tag) TableName() string { return "tag" }

type ImageTag struct {
	ImageID   int64     `gorm:"column:image_id;primaryKey"`
	TagID     int64     `gorm:"column:tag_id;primaryKey;index"`
	Source    string    `gorm:"column:source;type:varchar(16)"`
	AddedBy   *string   `gorm:"column:added_by;type:varchar(64)"`
	SortOrder int       `gorm:"column:sort_order;default:0"`
	AddedAt   time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (ImageTag) TableName() string { return "image_tag" }

type Task struct {
	ID          string         `gorm:"column:id;type:varchar(36);primaryKey"`
	Type        string         `gorm:"column:type;type:varchar(32);index"`
	Status      string         `gorm:"column:status;type:varchar(16);index"`
	Payload     types.JSONText `gorm:"column:payload;type:jsonb"`
	Result      types.JSONText `gorm:"column:result;type:jsonb"`
	Error       *string        `gorm:"column:error;type:text"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	CompletedAt *time.Time     `gorm:"column:completed_at"`
}

func (Task) TableName() string { return "task" }

// User rows live in "users" because "user" collides with the reserved
// keyword in PostgreSQL.
type User struct {
	ID        string    `gorm:"column:id;type:varchar(32);primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(64);uniqueIndex"`
	Password  string    `gorm:"column:password;type:text"`
	IsAdmin   bool      `gorm:"column:is_admin;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string { return "users" }

type UserToken struct {
	UserID       string `gorm:"column:user_id;type:varchar(32);primaryKey"`
	SessionID    string `gorm:"column:session_id;type:varchar(64);primaryKey"`
	Token        string `gorm:"column:token;type:text"`
	CreationTime int64  `gorm:"column:creation_time"`
	ExpireTime   int64  `gorm:"column:expire_time"`
}

func (UserToken) TableName() string { return "user_token" }

type AuditLog struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID         string    `gorm:"column:user_id;type:varchar(64);index"`
	UserName       *string   `gorm:"column:user_name;type:varchar(64)"`
	UserType       *string   `gorm:"column:user_type;type:varchar(16)"`
	ClientIP       *string   `gorm:"column:client_ip;type:varchar(64)"`
	HttpMethod     string    `gorm:"column:http_method;type:varchar(8)"`
	RequestPath    string    `gorm:"column:request_path;type:text"`
	ResourceType   *string   `gorm:"column:resource_type;type:varchar(64)"`
	ResourceName   *string   `gorm:"column:resource_name;type:varchar(256)"`
	Action         *string   `gorm:"column:action;type:varchar(32)"`
	RequestBody    *string   `gorm:"column:request_body;type:text"`
	ResponseStatus int       `gorm:"column:response_status"`
	ResponseBody   *string   `gorm:"column:response_body;type:text"`
	LatencyMs      *int64    `gorm:"column:latency_ms"`
	TraceID        *string   `gorm:"column:trace_id;type:varchar(64)"`
	CreateTime     time.Time `gorm:"column:create_time;autoCreateTime;index"`
}

func (AuditLog) TableName() string { return "audit_logs" }

type Collection struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:varchar(128)"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedBy   *string   `gorm:"column:created_by;type:varchar(64);index"`
	IsPublic    bool      `gorm:"column:is_public;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Collection) TableName() string { return "collection" }

type CollectionImage struct {
	CollectionID int64     `gorm:"column:collection_id;primaryKey"`
	ImageID      int64     `gorm:"column:image_id;primaryKey;index"`
	AddedAt      time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (CollectionImage) TableName() string { return "collection_image" }

type Config struct {
	Key       string    `gorm:"column:key;type:varchar(128);primaryKey"`
	Value     string    `gorm:"column:value;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Config) TableName() string { return "config" }

type Notification struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	Topic     string                 `gorm:"column:topic;type:varchar(64);index"`
	UID       string                 `gorm:"column:uid;type:varchar(128);index"`
	Data      map[string]interface{} `gorm:"column:data;type:jsonb;serializer:json"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	SentAt    *time.Time             `gorm:"column:sent_at;index"`
}

func (Notification) TableName() string { return "notification" }
