/*
 * Copyright (C) 2025-2025, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package common

const (
	PrimusIris              = "primus-iris"
	DefaultVersion          = "v1"
	IrisRouterRootPath      = "api/" + DefaultVersion
	IrisDataRouterRootPath  = "data"
	DefaultLocalEndpointId  = 1
	UnclassifiedCategoryId  = 10
	ReservedTagIdUpperBound = 100

	ImageKind           = "Image"
	StorageEndpointKind = "StorageEndpoint"
	ImageLocationKind   = "ImageLocation"
	TagKind             = "Tag"
	TaskKind            = "Task"
	UserKind            = "User"
	CollectionKind      = "Collection"
	ConfigKind          = "Config"

	UserName   = "userName"
	UserId     = "userId"
	UserType   = "userType"
	UserSelf   = "self"
	UserSystem = "system"
	UserAdmin  = "admin"
	Name       = "name"

	JsonContentType = "application/json; charset=utf-8"
)

// Storage endpoint providers and roles.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"

	RolePrimary = "primary"
	RoleMirror  = "mirror"
	RoleBackup  = "backup"
)

// Sync status of an image location.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

// Image URL resolution hints.
const (
	URLPriorityAuto  = "auto"
	URLPriorityLocal = "local"
	URLPriorityCDN   = "cdn"
)

// Embedding backends.
const (
	EmbeddingModeAPI   = "api"
	EmbeddingModeLocal = "local"
)

// Task types handled by the queue and the long-task runner.
const (
	TaskTypeAnalyzeImage  = "analyze_image"
	TaskTypeRebuildVector = "rebuild_vector"
	TaskTypeStorageSync   = "storage_sync"
	TaskTypeStorageDelete = "storage_delete"
	TaskTypeStorageUnlink = "storage_unlink"
	TaskTypeStorageBackup = "storage_backup"
)

// Task lifecycle states.
const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
	TaskStatusCancelled  = "cancelled"
)

// Tag levels and sources.
const (
	TagLevelCategory   = 0
	TagLevelResolution = 1
	TagLevelNormal     = 2

	TagSourceSystem = "system"
	TagSourceAI     = "ai"
	TagSourceUser   = "user"
)
