/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx/types"
	"github.com/pgvector/pgvector-go"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
)

type Interface interface {
	ImageInterface
	StorageEndpointInterface
	ImageLocationInterface
	TagInterface
	TaskInterface
	UserInterface
	CollectionInterface
	ConfigInterface
	NotificationInterface
	AuditLogInterface
}

type ImageInterface interface {
	InsertImage(ctx context.Context, image *Image) (int64, error)
	GetImage(ctx context.Context, id int64) (*Image, error)
	GetImagesByIds(ctx context.Context, ids []int64) ([]*Image, error)
	SelectImages(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Image, error)
	CountImages(ctx context.Context, query sqrl.Sqlizer) (int, error)
	CountImagesByHash(ctx context.Context, fileHash string) (int, error)
	UpdateImage(ctx context.Context, image *Image) error
	UpdateImageDescription(ctx context.Context, id int64, description string) error
	UpdateImageEmbedding(ctx context.Context, id int64, embedding pgvector.Vector) error
	DeleteImageCascade(ctx context.Context, id int64) error
	SearchScoredImages(ctx context.Context, query sqrl.Sqlizer) ([]*ScoredImage, error)
}

type StorageEndpointInterface interface {
	InsertStorageEndpoint(ctx context.Context, endpoint *StorageEndpoint) (int64, error)
	GetStorageEndpoint(ctx context.Context, id int64) (*StorageEndpoint, error)
	GetStorageEndpointByName(ctx context.Context, name string) (*StorageEndpoint, error)
	GetDefaultUploadEndpoint(ctx context.Context) (*StorageEndpoint, error)
	GetBackupEndpoint(ctx context.Context) (*StorageEndpoint, error)
	SelectStorageEndpoints(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*StorageEndpoint, error)
	CountStorageEndpoints(ctx context.Context, query sqrl.Sqlizer) (int, error)
	ListReadCandidateEndpoints(ctx context.Context) ([]*StorageEndpoint, error)
	UpdateStorageEndpoint(ctx context.Context, endpoint *StorageEndpoint) error
	UpdateEndpointHealth(ctx context.Context, id int64, healthy bool, checkErr string) error
	SetDefaultUploadEndpoint(ctx context.Context, id int64) error
	DeleteStorageEndpoint(ctx context.Context, id int64) error
}

type ImageLocationInterface interface {
	UpsertImageLocation(ctx context.Context, location *ImageLocation) error
	GetImageLocation(ctx context.Context, imageId, endpointId int64) (*ImageLocation, error)
	GetPrimaryLocation(ctx context.Context, imageId int64) (*ImageLocation, error)
	GetImageLocations(ctx context.Context, imageId int64) ([]*ImageLocation, error)
	GetLocationsByImageIds(ctx context.Context, imageIds []int64) ([]*ImageLocation, error)
	IterLocationsByEndpoint(ctx context.Context, endpointId int64, batch int, fn func([]*ImageLocation) error) error
	ListPendingLocations(ctx context.Context, endpointId int64, limit int) ([]*ImageLocation, error)
	CountLocationsByEndpoint(ctx context.Context, endpointId int64) (int, error)
	CountLocationsByStatus(ctx context.Context, endpointId int64, status string) (int, error)
	UpdateLocationSyncStatus(ctx context.Context, imageId, endpointId int64, status, syncErr string) error
	DeleteImageLocation(ctx context.Context, imageId, endpointId int64) error
	DeleteLocationsByEndpoint(ctx context.Context, endpointId int64) (int64, error)
	SelectOrphanImageIds(ctx context.Context, endpointId int64) ([]int64, error)
	SelectImageIdsMissingOnEndpoint(ctx context.Context, endpointId, afterId int64, limit int) ([]int64, error)
	SelectImageLocations(ctx context.Context, query sqrl.Sqlizer, limit, offset int) ([]*ImageLocation, error)
}

type TagInterface interface {
	GetTag(ctx context.Context, id int64) (*Tag, error)
	GetTagByName(ctx context.Context, name string) (*Tag, error)
	GetTagsByNames(ctx context.Context, names []string) ([]*Tag, error)
	SelectTags(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Tag, error)
	CountTags(ctx context.Context, query sqrl.Sqlizer) (int, error)
	CreateTag(ctx context.Context, tag *Tag) (int64, error)
	ResolveTag(ctx context.Context, name, source string) (*Tag, error)
	DeleteTag(ctx context.Context, id int64) error
	GetImageTags(ctx context.Context, imageId int64) ([]*ImageTagDetail, error)
	GetImageTagsByImageIds(ctx context.Context, imageIds []int64) ([]*ImageTagDetail, error)
	InsertImageTags(ctx context.Context, rows []*ImageTag) error
	DeleteImageTags(ctx context.Context, imageId int64, tagIds []int64) error
	ReplaceImageAITags(ctx context.Context, imageId int64, tagIds []int64) error
	SetImageTagsByIds(ctx context.Context, imageId int64, tagIds []int64, addedBy string) error
	BatchAddImageTags(ctx context.Context, imageIds, tagIds []int64, source, addedBy, ownedBy string) error
	BatchReplaceImageTags(ctx context.Context, imageIds, tagIds []int64, source, addedBy, ownedBy string) error
	RecountTagUsage(ctx context.Context, tagIds []int64) error
}

type TaskInterface interface {
	InsertTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	SelectTasks(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Task, error)
	CountTasks(ctx context.Context, query sqrl.Sqlizer) (int, error)
	ClaimNextTask(ctx context.Context, taskTypes []string) (*Task, error)
	ResetStuckTasks(ctx context.Context, taskTypes []string, olderThan time.Duration) (int64, error)
	FilterImageIdsWithActiveAnalyze(ctx context.Context, imageIds []int64) (map[int64]bool, error)
	CompleteTask(ctx context.Context, id string, result types.JSONText) error
	FailTask(ctx context.Context, id string, errMsg string) error
	CancelTask(ctx context.Context, id string) (bool, error)
	UpdateTaskProgress(ctx context.Context, id string, result types.JSONText) error
	ClearPendingTasks(ctx context.Context, taskTypes []string) (int64, error)
	ClearFinishedTasks(ctx context.Context, taskTypes []string) (int64, error)
	RetryFailedTasks(ctx context.Context, taskTypes []string) (int64, error)
	CountTasksByStatus(ctx context.Context, taskTypes []string) (map[string]int, error)
	CreateStorageTasksExclusive(ctx context.Context, tasks []*Task, endpointIds []int64) error
}

type UserInterface interface {
	InsertUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByName(ctx context.Context, username string) (*User, error)
	GetUsersByIds(ctx context.Context, ids []string) ([]*User, error)
	SelectUsers(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*User, error)
	UpsertUserToken(ctx context.Context, token *UserToken) error
	GetUserToken(ctx context.Context, userId, sessionId string) (*UserToken, error)
	DeleteUserToken(ctx context.Context, userId, sessionId string) error
	DeleteUserTokensByUser(ctx context.Context, userId string) error
	DeleteExpiredUserTokens(ctx context.Context) (int64, error)
}

type CollectionInterface interface {
	InsertCollection(ctx context.Context, collection *Collection) (int64, error)
	GetCollection(ctx context.Context, id int64) (*Collection, error)
	SelectCollections(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Collection, error)
	DeleteCollection(ctx context.Context, id int64) error
	AddImagesToCollection(ctx context.Context, collectionId int64, imageIds []int64) error
	RemoveImageFromCollection(ctx context.Context, collectionId, imageId int64) error
	GetCollectionImageIds(ctx context.Context, collectionId int64) ([]int64, error)
	CountCollectionImages(ctx context.Context, collectionId int64) (int, error)
}

type ConfigInterface interface {
	GetConfigValue(ctx context.Context, key string) (string, bool, error)
	SetConfigValue(ctx context.Context, key, value string) error
	ListConfigValues(ctx context.Context) (map[string]string, error)
}

type NotificationInterface interface {
	SubmitNotification(ctx context.Context, data *model.Notification) error
	UpdateNotification(ctx context.Context, data *model.Notification) error
	ListUnprocessedNotifications(ctx context.Context) ([]*model.Notification, error)
}

type AuditLogInterface interface {
	InsertAuditLog(ctx context.Context, auditLog *AuditLog) error
	SelectAuditLogs(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*AuditLog, error)
	CountAuditLogs(ctx context.Context, query sqrl.Sqlizer) (int, error)
}
