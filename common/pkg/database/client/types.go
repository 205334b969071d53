/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const (
	DESC = "desc"
	ASC  = "asc"

	CreateTime  = "create_time"
	CreatedTime = "created_at"
)

type Image struct {
	Id          int64            `db:"id"`
	FileHash    string           `db:"file_hash"`
	FileType    string           `db:"file_type"`
	FileSizeMB  float64          `db:"file_size_mb"`
	Width       int              `db:"width"`
	Height      int              `db:"height"`
	Description sql.NullString   `db:"description"`
	Embedding   *pgvector.Vector `db:"embedding"`
	OriginalURL sql.NullString   `db:"original_url"`
	UploadedBy  sql.NullString   `db:"uploaded_by"`
	IsPublic    bool             `db:"is_public"`
	CreatedAt   pq.NullTime      `db:"created_at"`
	UpdatedAt   pq.NullTime      `db:"updated_at"`
}

// GetImageFieldTags returns the ImageFieldTags value.
func GetImageFieldTags() map[string]string {
	i := Image{}
	return getFieldTags(i)
}

// ScoredImage is an Image extended with the planner's hybrid scores.
type ScoredImage struct {
	Image
	VectorScore float64 `db:"vector_score"`
	TagScore    float64 `db:"tag_score"`
	FinalScore  float64 `db:"final_score"`
}

type StorageEndpoint struct {
	Id                 int64          `db:"id"`
	Name               string         `db:"name"`
	Provider           string         `db:"provider"`
	EndpointURL        sql.NullString `db:"endpoint_url"`
	Region             sql.NullString `db:"region"`
	BucketName         sql.NullString `db:"bucket_name"`
	PathStyle          bool           `db:"path_style"`
	PathPrefix         sql.NullString `db:"path_prefix"`
	AccessKeyId        sql.NullString `db:"access_key_id"`
	SecretAccessKey    sql.NullString `db:"secret_access_key"`
	PublicURLPrefix    sql.NullString `db:"public_url_prefix"`
	Role               string         `db:"role"`
	IsEnabled          bool           `db:"is_enabled"`
	IsDefaultUpload    bool           `db:"is_default_upload"`
	AutoSyncEnabled    bool           `db:"auto_sync_enabled"`
	SyncFromEndpointId sql.NullInt64  `db:"sync_from_endpoint_id"`
	ReadPriority       int            `db:"read_priority"`
	ReadWeight         int            `db:"read_weight"`
	IsHealthy          bool           `db:"is_healthy"`
	LastHealthCheck    pq.NullTime    `db:"last_health_check"`
	HealthCheckError   sql.NullString `db:"health_check_error"`
	CreatedAt          pq.NullTime    `db:"created_at"`
	UpdatedAt          pq.NullTime    `db:"updated_at"`
}

// GetStorageEndpointFieldTags returns the StorageEndpointFieldTags value.
func GetStorageEndpointFieldTags() map[string]string {
	e := StorageEndpoint{}
	return getFieldTags(e)
}

type ImageLocation struct {
	Id         int64          `db:"id"`
	ImageId    int64          `db:"image_id"`
	EndpointId int64          `db:"endpoint_id"`
	ObjectKey  string         `db:"object_key"`
	IsPrimary  bool           `db:"is_primary"`
	SyncStatus string         `db:"sync_status"`
	SyncError  sql.NullString `db:"sync_error"`
	SyncedAt   pq.NullTime    `db:"synced_at"`
	CreatedAt  pq.NullTime    `db:"created_at"`
}

// GetImageLocationFieldTags returns the ImageLocationFieldTags value.
func GetImageLocationFieldTags() map[string]string {
	l := ImageLocation{}
	return getFieldTags(l)
}

type Tag struct {
	Id          int64          `db:"id"`
	Name        string         `db:"name"`
	Level       int            `db:"level"`
	Source      string         `db:"source"`
	Code        sql.NullString `db:"code"`
	Description sql.NullString `db:"description"`
	SortOrder   int            `db:"sort_order"`
	UsageCount  int            `db:"usage_count"`
	CreatedAt   pq.NullTime    `db:"created_at"`
	UpdatedAt   pq.NullTime    `db:"updated_at"`
}

// GetTagFieldTags returns the TagFieldTags value.
func GetTagFieldTags() map[string]string {
	t := Tag{}
	return getFieldTags(t)
}

type ImageTag struct {
	ImageId   int64          `db:"image_id"`
	TagId     int64          `db:"tag_id"`
	Source    string         `db:"source"`
	AddedBy   sql.NullString `db:"added_by"`
	SortOrder int            `db:"sort_order"`
	AddedAt   pq.NullTime    `db:"added_at"`
}

// ImageTagDetail is an image_tag row joined with its tag for read paths.
type ImageTagDetail struct {
	ImageId   int64          `db:"image_id"`
	TagId     int64          `db:"tag_id"`
	Source    string         `db:"source"`
	AddedBy   sql.NullString `db:"added_by"`
	SortOrder int            `db:"sort_order"`
	Name      string         `db:"name"`
	Level     int            `db:"level"`
	Code      sql.NullString `db:"code"`
}

type Task struct {
	Id          string         `db:"id"`
	Type        string         `db:"type"`
	Status      string         `db:"status"`
	Payload     types.JSONText `db:"payload"`
	Result      types.JSONText `db:"result"`
	Error       sql.NullString `db:"error"`
	CreatedAt   pq.NullTime    `db:"created_at"`
	UpdatedAt   pq.NullTime    `db:"updated_at"`
	CompletedAt pq.NullTime    `db:"completed_at"`
}

// GetTaskFieldTags returns the TaskFieldTags value.
func GetTaskFieldTags() map[string]string {
	t := Task{}
	return getFieldTags(t)
}

type User struct {
	Id        string      `db:"id"`
	Username  string      `db:"username"`
	Password  string      `db:"password"`
	IsAdmin   bool        `db:"is_admin"`
	CreatedAt pq.NullTime `db:"created_at"`
}

// GetUserFieldTags returns the UserFieldTags value.
func GetUserFieldTags() map[string]string {
	u := User{}
	return getFieldTags(u)
}

type UserToken struct {
	UserId       string `db:"user_id"`
	SessionId    string `db:"session_id"`
	Token        string `db:"token"`
	CreationTime int64  `db:"creation_time"`
	ExpireTime   int64  `db:"expire_time"`
}

// GetUserTokenFieldTags returns the UserTokenFieldTags value.
func GetUserTokenFieldTags() map[string]string {
	token := UserToken{}
	return getFieldTags(token)
}

type AuditLog struct {
	Id             int64          `db:"id"`
	UserId         string         `db:"user_id"`
	UserName       sql.NullString `db:"user_name"`
	UserType       sql.NullString `db:"user_type"`
	ClientIP       sql.NullString `db:"client_ip"`
	HttpMethod     string         `db:"http_method"`
	RequestPath    string         `db:"request_path"`
	ResourceType   sql.NullString `db:"resource_type"`
	ResourceName   sql.NullString `db:"resource_name"`
	Action         sql.NullString `db:"action"`
	RequestBody    sql.NullString `db:"request_body"`
	ResponseStatus int            `db:"response_status"`
	ResponseBody   sql.NullString `db:"response_body"`
	LatencyMs      sql.NullInt64  `db:"latency_ms"`
	TraceId        sql.NullString `db:"trace_id"`
	CreateTime     pq.NullTime    `db:"create_time"`
}

// GetAuditLogFieldTags returns the AuditLogFieldTags value.
func GetAuditLogFieldTags() map[string]string {
	a := AuditLog{}
	return getFieldTags(a)
}

type Collection struct {
	Id          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedBy   sql.NullString `db:"created_by"`
	IsPublic    bool           `db:"is_public"`
	CreatedAt   pq.NullTime    `db:"created_at"`
	UpdatedAt   pq.NullTime    `db:"updated_at"`
}

// GetCollectionFieldTags returns the CollectionFieldTags value.
func GetCollectionFieldTags() map[string]string {
	c := Collection{}
	return getFieldTags(c)
}

type CollectionImage struct {
	CollectionId int64       `db:"collection_id"`
	ImageId      int64       `db:"image_id"`
	AddedAt      pq.NullTime `db:"added_at"`
}

// getFieldTags retrieves FieldTags for internal use.
func getFieldTags(obj interface{}) map[string]string {
	result := make(map[string]string)
	t := reflect.TypeOf(obj)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		result[strings.ToLower(field.Name)] = field.Tag.Get("db")
	}
	return result
}

// generateCommand generates SQL command string using reflection
// Iterates through struct fields and builds column and value lists
// Skips fields with specified ignoreTag
// Returns formatted SQL command with columns and values
func generateCommand(obj interface{}, format, ignoreTag string) string {
	t := reflect.TypeOf(obj)
	columns := make([]string, 0, t.NumField())
	values := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("db")
		if tag == ignoreTag {
			continue
		}
		columns = append(columns, tag)
		values = append(values, fmt.Sprintf(":%s", tag))
	}
	cmd := fmt.Sprintf(format, strings.Join(columns, ", "), strings.Join(values, ", "))
	return cmd
}

// GetFieldTag returns the FieldTag value.
func GetFieldTag(tags map[string]string, name string) string {
	name = strings.ToLower(name)
	return tags[name]
}
