/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/crypto"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// listEndpoints returns every configured endpoint in a sanitized form.
func (h *Handler) listEndpoints(c *gin.Context) (*ListEndpointsResponse, error) {
	rows, err := h.dbClient.SelectStorageEndpoints(c.Request.Context(), nil,
		[]string{"id ASC"}, 0, 0)
	if err != nil {
		return nil, err
	}
	items := make([]*EndpointView, 0, len(rows))
	for _, endpoint := range rows {
		view := endpointView(endpoint)
		if count, err := h.dbClient.CountLocationsByEndpoint(c.Request.Context(), endpoint.Id); err == nil {
			view.LocationCount = count
		}
		items = append(items, view)
	}
	return &ListEndpointsResponse{Total: len(items), Items: items}, nil
}

func (h *Handler) getEndpoint(c *gin.Context) (*EndpointView, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	view := endpointView(endpoint)
	if count, err := h.dbClient.CountLocationsByEndpoint(c.Request.Context(), endpoint.Id); err == nil {
		view.LocationCount = count
	}
	return view, nil
}

func (h *Handler) createEndpoint(c *gin.Context) (*EndpointView, error) {
	req := &EndpointRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	endpoint, err := endpointFromRequest(req)
	if err != nil {
		return nil, err
	}
	id, err := h.dbClient.InsertStorageEndpoint(c.Request.Context(), endpoint)
	if err != nil {
		return nil, err
	}
	endpoint.Id = id
	return endpointView(endpoint), nil
}

// updateEndpoint applies the request onto the stored row. Once an endpoint
// holds locations its bucket and prefix are frozen: changing them would
// orphan every stored key.
func (h *Handler) updateEndpoint(c *gin.Context) (*EndpointView, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	req := &EndpointRequest{}
	if err = c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	count, err := h.dbClient.CountLocationsByEndpoint(c.Request.Context(), endpoint.Id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if req.BucketName != "" && req.BucketName != endpoint.BucketName.String {
			return nil, commonerrors.NewIntegrityViolated(
				fmt.Sprintf("bucket_name is frozen while %d locations reference endpoint %s", count, endpoint.Name))
		}
		if req.PathPrefix != "" && req.PathPrefix != endpoint.PathPrefix.String {
			return nil, commonerrors.NewIntegrityViolated(
				fmt.Sprintf("path_prefix is frozen while %d locations reference endpoint %s", count, endpoint.Name))
		}
	}
	if err = applyEndpointRequest(endpoint, req); err != nil {
		return nil, err
	}
	if err = h.dbClient.UpdateStorageEndpoint(c.Request.Context(), endpoint); err != nil {
		return nil, err
	}
	// Cached provider clients hold the old settings.
	h.storage.Invalidate(endpoint.Id)
	return endpointView(endpoint), nil
}

// deleteEndpoint removes an endpoint. With locations present the caller
// must pass force=true, which detaches the rows without touching objects.
func (h *Handler) deleteEndpoint(c *gin.Context) (gin.H, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	count, err := h.dbClient.CountLocationsByEndpoint(ctx, endpoint.Id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if c.Query("force") != "true" {
			return nil, commonerrors.NewConflict(fmt.Sprintf(
				"endpoint %s still holds %d locations; pass force=true to detach them", endpoint.Name, count))
		}
		detached, err := h.dbClient.DeleteLocationsByEndpoint(ctx, endpoint.Id)
		if err != nil {
			return nil, err
		}
		klog.InfoS("detached locations before endpoint delete",
			"endpoint", endpoint.Name, "count", detached)
	}
	if err = h.dbClient.DeleteStorageEndpoint(ctx, endpoint.Id); err != nil {
		return nil, err
	}
	h.storage.Invalidate(endpoint.Id)
	return gin.H{"id": endpoint.Id, "deleted": true}, nil
}

// deletionImpact previews a delete: how many locations disappear and which
// images would lose their only replica.
func (h *Handler) deletionImpact(c *gin.Context) (*DeletionImpact, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	count, err := h.dbClient.CountLocationsByEndpoint(ctx, endpoint.Id)
	if err != nil {
		return nil, err
	}
	orphans, err := h.dbClient.SelectOrphanImageIds(ctx, endpoint.Id)
	if err != nil {
		return nil, err
	}
	return &DeletionImpact{
		EndpointId:     endpoint.Id,
		LocationCount:  count,
		OrphanImageIds: orphans,
		OrphanCount:    len(orphans),
	}, nil
}

// testConnection probes the endpoint with a write/read/delete round-trip
// and records the outcome on the row.
func (h *Handler) testConnection(c *gin.Context) (gin.H, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request.Context()
	checkErr := h.storage.TestEndpoint(ctx, endpoint)
	message := ""
	if checkErr != nil {
		message = checkErr.Error()
	}
	if err = h.dbClient.UpdateEndpointHealth(ctx, endpoint.Id, checkErr == nil, message); err != nil {
		klog.ErrorS(err, "failed to record endpoint health", "endpoint", endpoint.Name)
	}
	return gin.H{"healthy": checkErr == nil, "error": message}, nil
}

// setDefaultUpload flips the single default-upload flag to this endpoint.
func (h *Handler) setDefaultUpload(c *gin.Context) (gin.H, error) {
	endpoint, err := h.pathEndpoint(c)
	if err != nil {
		return nil, err
	}
	if !endpoint.IsEnabled {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("endpoint %s is disabled", endpoint.Name))
	}
	if err = h.dbClient.SetDefaultUploadEndpoint(c.Request.Context(), endpoint.Id); err != nil {
		return nil, err
	}
	return gin.H{"id": endpoint.Id, "is_default_upload": true}, nil
}

func (h *Handler) pathEndpoint(c *gin.Context) (*dbclient.StorageEndpoint, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, commonerrors.NewBadRequest("the endpoint id must be a positive integer")
	}
	endpoint, err := h.dbClient.GetStorageEndpoint(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if endpoint == nil {
		return nil, commonerrors.NewNotFound(common.StorageEndpointKind, c.Param("id"))
	}
	return endpoint, nil
}

func endpointFromRequest(req *EndpointRequest) (*dbclient.StorageEndpoint, error) {
	if req.Name == "" {
		return nil, commonerrors.NewBadRequest("the endpoint name is required")
	}
	endpoint := &dbclient.StorageEndpoint{
		Name:      req.Name,
		Provider:  req.Provider,
		Role:      common.RoleMirror,
		IsEnabled: true,
		IsHealthy: true,
	}
	if err := applyEndpointRequest(endpoint, req); err != nil {
		return nil, err
	}
	if endpoint.Provider != common.ProviderLocal && endpoint.Provider != common.ProviderS3 {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("unsupported provider %q", req.Provider))
	}
	if endpoint.Provider == common.ProviderS3 && !endpoint.BucketName.Valid {
		return nil, commonerrors.NewBadRequest("an s3 endpoint requires a bucket_name")
	}
	return endpoint, nil
}

// applyEndpointRequest copies the set fields of a request onto the row,
// encrypting both access keys before they are stored.
func applyEndpointRequest(endpoint *dbclient.StorageEndpoint, req *EndpointRequest) error {
	if req.Provider != "" {
		endpoint.Provider = req.Provider
	}
	if req.EndpointURL != "" {
		endpoint.EndpointURL = dbutils.NullString(req.EndpointURL)
	}
	if req.Region != "" {
		endpoint.Region = dbutils.NullString(req.Region)
	}
	if req.BucketName != "" {
		endpoint.BucketName = dbutils.NullString(req.BucketName)
	}
	if req.PathPrefix != "" {
		endpoint.PathPrefix = dbutils.NullString(req.PathPrefix)
	}
	if req.PublicURLPrefix != "" {
		endpoint.PublicURLPrefix = dbutils.NullString(req.PublicURLPrefix)
	}
	endpoint.PathStyle = endpoint.PathStyle || req.PathStyle
	if req.Role != "" {
		switch req.Role {
		case common.RolePrimary, common.RoleMirror, common.RoleBackup:
			endpoint.Role = req.Role
		default:
			return commonerrors.NewBadRequest(fmt.Sprintf("unsupported role %q", req.Role))
		}
	}
	if req.IsEnabled != nil {
		endpoint.IsEnabled = *req.IsEnabled
	}
	if req.AutoSyncEnabled != nil {
		endpoint.AutoSyncEnabled = *req.AutoSyncEnabled
	}
	if req.SyncFromEndpointId != 0 {
		endpoint.SyncFromEndpointId = sql.NullInt64{Int64: req.SyncFromEndpointId, Valid: true}
	}
	if req.ReadPriority != nil {
		endpoint.ReadPriority = *req.ReadPriority
	}
	if req.ReadWeight != nil {
		endpoint.ReadWeight = *req.ReadWeight
	}
	if req.AccessKeyId != "" {
		encrypted, err := encryptCredential(req.AccessKeyId)
		if err != nil {
			return err
		}
		endpoint.AccessKeyId = dbutils.NullString(encrypted)
	}
	if req.SecretAccessKey != "" {
		encrypted, err := encryptCredential(req.SecretAccessKey)
		if err != nil {
			return err
		}
		endpoint.SecretAccessKey = dbutils.NullString(encrypted)
	}
	return nil
}

// encryptCredential seals one credential for storage. The provider decrypts
// both keys at construction, so they must go through the same path here.
func encryptCredential(plain string) (string, error) {
	inst := crypto.NewCrypto()
	if inst == nil {
		return "", commonerrors.NewInternalError("the crypto key is not configured")
	}
	encrypted, err := inst.Encrypt([]byte(plain))
	if err != nil {
		return "", commonerrors.NewInternalError(fmt.Sprintf("failed to encrypt credentials: %v", err))
	}
	return encrypted, nil
}
