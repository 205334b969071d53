/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	TStorageEndpoint = "storage_endpoint"
)

var (
	getStorageEndpointCmd       = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TStorageEndpoint)
	getStorageEndpointByNameCmd = fmt.Sprintf(`SELECT * FROM %s WHERE name = $1 LIMIT 1`, TStorageEndpoint)
	getDefaultUploadEndpointCmd = fmt.Sprintf(`SELECT * FROM %s WHERE is_default_upload AND is_enabled LIMIT 1`, TStorageEndpoint)
	getBackupEndpointCmd        = fmt.Sprintf(`SELECT * FROM %s WHERE role = $1 AND is_enabled LIMIT 1`, TStorageEndpoint)
	insertStorageEndpointFormat = `INSERT INTO ` + TStorageEndpoint + ` (%s) VALUES (%s) RETURNING id`
	updateStorageEndpointCmd    = fmt.Sprintf(`UPDATE %s
		SET name = :name,
		    endpoint_url = :endpoint_url,
		    region = :region,
		    bucket_name = :bucket_name,
		    path_style = :path_style,
		    path_prefix = :path_prefix,
		    access_key_id = :access_key_id,
		    secret_access_key = :secret_access_key,
		    public_url_prefix = :public_url_prefix,
		    role = :role,
		    is_enabled = :is_enabled,
		    auto_sync_enabled = :auto_sync_enabled,
		    sync_from_endpoint_id = :sync_from_endpoint_id,
		    read_priority = :read_priority,
		    read_weight = :read_weight,
		    updated_at = :updated_at
		WHERE id = :id`, TStorageEndpoint)
	updateEndpointHealthCmd = fmt.Sprintf(`UPDATE %s
		SET is_healthy = $1, health_check_error = $2, last_health_check = $3, updated_at = $3
		WHERE id = $4`, TStorageEndpoint)
	clearDefaultUploadCmd = fmt.Sprintf(`UPDATE %s SET is_default_upload = false, updated_at = $1
		WHERE is_default_upload AND id <> $2`, TStorageEndpoint)
	setDefaultUploadCmd = fmt.Sprintf(`UPDATE %s SET is_default_upload = true, updated_at = $1
		WHERE id = $2 AND is_enabled`, TStorageEndpoint)
	deleteStorageEndpointCmd = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, TStorageEndpoint)
	countBackupEndpointsCmd  = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE role = $1 AND id <> $2`, TStorageEndpoint)
)

// InsertStorageEndpoint inserts a new endpoint and returns its id. Creating a
// second backup-role endpoint is rejected.
func (c *Client) InsertStorageEndpoint(ctx context.Context, endpoint *StorageEndpoint) (int64, error) {
	if endpoint == nil {
		return 0, commonerrors.NewBadRequest("the input is empty")
	}
	var id int64
	err := c.withTx(ctx, func(tx *sqlx.Tx) error {
		if endpoint.Role == common.RoleBackup {
			if err := checkBackupUnique(ctx, tx, 0); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		endpoint.CreatedAt = pq.NullTime{Time: now, Valid: true}
		endpoint.UpdatedAt = pq.NullTime{Time: now, Valid: true}
		rows, err := tx.NamedQuery(generateCommand(*endpoint, insertStorageEndpointFormat, "id"), endpoint)
		if err != nil {
			return err
		}
		defer rows.Close()
		if rows.Next() {
			if err = rows.Scan(&id); err != nil {
				return err
			}
		}
		endpoint.Id = id
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, commonerrors.NewAlreadyExist(fmt.Sprintf("storage endpoint %s already exists", endpoint.Name))
		}
		klog.ErrorS(err, "failed to insert storage endpoint", "name", endpoint.Name)
		return 0, err
	}
	return id, nil
}

// GetStorageEndpoint retrieves an endpoint by id, returning nil when absent.
func (c *Client) GetStorageEndpoint(ctx context.Context, id int64) (*StorageEndpoint, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	endpoint := &StorageEndpoint{}
	err = db.GetContext(ctx, endpoint, getStorageEndpointCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		klog.ErrorS(err, "failed to get storage endpoint", "id", id)
		return nil, err
	}
	return endpoint, nil
}

// GetStorageEndpointByName retrieves an endpoint by its unique name.
func (c *Client) GetStorageEndpointByName(ctx context.Context, name string) (*StorageEndpoint, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	endpoint := &StorageEndpoint{}
	err = db.GetContext(ctx, endpoint, getStorageEndpointByNameCmd, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return endpoint, nil
}

// GetDefaultUploadEndpoint returns the endpoint flagged for uploads.
func (c *Client) GetDefaultUploadEndpoint(ctx context.Context) (*StorageEndpoint, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	endpoint := &StorageEndpoint{}
	err = db.GetContext(ctx, endpoint, getDefaultUploadEndpointCmd)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return endpoint, nil
}

// GetBackupEndpoint returns the enabled backup-role endpoint if one exists.
func (c *Client) GetBackupEndpoint(ctx context.Context) (*StorageEndpoint, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	endpoint := &StorageEndpoint{}
	err = db.GetContext(ctx, endpoint, getBackupEndpointCmd, common.RoleBackup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return endpoint, nil
}

// SelectStorageEndpoints retrieves multiple endpoint records.
func (c *Client) SelectStorageEndpoints(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*StorageEndpoint, error) {
	startTime := time.Now().UTC()
	defer func() {
		if query != nil {
			strQuery := dbutils.CvtToSqlStr(query)
			klog.Infof("select storage_endpoint, query: %s, orderBy: %v, limit: %d, offset: %d, cost (%v)",
				strQuery, orderBy, limit, offset, time.Since(startTime))
		}
	}()
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TStorageEndpoint).
		Where(query).
		OrderBy(orderBy...)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var endpoints []*StorageEndpoint
	if c.RequestTimeout > 0 {
		ctx2, cancel := context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
		err = db.SelectContext(ctx2, &endpoints, sql, args...)
	} else {
		err = db.SelectContext(ctx, &endpoints, sql, args...)
	}
	return endpoints, err
}

// CountStorageEndpoints returns the total count of endpoints matching the criteria.
func (c *Client) CountStorageEndpoints(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	sql, args, err := sqrl.Select("COUNT(*)").PlaceholderFormat(sqrl.Dollar).From(TStorageEndpoint).Where(query).ToSql()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, sql, args...)
	return cnt, err
}

// ListReadCandidateEndpoints returns the enabled, healthy endpoints used by
// the read-location picker.
func (c *Client) ListReadCandidateEndpoints(ctx context.Context) ([]*StorageEndpoint, error) {
	return c.SelectStorageEndpoints(ctx, sqrl.And{
		sqrl.Eq{"is_enabled": true},
		sqrl.Eq{"is_healthy": true},
	}, []string{"read_priority", "id"}, 0, 0)
}

// UpdateStorageEndpoint updates the mutable fields of an endpoint. Flipping
// the role to backup is rejected when another backup endpoint exists.
func (c *Client) UpdateStorageEndpoint(ctx context.Context, endpoint *StorageEndpoint) error {
	if endpoint == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	err := c.withTx(ctx, func(tx *sqlx.Tx) error {
		if endpoint.Role == common.RoleBackup {
			if err := checkBackupUnique(ctx, tx, endpoint.Id); err != nil {
				return err
			}
		}
		endpoint.UpdatedAt = pq.NullTime{Time: time.Now().UTC(), Valid: true}
		_, err := tx.NamedExecContext(ctx, updateStorageEndpointCmd, endpoint)
		return err
	})
	if err != nil && isUniqueViolation(err) {
		return commonerrors.NewAlreadyExist(fmt.Sprintf("storage endpoint %s already exists", endpoint.Name))
	}
	return err
}

// UpdateEndpointHealth records the outcome of a health probe.
func (c *Client) UpdateEndpointHealth(ctx context.Context, id int64, healthy bool, checkErr string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, updateEndpointHealthCmd,
		healthy, dbutils.NullString(checkErr), time.Now().UTC(), id)
	if err != nil {
		klog.ErrorS(err, "failed to update endpoint health", "id", id)
	}
	return err
}

// SetDefaultUploadEndpoint atomically moves the default-upload flag to the
// given endpoint, so at most one endpoint ever carries it.
func (c *Client) SetDefaultUploadEndpoint(ctx context.Context, id int64) error {
	return c.withTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx, clearDefaultUploadCmd, now, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, setDefaultUploadCmd, now, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return commonerrors.NewNotFound(common.StorageEndpointKind, fmt.Sprintf("%d", id))
		}
		return nil
	})
}

// DeleteStorageEndpoint removes an endpoint row. The built-in local endpoint
// cannot be deleted.
func (c *Client) DeleteStorageEndpoint(ctx context.Context, id int64) error {
	if id == common.DefaultLocalEndpointId {
		return commonerrors.NewForbidden("the built-in local endpoint cannot be deleted")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteStorageEndpointCmd, id)
	if err != nil {
		klog.ErrorS(err, "failed to delete storage endpoint", "id", id)
	}
	return err
}

// checkBackupUnique rejects a second backup-role endpoint. The partial unique
// index on role is the backstop for concurrent writers.
func checkBackupUnique(ctx context.Context, tx *sqlx.Tx, selfId int64) error {
	var cnt int
	if err := tx.GetContext(ctx, &cnt, countBackupEndpointsCmd, common.RoleBackup, selfId); err != nil {
		return err
	}
	if cnt > 0 {
		return commonerrors.NewConflict("a backup endpoint already exists, only one is allowed")
	}
	return nil
}
