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
	"github.com/lib/pq"
	"gorm.io/gorm/clause"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	TImageLocation = "image_location"

	// DefaultLocationBatch is the keyset page size of IterLocationsByEndpoint.
	DefaultLocationBatch = 1000
)

var (
	getImageLocationCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE image_id = $1 AND endpoint_id = $2 LIMIT 1`, TImageLocation)
	getPrimaryLocationCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE image_id = $1 AND is_primary LIMIT 1`, TImageLocation)
	getLocationsByImageCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE image_id = $1 ORDER BY is_primary DESC, endpoint_id`, TImageLocation)
	getLocationsByImagesCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE image_id = ANY($1) ORDER BY image_id, is_primary DESC`, TImageLocation)
	iterLocationsCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE endpoint_id = $1 AND id > $2 ORDER BY id LIMIT $3`, TImageLocation)
	listPendingLocationsCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE endpoint_id = $1 AND sync_status = $2 ORDER BY id LIMIT $3`, TImageLocation)
	countLocationsByEndpointCmd = fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE endpoint_id = $1`, TImageLocation)
	countLocationsByStatusCmd = fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE endpoint_id = $1 AND sync_status = $2`, TImageLocation)
	updateLocationStatusCmd = fmt.Sprintf(`UPDATE %s
		SET sync_status = $1, sync_error = $2, synced_at = $3
		WHERE image_id = $4 AND endpoint_id = $5`, TImageLocation)
	deleteLocationCmd            = fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1 AND endpoint_id = $2`, TImageLocation)
	deleteLocationsByEndpointCmd = fmt.Sprintf(`DELETE FROM %s WHERE endpoint_id = $1`, TImageLocation)
	// Orphans are images whose only remaining location sits on the given endpoint.
	selectOrphanImageIdsCmd = fmt.Sprintf(`SELECT l.image_id FROM %s l
		WHERE l.endpoint_id = $1 AND NOT EXISTS (
			SELECT 1 FROM %s o WHERE o.image_id = l.image_id AND o.endpoint_id <> $1
		)`, TImageLocation, TImageLocation)
	selectImageIdsMissingOnEndpointCmd = fmt.Sprintf(`SELECT i.id FROM %s i
		WHERE i.id > $2 AND NOT EXISTS (
			SELECT 1 FROM %s l WHERE l.image_id = i.id AND l.endpoint_id = $1
		) ORDER BY i.id LIMIT $3`, TImage, TImageLocation)
)

// UpsertImageLocation inserts a location row or refreshes its sync state when
// the (image, endpoint) pair already exists. is_primary is only honored on
// insert so a mirror copy can never steal the primary flag.
func (c *Client) UpsertImageLocation(ctx context.Context, location *ImageLocation) error {
	if location == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	row := &model.ImageLocation{
		ImageID:    location.ImageId,
		EndpointID: location.EndpointId,
		ObjectKey:  location.ObjectKey,
		IsPrimary:  location.IsPrimary,
		SyncStatus: location.SyncStatus,
	}
	if location.SyncError.Valid {
		row.SyncError = &location.SyncError.String
	}
	if location.SyncedAt.Valid {
		row.SyncedAt = &location.SyncedAt.Time
	}
	err = gormDb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "image_id"}, {Name: "endpoint_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"object_key", "sync_status", "sync_error", "synced_at",
		}),
	}).Create(row).Error
	if err != nil {
		klog.ErrorS(err, "failed to upsert image location",
			"imageId", location.ImageId, "endpointId", location.EndpointId)
	}
	return err
}

// GetImageLocation retrieves one location row, nil when absent.
func (c *Client) GetImageLocation(ctx context.Context, imageId, endpointId int64) (*ImageLocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	location := &ImageLocation{}
	err = db.GetContext(ctx, location, getImageLocationCmd, imageId, endpointId)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return location, nil
}

// GetPrimaryLocation returns the primary location of an image, nil when the
// image has no locations.
func (c *Client) GetPrimaryLocation(ctx context.Context, imageId int64) (*ImageLocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	location := &ImageLocation{}
	err = db.GetContext(ctx, location, getPrimaryLocationCmd, imageId)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return location, nil
}

// GetImageLocations returns all locations of one image, primary first.
func (c *Client) GetImageLocations(ctx context.Context, imageId int64) ([]*ImageLocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var locations []*ImageLocation
	err = db.SelectContext(ctx, &locations, getLocationsByImageCmd, imageId)
	return locations, err
}

// GetLocationsByImageIds returns the locations of a set of images in one
// round trip, used by list/search responses.
func (c *Client) GetLocationsByImageIds(ctx context.Context, imageIds []int64) ([]*ImageLocation, error) {
	if len(imageIds) == 0 {
		return nil, nil
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var locations []*ImageLocation
	err = db.SelectContext(ctx, &locations, getLocationsByImagesCmd, pq.Array(imageIds))
	return locations, err
}

// IterLocationsByEndpoint walks every location of an endpoint in keyset
// batches and feeds them to fn. Iteration stops on the first fn error.
func (c *Client) IterLocationsByEndpoint(ctx context.Context, endpointId int64, batch int, fn func([]*ImageLocation) error) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	if batch <= 0 {
		batch = DefaultLocationBatch
	}
	var lastId int64
	for {
		var locations []*ImageLocation
		if err = db.SelectContext(ctx, &locations, iterLocationsCmd, endpointId, lastId, batch); err != nil {
			return err
		}
		if len(locations) == 0 {
			return nil
		}
		if err = fn(locations); err != nil {
			return err
		}
		lastId = locations[len(locations)-1].Id
		if len(locations) < batch {
			return nil
		}
	}
}

// ListPendingLocations returns up to limit locations still waiting to be
// mirrored onto the endpoint.
func (c *Client) ListPendingLocations(ctx context.Context, endpointId int64, limit int) ([]*ImageLocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLocationBatch
	}
	var locations []*ImageLocation
	err = db.SelectContext(ctx, &locations, listPendingLocationsCmd, endpointId, common.SyncStatusPending, limit)
	return locations, err
}

// CountLocationsByEndpoint returns how many images reference the endpoint.
func (c *Client) CountLocationsByEndpoint(ctx context.Context, endpointId int64) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, countLocationsByEndpointCmd, endpointId)
	return cnt, err
}

// CountLocationsByStatus returns how many locations of the endpoint sit in
// the given sync status.
func (c *Client) CountLocationsByStatus(ctx context.Context, endpointId int64, status string) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, countLocationsByStatusCmd, endpointId, status)
	return cnt, err
}

// UpdateLocationSyncStatus records the sync outcome of one location.
func (c *Client) UpdateLocationSyncStatus(ctx context.Context, imageId, endpointId int64, status, syncErr string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	var syncedAt pq.NullTime
	if status == common.SyncStatusSynced {
		syncedAt = pq.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	_, err = db.ExecContext(ctx, updateLocationStatusCmd,
		status, dbutils.NullString(syncErr), syncedAt, imageId, endpointId)
	if err != nil {
		klog.ErrorS(err, "failed to update location sync status",
			"imageId", imageId, "endpointId", endpointId, "status", status)
	}
	return err
}

// DeleteImageLocation removes one location row.
func (c *Client) DeleteImageLocation(ctx context.Context, imageId, endpointId int64) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteLocationCmd, imageId, endpointId)
	return err
}

// DeleteLocationsByEndpoint removes every location row of an endpoint and
// returns how many were deleted.
func (c *Client) DeleteLocationsByEndpoint(ctx context.Context, endpointId int64) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, deleteLocationsByEndpointCmd, endpointId)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SelectOrphanImageIds returns the images that would lose their last
// location if the endpoint were unlinked.
func (c *Client) SelectOrphanImageIds(ctx context.Context, endpointId int64) ([]int64, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var ids []int64
	err = db.SelectContext(ctx, &ids, selectOrphanImageIdsCmd, endpointId)
	return ids, err
}

// SelectImageIdsMissingOnEndpoint pages through images that have no location
// on the endpoint yet, used by the backup sweep.
func (c *Client) SelectImageIdsMissingOnEndpoint(ctx context.Context, endpointId, afterId int64, limit int) ([]int64, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLocationBatch
	}
	var ids []int64
	err = db.SelectContext(ctx, &ids, selectImageIdsMissingOnEndpointCmd, endpointId, afterId, limit)
	return ids, err
}

// SelectImageLocations retrieves location rows matching the criteria.
func (c *Client) SelectImageLocations(ctx context.Context, query sqrl.Sqlizer, limit, offset int) ([]*ImageLocation, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).From(TImageLocation).Where(query).OrderBy("id")
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
	var locations []*ImageLocation
	err = db.SelectContext(ctx, &locations, sql, args...)
	return locations, err
}
