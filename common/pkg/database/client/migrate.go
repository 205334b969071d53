/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
)

const (
	embeddingIndexName = "idx_image_embedding"

	createVectorExtensionCmd = `CREATE EXTENSION IF NOT EXISTS vector`
	getEmbeddingDimensionCmd = `SELECT COALESCE(atttypmod, 0) FROM pg_attribute
		WHERE attrelid = 'image'::regclass AND attname = 'embedding' AND NOT attisdropped`
	addEmbeddingColumnFormat  = `ALTER TABLE image ADD COLUMN embedding vector(%d)`
	dropEmbeddingIndexCmd     = `DROP INDEX IF EXISTS ` + embeddingIndexName
	alterEmbeddingTypeFormat  = `ALTER TABLE image ALTER COLUMN embedding TYPE vector(%d) USING ARRAY_FILL(0, ARRAY[%d])::vector(%d)`
	createEmbeddingIndexCmd   = `CREATE INDEX IF NOT EXISTS ` + embeddingIndexName + ` ON image USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`
	restartTagSequenceCmd     = `SELECT setval(pg_get_serial_sequence('tag', 'id'), GREATEST(100, (SELECT COALESCE(MAX(id), 100) FROM tag)))`
	uniqueBackupEndpointCmd   = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_backup_endpoint ON storage_endpoint (role) WHERE role = 'backup'`
	uniqueDefaultUploadCmd    = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_default_upload_endpoint ON storage_endpoint (is_default_upload) WHERE is_default_upload`
	uniquePrimaryLocationCmd  = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_primary_location ON image_location (image_id) WHERE is_primary`
	indexTaskPayloadImageCmd  = `CREATE INDEX IF NOT EXISTS idx_task_payload_image ON task ((payload->>'image_id')) WHERE status IN ('pending', 'processing')`
	defaultCategoryTagName    = "待分类"
	defaultLocalEndpointName  = "local"
	defaultLocalBucket        = "images"
)

// resolutionSeedTags are system rows pinned at ids 1-6; the resolution level
// of an image always maps onto exactly one of them.
var resolutionSeedTags = []model.Tag{
	{ID: 1, Name: "8K", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 1},
	{ID: 2, Name: "4K", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 2},
	{ID: 3, Name: "2K", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 3},
	{ID: 4, Name: "1080p", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 4},
	{ID: 5, Name: "720p", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 5},
	{ID: 6, Name: "SD", Level: common.TagLevelResolution, Source: common.TagSourceSystem, SortOrder: 6},
}

// Migrate creates or updates the schema, ensures the pgvector column matches
// the configured dimension and seeds the built-in rows. It must run before
// any worker starts issuing queries.
func (c *Client) Migrate(ctx context.Context, embeddingDimension int) error {
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}

	if _, err = db.ExecContext(ctx, createVectorExtensionCmd); err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	if err = gormDb.WithContext(ctx).AutoMigrate(
		&model.Image{},
		&model.StorageEndpoint{},
		&model.ImageLocation{},
		&model.Tag{},
		&model.ImageTag{},
		&model.Task{},
		&model.User{},
		&model.UserToken{},
		&model.AuditLog{},
		&model.Collection{},
		&model.CollectionImage{},
		&model.Config{},
		&model.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %v", err)
	}

	for _, cmd := range []string{
		uniqueBackupEndpointCmd,
		uniqueDefaultUploadCmd,
		uniquePrimaryLocationCmd,
		indexTaskPayloadImageCmd,
	} {
		if _, err = db.ExecContext(ctx, cmd); err != nil {
			return fmt.Errorf("failed to create index: %v", err)
		}
	}

	if err = c.ensureEmbeddingDimension(ctx, embeddingDimension); err != nil {
		return err
	}
	if err = c.seed(ctx); err != nil {
		return err
	}
	if _, err = db.ExecContext(ctx, restartTagSequenceCmd); err != nil {
		return fmt.Errorf("failed to restart tag sequence: %v", err)
	}
	klog.Infof("database migration completed, embedding dimension: %d", embeddingDimension)
	return nil
}

// ensureEmbeddingDimension adds the embedding column when absent and rebuilds
// it when the configured dimension changed. Rebuilding zero-fills existing
// vectors; they are restored by rebuild_vector tasks.
func (c *Client) ensureEmbeddingDimension(ctx context.Context, dimension int) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	var current int
	err = db.GetContext(ctx, &current, getEmbeddingDimensionCmd)
	if err != nil {
		// No row means the column does not exist yet.
		if _, err = db.ExecContext(ctx, fmt.Sprintf(addEmbeddingColumnFormat, dimension)); err != nil {
			return fmt.Errorf("failed to add embedding column: %v", err)
		}
		if _, err = db.ExecContext(ctx, createEmbeddingIndexCmd); err != nil {
			return fmt.Errorf("failed to create embedding index: %v", err)
		}
		return nil
	}
	if current == dimension {
		if _, err = db.ExecContext(ctx, createEmbeddingIndexCmd); err != nil {
			return fmt.Errorf("failed to create embedding index: %v", err)
		}
		return nil
	}

	klog.Warningf("embedding dimension changed from %d to %d, rebuilding column (existing vectors are zero-filled)",
		current, dimension)
	if _, err = db.ExecContext(ctx, dropEmbeddingIndexCmd); err != nil {
		return fmt.Errorf("failed to drop embedding index: %v", err)
	}
	alterCmd := fmt.Sprintf(alterEmbeddingTypeFormat, dimension, dimension, dimension)
	if _, err = db.ExecContext(ctx, alterCmd); err != nil {
		return fmt.Errorf("failed to alter embedding column: %v", err)
	}
	if _, err = db.ExecContext(ctx, createEmbeddingIndexCmd); err != nil {
		return fmt.Errorf("failed to recreate embedding index: %v", err)
	}
	c.resetPool()
	return nil
}

// resetPool drops idle pooled connections so no session keeps a cached plan
// that references the old column type.
func (c *Client) resetPool() {
	if c.db == nil {
		return
	}
	c.db.SetMaxIdleConns(0)
	c.db.SetMaxIdleConns(c.MaxIdleConns)
}

// seed inserts the built-in endpoint and tag rows, leaving existing rows
// untouched so operator edits survive restarts.
func (c *Client) seed(ctx context.Context) error {
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	session := gormDb.WithContext(ctx)

	bucket := defaultLocalBucket
	localEndpoint := &model.StorageEndpoint{
		ID:              common.DefaultLocalEndpointId,
		Name:            defaultLocalEndpointName,
		Provider:        common.ProviderLocal,
		BucketName:      &bucket,
		Role:            common.RolePrimary,
		IsEnabled:       true,
		IsDefaultUpload: true,
		ReadWeight:      1,
		IsHealthy:       true,
	}
	if err = session.Clauses(clause.OnConflict{DoNothing: true}).Create(localEndpoint).Error; err != nil {
		return fmt.Errorf("failed to seed local endpoint: %v", err)
	}

	tags := make([]model.Tag, 0, len(resolutionSeedTags)+1)
	tags = append(tags, resolutionSeedTags...)
	tags = append(tags, model.Tag{
		ID:     common.UnclassifiedCategoryId,
		Name:   defaultCategoryTagName,
		Level:  common.TagLevelCategory,
		Source: common.TagSourceSystem,
	})
	if err = session.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return fmt.Errorf("failed to seed tags: %v", err)
	}
	return nil
}
