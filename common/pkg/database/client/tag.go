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
	TTag      = "tag"
	TImageTag = "image_tag"

	// AI rows sort after user and system rows within the same level.
	SortOrderBaseAI = 100
)

var (
	getTagCmd           = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TTag)
	getTagByNameCmd     = fmt.Sprintf(`SELECT * FROM %s WHERE name = $1 LIMIT 1`, TTag)
	getTagsByNamesCmd   = fmt.Sprintf(`SELECT * FROM %s WHERE name = ANY($1)`, TTag)
	insertTagFormat     = `INSERT INTO ` + TTag + ` (%s) VALUES (%s) RETURNING id`
	resolveTagInsertCmd = fmt.Sprintf(`INSERT INTO %s (name, level, source, sort_order, usage_count, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, $4, $4) ON CONFLICT (name) DO NOTHING RETURNING id`, TTag)
	deleteTagCmd = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, TTag)

	getImageTagsCmd = fmt.Sprintf(`SELECT it.image_id, it.tag_id, it.source, it.added_by, it.sort_order,
			t.name, t.level, t.code
		FROM %s it JOIN %s t ON t.id = it.tag_id
		WHERE it.image_id = $1
		ORDER BY t.level, it.sort_order, t.name`, TImageTag, TTag)
	getImageTagsByImagesCmd = fmt.Sprintf(`SELECT it.image_id, it.tag_id, it.source, it.added_by, it.sort_order,
			t.name, t.level, t.code
		FROM %s it JOIN %s t ON t.id = it.tag_id
		WHERE it.image_id = ANY($1)
		ORDER BY it.image_id, t.level, it.sort_order, t.name`, TImageTag, TTag)
	selectImageTagIdsCmd = fmt.Sprintf(`SELECT tag_id FROM %s WHERE image_id = $1`, TImageTag)

	// recountTagUsageCmd keeps the denormalized usage_count aligned after any
	// bulk association change.
	recountTagUsageCmd = fmt.Sprintf(`UPDATE %s SET usage_count =
		(SELECT COUNT(*) FROM %s WHERE %s.tag_id = %s.id)
		WHERE id = ANY($1)`, TTag, TImageTag, TImageTag, TTag)

	deleteImageAITagsCmd = fmt.Sprintf(`DELETE FROM %s it USING %s t
		WHERE t.id = it.tag_id AND it.image_id = $1
		  AND it.source = $2 AND t.level = $3
		  AND NOT (it.tag_id = ANY($4))`, TImageTag, TTag)
	deleteImageLevel2TagsNotInCmd = fmt.Sprintf(`DELETE FROM %s it USING %s t
		WHERE t.id = it.tag_id AND it.image_id = $1
		  AND t.level = $2
		  AND NOT (it.tag_id = ANY($3))`, TImageTag, TTag)

	batchAddImageTagsCmd = fmt.Sprintf(`INSERT INTO %s (image_id, tag_id, source, added_by, sort_order, added_at)
		SELECT i.id, t.t, $3, $4, $5, $6
		FROM unnest($1::bigint[]) AS i(id)
		CROSS JOIN unnest($2::bigint[]) AS t(t)
		WHERE $7 = '' OR EXISTS (
			SELECT 1 FROM %s img WHERE img.id = i.id AND img.uploaded_by = $7
		)
		ON CONFLICT (image_id, tag_id) DO NOTHING`, TImageTag, TImage)
	batchDeleteLevel2TagsCmd = fmt.Sprintf(`DELETE FROM %s it USING %s t
		WHERE t.id = it.tag_id AND t.level = $2
		  AND it.image_id = ANY($1)
		  AND ($3 = '' OR EXISTS (
			SELECT 1 FROM %s img WHERE img.id = it.image_id AND img.uploaded_by = $3
		  ))`, TImageTag, TTag, TImage)
	selectLevel2TagIdsByImagesCmd = fmt.Sprintf(`SELECT DISTINCT it.tag_id FROM %s it
		JOIN %s t ON t.id = it.tag_id
		WHERE it.image_id = ANY($1) AND t.level = $2`, TImageTag, TTag)
)

// GetTag retrieves a tag by id, returning nil when it does not exist.
func (c *Client) GetTag(ctx context.Context, id int64) (*Tag, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	tag := &Tag{}
	err = db.GetContext(ctx, tag, getTagCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTagByName retrieves a tag by its unique name, nil when absent.
func (c *Client) GetTagByName(ctx context.Context, name string) (*Tag, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	tag := &Tag{}
	err = db.GetContext(ctx, tag, getTagByNameCmd, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTagsByNames retrieves all tags whose name is in names.
func (c *Client) GetTagsByNames(ctx context.Context, names []string) ([]*Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var tags []*Tag
	err = db.SelectContext(ctx, &tags, getTagsByNamesCmd, pq.Array(names))
	return tags, err
}

// SelectTags retrieves multiple tag records.
func (c *Client) SelectTags(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Tag, error) {
	startTime := time.Now().UTC()
	defer func() {
		if query != nil {
			strQuery := dbutils.CvtToSqlStr(query)
			klog.Infof("select tag, query: %s, orderBy: %v, limit: %d, offset: %d, cost (%v)",
				strQuery, orderBy, limit, offset, time.Since(startTime))
		}
	}()
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TTag).
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

	var tags []*Tag
	if c.RequestTimeout > 0 {
		ctx2, cancel := context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
		err = db.SelectContext(ctx2, &tags, sql, args...)
	} else {
		err = db.SelectContext(ctx, &tags, sql, args...)
	}
	return tags, err
}

// CountTags returns the total count of tags matching the criteria.
func (c *Client) CountTags(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	sql, args, err := sqrl.Select("COUNT(*)").PlaceholderFormat(sqrl.Dollar).From(TTag).Where(query).ToSql()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, sql, args...)
	return cnt, err
}

// CreateTag inserts a tag row and returns its id.
func (c *Client) CreateTag(ctx context.Context, tag *Tag) (int64, error) {
	if tag == nil {
		return 0, commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	tag.CreatedAt = pq.NullTime{Time: now, Valid: true}
	tag.UpdatedAt = pq.NullTime{Time: now, Valid: true}
	rows, err := db.NamedQueryContext(ctx, generateCommand(*tag, insertTagFormat, "id"), tag)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, commonerrors.NewAlreadyExist(fmt.Sprintf("tag %s already exists", tag.Name))
		}
		klog.ErrorS(err, "failed to insert tag", "name", tag.Name)
		return 0, err
	}
	defer rows.Close()
	var id int64
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, err
		}
	}
	tag.Id = id
	return id, nil
}

// ResolveTag returns the tag with the given name at any level, creating a
// normal-level tag when none exists. Concurrent creations settle through
// ON CONFLICT DO NOTHING followed by a re-read.
func (c *Client) ResolveTag(ctx context.Context, name, source string) (*Tag, error) {
	if name == "" {
		return nil, commonerrors.NewBadRequest("tag name is empty")
	}
	tag, err := c.GetTagByName(ctx, name)
	if err != nil || tag != nil {
		return tag, err
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var id int64
	err = db.GetContext(ctx, &id, resolveTagInsertCmd, name, common.TagLevelNormal, source, time.Now().UTC())
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	// No row returned means another writer won the insert.
	return c.GetTagByName(ctx, name)
}

// DeleteTag removes a tag row. System rows below the reserved bound stay.
func (c *Client) DeleteTag(ctx context.Context, id int64) error {
	if id <= common.ReservedTagIdUpperBound && id > 0 {
		return commonerrors.NewForbidden("system tags cannot be deleted")
	}
	return c.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE tag_id = $1`, TImageTag), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, deleteTagCmd, id)
		return err
	})
}

// GetImageTags returns the tags of one image joined with tag metadata,
// ordered by level then sort order.
func (c *Client) GetImageTags(ctx context.Context, imageId int64) ([]*ImageTagDetail, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var details []*ImageTagDetail
	err = db.SelectContext(ctx, &details, getImageTagsCmd, imageId)
	return details, err
}

// GetImageTagsByImageIds returns the tags of a set of images in one round trip.
func (c *Client) GetImageTagsByImageIds(ctx context.Context, imageIds []int64) ([]*ImageTagDetail, error) {
	if len(imageIds) == 0 {
		return nil, nil
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var details []*ImageTagDetail
	err = db.SelectContext(ctx, &details, getImageTagsByImagesCmd, pq.Array(imageIds))
	return details, err
}

// InsertImageTags adds associations, silently keeping existing rows so a
// re-tag never downgrades a user row to another source.
func (c *Client) InsertImageTags(ctx context.Context, rows []*ImageTag) error {
	if len(rows) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	builder := sqrl.Insert(TImageTag).
		Columns("image_id", "tag_id", "source", "added_by", "sort_order", "added_at").
		PlaceholderFormat(sqrl.Dollar).
		Suffix("ON CONFLICT (image_id, tag_id) DO NOTHING")
	now := time.Now().UTC()
	for _, row := range rows {
		builder = builder.Values(row.ImageId, row.TagId, row.Source, row.AddedBy, row.SortOrder, now)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	if _, err = db.ExecContext(ctx, sql, args...); err != nil {
		klog.ErrorS(err, "failed to insert image tags")
		return err
	}
	tagIds := make([]int64, 0, len(rows))
	for _, row := range rows {
		tagIds = append(tagIds, row.TagId)
	}
	return c.RecountTagUsage(ctx, tagIds)
}

// DeleteImageTags removes the given associations of one image.
func (c *Client) DeleteImageTags(ctx context.Context, imageId int64, tagIds []int64) error {
	if len(tagIds) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	cmd := fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1 AND tag_id = ANY($2)`, TImageTag)
	if _, err = db.ExecContext(ctx, cmd, imageId, pq.Array(tagIds)); err != nil {
		return err
	}
	return c.RecountTagUsage(ctx, tagIds)
}

// ReplaceImageAITags makes tagIds the AI-sourced normal tags of the image.
// Associations owned by users or the system are never touched, and rows the
// image already has keep their original source.
func (c *Client) ReplaceImageAITags(ctx context.Context, imageId int64, tagIds []int64) error {
	var affected []int64
	err := c.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &affected, selectImageTagIdsCmd, imageId); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteImageAITagsCmd,
			imageId, common.TagSourceAI, common.TagLevelNormal, pq.Array(tagIds)); err != nil {
			return err
		}
		if len(tagIds) == 0 {
			return nil
		}
		builder := sqrl.Insert(TImageTag).
			Columns("image_id", "tag_id", "source", "added_by", "sort_order", "added_at").
			PlaceholderFormat(sqrl.Dollar).
			Suffix("ON CONFLICT (image_id, tag_id) DO NOTHING")
		now := time.Now().UTC()
		for i, tagId := range tagIds {
			builder = builder.Values(imageId, tagId, common.TagSourceAI, nil, SortOrderBaseAI+i, now)
		}
		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, sql, args...)
		return err
	})
	if err != nil {
		klog.ErrorS(err, "failed to replace ai tags", "imageId", imageId)
		return err
	}
	return c.RecountTagUsage(ctx, append(affected, tagIds...))
}

// SetImageTagsByIds makes tagIds the complete normal-level tag set of the
// image with a minimal diff. Category and resolution rows stay untouched.
func (c *Client) SetImageTagsByIds(ctx context.Context, imageId int64, tagIds []int64, addedBy string) error {
	var affected []int64
	err := c.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := tx.SelectContext(ctx, &affected, selectImageTagIdsCmd, imageId); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteImageLevel2TagsNotInCmd,
			imageId, common.TagLevelNormal, pq.Array(tagIds)); err != nil {
			return err
		}
		if len(tagIds) == 0 {
			return nil
		}
		builder := sqrl.Insert(TImageTag).
			Columns("image_id", "tag_id", "source", "added_by", "sort_order", "added_at").
			PlaceholderFormat(sqrl.Dollar).
			Suffix("ON CONFLICT (image_id, tag_id) DO NOTHING")
		now := time.Now().UTC()
		for i, tagId := range tagIds {
			builder = builder.Values(imageId, tagId, common.TagSourceUser, dbutils.NullString(addedBy), i, now)
		}
		sql, args, err := builder.ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, sql, args...)
		return err
	})
	if err != nil {
		klog.ErrorS(err, "failed to set image tags", "imageId", imageId)
		return err
	}
	return c.RecountTagUsage(ctx, append(affected, tagIds...))
}

// BatchAddImageTags associates every tag with every image in one statement.
// When ownedBy is non-empty only images uploaded by that user are touched.
func (c *Client) BatchAddImageTags(ctx context.Context, imageIds, tagIds []int64, source, addedBy, ownedBy string) error {
	if len(imageIds) == 0 || len(tagIds) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	sortBase := 0
	if source == common.TagSourceAI {
		sortBase = SortOrderBaseAI
	}
	_, err = db.ExecContext(ctx, batchAddImageTagsCmd,
		pq.Array(imageIds), pq.Array(tagIds), source, dbutils.NullString(addedBy),
		sortBase, time.Now().UTC(), ownedBy)
	if err != nil {
		klog.ErrorS(err, "failed to batch add image tags")
		return err
	}
	return c.RecountTagUsage(ctx, tagIds)
}

// BatchReplaceImageTags replaces the normal-level tag set of every image in
// O(1) statements, honoring the same ownership filter as BatchAddImageTags.
func (c *Client) BatchReplaceImageTags(ctx context.Context, imageIds, tagIds []int64, source, addedBy, ownedBy string) error {
	if len(imageIds) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	var previous []int64
	if err = db.SelectContext(ctx, &previous, selectLevel2TagIdsByImagesCmd,
		pq.Array(imageIds), common.TagLevelNormal); err != nil {
		return err
	}
	if _, err = db.ExecContext(ctx, batchDeleteLevel2TagsCmd,
		pq.Array(imageIds), common.TagLevelNormal, ownedBy); err != nil {
		klog.ErrorS(err, "failed to batch delete image tags")
		return err
	}
	if len(tagIds) > 0 {
		sortBase := 0
		if source == common.TagSourceAI {
			sortBase = SortOrderBaseAI
		}
		if _, err = db.ExecContext(ctx, batchAddImageTagsCmd,
			pq.Array(imageIds), pq.Array(tagIds), source, dbutils.NullString(addedBy),
			sortBase, time.Now().UTC(), ownedBy); err != nil {
			klog.ErrorS(err, "failed to batch add image tags")
			return err
		}
	}
	return c.RecountTagUsage(ctx, append(previous, tagIds...))
}

// RecountTagUsage recomputes the denormalized usage counters of the tags.
func (c *Client) RecountTagUsage(ctx context.Context, tagIds []int64) error {
	if len(tagIds) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, recountTagUsageCmd, pq.Array(tagIds))
	if err != nil {
		klog.ErrorS(err, "failed to recount tag usage")
	}
	return err
}
