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
	"k8s.io/klog/v2"

	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	TCollection      = "collection"
	TCollectionImage = "collection_image"
)

var (
	getCollectionCmd       = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TCollection)
	insertCollectionFormat = `INSERT INTO ` + TCollection + ` (%s) VALUES (%s) RETURNING id`
	deleteCollectionCmd    = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, TCollection)
	deleteCollectionImagesCmd  = fmt.Sprintf(`DELETE FROM %s WHERE collection_id = $1`, TCollectionImage)
	removeCollectionImageCmd   = fmt.Sprintf(`DELETE FROM %s WHERE collection_id = $1 AND image_id = $2`, TCollectionImage)
	selectCollectionImagesCmd  = fmt.Sprintf(`SELECT image_id FROM %s WHERE collection_id = $1 ORDER BY added_at`, TCollectionImage)
	countCollectionImagesCmd   = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE collection_id = $1`, TCollectionImage)
)

// InsertCollection persists a new collection and returns its id.
func (c *Client) InsertCollection(ctx context.Context, collection *Collection) (int64, error) {
	if collection == nil {
		return 0, commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	collection.CreatedAt = pq.NullTime{Time: now, Valid: true}
	collection.UpdatedAt = pq.NullTime{Time: now, Valid: true}
	rows, err := db.NamedQueryContext(ctx, generateCommand(*collection, insertCollectionFormat, "id"), collection)
	if err != nil {
		klog.ErrorS(err, "failed to insert collection", "name", collection.Name)
		return 0, err
	}
	defer rows.Close()
	var id int64
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, err
		}
	}
	collection.Id = id
	return id, nil
}

// GetCollection retrieves a collection by id, nil when absent.
func (c *Client) GetCollection(ctx context.Context, id int64) (*Collection, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	collection := &Collection{}
	err = db.GetContext(ctx, collection, getCollectionCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// SelectCollections retrieves multiple collection records.
func (c *Client) SelectCollections(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Collection, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TCollection).
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
	var collections []*Collection
	err = db.SelectContext(ctx, &collections, sql, args...)
	return collections, err
}

// DeleteCollection removes a collection and its image references.
func (c *Client) DeleteCollection(ctx context.Context, id int64) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	if _, err = db.ExecContext(ctx, deleteCollectionImagesCmd, id); err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteCollectionCmd, id)
	return err
}

// AddImagesToCollection links images into a collection, skipping existing rows.
func (c *Client) AddImagesToCollection(ctx context.Context, collectionId int64, imageIds []int64) error {
	if len(imageIds) == 0 {
		return nil
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	builder := sqrl.Insert(TCollectionImage).
		Columns("collection_id", "image_id", "added_at").
		PlaceholderFormat(sqrl.Dollar).
		Suffix("ON CONFLICT (collection_id, image_id) DO NOTHING")
	now := time.Now().UTC()
	for _, imageId := range imageIds {
		builder = builder.Values(collectionId, imageId, now)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, sql, args...)
	return err
}

// RemoveImageFromCollection unlinks one image from a collection.
func (c *Client) RemoveImageFromCollection(ctx context.Context, collectionId, imageId int64) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, removeCollectionImageCmd, collectionId, imageId)
	return err
}

// GetCollectionImageIds returns the image ids of a collection in added order.
func (c *Client) GetCollectionImageIds(ctx context.Context, collectionId int64) ([]int64, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var ids []int64
	err = db.SelectContext(ctx, &ids, selectCollectionImagesCmd, collectionId)
	return ids, err
}

// CountCollectionImages returns how many images a collection holds.
func (c *Client) CountCollectionImages(ctx context.Context, collectionId int64) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, countCollectionImagesCmd, collectionId)
	return cnt, err
}
