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
	"github.com/pgvector/pgvector-go"
	"k8s.io/klog/v2"

	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	TImage = "image"
)

var (
	getImageCmd       = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TImage)
	insertImageFormat = `INSERT INTO ` + TImage + ` (%s) VALUES (%s) RETURNING id`
	updateImageCmd    = fmt.Sprintf(`UPDATE %s
		SET description = :description,
		    is_public = :is_public,
		    updated_at = :updated_at
		WHERE id = :id`, TImage)
	updateImageEmbeddingCmd = fmt.Sprintf(`UPDATE %s SET embedding = $1, updated_at = $2 WHERE id = $3`, TImage)
	// Workers persist the model's description without touching the
	// user-editable columns.
	updateImageDescriptionCmd = fmt.Sprintf(`UPDATE %s SET description = $1, updated_at = $2 WHERE id = $3`, TImage)
	countImagesByHashCmd      = fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE file_hash = $1`, TImage)
)

// InsertImage inserts a new image row and returns its generated id.
func (c *Client) InsertImage(ctx context.Context, image *Image) (int64, error) {
	if image == nil {
		return 0, commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	image.CreatedAt = pq.NullTime{Time: now, Valid: true}
	image.UpdatedAt = pq.NullTime{Time: now, Valid: true}
	rows, err := db.NamedQueryContext(ctx, generateCommand(*image, insertImageFormat, "id"), image)
	if err != nil {
		klog.ErrorS(err, "failed to insert image to db", "hash", image.FileHash)
		return 0, err
	}
	defer rows.Close()
	var id int64
	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, err
		}
	}
	image.Id = id
	return id, nil
}

// GetImage retrieves an image by id, returning nil when it does not exist.
func (c *Client) GetImage(ctx context.Context, id int64) (*Image, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	image := &Image{}
	err = db.GetContext(ctx, image, getImageCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		klog.ErrorS(err, "failed to get image", "id", id)
		return nil, err
	}
	return image, nil
}

// GetImagesByIds retrieves the images with the given ids.
func (c *Client) GetImagesByIds(ctx context.Context, ids []int64) ([]*Image, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return c.SelectImages(ctx, sqrl.Eq{"id": ids}, nil, len(ids), 0)
}

// SelectImages retrieves multiple image records.
func (c *Client) SelectImages(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*Image, error) {
	startTime := time.Now().UTC()
	defer func() {
		if query != nil {
			strQuery := dbutils.CvtToSqlStr(query)
			klog.Infof("select image, query: %s, orderBy: %v, limit: %d, offset: %d, cost (%v)",
				strQuery, orderBy, limit, offset, time.Since(startTime))
		}
	}()
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	sql, args, err := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TImage).
		Where(query).
		OrderBy(orderBy...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).ToSql()
	if err != nil {
		return nil, err
	}

	var images []*Image
	if c.RequestTimeout > 0 {
		ctx2, cancel := context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
		err = db.SelectContext(ctx2, &images, sql, args...)
	} else {
		err = db.SelectContext(ctx, &images, sql, args...)
	}
	return images, err
}

// CountImages returns the total count of images matching the criteria.
func (c *Client) CountImages(ctx context.Context, query sqrl.Sqlizer) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	sql, args, err := sqrl.Select("COUNT(*)").PlaceholderFormat(sqrl.Dollar).From(TImage).Where(query).ToSql()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, sql, args...)
	return cnt, err
}

// CountImagesByHash returns how many image rows share the given file hash.
// Physical cleanup must leave the object alone while this is above one.
func (c *Client) CountImagesByHash(ctx context.Context, fileHash string) (int, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	var cnt int
	err = db.GetContext(ctx, &cnt, countImagesByHashCmd, fileHash)
	return cnt, err
}

// UpdateImage updates the mutable fields of an image row.
func (c *Client) UpdateImage(ctx context.Context, image *Image) error {
	if image == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	image.UpdatedAt = pq.NullTime{Time: time.Now().UTC(), Valid: true}
	_, err = db.NamedExecContext(ctx, updateImageCmd, image)
	if err != nil {
		klog.ErrorS(err, "failed to update image", "id", image.Id)
	}
	return err
}

// UpdateImageDescription stores the analysis description of an image.
func (c *Client) UpdateImageDescription(ctx context.Context, id int64, description string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, updateImageDescriptionCmd, description, time.Now().UTC(), id)
	if err != nil {
		klog.ErrorS(err, "failed to update image description", "id", id)
	}
	return err
}

// UpdateImageEmbedding stores the freshly computed vector of an image.
func (c *Client) UpdateImageEmbedding(ctx context.Context, id int64, embedding pgvector.Vector) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, updateImageEmbeddingCmd, embedding, time.Now().UTC(), id)
	if err != nil {
		klog.ErrorS(err, "failed to update image embedding", "id", id)
	}
	return err
}

// SearchScoredImages executes a fully built search statement whose select
// list carries vector_score, tag_score and final_score columns.
func (c *Client) SearchScoredImages(ctx context.Context, query sqrl.Sqlizer) ([]*ScoredImage, error) {
	startTime := time.Now().UTC()
	defer func() {
		klog.Infof("search scored images, cost (%v)", time.Since(startTime))
	}()
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var images []*ScoredImage
	if c.RequestTimeout > 0 {
		ctx2, cancel := context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
		err = db.SelectContext(ctx2, &images, sql, args...)
	} else {
		err = db.SelectContext(ctx, &images, sql, args...)
	}
	if err != nil {
		klog.ErrorS(err, "failed to search scored images")
		return nil, err
	}
	return images, nil
}

// DeleteImageCascade removes the image row together with its tag
// associations, locations and collection references. The usage counters of
// the affected tags are recomputed in the same transaction.
func (c *Client) DeleteImageCascade(ctx context.Context, id int64) error {
	return c.withTx(ctx, func(tx *sqlx.Tx) error {
		var tagIds []int64
		if err := tx.SelectContext(ctx, &tagIds,
			fmt.Sprintf(`SELECT tag_id FROM %s WHERE image_id = $1`, TImageTag), id); err != nil {
			return err
		}
		for _, cmd := range []string{
			fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1`, TImageTag),
			fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1`, TImageLocation),
			fmt.Sprintf(`DELETE FROM %s WHERE image_id = $1`, TCollectionImage),
			fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, TImage),
		} {
			if _, err := tx.ExecContext(ctx, cmd, id); err != nil {
				return err
			}
		}
		if len(tagIds) > 0 {
			if _, err := tx.ExecContext(ctx, recountTagUsageCmd, pq.Array(tagIds)); err != nil {
				return err
			}
		}
		return nil
	})
}
