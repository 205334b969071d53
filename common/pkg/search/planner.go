/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search

import (
	"fmt"
	"strings"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// maxPageSize bounds one result page regardless of the request.
const maxPageSize = 100

// Request is one search call. Text drives the hybrid vector+tag scoring;
// everything else narrows the candidate set. VisibleToUserId and
// SkipVisibility come from the authenticated caller, never from the body.
type Request struct {
	Text           string   `json:"text,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Keyword        string   `json:"keyword,omitempty"`
	CategoryId     int64    `json:"category_id,omitempty"`
	ResolutionId   int64    `json:"resolution_id,omitempty"`
	UserId         string   `json:"user_id,omitempty"`
	PendingOnly    bool     `json:"pending_only,omitempty"`
	DuplicatesOnly bool     `json:"duplicates_only,omitempty"`
	Page           int      `json:"page,omitempty"`
	PageSize       int      `json:"page_size,omitempty"`
	SortBy         string   `json:"sort_by,omitempty"`
	SortOrder      string   `json:"sort_order,omitempty"`

	// Per-request overrides of the scoring knobs; nil keeps the
	// configured defaults.
	VectorWeight   *float64 `json:"vector_weight,omitempty"`
	TagWeight      *float64 `json:"tag_weight,omitempty"`
	ScoreThreshold *float64 `json:"score_threshold,omitempty"`

	VisibleToUserId string `json:"-"`
	SkipVisibility  bool   `json:"-"`
}

var (
	tagAndFilterCmd = fmt.Sprintf(`id IN (SELECT it.image_id FROM %s it
		JOIN %s t ON t.id = it.tag_id
		WHERE t.name = ANY(?)
		GROUP BY it.image_id HAVING COUNT(DISTINCT it.tag_id) = ?)`,
		dbclient.TImageTag, dbclient.TTag)
	keywordFilterCmd = fmt.Sprintf(`(description ILIKE ? OR EXISTS (
		SELECT 1 FROM %s it JOIN %s t ON t.id = it.tag_id
		WHERE it.image_id = %s.id AND t.name ILIKE ?))`,
		dbclient.TImageTag, dbclient.TTag, dbclient.TImage)
	hasTagIdFilterCmd = fmt.Sprintf(`EXISTS (SELECT 1 FROM %s
		WHERE image_id = %s.id AND tag_id = ?)`, dbclient.TImageTag, dbclient.TImage)
	pendingFilterCmd    = `(description IS NULL OR description = '')`
	duplicatesFilterCmd = fmt.Sprintf(`file_hash IN (SELECT file_hash FROM %s
		WHERE file_hash IS NOT NULL
		GROUP BY file_hash HAVING COUNT(*) > 1)`, dbclient.TImage)

	vectorScoreExpr = `COALESCE(1 - (embedding <=> ?), 0)`
	tagMatchExpr    = fmt.Sprintf(`EXISTS (SELECT 1 FROM %s it
		JOIN %s t ON t.id = it.tag_id
		WHERE it.image_id = %s.id AND t.name = ?)`,
		dbclient.TImageTag, dbclient.TTag, dbclient.TImage)
)

// sortColumns whitelists the sortable fields of the non-scored listing.
var sortColumns = map[string]string{
	"":             "created_at",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"file_size_mb": "file_size_mb",
	"width":        "width",
	"height":       "height",
	"id":           "id",
}

type weights struct {
	vector    float64
	tag       float64
	threshold float64
}

func (r *Request) weights() weights {
	w := weights{
		vector:    commonconfig.GetSearchVectorWeight(),
		tag:       commonconfig.GetSearchTagWeight(),
		threshold: commonconfig.GetSearchScoreThreshold(),
	}
	if r.VectorWeight != nil {
		w.vector = *r.VectorWeight
	}
	if r.TagWeight != nil {
		w.tag = *r.TagWeight
	}
	if r.ScoreThreshold != nil {
		w.threshold = *r.ScoreThreshold
	}
	return w
}

func (r *Request) pagination() (limit, offset, page int) {
	limit = r.PageSize
	if limit <= 0 {
		limit = commonconfig.GetSearchDefaultLimit()
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page = r.Page
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit, page
}

func (r *Request) orderBy() ([]string, error) {
	column, ok := sortColumns[r.SortBy]
	if !ok {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("unsupported sort field %q", r.SortBy))
	}
	direction := "DESC"
	switch strings.ToLower(r.SortOrder) {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("unsupported sort order %q", r.SortOrder))
	}
	return []string{column + " " + direction, "id DESC"}, nil
}

// buildFilters renders the request's narrowing conditions against the
// image table. The scoring condition is not part of it.
func buildFilters(req *Request) sqrl.And {
	conds := sqrl.And{}
	if len(req.Tags) > 0 {
		conds = append(conds, sqrl.Expr(tagAndFilterCmd, pq.Array(req.Tags), len(req.Tags)))
	}
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		pattern := likePattern(keyword)
		conds = append(conds, sqrl.Expr(keywordFilterCmd, pattern, pattern))
	}
	if req.CategoryId > 0 {
		conds = append(conds, sqrl.Expr(hasTagIdFilterCmd, req.CategoryId))
	}
	if req.ResolutionId > 0 {
		conds = append(conds, sqrl.Expr(hasTagIdFilterCmd, req.ResolutionId))
	}
	if req.UserId != "" {
		conds = append(conds, sqrl.Eq{"uploaded_by": req.UserId})
	}
	if !req.SkipVisibility {
		if req.VisibleToUserId != "" {
			conds = append(conds, sqrl.Or{
				sqrl.Eq{"is_public": true},
				sqrl.Eq{"uploaded_by": req.VisibleToUserId},
			})
		} else {
			conds = append(conds, sqrl.Eq{"is_public": true})
		}
	}
	if req.PendingOnly {
		conds = append(conds, sqrl.Expr(pendingFilterCmd))
	}
	if req.DuplicatesOnly {
		conds = append(conds, sqrl.Expr(duplicatesFilterCmd))
	}
	return conds
}

// buildHybridQuery assembles the scored statement: an inner select computes
// vector_score and tag_score per candidate, the outer one derives
// final_score, keeps rows passing the threshold or carrying an exact tag
// match, and pages by final score.
func buildHybridQuery(filters sqrl.And, vec pgvector.Vector, text string,
	w weights, limit, offset int) sqrl.Sqlizer {
	inner := sqrl.Select(dbclient.TImage + ".*").
		Column(sqrl.Expr(vectorScoreExpr+" AS vector_score", vec)).
		Column(sqrl.Expr("CASE WHEN "+tagMatchExpr+" THEN 1.0 ELSE 0.0 END AS tag_score", text)).
		From(dbclient.TImage)
	if len(filters) > 0 {
		inner = inner.Where(filters)
	}
	return sqrl.Select("*").
		Column(sqrl.Expr("(vector_score * ? + tag_score * ?) AS final_score", w.vector, w.tag)).
		FromSelect(inner, "scored").
		Where(sqrl.Or{
			sqrl.Expr("vector_score > ?", w.threshold),
			sqrl.Expr("tag_score = 1.0"),
		}).
		OrderBy("final_score DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sqrl.Dollar)
}

// candidateCondition is the WHERE-form of the hybrid pass rule, used to
// count the full candidate set without the scored select.
func candidateCondition(vec pgvector.Vector, text string, threshold float64) sqrl.Sqlizer {
	return sqrl.Or{
		sqrl.Expr(vectorScoreExpr+" > ?", vec, threshold),
		sqrl.Expr(tagMatchExpr, text),
	}
}

// likePattern wraps user input for a substring ILIKE, escaping the
// wildcard characters so they match literally.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
