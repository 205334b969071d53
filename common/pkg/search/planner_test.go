/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search

import (
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"

	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func TestBuildFiltersVisibility(t *testing.T) {
	t.Run("anonymous sees public only", func(t *testing.T) {
		sql, args, err := buildFilters(&Request{}).ToSql()
		assert.NoError(t, err)
		assert.Contains(t, sql, "is_public")
		assert.NotContains(t, sql, "uploaded_by")
		assert.Equal(t, []interface{}{true}, args)
	})

	t.Run("member sees public or own", func(t *testing.T) {
		sql, _, err := buildFilters(&Request{VisibleToUserId: "u-1"}).ToSql()
		assert.NoError(t, err)
		assert.Contains(t, sql, "is_public")
		assert.Contains(t, sql, "uploaded_by")
		assert.Contains(t, sql, " OR ")
	})

	t.Run("admin skips the scope", func(t *testing.T) {
		filters := buildFilters(&Request{SkipVisibility: true})
		assert.Empty(t, filters)
	})
}

func TestBuildFiltersTagAnd(t *testing.T) {
	filters := buildFilters(&Request{SkipVisibility: true, Tags: []string{"fox", "grass"}})
	sql, args, err := filters.ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "GROUP BY it.image_id HAVING COUNT(DISTINCT it.tag_id) = ?")
	// The array of names plus its length.
	assert.Len(t, args, 2)
	assert.Equal(t, 2, args[1])
}

func TestBuildFiltersKeywordEscapesWildcards(t *testing.T) {
	filters := buildFilters(&Request{SkipVisibility: true, Keyword: "50%_off"})
	_, args, err := filters.ToSql()
	assert.NoError(t, err)
	assert.Equal(t, `%50\%\_off%`, args[0])
	// Description and tag-name sides share the same pattern.
	assert.Equal(t, args[0], args[1])
}

func TestBuildFiltersPendingAndDuplicates(t *testing.T) {
	filters := buildFilters(&Request{
		SkipVisibility: true,
		PendingOnly:    true,
		DuplicatesOnly: true,
	})
	sql, _, err := filters.ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "description IS NULL OR description = ''")
	assert.Contains(t, sql, "GROUP BY file_hash HAVING COUNT(*) > 1")
}

func TestBuildFiltersCategoryAndUploader(t *testing.T) {
	filters := buildFilters(&Request{
		SkipVisibility: true,
		CategoryId:     10,
		ResolutionId:   22,
		UserId:         "u-9",
	})
	sql, args, err := filters.ToSql()
	assert.NoError(t, err)
	assert.Equal(t, 2, strings.Count(sql, "tag_id = ?"))
	assert.Contains(t, sql, "uploaded_by = ?")
	assert.Len(t, args, 3)
}

func TestBuildHybridQuery(t *testing.T) {
	vec := pgvector.NewVector([]float32{0.1, 0.2})
	filters := buildFilters(&Request{VisibleToUserId: "u-1"})
	query := buildHybridQuery(filters, vec, "fox", weights{vector: 0.7, tag: 0.3, threshold: 0.5}, 20, 40)

	sql, args, err := query.ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "AS vector_score")
	assert.Contains(t, sql, "AS tag_score")
	assert.Contains(t, sql, "AS final_score")
	assert.Contains(t, sql, "FROM image")
	assert.Contains(t, sql, "vector_score > $")
	assert.Contains(t, sql, "tag_score = 1.0")
	assert.Contains(t, sql, "ORDER BY final_score DESC, id DESC")
	assert.Contains(t, sql, "LIMIT 20")
	assert.Contains(t, sql, "OFFSET 40")
	// Dollar placeholders throughout, no leftover question marks.
	assert.NotContains(t, sql, "?")
	// Weights, query vector, exact-match text, visibility args, threshold.
	assert.Len(t, args, 7)
	assert.Equal(t, 0.7, args[0])
	assert.Equal(t, 0.3, args[1])
	assert.Equal(t, vec, args[2])
	assert.Equal(t, "fox", args[3])
}

func TestCandidateConditionCountsWithoutAliases(t *testing.T) {
	vec := pgvector.NewVector([]float32{0.5})
	sql, args, err := candidateCondition(vec, "fox", 0.5).ToSql()
	assert.NoError(t, err)
	assert.Contains(t, sql, "COALESCE(1 - (embedding <=> ?), 0) > ?")
	assert.Contains(t, sql, "t.name = ?")
	assert.NotContains(t, sql, "vector_score")
	assert.Equal(t, []interface{}{vec, 0.5, "fox"}, args)
}

func TestRequestPagination(t *testing.T) {
	limit, offset, page := (&Request{}).pagination()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 1, page)

	limit, offset, page = (&Request{Page: 3, PageSize: 50}).pagination()
	assert.Equal(t, 50, limit)
	assert.Equal(t, 100, offset)
	assert.Equal(t, 3, page)

	limit, _, _ = (&Request{PageSize: 10000}).pagination()
	assert.Equal(t, maxPageSize, limit)
}

func TestRequestOrderBy(t *testing.T) {
	orderBy, err := (&Request{}).orderBy()
	assert.NoError(t, err)
	assert.Equal(t, []string{"created_at DESC", "id DESC"}, orderBy)

	orderBy, err = (&Request{SortBy: "file_size_mb", SortOrder: "asc"}).orderBy()
	assert.NoError(t, err)
	assert.Equal(t, "file_size_mb ASC", orderBy[0])

	_, err = (&Request{SortBy: "file_hash"}).orderBy()
	assert.True(t, commonerrors.IsBadRequest(err))

	_, err = (&Request{SortOrder: "sideways"}).orderBy()
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestRequestWeightsOverrides(t *testing.T) {
	w := (&Request{}).weights()
	assert.Equal(t, 0.7, w.vector)
	assert.Equal(t, 0.3, w.tag)
	assert.Equal(t, 0.5, w.threshold)

	vw, tw, th := 0.9, 0.1, 0.25
	w = (&Request{VectorWeight: &vw, TagWeight: &tw, ScoreThreshold: &th}).weights()
	assert.Equal(t, 0.9, w.vector)
	assert.Equal(t, 0.1, w.tag)
	assert.Equal(t, 0.25, w.threshold)
}
