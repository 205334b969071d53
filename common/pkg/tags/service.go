/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tags

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sqrl "github.com/Masterminds/squirrel"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// Interface is the tag layer above the database client. It owns the rules
// that keep the three levels consistent: which associations an operation
// may remove, which source new rows carry, and how the category and
// resolution levels are protected from user and model writes.
type Interface interface {
	// ResolveNames maps names to normal-level tags, creating missing ones
	// with the given source. Blank names, duplicates, and names owned by
	// the category or resolution levels are dropped.
	ResolveNames(ctx context.Context, names []string, source string) ([]*dbclient.Tag, error)
	// Category returns the category tag for an ingest or update request.
	// A zero id selects the unclassified category.
	Category(ctx context.Context, id int64) (*dbclient.Tag, error)
	// CreateUserTag creates a normal-level tag on behalf of a user.
	CreateUserTag(ctx context.Context, name, description string) (*dbclient.Tag, error)
	// SetImageTags reconciles the image's tags against names. Existing
	// associations keep their source; removals only evict stale ai rows,
	// so category, resolution and user tags survive a model re-run.
	SetImageTags(ctx context.Context, imageId int64, names []string, source, addedBy string) error
	// SetImageTagsByIds makes tagIds the image's complete normal-level
	// tag set with a minimal diff. Removals cover rows of every source.
	SetImageTagsByIds(ctx context.Context, imageId int64, tagIds []int64, addedBy string) error
	// ApplyUploadTags attaches the ingest-time tag set of a new image:
	// the user's names, the category, and the resolution bucket.
	ApplyUploadTags(ctx context.Context, imageId int64, upload *UploadTags) error
	// SetCategory moves the image to another category, keeping exactly
	// one category-level association.
	SetCategory(ctx context.Context, imageId, categoryId int64, addedBy string) error
	// BatchAddByNames associates every resolved name with every image.
	BatchAddByNames(ctx context.Context, imageIds []int64, names []string, addedBy, ownedBy string) error
	// BatchReplaceByNames replaces the normal-level tag set of every image.
	BatchReplaceByNames(ctx context.Context, imageIds []int64, names []string, addedBy, ownedBy string) error
}

// Service implements Interface over the shared database client.
type Service struct {
	dbClient dbclient.Interface
}

var (
	serviceOnce    sync.Once
	defaultService *Service
)

// NewService returns the process-wide tag service. The database client
// must be initialized first.
func NewService() *Service {
	serviceOnce.Do(func() {
		defaultService = New(dbclient.NewClient())
	})
	return defaultService
}

// New builds a tag service over an explicit database client. Packages that
// already carry an injected client use this to stay on the same connection
// seam.
func New(db dbclient.Interface) *Service {
	return &Service{dbClient: db}
}

func (s *Service) ResolveNames(ctx context.Context, names []string, source string) ([]*dbclient.Tag, error) {
	resolved := make([]*dbclient.Tag, 0, len(names))
	seen := make(map[int64]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := s.dbClient.ResolveTag(ctx, name, source)
		if err != nil {
			return nil, err
		}
		// A name owned by the category or resolution level resolves to
		// that tag; it is not attachable as a normal tag.
		if tag == nil || tag.Level != common.TagLevelNormal {
			continue
		}
		if seen[tag.Id] {
			continue
		}
		seen[tag.Id] = true
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

func (s *Service) Category(ctx context.Context, id int64) (*dbclient.Tag, error) {
	if id == 0 {
		id = common.UnclassifiedCategoryId
	}
	tag, err := s.dbClient.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil || tag.Level != common.TagLevelCategory {
		return nil, commonerrors.NewBadRequest(fmt.Sprintf("category %d does not exist", id))
	}
	return tag, nil
}

// SetCategory replaces the image's category-level association. The old
// row goes first so the one-category invariant holds through the change.
func (s *Service) SetCategory(ctx context.Context, imageId, categoryId int64, addedBy string) error {
	category, err := s.Category(ctx, categoryId)
	if err != nil {
		return err
	}
	existing, err := s.dbClient.GetImageTags(ctx, imageId)
	if err != nil {
		return err
	}
	var stale []int64
	for _, row := range existing {
		if row.Level != common.TagLevelCategory {
			continue
		}
		if row.TagId == category.Id {
			return nil
		}
		stale = append(stale, row.TagId)
	}
	if len(stale) > 0 {
		if err = s.dbClient.DeleteImageTags(ctx, imageId, stale); err != nil {
			return err
		}
	}
	source := common.TagSourceSystem
	if categoryId != 0 {
		source = common.TagSourceUser
	}
	return s.dbClient.InsertImageTags(ctx, []*dbclient.ImageTag{{
		ImageId: imageId,
		TagId:   category.Id,
		Source:  source,
		AddedBy: dbutils.NullString(addedBy),
	}})
}

func (s *Service) CreateUserTag(ctx context.Context, name, description string) (*dbclient.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, commonerrors.NewBadRequest("tag name is empty")
	}
	tag := &dbclient.Tag{
		Name:        name,
		Level:       common.TagLevelNormal,
		Source:      common.TagSourceUser,
		Description: dbutils.NullString(description),
	}
	if _, err := s.dbClient.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *Service) SetImageTags(ctx context.Context, imageId int64, names []string, source, addedBy string) error {
	tags, err := s.ResolveNames(ctx, names, source)
	if err != nil {
		return err
	}
	tagIds := make([]int64, 0, len(tags))
	for _, tag := range tags {
		tagIds = append(tagIds, tag.Id)
	}
	if source == common.TagSourceAI {
		return s.dbClient.ReplaceImageAITags(ctx, imageId, tagIds)
	}

	// Other sources add with their own label but still only evict rows
	// the model wrote. User rows never disappear behind the author's back.
	current, err := s.dbClient.GetImageTags(ctx, imageId)
	if err != nil {
		return err
	}
	desired := make(map[int64]bool, len(tagIds))
	for _, id := range tagIds {
		desired[id] = true
	}
	existing := make(map[int64]bool, len(current))
	var stale []int64
	for _, row := range current {
		existing[row.TagId] = true
		if !desired[row.TagId] && row.Level == common.TagLevelNormal && row.Source == common.TagSourceAI {
			stale = append(stale, row.TagId)
		}
	}
	if err = s.dbClient.DeleteImageTags(ctx, imageId, stale); err != nil {
		return err
	}
	rows := make([]*dbclient.ImageTag, 0, len(tags))
	for i, tag := range tags {
		if existing[tag.Id] {
			continue
		}
		rows = append(rows, &dbclient.ImageTag{
			ImageId:   imageId,
			TagId:     tag.Id,
			Source:    source,
			AddedBy:   dbutils.NullString(addedBy),
			SortOrder: i,
		})
	}
	return s.dbClient.InsertImageTags(ctx, rows)
}

func (s *Service) SetImageTagsByIds(ctx context.Context, imageId int64, tagIds []int64, addedBy string) error {
	deduped := make([]int64, 0, len(tagIds))
	if len(tagIds) > 0 {
		known, err := s.normalTagIds(ctx, tagIds)
		if err != nil {
			return err
		}
		seen := make(map[int64]bool, len(tagIds))
		for _, id := range tagIds {
			if seen[id] {
				continue
			}
			seen[id] = true
			if !known[id] {
				return commonerrors.NewBadRequest(fmt.Sprintf("tag %d does not exist or is not a normal tag", id))
			}
			deduped = append(deduped, id)
		}
	}
	return s.dbClient.SetImageTagsByIds(ctx, imageId, deduped, addedBy)
}

func (s *Service) BatchAddByNames(ctx context.Context, imageIds []int64, names []string, addedBy, ownedBy string) error {
	tags, err := s.ResolveNames(ctx, names, common.TagSourceUser)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return commonerrors.NewBadRequest("no usable tag names")
	}
	return s.dbClient.BatchAddImageTags(ctx, imageIds, tagIdsOf(tags), common.TagSourceUser, addedBy, ownedBy)
}

func (s *Service) BatchReplaceByNames(ctx context.Context, imageIds []int64, names []string, addedBy, ownedBy string) error {
	tags, err := s.ResolveNames(ctx, names, common.TagSourceUser)
	if err != nil {
		return err
	}
	// An empty resolved set is a valid replacement: it clears the
	// normal-level tags of every image.
	return s.dbClient.BatchReplaceImageTags(ctx, imageIds, tagIdsOf(tags), common.TagSourceUser, addedBy, ownedBy)
}

// normalTagIds returns which of the candidate ids exist as normal-level tags.
func (s *Service) normalTagIds(ctx context.Context, candidates []int64) (map[int64]bool, error) {
	rows, err := s.dbClient.SelectTags(ctx, sqrl.Eq{"id": candidates}, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]bool, len(rows))
	for _, tag := range rows {
		if tag.Level == common.TagLevelNormal {
			known[tag.Id] = true
		}
	}
	return known, nil
}

func tagIdsOf(tags []*dbclient.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.Id)
	}
	return ids
}
