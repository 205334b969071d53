/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tags

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	dbutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/utils"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/imageutil"
)

// UploadTags carries the ingest-time tag inputs of one image.
type UploadTags struct {
	// Names are the user-supplied normal-level tag names, in request order.
	Names []string
	// CategoryId selects the category association. Zero picks the
	// unclassified category.
	CategoryId int64
	// Width and Height drive the resolution bucket.
	Width  int
	Height int
	// AddedBy is recorded on rows the user asked for.
	AddedBy string
}

// ApplyUploadTags writes the initial associations of a freshly ingested
// image in one statement: the user's tags, the category row, and the
// resolution row. Existing rows stay untouched, so replaying the call
// after a partial failure is safe.
func (s *Service) ApplyUploadTags(ctx context.Context, imageId int64, upload *UploadTags) error {
	if upload == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	userTags, err := s.ResolveNames(ctx, upload.Names, common.TagSourceUser)
	if err != nil {
		return err
	}
	rows := make([]*dbclient.ImageTag, 0, len(userTags)+2)
	for i, tag := range userTags {
		rows = append(rows, &dbclient.ImageTag{
			ImageId:   imageId,
			TagId:     tag.Id,
			Source:    common.TagSourceUser,
			AddedBy:   dbutils.NullString(upload.AddedBy),
			SortOrder: i,
		})
	}

	categoryRow, err := s.categoryRow(ctx, imageId, upload)
	if err != nil {
		return err
	}
	rows = append(rows, categoryRow)

	if resolutionRow := s.resolutionRow(ctx, imageId, upload.Width, upload.Height); resolutionRow != nil {
		rows = append(rows, resolutionRow)
	}
	return s.dbClient.InsertImageTags(ctx, rows)
}

func (s *Service) categoryRow(ctx context.Context, imageId int64, upload *UploadTags) (*dbclient.ImageTag, error) {
	category, err := s.Category(ctx, upload.CategoryId)
	if err != nil {
		return nil, err
	}
	source := common.TagSourceSystem
	addedBy := ""
	if upload.CategoryId != 0 {
		source = common.TagSourceUser
		addedBy = upload.AddedBy
	}
	return &dbclient.ImageTag{
		ImageId: imageId,
		TagId:   category.Id,
		Source:  source,
		AddedBy: dbutils.NullString(addedBy),
	}, nil
}

// resolutionRow looks up the seeded resolution tag for the image's longest
// side. A missing seed row is logged and skipped so ingestion never fails
// on it.
func (s *Service) resolutionRow(ctx context.Context, imageId int64, width, height int) *dbclient.ImageTag {
	label := imageutil.ResolutionLabel(width, height)
	tag, err := s.dbClient.GetTagByName(ctx, label)
	if err != nil || tag == nil || tag.Level != common.TagLevelResolution {
		klog.Warningf("resolution tag %q is unavailable for image %d: %v", label, imageId, err)
		return nil
	}
	return &dbclient.ImageTag{
		ImageId: imageId,
		TagId:   tag.Id,
		Source:  common.TagSourceSystem,
	}
}
