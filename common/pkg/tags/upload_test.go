/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tags

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func TestApplyUploadTags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).Return(normalTag(101, "fox"), nil)
	db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
		Return(&dbclient.Tag{Id: common.UnclassifiedCategoryId, Level: common.TagLevelCategory}, nil)
	db.EXPECT().GetTagByName(gomock.Any(), "1080p").
		Return(&dbclient.Tag{Id: 22, Name: "1080p", Level: common.TagLevelResolution}, nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []*dbclient.ImageTag) error {
			assert.Len(t, rows, 3)
			assert.Equal(t, int64(101), rows[0].TagId)
			assert.Equal(t, common.TagSourceUser, rows[0].Source)
			assert.Equal(t, "alice", rows[0].AddedBy.String)
			// The default category is a system row, not a user choice.
			assert.Equal(t, int64(common.UnclassifiedCategoryId), rows[1].TagId)
			assert.Equal(t, common.TagSourceSystem, rows[1].Source)
			assert.False(t, rows[1].AddedBy.Valid)
			assert.Equal(t, int64(22), rows[2].TagId)
			assert.Equal(t, common.TagSourceSystem, rows[2].Source)
			return nil
		})

	err := s.ApplyUploadTags(context.Background(), 7, &UploadTags{
		Names:   []string{"fox"},
		Width:   1920,
		Height:  1080,
		AddedBy: "alice",
	})
	assert.NoError(t, err)
}

func TestApplyUploadTagsExplicitCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().GetTag(gomock.Any(), int64(3)).
		Return(&dbclient.Tag{Id: 3, Level: common.TagLevelCategory}, nil)
	db.EXPECT().GetTagByName(gomock.Any(), "4K").
		Return(&dbclient.Tag{Id: 24, Name: "4K", Level: common.TagLevelResolution}, nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []*dbclient.ImageTag) error {
			assert.Len(t, rows, 2)
			assert.Equal(t, int64(3), rows[0].TagId)
			assert.Equal(t, common.TagSourceUser, rows[0].Source)
			assert.Equal(t, "alice", rows[0].AddedBy.String)
			return nil
		})

	err := s.ApplyUploadTags(context.Background(), 7, &UploadTags{
		CategoryId: 3,
		Width:      3840,
		Height:     2160,
		AddedBy:    "alice",
	})
	assert.NoError(t, err)
}

func TestApplyUploadTagsRejectsBadCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().GetTag(gomock.Any(), int64(99)).Return(nil, nil)

	err := s.ApplyUploadTags(context.Background(), 7, &UploadTags{CategoryId: 99})
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestApplyUploadTagsSkipsMissingResolutionTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
		Return(&dbclient.Tag{Id: common.UnclassifiedCategoryId, Level: common.TagLevelCategory}, nil)
	db.EXPECT().GetTagByName(gomock.Any(), "SD").Return(nil, nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Len(1)).Return(nil)

	err := s.ApplyUploadTags(context.Background(), 7, &UploadTags{Width: 640, Height: 480})
	assert.NoError(t, err)
}

func TestApplyUploadTagsNilInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl)

	err := s.ApplyUploadTags(context.Background(), 7, nil)
	assert.True(t, commonerrors.IsBadRequest(err))
}
