/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package tags

import (
	"context"
	"testing"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mock_client.MockInterface) {
	db := mock_client.NewMockInterface(ctrl)
	return New(db), db
}

func normalTag(id int64, name string) *dbclient.Tag {
	return &dbclient.Tag{Id: id, Name: name, Level: common.TagLevelNormal}
}

func detail(tagId int64, level int, source string) *dbclient.ImageTagDetail {
	return &dbclient.ImageTagDetail{ImageId: 7, TagId: tagId, Level: level, Source: source}
}

func TestResolveNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	// "fox" repeats, " " is blank, "4K" resolves to a resolution tag.
	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).
		Return(normalTag(101, "fox"), nil).Times(2)
	db.EXPECT().ResolveTag(gomock.Any(), "4K", common.TagSourceUser).
		Return(&dbclient.Tag{Id: 22, Name: "4K", Level: common.TagLevelResolution}, nil)

	resolved, err := s.ResolveNames(ctx, []string{"fox", " ", "fox", "4K"}, common.TagSourceUser)
	assert.NoError(t, err)
	assert.Len(t, resolved, 1)
	assert.Equal(t, int64(101), resolved[0].Id)
}

func TestResolveNamesPropagatesError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceAI).Return(nil, assert.AnError)

	_, err := s.ResolveNames(context.Background(), []string{"fox"}, common.TagSourceAI)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	t.Run("zero id falls back to unclassified", func(t *testing.T) {
		db.EXPECT().GetTag(gomock.Any(), int64(common.UnclassifiedCategoryId)).
			Return(&dbclient.Tag{Id: common.UnclassifiedCategoryId, Level: common.TagLevelCategory}, nil)
		tag, err := s.Category(ctx, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(common.UnclassifiedCategoryId), tag.Id)
	})

	t.Run("unknown id", func(t *testing.T) {
		db.EXPECT().GetTag(gomock.Any(), int64(3)).Return(nil, nil)
		_, err := s.Category(ctx, 3)
		assert.True(t, commonerrors.IsBadRequest(err))
	})

	t.Run("id of a normal tag", func(t *testing.T) {
		db.EXPECT().GetTag(gomock.Any(), int64(101)).Return(normalTag(101, "fox"), nil)
		_, err := s.Category(ctx, 101)
		assert.True(t, commonerrors.IsBadRequest(err))
	})
}

func TestCreateUserTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().CreateTag(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tag *dbclient.Tag) (int64, error) {
			assert.Equal(t, "sunset", tag.Name)
			assert.Equal(t, common.TagLevelNormal, tag.Level)
			assert.Equal(t, common.TagSourceUser, tag.Source)
			tag.Id = 200
			return 200, nil
		})

	tag, err := s.CreateUserTag(context.Background(), "  sunset ", "evening skies")
	assert.NoError(t, err)
	assert.Equal(t, int64(200), tag.Id)
}

func TestCreateUserTagRejectsEmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl)

	_, err := s.CreateUserTag(context.Background(), "   ", "")
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestSetImageTagsAIPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceAI).Return(normalTag(101, "fox"), nil)
	db.EXPECT().ResolveTag(gomock.Any(), "grass", common.TagSourceAI).Return(normalTag(102, "grass"), nil)
	db.EXPECT().ReplaceImageAITags(gomock.Any(), int64(7), []int64{101, 102}).Return(nil)

	err := s.SetImageTags(context.Background(), 7, []string{"fox", "grass"}, common.TagSourceAI, "")
	assert.NoError(t, err)
}

func TestSetImageTagsPreservesUserRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	// Desired set: fox (already present as a user row) and grass (new).
	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).Return(normalTag(101, "fox"), nil)
	db.EXPECT().ResolveTag(gomock.Any(), "grass", common.TagSourceUser).Return(normalTag(102, "grass"), nil)
	// Current rows: fox (user), a stale ai tag, the category and the
	// resolution rows. Only the stale ai row may go.
	db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		detail(101, common.TagLevelNormal, common.TagSourceUser),
		detail(150, common.TagLevelNormal, common.TagSourceAI),
		detail(10, common.TagLevelCategory, common.TagSourceSystem),
		detail(22, common.TagLevelResolution, common.TagSourceSystem),
	}, nil)
	db.EXPECT().DeleteImageTags(gomock.Any(), int64(7), []int64{150}).Return(nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []*dbclient.ImageTag) error {
			assert.Len(t, rows, 1)
			assert.Equal(t, int64(102), rows[0].TagId)
			assert.Equal(t, common.TagSourceUser, rows[0].Source)
			assert.Equal(t, "alice", rows[0].AddedBy.String)
			return nil
		})

	err := s.SetImageTags(context.Background(), 7, []string{"fox", "grass"}, common.TagSourceUser, "alice")
	assert.NoError(t, err)
}

func TestSetImageTagsRerunIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).Return(normalTag(101, "fox"), nil)
	db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		detail(101, common.TagLevelNormal, common.TagSourceAI),
	}, nil)
	// Nothing stale, nothing new. The row keeps its ai source.
	db.EXPECT().DeleteImageTags(gomock.Any(), int64(7), nil).Return(nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Len(0)).Return(nil)

	err := s.SetImageTags(context.Background(), 7, []string{"fox"}, common.TagSourceUser, "alice")
	assert.NoError(t, err)
}

func TestSetImageTagsByIds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().SelectTags(gomock.Any(), sqrl.Eq{"id": []int64{101, 101, 102}}, nil, 0, 0).
		Return([]*dbclient.Tag{normalTag(101, "fox"), normalTag(102, "grass")}, nil)
	db.EXPECT().SetImageTagsByIds(gomock.Any(), int64(7), []int64{101, 102}, "alice").Return(nil)

	err := s.SetImageTagsByIds(context.Background(), 7, []int64{101, 101, 102}, "alice")
	assert.NoError(t, err)
}

func TestSetImageTagsByIdsRejectsUnknownTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().SelectTags(gomock.Any(), gomock.Any(), nil, 0, 0).
		Return([]*dbclient.Tag{normalTag(101, "fox")}, nil)

	err := s.SetImageTagsByIds(context.Background(), 7, []int64{101, 999}, "alice")
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestSetImageTagsByIdsRejectsSystemLevels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().SelectTags(gomock.Any(), gomock.Any(), nil, 0, 0).
		Return([]*dbclient.Tag{{Id: 10, Level: common.TagLevelCategory}}, nil)

	err := s.SetImageTagsByIds(context.Background(), 7, []int64{10}, "alice")
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestSetImageTagsByIdsClearsWithEmptySet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().SetImageTagsByIds(gomock.Any(), int64(7), gomock.Len(0), "alice").Return(nil)

	err := s.SetImageTagsByIds(context.Background(), 7, nil, "alice")
	assert.NoError(t, err)
}

func TestBatchAddByNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().ResolveTag(gomock.Any(), "fox", common.TagSourceUser).Return(normalTag(101, "fox"), nil)
	db.EXPECT().BatchAddImageTags(gomock.Any(), []int64{1, 2}, []int64{101},
		common.TagSourceUser, "alice", "alice").Return(nil)

	err := s.BatchAddByNames(context.Background(), []int64{1, 2}, []string{"fox"}, "alice", "alice")
	assert.NoError(t, err)
}

func TestBatchAddByNamesRequiresUsableNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl)

	err := s.BatchAddByNames(context.Background(), []int64{1}, []string{" ", ""}, "alice", "")
	assert.True(t, commonerrors.IsBadRequest(err))
}

func TestBatchReplaceByNamesAllowsEmptySet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	// Replacing with nothing clears the normal-level tags.
	db.EXPECT().BatchReplaceImageTags(gomock.Any(), []int64{1, 2}, gomock.Len(0),
		common.TagSourceUser, "alice", "").Return(nil)

	err := s.BatchReplaceByNames(context.Background(), []int64{1, 2}, nil, "alice", "")
	assert.NoError(t, err)
}

func TestSetCategoryReplacesExistingRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	db.EXPECT().GetTag(gomock.Any(), int64(11)).
		Return(&dbclient.Tag{Id: 11, Name: "landscape", Level: common.TagLevelCategory}, nil)
	db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		detail(10, common.TagLevelCategory, common.TagSourceSystem),
		detail(101, common.TagLevelNormal, common.TagSourceUser),
	}, nil)
	db.EXPECT().DeleteImageTags(gomock.Any(), int64(7), []int64{10}).Return(nil)
	db.EXPECT().InsertImageTags(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []*dbclient.ImageTag) error {
			assert.Len(t, rows, 1)
			assert.Equal(t, int64(11), rows[0].TagId)
			assert.Equal(t, common.TagSourceUser, rows[0].Source)
			assert.Equal(t, "u1", rows[0].AddedBy.String)
			return nil
		})

	assert.NoError(t, s.SetCategory(ctx, 7, 11, "u1"))
}

func TestSetCategorySameCategoryIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().GetTag(gomock.Any(), int64(11)).
		Return(&dbclient.Tag{Id: 11, Name: "landscape", Level: common.TagLevelCategory}, nil)
	db.EXPECT().GetImageTags(gomock.Any(), int64(7)).Return([]*dbclient.ImageTagDetail{
		detail(11, common.TagLevelCategory, common.TagSourceUser),
	}, nil)

	assert.NoError(t, s.SetCategory(context.Background(), 7, 11, "u1"))
}

func TestSetCategoryRejectsNormalTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)

	db.EXPECT().GetTag(gomock.Any(), int64(101)).Return(normalTag(101, "fox"), nil)

	err := s.SetCategory(context.Background(), 7, 101, "u1")
	assert.True(t, commonerrors.IsBadRequest(err))
}
