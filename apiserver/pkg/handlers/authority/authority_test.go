/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	mock_client "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/mock"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	utilscrypto "github.com/AMD-AIG-AIMA/Iris/utils/pkg/crypto"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mock_client.MockInterface) {
	commonconfig.SetValue("crypto.enable", "false")
	db := mock_client.NewMockInterface(ctrl)
	return New(db), db
}

func TestTokenRoundTrip(t *testing.T) {
	commonconfig.SetValue("crypto.enable", "false")

	token, err := GenerateToken(TokenItem{UserId: "u-1", UserType: UserTypeAdmin, Expire: -1})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	item, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", item.UserId)
	assert.Equal(t, UserTypeAdmin, item.UserType)
	assert.Equal(t, int64(-1), item.Expire)

	// The session key is a digest, never the token itself.
	assert.NotEqual(t, token, SessionIdOf(token))
}

func TestGenerateTokenRejectsEmptyItem(t *testing.T) {
	commonconfig.SetValue("crypto.enable", "false")

	_, err := GenerateToken(TokenItem{UserId: "", UserType: UserTypeDefault})
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	commonconfig.SetValue("crypto.enable", "false")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	db.EXPECT().SelectUsers(ctx, nil, nil, 1, 0).Return(nil, nil)
	db.EXPECT().InsertUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *dbclient.User) error {
			assert.True(t, user.IsAdmin)
			assert.NotEqual(t, "pw", user.Password)
			assert.True(t, utilscrypto.VerifyPassword("pw", user.Password))
			return nil
		})

	user, err := s.Register(ctx, "alice", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
}

func TestRegisterLaterUsersAreNotAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	db.EXPECT().SelectUsers(ctx, nil, nil, 1, 0).Return([]*dbclient.User{{Id: "u-0"}}, nil)
	db.EXPECT().InsertUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *dbclient.User) error {
			assert.False(t, user.IsAdmin)
			return nil
		})

	_, err := s.Register(ctx, "bob", "pw")
	assert.NoError(t, err)
}

func TestLoginOpensSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()
	hashed, err := utilscrypto.HashPassword("pw")
	assert.NoError(t, err)

	db.EXPECT().GetUserByName(ctx, "alice").
		Return(&dbclient.User{Id: "u-1", Username: "alice", Password: hashed, IsAdmin: true}, nil)
	db.EXPECT().UpsertUserToken(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, session *dbclient.UserToken) error {
			assert.Equal(t, "u-1", session.UserId)
			assert.Equal(t, SessionIdOf(session.Token), session.SessionId)
			return nil
		})

	user, rsp, err := s.Login(ctx, "alice", "pw")
	assert.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, rsp.Token)

	item, err := ParseToken(rsp.Token)
	assert.NoError(t, err)
	assert.Equal(t, UserTypeAdmin, item.UserType)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()
	hashed, _ := utilscrypto.HashPassword("pw")

	db.EXPECT().GetUserByName(ctx, "alice").
		Return(&dbclient.User{Id: "u-1", Password: hashed}, nil)

	_, _, err := s.Login(ctx, "alice", "wrong")
	assert.True(t, commonerrors.IsUnauthorized(err))
}

func TestValidateChecksSessionRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	token, err := GenerateToken(TokenItem{UserId: "u-1", UserType: UserTypeDefault, Expire: -1})
	assert.NoError(t, err)

	// Revoked session: the row is gone even though the token still parses.
	db.EXPECT().GetUserToken(ctx, "u-1", SessionIdOf(token)).Return(nil, nil)
	_, err = s.Validate(ctx, token)
	assert.True(t, commonerrors.IsUnauthorized(err))

	// Live session returns the current user row.
	db.EXPECT().GetUserToken(ctx, "u-1", SessionIdOf(token)).
		Return(&dbclient.UserToken{UserId: "u-1", Token: token, ExpireTime: -1}, nil)
	db.EXPECT().GetUser(ctx, "u-1").
		Return(&dbclient.User{Id: "u-1", Username: "alice", Password: "hash"}, nil)
	user, err := s.Validate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
}

func TestValidateRejectsExpiredSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, db := newTestService(ctrl)
	ctx := context.Background()

	token, err := GenerateToken(TokenItem{UserId: "u-1", UserType: UserTypeDefault, Expire: -1})
	assert.NoError(t, err)

	db.EXPECT().GetUserToken(ctx, "u-1", SessionIdOf(token)).
		Return(&dbclient.UserToken{UserId: "u-1", Token: token, ExpireTime: time.Now().Unix() - 60}, nil)

	_, err = s.Validate(ctx, token)
	assert.True(t, commonerrors.IsUnauthorized(err))
}

func TestLogoutIgnoresInvalidTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl)
	assert.NoError(t, s.Logout(context.Background(), "garbage"))
}
