/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	commonuser "github.com/AMD-AIG-AIMA/Iris/common/pkg/user"
	utilscrypto "github.com/AMD-AIG-AIMA/Iris/utils/pkg/crypto"
)

// TokenResponse is returned to a successful login.
type TokenResponse struct {
	Token  string `json:"token"`
	Expire int64  `json:"expire"`
}

// Service authenticates users against the database: password rows hashed
// with pbkdf2 and one user_token row per live session. Revoking a session
// is deleting its row, so tokens stay verifiable but not trusted on their
// own.
type Service struct {
	dbClient dbclient.Interface
}

var (
	serviceOnce    sync.Once
	defaultService *Service
)

// NewService returns the process-wide authority service. The database
// client must be initialized first.
func NewService() *Service {
	serviceOnce.Do(func() {
		defaultService = New(dbclient.NewClient())
	})
	return defaultService
}

// New builds a Service over an explicit database client. Tests use this to
// inject mocks.
func New(db dbclient.Interface) *Service {
	return &Service{dbClient: db}
}

// Register creates a user row. The caller gates this on the allow_register
// setting; the first registered user becomes the admin.
func (s *Service) Register(ctx context.Context, username, password string) (*dbclient.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, commonerrors.NewBadRequest("username and password are required")
	}
	hashed, err := utilscrypto.HashPassword(password)
	if err != nil {
		return nil, commonerrors.NewInternalError(fmt.Sprintf("failed to hash password: %v", err))
	}
	count, err := s.dbClient.SelectUsers(ctx, nil, nil, 1, 0)
	if err != nil {
		return nil, err
	}
	user := &dbclient.User{
		Id:       commonuser.GenerateUserIdByName(username),
		Username: username,
		Password: hashed,
		IsAdmin:  len(count) == 0,
	}
	if err = s.dbClient.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Login verifies the password and opens a session: a fresh token plus a
// user_token row keyed by the token's digest.
func (s *Service) Login(ctx context.Context, username, password string) (*dbclient.User, *TokenResponse, error) {
	if username == "" {
		return nil, nil, commonerrors.NewBadRequest("the username is empty")
	}
	user, err := s.dbClient.GetUserByName(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, commonerrors.NewUserNotRegistered(username)
	}
	if !utilscrypto.VerifyPassword(password, user.Password) {
		return nil, nil, commonerrors.NewUnauthorized("the password is incorrect")
	}

	result := &TokenResponse{Expire: -1}
	if expire := commonconfig.GetUserTokenExpire(); expire > 0 {
		result.Expire = time.Now().Unix() + int64(expire)
	}
	userType := UserTypeDefault
	if user.IsAdmin {
		userType = UserTypeAdmin
	}
	result.Token, err = GenerateToken(TokenItem{UserId: user.Id, UserType: userType, Expire: result.Expire})
	if err != nil {
		klog.ErrorS(err, "failed to generate user token", "user", username)
		return nil, nil, err
	}
	err = s.dbClient.UpsertUserToken(ctx, &dbclient.UserToken{
		UserId:       user.Id,
		SessionId:    SessionIdOf(result.Token),
		Token:        result.Token,
		CreationTime: time.Now().Unix(),
		ExpireTime:   result.Expire,
	})
	if err != nil {
		return nil, nil, err
	}
	user.Password = ""
	return user, result, nil
}

// Validate checks a wire token: parse, expiry, then the session row. The
// returned user reflects the current database state, not the token's
// snapshot, so an admin flag flip applies to live sessions.
func (s *Service) Validate(ctx context.Context, rawToken string) (*dbclient.User, error) {
	item, err := ParseToken(rawToken)
	if err != nil {
		return nil, commonerrors.NewUnauthorized(err.Error())
	}
	session, err := s.dbClient.GetUserToken(ctx, item.UserId, SessionIdOf(rawToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, commonerrors.NewUnauthorized(ErrTokenRevoked)
	}
	if session.ExpireTime > 0 && time.Now().Unix() > session.ExpireTime {
		return nil, commonerrors.NewUnauthorized(ErrTokenExpire)
	}
	user, err := s.dbClient.GetUser(ctx, item.UserId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, commonerrors.NewUserNotRegistered(item.UserId)
	}
	user.Password = ""
	return user, nil
}

// Logout revokes the session carried by the token. An invalid token is
// already logged out.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	item, err := ParseToken(rawToken)
	if err != nil {
		return nil
	}
	return s.dbClient.DeleteUserToken(ctx, item.UserId, SessionIdOf(rawToken))
}
