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
	TUser      = "users"
	TUserToken = "user_token"
)

var (
	getUserCmd            = fmt.Sprintf(`SELECT * FROM %s WHERE id = $1 LIMIT 1`, TUser)
	getUserByNameCmd      = fmt.Sprintf(`SELECT * FROM %s WHERE username = $1 LIMIT 1`, TUser)
	getUsersByIdsCmd      = fmt.Sprintf(`SELECT * FROM %s WHERE id = ANY($1)`, TUser)
	insertUserFormat      = `INSERT INTO ` + TUser + ` (%s) VALUES (%s)`
	insertUserTokenFormat = `INSERT INTO ` + TUserToken + ` (%s) VALUES (%s)
		ON CONFLICT (user_id, session_id) DO UPDATE
		SET token = EXCLUDED.token, creation_time = EXCLUDED.creation_time, expire_time = EXCLUDED.expire_time`
	getUserTokenCmd = fmt.Sprintf(
		`SELECT * FROM %s WHERE user_id = $1 AND session_id = $2 LIMIT 1`, TUserToken)
	deleteUserTokenCmd         = fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND session_id = $2`, TUserToken)
	deleteUserTokensByUserCmd  = fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, TUserToken)
	deleteExpiredUserTokensCmd = fmt.Sprintf(`DELETE FROM %s WHERE expire_time > 0 AND expire_time < $1`, TUserToken)
)

// InsertUser persists a new user row.
func (c *Client) InsertUser(ctx context.Context, user *User) error {
	if user == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	if !user.CreatedAt.Valid {
		user.CreatedAt = pq.NullTime{Time: time.Now().UTC(), Valid: true}
	}
	_, err = db.NamedExecContext(ctx, generateCommand(*user, insertUserFormat, ""), user)
	if err != nil {
		if isUniqueViolation(err) {
			return commonerrors.NewAlreadyExist(fmt.Sprintf("user %s already exists", user.Username))
		}
		klog.ErrorS(err, "failed to insert user", "username", user.Username)
	}
	return err
}

// GetUser retrieves a user by id, returning nil when absent.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, commonerrors.NewBadRequest("user id is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	user := &User{}
	err = db.GetContext(ctx, user, getUserCmd, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByName retrieves a user by username, returning nil when absent.
func (c *Client) GetUserByName(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, commonerrors.NewBadRequest("username is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	user := &User{}
	err = db.GetContext(ctx, user, getUserByNameCmd, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsersByIds retrieves the users with the given ids in one round trip.
func (c *Client) GetUsersByIds(ctx context.Context, ids []string) ([]*User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	var users []*User
	err = db.SelectContext(ctx, &users, getUsersByIdsCmd, pq.Array(ids))
	return users, err
}

// SelectUsers retrieves multiple user records.
func (c *Client) SelectUsers(ctx context.Context, query sqrl.Sqlizer, orderBy []string, limit, offset int) ([]*User, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	builder := sqrl.Select("*").PlaceholderFormat(sqrl.Dollar).
		From(TUser).
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
	var users []*User
	err = db.SelectContext(ctx, &users, sql, args...)
	return users, err
}

// UpsertUserToken stores a session token, replacing the previous token of
// the same session.
func (c *Client) UpsertUserToken(ctx context.Context, token *UserToken) error {
	if token == nil {
		return commonerrors.NewBadRequest("the input is empty")
	}
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.NamedExecContext(ctx, generateCommand(*token, insertUserTokenFormat, ""), token)
	if err != nil {
		klog.ErrorS(err, "failed to upsert user token", "userId", token.UserId)
	}
	return err
}

// GetUserToken retrieves one session row, nil when absent.
func (c *Client) GetUserToken(ctx context.Context, userId, sessionId string) (*UserToken, error) {
	db, err := c.getDB()
	if err != nil {
		return nil, err
	}
	token := &UserToken{}
	err = db.GetContext(ctx, token, getUserTokenCmd, userId, sessionId)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}

// DeleteUserToken removes one session row.
func (c *Client) DeleteUserToken(ctx context.Context, userId, sessionId string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteUserTokenCmd, userId, sessionId)
	return err
}

// DeleteUserTokensByUser removes every session of a user.
func (c *Client) DeleteUserTokensByUser(ctx context.Context, userId string) error {
	db, err := c.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteUserTokensByUserCmd, userId)
	return err
}

// DeleteExpiredUserTokens prunes sessions whose expiry passed. Sessions with
// non-positive expire_time never expire.
func (c *Client) DeleteExpiredUserTokens(ctx context.Context) (int64, error) {
	db, err := c.getDB()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, deleteExpiredUserTokensCmd, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
