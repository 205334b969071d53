/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package user_handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/handlers/authority"
	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// Handler serves registration, sessions and user listing.
type Handler struct {
	dbClient  dbclient.Interface
	authority *authority.Service
}

func NewHandler() *Handler {
	return &Handler{
		dbClient:  dbclient.NewClient(),
		authority: authority.NewService(),
	}
}

// CredentialsRequest carries a username/password pair.
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserView is the response shape of one user.
type UserView struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginResponse returns the session token. The same token also lands in
// the cookie, so browser and API clients share one session format.
type LoginResponse struct {
	User   *UserView `json:"user"`
	Token  string    `json:"token"`
	Expire int64     `json:"expire"`
}

func (h *Handler) register(c *gin.Context) (*UserView, error) {
	if !commonconfig.IsRegisterAllowed() {
		return nil, commonerrors.NewForbidden("registration is disabled")
	}
	req := &CredentialsRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	user, err := h.authority.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	c.Status(http.StatusCreated)
	return userView(user), nil
}

func (h *Handler) login(c *gin.Context) (*LoginResponse, error) {
	req := &CredentialsRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, commonerrors.NewBadRequest(err.Error())
	}
	user, token, err := h.authority.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	maxAge := 0
	if token.Expire > 0 {
		maxAge = int(token.Expire - time.Now().Unix())
	}
	c.SetCookie(authority.CookieToken, token.Token, maxAge, "/", "", false, true)
	return &LoginResponse{User: userView(user), Token: token.Token, Expire: token.Expire}, nil
}

func (h *Handler) logout(c *gin.Context) (gin.H, error) {
	if token, err := c.Cookie(authority.CookieToken); err == nil && token != "" {
		if err = h.authority.Logout(c.Request.Context(), token); err != nil {
			return nil, err
		}
	}
	c.SetCookie(authority.CookieToken, "", -1, "/", "", false, true)
	return gin.H{"logout": true}, nil
}

// me returns the caller's identity as the auth middleware resolved it.
func (h *Handler) me(c *gin.Context) (*UserView, error) {
	userId := c.GetString(common.UserId)
	user, err := h.dbClient.GetUser(c.Request.Context(), userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, commonerrors.NewUserNotRegistered(userId)
	}
	return userView(user), nil
}

// listUsers is the admin roster.
func (h *Handler) listUsers(c *gin.Context) ([]*UserView, error) {
	users, err := h.dbClient.SelectUsers(c.Request.Context(), nil,
		[]string{"username ASC"}, 0, 0)
	if err != nil {
		return nil, err
	}
	views := make([]*UserView, 0, len(users))
	for _, user := range users {
		views = append(views, userView(user))
	}
	return views, nil
}

func userView(user *dbclient.User) *UserView {
	return &UserView{Id: user.Id, Username: user.Username, IsAdmin: user.IsAdmin}
}

type handleFunc[T any] func(*gin.Context) (T, error)

func handle[T any](c *gin.Context, fn handleFunc[T]) {
	rsp, err := fn(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	code := http.StatusOK
	if c.Writer.Status() > 0 {
		code = c.Writer.Status()
	}
	c.JSON(code, rsp)
}
