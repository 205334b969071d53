/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package authority

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/crypto"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/stringutil"
)

const (
	// CookieToken is the cookie carrying the session token.
	CookieToken = "iris_token"

	TokenDelim = ":"

	ErrTokenExpire   = "The user's token has expired, please login again"
	ErrInvalidToken  = "The user's token is invalid, please login first"
	ErrTokenRevoked  = "The user's session has been revoked, please login again"
	ErrNoCredentials = "The request carries no credentials, please login first"
)

// User types carried in the token.
const (
	UserTypeDefault = "default"
	UserTypeAdmin   = "admin"
)

// TokenItem is the decrypted content of a session token.
type TokenItem struct {
	UserId   string
	UserType string
	Expire   int64
}

// GenerateToken builds the wire token for an item: the plaintext is
// "{userId}:{expire}:{userType}", AES-GCM encrypted when crypto is enabled,
// then base64 encoded for cookie transport.
func GenerateToken(item TokenItem) (string, error) {
	if item.UserId == "" || item.UserType == "" {
		return "", fmt.Errorf("invalid token item parameters")
	}
	tokenStr := item.UserId + TokenDelim + strconv.FormatInt(item.Expire, 10) + TokenDelim + item.UserType
	if commonconfig.IsCryptoEnable() {
		inst := crypto.NewCrypto()
		if inst == nil {
			return "", commonerrors.NewInternalError("failed to new crypto")
		}
		var err error
		if tokenStr, err = inst.Encrypt([]byte(tokenStr)); err != nil {
			return "", err
		}
	}
	return stringutil.Base64Encode(tokenStr), nil
}

// ParseToken reverses GenerateToken and checks the embedded expiry.
func ParseToken(rawToken string) (*TokenItem, error) {
	tokenPlain := stringutil.Base64Decode(rawToken)
	if commonconfig.IsCryptoEnable() {
		inst := crypto.NewCrypto()
		if inst == nil {
			return nil, commonerrors.NewInternalError("failed to new crypto")
		}
		var err error
		if tokenPlain, err = inst.Decrypt(tokenPlain); err != nil {
			return nil, fmt.Errorf("%s", ErrInvalidToken)
		}
	}
	parts := strings.Split(tokenPlain, TokenDelim)
	if len(parts) != 3 {
		klog.Errorf("invalid user token, current len: %d", len(parts))
		return nil, fmt.Errorf("%s", ErrInvalidToken)
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%s", ErrInvalidToken)
		}
	}
	expire, err := strconv.ParseInt(parts[1], 10, 0)
	if err != nil {
		klog.ErrorS(err, "failed to parse token expire", "user", parts[0])
		return nil, fmt.Errorf("%s", ErrInvalidToken)
	}
	if commonconfig.GetUserTokenExpire() > 0 && time.Now().Unix() > expire {
		return nil, fmt.Errorf("%s", ErrTokenExpire)
	}
	return &TokenItem{
		UserId:   parts[0],
		Expire:   expire,
		UserType: parts[2],
	}, nil
}

// SessionIdOf derives the session row key from a wire token. The token
// itself never hits the database in plain form.
func SessionIdOf(rawToken string) string {
	return stringutil.MD5(rawToken)
}
