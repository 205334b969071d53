/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltLen    = 16
	passwordIterations = 100000
	passwordKeyLen     = 32
)

// HashPassword derives a pbkdf2-hmac-sha256 digest of the plaintext password
// with a fresh random salt. The result is stored as "{salt_hex}${hash_hex}".
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password")
	}
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, passwordIterations, passwordKeyLen, sha256.New)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether the plaintext password matches a stored
// "{salt_hex}${hash_hex}" digest. Malformed digests never match.
func VerifyPassword(password, stored string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, passwordIterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
