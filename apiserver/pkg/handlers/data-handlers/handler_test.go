/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package data_handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	e := gin.New()
	InitDataRouter(e, &Handler{root: root})
	return e, root
}

func TestServeObject(t *testing.T) {
	e, root := newTestRouter(t)
	dir := filepath.Join(root, "images", "ab", "cd")
	assert.NoError(t, os.MkdirAll(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "abcd.png"), []byte("png-bytes"), 0o644))

	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/data/images/ab/cd/abcd.png", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "png-bytes", recorder.Body.String())
}

func TestServeObjectMissing(t *testing.T) {
	e, _ := newTestRouter(t)

	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/data/images/no/such/key.png", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestServeObjectBlocksTraversal(t *testing.T) {
	e, root := newTestRouter(t)
	assert.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))

	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/data/images/..%2Fsecret.txt", nil))

	assert.NotEqual(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "secret")
}
