/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

// localProvider stores objects under {storage_local_root}/{bucket}. The
// object key's slash levels become real directories.
type localProvider struct {
	baseDir string
	prefix  string
}

func newLocalProvider(endpoint *dbclient.StorageEndpoint) *localProvider {
	return &localProvider{
		baseDir: filepath.Join(commonconfig.GetStorageLocalRoot(), bucketOf(endpoint)),
		prefix:  endpoint.PathPrefix.String,
	}
}

func (p *localProvider) pathFor(key string) string {
	return filepath.Join(p.baseDir, filepath.FromSlash(joinKey(p.prefix, key)))
}

func (p *localProvider) Upload(_ context.Context, key string, data []byte) error {
	path := p.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %v", key, err)
	}
	return os.WriteFile(path, data, 0644)
}

func (p *localProvider) Download(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(p.pathFor(key))
	if os.IsNotExist(err) {
		return nil, commonerrors.NewObjectMissing(fmt.Sprintf("object %s not found", key))
	}
	return data, err
}

func (p *localProvider) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(p.pathFor(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *localProvider) Delete(_ context.Context, key string) error {
	err := os.Remove(p.pathFor(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Probe checks that the bucket directory exists (creating it if needed)
// and is writable.
func (p *localProvider) Probe(_ context.Context) error {
	if err := os.MkdirAll(p.baseDir, 0755); err != nil {
		return fmt.Errorf("storage root not usable: %v", err)
	}
	f, err := os.CreateTemp(p.baseDir, ".probe-*")
	if err != nil {
		return fmt.Errorf("storage root not writable: %v", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
