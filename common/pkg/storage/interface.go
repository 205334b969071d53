/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"context"
)

// Provider abstracts object storage for a single endpoint. Implementations
// apply the endpoint's path prefix internally, so callers always pass the
// derived object key stored in the location index.
type Provider interface {
	Upload(ctx context.Context, key string, data []byte) error
	// Download returns an ObjectMissing coded error when the key is absent.
	Download(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete succeeds silently when the object is not present.
	Delete(ctx context.Context, key string) error
	// Probe verifies the endpoint is reachable and writable.
	Probe(ctx context.Context) error
}
