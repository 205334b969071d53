/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lib/pq"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/httpclient"
)

// Interface is the endpoint-aware storage surface used by handlers, the
// queue and the background task runner.
type Interface interface {
	Upload(ctx context.Context, endpoint *dbclient.StorageEndpoint, objectKey string, data []byte) error
	Download(ctx context.Context, endpoint *dbclient.StorageEndpoint, objectKey string) ([]byte, error)
	Exists(ctx context.Context, endpoint *dbclient.StorageEndpoint, objectKey string) (bool, error)
	Delete(ctx context.Context, endpoint *dbclient.StorageEndpoint, objectKey string) error
	CopyBetweenEndpoints(ctx context.Context, imageId int64,
		source, target *dbclient.StorageEndpoint, objectKey string, force bool) error
	TestEndpoint(ctx context.Context, endpoint *dbclient.StorageEndpoint) error
	FetchImageBytes(ctx context.Context, image *dbclient.Image) ([]byte, error)
	Invalidate(endpointId int64)
}

// Manager caches one Provider per endpoint id. S3 providers are expensive
// to build (credential decryption, AWS config resolution), so they are
// reused until the endpoint row changes.
type Manager struct {
	dbClient   dbclient.Interface
	httpClient httpclient.Interface

	mu        sync.RWMutex
	providers map[int64]Provider
}

var (
	managerOnce    sync.Once
	defaultManager *Manager
)

// NewManager returns the process-wide storage manager. The database client
// must be initialized first.
func NewManager() *Manager {
	managerOnce.Do(func() {
		defaultManager = &Manager{
			dbClient:   dbclient.NewClient(),
			httpClient: httpclient.NewHttpClient(),
			providers:  make(map[int64]Provider),
		}
	})
	return defaultManager
}

// ProviderFor returns the cached provider for the endpoint, constructing it
// on first use.
func (m *Manager) ProviderFor(ctx context.Context, endpoint *dbclient.StorageEndpoint) (Provider, error) {
	m.mu.RLock()
	p, ok := m.providers[endpoint.Id]
	m.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := m.buildProvider(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.providers[endpoint.Id] = p
	m.mu.Unlock()
	return p, nil
}

func (m *Manager) buildProvider(ctx context.Context, endpoint *dbclient.StorageEndpoint) (Provider, error) {
	switch endpoint.Provider {
	case common.ProviderLocal:
		return newLocalProvider(endpoint), nil
	case common.ProviderS3:
		return newS3Provider(ctx, endpoint)
	default:
		return nil, commonerrors.NewBadRequest(
			fmt.Sprintf("unknown storage provider %q", endpoint.Provider))
	}
}

// Invalidate drops the cached provider after an endpoint update so the next
// call rebuilds it with fresh settings.
func (m *Manager) Invalidate(endpointId int64) {
	m.mu.Lock()
	delete(m.providers, endpointId)
	m.mu.Unlock()
}

func (m *Manager) Upload(ctx context.Context, endpoint *dbclient.StorageEndpoint,
	objectKey string, data []byte) error {
	p, err := m.ProviderFor(ctx, endpoint)
	if err != nil {
		return err
	}
	return p.Upload(ctx, objectKey, data)
}

func (m *Manager) Download(ctx context.Context, endpoint *dbclient.StorageEndpoint,
	objectKey string) ([]byte, error) {
	p, err := m.ProviderFor(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return p.Download(ctx, objectKey)
}

func (m *Manager) Exists(ctx context.Context, endpoint *dbclient.StorageEndpoint,
	objectKey string) (bool, error) {
	p, err := m.ProviderFor(ctx, endpoint)
	if err != nil {
		return false, err
	}
	return p.Exists(ctx, objectKey)
}

func (m *Manager) Delete(ctx context.Context, endpoint *dbclient.StorageEndpoint,
	objectKey string) error {
	p, err := m.ProviderFor(ctx, endpoint)
	if err != nil {
		return err
	}
	return p.Delete(ctx, objectKey)
}

// CopyBetweenEndpoints replicates one object and records the target
// location as synced. When the target already holds the key the transfer
// is skipped unless force is set; the location row is refreshed either way.
func (m *Manager) CopyBetweenEndpoints(ctx context.Context, imageId int64,
	source, target *dbclient.StorageEndpoint, objectKey string, force bool) error {
	targetProvider, err := m.ProviderFor(ctx, target)
	if err != nil {
		return err
	}

	transfer := true
	if !force {
		exists, err := targetProvider.Exists(ctx, objectKey)
		if err != nil {
			return err
		}
		transfer = !exists
	}
	if transfer {
		sourceProvider, err := m.ProviderFor(ctx, source)
		if err != nil {
			return err
		}
		data, err := sourceProvider.Download(ctx, objectKey)
		if err != nil {
			return err
		}
		if err = targetProvider.Upload(ctx, objectKey, data); err != nil {
			return err
		}
	}
	return m.dbClient.UpsertImageLocation(ctx, &dbclient.ImageLocation{
		ImageId:    imageId,
		EndpointId: target.Id,
		ObjectKey:  objectKey,
		IsPrimary:  false,
		SyncStatus: common.SyncStatusSynced,
		SyncedAt:   pq.NullTime{Time: time.Now(), Valid: true},
	})
}

// TestEndpoint probes the endpoint with a freshly built provider so that
// updated but not yet saved settings are exercised, not the cached ones.
func (m *Manager) TestEndpoint(ctx context.Context, endpoint *dbclient.StorageEndpoint) error {
	p, err := m.buildProvider(ctx, endpoint)
	if err != nil {
		return err
	}
	return p.Probe(ctx)
}

// FetchImageBytes loads the raw bytes of an image for analysis. It tries
// the primary location first, then any other synced location, and finally
// the recorded original URL. Every failure is logged and the next source
// is tried; only when all sources fail is an error returned.
func (m *Manager) FetchImageBytes(ctx context.Context, image *dbclient.Image) ([]byte, error) {
	locations, err := m.dbClient.GetImageLocations(ctx, image.Id)
	if err != nil {
		return nil, err
	}

	// GetImageLocations orders primary first.
	for _, loc := range locations {
		if !loc.IsPrimary && loc.SyncStatus != common.SyncStatusSynced {
			continue
		}
		endpoint, err := m.dbClient.GetStorageEndpoint(ctx, loc.EndpointId)
		if err != nil {
			klog.Warningf("failed to load endpoint %d for image %d: %v", loc.EndpointId, image.Id, err)
			continue
		}
		data, err := m.Download(ctx, endpoint, loc.ObjectKey)
		if err != nil {
			klog.Warningf("failed to download image %d from endpoint %s: %v", image.Id, endpoint.Name, err)
			continue
		}
		return data, nil
	}

	if image.OriginalURL.Valid && image.OriginalURL.String != "" {
		result, err := m.httpClient.Get(image.OriginalURL.String)
		if err == nil && result.StatusCode == http.StatusOK {
			return result.Body, nil
		}
		klog.Warningf("failed to fetch image %d from original url: %v", image.Id, err)
	}
	return nil, commonerrors.NewImageUnavailable(
		fmt.Sprintf("image %d has no readable copy", image.Id))
}
