/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"fmt"
	"strings"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
)

const defaultBucket = "images"

// DeriveObjectKey builds the canonical key for a file hash:
// {hash[0:2]}/{hash[2:4]}/{hash}.{ext}, optionally under a category code
// and the deployment-wide storage prefix. Identical bytes map to the same
// key on every endpoint, which makes replication a pure copy, and the two
// hash levels fan objects out over 256*256 directories.
func DeriveObjectKey(fileHash, ext, categoryCode string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	key := fmt.Sprintf("%s/%s/%s.%s", fileHash[0:2], fileHash[2:4], fileHash, ext)
	if categoryCode != "" {
		key = strings.Trim(categoryCode, "/") + "/" + key
	}
	if prefix := commonconfig.GetStoragePathPrefix(); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

// joinKey prepends an endpoint path prefix to an object key. Both sides are
// normalized so the result never has doubled or leading slashes.
func joinKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	key = strings.TrimPrefix(key, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// bucketOf returns the endpoint bucket, falling back to the built-in local
// bucket name for rows created before the column was required.
func bucketOf(endpoint *dbclient.StorageEndpoint) string {
	if endpoint.BucketName.Valid && endpoint.BucketName.String != "" {
		return endpoint.BucketName.String
	}
	return defaultBucket
}

// BuildURL resolves the public URL for an object on the given endpoint.
// Resolution order: the endpoint's public_url_prefix (CDN), then the local
// data route served by the apiserver, then the raw S3 path-style URL. The
// image_url_priority setting can force the local route ("local") or keep
// the CDN-first order ("cdn", same as "auto" today).
func BuildURL(endpoint *dbclient.StorageEndpoint, objectKey string) string {
	fullKey := joinKey(endpoint.PathPrefix.String, objectKey)
	bucket := bucketOf(endpoint)

	preferLocal := commonconfig.GetImageURLPriority() == common.URLPriorityLocal
	hasPublic := endpoint.PublicURLPrefix.Valid && endpoint.PublicURLPrefix.String != ""

	if hasPublic && !(preferLocal && endpoint.Provider == common.ProviderLocal) {
		return strings.TrimRight(endpoint.PublicURLPrefix.String, "/") + "/" + fullKey
	}
	if endpoint.Provider == common.ProviderLocal {
		base := strings.TrimRight(commonconfig.GetServerBaseURL(), "/")
		return fmt.Sprintf("%s/%s/%s/%s", base, common.IrisDataRouterRootPath, bucket, fullKey)
	}
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(endpoint.EndpointURL.String, "/"), bucket, fullKey)
}
