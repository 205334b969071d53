/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/crypto"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const (
	// uploadPartSize is the multipart chunk size for manager.Uploader.
	uploadPartSize = 16 * 1024 * 1024
)

// s3Provider talks to any S3-compatible endpoint (AWS, MinIO, Ceph RGW).
// Credentials are decrypted once at construction and held in memory only.
type s3Provider struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	bucket     string
	prefix     string
}

func newS3Provider(ctx context.Context, endpoint *dbclient.StorageEndpoint) (*s3Provider, error) {
	if !endpoint.BucketName.Valid || endpoint.BucketName.String == "" {
		return nil, fmt.Errorf("endpoint %s has no bucket configured", endpoint.Name)
	}
	cr := crypto.NewCrypto()
	ak, err := cr.Decrypt(endpoint.AccessKeyId.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access key of endpoint %s: %v", endpoint.Name, err)
	}
	sk, err := cr.Decrypt(endpoint.SecretAccessKey.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secret key of endpoint %s: %v", endpoint.Name, err)
	}

	credProvider := aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     ak,
			SecretAccessKey: sk,
			Source:          "StaticCredentials",
		}, nil
	})

	// Self-hosted object stores commonly run with self-signed certificates.
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		},
	}

	endpointURL := endpoint.EndpointURL.String
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(endpoint.Region.String),
		awsconfig.WithCredentialsProvider(credProvider),
		awsconfig.WithHTTPClient(httpClient),
		awsconfig.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: endpointURL,
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = endpoint.PathStyle
	})
	return &s3Provider{
		client: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = uploadPartSize
		}),
		downloader: manager.NewDownloader(client),
		bucket:     endpoint.BucketName.String,
		prefix:     endpoint.PathPrefix.String,
	}, nil
}

func (p *s3Provider) Upload(ctx context.Context, key string, data []byte) error {
	fullKey := joinKey(p.prefix, key)
	input := &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(fullKey),
		Body:   bytes.NewReader(data),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(fullKey)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err := p.uploader.Upload(ctx, input)
	return err
}

func (p *s3Provider) Download(ctx context.Context, key string) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(nil)
	_, err := p.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(joinKey(p.prefix, key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, commonerrors.NewObjectMissing(fmt.Sprintf("object %s not found", key))
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *s3Provider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(joinKey(p.prefix, key)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the object. S3 DeleteObject already succeeds on missing
// keys, so no extra handling is needed.
func (p *s3Provider) Delete(ctx context.Context, key string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(joinKey(p.prefix, key)),
	})
	return err
}

// Probe uploads and deletes a throwaway object to verify both write and
// delete permissions on the bucket.
func (p *s3Provider) Probe(ctx context.Context) error {
	key := "probe/" + uuid.NewString()
	if err := p.Upload(ctx, key, []byte("probe")); err != nil {
		return fmt.Errorf("probe upload failed: %v", err)
	}
	if err := p.Delete(ctx, key); err != nil {
		return fmt.Errorf("probe delete failed: %v", err)
	}
	return nil
}
