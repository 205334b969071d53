/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package search

import (
	"context"
	"strings"
	"sync"
	"time"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/embedding"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/storage"
)

// Interface runs searches and enriches image rows into response views.
type Interface interface {
	Search(ctx context.Context, req *Request) (*Response, error)
	// EnrichImages resolves tags, uploader names and serving URLs for a
	// page of images in one query per concern, preserving input order.
	EnrichImages(ctx context.Context, images []*dbclient.Image) ([]*ImageView, error)
}

// TagView is one association on a response image.
type TagView struct {
	Id     int64  `json:"id"`
	Name   string `json:"name"`
	Level  int    `json:"level"`
	Source string `json:"source"`
}

// ImageView is the response shape of one image.
type ImageView struct {
	Id           int64      `json:"id"`
	URL          string     `json:"url,omitempty"`
	FileHash     string     `json:"file_hash"`
	FileType     string     `json:"file_type"`
	FileSizeMB   float64    `json:"file_size_mb"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Description  string     `json:"description,omitempty"`
	OriginalURL  string     `json:"original_url,omitempty"`
	UploadedBy   string     `json:"uploaded_by,omitempty"`
	UploaderName string     `json:"uploader_name,omitempty"`
	IsPublic     bool       `json:"is_public"`
	HasEmbedding bool       `json:"has_embedding"`
	Tags         []*TagView `json:"tags"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	VectorScore  float64    `json:"vector_score,omitempty"`
	TagScore     float64    `json:"tag_score,omitempty"`
	FinalScore   float64    `json:"final_score,omitempty"`
}

// Response is one result page.
type Response struct {
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Items    []*ImageView `json:"items"`
}

// Service implements Interface over the database and embedding clients.
type Service struct {
	dbClient  dbclient.Interface
	embedding embedding.Interface
}

var (
	serviceOnce    sync.Once
	defaultService *Service
)

// NewService returns the process-wide search service. The database client
// must be initialized first.
func NewService() *Service {
	serviceOnce.Do(func() {
		defaultService = newService(dbclient.NewClient(), embedding.NewClient())
	})
	return defaultService
}

func newService(db dbclient.Interface, emb embedding.Interface) *Service {
	return &Service{dbClient: db, embedding: emb}
}

// Search runs one request. With text it embeds the query and ranks by the
// hybrid score; without text it is a filtered listing under the requested
// sort. Both paths return the total candidate count for pagination.
func (s *Service) Search(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		req = &Request{}
	}
	limit, offset, page := req.pagination()
	filters := buildFilters(req)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return s.listing(ctx, req, filters, limit, offset, page)
	}

	vec, err := s.embedding.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	queryVec := pgvector.NewVector(vec)
	w := req.weights()

	scored, err := s.dbClient.SearchScoredImages(ctx,
		buildHybridQuery(filters, queryVec, text, w, limit, offset))
	if err != nil {
		return nil, err
	}
	total, err := s.dbClient.CountImages(ctx,
		append(filters, candidateCondition(queryVec, text, w.threshold)))
	if err != nil {
		return nil, err
	}

	base := make([]*dbclient.Image, len(scored))
	for i := range scored {
		base[i] = &scored[i].Image
	}
	items, err := s.EnrichImages(ctx, base)
	if err != nil {
		return nil, err
	}
	for i, item := range items {
		item.VectorScore = scored[i].VectorScore
		item.TagScore = scored[i].TagScore
		item.FinalScore = scored[i].FinalScore
	}
	return &Response{Total: total, Page: page, PageSize: limit, Items: items}, nil
}

func (s *Service) listing(ctx context.Context, req *Request, filters sqrl.And,
	limit, offset, page int) (*Response, error) {
	orderBy, err := req.orderBy()
	if err != nil {
		return nil, err
	}
	var cond sqrl.Sqlizer
	if len(filters) > 0 {
		cond = filters
	}
	images, err := s.dbClient.SelectImages(ctx, cond, orderBy, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.dbClient.CountImages(ctx, cond)
	if err != nil {
		return nil, err
	}
	items, err := s.EnrichImages(ctx, images)
	if err != nil {
		return nil, err
	}
	return &Response{Total: total, Page: page, PageSize: limit, Items: items}, nil
}

func (s *Service) EnrichImages(ctx context.Context, images []*dbclient.Image) ([]*ImageView, error) {
	if len(images) == 0 {
		return []*ImageView{}, nil
	}
	imageIds := make([]int64, 0, len(images))
	userIdSet := make(map[string]bool)
	for _, image := range images {
		imageIds = append(imageIds, image.Id)
		if image.UploadedBy.Valid && image.UploadedBy.String != "" {
			userIdSet[image.UploadedBy.String] = true
		}
	}

	tagRows, err := s.dbClient.GetImageTagsByImageIds(ctx, imageIds)
	if err != nil {
		return nil, err
	}
	tagsByImage := make(map[int64][]*TagView, len(images))
	for _, row := range tagRows {
		tagsByImage[row.ImageId] = append(tagsByImage[row.ImageId], &TagView{
			Id:     row.TagId,
			Name:   row.Name,
			Level:  row.Level,
			Source: row.Source,
		})
	}

	locations, err := s.dbClient.GetLocationsByImageIds(ctx, imageIds)
	if err != nil {
		return nil, err
	}
	locationsByImage := make(map[int64][]*dbclient.ImageLocation, len(images))
	for _, loc := range locations {
		locationsByImage[loc.ImageId] = append(locationsByImage[loc.ImageId], loc)
	}

	endpoints, err := s.endpointMap(ctx)
	if err != nil {
		return nil, err
	}
	usernames, err := s.usernameMap(ctx, userIdSet)
	if err != nil {
		return nil, err
	}

	views := make([]*ImageView, 0, len(images))
	for _, image := range images {
		view := &ImageView{
			Id:           image.Id,
			FileHash:     image.FileHash,
			FileType:     image.FileType,
			FileSizeMB:   image.FileSizeMB,
			Width:        image.Width,
			Height:       image.Height,
			Description:  image.Description.String,
			OriginalURL:  image.OriginalURL.String,
			UploadedBy:   image.UploadedBy.String,
			UploaderName: usernames[image.UploadedBy.String],
			IsPublic:     image.IsPublic,
			HasEmbedding: image.Embedding != nil,
			Tags:         tagsByImage[image.Id],
		}
		if view.Tags == nil {
			view.Tags = []*TagView{}
		}
		if image.CreatedAt.Valid {
			t := image.CreatedAt.Time
			view.CreatedAt = &t
		}
		if image.UpdatedAt.Valid {
			t := image.UpdatedAt.Time
			view.UpdatedAt = &t
		}
		if picked := storage.PickReadLocation(locationsByImage[image.Id], endpoints); picked != nil {
			view.URL = storage.BuildURL(endpoints[picked.EndpointId], picked.ObjectKey)
		} else {
			// No serving replica; the original source link is better
			// than nothing.
			view.URL = image.OriginalURL.String
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) endpointMap(ctx context.Context) (map[int64]*dbclient.StorageEndpoint, error) {
	rows, err := s.dbClient.SelectStorageEndpoints(ctx, nil, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	endpoints := make(map[int64]*dbclient.StorageEndpoint, len(rows))
	for _, endpoint := range rows {
		endpoints[endpoint.Id] = endpoint
	}
	return endpoints, nil
}

func (s *Service) usernameMap(ctx context.Context, idSet map[string]bool) (map[string]string, error) {
	if len(idSet) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := s.dbClient.GetUsersByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	usernames := make(map[string]string, len(users))
	for _, user := range users {
		usernames[user.Id] = user.Username
	}
	return usernames, nil
}
