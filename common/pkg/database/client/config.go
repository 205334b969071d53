/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
)

// configCache is a process-wide cache over the config table. Writes go
// through SetConfigValue which invalidates the touched key; readers on other
// replicas pick changes up on their next cache miss.
var configCache sync.Map

// GetConfigValue reads one config entry, consulting the cache first. The
// second return reports whether the key exists.
func (c *Client) GetConfigValue(ctx context.Context, key string) (string, bool, error) {
	if cached, ok := configCache.Load(key); ok {
		return cached.(string), true, nil
	}
	gormDb, err := c.getGorm()
	if err != nil {
		return "", false, err
	}
	row := &model.Config{}
	err = gormDb.WithContext(ctx).Where("key = ?", key).First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	configCache.Store(key, row.Value)
	return row.Value, true, nil
}

// SetConfigValue upserts one config entry and refreshes the cache.
func (c *Client) SetConfigValue(ctx context.Context, key, value string) error {
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	row := &model.Config{Key: key, Value: value}
	err = gormDb.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		klog.ErrorS(err, "failed to set config value", "key", key)
		return err
	}
	configCache.Store(key, value)
	return nil
}

// ListConfigValues returns every config entry.
func (c *Client) ListConfigValues(ctx context.Context) (map[string]string, error) {
	gormDb, err := c.getGorm()
	if err != nil {
		return nil, err
	}
	var rows []*model.Config
	if err = gormDb.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Value
		configCache.Store(row.Key, row.Value)
	}
	return result, nil
}

// InvalidateConfigCache drops one key, or the whole cache when key is empty.
func InvalidateConfigCache(key string) {
	if key == "" {
		configCache.Range(func(k, _ interface{}) bool {
			configCache.Delete(k)
			return true
		})
		return
	}
	configCache.Delete(key)
}
