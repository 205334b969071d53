/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client/model"
)

// SubmitNotification submits a notification to be processed and sent.
// Resubmitting the same (uid, topic) pair is a no-op.
func (c *Client) SubmitNotification(ctx context.Context, data *model.Notification) error {
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	existing := &model.Notification{}
	err = gormDb.WithContext(ctx).
		Where("uid = ? AND topic = ?", data.UID, data.Topic).
		First(existing).Error
	if err == nil {
		// Notification already exists
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return gormDb.WithContext(ctx).Create(data).Error
}

// UpdateNotification updates the specified resource.
func (c *Client) UpdateNotification(ctx context.Context, data *model.Notification) error {
	gormDb, err := c.getGorm()
	if err != nil {
		return err
	}
	return gormDb.WithContext(ctx).Save(data).Error
}

// ListUnprocessedNotifications retrieves the notifications not yet sent.
func (c *Client) ListUnprocessedNotifications(ctx context.Context) ([]*model.Notification, error) {
	gormDb, err := c.getGorm()
	if err != nil {
		return nil, err
	}
	var notifications []*model.Notification
	err = gormDb.WithContext(ctx).Where("sent_at IS NULL").Find(&notifications).Error
	return notifications, err
}
