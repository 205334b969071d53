/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package topic

import (
	"context"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/topic/endpoint"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/topic/task"
)

type Topic interface {
	Name() string
	BuildMessage(ctx context.Context, data map[string]interface{}) ([]*model.Message, error)
	Filter(data map[string]interface{}) bool
}

// NewTopics creates and returns all supported notification topics. The
// recipients come from the admin_emails list of the channel configuration.
func NewTopics(recipients []string) map[string]Topic {
	topics := make(map[string]Topic)
	taskTopic := &task.Topic{Recipients: recipients}
	topics[taskTopic.Name()] = taskTopic
	endpointTopic := &endpoint.Topic{Recipients: recipients}
	topics[endpointTopic.Name()] = endpointTopic

	return topics
}
