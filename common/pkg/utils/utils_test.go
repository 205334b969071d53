/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransMapToStruct(t *testing.T) {
	type payload struct {
		TaskId string `json:"task_id"`
		Total  int    `json:"total"`
	}

	out := &payload{}
	err := TransMapToStruct(map[string]interface{}{"task_id": "task-1", "total": 3}, out)
	assert.NoError(t, err)
	assert.Equal(t, "task-1", out.TaskId)
	assert.Equal(t, 3, out.Total)

	err = TransMapToStruct(map[string]interface{}{"total": "not-a-number"}, out)
	assert.Error(t, err)
}
