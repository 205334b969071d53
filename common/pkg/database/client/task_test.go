/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package client

import (
	"context"
	"testing"

	"gotest.tools/assert"
)

func TestSortedEndpointIds(t *testing.T) {
	ids := []int64{9, 3, 1}
	assert.DeepEqual(t, []int64{1, 3, 9}, sortedEndpointIds(ids))
	// The caller's slice keeps its order.
	assert.DeepEqual(t, []int64{9, 3, 1}, ids)

	// Both directions of a pair take their locks in the same order.
	assert.DeepEqual(t, sortedEndpointIds([]int64{2, 7}), sortedEndpointIds([]int64{7, 2}))
}

func TestEndpointLockKeyStable(t *testing.T) {
	assert.Equal(t, EndpointLockKey(42), EndpointLockKey(42))
	assert.Assert(t, EndpointLockKey(1) != EndpointLockKey(2))
}

func TestCreateStorageTasksExclusiveEmptyInput(t *testing.T) {
	client := &Client{}

	err := client.CreateStorageTasksExclusive(context.Background(), nil, []int64{1})
	assert.ErrorContains(t, err, "the input is empty")
}
