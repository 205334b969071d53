/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"math/rand"
	"testing"

	"gotest.tools/assert"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
)

func makeLocation(imageId, endpointId int64, status string) *dbclient.ImageLocation {
	return &dbclient.ImageLocation{
		ImageId:    imageId,
		EndpointId: endpointId,
		ObjectKey:  "a1/b2/hash.jpg",
		SyncStatus: status,
	}
}

func makeEndpoint(id int64, priority, weight int, enabled, healthy bool) *dbclient.StorageEndpoint {
	return &dbclient.StorageEndpoint{
		Id:           id,
		Provider:     common.ProviderS3,
		ReadPriority: priority,
		ReadWeight:   weight,
		IsEnabled:    enabled,
		IsHealthy:    healthy,
	}
}

func TestPickReadLocationFiltersAndPriority(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	endpoints := map[int64]*dbclient.StorageEndpoint{
		1: makeEndpoint(1, 5, 1, true, true),
		2: makeEndpoint(2, 0, 1, true, false), // unhealthy
		3: makeEndpoint(3, 0, 1, false, true), // disabled
		4: makeEndpoint(4, 1, 1, true, true),
	}
	locations := []*dbclient.ImageLocation{
		makeLocation(10, 1, common.SyncStatusSynced),
		makeLocation(10, 2, common.SyncStatusSynced),
		makeLocation(10, 3, common.SyncStatusSynced),
		makeLocation(10, 4, common.SyncStatusSynced),
	}

	// Endpoints 2 and 3 are out; endpoint 4 has the lowest priority left.
	got := pickReadLocation(r, locations, endpoints)
	assert.Assert(t, got != nil)
	assert.Equal(t, int64(4), got.EndpointId)
}

func TestPickReadLocationSkipsUnsynced(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	endpoints := map[int64]*dbclient.StorageEndpoint{
		1: makeEndpoint(1, 0, 1, true, true),
		2: makeEndpoint(2, 0, 1, true, true),
	}
	locations := []*dbclient.ImageLocation{
		makeLocation(10, 1, common.SyncStatusPending),
		makeLocation(10, 2, common.SyncStatusSynced),
	}
	got := pickReadLocation(r, locations, endpoints)
	assert.Assert(t, got != nil)
	assert.Equal(t, int64(2), got.EndpointId)
}

func TestPickReadLocationWeighted(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	endpoints := map[int64]*dbclient.StorageEndpoint{
		1: makeEndpoint(1, 0, 9, true, true),
		2: makeEndpoint(2, 0, 1, true, true),
	}
	locations := []*dbclient.ImageLocation{
		makeLocation(10, 1, common.SyncStatusSynced),
		makeLocation(10, 2, common.SyncStatusSynced),
	}

	counts := map[int64]int{}
	for i := 0; i < 1000; i++ {
		got := pickReadLocation(r, locations, endpoints)
		counts[got.EndpointId]++
	}
	// Endpoint 1 carries 90% of the weight; allow a generous margin.
	assert.Assert(t, counts[1] > 800, "endpoint 1 picked %d times", counts[1])
	assert.Assert(t, counts[2] > 20, "endpoint 2 picked %d times", counts[2])
}

func TestPickReadLocationZeroWeightsAreUniform(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	endpoints := map[int64]*dbclient.StorageEndpoint{
		1: makeEndpoint(1, 0, 0, true, true),
		2: makeEndpoint(2, 0, -3, true, true), // negative clamps to zero
	}
	locations := []*dbclient.ImageLocation{
		makeLocation(10, 1, common.SyncStatusSynced),
		makeLocation(10, 2, common.SyncStatusSynced),
	}

	counts := map[int64]int{}
	for i := 0; i < 1000; i++ {
		got := pickReadLocation(r, locations, endpoints)
		counts[got.EndpointId]++
	}
	assert.Assert(t, counts[1] > 400, "endpoint 1 picked %d times", counts[1])
	assert.Assert(t, counts[2] > 400, "endpoint 2 picked %d times", counts[2])
}

func TestPickReadLocationNoCandidates(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	endpoints := map[int64]*dbclient.StorageEndpoint{
		1: makeEndpoint(1, 0, 1, true, false),
	}
	locations := []*dbclient.ImageLocation{
		makeLocation(10, 1, common.SyncStatusSynced),
		makeLocation(10, 9, common.SyncStatusSynced), // endpoint not in map
	}
	assert.Assert(t, pickReadLocation(r, locations, endpoints) == nil)
}
