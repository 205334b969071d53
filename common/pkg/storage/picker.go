/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage

import (
	"math/rand"
	"sync"
	"time"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	dbclient "github.com/AMD-AIG-AIMA/Iris/common/pkg/database/client"
)

var (
	pickerMu   sync.Mutex
	pickerRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// PickReadLocation selects which replica serves a read. Candidates are
// synced locations on enabled, healthy endpoints. Among candidates the
// lowest read_priority wins; ties are broken by weighted random over
// read_weight (negative weights count as zero, all-zero means uniform).
// Returns nil when no location qualifies.
func PickReadLocation(locations []*dbclient.ImageLocation,
	endpoints map[int64]*dbclient.StorageEndpoint) *dbclient.ImageLocation {
	pickerMu.Lock()
	defer pickerMu.Unlock()
	return pickReadLocation(pickerRand, locations, endpoints)
}

func pickReadLocation(r *rand.Rand, locations []*dbclient.ImageLocation,
	endpoints map[int64]*dbclient.StorageEndpoint) *dbclient.ImageLocation {
	var candidates []*dbclient.ImageLocation
	minPriority := 0
	for _, loc := range locations {
		if loc.SyncStatus != common.SyncStatusSynced {
			continue
		}
		ep, ok := endpoints[loc.EndpointId]
		if !ok || !ep.IsEnabled || !ep.IsHealthy {
			continue
		}
		switch {
		case len(candidates) == 0 || ep.ReadPriority < minPriority:
			candidates = candidates[:0]
			candidates = append(candidates, loc)
			minPriority = ep.ReadPriority
		case ep.ReadPriority == minPriority:
			candidates = append(candidates, loc)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	total := 0
	weights := make([]int, len(candidates))
	for i, loc := range candidates {
		w := endpoints[loc.EndpointId].ReadWeight
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return candidates[r.Intn(len(candidates))]
	}
	n := r.Intn(total)
	for i, w := range weights {
		if n < w {
			return candidates[i]
		}
		n -= w
	}
	return candidates[len(candidates)-1]
}
