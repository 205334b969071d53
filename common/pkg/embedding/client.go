/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package embedding

import (
	"sync"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
)

var (
	once     sync.Once
	instance Interface
)

// NewClient returns the process-wide embedding client selected by
// embedding.mode. Unknown modes fall back to the API client.
func NewClient() Interface {
	once.Do(func() {
		mode := commonconfig.GetEmbeddingMode()
		switch mode {
		case common.EmbeddingModeLocal:
			instance = newLocalClient()
		case common.EmbeddingModeAPI:
			instance = newAPIClient()
		default:
			klog.Warningf("unknown embedding mode %q, using api", mode)
			instance = newAPIClient()
		}
	})
	return instance
}
