/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package user

import (
	"github.com/AMD-AIG-AIMA/Iris/utils/pkg/stringutil"
)

// GenerateUserIdByName generates a unique user ID from a username. Ids are
// stable, so the same name maps to the same id on every installation.
func GenerateUserIdByName(name string) string {
	return stringutil.MD5(name)
}
