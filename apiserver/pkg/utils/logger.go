/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Logger returns a gin middleware that writes one access line per request
// through klog. Successful requests log at V(4) so steady-state traffic
// stays out of the default log level; failures always log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		if status >= 500 {
			klog.ErrorS(nil, "request failed",
				"method", c.Request.Method, "path", c.Request.URL.Path,
				"status", status, "latency", latency, "clientIP", c.ClientIP())
			return
		}
		klog.V(4).InfoS("request completed",
			"method", c.Request.Method, "path", c.Request.URL.Path,
			"status", status, "latency", latency, "clientIP", c.ClientIP())
	}
}
