/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package storage_handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"k8s.io/klog/v2"

	apiutils "github.com/AMD-AIG-AIMA/Iris/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/common"
	commonerrors "github.com/AMD-AIG-AIMA/Iris/common/pkg/errors"
)

const watchPollInterval = time.Second

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The session cookie already gates the route.
	CheckOrigin: func(*http.Request) bool { return true },
}

// watchTask streams a task's progress document over a websocket until the
// task reaches a terminal state or the client disconnects.
func (h *Handler) watchTask(c *gin.Context) {
	task, err := h.pathTask(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	conn, err := watchUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		apiutils.AbortWithApiError(c, commonerrors.NewBadRequest(err.Error()))
		return
	}
	defer conn.Close()

	// Reads only surface client-side close; the payload is ignored.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		view := taskView(task)
		if err = conn.WriteJSON(view); err != nil {
			return
		}
		if isTerminalStatus(task.Status) {
			message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, task.Status)
			deadline := time.Now().Add(time.Second)
			_ = conn.WriteControl(websocket.CloseMessage, message, deadline)
			return
		}

		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
		}
		if task, err = h.dbClient.GetTask(c.Request.Context(), task.Id); err != nil {
			klog.ErrorS(err, "failed to refresh watched task")
			return
		}
		if task == nil {
			return
		}
	}
}

func isTerminalStatus(status string) bool {
	switch status {
	case common.TaskStatusCompleted, common.TaskStatusFailed, common.TaskStatusCancelled:
		return true
	default:
		return false
	}
}
