/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package task

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
	commonutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/utils"
)

// Topic notifies operators about tasks that ended in failed state.
type Topic struct {
	Recipients []string
}

func (t *Topic) Name() string {
	return model.TopicTaskFailed
}

func (t *Topic) Filter(data map[string]interface{}) bool {
	if len(t.Recipients) == 0 {
		klog.V(4).Infof("topic %s has no recipients configured, dropping event", t.Name())
		return false
	}
	return true
}

func (t *Topic) BuildMessage(ctx context.Context, data map[string]interface{}) ([]*model.Message, error) {
	topicData := &TopicData{}
	if err := commonutils.TransMapToStruct(data, topicData); err != nil {
		return nil, fmt.Errorf("failed to convert data to TopicData: %w", err)
	}
	emailData := EmailData{
		TaskId:     topicData.TaskId,
		TaskType:   topicData.TaskType,
		Error:      topicData.Error,
		FailedTime: time.Now().UTC().Format(time.DateTime),
	}
	emailContent, err := renderEmailTemplate(emailData)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	message := &model.Message{
		Email: &model.EmailMessage{
			Title:   fmt.Sprintf("Task %s failed - %s", topicData.TaskId, topicData.TaskType),
			Content: emailContent,
			To:      t.Recipients,
		},
	}
	return []*model.Message{message}, nil
}

type TopicData struct {
	TaskId   string `json:"task_id,omitempty"`
	TaskType string `json:"task_type,omitempty"`
	Error    string `json:"error,omitempty"`
	ImageId  int64  `json:"image_id,omitempty"`
}

type EmailData struct {
	TaskId     string
	TaskType   string
	Error      string
	FailedTime string
}

const emailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #2d3748;">
  <h2 style="color: #c53030;">Task Failed</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Task</td><td>{{.TaskId}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Type</td><td>{{.TaskType}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Time</td><td>{{.FailedTime}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Error</td><td>{{.Error}}</td></tr>
  </table>
</body>
</html>`

// renderEmailTemplate renders the HTML email template using Go's html/template.
func renderEmailTemplate(data EmailData) (string, error) {
	tmpl, err := template.New("email_template").Parse(emailTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	return buf.String(), nil
}
