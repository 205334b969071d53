/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package endpoint

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/Iris/common/pkg/config"
	"github.com/AMD-AIG-AIMA/Iris/common/pkg/notification/model"
	commonutils "github.com/AMD-AIG-AIMA/Iris/common/pkg/utils"
)

// Topic notifies operators when a storage endpoint fails its health probe.
type Topic struct {
	Recipients []string
}

func (t *Topic) Name() string {
	return model.TopicEndpointUnhealthy
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
		EndpointId:   topicData.EndpointId,
		EndpointName: topicData.EndpointName,
		Error:        topicData.Error,
		DetectedTime: time.Now().UTC().Format(time.DateTime),
	}
	if host := commonconfig.GetSystemHost(); host != "" {
		emailData.ConsoleURL = fmt.Sprintf("https://%s/storage/endpoints/%d", host, topicData.EndpointId)
	}
	emailContent, err := renderEmailTemplate(emailData)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	message := &model.Message{
		Email: &model.EmailMessage{
			Title:   fmt.Sprintf("Storage endpoint %s is unhealthy", topicData.EndpointName),
			Content: emailContent,
			To:      t.Recipients,
		},
	}
	return []*model.Message{message}, nil
}

type TopicData struct {
	EndpointId   int64  `json:"endpoint_id,omitempty"`
	EndpointName string `json:"endpoint_name,omitempty"`
	Error        string `json:"error,omitempty"`
}

type EmailData struct {
	EndpointId   int64
	EndpointName string
	Error        string
	DetectedTime string
	ConsoleURL   string
}

const emailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #2d3748;">
  <h2 style="color: #c53030;">Storage Endpoint Unhealthy</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Endpoint</td><td>{{.EndpointName}} (#{{.EndpointId}})</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Detected</td><td>{{.DetectedTime}}</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; font-weight: bold;">Error</td><td>{{.Error}}</td></tr>
  </table>
  {{if .ConsoleURL}}<p><a href="{{.ConsoleURL}}">Open in console</a></p>{{end}}
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
