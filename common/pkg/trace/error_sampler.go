// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package trace

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// TraceMode controls which spans are exported.
type TraceMode string

const (
	// TraceModeErrorOnly only exports traces that contain at least one error span
	TraceModeErrorOnly TraceMode = "error_only"
	// TraceModeAlways exports all traces (subject to sampling ratio)
	TraceModeAlways TraceMode = "always"
)

// TraceOptions configures span export behavior.
type TraceOptions struct {
	Mode               TraceMode
	SamplingRatio      float64
	ErrorSamplingRatio float64
}

// DefaultTraceOptions returns the recommended production settings:
// error_only mode, 10% baseline sampling, 100% error sampling.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{
		Mode:               TraceModeErrorOnly,
		SamplingRatio:      0.1,
		ErrorSamplingRatio: 1.0,
	}
}

type traceBuffer struct {
	spans    []sdktrace.ReadOnlySpan
	hasError bool
}

// ErrorOnlySpanProcessor buffers spans per trace and only exports a trace
// once one of its spans ends with an error status. Traces that complete
// without errors are dropped, which keeps the export volume proportional
// to the failure rate instead of the request rate.
type ErrorOnlySpanProcessor struct {
	exporter           sdktrace.SpanExporter
	errorSamplingRatio float64

	mu     sync.Mutex
	traces map[oteltrace.TraceID]*traceBuffer
	rand   *rand.Rand
}

// NewErrorOnlySpanProcessor creates a processor that exports only errored
// traces. errorSamplingRatio in [0, 1] controls what fraction of errored
// traces are kept.
func NewErrorOnlySpanProcessor(exporter sdktrace.SpanExporter, errorSamplingRatio float64) *ErrorOnlySpanProcessor {
	return &ErrorOnlySpanProcessor{
		exporter:           exporter,
		errorSamplingRatio: errorSamplingRatio,
		traces:             make(map[oteltrace.TraceID]*traceBuffer),
		rand:               rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// OnStart implements sdktrace.SpanProcessor. Spans are collected on end.
func (p *ErrorOnlySpanProcessor) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd buffers the span. If the span (or an earlier span of the same
// trace) ended with an error, the buffered spans are exported immediately.
// The buffer for a trace is released when its root span ends.
func (p *ErrorOnlySpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	traceID := s.SpanContext().TraceID()
	isError := s.Status().Code == codes.Error

	p.mu.Lock()
	buf, ok := p.traces[traceID]
	if !ok {
		buf = &traceBuffer{}
		p.traces[traceID] = buf
	}
	if isError && !buf.hasError {
		buf.hasError = p.shouldSample()
	}

	var toExport []sdktrace.ReadOnlySpan
	if buf.hasError {
		toExport = append(buf.spans, s)
		buf.spans = nil
	} else {
		buf.spans = append(buf.spans, s)
	}

	// The root span is the last to end; its buffer is no longer needed.
	if !s.Parent().IsValid() || s.Parent().IsRemote() {
		delete(p.traces, traceID)
	}
	p.mu.Unlock()

	if len(toExport) > 0 {
		_ = p.exporter.ExportSpans(context.Background(), toExport)
	}
}

// Shutdown drops any buffered spans and shuts down the exporter.
func (p *ErrorOnlySpanProcessor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.traces = make(map[oteltrace.TraceID]*traceBuffer)
	p.mu.Unlock()
	return p.exporter.Shutdown(ctx)
}

// ForceFlush is a no-op: errored traces are exported synchronously on end,
// and non-errored buffers must not be exported.
func (p *ErrorOnlySpanProcessor) ForceFlush(_ context.Context) error {
	return nil
}

// shouldSample decides whether an errored trace is kept. Callers inside
// OnEnd hold p.mu, which also serializes access to p.rand.
func (p *ErrorOnlySpanProcessor) shouldSample() bool {
	if p.errorSamplingRatio >= 1.0 {
		return true
	}
	if p.errorSamplingRatio <= 0 {
		return false
	}
	return p.rand.Float64() < p.errorSamplingRatio
}

// SampledSpanProcessor forwards a fraction of ended spans to a delegate
// processor. It is used to bound export volume in always-on mode.
type SampledSpanProcessor struct {
	processor     sdktrace.SpanProcessor
	samplingRatio float64

	mu   sync.Mutex
	rand *rand.Rand
}

// NewSampledSpanProcessor wraps processor so that only samplingRatio of
// spans reach it.
func NewSampledSpanProcessor(processor sdktrace.SpanProcessor, samplingRatio float64) *SampledSpanProcessor {
	return &SampledSpanProcessor{
		processor:     processor,
		samplingRatio: samplingRatio,
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// OnStart implements sdktrace.SpanProcessor.
func (p *SampledSpanProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if s != nil {
		p.processor.OnStart(parent, s)
	}
}

// OnEnd forwards the span to the delegate when sampled.
func (p *SampledSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	if p.shouldSample() {
		p.processor.OnEnd(s)
	}
}

// Shutdown shuts down the delegate processor.
func (p *SampledSpanProcessor) Shutdown(ctx context.Context) error {
	return p.processor.Shutdown(ctx)
}

// ForceFlush flushes the delegate processor.
func (p *SampledSpanProcessor) ForceFlush(ctx context.Context) error {
	return p.processor.ForceFlush(ctx)
}

func (p *SampledSpanProcessor) shouldSample() bool {
	if p.samplingRatio >= 1.0 {
		return true
	}
	if p.samplingRatio <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rand.Float64() < p.samplingRatio
}
