package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/matchview/internal/core/ports"
)

// LogBridge implements sdktrace.SpanProcessor to report finished spans to a logger.
// Spans are logged at debug level, so they only show up when tracing is enabled.
type LogBridge struct {
	log ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(log ports.Logger) *LogBridge {
	return &LogBridge{log: log}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.log == nil || !s.SpanContext().IsValid() {
		return
	}
	b.log.Debug(FormatSpan(s))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

// FormatSpan renders a finished span as a single log line.
func FormatSpan(s sdktrace.ReadOnlySpan) string {
	var sb strings.Builder
	sb.WriteString("trace ")
	sb.WriteString(s.Name())
	sb.WriteByte(' ')
	sb.WriteString(s.EndTime().Sub(s.StartTime()).Round(time.Microsecond).String())

	attrs := append([]attribute.KeyValue(nil), s.Attributes()...)
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	for _, kv := range attrs {
		fmt.Fprintf(&sb, " %s=%s", kv.Key, kv.Value.Emit())
	}

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		sb.WriteString(" error=")
		sb.WriteString(fmt.Sprintf("%q", desc))
	}
	return sb.String()
}
