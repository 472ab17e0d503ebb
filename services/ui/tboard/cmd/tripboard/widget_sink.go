package main

import (
	"github.com/rmrobinson/triplog/services/ui/tboard/widget"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// WidgetSink implements zapcore.WriteSyncer by appending all messages to a widget.
type WidgetSink struct {
	widget *widget.Debug
}

// NewWidgetSink creates a new widget logger sink
func NewWidgetSink(widget *widget.Debug) *WidgetSink {
	return &WidgetSink{
		widget: widget,
	}
}

// Write appends the contents to the widget
func (s *WidgetSink) Write(p []byte) (n int, err error) {
	s.widget.Append(string(p))
	return len(p), nil
}

// Sync is a nop
func (s *WidgetSink) Sync() error { return nil }

// newWidgetLogger creates a logger writing console encoded entries at or above level to the widget.
func newWidgetLogger(sink *WidgetSink, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(sink),
		level,
	)
	return zap.New(core)
}
