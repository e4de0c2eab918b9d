// Package logging adapts hclog to the bitable.Logger interface.
package logging

import (
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/fivetwenty-io/bitable/pkg/bitable"
)

// HCLogger forwards bitable log calls to an hclog.Logger.
type HCLogger struct {
	logger hclog.Logger
}

// NewHCLogger creates a logger named name writing to output at level.
func NewHCLogger(name string, level hclog.Level, output io.Writer) *HCLogger {
	return Wrap(hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  level,
		Output: output,
	}))
}

// Wrap adapts an existing hclog.Logger.
func Wrap(logger hclog.Logger) *HCLogger {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &HCLogger{logger: logger}
}

var _ bitable.Logger = (*HCLogger)(nil)

// Debug implements bitable.Logger.
func (l *HCLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, args(fields)...)
}

// Info implements bitable.Logger.
func (l *HCLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, args(fields)...)
}

// Warn implements bitable.Logger.
func (l *HCLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, args(fields)...)
}

// Error implements bitable.Logger.
func (l *HCLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, args(fields)...)
}

// args flattens fields into key/value pairs in key order.
func args(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		out = append(out, key, fields[key])
	}

	return out
}
