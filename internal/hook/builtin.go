package hook

import "fmt"

// Logger is the logging interface used across typewrap.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AuditHook logs every event at debug level.
type AuditHook[E any] struct {
	logger Logger
	label  string
}

// NewAuditHook creates an audit hook. label names the event kind in logs.
func NewAuditHook[E any](logger Logger, label string) *AuditHook[E] {
	return &AuditHook[E]{logger: logger, label: label}
}

// Name implements Hook.
func (h *AuditHook[E]) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook[E]) Priority() int { return PriorityAudit }

// Run implements Hook.
func (h *AuditHook[E]) Run(event E) error {
	if h.logger != nil {
		h.logger.Debug("hook event", "kind", h.label, "event", fmt.Sprint(event))
	}
	return nil
}
