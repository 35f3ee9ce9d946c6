package core

import (
	"context"
	"time"
)

// MetricsRecorder receives one observation per service operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan ends a started span, recording the operation error if any.
type TraceSpan interface {
	End(err error)
}

// AuditStatus classifies an audited operation outcome.
type AuditStatus string

// Audit outcomes. Rejected covers validation no-ops and rule-blocked commits.
const (
	AuditStatusApplied  AuditStatus = "applied"
	AuditStatusRejected AuditStatus = "rejected"
)

// AuditEntry records a single service operation for the audit trail.
type AuditEntry struct {
	Operation  string      `json:"operation"`
	Status     AuditStatus `json:"status"`
	Violations []Violation `json:"violations,omitempty"`
	Error      string      `json:"error,omitempty"`
	At         time.Time   `json:"at"`
}

// AuditRecorder receives audit entries emitted by the service.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}
