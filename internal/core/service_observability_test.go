package core

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"familycore/pkg/domain"
)

type captureMetrics struct {
	mu      sync.Mutex
	entries []string
}

func (c *captureMetrics) Observe(_ context.Context, operation string, success bool, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := "success"
	if !success {
		status = "error"
	}
	c.entries = append(c.entries, operation+":"+status)
}

type captureSpan struct {
	operation string
	tracer    *captureTracer
}

func (s *captureSpan) End(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.tracer.mu.Lock()
	s.tracer.ended = append(s.tracer.ended, s.operation+":"+status)
	s.tracer.mu.Unlock()
}

type captureTracer struct {
	mu    sync.Mutex
	ended []string
}

func (c *captureTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &captureSpan{operation: operation, tracer: c}
}

type captureAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (c *captureAudit) Record(_ context.Context, entry AuditEntry) {
	c.mu.Lock()
	c.entries = append(c.entries, entry)
	c.mu.Unlock()
}

func TestServiceObservabilityRecordsOutcomes(t *testing.T) {
	metrics := &captureMetrics{}
	tracer := &captureTracer{}
	audit := &captureAudit{}
	svc := NewInMemoryService(NewDefaultRulesEngine(),
		WithMetricsRecorder(metrics),
		WithTracer(tracer),
		WithAuditRecorder(audit),
	)
	ctx := context.Background()

	if _, _, err := svc.AddTodo(ctx, "Laundry", domain.PriorityLow); err != nil {
		t.Fatalf("add todo: %v", err)
	}
	if _, err := svc.RemoveShoppingList(ctx, domain.DefaultShoppingListID); err == nil {
		t.Fatalf("expected rule rejection")
	}

	if len(metrics.entries) != 2 ||
		metrics.entries[0] != "add_todo:success" ||
		metrics.entries[1] != "remove_shopping_list:error" {
		t.Fatalf("unexpected metrics entries: %v", metrics.entries)
	}
	if len(tracer.ended) != 2 || tracer.ended[1] != "remove_shopping_list:error" {
		t.Fatalf("unexpected spans: %v", tracer.ended)
	}
	if len(audit.entries) != 2 {
		t.Fatalf("expected two audit entries, got %d", len(audit.entries))
	}
	if audit.entries[0].Status != AuditStatusApplied {
		t.Fatalf("expected applied entry, got %s", audit.entries[0].Status)
	}
	rejected := audit.entries[1]
	if rejected.Status != AuditStatusRejected || rejected.Error == "" {
		t.Fatalf("expected rejected entry with error, got %+v", rejected)
	}
	if len(rejected.Violations) == 0 {
		t.Fatalf("expected rejected entry to carry rule violations")
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheusMetricsRecorder(reg)
	svc := NewInMemoryService(NewDefaultRulesEngine(), WithMetricsRecorder(rec))
	ctx := context.Background()

	if _, _, err := svc.AddTodo(ctx, "Laundry", domain.PriorityLow); err != nil {
		t.Fatalf("add todo: %v", err)
	}
	if _, err := svc.RemoveShoppingList(ctx, domain.DefaultShoppingListID); err == nil {
		t.Fatalf("expected rule rejection")
	}

	success := testutil.ToFloat64(rec.operations.WithLabelValues("add_todo", "success"))
	if success != 1 {
		t.Fatalf("expected one successful add_todo, got %v", success)
	}
	rejected := testutil.ToFloat64(rec.operations.WithLabelValues("remove_shopping_list", "error"))
	if rejected != 1 {
		t.Fatalf("expected one rejected remove_shopping_list, got %v", rejected)
	}
}

func TestExpvarMetricsRecorderSnapshot(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if !strings.HasPrefix(rec.Name(), "familycore_store_metrics_") {
		t.Fatalf("unexpected expvar name %q", rec.Name())
	}
	rec.Observe(context.Background(), "add_event", true, 3*time.Millisecond)
	rec.Observe(context.Background(), "add_event", false, time.Millisecond)
	snap := rec.Snapshot()
	if snap.Results["add_event"]["success"] != 1 || snap.Results["add_event"]["error"] != 1 {
		t.Fatalf("unexpected result counters: %+v", snap.Results)
	}
	if snap.DurationsMS["add_event"] < 4 {
		t.Fatalf("expected at least 4ms accumulated, got %v", snap.DurationsMS["add_event"])
	}
}

func TestJSONTracerAndAuditRecorder(t *testing.T) {
	var traceBuf, auditBuf bytes.Buffer
	svc := NewInMemoryService(NewDefaultRulesEngine(),
		WithTracer(NewJSONTracer(&traceBuf)),
		WithAuditRecorder(NewJSONAuditRecorder(&auditBuf)),
	)
	if _, _, err := svc.AddTodo(context.Background(), "Laundry", domain.PriorityLow); err != nil {
		t.Fatalf("add todo: %v", err)
	}

	var entry JSONTraceEntry
	if err := json.Unmarshal(traceBuf.Bytes(), &entry); err != nil {
		t.Fatalf("decode trace line: %v", err)
	}
	if entry.Operation != "add_todo" || entry.Status != "success" {
		t.Fatalf("unexpected trace entry: %+v", entry)
	}

	var audit AuditEntry
	if err := json.Unmarshal(auditBuf.Bytes(), &audit); err != nil {
		t.Fatalf("decode audit line: %v", err)
	}
	if audit.Operation != "add_todo" || audit.Status != AuditStatusApplied {
		t.Fatalf("unexpected audit entry: %+v", audit)
	}
}
