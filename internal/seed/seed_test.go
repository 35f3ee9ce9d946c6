package seed

import (
	"context"
	"testing"
	"time"

	"familycore/internal/core"
	"familycore/pkg/domain"
)

func TestDemoPopulatesEmptyStore(t *testing.T) {
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	now := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	if err := Demo(context.Background(), svc, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	family := svc.Store().Family()
	if len(family.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(family.Members))
	}
	owners := 0
	for _, m := range family.Members {
		if m.Role == domain.RoleOwner {
			owners++
		}
		if m.Email == "" || m.Color == "" {
			t.Fatalf("expected profile fields on %s", m.Name)
		}
	}
	if owners != 1 {
		t.Fatalf("expected one owner, got %d", owners)
	}
	if member, ok := core.CurrentMember(family); !ok || member.Role != domain.RoleOwner {
		t.Fatalf("expected owner signed in, got %+v ok=%v", member, ok)
	}

	events := svc.Store().ListEvents()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if !core.HasEventsOn(events, now.Format(core.DateLayout)) {
		t.Fatalf("expected an event today")
	}
	if got := core.OpenTodoCount(svc.Store().ListTodos()); got != 3 {
		t.Fatalf("expected 3 open todos, got %d", got)
	}
	if got := core.OpenShoppingItemCount(svc.Store().ListShoppingLists()); got != 3 {
		t.Fatalf("expected 3 open shopping items, got %d", got)
	}
}

func TestDemoSkipsPopulatedStore(t *testing.T) {
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	ctx := context.Background()
	if _, _, err := svc.AddMember(ctx, "Anna", domain.RoleOwner); err != nil {
		t.Fatalf("add member: %v", err)
	}
	if err := Demo(ctx, svc, time.Now()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := len(svc.Store().Family().Members); got != 1 {
		t.Fatalf("expected seeding skipped, got %d members", got)
	}
	if got := len(svc.Store().ListTodos()); got != 0 {
		t.Fatalf("expected no seeded todos, got %d", got)
	}
}
