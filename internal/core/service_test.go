package core

import (
	"context"
	"errors"
	"testing"

	"familycore/pkg/domain"
)

func TestServiceCalendarLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	event, _, err := svc.AddEvent(ctx, "Dentist", "2026-09-01", "10:00-10:45", domain.PriorityMedium)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, _, err := svc.AddEvent(ctx, "Party", "2026-09-02", "", domain.PriorityLow); err != nil {
		t.Fatalf("add event: %v", err)
	}
	if _, err := svc.RemoveEvent(ctx, event.ID); err != nil {
		t.Fatalf("remove event: %v", err)
	}
	if got := len(svc.Store().ListEvents()); got != 1 {
		t.Fatalf("expected one event, got %d", got)
	}
	if _, err := svc.ClearEvents(ctx); err != nil {
		t.Fatalf("clear events: %v", err)
	}
	if got := len(svc.Store().ListEvents()); got != 0 {
		t.Fatalf("expected empty calendar, got %d", got)
	}
}

func TestServiceTodoLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	todo, _, err := svc.AddTodo(ctx, "Laundry", domain.PriorityLow)
	if err != nil {
		t.Fatalf("add todo: %v", err)
	}
	toggled, _, err := svc.ToggleTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Done {
		t.Fatalf("expected done todo")
	}
	reprioritized, _, err := svc.SetTodoPriority(ctx, todo.ID, domain.PriorityUrgent)
	if err != nil {
		t.Fatalf("set priority: %v", err)
	}
	if reprioritized.Priority != domain.PriorityUrgent {
		t.Fatalf("expected urgent, got %s", reprioritized.Priority)
	}
	removed, _, err := svc.ClearCompletedTodos(ctx)
	if err != nil {
		t.Fatalf("clear completed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected one completed todo cleared, got %d", removed)
	}
	if _, err := svc.DeleteTodo(ctx, todo.ID); err == nil {
		t.Fatalf("expected delete of cleared todo to report not found")
	}
}

func TestServiceShoppingLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	item, _, err := svc.AddShoppingItem(ctx, domain.DefaultShoppingListID, "Milk", "2")
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	toggled, _, err := svc.ToggleShoppingItem(ctx, domain.DefaultShoppingListID, item.ID)
	if err != nil {
		t.Fatalf("toggle item: %v", err)
	}
	if !toggled.Done {
		t.Fatalf("expected checked item")
	}
	restored, _, err := svc.ToggleShoppingItem(ctx, domain.DefaultShoppingListID, item.ID)
	if err != nil {
		t.Fatalf("toggle item back: %v", err)
	}
	if restored.Done {
		t.Fatalf("expected second toggle to restore the open state")
	}
	if _, err := svc.RemoveShoppingItem(ctx, domain.DefaultShoppingListID, item.ID); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if _, err := svc.ClearShoppingList(ctx, domain.DefaultShoppingListID); err != nil {
		t.Fatalf("clear list: %v", err)
	}
	lists := svc.Store().ListShoppingLists()
	if len(lists) != 1 || len(lists[0].Items) != 0 {
		t.Fatalf("expected empty default list, got %+v", lists)
	}
}

func TestServiceRejectionsAreNoOps(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, _, err := svc.AddTodo(ctx, "   ", domain.PriorityLow)
	if !errors.Is(err, domain.ErrEmptyInput) || !domain.IsNoOp(err) {
		t.Fatalf("expected empty-input no-op, got %v", err)
	}
	_, err = svc.RemoveEvent(ctx, "missing")
	var nf domain.ErrNotFound
	if !errors.As(err, &nf) || !domain.IsNoOp(err) {
		t.Fatalf("expected not-found no-op, got %v", err)
	}
	_, err = svc.RemoveShoppingList(ctx, domain.DefaultShoppingListID)
	if !domain.IsNoOp(err) {
		t.Fatalf("expected rule rejection to classify as no-op, got %v", err)
	}
}

func TestServiceUpdateMemberProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	member, _, err := svc.AddMember(ctx, "Anna", domain.RoleOwner)
	if err != nil {
		t.Fatalf("add member: %v", err)
	}
	updated, _, err := svc.UpdateMember(ctx, member.ID, func(m *domain.FamilyMember) error {
		m.Email = "anna@example.com"
		m.Color = "#3498db"
		return nil
	})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if updated.Email != "anna@example.com" || updated.Color != "#3498db" {
		t.Fatalf("expected profile fields applied, got %+v", updated)
	}
	if updated.ID != member.ID {
		t.Fatalf("mutator must not change identity")
	}
}
