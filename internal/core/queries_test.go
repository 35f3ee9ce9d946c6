package core

import (
	"testing"
	"time"

	"familycore/pkg/domain"
)

func TestEventsOnFiltersExactDate(t *testing.T) {
	events := []CalendarEvent{
		{Base: domain.Base{ID: "a"}, Date: "2026-08-28"},
		{Base: domain.Base{ID: "b"}, Date: "2026-08-29"},
		{Base: domain.Base{ID: "c"}, Date: "2026-08-28"},
	}
	got := EventsOn(events, "2026-08-28")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	if !HasEventsOn(events, "2026-08-29") {
		t.Fatalf("expected match on 2026-08-29")
	}
	if HasEventsOn(events, "2026-08-30") {
		t.Fatalf("expected no match on 2026-08-30")
	}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if today := EventsToday(events, now); len(today) != 1 || today[0].ID != "b" {
		t.Fatalf("unexpected today filter: %+v", today)
	}
}

func TestSortEventsOrdersByDateTimeTitle(t *testing.T) {
	events := []CalendarEvent{
		{Base: domain.Base{ID: "late"}, Date: "2026-08-29", Time: "18:00", Title: "Dinner"},
		{Base: domain.Base{ID: "untimed"}, Date: "2026-08-28", Time: "", Title: "All day"},
		{Base: domain.Base{ID: "early"}, Date: "2026-08-28", Time: "09:00", Title: "Standup"},
		{Base: domain.Base{ID: "tie"}, Date: "2026-08-28", Time: "09:00", Title: "Breakfast"},
	}
	SortEvents(events)
	want := []string{"untimed", "tie", "early", "late"}
	for i, id := range want {
		if events[i].ID != id {
			t.Fatalf("position %d: want %s, got %s", i, id, events[i].ID)
		}
	}
}

func TestTodoAndShoppingCounters(t *testing.T) {
	todos := []Todo{
		{Base: domain.Base{ID: "a"}, Priority: domain.PriorityHigh},
		{Base: domain.Base{ID: "b"}, Priority: domain.PriorityUrgent, Done: true},
		{Base: domain.Base{ID: "c"}, Priority: domain.PriorityLow},
		{Base: domain.Base{ID: "d"}, Priority: domain.PriorityUrgent},
	}
	if got := OpenTodoCount(todos); got != 3 {
		t.Fatalf("expected 3 open todos, got %d", got)
	}
	high := HighPriorityTodos(todos)
	if len(high) != 2 || high[0].ID != "a" || high[1].ID != "d" {
		t.Fatalf("unexpected high priority set: %+v", high)
	}

	lists := []ShoppingList{
		{Items: []ShoppingItem{{Done: true}, {Done: false}}},
		{Items: []ShoppingItem{{Done: false}}},
	}
	if got := OpenShoppingItemCount(lists); got != 2 {
		t.Fatalf("expected 2 open items, got %d", got)
	}
}

func TestCurrentMemberResolution(t *testing.T) {
	family := FamilyState{
		Members: []FamilyMember{
			{Base: domain.Base{ID: "m1"}, Name: "Anna"},
			{Base: domain.Base{ID: "m2"}, Name: "Ben"},
		},
		CurrentUserID: "m2",
	}
	member, ok := CurrentMember(family)
	if !ok || member.Name != "Ben" {
		t.Fatalf("expected Ben, got %+v ok=%v", member, ok)
	}
	family.CurrentUserID = ""
	if _, ok := CurrentMember(family); ok {
		t.Fatalf("expected no member for empty pointer")
	}
	family.CurrentUserID = "ghost"
	if _, ok := CurrentMember(family); ok {
		t.Fatalf("expected no member for dangling pointer")
	}
}

func TestActiveShoppingListFallsBackToDefault(t *testing.T) {
	lists := []ShoppingList{
		{Base: domain.Base{ID: domain.DefaultShoppingListID}, Name: "Family list"},
		{Base: domain.Base{ID: "weekend"}, Name: "Weekend"},
	}
	selected, ok := ActiveShoppingList(lists, "weekend")
	if !ok || selected.ID != "weekend" {
		t.Fatalf("expected direct selection, got %+v", selected)
	}
	fallback, ok := ActiveShoppingList(lists, "deleted")
	if !ok || fallback.ID != domain.DefaultShoppingListID {
		t.Fatalf("expected default fallback, got %+v", fallback)
	}
	if _, ok := ActiveShoppingList(nil, "anything"); ok {
		t.Fatalf("expected no resolution without lists")
	}
}
