package core

import (
	"sort"
	"time"

	"familycore/pkg/domain"
)

// Derived read-only views used by display consumers. All of them are pure
// filters over store snapshots; none of them hold state.

// DateLayout is the calendar date format used across the stores.
const DateLayout = "2006-01-02"

// EventsOn returns the events whose date matches exactly.
func EventsOn(events []CalendarEvent, date string) []CalendarEvent {
	var out []CalendarEvent
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// HasEventsOn reports whether any event falls on the given date.
func HasEventsOn(events []CalendarEvent, date string) bool {
	for _, e := range events {
		if e.Date == date {
			return true
		}
	}
	return false
}

// EventsToday filters events against now's local calendar date.
func EventsToday(events []CalendarEvent, now time.Time) []CalendarEvent {
	return EventsOn(events, now.Format(DateLayout))
}

// SortEvents orders events by date, then time, then title. ISO dates and
// HH:MM prefixes compare correctly as strings; untimed events sort first
// within their day.
func SortEvents(events []CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].Title < events[j].Title
	})
}

// OpenTodoCount counts todos not yet done.
func OpenTodoCount(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Done {
			n++
		}
	}
	return n
}

// HighPriorityTodos returns the open todos ranked high or urgent.
func HighPriorityTodos(todos []Todo) []Todo {
	var out []Todo
	for _, t := range todos {
		if t.Done {
			continue
		}
		if t.Priority == domain.PriorityHigh || t.Priority == domain.PriorityUrgent {
			out = append(out, t)
		}
	}
	return out
}

// OpenShoppingItemCount counts unchecked items across all lists.
func OpenShoppingItemCount(lists []ShoppingList) int {
	n := 0
	for _, l := range lists {
		for _, item := range l.Items {
			if !item.Done {
				n++
			}
		}
	}
	return n
}

// CurrentMember resolves the session pointer to its member.
func CurrentMember(family FamilyState) (FamilyMember, bool) {
	if family.CurrentUserID == "" {
		return FamilyMember{}, false
	}
	for _, m := range family.Members {
		if m.ID == family.CurrentUserID {
			return m, true
		}
	}
	return FamilyMember{}, false
}

// ActiveShoppingList resolves a UI selection, falling back to the default
// list when the selection points at a list that no longer exists.
func ActiveShoppingList(lists []ShoppingList, selectedID string) (ShoppingList, bool) {
	var fallback ShoppingList
	found := false
	for _, l := range lists {
		if l.ID == selectedID {
			return l, true
		}
		if l.ID == domain.DefaultShoppingListID {
			fallback = l
			found = true
		}
	}
	return fallback, found
}
