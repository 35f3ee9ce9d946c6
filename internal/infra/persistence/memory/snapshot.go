package memory

import (
	"strings"
	"time"

	"familycore/pkg/domain"
)

func snapshotFromState(state memoryState) Snapshot {
	s := Snapshot{
		SchemaVersion: domain.SnapshotSchemaVersion,
		Events:        append([]CalendarEvent{}, state.events...),
		Todos:         append([]Todo{}, state.todos...),
		Lists:         make([]ShoppingList, 0, len(state.lists)),
		Family:        cloneFamily(state.family),
	}
	for _, l := range state.lists {
		s.Lists = append(s.Lists, cloneList(l))
	}
	if s.Family.Members == nil {
		s.Family.Members = []FamilyMember{}
	}
	return s
}

func stateFromSnapshot(s Snapshot) memoryState {
	state := memoryState{
		events: append([]CalendarEvent{}, s.Events...),
		todos:  append([]Todo{}, s.Todos...),
		lists:  make([]ShoppingList, 0, len(s.Lists)),
		family: cloneFamily(s.Family),
	}
	for _, l := range s.Lists {
		state.lists = append(state.lists, cloneList(l))
	}
	return state
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot, migrating
// legacy shapes first. Import never fails: a malformed snapshot degrades to
// the nearest valid state instead.
func (s *Store) ImportState(snapshot Snapshot) {
	migrated := migrateSnapshot(snapshot, s.nowFn())
	s.mu.Lock()
	s.state = stateFromSnapshot(migrated)
	s.mu.Unlock()
}

// migrateSnapshot normalizes snapshots written by earlier revisions of the
// app: uppercase role values, absent priorities, a missing default list, a
// dangling current-user pointer, and a member set without an owner. It is
// idempotent, so current-version snapshots pass through unchanged.
func migrateSnapshot(snapshot Snapshot, now time.Time) Snapshot {
	out := snapshot
	out.SchemaVersion = domain.SnapshotSchemaVersion

	out.Events = append([]CalendarEvent{}, snapshot.Events...)
	for i, e := range out.Events {
		if !e.Priority.Valid() || e.Priority == domain.PriorityUrgent {
			if e.Priority == domain.PriorityUrgent {
				out.Events[i].Priority = domain.PriorityHigh
			} else {
				out.Events[i].Priority = domain.PriorityMedium
			}
		}
	}

	out.Todos = append([]Todo{}, snapshot.Todos...)
	for i, t := range out.Todos {
		if !t.Priority.Valid() {
			out.Todos[i].Priority = domain.PriorityMedium
		}
	}

	out.Lists = make([]ShoppingList, 0, len(snapshot.Lists)+1)
	hasDefault := false
	for _, l := range snapshot.Lists {
		cp := cloneList(l)
		if cp.Items == nil {
			cp.Items = []ShoppingItem{}
		}
		if cp.ID == domain.DefaultShoppingListID {
			if hasDefault {
				continue // collapse duplicate default lists, first wins
			}
			hasDefault = true
		}
		out.Lists = append(out.Lists, cp)
	}
	if !hasDefault {
		out.Lists = append([]ShoppingList{{
			Base:  domain.Base{ID: domain.DefaultShoppingListID, CreatedAt: now, UpdatedAt: now},
			Name:  "Family list",
			Items: []ShoppingItem{},
		}}, out.Lists...)
	}

	out.Family = cloneFamily(snapshot.Family)
	if out.Family.Members == nil {
		out.Family.Members = []FamilyMember{}
	}
	ownerSeen := false
	for i, m := range out.Family.Members {
		role := domain.Role(strings.ToLower(string(m.Role)))
		if !role.Valid() {
			role = domain.RoleMember
		}
		out.Family.Members[i].Role = role
		if role == domain.RoleOwner {
			ownerSeen = true
		}
	}
	if !ownerSeen && len(out.Family.Members) > 0 {
		out.Family.Members[0].Role = domain.RoleOwner
	}
	if out.Family.CurrentUserID != "" {
		resolved := false
		for _, m := range out.Family.Members {
			if m.ID == out.Family.CurrentUserID {
				resolved = true
				break
			}
		}
		if !resolved {
			out.Family.CurrentUserID = ""
			if len(out.Family.Members) > 0 {
				out.Family.CurrentUserID = out.Family.Members[0].ID
			}
		}
	}
	return out
}
