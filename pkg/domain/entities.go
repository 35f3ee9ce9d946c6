// Package domain defines the persistent entities, value types, and rule
// evaluation primitives shared by the familycore stores.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityCalendarEvent identifies a calendar event record.
	EntityCalendarEvent EntityType = "calendar_event"
	// EntityTodo identifies a todo record.
	EntityTodo EntityType = "todo"
	// EntityShoppingList identifies a shopping list record.
	EntityShoppingList EntityType = "shopping_list"
	// EntityShoppingItem identifies an item inside a shopping list.
	EntityShoppingItem EntityType = "shopping_item"
	// EntityFamilyMember identifies a family member record.
	EntityFamilyMember EntityType = "family_member"
	// EntityCurrentUser identifies the session current-user pointer.
	EntityCurrentUser EntityType = "current_user"
)

// Priority ranks events and todos.
type Priority string

// Canonical priorities. Urgent applies to todos only; events use low/medium/high.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the canonical priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Role assigns a family member its permission tier.
type Role string

// Canonical roles, lowercase. Legacy snapshots carried uppercase values;
// snapshot migration maps those onto the canonical set.
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// DefaultShoppingListID is the id of the shopping list that always exists.
const DefaultShoppingListID = "default"

// SnapshotSchemaVersion is the current persisted snapshot schema. Version 0
// snapshots predate the version field and are migrated on import.
const SnapshotSchemaVersion = 1

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarEvent is a dated entry in the family calendar. The Time field is
// free text ("HH:MM" or "HH:MM-HH:MM" by convention) and is stored verbatim;
// consumers that need real timestamps derive them, see gateway/devicecal.
type CalendarEvent struct {
	Base
	Title    string   `json:"title"`
	Date     string   `json:"date"` // ISO calendar date, YYYY-MM-DD
	Time     string   `json:"time,omitempty"`
	Priority Priority `json:"priority"`
}

// Todo is a flat task entry.
type Todo struct {
	Base
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Done     bool     `json:"done"`
}

// ShoppingItem is a checkable entry owned by exactly one shopping list.
type ShoppingItem struct {
	Base
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"` // free text, e.g. "2 kg"
	Done     bool   `json:"done"`
}

// ShoppingList groups shopping items. The list with id "default" is created
// at store initialization and can never be removed.
type ShoppingList struct {
	Base
	Name  string         `json:"name"`
	Items []ShoppingItem `json:"items"`
}

// FamilyMember is a member of the household with an assigned role.
type FamilyMember struct {
	Base
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Color string `json:"color,omitempty"` // display accent, hex
	Role  Role   `json:"role"`
}

// FamilyState is the family store aggregate: the member collection plus the
// session-scoped current-user pointer. CurrentUserID is a weak reference; it
// is either empty or resolves to an existing member.
type FamilyState struct {
	Members       []FamilyMember `json:"members"`
	CurrentUserID string         `json:"current_user_id"`
}

// Snapshot is the full persisted state of all four stores. Slice order is the
// insertion order and round-trips verbatim through every backend.
type Snapshot struct {
	SchemaVersion int             `json:"schema_version"`
	Events        []CalendarEvent `json:"events"`
	Todos         []Todo          `json:"todos"`
	Lists         []ShoppingList  `json:"lists"`
	Family        FamilyState     `json:"family"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported mutations captured for rule evaluation.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
