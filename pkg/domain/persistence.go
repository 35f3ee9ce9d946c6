package domain

import "context"

// Transaction exposes the store mutations a persistence implementation must
// support within an atomic scope. Mutations that fail validation return an
// error without touching transactional state, so a failed operation inside a
// larger transaction never leaves partial writes behind.
type Transaction interface {
	Snapshot() TransactionView

	AddEvent(title, date, timeOfDay string, priority Priority) (CalendarEvent, error)
	RemoveEvent(id string) error
	ClearEvents() error

	AddTodo(title string, priority Priority) (Todo, error)
	ToggleTodo(id string) (Todo, error)
	SetTodoPriority(id string, priority Priority) (Todo, error)
	DeleteTodo(id string) error
	ClearTodos() error
	ClearCompletedTodos() (int, error)

	AddShoppingList(name string) (ShoppingList, error)
	RemoveShoppingList(id string) error
	AddShoppingItem(listID, name, quantity string) (ShoppingItem, error)
	ToggleShoppingItem(listID, itemID string) (ShoppingItem, error)
	RemoveShoppingItem(listID, itemID string) error
	ClearShoppingList(listID string) error

	AddMember(name string, role Role) (FamilyMember, error)
	UpdateMember(id string, mutator func(*FamilyMember) error) (FamilyMember, error)
	RemoveMember(id string) error
	SetRole(id string, role Role) (FamilyMember, error)
	SetCurrentUser(id string) error
}

// TransactionView provides read-only access to snapshot data for rules and
// queries. It is identical to RuleView; the distinct name marks the boundary
// the same way the persistence layer marks it.
type TransactionView interface {
	RuleView
}

// PersistentStore is a minimal abstraction over durable backends. Every
// backend wraps the in-memory store and snapshots its state after each
// successful transaction.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error

	ListEvents() []CalendarEvent
	ListTodos() []Todo
	ListShoppingLists() []ShoppingList
	Family() FamilyState

	// ExportState clones the committed state for external persistence;
	// ImportState replaces it, migrating legacy snapshot shapes.
	ExportState() Snapshot
	ImportState(Snapshot)

	// OnCommit registers a listener invoked with the committed snapshot after
	// every successful transaction.
	OnCommit(fn func(Snapshot))
}
