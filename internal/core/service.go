package core

import (
	"context"
	"time"

	"familycore/internal/infra/persistence/memory"
	"familycore/pkg/domain"
)

// Service exposes the transactional operations of the four stores over any
// persistent backend. Validation failures and rule-blocked mutations come
// back as errors satisfying domain.IsNoOp; in both cases state is untouched.
type Service struct {
	store   PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
	audit   AuditRecorder
	nowFn   func() time.Time
}

// ServiceOption configures optional service collaborators.
type ServiceOption func(*Service)

// WithMetricsRecorder attaches a metrics recorder to the service.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = rec }
}

// WithTracer attaches a tracer to the service.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tracer }
}

// WithAuditRecorder attaches an audit recorder to the service.
func WithAuditRecorder(rec AuditRecorder) ServiceOption {
	return func(s *Service) { s.audit = rec }
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store with the
// given rules engine. Intended for tests and ephemeral sessions.
func NewInMemoryService(engine *RulesEngine, opts ...ServiceOption) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// run executes fn in a store transaction and reports the outcome to the
// attached observability collaborators.
func (s *Service) run(ctx context.Context, operation string, fn func(tx Transaction) error) (Result, error) {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	started := s.nowFn()
	res, err := s.store.RunInTransaction(ctx, fn)
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, time.Since(started))
	}
	if span != nil {
		span.End(err)
	}
	if s.audit != nil {
		entry := AuditEntry{Operation: operation, Status: AuditStatusApplied, At: s.nowFn()}
		if err != nil {
			entry.Status = AuditStatusRejected
			entry.Error = err.Error()
		}
		entry.Violations = res.Violations
		s.audit.Record(ctx, entry)
	}
	return res, err
}

// Calendar -------------------------------------------------------------------

// AddEvent appends a calendar event and persists the collection.
func (s *Service) AddEvent(ctx context.Context, title, date, timeOfDay string, priority Priority) (CalendarEvent, Result, error) {
	var created CalendarEvent
	res, err := s.run(ctx, "add_event", func(tx Transaction) error {
		var err error
		created, err = tx.AddEvent(title, date, timeOfDay, priority)
		return err
	})
	return created, res, err
}

// RemoveEvent deletes the event with the given id.
func (s *Service) RemoveEvent(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "remove_event", func(tx Transaction) error {
		return tx.RemoveEvent(id)
	})
}

// ClearEvents empties the calendar.
func (s *Service) ClearEvents(ctx context.Context) (Result, error) {
	return s.run(ctx, "clear_events", func(tx Transaction) error {
		return tx.ClearEvents()
	})
}

// Todos ----------------------------------------------------------------------

// AddTodo appends an open task.
func (s *Service) AddTodo(ctx context.Context, title string, priority Priority) (Todo, Result, error) {
	var created Todo
	res, err := s.run(ctx, "add_todo", func(tx Transaction) error {
		var err error
		created, err = tx.AddTodo(title, priority)
		return err
	})
	return created, res, err
}

// ToggleTodo flips the done flag of the matching todo.
func (s *Service) ToggleTodo(ctx context.Context, id string) (Todo, Result, error) {
	var updated Todo
	res, err := s.run(ctx, "toggle_todo", func(tx Transaction) error {
		var err error
		updated, err = tx.ToggleTodo(id)
		return err
	})
	return updated, res, err
}

// SetTodoPriority updates the priority of the matching todo.
func (s *Service) SetTodoPriority(ctx context.Context, id string, priority Priority) (Todo, Result, error) {
	var updated Todo
	res, err := s.run(ctx, "set_todo_priority", func(tx Transaction) error {
		var err error
		updated, err = tx.SetTodoPriority(id, priority)
		return err
	})
	return updated, res, err
}

// DeleteTodo removes the matching todo.
func (s *Service) DeleteTodo(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_todo", func(tx Transaction) error {
		return tx.DeleteTodo(id)
	})
}

// ClearTodos removes every todo.
func (s *Service) ClearTodos(ctx context.Context) (Result, error) {
	return s.run(ctx, "clear_todos", func(tx Transaction) error {
		return tx.ClearTodos()
	})
}

// ClearCompletedTodos removes done todos only, reporting how many went away.
func (s *Service) ClearCompletedTodos(ctx context.Context) (int, Result, error) {
	var removed int
	res, err := s.run(ctx, "clear_completed_todos", func(tx Transaction) error {
		var err error
		removed, err = tx.ClearCompletedTodos()
		return err
	})
	return removed, res, err
}

// Shopping -------------------------------------------------------------------

// AddShoppingList creates a new, empty shopping list.
func (s *Service) AddShoppingList(ctx context.Context, name string) (ShoppingList, Result, error) {
	var created ShoppingList
	res, err := s.run(ctx, "add_shopping_list", func(tx Transaction) error {
		var err error
		created, err = tx.AddShoppingList(name)
		return err
	})
	return created, res, err
}

// RemoveShoppingList deletes a list and its items. Removing the default list
// is rejected.
func (s *Service) RemoveShoppingList(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "remove_shopping_list", func(tx Transaction) error {
		return tx.RemoveShoppingList(id)
	})
}

// AddShoppingItem appends an unchecked item to the matching list.
func (s *Service) AddShoppingItem(ctx context.Context, listID, name, quantity string) (ShoppingItem, Result, error) {
	var created ShoppingItem
	res, err := s.run(ctx, "add_shopping_item", func(tx Transaction) error {
		var err error
		created, err = tx.AddShoppingItem(listID, name, quantity)
		return err
	})
	return created, res, err
}

// ToggleShoppingItem flips the done flag on the matching item.
func (s *Service) ToggleShoppingItem(ctx context.Context, listID, itemID string) (ShoppingItem, Result, error) {
	var updated ShoppingItem
	res, err := s.run(ctx, "toggle_shopping_item", func(tx Transaction) error {
		var err error
		updated, err = tx.ToggleShoppingItem(listID, itemID)
		return err
	})
	return updated, res, err
}

// RemoveShoppingItem deletes an item from its list.
func (s *Service) RemoveShoppingItem(ctx context.Context, listID, itemID string) (Result, error) {
	return s.run(ctx, "remove_shopping_item", func(tx Transaction) error {
		return tx.RemoveShoppingItem(listID, itemID)
	})
}

// ClearShoppingList empties a list without deleting it.
func (s *Service) ClearShoppingList(ctx context.Context, listID string) (Result, error) {
	return s.run(ctx, "clear_shopping_list", func(tx Transaction) error {
		return tx.ClearShoppingList(listID)
	})
}

// Family ---------------------------------------------------------------------

// AddMember appends a household member.
func (s *Service) AddMember(ctx context.Context, name string, role Role) (FamilyMember, Result, error) {
	var created FamilyMember
	res, err := s.run(ctx, "add_member", func(tx Transaction) error {
		var err error
		created, err = tx.AddMember(name, role)
		return err
	})
	return created, res, err
}

// UpdateMember mutates a member using the provided mutator.
func (s *Service) UpdateMember(ctx context.Context, id string, mutator func(*FamilyMember) error) (FamilyMember, Result, error) {
	var updated FamilyMember
	res, err := s.run(ctx, "update_member", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateMember(id, mutator)
		return err
	})
	return updated, res, err
}

// RemoveMember deletes a member. Removing the last owner is rejected; when
// the removed member was the current user the pointer moves to a remaining
// member, or clears when none remain.
func (s *Service) RemoveMember(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "remove_member", func(tx Transaction) error {
		return tx.RemoveMember(id)
	})
}

// SetRole updates a member's role. Demoting the last owner is rejected.
func (s *Service) SetRole(ctx context.Context, id string, role Role) (FamilyMember, Result, error) {
	var updated FamilyMember
	res, err := s.run(ctx, "set_role", func(tx Transaction) error {
		var err error
		updated, err = tx.SetRole(id, role)
		return err
	})
	return updated, res, err
}

// SetCurrentUser points the session at an existing member.
func (s *Service) SetCurrentUser(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "set_current_user", func(tx Transaction) error {
		return tx.SetCurrentUser(id)
	})
}

// CanManageMembers reports the advisory role gate consumers apply before
// exposing member management: owners and admins may manage, members may not.
// The store-level invariants above hold regardless of this gate.
func CanManageMembers(role Role) bool {
	return role == domain.RoleOwner || role == domain.RoleAdmin
}
