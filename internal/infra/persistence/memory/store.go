// Package memory provides the in-memory implementation of the familycore
// persistence store. Durable backends wrap it and snapshot its state.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"familycore/pkg/domain"

	"github.com/google/uuid"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// CalendarEvent aliases domain.CalendarEvent for in-memory operations.
	CalendarEvent = domain.CalendarEvent
	// Todo aliases domain.Todo.
	Todo = domain.Todo
	// ShoppingList aliases domain.ShoppingList.
	ShoppingList = domain.ShoppingList
	// ShoppingItem aliases domain.ShoppingItem.
	ShoppingItem = domain.ShoppingItem
	// FamilyMember aliases domain.FamilyMember.
	FamilyMember = domain.FamilyMember
	// FamilyState aliases domain.FamilyState.
	FamilyState = domain.FamilyState
	// Snapshot aliases domain.Snapshot, the persisted state shape.
	Snapshot = domain.Snapshot
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	events []CalendarEvent
	todos  []Todo
	lists  []ShoppingList
	family FamilyState
}

func cloneList(l ShoppingList) ShoppingList {
	cp := l
	cp.Items = append([]ShoppingItem(nil), l.Items...)
	return cp
}

func cloneFamily(f FamilyState) FamilyState {
	cp := f
	cp.Members = append([]FamilyMember(nil), f.Members...)
	return cp
}

func (s memoryState) clone() memoryState {
	cloned := memoryState{
		events: append([]CalendarEvent(nil), s.events...),
		todos:  append([]Todo(nil), s.todos...),
		lists:  make([]ShoppingList, 0, len(s.lists)),
		family: cloneFamily(s.family),
	}
	for _, l := range s.lists {
		cloned.lists = append(cloned.lists, cloneList(l))
	}
	return cloned
}

// Store is the in-memory transactional store for the four domain collections.
// Mutations run against a cloned state; registered rules are evaluated before
// commit and blocking violations discard the clone, so committed state never
// observes an invariant violation.
type Store struct {
	mu        sync.RWMutex
	state     memoryState
	engine    *RulesEngine
	listeners []func(Snapshot)
	nowFn     func() time.Time
	idFn      func() string
}

// NewStore constructs an in-memory store backed by the provided rules engine.
// The default shopping list is seeded immediately so the invariant holds from
// the first transaction on.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
		idFn:   uuid.NewString,
	}
	now := s.nowFn()
	s.state.lists = []ShoppingList{{
		Base:  domain.Base{ID: domain.DefaultShoppingListID, CreatedAt: now, UpdatedAt: now},
		Name:  "Family list",
		Items: []ShoppingItem{},
	}}
	return s
}

// OnCommit registers a listener called with the committed snapshot after each
// successful transaction. Listeners run outside the store lock.
func (s *Store) OnCommit(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

type view struct {
	state *memoryState
}

// ListEvents returns all calendar events in insertion order.
func (v view) ListEvents() []CalendarEvent {
	return append([]CalendarEvent(nil), v.state.events...)
}

// ListTodos returns all todos in insertion order.
func (v view) ListTodos() []Todo {
	return append([]Todo(nil), v.state.todos...)
}

// ListShoppingLists returns all shopping lists with their items.
func (v view) ListShoppingLists() []ShoppingList {
	out := make([]ShoppingList, 0, len(v.state.lists))
	for _, l := range v.state.lists {
		out = append(out, cloneList(l))
	}
	return out
}

// Family returns the member collection and current-user pointer.
func (v view) Family() FamilyState {
	return cloneFamily(v.state.family)
}

// FindEvent retrieves a calendar event by id.
func (v view) FindEvent(id string) (CalendarEvent, bool) {
	for _, e := range v.state.events {
		if e.ID == id {
			return e, true
		}
	}
	return CalendarEvent{}, false
}

// FindTodo retrieves a todo by id.
func (v view) FindTodo(id string) (Todo, bool) {
	for _, t := range v.state.todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// FindShoppingList retrieves a shopping list by id.
func (v view) FindShoppingList(id string) (ShoppingList, bool) {
	for _, l := range v.state.lists {
		if l.ID == id {
			return cloneList(l), true
		}
	}
	return ShoppingList{}, false
}

// FindMember retrieves a family member by id.
func (v view) FindMember(id string) (FamilyMember, bool) {
	for _, m := range v.state.family.Members {
		if m.ID == id {
			return m, true
		}
	}
	return FamilyMember{}, false
}

// RunInTransaction executes fn within a transactional copy of the store state.
// Rules are evaluated against the mutated copy; blocking violations abort the
// commit and the previous state stays in place.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		res, err := s.engine.Evaluate(ctx, view{state: &tx.state}, tx.changes)
		if err != nil {
			s.mu.Unlock()
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			s.mu.Unlock()
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	snap := snapshotFromState(s.state)
	listeners := append(make([]func(Snapshot), 0, len(s.listeners)), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return fn(view{state: &snapshot})
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

func (tx *transaction) newBase() domain.Base {
	return domain.Base{ID: tx.store.idFn(), CreatedAt: tx.now, UpdatedAt: tx.now}
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return view{state: &tx.state}
}

func normalizePriority(p domain.Priority) domain.Priority {
	if !p.Valid() {
		return domain.PriorityMedium
	}
	return p
}

// Calendar -------------------------------------------------------------------

// AddEvent appends a calendar event. The time string is stored verbatim;
// malformed values are accepted.
func (tx *transaction) AddEvent(title, date, timeOfDay string, priority domain.Priority) (CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return CalendarEvent{}, domain.ErrEmptyInput
	}
	p := normalizePriority(priority)
	if p == domain.PriorityUrgent {
		// events rank low/medium/high only
		p = domain.PriorityHigh
	}
	event := CalendarEvent{
		Base:     tx.newBase(),
		Title:    title,
		Date:     date,
		Time:     timeOfDay,
		Priority: p,
	}
	tx.state.events = append(tx.state.events, event)
	tx.recordChange(Change{Entity: domain.EntityCalendarEvent, Action: domain.ActionCreate, After: event})
	return event, nil
}

// RemoveEvent deletes the event with the given id.
func (tx *transaction) RemoveEvent(id string) error {
	for i, e := range tx.state.events {
		if e.ID == id {
			tx.state.events = append(tx.state.events[:i:i], tx.state.events[i+1:]...)
			tx.recordChange(Change{Entity: domain.EntityCalendarEvent, Action: domain.ActionDelete, Before: e})
			return nil
		}
	}
	return domain.ErrNotFound{Entity: domain.EntityCalendarEvent, ID: id}
}

// ClearEvents empties the calendar.
func (tx *transaction) ClearEvents() error {
	for _, e := range tx.state.events {
		tx.recordChange(Change{Entity: domain.EntityCalendarEvent, Action: domain.ActionDelete, Before: e})
	}
	tx.state.events = nil
	return nil
}

// Todos ----------------------------------------------------------------------

// AddTodo appends an open task.
func (tx *transaction) AddTodo(title string, priority domain.Priority) (Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Todo{}, domain.ErrEmptyInput
	}
	todo := Todo{
		Base:     tx.newBase(),
		Title:    title,
		Priority: normalizePriority(priority),
	}
	tx.state.todos = append(tx.state.todos, todo)
	tx.recordChange(Change{Entity: domain.EntityTodo, Action: domain.ActionCreate, After: todo})
	return todo, nil
}

func (tx *transaction) updateTodo(id string, mutate func(*Todo)) (Todo, error) {
	for i, t := range tx.state.todos {
		if t.ID == id {
			before := t
			mutate(&t)
			t.ID = id
			t.UpdatedAt = tx.now
			tx.state.todos[i] = t
			tx.recordChange(Change{Entity: domain.EntityTodo, Action: domain.ActionUpdate, Before: before, After: t})
			return t, nil
		}
	}
	return Todo{}, domain.ErrNotFound{Entity: domain.EntityTodo, ID: id}
}

// ToggleTodo flips the done flag on the matching todo.
func (tx *transaction) ToggleTodo(id string) (Todo, error) {
	return tx.updateTodo(id, func(t *Todo) { t.Done = !t.Done })
}

// SetTodoPriority updates the priority of the matching todo.
func (tx *transaction) SetTodoPriority(id string, priority domain.Priority) (Todo, error) {
	return tx.updateTodo(id, func(t *Todo) { t.Priority = normalizePriority(priority) })
}

// DeleteTodo removes the matching todo.
func (tx *transaction) DeleteTodo(id string) error {
	for i, t := range tx.state.todos {
		if t.ID == id {
			tx.state.todos = append(tx.state.todos[:i:i], tx.state.todos[i+1:]...)
			tx.recordChange(Change{Entity: domain.EntityTodo, Action: domain.ActionDelete, Before: t})
			return nil
		}
	}
	return domain.ErrNotFound{Entity: domain.EntityTodo, ID: id}
}

// ClearTodos removes every todo.
func (tx *transaction) ClearTodos() error {
	for _, t := range tx.state.todos {
		tx.recordChange(Change{Entity: domain.EntityTodo, Action: domain.ActionDelete, Before: t})
	}
	tx.state.todos = nil
	return nil
}

// ClearCompletedTodos removes done todos only and reports how many were removed.
func (tx *transaction) ClearCompletedTodos() (int, error) {
	kept := tx.state.todos[:0:0]
	removed := 0
	for _, t := range tx.state.todos {
		if t.Done {
			removed++
			tx.recordChange(Change{Entity: domain.EntityTodo, Action: domain.ActionDelete, Before: t})
			continue
		}
		kept = append(kept, t)
	}
	tx.state.todos = kept
	return removed, nil
}

// Shopping -------------------------------------------------------------------

// AddShoppingList creates a new, empty list.
func (tx *transaction) AddShoppingList(name string) (ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ShoppingList{}, domain.ErrEmptyInput
	}
	list := ShoppingList{
		Base:  tx.newBase(),
		Name:  name,
		Items: []ShoppingItem{},
	}
	tx.state.lists = append(tx.state.lists, cloneList(list))
	tx.recordChange(Change{Entity: domain.EntityShoppingList, Action: domain.ActionCreate, After: cloneList(list)})
	return list, nil
}

// RemoveShoppingList deletes a list together with its items. Removal of the
// default list is blocked at commit by the default-list rule.
func (tx *transaction) RemoveShoppingList(id string) error {
	for i, l := range tx.state.lists {
		if l.ID == id {
			tx.state.lists = append(tx.state.lists[:i:i], tx.state.lists[i+1:]...)
			tx.recordChange(Change{Entity: domain.EntityShoppingList, Action: domain.ActionDelete, Before: cloneList(l)})
			return nil
		}
	}
	return domain.ErrNotFound{Entity: domain.EntityShoppingList, ID: id}
}

func (tx *transaction) updateList(listID string, mutate func(*ShoppingList) error) (ShoppingList, error) {
	for i, l := range tx.state.lists {
		if l.ID == listID {
			updated := cloneList(l)
			if err := mutate(&updated); err != nil {
				return ShoppingList{}, err
			}
			updated.ID = listID
			updated.UpdatedAt = tx.now
			tx.state.lists[i] = updated
			tx.recordChange(Change{Entity: domain.EntityShoppingList, Action: domain.ActionUpdate, Before: cloneList(l), After: cloneList(updated)})
			return cloneList(updated), nil
		}
	}
	return ShoppingList{}, domain.ErrNotFound{Entity: domain.EntityShoppingList, ID: listID}
}

// AddShoppingItem appends an unchecked item to the matching list.
func (tx *transaction) AddShoppingItem(listID, name, quantity string) (ShoppingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ShoppingItem{}, domain.ErrEmptyInput
	}
	item := ShoppingItem{
		Base:     tx.newBase(),
		Name:     name,
		Quantity: quantity,
	}
	_, err := tx.updateList(listID, func(l *ShoppingList) error {
		l.Items = append(l.Items, item)
		return nil
	})
	if err != nil {
		return ShoppingItem{}, err
	}
	return item, nil
}

// ToggleShoppingItem flips the done flag on the matching item within the matching list.
func (tx *transaction) ToggleShoppingItem(listID, itemID string) (ShoppingItem, error) {
	var toggled ShoppingItem
	_, err := tx.updateList(listID, func(l *ShoppingList) error {
		for i, item := range l.Items {
			if item.ID == itemID {
				item.Done = !item.Done
				item.UpdatedAt = tx.now
				l.Items[i] = item
				toggled = item
				return nil
			}
		}
		return domain.ErrNotFound{Entity: domain.EntityShoppingItem, ID: itemID}
	})
	if err != nil {
		return ShoppingItem{}, err
	}
	return toggled, nil
}

// RemoveShoppingItem deletes an item from its list.
func (tx *transaction) RemoveShoppingItem(listID, itemID string) error {
	_, err := tx.updateList(listID, func(l *ShoppingList) error {
		for i, item := range l.Items {
			if item.ID == itemID {
				l.Items = append(l.Items[:i:i], l.Items[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound{Entity: domain.EntityShoppingItem, ID: itemID}
	})
	return err
}

// ClearShoppingList empties a list without deleting it.
func (tx *transaction) ClearShoppingList(listID string) error {
	_, err := tx.updateList(listID, func(l *ShoppingList) error {
		l.Items = []ShoppingItem{}
		return nil
	})
	return err
}

// Family ---------------------------------------------------------------------

// AddMember appends a household member. An invalid role falls back to member.
func (tx *transaction) AddMember(name string, role domain.Role) (FamilyMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return FamilyMember{}, domain.ErrEmptyInput
	}
	if !role.Valid() {
		role = domain.RoleMember
	}
	member := FamilyMember{
		Base: tx.newBase(),
		Name: name,
		Role: role,
	}
	tx.state.family.Members = append(tx.state.family.Members, member)
	tx.recordChange(Change{Entity: domain.EntityFamilyMember, Action: domain.ActionCreate, After: member})
	return member, nil
}

// UpdateMember mutates a member using the provided mutator function.
func (tx *transaction) UpdateMember(id string, mutator func(*FamilyMember) error) (FamilyMember, error) {
	for i, m := range tx.state.family.Members {
		if m.ID == id {
			before := m
			if err := mutator(&m); err != nil {
				return FamilyMember{}, err
			}
			m.ID = id
			m.UpdatedAt = tx.now
			tx.state.family.Members[i] = m
			tx.recordChange(Change{Entity: domain.EntityFamilyMember, Action: domain.ActionUpdate, Before: before, After: m})
			return m, nil
		}
	}
	return FamilyMember{}, domain.ErrNotFound{Entity: domain.EntityFamilyMember, ID: id}
}

// RemoveMember deletes a member. When the removed member was the current user
// the pointer moves to the first remaining member, or clears when none remain.
// Removing the last owner is blocked at commit by the owner-preservation rule.
func (tx *transaction) RemoveMember(id string) error {
	for i, m := range tx.state.family.Members {
		if m.ID != id {
			continue
		}
		tx.state.family.Members = append(tx.state.family.Members[:i:i], tx.state.family.Members[i+1:]...)
		tx.recordChange(Change{Entity: domain.EntityFamilyMember, Action: domain.ActionDelete, Before: m})
		if tx.state.family.CurrentUserID == id {
			next := ""
			if len(tx.state.family.Members) > 0 {
				next = tx.state.family.Members[0].ID
			}
			tx.state.family.CurrentUserID = next
			tx.recordChange(Change{Entity: domain.EntityCurrentUser, Action: domain.ActionUpdate, Before: id, After: next})
		}
		return nil
	}
	return domain.ErrNotFound{Entity: domain.EntityFamilyMember, ID: id}
}

// SetRole updates a member's role. Demoting the last owner is blocked at
// commit by the owner-preservation rule; owner grants and transfers are
// otherwise allowed.
func (tx *transaction) SetRole(id string, role domain.Role) (FamilyMember, error) {
	if !role.Valid() {
		return FamilyMember{}, domain.ErrInvalidRole
	}
	return tx.UpdateMember(id, func(m *FamilyMember) error {
		m.Role = role
		return nil
	})
}

// SetCurrentUser points the session at an existing member.
func (tx *transaction) SetCurrentUser(id string) error {
	if _, ok := (view{state: &tx.state}).FindMember(id); !ok {
		return domain.ErrNotFound{Entity: domain.EntityFamilyMember, ID: id}
	}
	before := tx.state.family.CurrentUserID
	tx.state.family.CurrentUserID = id
	tx.recordChange(Change{Entity: domain.EntityCurrentUser, Action: domain.ActionUpdate, Before: before, After: id})
	return nil
}

// Read helpers ---------------------------------------------------------------

// ListEvents returns all calendar events from committed state.
func (s *Store) ListEvents() []CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CalendarEvent(nil), s.state.events...)
}

// ListTodos returns all todos from committed state.
func (s *Store) ListTodos() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Todo(nil), s.state.todos...)
}

// ListShoppingLists returns all shopping lists from committed state.
func (s *Store) ListShoppingLists() []ShoppingList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ShoppingList, 0, len(s.state.lists))
	for _, l := range s.state.lists {
		out = append(out, cloneList(l))
	}
	return out
}

// Family returns the committed member collection and current-user pointer.
func (s *Store) Family() FamilyState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFamily(s.state.family)
}
