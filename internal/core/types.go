package core

import "familycore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Priority           = domain.Priority
	Role               = domain.Role
	Severity           = domain.Severity
	Base               = domain.Base
	CalendarEvent      = domain.CalendarEvent
	Todo               = domain.Todo
	ShoppingList       = domain.ShoppingList
	ShoppingItem       = domain.ShoppingItem
	FamilyMember       = domain.FamilyMember
	FamilyState        = domain.FamilyState
	Snapshot           = domain.Snapshot
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

const (
	EntityCalendarEvent = domain.EntityCalendarEvent
	EntityTodo          = domain.EntityTodo
	EntityShoppingList  = domain.EntityShoppingList
	EntityShoppingItem  = domain.EntityShoppingItem
	EntityFamilyMember  = domain.EntityFamilyMember
	EntityCurrentUser   = domain.EntityCurrentUser
)

const (
	PriorityLow    = domain.PriorityLow
	PriorityMedium = domain.PriorityMedium
	PriorityHigh   = domain.PriorityHigh
	PriorityUrgent = domain.PriorityUrgent
)

const (
	RoleOwner  = domain.RoleOwner
	RoleAdmin  = domain.RoleAdmin
	RoleMember = domain.RoleMember
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
