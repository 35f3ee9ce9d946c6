package core

import (
	"context"
	"fmt"

	"familycore/pkg/domain"
)

// NewDefaultListRule returns the in-transaction rule guaranteeing that exactly
// one shopping list with the default id exists. The default list is the
// fallback "active list" for consumers whose selection points at a list that
// was deleted, so it can never go away.
func NewDefaultListRule() domain.Rule {
	return defaultListRule{}
}

type defaultListRule struct{}

func (defaultListRule) Name() string { return "default_list_presence" }

func (defaultListRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	count := 0
	for _, l := range view.ListShoppingLists() {
		if l.ID == domain.DefaultShoppingListID {
			count++
		}
	}
	if count == 1 {
		return domain.Result{}, nil
	}
	return domain.Result{Violations: []domain.Violation{{
		Rule:     "default_list_presence",
		Severity: domain.SeverityBlock,
		Message:  fmt.Sprintf("expected exactly one %q list, found %d", domain.DefaultShoppingListID, count),
		Entity:   domain.EntityShoppingList,
		EntityID: domain.DefaultShoppingListID,
	}}}, nil
}
