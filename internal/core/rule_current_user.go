package core

import (
	"context"
	"fmt"

	"familycore/pkg/domain"
)

// NewCurrentUserResolutionRule returns the in-transaction rule guaranteeing
// the session current-user pointer is either empty or resolves to an existing
// member. The store repairs the pointer when its target is removed; this rule
// keeps any other write path honest.
func NewCurrentUserResolutionRule() domain.Rule {
	return currentUserResolutionRule{}
}

type currentUserResolutionRule struct{}

func (currentUserResolutionRule) Name() string { return "current_user_resolution" }

func (currentUserResolutionRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	family := view.Family()
	if family.CurrentUserID == "" {
		return domain.Result{}, nil
	}
	if _, ok := view.FindMember(family.CurrentUserID); ok {
		return domain.Result{}, nil
	}
	return domain.Result{Violations: []domain.Violation{{
		Rule:     "current_user_resolution",
		Severity: domain.SeverityBlock,
		Message:  fmt.Sprintf("current user %s does not resolve to a member", family.CurrentUserID),
		Entity:   domain.EntityCurrentUser,
		EntityID: family.CurrentUserID,
	}}}, nil
}
