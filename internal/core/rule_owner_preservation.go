package core

import (
	"context"
	"fmt"

	"familycore/pkg/domain"
)

// NewOwnerPreservationRule returns the in-transaction rule guaranteeing that a
// non-empty member collection always contains at least one owner. It blocks
// both removal of the last owner and a role change that would demote them.
func NewOwnerPreservationRule() domain.Rule {
	return ownerPreservationRule{}
}

type ownerPreservationRule struct{}

func (ownerPreservationRule) Name() string { return "owner_preservation" }

func (ownerPreservationRule) Evaluate(_ context.Context, view domain.RuleView, _ []domain.Change) (domain.Result, error) {
	family := view.Family()
	if len(family.Members) == 0 {
		return domain.Result{}, nil
	}
	for _, m := range family.Members {
		if m.Role == domain.RoleOwner {
			return domain.Result{}, nil
		}
	}
	return domain.Result{Violations: []domain.Violation{{
		Rule:     "owner_preservation",
		Severity: domain.SeverityBlock,
		Message:  fmt.Sprintf("family of %d members has no owner", len(family.Members)),
		Entity:   domain.EntityFamilyMember,
	}}}, nil
}
