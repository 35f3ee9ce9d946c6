// Package seed fills an empty store with plausible demo data.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/bxcodec/faker/v3"

	"familycore/internal/core"
	"familycore/pkg/domain"
)

var memberColors = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12"}

// Demo populates the service with a small household: members with roles, a
// few events around today, todos and shopping items. It is a no-op when the
// store already has members.
func Demo(ctx context.Context, svc *core.Service, now time.Time) error {
	if len(svc.Store().Family().Members) > 0 {
		return nil
	}

	roles := []domain.Role{domain.RoleOwner, domain.RoleAdmin, domain.RoleMember, domain.RoleMember}
	var ownerID string
	for i, role := range roles {
		m, _, err := svc.AddMember(ctx, faker.FirstName(), role)
		if err != nil {
			return fmt.Errorf("seed member: %w", err)
		}
		email := faker.Email()
		color := memberColors[i%len(memberColors)]
		if _, _, err := svc.UpdateMember(ctx, m.ID, func(fm *domain.FamilyMember) error {
			fm.Email = email
			fm.Color = color
			return nil
		}); err != nil {
			return fmt.Errorf("seed member profile: %w", err)
		}
		if role == domain.RoleOwner && ownerID == "" {
			ownerID = m.ID
		}
	}
	if _, err := svc.SetCurrentUser(ctx, ownerID); err != nil {
		return fmt.Errorf("seed current user: %w", err)
	}

	day := now.Format(core.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(core.DateLayout)
	events := []struct {
		title, date, timeOfDay string
		priority               domain.Priority
	}{
		{"School pickup", day, "15:30", domain.PriorityHigh},
		{"Dentist", tomorrow, "10:00-10:45", domain.PriorityMedium},
		{"Family dinner", tomorrow, "", domain.PriorityLow},
	}
	for _, e := range events {
		if _, _, err := svc.AddEvent(ctx, e.title, e.date, e.timeOfDay, e.priority); err != nil {
			return fmt.Errorf("seed event: %w", err)
		}
	}

	todos := []struct {
		title    string
		priority domain.Priority
	}{
		{"Pay electricity bill", domain.PriorityHigh},
		{"Book summer trip", domain.PriorityMedium},
		{"Water the plants", domain.PriorityLow},
	}
	for _, t := range todos {
		if _, _, err := svc.AddTodo(ctx, t.title, t.priority); err != nil {
			return fmt.Errorf("seed todo: %w", err)
		}
	}

	for _, item := range []string{"Milk", "Bread", "Apples"} {
		if _, _, err := svc.AddShoppingItem(ctx, domain.DefaultShoppingListID, item, "1"); err != nil {
			return fmt.Errorf("seed shopping item: %w", err)
		}
	}
	return nil
}
