package repository_test

import (
	"context"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

func runAssetRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListActiveByDepartment skips inactive processes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		processes := []*model.Process{
			{ID: "proc-payroll", DepartmentID: "dept-finance", Name: "Payroll", OwnerID: "user-alice", Active: true},
			{ID: "proc-legacy-billing", DepartmentID: "dept-finance", Name: "Legacy Billing", OwnerID: "user-bob", Active: false},
			{ID: "proc-hiring", DepartmentID: "dept-hr", Name: "Hiring", OwnerID: "user-carol", Active: true},
		}
		for _, p := range processes {
			if _, err := repo.Process().Create(ctx, p); err != nil {
				t.Fatalf("failed to create process %s: %v", p.ID, err)
			}
		}

		listed, err := repo.Process().ListActiveByDepartment(ctx, "dept-finance")
		if err != nil {
			t.Fatalf("failed to list processes: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 process, got %d", len(listed))
		}
		if listed[0].ID != "proc-payroll" {
			t.Errorf("expected proc-payroll, got %s", listed[0].ID)
		}
	})

	t.Run("ListActiveByApplication matches linked processes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		processes := []*model.Process{
			{
				ID: "proc-payroll", DepartmentID: "dept-finance", Name: "Payroll",
				ApplicationIDs: []types.ApplicationID{"app-erp", "app-bank-gateway"}, Active: true,
			},
			{
				ID: "proc-reporting", DepartmentID: "dept-finance", Name: "Reporting",
				ApplicationIDs: []types.ApplicationID{"app-erp"}, Active: true,
			},
			{
				ID: "proc-archived", DepartmentID: "dept-finance", Name: "Archived",
				ApplicationIDs: []types.ApplicationID{"app-erp"}, Active: false,
			},
		}
		for _, p := range processes {
			if _, err := repo.Process().Create(ctx, p); err != nil {
				t.Fatalf("failed to create process %s: %v", p.ID, err)
			}
		}

		listed, err := repo.Process().ListActiveByApplication(ctx, "app-erp")
		if err != nil {
			t.Fatalf("failed to list processes: %v", err)
		}
		if len(listed) != 2 {
			t.Fatalf("expected 2 processes, got %d", len(listed))
		}
	})

	t.Run("SetDerivedRTO stores and clears the value", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Application().Create(ctx, &model.Application{
			ID:     "app-erp",
			Name:   "ERP",
			Active: true,
		}); err != nil {
			t.Fatalf("failed to create application: %v", err)
		}

		rto := &model.RTOValue{OptionID: "rto-4h", Label: "4 hours", DurationMinutes: 240}
		if err := repo.Application().SetDerivedRTO(ctx, "app-erp", rto); err != nil {
			t.Fatalf("failed to set derived RTO: %v", err)
		}

		retrieved, err := repo.Application().Get(ctx, "app-erp")
		if err != nil {
			t.Fatalf("failed to get application: %v", err)
		}
		if retrieved.DerivedRTO == nil || retrieved.DerivedRTO.DurationMinutes != 240 {
			t.Errorf("expected derived RTO of 240 minutes, got %v", retrieved.DerivedRTO)
		}

		if err := repo.Application().SetDerivedRTO(ctx, "app-erp", nil); err != nil {
			t.Fatalf("failed to clear derived RTO: %v", err)
		}

		cleared, err := repo.Application().Get(ctx, "app-erp")
		if err != nil {
			t.Fatalf("failed to get application: %v", err)
		}
		if cleared.DerivedRTO != nil {
			t.Errorf("expected nil derived RTO, got %v", cleared.DerivedRTO)
		}
	})
}

func TestMemoryAssetRepository(t *testing.T) {
	runAssetRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAssetRepository(t *testing.T) {
	runAssetRepositoryTest(t, newFirestoreRepository)
}
