package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/repository/firestore"
	"github.com/bcm-lab/atropos/pkg/repository/memory"
)

func floatPtr(v float64) *float64 {
	return &v
}

func runCatalogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and get category", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Category().Create(ctx, &model.Category{
			ID:          "cat-financial",
			Name:        "Financial",
			Description: "Financial impact of an outage",
			Active:      true,
		})
		if err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
		if created.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}

		retrieved, err := repo.Category().Get(ctx, "cat-financial")
		if err != nil {
			t.Fatalf("failed to get category: %v", err)
		}
		if retrieved.Name != "Financial" {
			t.Errorf("expected name=Financial, got %s", retrieved.Name)
		}
		if !retrieved.Active {
			t.Error("expected active category")
		}
	})

	t.Run("Get returns error for non-existent category", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Category().Get(ctx, "cat-missing")
		if err == nil {
			t.Error("expected error for non-existent category")
		}
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Category().Create(ctx, &model.Category{
			ID:     "cat-operational",
			Name:   "Operational",
			Active: true,
		})
		if err != nil {
			t.Fatalf("failed to create category: %v", err)
		}

		updated, err := repo.Category().Update(ctx, &model.Category{
			ID:     "cat-operational",
			Name:   "Operational Impact",
			Active: false,
		})
		if err != nil {
			t.Fatalf("failed to update category: %v", err)
		}
		if updated.Name != "Operational Impact" {
			t.Errorf("expected name=Operational Impact, got %s", updated.Name)
		}
		if updated.Active {
			t.Error("expected inactive category after update")
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected createdAt=%v, got %v", created.CreatedAt, updated.CreatedAt)
		}
	})

	t.Run("Parameter definitions round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		param := &model.Parameter{
			ID:         "param-revenue-loss",
			CategoryID: "cat-financial",
			Name:       "Revenue Loss",
			Kind:       types.RatingKindQuantitative,
			Definitions: []model.RatingDefinition{
				{Label: "Low", Score: 1, MinValue: floatPtr(0), MaxValue: floatPtr(10), Order: 1},
				{Label: "High", Score: 4, MinValue: floatPtr(11), MaxValue: nil, Order: 2},
			},
			Active: true,
		}

		if _, err := repo.Parameter().Create(ctx, param); err != nil {
			t.Fatalf("failed to create parameter: %v", err)
		}

		retrieved, err := repo.Parameter().Get(ctx, "param-revenue-loss")
		if err != nil {
			t.Fatalf("failed to get parameter: %v", err)
		}
		if retrieved.Kind != types.RatingKindQuantitative {
			t.Errorf("expected quantitative kind, got %s", retrieved.Kind)
		}
		if len(retrieved.Definitions) != 2 {
			t.Fatalf("expected 2 definitions, got %d", len(retrieved.Definitions))
		}
		if retrieved.Definitions[0].MaxValue == nil || *retrieved.Definitions[0].MaxValue != 10 {
			t.Errorf("expected max_value=10, got %v", retrieved.Definitions[0].MaxValue)
		}
		if retrieved.Definitions[1].MaxValue != nil {
			t.Errorf("expected open-ended last range, got %v", retrieved.Definitions[1].MaxValue)
		}
	})

	t.Run("ListByCategory filters parameters", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		params := []*model.Parameter{
			{
				ID: "param-customer-impact", CategoryID: "cat-customer", Name: "Customer Impact",
				Kind: types.RatingKindQualitative,
				Definitions: []model.RatingDefinition{
					{Label: "Minor", Score: 1, Order: 1},
					{Label: "Severe", Score: 4, Order: 2},
				},
				Active: true,
			},
			{
				ID: "param-regulatory", CategoryID: "cat-compliance", Name: "Regulatory Exposure",
				Kind: types.RatingKindQualitative,
				Definitions: []model.RatingDefinition{
					{Label: "None", Score: 0, Order: 1},
					{Label: "Fines", Score: 3, Order: 2},
				},
				Active: true,
			},
		}
		for _, p := range params {
			if _, err := repo.Parameter().Create(ctx, p); err != nil {
				t.Fatalf("failed to create parameter %s: %v", p.ID, err)
			}
		}

		listed, err := repo.Parameter().ListByCategory(ctx, "cat-customer")
		if err != nil {
			t.Fatalf("failed to list parameters: %v", err)
		}
		if len(listed) != 1 {
			t.Fatalf("expected 1 parameter, got %d", len(listed))
		}
		if listed[0].ID != "param-customer-impact" {
			t.Errorf("expected param-customer-impact, got %s", listed[0].ID)
		}
	})

	t.Run("RTO options listed in catalog order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		options := []*model.RTOOption{
			{ID: "rto-24h", Label: "24 hours", DurationMinutes: 1440, Order: 3, Active: true},
			{ID: "rto-1h", Label: "1 hour", DurationMinutes: 60, Order: 1, Active: true},
			{ID: "rto-4h", Label: "4 hours", DurationMinutes: 240, Order: 2, Active: true},
		}
		for _, o := range options {
			if _, err := repo.RTOOption().Create(ctx, o); err != nil {
				t.Fatalf("failed to create RTO option %s: %v", o.ID, err)
			}
		}

		listed, err := repo.RTOOption().List(ctx)
		if err != nil {
			t.Fatalf("failed to list RTO options: %v", err)
		}
		if len(listed) != 3 {
			t.Fatalf("expected 3 options, got %d", len(listed))
		}
		if listed[0].ID != "rto-1h" || listed[1].ID != "rto-4h" || listed[2].ID != "rto-24h" {
			t.Errorf("options out of order: %s, %s, %s", listed[0].ID, listed[1].ID, listed[2].ID)
		}
	})
}

func TestMemoryCatalogRepository(t *testing.T) {
	runCatalogRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreCatalogRepository(t *testing.T) {
	runCatalogRepositoryTest(t, newFirestoreRepository)
}
