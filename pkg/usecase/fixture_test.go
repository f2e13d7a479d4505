package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/repository/memory"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func floatPtr(v float64) *float64 {
	return &v
}

func rtoPtr(id types.RTOOptionID) *types.RTOOptionID {
	return &id
}

// recordingPublisher collects published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []*model.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event *model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) kinds() []model.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]model.EventKind, len(p.events))
	for i, e := range p.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// waitForEvents polls until at least n events arrived or the deadline passes
func (p *recordingPublisher) waitForEvents(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		count := len(p.events)
		p.mu.Unlock()
		if count >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %v", n, p.kinds())
}

type fixture struct {
	uc        *usecase.UseCases
	repo      *memory.Memory
	publisher *recordingPublisher
}

// newFixture seeds a catalog, a framework, RTO options, and a department
// with two processes sharing one application.
func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()
	ctx := context.Background()

	repo := memory.New()
	publisher := &recordingPublisher{}
	opts = append([]usecase.Option{usecase.WithPublisher(publisher)}, opts...)
	uc := usecase.New(repo, opts...)

	_, err := uc.Catalog.CreateCategory(ctx, &model.Category{
		ID: "cat-impact", Name: "Impact", Active: true,
	})
	gt.NoError(t, err)

	params := []*model.Parameter{
		{
			ID: "param-financial", CategoryID: "cat-impact", Name: "Financial Loss",
			Kind: types.RatingKindQuantitative,
			Definitions: []model.RatingDefinition{
				{Label: "Minor", Score: 1, MinValue: floatPtr(0), MaxValue: floatPtr(10), Order: 1},
				{Label: "Moderate", Score: 3, MinValue: floatPtr(11), MaxValue: floatPtr(50), Order: 2},
				{Label: "Severe", Score: 4, MinValue: floatPtr(51), MaxValue: nil, Order: 3},
			},
			Active: true,
		},
		{
			ID: "param-customer", CategoryID: "cat-impact", Name: "Customer Impact",
			Kind: types.RatingKindQualitative,
			Definitions: []model.RatingDefinition{
				{Label: "Low", Score: 1, Order: 1},
				{Label: "Medium", Score: 2, Order: 2},
				{Label: "High", Score: 3, Order: 3},
				{Label: "Critical", Score: 4, Order: 4},
			},
			Active: true,
		},
		{
			ID: "param-regulatory", CategoryID: "cat-impact", Name: "Regulatory Exposure",
			Kind: types.RatingKindQualitative,
			Definitions: []model.RatingDefinition{
				{Label: "Low", Score: 1, Order: 1},
				{Label: "Medium", Score: 2, Order: 2},
				{Label: "High", Score: 3, Order: 3},
				{Label: "Critical", Score: 4, Order: 4},
			},
			Active: true,
		},
	}
	for _, p := range params {
		_, err := uc.Catalog.CreateParameter(ctx, p)
		gt.NoError(t, err)
	}

	_, err = uc.Framework.Create(ctx, &model.Framework{
		ID: "fw-standard", Name: "Standard BIA", Formula: types.FormulaWeightedAverage,
		Threshold: 3.0,
		Parameters: []model.FrameworkParameter{
			{ParameterID: "param-financial", Weight: 40, Order: 1},
			{ParameterID: "param-customer", Weight: 30, Order: 2},
			{ParameterID: "param-regulatory", Weight: 30, Order: 3},
		},
		Active: true,
	})
	gt.NoError(t, err)

	options := []*model.RTOOption{
		{ID: "rto-1h", Label: "1 hour", DurationMinutes: 60, Order: 1, Active: true},
		{ID: "rto-4h", Label: "4 hours", DurationMinutes: 240, Order: 2, Active: true},
		{ID: "rto-24h", Label: "24 hours", DurationMinutes: 1440, Order: 3, Active: true},
		{ID: "rto-legacy", Label: "72 hours", DurationMinutes: 4320, Order: 4, Active: false},
	}
	for _, o := range options {
		_, err := uc.Catalog.CreateRTOOption(ctx, o)
		gt.NoError(t, err)
	}

	_, err = uc.Asset.CreateDepartment(ctx, &model.Department{
		ID: "dept-finance", Name: "Finance", HeadID: "user-head", Active: true,
	})
	gt.NoError(t, err)

	apps := []*model.Application{
		{ID: "app-erp", Name: "ERP", OwnerID: "user-it", Active: true},
		{ID: "app-bank", Name: "Bank Gateway", OwnerID: "user-it", Active: true},
	}
	for _, a := range apps {
		_, err := uc.Asset.CreateApplication(ctx, a)
		gt.NoError(t, err)
	}

	processes := []*model.Process{
		{
			ID: "proc-payroll", DepartmentID: "dept-finance", Name: "Payroll",
			OwnerID:        "user-alice",
			ApplicationIDs: []types.ApplicationID{"app-erp", "app-bank"},
			Active:         true,
		},
		{
			ID: "proc-reporting", DepartmentID: "dept-finance", Name: "Reporting",
			OwnerID:        "user-bob",
			ApplicationIDs: []types.ApplicationID{"app-erp"},
			Active:         true,
		},
	}
	for _, p := range processes {
		_, err := uc.Asset.CreateProcess(ctx, p)
		gt.NoError(t, err)
	}

	return &fixture{uc: uc, repo: repo, publisher: publisher}
}

// completeRatings yields a 3.4 under the standard framework:
// 4*40 + 3*30 + 3*30 = 340 / 100
func completeRatings() []usecase.RatingInput {
	return []usecase.RatingInput{
		{ParameterID: "param-financial", Value: floatPtr(60)},
		{ParameterID: "param-customer", Label: "High"},
		{ParameterID: "param-regulatory", Label: "High"},
	}
}

// initiate runs a BIA for the fixture department and returns the instance
// with the payroll and reporting work items.
func (f *fixture) initiate(t *testing.T) (*model.BIAInstance, map[types.ProcessID]*model.ProcessWorkItem) {
	t.Helper()
	ctx := context.Background()

	instance, items, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
		DepartmentID: "dept-finance",
		FrameworkID:  "fw-standard",
		Frequency:    types.BIAFrequencyAnnual,
	})
	gt.NoError(t, err)

	byProcess := make(map[types.ProcessID]*model.ProcessWorkItem, len(items))
	for _, item := range items {
		byProcess[item.ProcessID] = item
	}
	return instance, byProcess
}

// approve drives a work item through the whole workflow with the given
// recommended RTO.
func (f *fixture) approve(t *testing.T, id types.WorkItemID, rtoOption types.RTOOptionID) *model.ProcessWorkItem {
	t.Helper()
	ctx := context.Background()

	_, err := f.uc.Workflow.SubmitForReview(ctx, id, usecase.DraftInput{
		Ratings:                completeRatings(),
		RecommendedRTOOptionID: rtoPtr(rtoOption),
		RTOJustification:       "regulatory deadline",
	})
	gt.NoError(t, err)

	_, err = f.uc.Workflow.ForwardForApproval(ctx, id, usecase.ForwardInput{Comments: "looks complete"})
	gt.NoError(t, err)

	approved, err := f.uc.Workflow.Approve(ctx, id, usecase.ApproveInput{Note: "signed off"})
	gt.NoError(t, err)
	return approved
}
