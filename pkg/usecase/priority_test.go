package usecase_test

import (
	"context"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestPriorityView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Asset.CreateProcess(ctx, &model.Process{
		ID: "proc-archive", DepartmentID: "dept-finance", Name: "Archiving",
		OwnerID: "user-carol", Active: true,
	})
	gt.NoError(t, err)

	instance, items := f.initiate(t)

	// Payroll scores 3.4 (critical), reporting 1.0, archiving stays unscored.
	f.approve(t, items["proc-payroll"].ID, "rto-4h")

	_, err = f.uc.Workflow.SubmitForReview(ctx, items["proc-reporting"].ID, usecase.DraftInput{
		Ratings: []usecase.RatingInput{
			{ParameterID: "param-financial", Value: floatPtr(5)},
			{ParameterID: "param-customer", Label: "Low"},
			{ParameterID: "param-regulatory", Label: "Low"},
		},
		RecommendedRTOOptionID: rtoPtr("rto-24h"),
	})
	gt.NoError(t, err)
	_, err = f.uc.Workflow.ForwardForApproval(ctx, items["proc-reporting"].ID, usecase.ForwardInput{})
	gt.NoError(t, err)
	_, err = f.uc.Workflow.Approve(ctx, items["proc-reporting"].ID, usecase.ApproveInput{Note: "accepted"})
	gt.NoError(t, err)

	t.Run("ranked by score with unscored last", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(3)

		gt.Value(t, rows[0].ProcessID).Equal(types.ProcessID("proc-payroll"))
		gt.Value(t, rows[0].ProcessName).Equal("Payroll")
		gt.Bool(t, rows[0].Critical).True()
		gt.Value(t, rows[0].ImpactScore).NotNil().Required()
		gt.Number(t, *rows[0].ImpactScore).Equal(3.4)
		gt.Value(t, rows[0].EffectiveRTO).NotNil().Required()
		gt.Number(t, rows[0].EffectiveRTO.DurationMinutes).Equal(240)

		gt.Value(t, rows[1].ProcessID).Equal(types.ProcessID("proc-reporting"))
		gt.Bool(t, rows[1].Critical).False()

		gt.Value(t, rows[2].ProcessID).Equal(types.ProcessID("proc-archive"))
		gt.Value(t, rows[2].ImpactScore).Nil()
		gt.Value(t, rows[2].EffectiveRTO).Nil()
		gt.Value(t, rows[2].WorkItemStatus).Equal(types.WorkItemStatusInitiated)
	})

	t.Run("ranked by RTO with unset last", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{
			Sort: usecase.PrioritySortRTOAsc,
		})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(3)
		gt.Value(t, rows[0].ProcessID).Equal(types.ProcessID("proc-payroll"))
		gt.Value(t, rows[1].ProcessID).Equal(types.ProcessID("proc-reporting"))
		gt.Value(t, rows[2].EffectiveRTO).Nil()
	})

	t.Run("filter by work item status", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{
			Status: types.WorkItemStatusInitiated,
		})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(1)
		gt.Value(t, rows[0].ProcessID).Equal(types.ProcessID("proc-archive"))
	})

	t.Run("critical only", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{CriticalOnly: true})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(1)
		gt.Value(t, rows[0].ProcessID).Equal(types.ProcessID("proc-payroll"))
	})

	t.Run("filter by BIA instance", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{BIAID: instance.ID})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(3)
	})

	t.Run("filter by department", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{DepartmentID: "dept-finance"})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(3)

		rows, err = f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{DepartmentID: "dept-other"})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(0)
	})

	t.Run("mismatched department and BIA filters", func(t *testing.T) {
		rows, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{
			BIAID:        instance.ID,
			DepartmentID: "dept-other",
		})
		gt.NoError(t, err)
		gt.Number(t, len(rows)).Equal(0)
	})

	t.Run("unknown BIA instance", func(t *testing.T) {
		_, err := f.uc.Priority.ListPrioritizedProcesses(ctx, usecase.PriorityFilter{BIAID: types.NewBIAID()})
		gt.Error(t, err).Is(usecase.ErrBIANotFound)
	})
}
