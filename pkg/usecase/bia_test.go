package usecase_test

import (
	"context"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestBIAInitiate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instance, items, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
		DepartmentID: "dept-finance",
		FrameworkID:  "fw-standard",
		Frequency:    types.BIAFrequencyQuarterly,
	})
	gt.NoError(t, err)

	t.Run("snapshot freezes the framework", func(t *testing.T) {
		gt.Value(t, instance.Status).Equal(types.BIAStatusInProgress)
		gt.Value(t, instance.Frequency).Equal(types.BIAFrequencyQuarterly)
		gt.Value(t, instance.Snapshot).NotNil().Required()
		gt.Value(t, instance.Snapshot.FrameworkID).Equal("fw-standard")
		gt.Number(t, instance.Snapshot.Threshold).Equal(3.0)
		gt.Number(t, len(instance.Snapshot.Parameters)).Equal(3)

		param, ok := instance.Snapshot.Parameter("param-customer")
		gt.Bool(t, ok).True()
		gt.Number(t, param.Weight).Equal(30)
		gt.Number(t, len(param.Definitions)).Equal(4)
	})

	t.Run("one work item per active process", func(t *testing.T) {
		gt.Number(t, len(items)).Equal(2)
		byProcess := make(map[types.ProcessID]*model.ProcessWorkItem)
		for _, item := range items {
			gt.Value(t, item.BIAID).Equal(instance.ID)
			gt.Value(t, item.Status).Equal(types.WorkItemStatusInitiated)
			byProcess[item.ProcessID] = item
		}
		gt.Value(t, byProcess["proc-payroll"].OwnerID).Equal("user-alice")
		gt.Value(t, byProcess["proc-reporting"].OwnerID).Equal("user-bob")
	})

	t.Run("work items are listed through the instance", func(t *testing.T) {
		listed, err := f.uc.BIA.ListWorkItems(ctx, instance.ID)
		gt.NoError(t, err)
		gt.Number(t, len(listed)).Equal(2)
	})

	t.Run("inactive processes are skipped", func(t *testing.T) {
		process, err := f.uc.Asset.GetProcess(ctx, "proc-reporting")
		gt.NoError(t, err)
		process.Active = false
		_, err = f.uc.Asset.UpdateProcess(ctx, process)
		gt.NoError(t, err)

		_, fresh, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-finance",
			FrameworkID:  "fw-standard",
			Frequency:    types.BIAFrequencyQuarterly,
		})
		gt.NoError(t, err)
		gt.Number(t, len(fresh)).Equal(1)
		gt.Value(t, fresh[0].ProcessID).Equal("proc-payroll")
	})
}

func TestBIAInitiateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("invalid frequency", func(t *testing.T) {
		_, _, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-finance",
			FrameworkID:  "fw-standard",
			Frequency:    "biweekly",
		})
		gt.Error(t, err)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, _, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-ghost",
			FrameworkID:  "fw-standard",
			Frequency:    types.BIAFrequencyAnnual,
		})
		gt.Error(t, err).Is(usecase.ErrDepartmentNotFound)
	})

	t.Run("inactive department", func(t *testing.T) {
		dept, err := f.uc.Asset.GetDepartment(ctx, "dept-finance")
		gt.NoError(t, err)
		dept.Active = false
		_, err = f.uc.Asset.UpdateDepartment(ctx, dept)
		gt.NoError(t, err)

		_, _, err = f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-finance",
			FrameworkID:  "fw-standard",
			Frequency:    types.BIAFrequencyAnnual,
		})
		gt.Error(t, err).Is(usecase.ErrDepartmentInactive)

		dept.Active = true
		_, err = f.uc.Asset.UpdateDepartment(ctx, dept)
		gt.NoError(t, err)
	})

	t.Run("unknown framework", func(t *testing.T) {
		_, _, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-finance",
			FrameworkID:  "fw-ghost",
			Frequency:    types.BIAFrequencyAnnual,
		})
		gt.Error(t, err).Is(usecase.ErrFrameworkNotFound)
	})

	t.Run("retired framework", func(t *testing.T) {
		framework, err := f.uc.Framework.Get(ctx, "fw-standard")
		gt.NoError(t, err)
		framework.Active = false
		_, err = f.uc.Framework.Update(ctx, framework)
		gt.NoError(t, err)

		_, _, err = f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-finance",
			FrameworkID:  "fw-standard",
			Frequency:    types.BIAFrequencyAnnual,
		})
		gt.Error(t, err).Is(usecase.ErrFrameworkInactive)

		framework.Active = true
		_, err = f.uc.Framework.Update(ctx, framework)
		gt.NoError(t, err)
	})

	t.Run("department without active processes", func(t *testing.T) {
		_, err := f.uc.Asset.CreateDepartment(ctx, &model.Department{
			ID: "dept-empty", Name: "Facilities", HeadID: "user-head", Active: true,
		})
		gt.NoError(t, err)

		instance, items, err := f.uc.BIA.Initiate(ctx, usecase.InitiateInput{
			DepartmentID: "dept-empty",
			FrameworkID:  "fw-standard",
			Frequency:    types.BIAFrequencyAnnual,
		})
		gt.NoError(t, err).Required()
		gt.Number(t, len(items)).Equal(0)
		gt.Value(t, instance.Snapshot).NotNil()

		persisted, err := f.uc.BIA.ListWorkItems(ctx, instance.ID)
		gt.NoError(t, err)
		gt.Number(t, len(persisted)).Equal(0)
	})
}

func TestBIAListByDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, _ := f.initiate(t)
	second, _ := f.initiate(t)

	instances, err := f.uc.BIA.ListByDepartment(ctx, "dept-finance")
	gt.NoError(t, err)
	gt.Number(t, len(instances)).Equal(2)
	ids := map[types.BIAID]bool{instances[0].ID: true, instances[1].ID: true}
	gt.Bool(t, ids[first.ID]).True()
	gt.Bool(t, ids[second.ID]).True()

	_, err = f.uc.BIA.Get(ctx, types.NewBIAID())
	gt.Error(t, err).Is(usecase.ErrBIANotFound)

	_, err = f.uc.BIA.ListWorkItems(ctx, types.NewBIAID())
	gt.Error(t, err).Is(usecase.ErrBIANotFound)
}
