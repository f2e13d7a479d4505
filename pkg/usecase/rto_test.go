package usecase_test

import (
	"context"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestRTODerivation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, items := f.initiate(t)

	t.Run("no approval means no RTO", func(t *testing.T) {
		rto, err := f.uc.RTO.EffectiveProcessRTO(ctx, "proc-payroll")
		gt.NoError(t, err)
		gt.Value(t, rto).Nil()

		app, err := f.uc.Asset.GetApplication(ctx, "app-erp")
		gt.NoError(t, err)
		gt.Value(t, app.DerivedRTO).Nil()
	})

	t.Run("approval propagates to supporting applications", func(t *testing.T) {
		f.approve(t, items["proc-payroll"].ID, "rto-4h")

		erp, err := f.uc.Asset.GetApplication(ctx, "app-erp")
		gt.NoError(t, err)
		gt.Value(t, erp.DerivedRTO).NotNil().Required()
		gt.Number(t, erp.DerivedRTO.DurationMinutes).Equal(240)

		bank, err := f.uc.Asset.GetApplication(ctx, "app-bank")
		gt.NoError(t, err)
		gt.Value(t, bank.DerivedRTO).NotNil().Required()
		gt.Number(t, bank.DerivedRTO.DurationMinutes).Equal(240)
	})

	t.Run("the minimum across processes wins", func(t *testing.T) {
		f.approve(t, items["proc-reporting"].ID, "rto-24h")

		erp, err := f.uc.Asset.GetApplication(ctx, "app-erp")
		gt.NoError(t, err)
		gt.Value(t, erp.DerivedRTO).NotNil().Required()
		gt.Number(t, erp.DerivedRTO.DurationMinutes).Equal(240)
		gt.Value(t, erp.DerivedRTO.OptionID).Equal("rto-4h")
	})

	t.Run("deactivating a process re-derives its applications", func(t *testing.T) {
		process, err := f.uc.Asset.GetProcess(ctx, "proc-payroll")
		gt.NoError(t, err)
		process.Active = false
		_, err = f.uc.Asset.UpdateProcess(ctx, process)
		gt.NoError(t, err)

		erp, err := f.uc.Asset.GetApplication(ctx, "app-erp")
		gt.NoError(t, err)
		gt.Value(t, erp.DerivedRTO).NotNil().Required()
		gt.Number(t, erp.DerivedRTO.DurationMinutes).Equal(1440)

		bank, err := f.uc.Asset.GetApplication(ctx, "app-bank")
		gt.NoError(t, err)
		gt.Value(t, bank.DerivedRTO).Nil()
	})

	t.Run("unlinking the last process clears the RTO", func(t *testing.T) {
		process, err := f.uc.Asset.GetProcess(ctx, "proc-reporting")
		gt.NoError(t, err)
		process.ApplicationIDs = nil
		_, err = f.uc.Asset.UpdateProcess(ctx, process)
		gt.NoError(t, err)

		erp, err := f.uc.Asset.GetApplication(ctx, "app-erp")
		gt.NoError(t, err)
		gt.Value(t, erp.DerivedRTO).Nil()
	})
}

func TestRTOLatestApprovalWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, items := f.initiate(t)
	f.approve(t, items["proc-payroll"].ID, "rto-4h")
	f.approve(t, items["proc-reporting"].ID, "rto-24h")

	// A later cycle supersedes the previous approval for the same process.
	_, next := f.initiate(t)
	f.approve(t, next["proc-payroll"].ID, "rto-1h")
	f.approve(t, next["proc-reporting"].ID, "rto-24h")

	rto, err := f.uc.RTO.EffectiveProcessRTO(ctx, "proc-payroll")
	gt.NoError(t, err)
	gt.Value(t, rto).NotNil().Required()
	gt.Value(t, rto.OptionID).Equal(types.RTOOptionID("rto-1h"))

	erp, err := f.uc.Asset.GetApplication(ctx, "app-erp")
	gt.NoError(t, err)
	gt.Value(t, erp.DerivedRTO).NotNil().Required()
	gt.Number(t, erp.DerivedRTO.DurationMinutes).Equal(60)
}
