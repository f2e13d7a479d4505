package usecase

import (
	"context"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// RTOUseCase derives application recovery targets from approved work items.
// An application's RTO is the minimum effective RTO among its active
// supporting processes; no supporting process with an RTO means unset.
type RTOUseCase struct {
	repo      interfaces.Repository
	directory interfaces.AssetDirectory
	publisher interfaces.Publisher
}

// EffectiveProcessRTO returns the RTO of the most recently approved work item
// for the process, nil when the process has no approved assessment.
func (uc *RTOUseCase) EffectiveProcessRTO(ctx context.Context, processID types.ProcessID) (*model.RTOValue, error) {
	items, err := uc.repo.WorkItem().ListByProcess(ctx, processID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list work items", goerr.V(ProcessIDKey, processID))
	}

	var latest *model.ProcessWorkItem
	for _, item := range items {
		if item.Status != types.WorkItemStatusApproved {
			continue
		}
		if latest == nil || item.UpdatedAt.After(latest.UpdatedAt) {
			latest = item
		}
	}
	if latest == nil {
		return nil, nil
	}
	return latest.EffectiveRTO(), nil
}

// RecomputeApplication re-derives one application's RTO and persists it when
// it changed. The change is announced as an event.
func (uc *RTOUseCase) RecomputeApplication(ctx context.Context, applicationID types.ApplicationID) error {
	app, err := uc.directory.GetApplication(ctx, applicationID)
	if err != nil {
		return goerr.Wrap(ErrApplicationNotFound, "application not found", goerr.V(ApplicationIDKey, applicationID))
	}

	processes, err := uc.directory.GetActiveSupportingProcesses(ctx, applicationID)
	if err != nil {
		return goerr.Wrap(err, "failed to list supporting processes", goerr.V(ApplicationIDKey, applicationID))
	}

	var derived *model.RTOValue
	for _, process := range processes {
		rto, err := uc.EffectiveProcessRTO(ctx, process.ID)
		if err != nil {
			return err
		}
		if rto == nil {
			continue
		}
		if derived == nil || rto.DurationMinutes < derived.DurationMinutes {
			derived = rto
		}
	}

	if rtoEqual(app.DerivedRTO, derived) {
		return nil
	}

	if err := uc.repo.Application().SetDerivedRTO(ctx, applicationID, derived); err != nil {
		return goerr.Wrap(err, "failed to store derived RTO", goerr.V(ApplicationIDKey, applicationID))
	}

	publishEvent(ctx, uc.publisher, &model.Event{
		Kind:          model.EventApplicationRTORecomputed,
		ApplicationID: applicationID,
		RTO:           derived,
		OccurredAt:    time.Now().UTC(),
	})

	return nil
}

// RecomputeForProcess re-derives every application linked to the process.
// Applications are independent, so the recomputations run concurrently.
func (uc *RTOUseCase) RecomputeForProcess(ctx context.Context, processID types.ProcessID) error {
	process, err := uc.directory.GetProcess(ctx, processID)
	if err != nil {
		return goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, processID))
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, appID := range process.ApplicationIDs {
		eg.Go(func() error {
			return uc.RecomputeApplication(ctx, appID)
		})
	}
	return eg.Wait()
}

// RecomputeApplications re-derives a set of applications, e.g. after a
// process linkage change.
func (uc *RTOUseCase) RecomputeApplications(ctx context.Context, appIDs []types.ApplicationID) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, appID := range appIDs {
		eg.Go(func() error {
			return uc.RecomputeApplication(ctx, appID)
		})
	}
	return eg.Wait()
}

func rtoEqual(a, b *model.RTOValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.OptionID == b.OptionID && a.DurationMinutes == b.DurationMinutes
}
