package usecase

import (
	"context"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// BIAUseCase initiates and reads BIA runs. Initiation freezes the framework
// and spawns one work item per active process of the department.
type BIAUseCase struct {
	repo      interfaces.Repository
	directory interfaces.AssetDirectory
	publisher interfaces.Publisher
}

// InitiateInput selects the department, the framework to freeze, and the
// cycle frequency.
type InitiateInput struct {
	DepartmentID types.DepartmentID
	FrameworkID  types.FrameworkID
	Frequency    types.BIAFrequency
}

func (uc *BIAUseCase) Initiate(ctx context.Context, input InitiateInput) (*model.BIAInstance, []*model.ProcessWorkItem, error) {
	if !input.Frequency.IsValid() {
		return nil, nil, goerr.Wrap(model.ErrValidation, "invalid BIA frequency", goerr.V("frequency", input.Frequency))
	}

	dept, err := uc.directory.GetDepartment(ctx, input.DepartmentID)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, input.DepartmentID))
	}
	if !dept.Active {
		return nil, nil, goerr.Wrap(ErrDepartmentInactive, "cannot initiate a BIA for an inactive department",
			goerr.V(DepartmentIDKey, input.DepartmentID))
	}

	framework, err := uc.repo.Framework().Get(ctx, input.FrameworkID)
	if err != nil {
		return nil, nil, goerr.Wrap(ErrFrameworkNotFound, "framework not found", goerr.V(FrameworkIDKey, input.FrameworkID))
	}
	if !framework.Active {
		return nil, nil, goerr.Wrap(ErrFrameworkInactive, "cannot initiate a BIA with a retired framework",
			goerr.V(FrameworkIDKey, input.FrameworkID))
	}

	processes, err := uc.directory.ListActiveProcesses(ctx, input.DepartmentID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list active processes", goerr.V(DepartmentIDKey, input.DepartmentID))
	}
	// A department with zero active processes still gets an instance,
	// just one with no work items.
	now := time.Now().UTC()
	snapshot, err := uc.freeze(ctx, framework, now)
	if err != nil {
		return nil, nil, err
	}

	instance, err := uc.repo.BIA().Create(ctx, &model.BIAInstance{
		ID:           types.NewBIAID(),
		DepartmentID: input.DepartmentID,
		Snapshot:     snapshot,
		Frequency:    input.Frequency,
		Status:       types.BIAStatusInProgress,
		InitiatedAt:  now,
	})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create BIA instance")
	}

	items := make([]*model.ProcessWorkItem, 0, len(processes))
	for _, process := range processes {
		item, err := uc.repo.WorkItem().Create(ctx, &model.ProcessWorkItem{
			ID:        types.NewWorkItemID(),
			BIAID:     instance.ID,
			ProcessID: process.ID,
			OwnerID:   process.OwnerID,
			Status:    types.WorkItemStatusInitiated,
		})
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create work item",
				goerr.V(BIAIDKey, instance.ID), goerr.V(ProcessIDKey, process.ID))
		}
		items = append(items, item)

		publishEvent(ctx, uc.publisher, &model.Event{
			Kind:       model.EventWorkItemAssigned,
			BIAID:      instance.ID,
			WorkItemID: item.ID,
			ProcessID:  process.ID,
			OwnerID:    process.OwnerID,
			OccurredAt: now,
		})
	}

	return instance, items, nil
}

func (uc *BIAUseCase) Get(ctx context.Context, id types.BIAID) (*model.BIAInstance, error) {
	instance, err := uc.repo.BIA().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrBIANotFound, "BIA instance not found", goerr.V(BIAIDKey, id))
	}
	return instance, nil
}

func (uc *BIAUseCase) List(ctx context.Context) ([]*model.BIAInstance, error) {
	return uc.repo.BIA().List(ctx)
}

func (uc *BIAUseCase) ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.BIAInstance, error) {
	return uc.repo.BIA().ListByDepartment(ctx, departmentID)
}

func (uc *BIAUseCase) ListWorkItems(ctx context.Context, id types.BIAID) ([]*model.ProcessWorkItem, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.WorkItem().ListByBIA(ctx, id)
}

// freeze resolves the framework's parameters against the live catalog and
// produces the immutable snapshot the run will score against.
func (uc *BIAUseCase) freeze(ctx context.Context, framework *model.Framework, now time.Time) (*model.FrameworkSnapshot, error) {
	params := make(map[types.ParameterID]*model.Parameter, len(framework.Parameters))
	for _, fp := range framework.Parameters {
		param, err := uc.repo.Parameter().Get(ctx, fp.ParameterID)
		if err != nil {
			return nil, goerr.Wrap(ErrParameterNotFound, "framework references unknown parameter",
				goerr.V(FrameworkIDKey, framework.ID), goerr.V(ParameterIDKey, fp.ParameterID))
		}
		params[fp.ParameterID] = param
	}
	return model.NewFrameworkSnapshot(framework, params, now)
}
