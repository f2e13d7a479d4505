package usecase

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AssetUseCase maintains the asset inventory backing the default directory:
// departments, their processes, and the applications processes depend on.
type AssetUseCase struct {
	repo interfaces.Repository
	rto  *RTOUseCase
}

func (uc *AssetUseCase) CreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, error) {
	if err := dept.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.Department().Create(ctx, dept)
}

func (uc *AssetUseCase) GetDepartment(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	dept, err := uc.repo.Department().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, id))
	}
	return dept, nil
}

func (uc *AssetUseCase) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	return uc.repo.Department().List(ctx)
}

func (uc *AssetUseCase) UpdateDepartment(ctx context.Context, dept *model.Department) (*model.Department, error) {
	if err := dept.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Department().Update(ctx, dept)
	if err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "department not found", goerr.V(DepartmentIDKey, dept.ID))
	}
	return updated, nil
}

func (uc *AssetUseCase) CreateProcess(ctx context.Context, process *model.Process) (*model.Process, error) {
	if err := process.Validate(); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Department().Get(ctx, process.DepartmentID); err != nil {
		return nil, goerr.Wrap(ErrDepartmentNotFound, "process references unknown department",
			goerr.V(ProcessIDKey, process.ID), goerr.V(DepartmentIDKey, process.DepartmentID))
	}
	if err := uc.checkApplicationRefs(ctx, process); err != nil {
		return nil, err
	}
	return uc.repo.Process().Create(ctx, process)
}

func (uc *AssetUseCase) GetProcess(ctx context.Context, id types.ProcessID) (*model.Process, error) {
	process, err := uc.repo.Process().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, id))
	}
	return process, nil
}

func (uc *AssetUseCase) ListProcesses(ctx context.Context) ([]*model.Process, error) {
	return uc.repo.Process().List(ctx)
}

// UpdateProcess replaces a process definition. A changed application linkage
// or active flag re-derives the RTO of every application touched by the
// change, on either side of it.
func (uc *AssetUseCase) UpdateProcess(ctx context.Context, process *model.Process) (*model.Process, error) {
	if err := process.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkApplicationRefs(ctx, process); err != nil {
		return nil, err
	}

	existing, err := uc.GetProcess(ctx, process.ID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Process().Update(ctx, process)
	if err != nil {
		return nil, goerr.Wrap(ErrProcessNotFound, "process not found", goerr.V(ProcessIDKey, process.ID))
	}

	if affected := affectedApplications(existing, updated); len(affected) > 0 {
		if err := uc.rto.RecomputeApplications(ctx, affected); err != nil {
			return nil, goerr.Wrap(err, "failed to recompute application RTOs after linkage change",
				goerr.V(ProcessIDKey, process.ID))
		}
	}

	return updated, nil
}

func (uc *AssetUseCase) CreateApplication(ctx context.Context, app *model.Application) (*model.Application, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.Application().Create(ctx, app)
}

func (uc *AssetUseCase) GetApplication(ctx context.Context, id types.ApplicationID) (*model.Application, error) {
	app, err := uc.repo.Application().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrApplicationNotFound, "application not found", goerr.V(ApplicationIDKey, id))
	}
	return app, nil
}

func (uc *AssetUseCase) ListApplications(ctx context.Context) ([]*model.Application, error) {
	return uc.repo.Application().List(ctx)
}

func (uc *AssetUseCase) UpdateApplication(ctx context.Context, app *model.Application) (*model.Application, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.GetApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	// DerivedRTO is owned by the derivation step, not by inventory edits
	app.DerivedRTO = existing.DerivedRTO
	updated, err := uc.repo.Application().Update(ctx, app)
	if err != nil {
		return nil, goerr.Wrap(ErrApplicationNotFound, "application not found", goerr.V(ApplicationIDKey, app.ID))
	}
	return updated, nil
}

func (uc *AssetUseCase) checkApplicationRefs(ctx context.Context, process *model.Process) error {
	for _, appID := range process.ApplicationIDs {
		if _, err := uc.repo.Application().Get(ctx, appID); err != nil {
			return goerr.Wrap(ErrApplicationNotFound, "process references unknown application",
				goerr.V(ProcessIDKey, process.ID), goerr.V(ApplicationIDKey, appID))
		}
	}
	return nil
}

// affectedApplications returns the applications whose derived RTO may change
// when a process definition changes
func affectedApplications(before, after *model.Process) []types.ApplicationID {
	linkageChanged := !sameApplicationIDs(before.ApplicationIDs, after.ApplicationIDs)
	activeChanged := before.Active != after.Active
	if !linkageChanged && !activeChanged {
		return nil
	}

	seen := make(map[types.ApplicationID]bool)
	var affected []types.ApplicationID
	for _, ids := range [][]types.ApplicationID{before.ApplicationIDs, after.ApplicationIDs} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				affected = append(affected, id)
			}
		}
	}
	return affected
}

func sameApplicationIDs(a, b []types.ApplicationID) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[types.ApplicationID]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
