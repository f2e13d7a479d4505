package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type departmentRepository struct {
	mu          sync.RWMutex
	departments map[types.DepartmentID]*model.Department
}

func newDepartmentRepository() *departmentRepository {
	return &departmentRepository{
		departments: make(map[types.DepartmentID]*model.Department),
	}
}

func copyDepartment(d *model.Department) *model.Department {
	cp := *d
	return &cp
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.departments[dept.ID]; exists {
		return nil, goerr.New("department already exists", goerr.V("id", dept.ID))
	}

	now := time.Now().UTC()
	created := copyDepartment(dept)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.departments[created.ID] = created
	return copyDepartment(created), nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dept, exists := r.departments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
	}
	return copyDepartment(dept), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	departments := make([]*model.Department, 0, len(r.departments))
	for _, dept := range r.departments {
		departments = append(departments, copyDepartment(dept))
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })

	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.departments[dept.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", dept.ID))
	}

	updated := copyDepartment(dept)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.departments[updated.ID] = updated
	return copyDepartment(updated), nil
}

type processRepository struct {
	mu        sync.RWMutex
	processes map[types.ProcessID]*model.Process
}

func newProcessRepository() *processRepository {
	return &processRepository{
		processes: make(map[types.ProcessID]*model.Process),
	}
}

func copyProcess(p *model.Process) *model.Process {
	cp := *p
	cp.ApplicationIDs = make([]types.ApplicationID, len(p.ApplicationIDs))
	copy(cp.ApplicationIDs, p.ApplicationIDs)
	return &cp
}

func (r *processRepository) Create(ctx context.Context, process *model.Process) (*model.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processes[process.ID]; exists {
		return nil, goerr.New("process already exists", goerr.V("id", process.ID))
	}

	now := time.Now().UTC()
	created := copyProcess(process)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.processes[created.ID] = created
	return copyProcess(created), nil
}

func (r *processRepository) Get(ctx context.Context, id types.ProcessID) (*model.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	process, exists := r.processes[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", id))
	}
	return copyProcess(process), nil
}

func (r *processRepository) List(ctx context.Context) ([]*model.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processes := make([]*model.Process, 0, len(r.processes))
	for _, process := range r.processes {
		processes = append(processes, copyProcess(process))
	}
	sort.Slice(processes, func(i, j int) bool { return processes[i].Name < processes[j].Name })

	return processes, nil
}

func (r *processRepository) ListActiveByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var processes []*model.Process
	for _, process := range r.processes {
		if process.DepartmentID == departmentID && process.Active {
			processes = append(processes, copyProcess(process))
		}
	}
	sort.Slice(processes, func(i, j int) bool { return processes[i].Name < processes[j].Name })

	return processes, nil
}

func (r *processRepository) ListActiveByApplication(ctx context.Context, applicationID types.ApplicationID) ([]*model.Process, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var processes []*model.Process
	for _, process := range r.processes {
		if !process.Active {
			continue
		}
		for _, appID := range process.ApplicationIDs {
			if appID == applicationID {
				processes = append(processes, copyProcess(process))
				break
			}
		}
	}
	sort.Slice(processes, func(i, j int) bool { return processes[i].Name < processes[j].Name })

	return processes, nil
}

func (r *processRepository) Update(ctx context.Context, process *model.Process) (*model.Process, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.processes[process.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", process.ID))
	}

	updated := copyProcess(process)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.processes[updated.ID] = updated
	return copyProcess(updated), nil
}

type applicationRepository struct {
	mu           sync.RWMutex
	applications map[types.ApplicationID]*model.Application
}

func newApplicationRepository() *applicationRepository {
	return &applicationRepository{
		applications: make(map[types.ApplicationID]*model.Application),
	}
}

func copyApplication(a *model.Application) *model.Application {
	cp := *a
	cp.DerivedRTO = a.DerivedRTO.Clone()
	return &cp
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.applications[app.ID]; exists {
		return nil, goerr.New("application already exists", goerr.V("id", app.ID))
	}

	now := time.Now().UTC()
	created := copyApplication(app)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.applications[created.ID] = created
	return copyApplication(created), nil
}

func (r *applicationRepository) Get(ctx context.Context, id types.ApplicationID) (*model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, exists := r.applications[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", id))
	}
	return copyApplication(app), nil
}

func (r *applicationRepository) List(ctx context.Context) ([]*model.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	applications := make([]*model.Application, 0, len(r.applications))
	for _, app := range r.applications {
		applications = append(applications, copyApplication(app))
	}
	sort.Slice(applications, func(i, j int) bool { return applications[i].Name < applications[j].Name })

	return applications, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *model.Application) (*model.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.applications[app.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", app.ID))
	}

	updated := copyApplication(app)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.applications[updated.ID] = updated
	return copyApplication(updated), nil
}

func (r *applicationRepository) SetDerivedRTO(ctx context.Context, id types.ApplicationID, rto *model.RTOValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, exists := r.applications[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", id))
	}

	app.DerivedRTO = rto.Clone()
	app.UpdatedAt = time.Now().UTC()
	return nil
}
