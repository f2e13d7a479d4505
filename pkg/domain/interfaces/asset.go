package interfaces

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// DepartmentRepository defines the interface for Department data access
type DepartmentRepository interface {
	// Create creates a new department
	Create(ctx context.Context, dept *model.Department) (*model.Department, error)

	// Get retrieves a department by ID
	Get(ctx context.Context, id types.DepartmentID) (*model.Department, error)

	// List retrieves all departments
	List(ctx context.Context) ([]*model.Department, error)

	// Update updates an existing department
	Update(ctx context.Context, dept *model.Department) (*model.Department, error)
}

// ProcessRepository defines the interface for Process data access
type ProcessRepository interface {
	// Create creates a new process
	Create(ctx context.Context, process *model.Process) (*model.Process, error)

	// Get retrieves a process by ID
	Get(ctx context.Context, id types.ProcessID) (*model.Process, error)

	// List retrieves all processes
	List(ctx context.Context) ([]*model.Process, error)

	// ListActiveByDepartment retrieves the active processes of a department
	ListActiveByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Process, error)

	// ListActiveByApplication retrieves the active processes currently linked
	// to an application
	ListActiveByApplication(ctx context.Context, applicationID types.ApplicationID) ([]*model.Process, error)

	// Update updates an existing process, including its application links
	Update(ctx context.Context, process *model.Process) (*model.Process, error)
}

// ApplicationRepository defines the interface for Application data access
type ApplicationRepository interface {
	// Create creates a new application
	Create(ctx context.Context, app *model.Application) (*model.Application, error)

	// Get retrieves an application by ID
	Get(ctx context.Context, id types.ApplicationID) (*model.Application, error)

	// List retrieves all applications
	List(ctx context.Context) ([]*model.Application, error)

	// Update updates an existing application
	Update(ctx context.Context, app *model.Application) (*model.Application, error)

	// SetDerivedRTO writes the derived RTO of an application. A nil value
	// marks the RTO as explicitly unset.
	SetDerivedRTO(ctx context.Context, id types.ApplicationID, rto *model.RTOValue) error
}
