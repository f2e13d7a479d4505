package interfaces

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// AssetDirectory is the narrow read interface through which the engine
// consults the asset inventory (departments, processes, applications). The
// engine never mutates assets through this interface.
type AssetDirectory interface {
	// GetDepartment returns a department for existence/active checks
	GetDepartment(ctx context.Context, id types.DepartmentID) (*model.Department, error)

	// ListActiveProcesses returns the active processes of a department with
	// their current owner and linked applications
	ListActiveProcesses(ctx context.Context, departmentID types.DepartmentID) ([]*model.Process, error)

	// GetActiveSupportingProcesses returns the active processes currently
	// linked to an application
	GetActiveSupportingProcesses(ctx context.Context, applicationID types.ApplicationID) ([]*model.Process, error)

	// GetProcess returns a process for existence/active checks
	GetProcess(ctx context.Context, id types.ProcessID) (*model.Process, error)

	// GetApplication returns an application for existence/active checks
	GetApplication(ctx context.Context, id types.ApplicationID) (*model.Application, error)
}

// Publisher consumes domain events, e.g. to deliver notifications or feed an
// export pipeline. Publishing failures must not fail the emitting operation.
type Publisher interface {
	Publish(ctx context.Context, event *model.Event) error
}
