package interfaces

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// BIARepository defines the interface for BIAInstance data access
type BIARepository interface {
	// Create creates a new BIA instance with its frozen framework snapshot
	Create(ctx context.Context, instance *model.BIAInstance) (*model.BIAInstance, error)

	// Get retrieves a BIA instance by ID
	Get(ctx context.Context, id types.BIAID) (*model.BIAInstance, error)

	// List retrieves all BIA instances
	List(ctx context.Context) ([]*model.BIAInstance, error)

	// ListByDepartment retrieves all BIA instances of a department
	ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.BIAInstance, error)

	// UpdateStatus updates the aggregate status of an instance
	UpdateStatus(ctx context.Context, id types.BIAID, status types.BIAStatus) error
}

// WorkItemRepository defines the interface for ProcessWorkItem data access
type WorkItemRepository interface {
	// Create creates a new work item
	Create(ctx context.Context, item *model.ProcessWorkItem) (*model.ProcessWorkItem, error)

	// Get retrieves a work item by ID
	Get(ctx context.Context, id types.WorkItemID) (*model.ProcessWorkItem, error)

	// ListByBIA retrieves all work items of a BIA instance
	ListByBIA(ctx context.Context, biaID types.BIAID) ([]*model.ProcessWorkItem, error)

	// ListByProcess retrieves all work items referencing a process, across
	// BIA instances
	ListByProcess(ctx context.Context, processID types.ProcessID) ([]*model.ProcessWorkItem, error)

	// List retrieves all work items
	List(ctx context.Context) ([]*model.ProcessWorkItem, error)

	// PutWithStatus writes the work item if and only if the stored status
	// still equals expected. A mismatch fails with ErrConcurrentModification
	// and leaves the stored item untouched. This is the engine's optimistic
	// concurrency primitive: no lock is held between read and write.
	PutWithStatus(ctx context.Context, item *model.ProcessWorkItem, expected types.WorkItemStatus) (*model.ProcessWorkItem, error)
}
