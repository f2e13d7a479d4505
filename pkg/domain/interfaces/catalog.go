package interfaces

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// CategoryRepository defines the interface for Category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *model.Category) (*model.Category, error)

	// Get retrieves a category by ID
	Get(ctx context.Context, id types.CategoryID) (*model.Category, error)

	// List retrieves all categories. Retired categories are included; callers
	// filter on Active where needed.
	List(ctx context.Context) ([]*model.Category, error)

	// Update updates an existing category
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
}

// ParameterRepository defines the interface for Parameter data access
type ParameterRepository interface {
	// Create creates a new parameter
	Create(ctx context.Context, param *model.Parameter) (*model.Parameter, error)

	// Get retrieves a parameter by ID
	Get(ctx context.Context, id types.ParameterID) (*model.Parameter, error)

	// List retrieves all parameters
	List(ctx context.Context) ([]*model.Parameter, error)

	// ListByCategory retrieves all parameters of a category
	ListByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Parameter, error)

	// Update updates an existing parameter, including its rating definitions
	Update(ctx context.Context, param *model.Parameter) (*model.Parameter, error)
}

// RTOOptionRepository defines the interface for the recovery-time catalog
type RTOOptionRepository interface {
	// Create creates a new RTO option
	Create(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error)

	// Get retrieves an RTO option by ID. Retired options remain resolvable.
	Get(ctx context.Context, id types.RTOOptionID) (*model.RTOOption, error)

	// List retrieves all RTO options sorted by display order
	List(ctx context.Context) ([]*model.RTOOption, error)

	// Update updates an existing RTO option
	Update(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error)
}
