package interfaces

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// FrameworkRepository defines the interface for Framework data access
type FrameworkRepository interface {
	// Create creates a new framework
	Create(ctx context.Context, framework *model.Framework) (*model.Framework, error)

	// Get retrieves a framework by ID
	Get(ctx context.Context, id types.FrameworkID) (*model.Framework, error)

	// List retrieves all frameworks
	List(ctx context.Context) ([]*model.Framework, error)

	// Update updates an existing framework
	Update(ctx context.Context, framework *model.Framework) (*model.Framework, error)
}
