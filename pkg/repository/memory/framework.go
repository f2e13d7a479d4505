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

type frameworkRepository struct {
	mu         sync.RWMutex
	frameworks map[types.FrameworkID]*model.Framework
}

func newFrameworkRepository() *frameworkRepository {
	return &frameworkRepository{
		frameworks: make(map[types.FrameworkID]*model.Framework),
	}
}

func copyFramework(f *model.Framework) *model.Framework {
	cp := *f
	cp.Parameters = make([]model.FrameworkParameter, len(f.Parameters))
	copy(cp.Parameters, f.Parameters)
	return &cp
}

func (r *frameworkRepository) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.frameworks[framework.ID]; exists {
		return nil, goerr.New("framework already exists", goerr.V("id", framework.ID))
	}

	now := time.Now().UTC()
	created := copyFramework(framework)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.frameworks[created.ID] = created
	return copyFramework(created), nil
}

func (r *frameworkRepository) Get(ctx context.Context, id types.FrameworkID) (*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	framework, exists := r.frameworks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
	}
	return copyFramework(framework), nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]*model.Framework, 0, len(r.frameworks))
	for _, framework := range r.frameworks {
		frameworks = append(frameworks, copyFramework(framework))
	}
	sort.Slice(frameworks, func(i, j int) bool { return frameworks[i].Name < frameworks[j].Name })

	return frameworks, nil
}

func (r *frameworkRepository) Update(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.frameworks[framework.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", framework.ID))
	}

	updated := copyFramework(framework)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.frameworks[updated.ID] = updated
	return copyFramework(updated), nil
}
