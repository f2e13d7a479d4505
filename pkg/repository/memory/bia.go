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

type biaRepository struct {
	mu        sync.RWMutex
	instances map[types.BIAID]*model.BIAInstance
}

func newBIARepository() *biaRepository {
	return &biaRepository{
		instances: make(map[types.BIAID]*model.BIAInstance),
	}
}

func copySnapshot(s *model.FrameworkSnapshot) *model.FrameworkSnapshot {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Parameters = make([]model.SnapshotParameter, len(s.Parameters))
	copy(cp.Parameters, s.Parameters)
	for i, sp := range cp.Parameters {
		defs := make([]model.RatingDefinition, len(sp.Definitions))
		copy(defs, sp.Definitions)
		cp.Parameters[i].Definitions = defs
	}
	return &cp
}

func copyInstance(b *model.BIAInstance) *model.BIAInstance {
	cp := *b
	cp.Snapshot = copySnapshot(b.Snapshot)
	return &cp
}

func (r *biaRepository) Create(ctx context.Context, instance *model.BIAInstance) (*model.BIAInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[instance.ID]; exists {
		return nil, goerr.New("BIA instance already exists", goerr.V("id", instance.ID))
	}

	created := copyInstance(instance)
	created.UpdatedAt = time.Now().UTC()

	r.instances[created.ID] = created
	return copyInstance(created), nil
}

func (r *biaRepository) Get(ctx context.Context, id types.BIAID) (*model.BIAInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, exists := r.instances[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "BIA instance not found", goerr.V("id", id))
	}
	return copyInstance(instance), nil
}

func (r *biaRepository) List(ctx context.Context) ([]*model.BIAInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*model.BIAInstance, 0, len(r.instances))
	for _, instance := range r.instances {
		instances = append(instances, copyInstance(instance))
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].InitiatedAt.Before(instances[j].InitiatedAt)
	})

	return instances, nil
}

func (r *biaRepository) ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.BIAInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var instances []*model.BIAInstance
	for _, instance := range r.instances {
		if instance.DepartmentID == departmentID {
			instances = append(instances, copyInstance(instance))
		}
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].InitiatedAt.Before(instances[j].InitiatedAt)
	})

	return instances, nil
}

func (r *biaRepository) UpdateStatus(ctx context.Context, id types.BIAID, status types.BIAStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	instance, exists := r.instances[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "BIA instance not found", goerr.V("id", id))
	}

	instance.Status = status
	instance.UpdatedAt = time.Now().UTC()
	return nil
}
