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

type workItemRepository struct {
	mu    sync.Mutex
	items map[types.WorkItemID]*model.ProcessWorkItem
}

func newWorkItemRepository() *workItemRepository {
	return &workItemRepository{
		items: make(map[types.WorkItemID]*model.ProcessWorkItem),
	}
}

func (r *workItemRepository) Create(ctx context.Context, item *model.ProcessWorkItem) (*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return nil, goerr.New("work item already exists", goerr.V("id", item.ID))
	}

	now := time.Now().UTC()
	created := item.Clone()
	created.CreatedAt = now
	created.UpdatedAt = now

	r.items[created.ID] = created
	return created.Clone(), nil
}

func (r *workItemRepository) Get(ctx context.Context, id types.WorkItemID) (*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", id))
	}
	return item.Clone(), nil
}

func (r *workItemRepository) ListByBIA(ctx context.Context, biaID types.BIAID) ([]*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*model.ProcessWorkItem
	for _, item := range r.items {
		if item.BIAID == biaID {
			items = append(items, item.Clone())
		}
	}
	sortWorkItems(items)

	return items, nil
}

func (r *workItemRepository) ListByProcess(ctx context.Context, processID types.ProcessID) ([]*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*model.ProcessWorkItem
	for _, item := range r.items {
		if item.ProcessID == processID {
			items = append(items, item.Clone())
		}
	}
	sortWorkItems(items)

	return items, nil
}

func (r *workItemRepository) List(ctx context.Context) ([]*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]*model.ProcessWorkItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item.Clone())
	}
	sortWorkItems(items)

	return items, nil
}

func (r *workItemRepository) PutWithStatus(ctx context.Context, item *model.ProcessWorkItem, expected types.WorkItemStatus) (*model.ProcessWorkItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", item.ID))
	}

	if existing.Status != expected {
		return nil, goerr.Wrap(model.ErrConcurrentModification, "stored status does not match expectation",
			goerr.V("id", item.ID),
			goerr.V("stored_status", existing.Status.String()),
			goerr.V("expected_status", expected.String()))
	}

	updated := item.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.items[updated.ID] = updated
	return updated.Clone(), nil
}

func sortWorkItems(items []*model.ProcessWorkItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
