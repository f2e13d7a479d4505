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

type categoryRepository struct {
	mu         sync.RWMutex
	categories map[types.CategoryID]*model.Category
}

func newCategoryRepository() *categoryRepository {
	return &categoryRepository{
		categories: make(map[types.CategoryID]*model.Category),
	}
}

func copyCategory(c *model.Category) *model.Category {
	cp := *c
	return &cp
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[category.ID]; exists {
		return nil, goerr.New("category already exists", goerr.V("id", category.ID))
	}

	now := time.Now().UTC()
	created := copyCategory(category)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.categories[created.ID] = created
	return copyCategory(created), nil
}

func (r *categoryRepository) Get(ctx context.Context, id types.CategoryID) (*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, exists := r.categories[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "category not found", goerr.V("id", id))
	}
	return copyCategory(category), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*model.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categories = append(categories, copyCategory(category))
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.categories[category.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "category not found", goerr.V("id", category.ID))
	}

	updated := copyCategory(category)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.categories[updated.ID] = updated
	return copyCategory(updated), nil
}

type parameterRepository struct {
	mu         sync.RWMutex
	parameters map[types.ParameterID]*model.Parameter
}

func newParameterRepository() *parameterRepository {
	return &parameterRepository{
		parameters: make(map[types.ParameterID]*model.Parameter),
	}
}

func copyParameter(p *model.Parameter) *model.Parameter {
	cp := *p
	cp.Definitions = make([]model.RatingDefinition, len(p.Definitions))
	copy(cp.Definitions, p.Definitions)
	for i, def := range cp.Definitions {
		if def.MinValue != nil {
			v := *def.MinValue
			cp.Definitions[i].MinValue = &v
		}
		if def.MaxValue != nil {
			v := *def.MaxValue
			cp.Definitions[i].MaxValue = &v
		}
	}
	return &cp
}

func (r *parameterRepository) Create(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parameters[param.ID]; exists {
		return nil, goerr.New("parameter already exists", goerr.V("id", param.ID))
	}

	now := time.Now().UTC()
	created := copyParameter(param)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.parameters[created.ID] = created
	return copyParameter(created), nil
}

func (r *parameterRepository) Get(ctx context.Context, id types.ParameterID) (*model.Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	param, exists := r.parameters[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "parameter not found", goerr.V("id", id))
	}
	return copyParameter(param), nil
}

func (r *parameterRepository) List(ctx context.Context) ([]*model.Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params := make([]*model.Parameter, 0, len(r.parameters))
	for _, param := range r.parameters {
		params = append(params, copyParameter(param))
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })

	return params, nil
}

func (r *parameterRepository) ListByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var params []*model.Parameter
	for _, param := range r.parameters {
		if param.CategoryID == categoryID {
			params = append(params, copyParameter(param))
		}
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })

	return params, nil
}

func (r *parameterRepository) Update(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.parameters[param.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "parameter not found", goerr.V("id", param.ID))
	}

	updated := copyParameter(param)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.parameters[updated.ID] = updated
	return copyParameter(updated), nil
}

type rtoOptionRepository struct {
	mu      sync.RWMutex
	options map[types.RTOOptionID]*model.RTOOption
}

func newRTOOptionRepository() *rtoOptionRepository {
	return &rtoOptionRepository{
		options: make(map[types.RTOOptionID]*model.RTOOption),
	}
}

func copyRTOOption(o *model.RTOOption) *model.RTOOption {
	cp := *o
	return &cp
}

func (r *rtoOptionRepository) Create(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.options[option.ID]; exists {
		return nil, goerr.New("RTO option already exists", goerr.V("id", option.ID))
	}

	now := time.Now().UTC()
	created := copyRTOOption(option)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.options[created.ID] = created
	return copyRTOOption(created), nil
}

func (r *rtoOptionRepository) Get(ctx context.Context, id types.RTOOptionID) (*model.RTOOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	option, exists := r.options[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "RTO option not found", goerr.V("id", id))
	}
	return copyRTOOption(option), nil
}

func (r *rtoOptionRepository) List(ctx context.Context) ([]*model.RTOOption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	options := make([]*model.RTOOption, 0, len(r.options))
	for _, option := range r.options {
		options = append(options, copyRTOOption(option))
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Order < options[j].Order })

	return options, nil
}

func (r *rtoOptionRepository) Update(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.options[option.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "RTO option not found", goerr.V("id", option.ID))
	}

	updated := copyRTOOption(option)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.options[updated.ID] = updated
	return copyRTOOption(updated), nil
}
