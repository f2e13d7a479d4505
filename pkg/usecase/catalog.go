package usecase

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CatalogUseCase manages the rating catalog: impact categories, parameters
// with their rating definitions, and the recovery-time options.
type CatalogUseCase struct {
	repo interfaces.Repository
}

func (uc *CatalogUseCase) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if category.ID == "" {
		category.ID = types.NewCategoryID()
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.Category().Create(ctx, category)
}

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id types.CategoryID) (*model.Category, error) {
	category, err := uc.repo.Category().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCategoryNotFound, "category not found", goerr.V(CategoryIDKey, id))
	}
	return category, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return uc.repo.Category().List(ctx)
}

func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Category().Update(ctx, category)
	if err != nil {
		return nil, goerr.Wrap(ErrCategoryNotFound, "category not found", goerr.V(CategoryIDKey, category.ID))
	}
	return updated, nil
}

func (uc *CatalogUseCase) CreateParameter(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	if param.ID == "" {
		param.ID = types.NewParameterID()
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}
	if err := param.ValidateDefinitions(param.Definitions); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Category().Get(ctx, param.CategoryID); err != nil {
		return nil, goerr.Wrap(ErrCategoryNotFound, "parameter references unknown category",
			goerr.V(ParameterIDKey, param.ID), goerr.V(CategoryIDKey, param.CategoryID))
	}
	return uc.repo.Parameter().Create(ctx, param)
}

func (uc *CatalogUseCase) GetParameter(ctx context.Context, id types.ParameterID) (*model.Parameter, error) {
	param, err := uc.repo.Parameter().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrParameterNotFound, "parameter not found", goerr.V(ParameterIDKey, id))
	}
	return param, nil
}

func (uc *CatalogUseCase) ListParameters(ctx context.Context) ([]*model.Parameter, error) {
	return uc.repo.Parameter().List(ctx)
}

func (uc *CatalogUseCase) ListParametersByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Parameter, error) {
	return uc.repo.Parameter().ListByCategory(ctx, categoryID)
}

// UpdateParameter replaces a parameter including its rating definitions.
// In-flight BIA instances are unaffected: they rate against their frozen
// snapshot, not the live catalog.
func (uc *CatalogUseCase) UpdateParameter(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	if err := param.Validate(); err != nil {
		return nil, err
	}
	if err := param.ValidateDefinitions(param.Definitions); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Category().Get(ctx, param.CategoryID); err != nil {
		return nil, goerr.Wrap(ErrCategoryNotFound, "parameter references unknown category",
			goerr.V(ParameterIDKey, param.ID), goerr.V(CategoryIDKey, param.CategoryID))
	}
	updated, err := uc.repo.Parameter().Update(ctx, param)
	if err != nil {
		return nil, goerr.Wrap(ErrParameterNotFound, "parameter not found", goerr.V(ParameterIDKey, param.ID))
	}
	return updated, nil
}

func (uc *CatalogUseCase) CreateRTOOption(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	if option.ID == "" {
		option.ID = types.NewRTOOptionID()
	}
	if err := option.Validate(); err != nil {
		return nil, err
	}
	return uc.repo.RTOOption().Create(ctx, option)
}

func (uc *CatalogUseCase) GetRTOOption(ctx context.Context, id types.RTOOptionID) (*model.RTOOption, error) {
	option, err := uc.repo.RTOOption().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrRTOOptionNotFound, "RTO option not found", goerr.V(RTOOptionIDKey, id))
	}
	return option, nil
}

func (uc *CatalogUseCase) ListRTOOptions(ctx context.Context) ([]*model.RTOOption, error) {
	return uc.repo.RTOOption().List(ctx)
}

// UpdateRTOOption updates a catalog option. Retiring an option (Active=false)
// never touches the value copies stored on approved work items.
func (uc *CatalogUseCase) UpdateRTOOption(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	if err := option.Validate(); err != nil {
		return nil, err
	}
	updated, err := uc.repo.RTOOption().Update(ctx, option)
	if err != nil {
		return nil, goerr.Wrap(ErrRTOOptionNotFound, "RTO option not found", goerr.V(RTOOptionIDKey, option.ID))
	}
	return updated, nil
}
