package usecase

import (
	"context"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/service/scoring"
	"github.com/m-mizutani/goerr/v2"
)

// FrameworkUseCase manages scoring frameworks and offers a what-if sample
// scoring endpoint for framework designers.
type FrameworkUseCase struct {
	repo    interfaces.Repository
	scoring *scoring.Service
}

func (uc *FrameworkUseCase) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	if framework.ID == "" {
		framework.ID = types.NewFrameworkID()
	}
	if err := framework.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkParameterRefs(ctx, framework); err != nil {
		return nil, err
	}
	return uc.repo.Framework().Create(ctx, framework)
}

func (uc *FrameworkUseCase) Get(ctx context.Context, id types.FrameworkID) (*model.Framework, error) {
	framework, err := uc.repo.Framework().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrFrameworkNotFound, "framework not found", goerr.V(FrameworkIDKey, id))
	}
	return framework, nil
}

func (uc *FrameworkUseCase) List(ctx context.Context) ([]*model.Framework, error) {
	return uc.repo.Framework().List(ctx)
}

// Update replaces a framework definition. Running BIA instances keep scoring
// against the snapshot they were initiated with.
func (uc *FrameworkUseCase) Update(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	if err := framework.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkParameterRefs(ctx, framework); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Framework().Update(ctx, framework)
	if err != nil {
		return nil, goerr.Wrap(ErrFrameworkNotFound, "framework not found", goerr.V(FrameworkIDKey, framework.ID))
	}
	return updated, nil
}

func (uc *FrameworkUseCase) checkParameterRefs(ctx context.Context, framework *model.Framework) error {
	for _, fp := range framework.Parameters {
		param, err := uc.repo.Parameter().Get(ctx, fp.ParameterID)
		if err != nil {
			return goerr.Wrap(ErrParameterNotFound, "framework references unknown parameter",
				goerr.V(FrameworkIDKey, framework.ID),
				goerr.V(ParameterIDKey, fp.ParameterID))
		}
		if !param.Active {
			return goerr.Wrap(model.ErrValidation, "framework references retired parameter",
				goerr.V(FrameworkIDKey, framework.ID),
				goerr.V(ParameterIDKey, fp.ParameterID))
		}
	}
	return nil
}

// SampleResult is the outcome of a what-if scoring run
type SampleResult struct {
	Score    float64
	Critical bool
}

// SampleScore computes the score a set of ratings would produce under the
// current live framework definition. Nothing is persisted.
func (uc *FrameworkUseCase) SampleScore(ctx context.Context, id types.FrameworkID, inputs []RatingInput) (*SampleResult, error) {
	framework, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshotOf(ctx, framework)
	if err != nil {
		return nil, err
	}

	ratings, err := resolveRatings(snapshot, inputs, true)
	if err != nil {
		return nil, err
	}

	score, err := uc.scoring.Compute(snapshot, ratings)
	if err != nil {
		return nil, err
	}

	return &SampleResult{
		Score:    score,
		Critical: scoring.IsCritical(snapshot, score),
	}, nil
}

// snapshotOf freezes the framework against the live catalog. The BIA use case
// does the same at initiation; here the snapshot is ephemeral.
func (uc *FrameworkUseCase) snapshotOf(ctx context.Context, framework *model.Framework) (*model.FrameworkSnapshot, error) {
	params := make(map[types.ParameterID]*model.Parameter, len(framework.Parameters))
	for _, fp := range framework.Parameters {
		param, err := uc.repo.Parameter().Get(ctx, fp.ParameterID)
		if err != nil {
			return nil, goerr.Wrap(ErrParameterNotFound, "framework references unknown parameter",
				goerr.V(FrameworkIDKey, framework.ID),
				goerr.V(ParameterIDKey, fp.ParameterID))
		}
		params[fp.ParameterID] = param
	}
	return model.NewFrameworkSnapshot(framework, params, time.Now().UTC())
}
