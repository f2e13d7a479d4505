package usecase

import (
	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/service/directory"
	"github.com/bcm-lab/atropos/pkg/service/scoring"
)

type UseCases struct {
	repo      interfaces.Repository
	scoring   *scoring.Service
	directory interfaces.AssetDirectory
	publisher interfaces.Publisher
	policy    *Policy

	Catalog   *CatalogUseCase
	Framework *FrameworkUseCase
	Asset     *AssetUseCase
	BIA       *BIAUseCase
	Workflow  *WorkflowUseCase
	RTO       *RTOUseCase
	Priority  *PriorityUseCase
}

type Option func(*UseCases)

// WithPublisher sets the event publisher. Without one, events are dropped.
func WithPublisher(publisher interfaces.Publisher) Option {
	return func(uc *UseCases) {
		uc.publisher = publisher
	}
}

// WithDirectory replaces the repository-backed asset directory, e.g. with an
// adapter over an external inventory system.
func WithDirectory(dir interfaces.AssetDirectory) Option {
	return func(uc *UseCases) {
		uc.directory = dir
	}
}

// WithPolicy overrides the default workflow policy
func WithPolicy(policy *Policy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		scoring: scoring.New(),
		policy:  DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.directory == nil {
		uc.directory = directory.New(repo)
	}

	uc.Catalog = &CatalogUseCase{repo: repo}
	uc.Framework = &FrameworkUseCase{repo: repo, scoring: uc.scoring}
	uc.RTO = &RTOUseCase{repo: repo, directory: uc.directory, publisher: uc.publisher}
	uc.Asset = &AssetUseCase{repo: repo, rto: uc.RTO}
	uc.BIA = &BIAUseCase{repo: repo, directory: uc.directory, publisher: uc.publisher}
	uc.Workflow = &WorkflowUseCase{
		repo:      repo,
		scoring:   uc.scoring,
		publisher: uc.publisher,
		policy:    uc.policy,
		rto:       uc.RTO,
	}
	uc.Priority = &PriorityUseCase{repo: repo, directory: uc.directory}

	return uc
}
