package directory

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// Service answers asset lookups from the repository. It is the default
// AssetDirectory; deployments with an external inventory can swap in their
// own implementation.
type Service struct {
	repo interfaces.Repository
}

var _ interfaces.AssetDirectory = &Service{}

func New(repo interfaces.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetDepartment(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	return s.repo.Department().Get(ctx, id)
}

func (s *Service) ListActiveProcesses(ctx context.Context, departmentID types.DepartmentID) ([]*model.Process, error) {
	return s.repo.Process().ListActiveByDepartment(ctx, departmentID)
}

func (s *Service) GetActiveSupportingProcesses(ctx context.Context, applicationID types.ApplicationID) ([]*model.Process, error) {
	return s.repo.Process().ListActiveByApplication(ctx, applicationID)
}

func (s *Service) GetProcess(ctx context.Context, id types.ProcessID) (*model.Process, error) {
	return s.repo.Process().Get(ctx, id)
}

func (s *Service) GetApplication(ctx context.Context, id types.ApplicationID) (*model.Application, error) {
	return s.repo.Application().Get(ctx, id)
}
