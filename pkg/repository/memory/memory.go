package memory

import (
	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	category    *categoryRepository
	parameter   *parameterRepository
	framework   *frameworkRepository
	rtoOption   *rtoOptionRepository
	bia         *biaRepository
	workItem    *workItemRepository
	department  *departmentRepository
	process     *processRepository
	application *applicationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		category:    newCategoryRepository(),
		parameter:   newParameterRepository(),
		framework:   newFrameworkRepository(),
		rtoOption:   newRTOOptionRepository(),
		bia:         newBIARepository(),
		workItem:    newWorkItemRepository(),
		department:  newDepartmentRepository(),
		process:     newProcessRepository(),
		application: newApplicationRepository(),
	}
}

func (m *Memory) Category() interfaces.CategoryRepository {
	return m.category
}

func (m *Memory) Parameter() interfaces.ParameterRepository {
	return m.parameter
}

func (m *Memory) Framework() interfaces.FrameworkRepository {
	return m.framework
}

func (m *Memory) RTOOption() interfaces.RTOOptionRepository {
	return m.rtoOption
}

func (m *Memory) BIA() interfaces.BIARepository {
	return m.bia
}

func (m *Memory) WorkItem() interfaces.WorkItemRepository {
	return m.workItem
}

func (m *Memory) Department() interfaces.DepartmentRepository {
	return m.department
}

func (m *Memory) Process() interfaces.ProcessRepository {
	return m.process
}

func (m *Memory) Application() interfaces.ApplicationRepository {
	return m.application
}

func (m *Memory) Close() error {
	return nil
}
