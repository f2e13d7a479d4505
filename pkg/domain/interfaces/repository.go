package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Category() CategoryRepository
	Parameter() ParameterRepository
	Framework() FrameworkRepository
	RTOOption() RTOOptionRepository
	BIA() BIARepository
	WorkItem() WorkItemRepository
	Department() DepartmentRepository
	Process() ProcessRepository
	Application() ApplicationRepository

	Close() error
}
