package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrCategoryNotFound    = goerr.New("category not found")
	ErrParameterNotFound   = goerr.New("parameter not found")
	ErrFrameworkNotFound   = goerr.New("framework not found")
	ErrRTOOptionNotFound   = goerr.New("RTO option not found")
	ErrBIANotFound         = goerr.New("BIA instance not found")
	ErrWorkItemNotFound    = goerr.New("work item not found")
	ErrDepartmentNotFound  = goerr.New("department not found")
	ErrProcessNotFound     = goerr.New("process not found")
	ErrApplicationNotFound = goerr.New("application not found")

	// Initiation errors
	ErrDepartmentInactive = goerr.New("department is inactive")
	ErrFrameworkInactive  = goerr.New("framework is inactive")

	// Workflow input errors
	ErrCommentRequired       = goerr.New("a comment is required for this action")
	ErrJustificationRequired = goerr.New("overriding the recommended RTO requires a justification")
	ErrInvalidRating         = goerr.New("rating does not match the frozen definitions")
	ErrRTOOptionInactive     = goerr.New("RTO option is retired")
)

// Context keys for error values
const (
	CategoryIDKey    = "category_id"
	ParameterIDKey   = "parameter_id"
	FrameworkIDKey   = "framework_id"
	RTOOptionIDKey   = "rto_option_id"
	BIAIDKey         = "bia_id"
	WorkItemIDKey    = "work_item_id"
	DepartmentIDKey  = "department_id"
	ProcessIDKey     = "process_id"
	ApplicationIDKey = "application_id"
)
