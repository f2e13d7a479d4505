package model

import "github.com/m-mizutani/goerr/v2"

// Named error kinds of the engine. Callers match them with errors.Is; the
// wrapping sites attach field-level context via goerr.V.
var (
	// ErrValidation is the base kind for malformed entities: missing names,
	// bad identifiers, out-of-range fields. Specific catalog faults below wrap
	// their own kinds instead.
	ErrValidation = goerr.New("validation failed")

	// ErrInvalidRangeSet is returned when a quantitative rating definition set
	// has overlapping or gapped ranges, more than one open-ended range, or an
	// open-ended range that is not last.
	ErrInvalidRangeSet = goerr.New("invalid quantitative range set")

	// ErrDuplicateLabel is returned when a qualitative rating definition set
	// contains two entries with the same label.
	ErrDuplicateLabel = goerr.New("duplicate rating label")

	// ErrWeightSumInvalid is returned when framework parameter weights do not
	// sum to exactly 100.
	ErrWeightSumInvalid = goerr.New("framework weights must sum to 100")

	// ErrEmptyFramework is returned when a framework selects zero parameters.
	ErrEmptyFramework = goerr.New("framework must select at least one parameter")

	// ErrIncompleteSubmission is returned when a work item is submitted without
	// a rating for every framework parameter.
	ErrIncompleteSubmission = goerr.New("every framework parameter must be rated before submission")

	// ErrInvalidTransition is returned when a workflow action is not allowed
	// from the work item's current status.
	ErrInvalidTransition = goerr.New("workflow transition not allowed")

	// ErrConcurrentModification is returned when a work item's status changed
	// between read and write. The caller should re-read and retry.
	ErrConcurrentModification = goerr.New("work item was modified concurrently")

	// ErrCorruptSnapshot indicates an internal consistency fault between a
	// stored rating and the frozen framework snapshot. It is fatal for the
	// triggering operation and must never be coerced into a partial result.
	ErrCorruptSnapshot = goerr.New("framework snapshot is inconsistent with stored ratings")
)

// Context keys for error values
const (
	ParameterIDKey     = "parameter_id"
	CurrentStatusKey   = "current_status"
	AttemptedActionKey = "attempted_action"
	WeightSumKey       = "weight_sum"
)
