package model

import "github.com/bcm-lab/atropos/pkg/domain/types"

// PrioritizedProcess is one row of the read-only prioritization view:
// a process joined with its latest BIA outcome.
type PrioritizedProcess struct {
	ProcessID      types.ProcessID
	ProcessName    string
	DepartmentID   types.DepartmentID
	BIAID          types.BIAID
	WorkItemID     types.WorkItemID
	WorkItemStatus types.WorkItemStatus
	ImpactScore    *float64
	EffectiveRTO   *RTOValue
	Critical       bool
}
