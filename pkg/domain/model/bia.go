package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// BIAInstance is one BIA run for a department. The framework is frozen into
// Snapshot at initiation; the instance owns its work items.
type BIAInstance struct {
	ID           types.BIAID
	DepartmentID types.DepartmentID
	Snapshot     *FrameworkSnapshot
	Frequency    types.BIAFrequency
	Status       types.BIAStatus
	InitiatedAt  time.Time
	UpdatedAt    time.Time
}

// AggregateStatus derives the instance status from its work items: completed
// once every work item is approved, in progress otherwise. An instance with
// zero work items is completed by definition.
func AggregateStatus(items []*ProcessWorkItem) types.BIAStatus {
	for _, item := range items {
		if item.Status != types.WorkItemStatusApproved {
			return types.BIAStatusInProgress
		}
	}
	return types.BIAStatusCompleted
}
