package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// EventKind classifies domain events emitted for external collaborators
// (notification delivery, export). The engine emits events; it never formats
// or delivers notifications itself.
type EventKind string

const (
	EventWorkItemAssigned         EventKind = "work_item_assigned"
	EventClarificationRequested   EventKind = "clarification_requested"
	EventSubmittedForApproval     EventKind = "submitted_for_approval"
	EventApproved                 EventKind = "approved"
	EventRejected                 EventKind = "rejected"
	EventApplicationRTORecomputed EventKind = "application_rto_recomputed"
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// Event is one domain event. Fields other than Kind and OccurredAt are set
// when meaningful for the kind.
type Event struct {
	Kind          EventKind
	BIAID         types.BIAID
	WorkItemID    types.WorkItemID
	ProcessID     types.ProcessID
	ApplicationID types.ApplicationID
	OwnerID       types.UserID
	Score         *float64
	RTO           *RTOValue
	Note          string
	OccurredAt    time.Time
}
