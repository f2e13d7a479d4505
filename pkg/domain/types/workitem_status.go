package types

import "fmt"

// WorkItemStatus represents the workflow status of a process work item
type WorkItemStatus string

const (
	// WorkItemStatusInitiated is the entry state: the work item exists but the
	// owner has not submitted yet. Clarification requests and rejections revert
	// to this state.
	WorkItemStatusInitiated WorkItemStatus = "initiated"

	// WorkItemStatusSubmittedForReview means the process owner submitted a
	// complete set of ratings for review.
	WorkItemStatusSubmittedForReview WorkItemStatus = "submitted_for_review"

	// WorkItemStatusReviewInProgress means the reviewer forwarded the work item
	// to the department head for final approval.
	WorkItemStatusReviewInProgress WorkItemStatus = "review_in_progress"

	// WorkItemStatusApproved is the terminal state.
	WorkItemStatusApproved WorkItemStatus = "approved"
)

// AllWorkItemStatuses returns all valid work item statuses
func AllWorkItemStatuses() []WorkItemStatus {
	return []WorkItemStatus{
		WorkItemStatusInitiated,
		WorkItemStatusSubmittedForReview,
		WorkItemStatusReviewInProgress,
		WorkItemStatusApproved,
	}
}

// IsValid checks if the work item status is valid
func (s WorkItemStatus) IsValid() bool {
	switch s {
	case WorkItemStatusInitiated,
		WorkItemStatusSubmittedForReview,
		WorkItemStatusReviewInProgress,
		WorkItemStatusApproved:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are possible
func (s WorkItemStatus) IsTerminal() bool {
	return s == WorkItemStatusApproved
}

// String returns the string representation of the work item status
func (s WorkItemStatus) String() string {
	return string(s)
}

// ParseWorkItemStatus parses a string into a WorkItemStatus
func ParseWorkItemStatus(s string) (WorkItemStatus, error) {
	status := WorkItemStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid work item status: %s", s)
	}
	return status, nil
}
