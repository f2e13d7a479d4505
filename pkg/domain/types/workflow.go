package types

import "fmt"

// WorkflowAction is an action attempted against a process work item
type WorkflowAction string

const (
	ActionSaveDraft            WorkflowAction = "save_draft"
	ActionSubmitForReview      WorkflowAction = "submit_for_review"
	ActionRequestClarification WorkflowAction = "request_clarification"
	ActionForwardForApproval   WorkflowAction = "forward_for_approval"
	ActionApprove              WorkflowAction = "approve"
	ActionReject               WorkflowAction = "reject"
)

// AllWorkflowActions returns all valid workflow actions
func AllWorkflowActions() []WorkflowAction {
	return []WorkflowAction{
		ActionSaveDraft,
		ActionSubmitForReview,
		ActionRequestClarification,
		ActionForwardForApproval,
		ActionApprove,
		ActionReject,
	}
}

// IsValid checks if the workflow action is valid
func (a WorkflowAction) IsValid() bool {
	switch a {
	case ActionSaveDraft,
		ActionSubmitForReview,
		ActionRequestClarification,
		ActionForwardForApproval,
		ActionApprove,
		ActionReject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the workflow action
func (a WorkflowAction) String() string {
	return string(a)
}

// ParseWorkflowAction parses a string into a WorkflowAction
func ParseWorkflowAction(s string) (WorkflowAction, error) {
	action := WorkflowAction(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid workflow action: %s", s)
	}
	return action, nil
}

// Capability is the role capability required to perform a workflow action.
// Authorization itself is enforced by the calling layer; the workflow exposes
// the required capability per action so that layer can be verified against it.
type Capability string

const (
	CapabilityProcessOwner   Capability = "process_owner"
	CapabilityReviewer       Capability = "reviewer"
	CapabilityDepartmentHead Capability = "department_head"
)

// String returns the string representation of the capability
func (c Capability) String() string {
	return string(c)
}
