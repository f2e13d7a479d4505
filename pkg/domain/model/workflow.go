package model

import (
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TransitionKey identifies one cell of the workflow guard table
type TransitionKey struct {
	Status types.WorkItemStatus
	Action types.WorkflowAction
}

// TransitionRule is the outcome of an allowed transition
type TransitionRule struct {
	Next       types.WorkItemStatus
	Capability types.Capability
}

// Transitions is the workflow guard table. The state machine is data, not a
// class hierarchy: every allowed (status, action) pair appears here, and the
// required capability per action is derivable from the same table.
var Transitions = map[TransitionKey]TransitionRule{
	{types.WorkItemStatusInitiated, types.ActionSaveDraft}: {
		Next:       types.WorkItemStatusInitiated,
		Capability: types.CapabilityProcessOwner,
	},
	{types.WorkItemStatusInitiated, types.ActionSubmitForReview}: {
		Next:       types.WorkItemStatusSubmittedForReview,
		Capability: types.CapabilityProcessOwner,
	},
	{types.WorkItemStatusSubmittedForReview, types.ActionRequestClarification}: {
		Next:       types.WorkItemStatusInitiated,
		Capability: types.CapabilityReviewer,
	},
	{types.WorkItemStatusSubmittedForReview, types.ActionForwardForApproval}: {
		Next:       types.WorkItemStatusReviewInProgress,
		Capability: types.CapabilityReviewer,
	},
	{types.WorkItemStatusReviewInProgress, types.ActionRequestClarification}: {
		Next:       types.WorkItemStatusInitiated,
		Capability: types.CapabilityReviewer,
	},
	{types.WorkItemStatusReviewInProgress, types.ActionApprove}: {
		Next:       types.WorkItemStatusApproved,
		Capability: types.CapabilityDepartmentHead,
	},
	{types.WorkItemStatusReviewInProgress, types.ActionReject}: {
		Next:       types.WorkItemStatusInitiated,
		Capability: types.CapabilityDepartmentHead,
	},
}

// NextStatus resolves the guard table for a (status, action) pair. Disallowed
// pairs return ErrInvalidTransition naming the current status and the
// attempted action so callers can explain the refusal.
func NextStatus(status types.WorkItemStatus, action types.WorkflowAction) (types.WorkItemStatus, error) {
	rule, ok := Transitions[TransitionKey{Status: status, Action: action}]
	if !ok {
		return "", goerr.Wrap(ErrInvalidTransition, "action not allowed in current status",
			goerr.V(CurrentStatusKey, status.String()),
			goerr.V(AttemptedActionKey, action.String()))
	}
	return rule.Next, nil
}

// RequiredCapability returns the role capability required for an action. The
// capability is a property of the action across all source states.
func RequiredCapability(action types.WorkflowAction) (types.Capability, bool) {
	for key, rule := range Transitions {
		if key.Action == action {
			return rule.Capability, true
		}
	}
	return "", false
}
