package model_test

import (
	"errors"
	"testing"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNextStatus(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		cases := []struct {
			status types.WorkItemStatus
			action types.WorkflowAction
			next   types.WorkItemStatus
		}{
			{types.WorkItemStatusInitiated, types.ActionSaveDraft, types.WorkItemStatusInitiated},
			{types.WorkItemStatusInitiated, types.ActionSubmitForReview, types.WorkItemStatusSubmittedForReview},
			{types.WorkItemStatusSubmittedForReview, types.ActionRequestClarification, types.WorkItemStatusInitiated},
			{types.WorkItemStatusSubmittedForReview, types.ActionForwardForApproval, types.WorkItemStatusReviewInProgress},
			{types.WorkItemStatusReviewInProgress, types.ActionRequestClarification, types.WorkItemStatusInitiated},
			{types.WorkItemStatusReviewInProgress, types.ActionApprove, types.WorkItemStatusApproved},
			{types.WorkItemStatusReviewInProgress, types.ActionReject, types.WorkItemStatusInitiated},
		}

		for _, tc := range cases {
			next, err := model.NextStatus(tc.status, tc.action)
			gt.NoError(t, err).Required()
			gt.Value(t, next).Equal(tc.next)
		}
	})

	t.Run("every other pair is rejected with a named error", func(t *testing.T) {
		for _, status := range types.AllWorkItemStatuses() {
			for _, action := range types.AllWorkflowActions() {
				_, allowed := model.Transitions[model.TransitionKey{Status: status, Action: action}]
				next, err := model.NextStatus(status, action)
				if allowed {
					gt.NoError(t, err)
					gt.Bool(t, next.IsValid()).True()
				} else {
					gt.Error(t, err)
					gt.Bool(t, errors.Is(err, model.ErrInvalidTransition)).True()
				}
			}
		}
	})

	t.Run("approved is terminal", func(t *testing.T) {
		for _, action := range types.AllWorkflowActions() {
			_, err := model.NextStatus(types.WorkItemStatusApproved, action)
			gt.Error(t, err)
		}
	})
}

func TestRequiredCapability(t *testing.T) {
	cases := map[types.WorkflowAction]types.Capability{
		types.ActionSaveDraft:            types.CapabilityProcessOwner,
		types.ActionSubmitForReview:      types.CapabilityProcessOwner,
		types.ActionRequestClarification: types.CapabilityReviewer,
		types.ActionForwardForApproval:   types.CapabilityReviewer,
		types.ActionApprove:              types.CapabilityDepartmentHead,
		types.ActionReject:               types.CapabilityDepartmentHead,
	}

	for action, want := range cases {
		capability, ok := model.RequiredCapability(action)
		gt.Bool(t, ok).True()
		gt.Value(t, capability).Equal(want)
	}

	_, ok := model.RequiredCapability("escalate")
	gt.Bool(t, ok).False()
}
