package usecase

import (
	"context"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/service/scoring"
	"github.com/bcm-lab/atropos/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// WorkflowUseCase drives process work items through the review workflow.
// Every status change goes through the guard table and a compare-and-set
// write, so two racing actors can never both win.
type WorkflowUseCase struct {
	repo      interfaces.Repository
	scoring   *scoring.Service
	publisher interfaces.Publisher
	policy    *Policy
	rto       *RTOUseCase
}

// DraftInput carries the owner's working state: partial or complete ratings,
// the recommended RTO, and its justification.
type DraftInput struct {
	Ratings                []RatingInput
	RecommendedRTOOptionID *types.RTOOptionID
	RTOJustification       string
}

// ForwardInput carries the reviewer's hand-off to the department head.
// Overrides replace the computed score or the owner's recommended RTO.
type ForwardInput struct {
	Comments              string
	OverrideScore         *float64
	OverrideRTOOptionID   *types.RTOOptionID
	OverrideJustification string
}

// ApproveInput carries the department head's decision. FinalRTOOptionID
// overrides the owner's recommendation when set.
type ApproveInput struct {
	FinalRTOOptionID      *types.RTOOptionID
	OverrideJustification string
	Note                  string
}

func (uc *WorkflowUseCase) Get(ctx context.Context, id types.WorkItemID) (*model.ProcessWorkItem, error) {
	item, err := uc.repo.WorkItem().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrWorkItemNotFound, "work item not found", goerr.V(WorkItemIDKey, id))
	}
	return item, nil
}

// SaveDraft stores partial ratings without leaving the initiated state
func (uc *WorkflowUseCase) SaveDraft(ctx context.Context, id types.WorkItemID, input DraftInput) (*model.ProcessWorkItem, error) {
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionSaveDraft)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshotFor(ctx, item)
	if err != nil {
		return nil, err
	}

	ratings, err := resolveRatings(snapshot, input.Ratings, false)
	if err != nil {
		return nil, err
	}

	rto, err := uc.resolveRTO(ctx, input.RecommendedRTOOptionID)
	if err != nil {
		return nil, err
	}

	expected := item.Status
	item.Ratings = ratings
	item.RecommendedRTO = rto
	item.RTOJustification = input.RTOJustification
	item.Status = next

	return uc.put(ctx, item, expected)
}

// SubmitForReview validates completeness, resolves every rating against the
// frozen snapshot, computes the impact score, and hands the item to review.
func (uc *WorkflowUseCase) SubmitForReview(ctx context.Context, id types.WorkItemID, input DraftInput) (*model.ProcessWorkItem, error) {
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionSubmitForReview)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshotFor(ctx, item)
	if err != nil {
		return nil, err
	}

	// Submission works over the stored draft overlaid with whatever ratings
	// came along, so a complete draft submits without being re-sent.
	incoming, err := resolveRatings(snapshot, input.Ratings, false)
	if err != nil {
		return nil, err
	}
	ratings := make(map[types.ParameterID]model.ParameterRating, len(item.Ratings)+len(incoming))
	for id, rating := range item.Ratings {
		ratings[id] = rating
	}
	for id, rating := range incoming {
		ratings[id] = rating
	}
	if err := ensureComplete(snapshot, ratings); err != nil {
		return nil, err
	}

	rto, err := uc.resolveRTO(ctx, input.RecommendedRTOOptionID)
	if err != nil {
		return nil, err
	}
	if rto == nil {
		rto = item.RecommendedRTO
	}
	if rto == nil {
		return nil, goerr.Wrap(model.ErrIncompleteSubmission, "a recommended RTO is required for submission",
			goerr.V(WorkItemIDKey, id))
	}

	score, err := uc.scoring.Compute(snapshot, ratings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expected := item.Status
	item.Ratings = ratings
	item.RecommendedRTO = rto
	if input.RTOJustification != "" {
		item.RTOJustification = input.RTOJustification
	}
	item.FinalImpactScore = &score
	item.SubmittedAt = &now
	item.Status = next

	return uc.put(ctx, item, expected)
}

// RequestClarification sends the item back to its owner with the reviewer's
// comments. Ratings entered so far are kept.
func (uc *WorkflowUseCase) RequestClarification(ctx context.Context, id types.WorkItemID, comments string) (*model.ProcessWorkItem, error) {
	if comments == "" {
		return nil, goerr.Wrap(ErrCommentRequired, "clarification requires comments", goerr.V(WorkItemIDKey, id))
	}

	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionRequestClarification)
	if err != nil {
		return nil, err
	}

	expected := item.Status
	item.ReviewerComments = comments
	item.SubmittedAt = nil
	item.Status = next

	updated, err := uc.put(ctx, item, expected)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, &model.Event{
		Kind:       model.EventClarificationRequested,
		BIAID:      updated.BIAID,
		WorkItemID: updated.ID,
		ProcessID:  updated.ProcessID,
		OwnerID:    updated.OwnerID,
		Note:       comments,
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}

// ForwardForApproval passes a reviewed item to the department head. The
// reviewer may override the computed score or the recommended RTO; the
// override is subject to the justification policy.
func (uc *WorkflowUseCase) ForwardForApproval(ctx context.Context, id types.WorkItemID, input ForwardInput) (*model.ProcessWorkItem, error) {
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionForwardForApproval)
	if err != nil {
		return nil, err
	}

	overridden := input.OverrideScore != nil || input.OverrideRTOOptionID != nil
	if overridden && uc.policy.RequireOverrideJustification && input.OverrideJustification == "" {
		return nil, goerr.Wrap(ErrJustificationRequired, "forwarding with an override requires a justification",
			goerr.V(WorkItemIDKey, id))
	}

	expected := item.Status
	if input.Comments != "" {
		item.ReviewerComments = input.Comments
	}
	if input.OverrideScore != nil {
		item.FinalImpactScore = input.OverrideScore
	}
	if input.OverrideRTOOptionID != nil {
		rto, err := uc.resolveRTO(ctx, input.OverrideRTOOptionID)
		if err != nil {
			return nil, err
		}
		item.RecommendedRTO = rto
	}
	if overridden {
		item.OverrideJustification = input.OverrideJustification
	}
	item.Status = next

	updated, err := uc.put(ctx, item, expected)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, &model.Event{
		Kind:       model.EventSubmittedForApproval,
		BIAID:      updated.BIAID,
		WorkItemID: updated.ID,
		ProcessID:  updated.ProcessID,
		OwnerID:    updated.OwnerID,
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}

// Approve finalizes the work item. The approved RTO is stored as a value
// copy, the score is frozen, and the supporting applications' derived RTOs
// are recomputed.
func (uc *WorkflowUseCase) Approve(ctx context.Context, id types.WorkItemID, input ApproveInput) (*model.ProcessWorkItem, error) {
	if input.Note == "" {
		return nil, goerr.Wrap(ErrCommentRequired, "approval requires a note", goerr.V(WorkItemIDKey, id))
	}

	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionApprove)
	if err != nil {
		return nil, err
	}

	final := item.RecommendedRTO
	if input.FinalRTOOptionID != nil {
		final, err = uc.resolveRTO(ctx, input.FinalRTOOptionID)
		if err != nil {
			return nil, err
		}
	}
	if final == nil {
		return nil, goerr.Wrap(model.ErrIncompleteSubmission, "approval requires an RTO", goerr.V(WorkItemIDKey, id))
	}

	overridden := item.RecommendedRTO == nil || final.OptionID != item.RecommendedRTO.OptionID
	if overridden && uc.policy.RequireOverrideJustification && input.OverrideJustification == "" {
		return nil, goerr.Wrap(ErrJustificationRequired, "approved RTO differs from recommendation",
			goerr.V(WorkItemIDKey, id))
	}

	// The stored score stands: it was computed at submission and may carry
	// a reviewer override. Recomputing here would discard the override.
	if item.FinalImpactScore == nil {
		return nil, goerr.Wrap(model.ErrCorruptSnapshot, "work item in review has no impact score",
			goerr.V(WorkItemIDKey, id))
	}

	expected := item.Status
	item.FinalApprovedRTO = final.Clone()
	item.DepartmentHeadNote = input.Note
	if overridden {
		item.OverrideJustification = input.OverrideJustification
	}
	item.Status = next

	updated, err := uc.put(ctx, item, expected)
	if err != nil {
		return nil, err
	}

	uc.refreshBIAStatus(ctx, updated.BIAID)

	publishEvent(ctx, uc.publisher, &model.Event{
		Kind:       model.EventApproved,
		BIAID:      updated.BIAID,
		WorkItemID: updated.ID,
		ProcessID:  updated.ProcessID,
		OwnerID:    updated.OwnerID,
		Score:      updated.FinalImpactScore,
		RTO:        updated.FinalApprovedRTO,
		OccurredAt: time.Now().UTC(),
	})

	// Derivation failure must not unwind an already persisted approval
	if err := uc.rto.RecomputeForProcess(ctx, updated.ProcessID); err != nil {
		logging.From(ctx).Warn("failed to recompute application RTOs after approval",
			"error", err, "process_id", updated.ProcessID)
	}

	return updated, nil
}

// Reject sends the item back to its owner with the department head's reason
func (uc *WorkflowUseCase) Reject(ctx context.Context, id types.WorkItemID, note string) (*model.ProcessWorkItem, error) {
	if note == "" {
		return nil, goerr.Wrap(ErrCommentRequired, "rejection requires a reason", goerr.V(WorkItemIDKey, id))
	}

	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := model.NextStatus(item.Status, types.ActionReject)
	if err != nil {
		return nil, err
	}

	expected := item.Status
	item.DepartmentHeadNote = note
	item.FinalApprovedRTO = nil
	item.SubmittedAt = nil
	item.Status = next

	updated, err := uc.put(ctx, item, expected)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, &model.Event{
		Kind:       model.EventRejected,
		BIAID:      updated.BIAID,
		WorkItemID: updated.ID,
		ProcessID:  updated.ProcessID,
		OwnerID:    updated.OwnerID,
		Note:       note,
		OccurredAt: time.Now().UTC(),
	})

	return updated, nil
}

func (uc *WorkflowUseCase) put(ctx context.Context, item *model.ProcessWorkItem, expected types.WorkItemStatus) (*model.ProcessWorkItem, error) {
	updated, err := uc.repo.WorkItem().PutWithStatus(ctx, item, expected)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store work item", goerr.V(WorkItemIDKey, item.ID))
	}
	return updated, nil
}

func (uc *WorkflowUseCase) snapshotFor(ctx context.Context, item *model.ProcessWorkItem) (*model.FrameworkSnapshot, error) {
	instance, err := uc.repo.BIA().Get(ctx, item.BIAID)
	if err != nil {
		return nil, goerr.Wrap(ErrBIANotFound, "BIA instance not found",
			goerr.V(BIAIDKey, item.BIAID), goerr.V(WorkItemIDKey, item.ID))
	}
	if instance.Snapshot == nil {
		return nil, goerr.Wrap(model.ErrCorruptSnapshot, "BIA instance has no snapshot",
			goerr.V(BIAIDKey, item.BIAID))
	}
	return instance.Snapshot, nil
}

// resolveRTO resolves a catalog option into a value copy. Only active options
// may be newly selected; retired ones live on solely as stored value copies.
func (uc *WorkflowUseCase) resolveRTO(ctx context.Context, optionID *types.RTOOptionID) (*model.RTOValue, error) {
	if optionID == nil {
		return nil, nil
	}
	option, err := uc.repo.RTOOption().Get(ctx, *optionID)
	if err != nil {
		return nil, goerr.Wrap(ErrRTOOptionNotFound, "RTO option not found", goerr.V(RTOOptionIDKey, *optionID))
	}
	if !option.Active {
		return nil, goerr.Wrap(ErrRTOOptionInactive, "RTO option is retired", goerr.V(RTOOptionIDKey, *optionID))
	}
	return option.Value(), nil
}

// refreshBIAStatus re-derives the aggregate status after a terminal
// transition. A failure is logged; the aggregate converges on the next one.
func (uc *WorkflowUseCase) refreshBIAStatus(ctx context.Context, biaID types.BIAID) {
	items, err := uc.repo.WorkItem().ListByBIA(ctx, biaID)
	if err != nil {
		logging.From(ctx).Warn("failed to list work items for aggregate status", "error", err, "bia_id", biaID)
		return
	}
	status := model.AggregateStatus(items)
	if err := uc.repo.BIA().UpdateStatus(ctx, biaID, status); err != nil {
		logging.From(ctx).Warn("failed to update BIA status", "error", err, "bia_id", biaID)
	}
}
