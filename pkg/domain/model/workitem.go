package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
)

// ProcessWorkItem is the per-process, per-BIA-cycle unit of workflow state.
// It references its process; it never owns it.
type ProcessWorkItem struct {
	ID        types.WorkItemID
	BIAID     types.BIAID
	ProcessID types.ProcessID
	OwnerID   types.UserID

	Ratings map[types.ParameterID]ParameterRating

	RecommendedRTO        *RTOValue
	RTOJustification      string
	ReviewerComments      string
	DepartmentHeadNote    string
	OverrideJustification string

	FinalImpactScore *float64
	FinalApprovedRTO *RTOValue

	Status      types.WorkItemStatus
	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ParameterRating is one submitted rating for one snapshot parameter.
// Score is resolved from the frozen snapshot definitions at submission time
// and never recomputed from the live catalog.
type ParameterRating struct {
	ParameterID types.ParameterID
	Label       string
	Value       *float64
	Note        string
	Score       int
}

// Clone returns a deep copy of the work item
func (w *ProcessWorkItem) Clone() *ProcessWorkItem {
	if w == nil {
		return nil
	}
	c := *w
	if w.Ratings != nil {
		c.Ratings = make(map[types.ParameterID]ParameterRating, len(w.Ratings))
		for k, v := range w.Ratings {
			if v.Value != nil {
				value := *v.Value
				v.Value = &value
			}
			c.Ratings[k] = v
		}
	}
	if w.SubmittedAt != nil {
		t := *w.SubmittedAt
		c.SubmittedAt = &t
	}
	if w.FinalImpactScore != nil {
		s := *w.FinalImpactScore
		c.FinalImpactScore = &s
	}
	c.RecommendedRTO = w.RecommendedRTO.Clone()
	c.FinalApprovedRTO = w.FinalApprovedRTO.Clone()
	return &c
}

// EffectiveRTO returns the approved RTO of the work item, or nil while the
// work item has not reached the approved state.
func (w *ProcessWorkItem) EffectiveRTO() *RTOValue {
	if w.Status != types.WorkItemStatusApproved {
		return nil
	}
	return w.FinalApprovedRTO
}
