package usecase

import (
	"context"
	"sort"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/service/scoring"
	"github.com/m-mizutani/goerr/v2"
)

// PriorityUseCase builds the recovery priority view: processes ranked by
// their assessed impact, highest first.
type PriorityUseCase struct {
	repo      interfaces.Repository
	directory interfaces.AssetDirectory
}

// PrioritySort selects the ranking order of the view
type PrioritySort string

const (
	PrioritySortScoreDesc PrioritySort = "score_desc"
	PrioritySortRTOAsc    PrioritySort = "rto_asc"
)

// PriorityFilter narrows the priority view. Zero values mean no filtering;
// the zero Sort ranks by score descending.
type PriorityFilter struct {
	DepartmentID types.DepartmentID
	BIAID        types.BIAID
	Status       types.WorkItemStatus
	CriticalOnly bool
	Sort         PrioritySort
}

func (uc *PriorityUseCase) ListPrioritizedProcesses(ctx context.Context, filter PriorityFilter) ([]*model.PrioritizedProcess, error) {
	instances, err := uc.instances(ctx, filter)
	if err != nil {
		return nil, err
	}

	var rows []*model.PrioritizedProcess
	for _, instance := range instances {
		items, err := uc.repo.WorkItem().ListByBIA(ctx, instance.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list work items", goerr.V(BIAIDKey, instance.ID))
		}

		for _, item := range items {
			row := &model.PrioritizedProcess{
				ProcessID:      item.ProcessID,
				DepartmentID:   instance.DepartmentID,
				BIAID:          instance.ID,
				WorkItemID:     item.ID,
				WorkItemStatus: item.Status,
				ImpactScore:    item.FinalImpactScore,
				EffectiveRTO:   item.EffectiveRTO(),
			}
			if item.FinalImpactScore != nil && instance.Snapshot != nil {
				row.Critical = scoring.IsCritical(instance.Snapshot, *item.FinalImpactScore)
			}
			if process, err := uc.directory.GetProcess(ctx, item.ProcessID); err == nil {
				row.ProcessName = process.Name
			}

			if filter.Status != "" && item.Status != filter.Status {
				continue
			}
			if filter.CriticalOnly && !row.Critical {
				continue
			}
			rows = append(rows, row)
		}
	}

	sortPriorityRows(rows, filter.Sort)
	return rows, nil
}

func (uc *PriorityUseCase) instances(ctx context.Context, filter PriorityFilter) ([]*model.BIAInstance, error) {
	if filter.BIAID != "" {
		instance, err := uc.repo.BIA().Get(ctx, filter.BIAID)
		if err != nil {
			return nil, goerr.Wrap(ErrBIANotFound, "BIA instance not found", goerr.V(BIAIDKey, filter.BIAID))
		}
		if filter.DepartmentID != "" && instance.DepartmentID != filter.DepartmentID {
			return nil, nil
		}
		return []*model.BIAInstance{instance}, nil
	}
	if filter.DepartmentID != "" {
		return uc.repo.BIA().ListByDepartment(ctx, filter.DepartmentID)
	}
	return uc.repo.BIA().List(ctx)
}

// sortPriorityRows orders by score descending or RTO ascending; rows without
// a score or RTO sink to the bottom. Ties break on process name, then work
// item ID for stability.
func sortPriorityRows(rows []*model.PrioritizedProcess, by PrioritySort) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if by == PrioritySortRTOAsc {
			switch {
			case a.EffectiveRTO == nil && b.EffectiveRTO == nil:
			case a.EffectiveRTO == nil:
				return false
			case b.EffectiveRTO == nil:
				return true
			case a.EffectiveRTO.DurationMinutes != b.EffectiveRTO.DurationMinutes:
				return a.EffectiveRTO.DurationMinutes < b.EffectiveRTO.DurationMinutes
			}
		} else {
			switch {
			case a.ImpactScore == nil && b.ImpactScore == nil:
			case a.ImpactScore == nil:
				return false
			case b.ImpactScore == nil:
				return true
			case *a.ImpactScore != *b.ImpactScore:
				return *a.ImpactScore > *b.ImpactScore
			}
		}
		if a.ProcessName != b.ProcessName {
			return a.ProcessName < b.ProcessName
		}
		return a.WorkItemID < b.WorkItemID
	})
}
