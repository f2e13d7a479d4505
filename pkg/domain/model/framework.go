package model

import (
	"sort"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Framework is a named, weighted selection of parameters with a scoring
// formula and a criticality threshold.
type Framework struct {
	ID          types.FrameworkID
	Name        string
	Description string
	Formula     types.FormulaID
	Threshold   float64
	Parameters  []FrameworkParameter
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FrameworkParameter binds one parameter into a framework with its weight
type FrameworkParameter struct {
	ParameterID types.ParameterID
	Weight      int
	Order       int
}

// Validate checks the framework invariants: at least one parameter and
// weights summing to exactly 100.
func (f *Framework) Validate() error {
	if err := f.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid framework ID")
	}
	if f.Name == "" {
		return goerr.Wrap(ErrValidation, "framework name is required", goerr.V("id", f.ID))
	}
	if !f.Formula.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown formula", goerr.V("id", f.ID), goerr.V("formula", f.Formula))
	}
	if len(f.Parameters) == 0 {
		return goerr.Wrap(ErrEmptyFramework, "framework has no parameters", goerr.V("id", f.ID))
	}

	sum := 0
	seen := make(map[types.ParameterID]bool, len(f.Parameters))
	for _, fp := range f.Parameters {
		if err := fp.ParameterID.Validate(); err != nil {
			return goerr.Wrap(ErrValidation, "invalid parameter reference", goerr.V("framework_id", f.ID))
		}
		if seen[fp.ParameterID] {
			return goerr.Wrap(ErrValidation, "parameter selected twice",
				goerr.V("framework_id", f.ID), goerr.V(ParameterIDKey, fp.ParameterID))
		}
		seen[fp.ParameterID] = true
		if fp.Weight < 0 || fp.Weight > 100 {
			return goerr.Wrap(ErrValidation, "weight must be between 0 and 100",
				goerr.V("framework_id", f.ID), goerr.V(ParameterIDKey, fp.ParameterID), goerr.V("weight", fp.Weight))
		}
		sum += fp.Weight
	}
	if sum != 100 {
		return goerr.Wrap(ErrWeightSumInvalid, "weights do not sum to 100",
			goerr.V("framework_id", f.ID), goerr.V(WeightSumKey, sum))
	}
	return nil
}

// FrameworkSnapshot is a frozen copy of a framework taken when a BIA run is
// initiated. Later edits to the live framework or its parameters never alter
// in-flight or completed instances.
type FrameworkSnapshot struct {
	FrameworkID types.FrameworkID
	Name        string
	Formula     types.FormulaID
	Threshold   float64
	Parameters  []SnapshotParameter
	TakenAt     time.Time
}

// SnapshotParameter is a frozen parameter with its weight and rating
// definitions as of snapshot time.
type SnapshotParameter struct {
	ParameterID types.ParameterID
	Name        string
	Kind        types.RatingKind
	Weight      int
	Order       int
	Definitions []RatingDefinition
}

// NewFrameworkSnapshot freezes a framework and its resolved parameters.
// Parameters are recorded in the framework's configured order.
func NewFrameworkSnapshot(f *Framework, params map[types.ParameterID]*Parameter, now time.Time) (*FrameworkSnapshot, error) {
	snapshot := &FrameworkSnapshot{
		FrameworkID: f.ID,
		Name:        f.Name,
		Formula:     f.Formula,
		Threshold:   f.Threshold,
		Parameters:  make([]SnapshotParameter, 0, len(f.Parameters)),
		TakenAt:     now,
	}

	ordered := make([]FrameworkParameter, len(f.Parameters))
	copy(ordered, f.Parameters)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	for _, fp := range ordered {
		param, ok := params[fp.ParameterID]
		if !ok {
			return nil, goerr.New("framework references unknown parameter",
				goerr.V("framework_id", f.ID), goerr.V(ParameterIDKey, fp.ParameterID))
		}
		defs := make([]RatingDefinition, len(param.Definitions))
		copy(defs, param.Definitions)
		snapshot.Parameters = append(snapshot.Parameters, SnapshotParameter{
			ParameterID: param.ID,
			Name:        param.Name,
			Kind:        param.Kind,
			Weight:      fp.Weight,
			Order:       fp.Order,
			Definitions: defs,
		})
	}

	return snapshot, nil
}

// Parameter returns the snapshot parameter with the given ID
func (s *FrameworkSnapshot) Parameter(id types.ParameterID) (*SnapshotParameter, bool) {
	for i := range s.Parameters {
		if s.Parameters[i].ParameterID == id {
			return &s.Parameters[i], true
		}
	}
	return nil, false
}
