package model

import (
	"sort"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Parameter is one impact dimension scored during a BIA (e.g. Revenue Loss).
// Its rating kind fixes which RatingDefinition shape is legal.
type Parameter struct {
	ID          types.ParameterID
	CategoryID  types.CategoryID
	Name        string
	Description string
	Kind        types.RatingKind
	Definitions []RatingDefinition
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RatingDefinition is one selectable rating of a parameter. Qualitative
// definitions carry only a label; quantitative ones carry a value range.
// MaxValue == nil marks an open-ended range (no upper bound).
type RatingDefinition struct {
	Label    string
	Score    int
	MinValue *float64
	MaxValue *float64
	Order    int
}

// Validate checks if the parameter itself (without definitions) is valid
func (p *Parameter) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid parameter ID")
	}
	if err := p.CategoryID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid category ID", goerr.V(ParameterIDKey, p.ID))
	}
	if p.Name == "" {
		return goerr.Wrap(ErrValidation, "parameter name is required", goerr.V(ParameterIDKey, p.ID))
	}
	if !p.Kind.IsValid() {
		return goerr.Wrap(ErrValidation, "invalid rating kind", goerr.V(ParameterIDKey, p.ID), goerr.V("kind", p.Kind))
	}
	return nil
}

// ValidateDefinitions checks the full rating definition set against the
// parameter's kind. The set is validated as a whole: per-kind rules are total
// over the variant rather than scattered across call sites.
func (p *Parameter) ValidateDefinitions(defs []RatingDefinition) error {
	if len(defs) == 0 {
		return goerr.Wrap(ErrValidation, "at least one rating definition is required", goerr.V(ParameterIDKey, p.ID))
	}

	switch p.Kind {
	case types.RatingKindQualitative:
		return validateQualitativeSet(p.ID, defs)
	case types.RatingKindQuantitative:
		return validateQuantitativeSet(p.ID, defs)
	default:
		return goerr.Wrap(ErrValidation, "invalid rating kind", goerr.V(ParameterIDKey, p.ID), goerr.V("kind", p.Kind))
	}
}

func validateQualitativeSet(id types.ParameterID, defs []RatingDefinition) error {
	labels := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.Label == "" {
			return goerr.Wrap(ErrValidation, "rating label is required", goerr.V(ParameterIDKey, id))
		}
		if def.MinValue != nil || def.MaxValue != nil {
			return goerr.Wrap(ErrValidation, "qualitative rating must not carry a value range",
				goerr.V(ParameterIDKey, id), goerr.V("label", def.Label))
		}
		if labels[def.Label] {
			return goerr.Wrap(ErrDuplicateLabel, "qualitative labels must be unique",
				goerr.V(ParameterIDKey, id), goerr.V("label", def.Label))
		}
		labels[def.Label] = true
	}
	return nil
}

func validateQuantitativeSet(id types.ParameterID, defs []RatingDefinition) error {
	ordered := make([]RatingDefinition, len(defs))
	copy(ordered, defs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	openEnded := 0
	for i, def := range ordered {
		if def.MinValue == nil {
			return goerr.Wrap(ErrInvalidRangeSet, "quantitative range requires a lower bound",
				goerr.V(ParameterIDKey, id), goerr.V("order", def.Order))
		}
		if def.MaxValue == nil {
			openEnded++
			if openEnded > 1 {
				return goerr.Wrap(ErrInvalidRangeSet, "only one range may be open-ended",
					goerr.V(ParameterIDKey, id))
			}
			if i != len(ordered)-1 {
				return goerr.Wrap(ErrInvalidRangeSet, "the open-ended range must be last",
					goerr.V(ParameterIDKey, id), goerr.V("order", def.Order))
			}
			continue
		}
		if *def.MaxValue < *def.MinValue {
			return goerr.Wrap(ErrInvalidRangeSet, "range upper bound is below lower bound",
				goerr.V(ParameterIDKey, id), goerr.V("min", *def.MinValue), goerr.V("max", *def.MaxValue))
		}
	}

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.MaxValue == nil {
			// Caught above: open-ended must be last.
			continue
		}
		if *cur.MinValue <= *prev.MaxValue {
			return goerr.Wrap(ErrInvalidRangeSet, "ranges overlap",
				goerr.V(ParameterIDKey, id),
				goerr.V("previous_max", *prev.MaxValue), goerr.V("next_min", *cur.MinValue))
		}
		// Ranges are inclusive on both ends; adjacency of more than one unit
		// leaves values unresolvable between them.
		if *cur.MinValue-*prev.MaxValue > 1 {
			return goerr.Wrap(ErrInvalidRangeSet, "ranges leave a gap",
				goerr.V(ParameterIDKey, id),
				goerr.V("previous_max", *prev.MaxValue), goerr.V("next_min", *cur.MinValue))
		}
	}

	return nil
}

// ResolveQualitative returns the score for the given label
func ResolveQualitative(defs []RatingDefinition, label string) (int, bool) {
	for _, def := range defs {
		if def.Label == label {
			return def.Score, true
		}
	}
	return 0, false
}

// ResolveQuantitative returns the score for the range containing the value
func ResolveQuantitative(defs []RatingDefinition, value float64) (int, bool) {
	for _, def := range defs {
		if def.MinValue == nil || value < *def.MinValue {
			continue
		}
		if def.MaxValue == nil || value <= *def.MaxValue {
			return def.Score, true
		}
	}
	return 0, false
}
