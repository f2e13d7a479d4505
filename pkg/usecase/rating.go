package usecase

import (
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RatingInput is one rating as entered by a process owner. Label selects a
// qualitative level; Value is the measured quantity for quantitative
// parameters.
type RatingInput struct {
	ParameterID types.ParameterID
	Label       string
	Value       *float64
	Note        string
}

// resolveRatings validates inputs against the frozen snapshot and resolves
// each to its score. With requireComplete, every snapshot parameter must be
// rated.
func resolveRatings(snapshot *model.FrameworkSnapshot, inputs []RatingInput, requireComplete bool) (map[types.ParameterID]model.ParameterRating, error) {
	ratings := make(map[types.ParameterID]model.ParameterRating, len(inputs))

	for _, input := range inputs {
		param, ok := snapshot.Parameter(input.ParameterID)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidRating, "rating references parameter outside the frozen framework",
				goerr.V(ParameterIDKey, input.ParameterID))
		}
		if _, dup := ratings[input.ParameterID]; dup {
			return nil, goerr.Wrap(ErrInvalidRating, "parameter rated twice",
				goerr.V(ParameterIDKey, input.ParameterID))
		}

		var score int
		switch param.Kind {
		case types.RatingKindQualitative:
			resolved, ok := model.ResolveQualitative(param.Definitions, input.Label)
			if !ok {
				return nil, goerr.Wrap(ErrInvalidRating, "label is not a frozen rating level",
					goerr.V(ParameterIDKey, input.ParameterID),
					goerr.V("label", input.Label))
			}
			score = resolved
		case types.RatingKindQuantitative:
			if input.Value == nil {
				return nil, goerr.Wrap(ErrInvalidRating, "quantitative rating requires a value",
					goerr.V(ParameterIDKey, input.ParameterID))
			}
			resolved, ok := model.ResolveQuantitative(param.Definitions, *input.Value)
			if !ok {
				return nil, goerr.Wrap(ErrInvalidRating, "value falls outside every frozen range",
					goerr.V(ParameterIDKey, input.ParameterID),
					goerr.V("value", *input.Value))
			}
			score = resolved
		default:
			return nil, goerr.Wrap(model.ErrCorruptSnapshot, "snapshot parameter has unknown rating kind",
				goerr.V(ParameterIDKey, input.ParameterID),
				goerr.V("kind", param.Kind))
		}

		ratings[input.ParameterID] = model.ParameterRating{
			ParameterID: input.ParameterID,
			Label:       input.Label,
			Value:       input.Value,
			Note:        input.Note,
			Score:       score,
		}
	}

	if requireComplete {
		if err := ensureComplete(snapshot, ratings); err != nil {
			return nil, err
		}
	}

	return ratings, nil
}

// ensureComplete fails unless every snapshot parameter has a rating
func ensureComplete(snapshot *model.FrameworkSnapshot, ratings map[types.ParameterID]model.ParameterRating) error {
	for _, param := range snapshot.Parameters {
		if _, ok := ratings[param.ParameterID]; !ok {
			return goerr.Wrap(model.ErrIncompleteSubmission, "parameter not rated",
				goerr.V(ParameterIDKey, param.ParameterID))
		}
	}
	return nil
}
