package scoring

import (
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// weightedAverage computes sum(score * weight) / 100 over the snapshot
// parameters. A parameter without a rating contributes zero; a rating for a
// parameter the snapshot does not carry means the stored data is broken.
type weightedAverage struct{}

func (f *weightedAverage) ID() types.FormulaID {
	return types.FormulaWeightedAverage
}

func (f *weightedAverage) Compute(snapshot *model.FrameworkSnapshot, ratings map[types.ParameterID]model.ParameterRating) (float64, error) {
	known := make(map[types.ParameterID]bool, len(snapshot.Parameters))

	var sum float64
	for _, param := range snapshot.Parameters {
		known[param.ParameterID] = true
		rating, ok := ratings[param.ParameterID]
		if !ok {
			continue
		}
		sum += float64(rating.Score) * float64(param.Weight)
	}

	for paramID := range ratings {
		if !known[paramID] {
			return 0, goerr.Wrap(model.ErrCorruptSnapshot, "rating references parameter missing from snapshot",
				goerr.V("framework_id", snapshot.FrameworkID),
				goerr.V(model.ParameterIDKey, paramID))
		}
	}

	return sum / 100.0, nil
}
