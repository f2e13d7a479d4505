package scoring

import (
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrUnknownFormula is returned when a snapshot names a formula no engine
// implements
var ErrUnknownFormula = goerr.New("unknown scoring formula")

// Formula computes a final impact score from a frozen snapshot and the
// submitted ratings. Implementations must be deterministic: the same
// snapshot and ratings always yield the same score.
type Formula interface {
	ID() types.FormulaID
	Compute(snapshot *model.FrameworkSnapshot, ratings map[types.ParameterID]model.ParameterRating) (float64, error)
}

// Service resolves the formula named by a snapshot and runs it
type Service struct {
	formulas map[types.FormulaID]Formula
}

func New() *Service {
	s := &Service{
		formulas: make(map[types.FormulaID]Formula),
	}
	s.Register(&weightedAverage{})
	return s
}

// Register adds a formula to the service. Registering an already known
// formula ID replaces the previous implementation.
func (s *Service) Register(f Formula) {
	s.formulas[f.ID()] = f
}

// Compute runs the formula the snapshot was frozen with
func (s *Service) Compute(snapshot *model.FrameworkSnapshot, ratings map[types.ParameterID]model.ParameterRating) (float64, error) {
	formula, ok := s.formulas[snapshot.Formula]
	if !ok {
		return 0, goerr.Wrap(ErrUnknownFormula, "no engine for formula",
			goerr.V("formula", snapshot.Formula),
			goerr.V("framework_id", snapshot.FrameworkID))
	}
	return formula.Compute(snapshot, ratings)
}

// IsCritical reports whether a score meets or exceeds the snapshot threshold
func IsCritical(snapshot *model.FrameworkSnapshot, score float64) bool {
	return score >= snapshot.Threshold
}
