package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// FrameworkID represents a unique identifier for a scoring framework
type FrameworkID string

// NewFrameworkID generates a new random FrameworkID
func NewFrameworkID() FrameworkID {
	return FrameworkID(uuid.NewString())
}

// Validate checks if the FrameworkID is valid
func (f FrameworkID) Validate() error {
	if f == "" {
		return goerr.New("framework ID cannot be empty")
	}
	return nil
}

// String returns the string representation of FrameworkID
func (f FrameworkID) String() string {
	return string(f)
}

// FormulaID identifies a scoring formula implementation
type FormulaID string

const (
	FormulaWeightedAverage FormulaID = "weighted_average"
)

// AllFormulaIDs returns all known formula identifiers
func AllFormulaIDs() []FormulaID {
	return []FormulaID{
		FormulaWeightedAverage,
	}
}

// IsValid checks if the formula ID is known
func (f FormulaID) IsValid() bool {
	switch f {
	case FormulaWeightedAverage:
		return true
	default:
		return false
	}
}

// String returns the string representation of the formula ID
func (f FormulaID) String() string {
	return string(f)
}
