package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CategoryID represents a unique identifier for an impact category
type CategoryID string

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// NewCategoryID generates a new random CategoryID
func NewCategoryID() CategoryID {
	return CategoryID(uuid.NewString())
}

// Validate checks if the CategoryID is valid
func (c CategoryID) Validate() error {
	if c == "" {
		return goerr.New("category ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("category ID must be lowercase alphanumeric with hyphens", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of CategoryID
func (c CategoryID) String() string {
	return string(c)
}

// ParameterID represents a unique identifier for an impact parameter
type ParameterID string

// NewParameterID generates a new random ParameterID
func NewParameterID() ParameterID {
	return ParameterID(uuid.NewString())
}

// Validate checks if the ParameterID is valid
func (p ParameterID) Validate() error {
	if p == "" {
		return goerr.New("parameter ID cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("parameter ID must be lowercase alphanumeric with hyphens", goerr.V("id", p))
	}
	return nil
}

// String returns the string representation of ParameterID
func (p ParameterID) String() string {
	return string(p)
}

// RTOOptionID represents a unique identifier for a recovery time objective option
type RTOOptionID string

// NewRTOOptionID generates a new random RTOOptionID
func NewRTOOptionID() RTOOptionID {
	return RTOOptionID(uuid.NewString())
}

// Validate checks if the RTOOptionID is valid
func (r RTOOptionID) Validate() error {
	if r == "" {
		return goerr.New("RTO option ID cannot be empty")
	}
	if !idPattern.MatchString(string(r)) {
		return goerr.New("RTO option ID must be lowercase alphanumeric with hyphens", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of RTOOptionID
func (r RTOOptionID) String() string {
	return string(r)
}
