package types

import "fmt"

// RatingKind fixes which rating definition shape is legal for a parameter
type RatingKind string

const (
	RatingKindQualitative  RatingKind = "qualitative"
	RatingKindQuantitative RatingKind = "quantitative"
)

// AllRatingKinds returns all valid rating kinds
func AllRatingKinds() []RatingKind {
	return []RatingKind{
		RatingKindQualitative,
		RatingKindQuantitative,
	}
}

// IsValid checks if the rating kind is valid
func (k RatingKind) IsValid() bool {
	switch k {
	case RatingKindQualitative, RatingKindQuantitative:
		return true
	default:
		return false
	}
}

// String returns the string representation of the rating kind
func (k RatingKind) String() string {
	return string(k)
}

// ParseRatingKind parses a string into a RatingKind
func ParseRatingKind(s string) (RatingKind, error) {
	kind := RatingKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid rating kind: %s", s)
	}
	return kind, nil
}
