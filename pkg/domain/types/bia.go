package types

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// BIAID identifies one BIA run for a department
type BIAID string

// NewBIAID generates a new random BIAID
func NewBIAID() BIAID {
	return BIAID(uuid.NewString())
}

// Validate checks if the BIAID is valid
func (b BIAID) Validate() error {
	if b == "" {
		return goerr.New("BIA ID cannot be empty")
	}
	return nil
}

// String returns the string representation of BIAID
func (b BIAID) String() string {
	return string(b)
}

// WorkItemID identifies one per-process work item within a BIA run
type WorkItemID string

// NewWorkItemID generates a new random WorkItemID
func NewWorkItemID() WorkItemID {
	return WorkItemID(uuid.NewString())
}

// Validate checks if the WorkItemID is valid
func (w WorkItemID) Validate() error {
	if w == "" {
		return goerr.New("work item ID cannot be empty")
	}
	return nil
}

// String returns the string representation of WorkItemID
func (w WorkItemID) String() string {
	return string(w)
}

// BIAFrequency is the recurrence frequency of a BIA cycle.
// Scheduling the next cycle is an external concern; the frequency is
// recorded on the instance for reporting.
type BIAFrequency string

const (
	BIAFrequencyMonthly    BIAFrequency = "monthly"
	BIAFrequencyQuarterly  BIAFrequency = "quarterly"
	BIAFrequencySemiAnnual BIAFrequency = "semi-annual"
	BIAFrequencyAnnual     BIAFrequency = "annual"
)

// AllBIAFrequencies returns all valid frequencies
func AllBIAFrequencies() []BIAFrequency {
	return []BIAFrequency{
		BIAFrequencyMonthly,
		BIAFrequencyQuarterly,
		BIAFrequencySemiAnnual,
		BIAFrequencyAnnual,
	}
}

// IsValid checks if the frequency is valid
func (f BIAFrequency) IsValid() bool {
	switch f {
	case BIAFrequencyMonthly,
		BIAFrequencyQuarterly,
		BIAFrequencySemiAnnual,
		BIAFrequencyAnnual:
		return true
	default:
		return false
	}
}

// String returns the string representation of the frequency
func (f BIAFrequency) String() string {
	return string(f)
}

// ParseBIAFrequency parses a string into a BIAFrequency
func ParseBIAFrequency(s string) (BIAFrequency, error) {
	freq := BIAFrequency(s)
	if !freq.IsValid() {
		return "", fmt.Errorf("invalid BIA frequency: %s", s)
	}
	return freq, nil
}

// BIAStatus is the aggregate status of a BIA instance, derived from its work items
type BIAStatus string

const (
	BIAStatusInProgress BIAStatus = "in_progress"
	BIAStatusCompleted  BIAStatus = "completed"
)

// IsValid checks if the BIA status is valid
func (s BIAStatus) IsValid() bool {
	switch s {
	case BIAStatusInProgress, BIAStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the BIA status
func (s BIAStatus) String() string {
	return string(s)
}
