package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// RTOOption is one entry of the ordered recovery-time catalog
// (e.g. "4 hours" = 240 minutes).
type RTOOption struct {
	ID              types.RTOOptionID
	Label           string
	DurationMinutes int
	Order           int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks if the RTO option is valid
func (o *RTOOption) Validate() error {
	if err := o.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid RTO option ID")
	}
	if o.Label == "" {
		return goerr.Wrap(ErrValidation, "RTO option label is required", goerr.V("id", o.ID))
	}
	if o.DurationMinutes <= 0 {
		return goerr.Wrap(ErrValidation, "RTO duration must be positive",
			goerr.V("id", o.ID), goerr.V("duration_minutes", o.DurationMinutes))
	}
	return nil
}

// RTOValue is a value copy of a catalog option, stored on work items so that
// retiring the catalog entry never corrupts approved history.
type RTOValue struct {
	OptionID        types.RTOOptionID
	Label           string
	DurationMinutes int
}

// Value returns a value copy of the option for storage on a work item
func (o *RTOOption) Value() *RTOValue {
	return &RTOValue{
		OptionID:        o.ID,
		Label:           o.Label,
		DurationMinutes: o.DurationMinutes,
	}
}

// Clone returns a copy of the value, or nil for nil
func (v *RTOValue) Clone() *RTOValue {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
