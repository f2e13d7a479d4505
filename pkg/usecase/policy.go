package usecase

// Policy holds deployment-level workflow policy toggles
type Policy struct {
	// RequireOverrideJustification makes the final approval fail when the
	// approved RTO differs from the owner's recommendation and no
	// justification is given.
	RequireOverrideJustification bool
}

// DefaultPolicy returns the default policy: overrides must be justified
func DefaultPolicy() *Policy {
	return &Policy{
		RequireOverrideJustification: true,
	}
}
