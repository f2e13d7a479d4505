package config

import (
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Policy holds CLI flags for workflow policy configuration
type Policy struct {
	requireOverrideJustification bool
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "require-override-justification",
			Usage:       "Require a justification when the approved RTO differs from the owner's recommendation",
			Value:       true,
			Sources:     cli.EnvVars("ATROPOS_REQUIRE_OVERRIDE_JUSTIFICATION"),
			Destination: &p.requireOverrideJustification,
		},
	}
}

// Configure returns the workflow policy built from the flags
func (p *Policy) Configure() *usecase.Policy {
	return &usecase.Policy{
		RequireOverrideJustification: p.requireOverrideJustification,
	}
}
