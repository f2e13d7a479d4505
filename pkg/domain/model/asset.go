package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Department is a continuity-relevant organizational unit
type Department struct {
	ID        types.DepartmentID
	Name      string
	HeadID    types.UserID
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the department is valid
func (d *Department) Validate() error {
	if err := d.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid department ID")
	}
	if d.Name == "" {
		return goerr.Wrap(ErrValidation, "department name is required", goerr.V("id", d.ID))
	}
	return nil
}

// Process is a business process of a department. Work items reference
// processes; they never own them.
type Process struct {
	ID             types.ProcessID
	DepartmentID   types.DepartmentID
	Name           string
	Description    string
	OwnerID        types.UserID
	ApplicationIDs []types.ApplicationID
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks if the process is valid
func (p *Process) Validate() error {
	if err := p.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid process ID")
	}
	if err := p.DepartmentID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid department ID", goerr.V("process_id", p.ID))
	}
	if p.Name == "" {
		return goerr.Wrap(ErrValidation, "process name is required", goerr.V("id", p.ID))
	}
	return nil
}

// Application is an application supporting one or more processes. DerivedRTO
// is maintained by the RTO derivation step: the minimum effective RTO among
// active supporting processes, nil when no supporting process has one.
type Application struct {
	ID         types.ApplicationID
	Name       string
	OwnerID    types.UserID
	DerivedRTO *RTOValue
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks if the application is valid
func (a *Application) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid application ID")
	}
	if a.Name == "" {
		return goerr.Wrap(ErrValidation, "application name is required", goerr.V("id", a.ID))
	}
	return nil
}
