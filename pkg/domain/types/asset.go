package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// DepartmentID identifies a department in the asset directory
type DepartmentID string

// NewDepartmentID generates a new random DepartmentID
func NewDepartmentID() DepartmentID {
	return DepartmentID(uuid.NewString())
}

// Validate checks if the DepartmentID is valid
func (d DepartmentID) Validate() error {
	if d == "" {
		return goerr.New("department ID cannot be empty")
	}
	return nil
}

// String returns the string representation of DepartmentID
func (d DepartmentID) String() string {
	return string(d)
}

// ProcessID identifies a business process in the asset directory
type ProcessID string

// NewProcessID generates a new random ProcessID
func NewProcessID() ProcessID {
	return ProcessID(uuid.NewString())
}

// Validate checks if the ProcessID is valid
func (p ProcessID) Validate() error {
	if p == "" {
		return goerr.New("process ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ProcessID
func (p ProcessID) String() string {
	return string(p)
}

// ApplicationID identifies an application in the asset directory
type ApplicationID string

// NewApplicationID generates a new random ApplicationID
func NewApplicationID() ApplicationID {
	return ApplicationID(uuid.NewString())
}

// Validate checks if the ApplicationID is valid
func (a ApplicationID) Validate() error {
	if a == "" {
		return goerr.New("application ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ApplicationID
func (a ApplicationID) String() string {
	return string(a)
}

// UserID identifies a user (process owner, reviewer, department head)
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}
