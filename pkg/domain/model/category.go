package model

import (
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Category groups impact parameters (e.g. Financial, Operational, Legal)
type Category struct {
	ID          types.CategoryID
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the category is valid
func (c *Category) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, "invalid category ID")
	}
	if c.Name == "" {
		return goerr.Wrap(ErrValidation, "category name is required", goerr.V("id", c.ID))
	}
	return nil
}
