package config

import (
	"context"
	"errors"
	"os"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Catalog holds CLI flags for seeding the rating catalog from a TOML file
type Catalog struct {
	path string
}

// Flags returns CLI flags for catalog seeding
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog-config",
			Usage:       "Path to a TOML file seeding categories, parameters, RTO options and frameworks",
			Sources:     cli.EnvVars("ATROPOS_CATALOG_CONFIG"),
			Destination: &c.path,
		},
	}
}

// Path returns the configured file path, empty when seeding is disabled
func (c *Catalog) Path() string {
	return c.path
}

// CatalogConfig is the TOML shape of a seed catalog
type CatalogConfig struct {
	Categories []CategoryConfig  `toml:"category"`
	Parameters []ParameterConfig `toml:"parameter"`
	RTOOptions []RTOOptionConfig `toml:"rto_option"`
	Frameworks []FrameworkConfig `toml:"framework"`
}

// CategoryConfig is one seeded impact category
type CategoryConfig struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// ParameterConfig is one seeded impact parameter with its rating definitions
type ParameterConfig struct {
	ID          string             `toml:"id"`
	CategoryID  string             `toml:"category_id"`
	Name        string             `toml:"name"`
	Description string             `toml:"description"`
	Kind        string             `toml:"kind"`
	Definitions []DefinitionConfig `toml:"definition"`
}

// DefinitionConfig is one seeded rating definition
type DefinitionConfig struct {
	Label    string   `toml:"label"`
	Score    int      `toml:"score"`
	MinValue *float64 `toml:"min_value"`
	MaxValue *float64 `toml:"max_value"`
	Order    int      `toml:"order"`
}

// RTOOptionConfig is one seeded recovery-time option
type RTOOptionConfig struct {
	ID              string `toml:"id"`
	Label           string `toml:"label"`
	DurationMinutes int    `toml:"duration_minutes"`
	Order           int    `toml:"order"`
}

// FrameworkConfig is one seeded scoring framework
type FrameworkConfig struct {
	ID          string                     `toml:"id"`
	Name        string                     `toml:"name"`
	Description string                     `toml:"description"`
	Formula     string                     `toml:"formula"`
	Threshold   float64                    `toml:"threshold"`
	Parameters  []FrameworkParameterConfig `toml:"parameter"`
}

// FrameworkParameterConfig binds a seeded parameter into a framework
type FrameworkParameterConfig struct {
	ParameterID string `toml:"parameter_id"`
	Weight      int    `toml:"weight"`
	Order       int    `toml:"order"`
}

// LoadCatalogConfig loads and validates a seed catalog from a TOML file
func LoadCatalogConfig(path string) (*CatalogConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog config", goerr.V("path", path))
	}

	var config CatalogConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog config validation failed", goerr.V("path", path))
	}

	return &config, nil
}

// Validate checks the whole seed catalog through the domain validators
func (c *CatalogConfig) Validate() error {
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if seen[cat.ID] {
			return goerr.New("duplicate category ID", goerr.V("id", cat.ID))
		}
		seen[cat.ID] = true
		if err := cat.toModel().Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V("id", cat.ID))
		}
	}

	seen = make(map[string]bool)
	for _, param := range c.Parameters {
		if seen[param.ID] {
			return goerr.New("duplicate parameter ID", goerr.V("id", param.ID))
		}
		seen[param.ID] = true
		m := param.toModel()
		if err := m.Validate(); err != nil {
			return goerr.Wrap(err, "invalid parameter", goerr.V("id", param.ID))
		}
		if err := m.ValidateDefinitions(m.Definitions); err != nil {
			return goerr.Wrap(err, "invalid parameter definitions", goerr.V("id", param.ID))
		}
	}

	seen = make(map[string]bool)
	for _, option := range c.RTOOptions {
		if seen[option.ID] {
			return goerr.New("duplicate RTO option ID", goerr.V("id", option.ID))
		}
		seen[option.ID] = true
		if err := option.toModel().Validate(); err != nil {
			return goerr.Wrap(err, "invalid RTO option", goerr.V("id", option.ID))
		}
	}

	seen = make(map[string]bool)
	for _, framework := range c.Frameworks {
		if seen[framework.ID] {
			return goerr.New("duplicate framework ID", goerr.V("id", framework.ID))
		}
		seen[framework.ID] = true
		if err := framework.toModel().Validate(); err != nil {
			return goerr.Wrap(err, "invalid framework", goerr.V("id", framework.ID))
		}
	}

	return nil
}

// Apply upserts the seed catalog through the use case layer
func (c *CatalogConfig) Apply(ctx context.Context, uc *usecase.UseCases) error {
	for _, cat := range c.Categories {
		m := cat.toModel()
		if _, err := uc.Catalog.GetCategory(ctx, m.ID); err == nil {
			if _, err := uc.Catalog.UpdateCategory(ctx, m); err != nil {
				return goerr.Wrap(err, "failed to update seeded category", goerr.V("id", cat.ID))
			}
			continue
		} else if !errors.Is(err, usecase.ErrCategoryNotFound) {
			return err
		}
		if _, err := uc.Catalog.CreateCategory(ctx, m); err != nil {
			return goerr.Wrap(err, "failed to create seeded category", goerr.V("id", cat.ID))
		}
	}

	for _, param := range c.Parameters {
		m := param.toModel()
		if _, err := uc.Catalog.GetParameter(ctx, m.ID); err == nil {
			if _, err := uc.Catalog.UpdateParameter(ctx, m); err != nil {
				return goerr.Wrap(err, "failed to update seeded parameter", goerr.V("id", param.ID))
			}
			continue
		} else if !errors.Is(err, usecase.ErrParameterNotFound) {
			return err
		}
		if _, err := uc.Catalog.CreateParameter(ctx, m); err != nil {
			return goerr.Wrap(err, "failed to create seeded parameter", goerr.V("id", param.ID))
		}
	}

	for _, option := range c.RTOOptions {
		m := option.toModel()
		if _, err := uc.Catalog.GetRTOOption(ctx, m.ID); err == nil {
			if _, err := uc.Catalog.UpdateRTOOption(ctx, m); err != nil {
				return goerr.Wrap(err, "failed to update seeded RTO option", goerr.V("id", option.ID))
			}
			continue
		} else if !errors.Is(err, usecase.ErrRTOOptionNotFound) {
			return err
		}
		if _, err := uc.Catalog.CreateRTOOption(ctx, m); err != nil {
			return goerr.Wrap(err, "failed to create seeded RTO option", goerr.V("id", option.ID))
		}
	}

	for _, framework := range c.Frameworks {
		m := framework.toModel()
		if _, err := uc.Framework.Get(ctx, m.ID); err == nil {
			if _, err := uc.Framework.Update(ctx, m); err != nil {
				return goerr.Wrap(err, "failed to update seeded framework", goerr.V("id", framework.ID))
			}
			continue
		} else if !errors.Is(err, usecase.ErrFrameworkNotFound) {
			return err
		}
		if _, err := uc.Framework.Create(ctx, m); err != nil {
			return goerr.Wrap(err, "failed to create seeded framework", goerr.V("id", framework.ID))
		}
	}

	return nil
}

func (c *CategoryConfig) toModel() *model.Category {
	return &model.Category{
		ID:          types.CategoryID(c.ID),
		Name:        c.Name,
		Description: c.Description,
		Active:      true,
	}
}

func (p *ParameterConfig) toModel() *model.Parameter {
	defs := make([]model.RatingDefinition, len(p.Definitions))
	for i, d := range p.Definitions {
		defs[i] = model.RatingDefinition{
			Label:    d.Label,
			Score:    d.Score,
			MinValue: d.MinValue,
			MaxValue: d.MaxValue,
			Order:    d.Order,
		}
	}
	return &model.Parameter{
		ID:          types.ParameterID(p.ID),
		CategoryID:  types.CategoryID(p.CategoryID),
		Name:        p.Name,
		Description: p.Description,
		Kind:        types.RatingKind(p.Kind),
		Definitions: defs,
		Active:      true,
	}
}

func (o *RTOOptionConfig) toModel() *model.RTOOption {
	return &model.RTOOption{
		ID:              types.RTOOptionID(o.ID),
		Label:           o.Label,
		DurationMinutes: o.DurationMinutes,
		Order:           o.Order,
		Active:          true,
	}
}

func (f *FrameworkConfig) toModel() *model.Framework {
	params := make([]model.FrameworkParameter, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = model.FrameworkParameter{
			ParameterID: types.ParameterID(p.ParameterID),
			Weight:      p.Weight,
			Order:       p.Order,
		}
	}
	return &model.Framework{
		ID:          types.FrameworkID(f.ID),
		Name:        f.Name,
		Description: f.Description,
		Formula:     types.FormulaID(f.Formula),
		Threshold:   f.Threshold,
		Parameters:  params,
		Active:      true,
	}
}
