package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/bcm-lab/atropos/pkg/cli"
)

const validCatalog = `
[[category]]
id = "cat-impact"
name = "Business Impact"

[[parameter]]
id = "param-financial"
category_id = "cat-impact"
name = "Financial Loss"
kind = "quantitative"

  [[parameter.definition]]
  label = "Minor"
  score = 1
  min_value = 0.0
  max_value = 10.0
  order = 1

  [[parameter.definition]]
  label = "Severe"
  score = 4
  min_value = 11.0
  order = 2

[[parameter]]
id = "param-customer"
category_id = "cat-impact"
name = "Customer Impact"
kind = "qualitative"

  [[parameter.definition]]
  label = "Low"
  score = 1
  order = 1

  [[parameter.definition]]
  label = "High"
  score = 4
  order = 2

[[rto_option]]
id = "rto-4h"
label = "4 hours"
duration_minutes = 240
order = 1

[[framework]]
id = "fw-standard"
name = "Standard BIA"
formula = "weighted_average"
threshold = 3.0

  [[framework.parameter]]
  parameter_id = "param-financial"
  weight = 60
  order = 1

  [[framework.parameter]]
  parameter_id = "param-customer"
  weight = 40
  order = 2
`

func TestRun_ValidateCommand_ValidCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	catalogPath := filepath.Join(tmpDir, "catalog.toml")
	err := os.WriteFile(catalogPath, []byte(validCatalog), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"atropos", "validate", "--catalog-config", catalogPath}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	catalogPath := filepath.Join(tmpDir, "catalog.toml")

	// Invalid: framework weights do not sum to 100
	content := `
[[category]]
id = "cat-impact"
name = "Business Impact"

[[parameter]]
id = "param-customer"
category_id = "cat-impact"
name = "Customer Impact"
kind = "qualitative"

  [[parameter.definition]]
  label = "Low"
  score = 1
  order = 1

[[framework]]
id = "fw-broken"
name = "Broken"
formula = "weighted_average"
threshold = 3.0

  [[framework.parameter]]
  parameter_id = "param-customer"
  weight = 50
  order = 1
`
	err := os.WriteFile(catalogPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"atropos", "validate", "--catalog-config", catalogPath}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_MissingCatalog(t *testing.T) {
	tmpDir := t.TempDir()
	catalogPath := filepath.Join(tmpDir, "nonexistent.toml")

	err := cli.Run(context.Background(), []string{"atropos", "validate", "--catalog-config", catalogPath}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_NoCatalogFlag(t *testing.T) {
	err := cli.Run(context.Background(), []string{"atropos", "validate"}, "test")
	gt.Value(t, err).NotNil()
}
