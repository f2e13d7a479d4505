package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/bcm-lab/atropos/pkg/cli/config"
	"github.com/bcm-lab/atropos/pkg/repository/memory"
	"github.com/bcm-lab/atropos/pkg/usecase"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

const seedCatalog = `
[[category]]
id = "cat-impact"
name = "Business Impact"
description = "Impact on the business when a process is disrupted"

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
id = "rto-1h"
label = "1 hour"
duration_minutes = 60
order = 1

[[rto_option]]
id = "rto-4h"
label = "4 hours"
duration_minutes = 240
order = 2

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

func TestLoadCatalogConfig(t *testing.T) {
	path := writeCatalog(t, seedCatalog)

	seed, err := config.LoadCatalogConfig(path)
	gt.NoError(t, err).Required()

	gt.Number(t, len(seed.Categories)).Equal(1)
	gt.Number(t, len(seed.Parameters)).Equal(2)
	gt.Number(t, len(seed.RTOOptions)).Equal(2)
	gt.Number(t, len(seed.Frameworks)).Equal(1)

	gt.Value(t, seed.Parameters[0].Kind).Equal("quantitative")
	gt.Number(t, len(seed.Parameters[0].Definitions)).Equal(2)
	gt.Value(t, seed.Parameters[0].Definitions[1].MaxValue).Nil()
	gt.Number(t, seed.Frameworks[0].Parameters[0].Weight).Equal(60)
}

func TestLoadCatalogConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadCatalogConfig(filepath.Join(t.TempDir(), "no.toml"))
		gt.Value(t, err).NotNil()
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeCatalog(t, "[[category\nid =")
		_, err := config.LoadCatalogConfig(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("duplicate parameter ID", func(t *testing.T) {
		path := writeCatalog(t, `
[[category]]
id = "cat-impact"
name = "Business Impact"

[[parameter]]
id = "param-dup"
category_id = "cat-impact"
name = "First"
kind = "qualitative"

  [[parameter.definition]]
  label = "Low"
  score = 1
  order = 1

[[parameter]]
id = "param-dup"
category_id = "cat-impact"
name = "Second"
kind = "qualitative"

  [[parameter.definition]]
  label = "Low"
  score = 1
  order = 1
`)
		_, err := config.LoadCatalogConfig(path)
		gt.Value(t, err).NotNil()
	})

	t.Run("overlapping quantitative ranges", func(t *testing.T) {
		path := writeCatalog(t, `
[[parameter]]
id = "param-overlap"
category_id = "cat-impact"
name = "Overlap"
kind = "quantitative"

  [[parameter.definition]]
  label = "Low"
  score = 1
  min_value = 0.0
  max_value = 10.0
  order = 1

  [[parameter.definition]]
  label = "High"
  score = 4
  min_value = 5.0
  order = 2
`)
		_, err := config.LoadCatalogConfig(path)
		gt.Value(t, err).NotNil()
	})
}

func TestCatalogConfigApply(t *testing.T) {
	ctx := context.Background()
	path := writeCatalog(t, seedCatalog)

	seed, err := config.LoadCatalogConfig(path)
	gt.NoError(t, err).Required()

	uc := usecase.New(memory.New())
	gt.NoError(t, seed.Apply(ctx, uc)).Required()

	param, err := uc.Catalog.GetParameter(ctx, "param-financial")
	gt.NoError(t, err).Required()
	gt.Value(t, param.Name).Equal("Financial Loss")
	gt.Number(t, len(param.Definitions)).Equal(2)

	fw, err := uc.Framework.Get(ctx, "fw-standard")
	gt.NoError(t, err).Required()
	gt.Number(t, len(fw.Parameters)).Equal(2)

	// Applying again upserts instead of failing on existing IDs
	seed.Parameters[0].Name = "Revenue Loss"
	gt.NoError(t, seed.Apply(ctx, uc)).Required()

	param, err = uc.Catalog.GetParameter(ctx, "param-financial")
	gt.NoError(t, err).Required()
	gt.Value(t, param.Name).Equal("Revenue Loss")

	options, err := uc.Catalog.ListRTOOptions(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, len(options)).Equal(2)
}
