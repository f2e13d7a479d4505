package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/bcm-lab/atropos/pkg/cli/config"
	"github.com/bcm-lab/atropos/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a seed catalog file without applying it",
		Flags:   catalogCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if catalogCfg.Path() == "" {
				return goerr.New("catalog-config is required")
			}

			seed, err := config.LoadCatalogConfig(catalogCfg.Path())
			if err != nil {
				return goerr.Wrap(err, "catalog validation failed")
			}

			logger.Info("Catalog validation passed",
				"path", catalogCfg.Path(),
				"categories", len(seed.Categories),
				"parameters", len(seed.Parameters),
				"rto_options", len(seed.RTOOptions),
				"frameworks", len(seed.Frameworks),
			)
			for _, fw := range seed.Frameworks {
				logger.Info("Framework validated",
					"id", fw.ID,
					"name", fw.Name,
					"parameter_count", len(fw.Parameters),
				)
			}

			return nil
		},
	}
}
