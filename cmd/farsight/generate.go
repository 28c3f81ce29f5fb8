package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/farsight/equilibrium"
	"github.com/katalvlaran/farsight/experiment"
	"github.com/katalvlaran/farsight/strategy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		outDir  string
		maxIter int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search pure-strategy equilibria and write them as strategy tables",
		Long: `generate runs best-response iteration for every experiment of the suite,
starting from the profile where nobody moves, and writes each fixed point
as <experiment>.csv in the strategy table layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer opts.teardown()
			cfgs, err := opts.configs()
			if err != nil {
				return err
			}
			if err = os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, cfg := range cfgs {
				m, err := experiment.Build(cfg)
				if err != nil {
					return fmt.Errorf("experiment %s: %w", cfg.Name, err)
				}
				table, err := equilibrium.Search(m.Game, maxIter)
				if err != nil {
					return fmt.Errorf("experiment %s: %w", cfg.Name, err)
				}
				path := filepath.Join(outDir, cfg.Name+".csv")
				if err = strategy.WriteFile(path, table); err != nil {
					return err
				}
				opts.logger.Info("strategy table written",
					zap.String("experiment", cfg.Name),
					zap.String("path", path))
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "generated_tables", "output directory")
	cmd.Flags().IntVar(&maxIter, "max-iterations", equilibrium.DefaultMaxIterations, "best-response iteration limit")

	return cmd
}
