// Command farsight reproduces the farsighted coalition formation results
// for solar geoengineering governance.
//
// Run without arguments to evaluate the built-in experiment suite against
// ./strategy_tables and write result tables to ./results.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/farsight/experiment"
	"github.com/katalvlaran/farsight/internal/logging"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type options struct {
	configPath string
	tablesDir  string
	outDir     string
	verbose    bool
	profile    string

	logger *zap.Logger
	runID  string
	prof   interface{ Stop() }
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "farsight",
		Short: "Farsighted coalition formation equilibria for solar geoengineering governance",
		Long: `farsight evaluates strategy tables of a three-country coalition formation
game, checks that they form a farsighted equilibrium and writes the value
functions, payoffs, transition probabilities and geoengineering levels of
every experiment as CSV and LaTeX tables.

Run without arguments to evaluate the built-in experiment suite.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			opts.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// PersistentPostRun is skipped when RunE fails.
			defer opts.teardown()
			return runSuite(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML experiment suite (default: built-in suite)")
	flags.StringVar(&opts.tablesDir, "tables", "", "strategy table directory (overrides the suite)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&opts.profile, "profile", "", "write a cpu or mem profile to the output directory")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "results", "output directory")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (o *options) setup() error {
	var err error
	if o.logger, o.runID, err = logging.New(o.verbose); err != nil {
		return err
	}

	var mode func(*profile.Profile)
	switch o.profile {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		o.teardown()
		return fmt.Errorf("unknown profile %q (want cpu or mem)", o.profile)
	}
	o.prof = profile.Start(mode, profile.ProfilePath(o.outDir), profile.Quiet, profile.NoShutdownHook)

	return nil
}

// teardown stops profiling and flushes the logger. It is safe to call
// more than once.
func (o *options) teardown() {
	if o.prof != nil {
		o.prof.Stop()
		o.prof = nil
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// configs loads the suite and applies command-line overrides.
func (o *options) configs() ([]experiment.Config, error) {
	suite := experiment.DefaultSuite()
	if o.configPath != "" {
		var err error
		if suite, err = experiment.LoadSuite(o.configPath); err != nil {
			return nil, err
		}
	}
	cfgs, err := suite.Configs()
	if err != nil {
		return nil, err
	}
	if o.tablesDir != "" {
		for k := range cfgs {
			cfgs[k].StrategyTableDir = o.tablesDir
		}
	}

	return cfgs, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "farsight", version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
