package main

import (
	"fmt"

	"github.com/katalvlaran/farsight/experiment"
	"github.com/katalvlaran/farsight/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runSuite evaluates every experiment, writes its tables and the summary.
// Verification failures are reported but do not stop the remaining
// experiments; they make the command fail at the end.
func runSuite(cmd *cobra.Command, opts *options) error {
	cfgs, err := opts.configs()
	if err != nil {
		return err
	}
	opts.logger.Info("running experiment suite",
		zap.Int("experiments", len(cfgs)),
		zap.String("out", opts.outDir))

	out := cmd.OutOrStdout()
	var summary []report.SummaryRow
	failed := 0
	for _, cfg := range cfgs {
		log := opts.logger.With(zap.String("experiment", cfg.Name))
		log.Debug("reading strategy table", zap.String("path", cfg.TablePath()))

		res, err := experiment.Run(cfg)
		if err != nil {
			return err
		}
		message := res.Verification.String()
		if !res.Verification.OK {
			failed++
			log.Error("equilibrium verification failed", zap.String("message", message))
		}

		paths, err := report.WriteResult(opts.outDir, res, experiment.Variables)
		if err != nil {
			return err
		}
		log.Info("experiment finished",
			zap.String("experiment_name", cfg.ExperimentName),
			zap.Bool("equilibrium", res.Verification.OK),
			zap.Strings("files", paths))

		fmt.Fprintln(out, "Experiment:", cfg.Name)
		fmt.Fprintln(out, "Status:", message)
		fmt.Fprintln(out, "----------")

		summary = append(summary, report.SummaryRow{
			Experiment:     cfg.Name,
			ExperimentName: cfg.ExperimentName,
			Passed:         res.Verification.OK,
			Message:        message,
		})
	}

	path, err := report.WriteSummary(opts.outDir, summary)
	if err != nil {
		return err
	}
	opts.logger.Debug("summary written", zap.String("path", path))

	if failed > 0 {
		return fmt.Errorf("%d of %d experiments failed equilibrium verification", failed, len(cfgs))
	}

	return nil
}
