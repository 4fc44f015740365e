// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/db47h/ledmatrix"
	"github.com/db47h/ledmatrix/hwtest"
	"github.com/db47h/ledmatrix/internal/config"
	"github.com/db47h/ledmatrix/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the startup test bench",
	Long: `Build the LED matrix chip, reset it, hold the first row of buttons until the
debouncers fire and check the multiplexed display against the pattern predicted
from the LFSR seed.

Examples:
  ledmatrix run
  ledmatrix run --config bench.yaml`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML bench configuration")
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !verbose {
		l, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
		if err != nil {
			return nil, err
		}
		logger = l
	}
	return cfg, nil
}

// startup runs the startup test on a new bench.
func startup(ctx context.Context, cfg *config.Config, log *zap.Logger) (*ledmatrix.Report, *hwtest.Bench, error) {
	top, err := ledmatrix.Top(cfg.Matrix())
	if err != nil {
		return nil, nil, err
	}
	b, err := hwtest.NewBench(top, append(cfg.BenchOptions(), hwtest.WithLogger(log))...)
	if err != nil {
		return nil, nil, err
	}
	defer b.Close()
	r, err := ledmatrix.Startup(ctx, b, cfg.Matrix())
	return r, b, err
}

func printReport(w io.Writer, r *ledmatrix.Report) {
	fmt.Fprintf(w, "seed %#04x, hold %d cycles, pattern %#03x\n", r.Seed, r.HoldCycles, r.Pattern)
	for _, c := range r.Checks {
		status := "ok"
		if c.Got != c.Want {
			status = "FAIL"
		}
		fmt.Fprintf(w, "  cycle %3d column %d: display %#03x, expected %#03x %s\n", c.Cycle, c.Column, c.Got, c.Want, status)
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("startup test", zap.Uint16("seed", cfg.Matrix().Seed), zap.Int("debounce_cycles", cfg.DebounceCycles))

	r, b, err := startup(cmd.Context(), cfg, logger)
	if r != nil {
		printReport(cmd.OutOrStdout(), r)
	}
	if err != nil {
		return errors.Wrap(err, "startup test failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "PASS (%d cycles, %v simulated)\n", b.Cycles(), b.SimTime())
	return nil
}
