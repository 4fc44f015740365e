// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"runtime"

	"github.com/db47h/ledmatrix"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	sweepSeeds []string
	sweepJobs  int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the startup test bench for several seeds in parallel",
	Long: `Run the startup test for every given seed, each on its own simulated chip.
Other settings come from the configuration file, if any.

Examples:
  ledmatrix sweep --seeds 1,2,0xACE1,0xBEEF --jobs 4`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringSliceVar(&sweepSeeds, "seeds", []string{"0xBEEF"}, "comma separated list of seeds")
	sweepCmd.Flags().IntVarP(&sweepJobs, "jobs", "j", runtime.NumCPU(), "number of benches run in parallel")
	sweepCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML bench configuration")
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	if sweepJobs < 1 {
		return errors.Errorf("invalid job count %d", sweepJobs)
	}
	seeds := make([]int, len(sweepSeeds))
	for i, s := range sweepSeeds {
		v, err := parseInt("seed", s)
		if err != nil {
			return err
		}
		seeds[i] = int(v)
	}

	reports := make([]*ledmatrix.Report, len(seeds))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(sweepJobs)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			cfg := *base
			cfg.Seed = seed
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := logger.With(zap.Int("seed", seed))
			r, _, err := startup(ctx, &cfg, log)
			if err != nil {
				return errors.Wrapf(err, "seed %#04x", seed)
			}
			log.Debug("startup test passed", zap.Uint16("pattern", r.Pattern))
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, r := range reports {
		fmt.Fprintf(w, "%#04x  pattern %#03x  PASS\n", r.Seed, r.Pattern)
	}
	return nil
}
