// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/db47h/ledmatrix/internal/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ledmatrix",
	Short: "LFSR predictor and test bench for the 3x3 LED matrix",
	Long: `ledmatrix predicts the state of the 16 bits LFSR (taps 15, 13, 12, 10) of the
LED matrix design and runs the design startup test on a simulated chip.

Examples:
  ledmatrix advance --seed 0xBEEF --cycles 16   # predicted LFSR state
  ledmatrix period --seed 1                     # tail and period of a seed
  ledmatrix run --config bench.yaml             # startup test
  ledmatrix sweep --seeds 1,0xACE1,0xBEEF -j 4  # startup test for many seeds`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level, false)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// parseInt parses decimal, hex (0x), octal (0o) or binary (0b) integers.
func parseInt(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
