// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/db47h/ledmatrix"
	"github.com/db47h/ledmatrix/lfsr"
	"github.com/spf13/cobra"
)

var (
	advanceSeed   string
	advanceCycles string
)

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Print the LFSR state after a number of clock edges",
	Long: `Print the LFSR state after the given number of clock edges, together with the
LED pattern (low 9 bits) it would load.

Examples:
  ledmatrix advance --seed 0xBEEF --cycles 16`,
	Args: cobra.NoArgs,
	RunE: runAdvance,
}

func init() {
	rootCmd.AddCommand(advanceCmd)

	advanceCmd.Flags().StringVarP(&advanceSeed, "seed", "s", "0xBEEF", "LFSR seed")
	advanceCmd.Flags().StringVarP(&advanceCycles, "cycles", "n", "16", "number of clock edges")
}

func runAdvance(cmd *cobra.Command, args []string) error {
	seed, err := parseInt("seed", advanceSeed)
	if err != nil {
		return err
	}
	cycles, err := parseInt("cycle count", advanceCycles)
	if err != nil {
		return err
	}
	v, err := lfsr.AdvanceInt(seed, cycles)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "state   %#04x\npattern %#03x\n", v, v&ledmatrix.PatternMask)
	return nil
}
