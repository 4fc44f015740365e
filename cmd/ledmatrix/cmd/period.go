// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/db47h/ledmatrix/lfsr"
	"github.com/spf13/cobra"
)

var periodSeed string

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Print the tail length and period of the LFSR sequence from a seed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := parseInt("seed", periodSeed)
		if err != nil {
			return err
		}
		// validates the seed range
		s, err := lfsr.AdvanceInt(seed, 0)
		if err != nil {
			return err
		}
		tail, period := lfsr.Cycle(s)
		fmt.Fprintf(cmd.OutOrStdout(), "tail %d, period %d\n", tail, period)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(periodCmd)

	periodCmd.Flags().StringVarP(&periodSeed, "seed", "s", "0xBEEF", "LFSR seed")
}
