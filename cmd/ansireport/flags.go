package main

import (
	"fmt"

	"github.com/bgricker/ansireport/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("color") {
		v, err := flags.GetString("color")
		if err != nil {
			return values, fmt.Errorf("parse --color: %w", err)
		}
		values.Color = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("distinct-exit-codes") {
		v, err := flags.GetBool("distinct-exit-codes")
		if err != nil {
			return values, fmt.Errorf("parse --distinct-exit-codes: %w", err)
		}
		values.DistinctExitCodes = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
