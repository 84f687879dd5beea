package main

import (
	"fmt"

	"github.com/bgricker/ansireport/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ansireport [LOGFILE]",
		Short: "Summarize an Ansible JSON event log",
		Long: `ansireport reads a line-delimited JSON event log written by Ansible,
counts ok, changed, failed and skipped tasks, and prints a summary report.

The exit status is 0 when no task failed and 1 otherwise. A missing or
unreadable log also exits 1 unless --distinct-exit-codes is set, in which
case it exits 2.

When LOGFILE is omitted, log_file from .ansireport.yml is used, falling back
to ` + config.DefaultLogFile + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       fmt.Sprintf("%s (%s) %s", version, commit, date),
		RunE:          runAnalyze,
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.String("color", config.ColorAuto, "colorize the report (auto|always|never)")
	flags.BoolP("verbose", "v", false, "print skipped line and host details to stderr")
	flags.Bool("distinct-exit-codes", false, "exit 2 instead of 1 when the log cannot be read")

	return cmd
}
