package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bgricker/ansireport/internal/config"
	"github.com/bgricker/ansireport/internal/eventlog"
	"github.com/bgricker/ansireport/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitUnreadable = 2
)

// clock supplies the report timestamp.
var clock = time.Now

// exitError carries a process exit status for an outcome already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var errTasksFailed = &exitError{code: exitFailure}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := config.ResolveLogFile(cfg, args)
	result, err := analyzeLog(path)
	if err != nil {
		return logFailure(cmd.OutOrStdout(), cfg, err)
	}

	renderer := output.NewPretty(cmd.OutOrStdout(), output.Options{
		Color: useColor(cfg.Color, cmd.OutOrStdout()),
		Now:   clock,
	})
	if err := renderer.RenderReport(result.path, result.stats); err != nil {
		return err
	}

	if cfg.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: skipped %d of %d line(s) that were not JSON\n", result.summary.Skipped, result.summary.Lines)
		if hosts := result.stats.Hosts(); len(hosts) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: managed hosts: %s\n", strings.Join(hosts, ", "))
		}
	}

	if !result.stats.Success() {
		return errTasksFailed
	}
	return nil
}

// logFailure writes the unreadable-log diagnostic to out in place of the
// report and returns the matching exit status.
func logFailure(out io.Writer, cfg config.Config, err error) error {
	code := exitFailure
	if cfg.DistinctExitCodes {
		code = exitUnreadable
	}

	var notFound *eventlog.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(out, "Error: Log file %s not found\n", notFound.Path)
		return &exitError{code: code}
	}
	var ioErr *eventlog.IOError
	if errors.As(err, &ioErr) {
		fmt.Fprintf(out, "Error reading log file: %v\n", ioErr.Err)
		return &exitError{code: code}
	}
	return err
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}
