package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bgricker/ansireport/internal/report"
	"github.com/fatih/color"
)

// TimestampLayout is the layout used for the report timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Options configure a PrettyRenderer.
type Options struct {
	// Color enables terminal emphasis. Text content is identical either way.
	Color bool
	// Now supplies the report timestamp. Defaults to time.Now.
	Now func() time.Time
}

// PrettyRenderer renders an execution report in a human-friendly format.
type PrettyRenderer struct {
	out io.Writer
	now func() time.Time

	bold   *color.Color
	red    *color.Color
	green  *color.Color
	yellow *color.Color
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer, opts Options) *PrettyRenderer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	p := &PrettyRenderer{
		out:    out,
		now:    now,
		bold:   color.New(color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.bold, p.red, p.green, p.yellow} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// RenderReport writes the report for stats collected from logPath.
func (p *PrettyRenderer) RenderReport(logPath string, stats *report.Stats) error {
	var buf bytes.Buffer

	p.bold.Fprintln(&buf, "ANSIBLE EXECUTION REPORT")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Timestamp: %s\n", p.now().Format(TimestampLayout))
	fmt.Fprintf(&buf, "Log file: %s\n", logPath)
	fmt.Fprintln(&buf)

	p.bold.Fprintln(&buf, "EXECUTION STATISTICS:")
	fmt.Fprintln(&buf, strings.Repeat("-", 30))
	fmt.Fprintf(&buf, "Total tasks: %d\n", stats.TotalTasks)
	fmt.Fprintf(&buf, "Successful tasks: %d\n", stats.OKTasks)
	fmt.Fprintf(&buf, "Changed tasks: %d\n", stats.ChangedTasks)
	if stats.FailedTasks > 0 {
		p.red.Fprintf(&buf, "Failed tasks: %d", stats.FailedTasks)
		fmt.Fprintln(&buf)
	} else {
		fmt.Fprintf(&buf, "Failed tasks: %d\n", stats.FailedTasks)
	}
	fmt.Fprintf(&buf, "Skipped tasks: %d\n", stats.SkippedTasks)
	fmt.Fprintf(&buf, "Managed hosts: %d\n", stats.HostCount())
	fmt.Fprintln(&buf)

	if stats.FailedTasks > 0 {
		p.red.Fprintln(&buf, "FAILED TASKS DETAILS:")
		fmt.Fprintln(&buf, strings.Repeat("-", 30))
		for _, f := range stats.Failures {
			fmt.Fprintf(&buf, "Task: %s\n", f.Task)
			fmt.Fprintf(&buf, "Host: %s\n", f.Host)
			fmt.Fprintf(&buf, "Error: %s\n", f.Error)
			fmt.Fprintln(&buf)
		}
	}

	if rate, ok := stats.SuccessRate(); ok {
		c := p.yellow
		if stats.Success() {
			c = p.green
		}
		c.Fprintf(&buf, "Success rate: %.1f%%", rate)
		fmt.Fprintln(&buf)
	}

	_, err := buf.WriteTo(p.out)
	return err
}
