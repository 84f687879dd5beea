package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bgricker/ansireport/internal/eventlog"
	"github.com/bgricker/ansireport/internal/report"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
}

func statsWith(records ...eventlog.Record) *report.Stats {
	stats := report.NewStats()
	for _, rec := range records {
		stats.Record(rec)
	}
	return stats
}

func TestPrettyRenderReportWithFailures(t *testing.T) {
	stats := statsWith(
		eventlog.Record{Event: eventlog.EventRunnerOK, Data: map[string]any{"remote_addr": "10.0.0.1", "changed": true}},
		eventlog.Record{Event: eventlog.EventRunnerFailed, Data: map[string]any{"remote_addr": "10.0.0.2", "task": "install pkg", "msg": "timeout"}},
	)

	buf := &bytes.Buffer{}
	renderer := NewPretty(buf, Options{Now: fixedNow})
	if err := renderer.RenderReport("/tmp/ansible.log", stats); err != nil {
		t.Fatalf("render report: %v", err)
	}

	want := strings.Join([]string{
		"ANSIBLE EXECUTION REPORT",
		strings.Repeat("=", 50),
		"Timestamp: 2024-03-09 14:05:07",
		"Log file: /tmp/ansible.log",
		"",
		"EXECUTION STATISTICS:",
		strings.Repeat("-", 30),
		"Total tasks: 2",
		"Successful tasks: 1",
		"Changed tasks: 1",
		"Failed tasks: 1",
		"Skipped tasks: 0",
		"Managed hosts: 2",
		"",
		"FAILED TASKS DETAILS:",
		strings.Repeat("-", 30),
		"Task: install pkg",
		"Host: 10.0.0.2",
		"Error: timeout",
		"",
		"Success rate: 50.0%",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n--- want\n%s\n--- got\n%s", want, got)
	}
}

func TestPrettyRenderReportEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer := NewPretty(buf, Options{Now: fixedNow})
	if err := renderer.RenderReport("empty.log", report.NewStats()); err != nil {
		t.Fatalf("render report: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "Success rate") {
		t.Fatalf("success rate must be omitted without tasks, got %q", out)
	}
	if strings.Contains(out, "FAILED TASKS DETAILS") {
		t.Fatalf("failure block must be omitted without failures, got %q", out)
	}
	if !strings.HasSuffix(out, "Managed hosts: 0\n\n") {
		t.Fatalf("expected report to end after statistics, got %q", out)
	}
}

func TestPrettyRenderReportRounding(t *testing.T) {
	stats := statsWith(
		eventlog.Record{Event: eventlog.EventRunnerOK, Data: map[string]any{}},
		eventlog.Record{Event: eventlog.EventRunnerOK, Data: map[string]any{}},
		eventlog.Record{Event: eventlog.EventRunnerFailed, Data: map[string]any{}},
	)

	buf := &bytes.Buffer{}
	if err := NewPretty(buf, Options{Now: fixedNow}).RenderReport("x.log", stats); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if !strings.Contains(buf.String(), "Success rate: 66.7%\n") {
		t.Fatalf("expected rounded success rate, got %q", buf.String())
	}
}

func TestPrettyRenderReportColor(t *testing.T) {
	stats := statsWith(
		eventlog.Record{Event: eventlog.EventRunnerFailed, Data: map[string]any{"task": "t"}},
	)

	plain := &bytes.Buffer{}
	colored := &bytes.Buffer{}
	if err := NewPretty(plain, Options{Now: fixedNow}).RenderReport("x.log", stats); err != nil {
		t.Fatalf("render plain: %v", err)
	}
	if err := NewPretty(colored, Options{Now: fixedNow, Color: true}).RenderReport("x.log", stats); err != nil {
		t.Fatalf("render colored: %v", err)
	}

	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output must not contain escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output must contain escape codes")
	}
	if stripANSI(colored.String()) != plain.String() {
		t.Fatalf("color must not change text:\n%q\n%q", stripANSI(colored.String()), plain.String())
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
