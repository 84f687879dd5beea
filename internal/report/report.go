package report

import (
	"encoding/json"
	"sort"

	"github.com/bgricker/ansireport/internal/eventlog"
)

const (
	unknownValue   = "Unknown"
	noErrorMessage = "No error message"
)

// Failure captures a single failed task.
type Failure struct {
	Task  string
	Host  string
	Error string
}

// Stats aggregates task outcomes across a log.
//
// TotalTasks counts ok and failed tasks only; skipped tasks are tracked
// separately and do not contribute to it.
type Stats struct {
	TotalTasks   int
	OKTasks      int
	ChangedTasks int
	FailedTasks  int
	SkippedTasks int
	Failures     []Failure

	// hosts maps a type-tagged remote_addr to its display form.
	hosts map[string]string
}

// NewStats returns empty stats.
func NewStats() *Stats {
	return &Stats{hosts: make(map[string]string)}
}

// Record folds a single log record into the stats. Records without
// event_data are ignored.
func (s *Stats) Record(rec eventlog.Record) {
	if !rec.HasData() {
		return
	}

	if addr, ok := rec.Value("remote_addr"); ok {
		s.addHost(addr)
	}

	switch rec.Kind() {
	case eventlog.KindOK:
		s.TotalTasks++
		s.OKTasks++
		if rec.Bool("changed") {
			s.ChangedTasks++
		}
	case eventlog.KindFailed:
		s.TotalTasks++
		s.FailedTasks++
		s.Failures = append(s.Failures, Failure{
			Task:  stringOr(rec, "task", unknownValue),
			Host:  stringOr(rec, "remote_addr", unknownValue),
			Error: stringOr(rec, "msg", noErrorMessage),
		})
	case eventlog.KindSkipped:
		s.SkippedTasks++
	}
}

// addHost records a managed host. Strings and other JSON values stay
// distinct, so "1" and 1 are two hosts and null is a host of its own.
func (s *Stats) addHost(addr any) {
	if s.hosts == nil {
		s.hosts = make(map[string]string)
	}
	if str, ok := addr.(string); ok {
		s.hosts["s:"+str] = str
		return
	}
	raw, err := json.Marshal(addr)
	if err != nil {
		return
	}
	s.hosts["j:"+string(raw)] = string(raw)
}

// HostCount returns the number of distinct managed hosts seen.
func (s *Stats) HostCount() int {
	return len(s.hosts)
}

// Hosts returns the distinct managed hosts in sorted order. Non-string
// addresses are shown as JSON text.
func (s *Stats) Hosts() []string {
	out := make([]string, 0, len(s.hosts))
	for _, h := range s.hosts {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Success reports whether no task failed. A log with no tasks is a success.
func (s *Stats) Success() bool {
	return s.FailedTasks == 0
}

// SuccessRate returns the percentage of counted tasks that succeeded. The
// second value is false when there are no counted tasks.
func (s *Stats) SuccessRate() (float64, bool) {
	if s.TotalTasks == 0 {
		return 0, false
	}
	return float64(s.OKTasks) / float64(s.TotalTasks) * 100, true
}

func stringOr(rec eventlog.Record, key, fallback string) string {
	if v, ok := rec.String(key); ok {
		return v
	}
	return fallback
}
