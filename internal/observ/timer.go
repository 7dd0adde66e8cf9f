package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer measures the phases of one file's lint run (cache lookup, extract,
// analyze). The nil *Timer is valid and records nothing.
type Timer struct {
	phases []phase
}

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns the handle for End; -1 on a nil Timer.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, phase{name: name, started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	if t == nil || handle < 0 || handle >= len(t.phases) {
		return
	}
	p := &t.phases[handle]
	p.took, p.note = time.Since(p.started), note
}

func (t *Timer) Summary() string { return t.Report().Summary() }

// PhaseReport is one row of a Report. Count > 1 after Aggregate.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable form of one or many timers.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	for _, p := range t.phases {
		ms := millis(p.took)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms, Count: 1, Note: p.note})
	}
	return r
}

// Aggregate adds reports up by phase name in first-seen order. Notes are
// per file and are dropped.
func Aggregate(reports ...Report) Report {
	var out Report
	pos := map[string]int{}
	for _, r := range reports {
		out.TotalMS += r.TotalMS
		for _, p := range r.Phases {
			i, seen := pos[p.Name]
			if !seen {
				i = len(out.Phases)
				pos[p.Name] = i
				out.Phases = append(out.Phases, PhaseReport{Name: p.Name})
			}
			row := &out.Phases[i]
			row.DurationMS += p.DurationMS
			row.Count += max(p.Count, 1)
		}
	}
	return out
}

// Summary prints one aligned row per phase and a total.
func (r Report) Summary() string {
	rows := []string{"timings:"}
	for _, p := range r.Phases {
		row := fmt.Sprintf("  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			row += fmt.Sprintf("  x%d", p.Count)
		}
		if p.Note != "" {
			row += "  // " + p.Note
		}
		rows = append(rows, row)
	}
	rows = append(rows, fmt.Sprintf("  %-20s %9.2f ms", "total", r.TotalMS))
	return strings.Join(rows, "\n") + "\n"
}

func millis(d time.Duration) float64 { return d.Seconds() * 1e3 }
