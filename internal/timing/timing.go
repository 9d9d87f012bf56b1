// Package timing measures the stages of a devcmd invocation.
package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikitaCOEUR/devcmd/internal/logger"
)

// Lap is a labeled checkpoint, measured from the start of the stopwatch
type Lap struct {
	Label string
	At    time.Duration
}

// Stopwatch records checkpoints in the order they are taken
type Stopwatch struct {
	start time.Time
	laps  []Lap
	now   func() time.Time
}

// Start creates a running stopwatch
func Start() *Stopwatch {
	return startWith(time.Now)
}

func startWith(now func() time.Time) *Stopwatch {
	return &Stopwatch{start: now(), now: now}
}

// Lap records a checkpoint and returns the time elapsed since start
func (s *Stopwatch) Lap(label string) time.Duration {
	at := s.Elapsed()
	s.laps = append(s.laps, Lap{Label: label, At: at})
	return at
}

// Elapsed returns the time since start
func (s *Stopwatch) Elapsed() time.Duration {
	return s.now().Sub(s.start)
}

// Laps returns the recorded checkpoints
func (s *Stopwatch) Laps() []Lap {
	return append([]Lap(nil), s.laps...)
}

// Stage returns the time spent between the previous checkpoint and label
func (s *Stopwatch) Stage(label string) (time.Duration, bool) {
	var prev time.Duration
	for _, lap := range s.laps {
		if lap.Label == label {
			return lap.At - prev, true
		}
		prev = lap.At
	}
	return 0, false
}

// Fields adds the duration of every stage and the total to a log entry
func (s *Stopwatch) Fields(e *logger.Entry) *logger.Entry {
	for _, lap := range s.laps {
		d, _ := s.Stage(lap.Label)
		e = e.Dur(lap.Label, d)
	}
	return e.Dur("total", s.Elapsed())
}

// String renders the stages, e.g. "total=1.500ms (config=1.000ms, table=0.500ms)"
func (s *Stopwatch) String() string {
	summary := "total=" + formatMs(s.Elapsed())
	if len(s.laps) == 0 {
		return summary
	}

	stages := make([]string, 0, len(s.laps))
	for _, lap := range s.laps {
		d, _ := s.Stage(lap.Label)
		stages = append(stages, lap.Label+"="+formatMs(d))
	}
	return summary + " (" + strings.Join(stages, ", ") + ")"
}

func formatMs(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
