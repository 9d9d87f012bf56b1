package timing

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NikitaCOEUR/devcmd/internal/logger"
)

// fakeClock advances by the queued steps on each call
func fakeClock(steps ...time.Duration) func() time.Time {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		if len(steps) > 0 {
			now = now.Add(steps[0])
			steps = steps[1:]
		}
		return now
	}
}

func TestStopwatch_Laps(t *testing.T) {
	sw := startWith(fakeClock(0, time.Millisecond, 500*time.Microsecond))

	assert.Equal(t, time.Millisecond, sw.Lap("config"))
	assert.Equal(t, 1500*time.Microsecond, sw.Lap("table"))

	assert.Equal(t, []Lap{
		{Label: "config", At: time.Millisecond},
		{Label: "table", At: 1500 * time.Microsecond},
	}, sw.Laps())

	d, ok := sw.Stage("table")
	assert.True(t, ok)
	assert.Equal(t, 500*time.Microsecond, d)

	_, ok = sw.Stage("missing")
	assert.False(t, ok)

	assert.Equal(t, "total=1.500ms (config=1.000ms, table=0.500ms)", sw.String())
}

func TestStopwatch_NoLaps(t *testing.T) {
	sw := startWith(fakeClock(0, 2*time.Millisecond))
	assert.Equal(t, "total=2.000ms", sw.String())
	assert.Empty(t, sw.Laps())
}

func TestStopwatch_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("debug", &buf)

	sw := startWith(fakeClock(0, time.Millisecond, time.Millisecond))
	sw.Lap("config")
	sw.Fields(log.Debug()).Msg("Initialized")

	assert.Contains(t, buf.String(), "config=1")
	assert.Contains(t, buf.String(), "total=2")
	assert.Contains(t, buf.String(), "msg=Initialized")
}

func TestStart(t *testing.T) {
	sw := Start()
	assert.GreaterOrEqual(t, sw.Lap("now"), time.Duration(0))
}
