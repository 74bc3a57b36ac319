package race

import (
	"fmt"
	"math"
)

// LapResult describes an accepted gate crossing.
type LapResult struct {
	Lap      int     // lap count after this crossing
	Timed    bool    // a lap interval was running and has been finalized
	Duration float64 // finalized lap time, when Timed
	Valid    bool    // Duration reached the minimum valid lap time
	Record   bool    // Duration set a new best lap
}

// LapTimer keeps the lap count, the running lap and the session best.
type LapTimer struct {
	minValid float64

	count   int
	timing  bool
	start   float64
	current float64
	last    float64
	hasLast bool
	best    float64
	hasBest bool
}

func NewLapTimer(minValidLapTime float64) *LapTimer {
	return &LapTimer{minValid: minValidLapTime}
}

// Start begins timing a new lap at now.
func (l *LapTimer) Start(now float64) {
	l.timing = true
	l.start = now
	l.current = 0
}

// Complete registers an accepted crossing at now: the lap count goes up, any
// running lap is finalized, and a new lap starts immediately.
func (l *LapTimer) Complete(now float64) LapResult {
	l.count++
	res := LapResult{Lap: l.count}

	if l.timing {
		d := now - l.start
		l.current = d
		res.Timed = true
		res.Duration = d
		if d >= l.minValid {
			res.Valid = true
			l.last, l.hasLast = d, true
			if !l.hasBest || d < l.best {
				l.best, l.hasBest = d, true
				res.Record = true
			}
		}
	}

	l.Start(now)
	return res
}

// Update refreshes the running lap time from the clock.
func (l *LapTimer) Update(now float64) {
	if l.timing {
		l.current = now - l.start
	}
}

// Reset clears lap count and timing; the best lap survives for the session.
func (l *LapTimer) Reset() {
	l.count = 0
	l.timing = false
	l.start = 0
	l.current = 0
	l.last, l.hasLast = 0, false
}

func (l *LapTimer) Count() int { return l.count }

// Timing reports whether a lap interval is running, and since when.
func (l *LapTimer) Timing() (start float64, ok bool) { return l.start, l.timing }

func (l *LapTimer) Current() float64 { return l.current }

func (l *LapTimer) Best() (float64, bool) { return l.best, l.hasBest }

func (l *LapTimer) Last() (float64, bool) { return l.last, l.hasLast }

// FormatLapTime renders seconds as "m:ss.cc", or "s.cc" under a minute.
func FormatLapTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "--.--"
	}
	totalMs := int64(math.Floor(seconds * 1000))
	mins := totalMs / 60000
	secs := (totalMs % 60000) / 1000
	cs := (totalMs % 1000) / 10

	if mins > 0 {
		return fmt.Sprintf("%d:%02d.%02d", mins, secs, cs)
	}
	return fmt.Sprintf("%d.%02d", secs, cs)
}

// FormatBestLap renders an optional lap time.
func FormatBestLap(seconds float64, ok bool) string {
	if !ok {
		return "--.--"
	}
	return FormatLapTime(seconds)
}
