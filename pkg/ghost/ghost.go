package ghost

import (
	"github.com/Manikatlantis/TronBlazer/pkg/geom"
)

// minSpan keeps interpolation finite when two frames share a timestamp
const minSpan = 1e-4

// Frame is one recorded sample of a lap.
type Frame struct {
	T   float64 // seconds since the lap started
	Pos geom.Vec3
	Yaw float64
}

// Recorder samples the lap in progress at a fixed interval of lap time.
type Recorder struct {
	interval   float64
	lastSample float64
	frames     []Frame
}

func NewRecorder(interval float64) *Recorder {
	r := &Recorder{interval: interval}
	r.BeginLap()
	return r
}

// BeginLap drops the in-progress frames. The next Sample call is always kept.
func (r *Recorder) BeginLap() {
	r.frames = r.frames[:0]
	r.lastSample = -r.interval
}

// Sample records a frame when at least one interval has passed since the
// previous one. It reports whether the frame was kept.
func (r *Recorder) Sample(lapT float64, pos geom.Vec3, yaw float64) bool {
	if lapT-r.lastSample < r.interval {
		return false
	}
	r.frames = append(r.frames, Frame{T: lapT, Pos: pos, Yaw: yaw})
	r.lastSample = lapT
	return true
}

// Frames returns a copy of the in-progress lap.
func (r *Recorder) Frames() []Frame {
	return append([]Frame(nil), r.frames...)
}

func (r *Recorder) Len() int { return len(r.frames) }

// Player replays the best lap. Playback time only moves forward within a lap,
// so the bracketing search resumes from a cursor.
type Player struct {
	frames []Frame
	cursor int
}

func NewPlayer() *Player { return &Player{} }

// Promote replaces the replayed lap. Laps with fewer than two frames are
// ignored and leave the previous ghost in place.
func (p *Player) Promote(frames []Frame) bool {
	if len(frames) < 2 {
		return false
	}
	p.frames = append(p.frames[:0], frames...)
	p.cursor = 0
	return true
}

// Active reports whether a ghost lap is loaded.
func (p *Player) Active() bool { return len(p.frames) > 1 }

// Rewind moves playback back to the start of the lap.
func (p *Player) Rewind() { p.cursor = 0 }

func (p *Player) Clear() {
	p.frames = p.frames[:0]
	p.cursor = 0
}

// Duration is the timestamp of the last recorded frame.
func (p *Player) Duration() float64 {
	if len(p.frames) == 0 {
		return 0
	}
	return p.frames[len(p.frames)-1].T
}

// At returns the interpolated ghost pose at elapsed seconds into the lap.
// visible is false once the recorded lap has run out, or with no ghost.
func (p *Player) At(elapsed float64) (f Frame, visible bool) {
	n := len(p.frames)
	if n < 2 || elapsed >= p.frames[n-1].T {
		return Frame{}, false
	}

	if p.cursor > n-2 || p.frames[p.cursor].T > elapsed {
		p.cursor = 0
	}
	for p.cursor < n-2 && p.frames[p.cursor+1].T < elapsed {
		p.cursor++
	}

	f0, f1 := p.frames[p.cursor], p.frames[p.cursor+1]
	span := f1.T - f0.T
	if span < minSpan {
		span = minSpan
	}
	alpha := geom.Clamp((elapsed-f0.T)/span, 0, 1)

	return Frame{
		T:   elapsed,
		Pos: f0.Pos.Lerp(f1.Pos, alpha),
		Yaw: geom.Lerp(f0.Yaw, f1.Yaw, alpha),
	}, true
}
