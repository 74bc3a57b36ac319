package race

import "math"

// DefaultCountdownSteps are the labels shown before the start
var DefaultCountdownSteps = []string{"3", "2", "1", "GO"}

// CountdownTick reports what happened during one Advance.
type CountdownTick struct {
	StepChanged bool // a new label became active
	Go          bool // the final step just became active; the race is live
	Done        bool // the whole sequence elapsed and the countdown stopped
}

// Countdown walks a fixed sequence of labels, each shown for a fixed duration.
type Countdown struct {
	steps        []string
	stepDuration float64

	elapsed float64
	step    int
	running bool
	phase   float64
}

func NewCountdown(steps []string, stepDuration float64) *Countdown {
	if len(steps) == 0 {
		steps = DefaultCountdownSteps
	}
	return &Countdown{steps: append([]string(nil), steps...), stepDuration: stepDuration, step: -1}
}

// Begin restarts the countdown from its first step.
func (c *Countdown) Begin() {
	c.elapsed = 0
	c.step = -1
	c.phase = 0
	c.running = true
}

// Advance moves the countdown by dt of real time.
func (c *Countdown) Advance(dt float64) CountdownTick {
	var tick CountdownTick
	if !c.running {
		return tick
	}
	c.elapsed += dt
	c.phase += dt * 5

	step := c.last()
	if c.stepDuration > 0 {
		step = int(math.Min(math.Floor(c.elapsed/c.stepDuration), float64(c.last())))
	}
	if step != c.step {
		c.step = step
		c.phase = 0
		tick.StepChanged = true
		tick.Go = step == c.last()
	}

	if c.elapsed >= c.Total() {
		c.running = false
		tick.Done = true
	}
	return tick
}

// Stop tears the countdown down without finishing it
func (c *Countdown) Stop() {
	c.running = false
	c.elapsed = 0
	c.step = -1
	c.phase = 0
}

func (c *Countdown) last() int { return len(c.steps) - 1 }

func (c *Countdown) Running() bool { return c.running }

// Step is the active step index, or -1 before the first Advance.
func (c *Countdown) Step() int { return c.step }

// Label is the active step's text, empty when no step is showing.
func (c *Countdown) Label() string {
	if !c.running || c.step < 0 {
		return ""
	}
	return c.steps[c.step]
}

// Pulse is the breathing scale and flicker opacity of the active label.
func (c *Countdown) Pulse() (scale, opacity float64) {
	return 1 + 0.18*math.Sin(c.phase*3), 0.8 + 0.2*math.Sin(c.phase*7)
}

func (c *Countdown) Elapsed() float64 { return c.elapsed }

func (c *Countdown) Total() float64 { return c.stepDuration * float64(len(c.steps)) }
