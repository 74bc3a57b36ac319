package race

// State is the phase of a race session
type State int

const (
	StateWaiting State = iota
	StateTutorial
	StateCountdown
	StatePlaying
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateTutorial:
		return "TUTORIAL"
	case StateCountdown:
		return "COUNTDOWN"
	case StatePlaying:
		return "PLAYING"
	case StateCrashed:
		return "CRASHED"
	}
	return "UNKNOWN"
}

// Drivable reports whether steering and forward motion are honoured.
func (s State) Drivable() bool {
	return s == StatePlaying || s == StateTutorial
}

// Racing reports whether trail, lap and collision logic run.
func (s State) Racing() bool {
	return s == StatePlaying
}
