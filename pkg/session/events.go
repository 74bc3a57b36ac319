package session

import "github.com/Manikatlantis/TronBlazer/pkg/race"

// EventKind identifies a one-shot notification for the host.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventCountdownStep
	EventGateFlash
	EventLapCompleted
	EventLapDiscarded
	EventRecordSet
	EventCrash
	EventBoosterPicked
	EventTutorialPickup
	EventWrongWay
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventCountdownStep:
		return "countdown_step"
	case EventGateFlash:
		return "gate_flash"
	case EventLapCompleted:
		return "lap_completed"
	case EventLapDiscarded:
		return "lap_discarded"
	case EventRecordSet:
		return "record_set"
	case EventCrash:
		return "crash"
	case EventBoosterPicked:
		return "booster_picked"
	case EventTutorialPickup:
		return "tutorial_pickup"
	case EventWrongWay:
		return "wrong_way"
	}
	return "unknown"
}

// CrashCause says what ended a run
type CrashCause int

const (
	CrashNone CrashCause = iota
	CrashTrail
	CrashWall
)

func (c CrashCause) String() string {
	switch c {
	case CrashTrail:
		return "trail"
	case CrashWall:
		return "wall"
	}
	return "none"
}

// Event is a notification raised during a single tick. Only the fields that
// matter for Kind are set.
type Event struct {
	Kind EventKind

	State   race.State // EventStateChanged: the new state
	Label   string     // EventCountdownStep
	Lap     int        // EventLapCompleted
	LapTime float64    // EventLapDiscarded, EventRecordSet
	Booster int        // EventBoosterPicked: index into Boosters()
	Cause   CrashCause // EventCrash
}

// Has reports whether any event of kind k is in events.
func Has(events []Event, k EventKind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
