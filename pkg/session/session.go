package session

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Manikatlantis/TronBlazer/pkg/booster"
	"github.com/Manikatlantis/TronBlazer/pkg/config"
	"github.com/Manikatlantis/TronBlazer/pkg/geom"
	"github.com/Manikatlantis/TronBlazer/pkg/ghost"
	"github.com/Manikatlantis/TronBlazer/pkg/race"
	"github.com/Manikatlantis/TronBlazer/pkg/road"
	"github.com/Manikatlantis/TronBlazer/pkg/trail"
	"github.com/Manikatlantis/TronBlazer/pkg/vehicle"
)

// maxFrameDt caps a single tick so a stalled host cannot teleport the bike
const maxFrameDt = 0.25

// Input is the player's controls sampled for one frame.
type Input struct {
	TurnLeft  bool
	TurnRight bool
	Boost     bool
	Start     bool // start the race, or confirm the tutorial
	Reset     bool
}

// Frame is everything the host needs to present one tick.
type Frame struct {
	Time      float64 // simulation clock
	TimeScale float64
	State     race.State
	RunID     string

	Pose     vehicle.Pose
	Speed    float64
	Boosting bool

	Lap            int
	CurrentLapTime float64
	BestLapTime    float64
	HasBestLap     bool
	LastLapTime    float64
	HasLastLap     bool
	NitroPercent   float64

	Countdown        string // active countdown label, empty when none
	CountdownScale   float64
	CountdownOpacity float64

	Ghost        vehicle.Pose
	GhostVisible bool

	GateFlash   bool
	RecordFlash bool

	TutorialBooster        geom.Vec2
	TutorialBoosterVisible bool
	TutorialBoosterOpacity float64

	Events []Event
}

// Session owns every piece of mutable race state for one circuit. It is not
// safe for concurrent use; the host calls Tick once per rendered frame.
type Session struct {
	log    *slog.Logger
	runLog *slog.Logger
	rng    *rand.Rand
	tuning config.Tuning

	def   *road.Definition
	track *road.Track
	gate  *race.Gate
	arena road.Arena
	spawn vehicle.Pose

	bike       *vehicle.Bike
	trail      *trail.Tracer
	ghostTrail *trail.Tracer
	recorder   *ghost.Recorder
	player     *ghost.Player
	ghostPose  vehicle.Pose
	ghostShown bool

	laps      *race.LapTimer
	countdown *race.Countdown
	boosters  *booster.Field
	nitro     *booster.Nitro
	boosting  bool

	tutorialBooster booster.Booster
	tutorialFadeEnd float64

	state     race.State
	timeScale float64
	clock     float64
	runID     string

	gateFlashUntil   float64
	recordFlashUntil float64

	events []Event
}

// New builds a session on the given circuit. A nil logger falls back to
// slog.Default and a nil rng is seeded from the wall clock.
func New(def *road.Definition, tuning config.Tuning, logger *slog.Logger, rng *rand.Rand) (*Session, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	track := def.Track()
	gate, err := race.NewGate(def.Gate(), track.Forward(), tuning.Gate())
	if err != nil {
		return nil, fmt.Errorf("failed to build gate for %s: %w", def.Name, err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		log:        logger.With("track", def.Name),
		rng:        rng,
		tuning:     tuning,
		def:        def,
		track:      track,
		gate:       gate,
		arena:      road.ArenaAround(track, tuning.ArenaMargin),
		bike:       vehicle.NewBike(tuning.Handling()),
		trail:      trail.NewTracer(tuning.Trail()),
		ghostTrail: trail.NewTracer(tuning.Trail()),
		recorder:   ghost.NewRecorder(tuning.GhostSampleInterval),
		player:     ghost.NewPlayer(),
		laps:       race.NewLapTimer(tuning.MinValidLapTime),
		countdown:  race.NewCountdown(tuning.CountdownSteps, tuning.CountdownStepDuration),
		boosters:   booster.NewField(tuning.Boosters()),
		nitro:      booster.NewNitro(tuning.NitroMax),
		spawn: vehicle.Pose{
			Position: geom.Vec3{X: def.Spawn.X, Y: def.Spawn.Y, Z: def.Spawn.Z},
			Yaw:      def.Spawn.Yaw,
		},
	}
	s.runLog = s.log
	s.clear()

	s.log.Debug("Session created",
		"segments", len(track.Segments()),
		"length", track.Length(),
		"boosters", tuning.BoosterCount,
	)
	return s, nil
}

// Reset abandons the current run and returns to WAITING. Trail, laps, ghost,
// countdown, boosters and nitro are cleared; the best lap time is kept.
func (s *Session) Reset() {
	prev := s.state
	s.clear()
	s.log.Info("Session reset", "from", prev.String())
}

func (s *Session) clear() {
	s.setState(race.StateWaiting)
	s.timeScale = 1

	s.trail.Reset()
	s.ghostTrail.Reset()
	s.recorder.BeginLap()
	s.player.Clear()
	s.ghostShown = false

	s.laps.Reset()
	s.gate.Reset()
	s.countdown.Stop()

	s.boosters.Scatter(s.track, s.rng)
	s.nitro.Reset()
	s.boosting = false

	s.tutorialBooster = booster.Booster{}
	s.tutorialFadeEnd = 0
	s.gateFlashUntil = 0
	s.recordFlashUntil = 0

	s.placeAtSpawn()
}

func (s *Session) placeAtSpawn() {
	s.bike.Place(s.spawn.Position, s.spawn.Yaw)
	s.bike.Speed = 0
}

func (s *Session) setState(st race.State) {
	if st == s.state {
		return
	}
	from := s.state
	s.state = st
	s.emit(Event{Kind: EventStateChanged, State: st})
	s.runLog.Info("State changed", "from", from.String(), "to", st.String())
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// State is the current race phase.
func (s *Session) State() race.State { return s.state }

// Clock is the simulation time in seconds.
func (s *Session) Clock() float64 { return s.clock }

// RunID identifies the current run in logs; empty before the first start.
func (s *Session) RunID() string { return s.runID }

func (s *Session) Tuning() config.Tuning { return s.tuning }

func (s *Session) Definition() *road.Definition { return s.def }

func (s *Session) Track() *road.Track { return s.track }

func (s *Session) Gate() *race.Gate { return s.gate }

func (s *Session) Arena() road.Arena { return s.arena }

// Trail is the player's trail samples, oldest first.
func (s *Session) Trail() []geom.Vec3 { return s.trail.Points() }

// GhostTrail is the ghost's trail samples, oldest first.
func (s *Session) GhostTrail() []geom.Vec3 { return s.ghostTrail.Points() }

func (s *Session) Boosters() []booster.Booster { return s.boosters.Boosters() }

func (s *Session) Nitro() float64 { return s.nitro.Amount() }

// StartMarker is where the start line is drawn: GateVisualOffset ahead of
// the first centerline point along the lap direction.
func (s *Session) StartMarker() geom.Vec2 {
	pts := s.track.Points()
	if len(pts) == 0 {
		return geom.Vec2{}
	}
	return pts[0].Add(s.track.Forward().Scale(s.tuning.GateVisualOffset))
}

// newRun starts a fresh log attribution for the next race.
func (s *Session) newRun() {
	s.runID = uuid.New().String()
	s.runLog = s.log.With("run", s.runID)
}

func (s *Session) flashing(until float64) bool {
	return s.clock < until
}

func (s *Session) tutorialOpacity() (visible bool, opacity float64) {
	if s.state != race.StateTutorial {
		return false, 0
	}
	if s.tutorialBooster.Active {
		return true, 1
	}
	if s.clock < s.tutorialFadeEnd && s.tuning.TutorialFadeSeconds > 0 {
		return true, geom.Clamp((s.tutorialFadeEnd-s.clock)/s.tuning.TutorialFadeSeconds, 0, 1)
	}
	return false, 0
}

func (s *Session) frame() Frame {
	f := Frame{
		Time:      s.clock,
		TimeScale: s.timeScale,
		State:     s.state,
		RunID:     s.runID,

		Pose:     s.bike.Pose(),
		Speed:    s.bike.Speed,
		Boosting: s.boosting,

		Lap:            s.laps.Count(),
		CurrentLapTime: s.laps.Current(),
		NitroPercent:   s.nitro.Percent(),

		Countdown: s.countdown.Label(),

		Ghost:        s.ghostPose,
		GhostVisible: s.ghostShown,

		GateFlash:   s.flashing(s.gateFlashUntil),
		RecordFlash: s.flashing(s.recordFlashUntil),

		TutorialBooster: s.tutorialBooster.Position,

		Events: s.events,
	}
	f.BestLapTime, f.HasBestLap = s.laps.Best()
	f.LastLapTime, f.HasLastLap = s.laps.Last()
	if f.Countdown != "" {
		f.CountdownScale, f.CountdownOpacity = s.countdown.Pulse()
	}
	f.TutorialBoosterVisible, f.TutorialBoosterOpacity = s.tutorialOpacity()
	return f
}

func sanitizeDt(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	return math.Min(dt, maxFrameDt)
}
