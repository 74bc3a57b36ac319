package session

import (
	"math"

	"github.com/Manikatlantis/TronBlazer/pkg/race"
	"github.com/Manikatlantis/TronBlazer/pkg/vehicle"
)

// Tick advances the simulation by one frame of rawDt real seconds. Motion
// and the simulation clock use rawDt scaled by the current time scale; the
// countdown runs on rawDt so slow motion never stretches it.
func (s *Session) Tick(rawDt float64, in Input) Frame {
	s.events = nil

	rawDt = sanitizeDt(rawDt)
	gameDt := rawDt * s.timeScale
	s.clock += gameDt

	s.handleFlow(in)
	s.advanceCountdown(rawDt)

	s.drive(in, gameDt)
	s.bike.Hover(s.clock)

	if s.state.Racing() {
		s.trail.Add(s.trail.SamplePoint(s.bike.Position, s.bike.Forward(), s.bike.BaseY()))
		s.laps.Update(s.clock)
		s.observeGate()
		s.checkCollisions()
	}
	s.updateGhost()
	s.updateBoosters()

	return s.frame()
}

func (s *Session) handleFlow(in Input) {
	if in.Reset {
		s.Reset()
		return
	}
	if !in.Start {
		return
	}

	switch s.state {
	case race.StateWaiting:
		if s.tuning.TutorialEnabled {
			s.enterTutorial()
		} else {
			s.beginCountdown()
		}
	case race.StateTutorial:
		s.beginCountdown()
	case race.StateCrashed:
		s.Reset()
		s.beginCountdown()
	}
}

func (s *Session) enterTutorial() {
	s.newRun()
	s.placeAtSpawn()
	ahead := s.spawn.Position.XZ().Add(s.spawn.Forward().Scale(s.tuning.TutorialBoosterAhead))
	s.tutorialBooster.Position, _ = s.track.Bounce(ahead, 0)
	s.tutorialBooster.Active = true
	s.tutorialFadeEnd = 0
	s.setState(race.StateTutorial)
}

func (s *Session) beginCountdown() {
	if s.state != race.StateTutorial {
		s.newRun()
	}
	s.tutorialBooster.Active = false
	s.tutorialFadeEnd = 0

	s.placeAtSpawn()
	s.trail.Reset()
	s.gate.Reset()
	s.timeScale = 1
	s.countdown.Begin()
	s.setState(race.StateCountdown)
}

func (s *Session) advanceCountdown(rawDt float64) {
	if !s.countdown.Running() {
		return
	}
	tick := s.countdown.Advance(rawDt)
	if tick.StepChanged {
		s.emit(Event{Kind: EventCountdownStep, Label: s.countdown.Label()})
	}
	if tick.Go && s.state == race.StateCountdown {
		s.goLive()
	}
}

// goLive starts the race proper: lap timing from now, a fresh ghost lap.
func (s *Session) goLive() {
	s.setState(race.StatePlaying)
	s.laps.Start(s.clock)
	s.beginLap()
}

func (s *Session) beginLap() {
	s.recorder.BeginLap()
	s.player.Rewind()
	s.ghostTrail.Reset()
}

func (s *Session) drive(in Input, dt float64) {
	switch {
	case s.state.Drivable():
		s.bike.Steer(in.TurnLeft, in.TurnRight, dt)
		s.bike.Lean(in.TurnLeft, in.TurnRight)

		s.boosting = in.Boost && s.nitro.Burn(s.tuning.NitroDrainRate, dt)
		s.bike.Speed = s.tuning.BaseSpeed
		if s.boosting {
			s.bike.Speed += s.tuning.NitroSpeedBonus
		}
		s.bike.Advance(dt)

		if p, bounced := s.track.Bounce(s.bike.Position.XZ(), s.tuning.BounceStrength); bounced {
			s.bike.SetGround(p)
		}

	case s.state == race.StateCrashed:
		// coast to a stop in slow motion
		s.boosting = false
		s.bike.Lean(false, false)
		s.bike.Speed *= math.Max(0, 1-s.tuning.CrashDrag*dt)
		s.bike.Advance(dt)

	default:
		s.boosting = false
		s.bike.Speed = 0
		s.bike.Lean(false, false)
	}
}

func (s *Session) observeGate() {
	switch s.gate.Observe(s.bike.Position.XZ(), s.bike.Forward(), s.clock) {
	case race.CrossedForward:
		s.completeLap()
	case race.CrossedBackward:
		s.emit(Event{Kind: EventWrongWay})
		s.runLog.Debug("Gate crossed the wrong way", "yaw", s.bike.Yaw)
	}
}

func (s *Session) completeLap() {
	res := s.laps.Complete(s.clock)
	s.gateFlashUntil = s.clock + s.tuning.GateFlashSeconds
	s.emit(Event{Kind: EventGateFlash})
	s.emit(Event{Kind: EventLapCompleted, Lap: res.Lap})

	switch {
	case !res.Timed:
		// nothing was being timed yet
	case !res.Valid:
		s.emit(Event{Kind: EventLapDiscarded, Lap: res.Lap, LapTime: res.Duration})
		s.runLog.Debug("Lap discarded", "lap", res.Lap, "time", race.FormatLapTime(res.Duration))
	default:
		s.runLog.Info("Lap completed", "lap", res.Lap, "time", race.FormatLapTime(res.Duration))
		if res.Record {
			promoted := s.player.Promote(s.recorder.Frames())
			s.recordFlashUntil = s.clock + s.tuning.RecordFlashSeconds
			s.emit(Event{Kind: EventRecordSet, Lap: res.Lap, LapTime: res.Duration})
			s.runLog.Info("New best lap", "time", race.FormatLapTime(res.Duration), "ghost", promoted)
		}
	}

	s.beginLap()
}

func (s *Session) checkCollisions() {
	cause := CrashNone
	if hit, _ := s.trail.Collides(s.bike.Position); hit {
		cause = CrashTrail
	} else if !s.arena.Contains(s.bike.Position.XZ()) {
		cause = CrashWall
	}
	if cause == CrashNone {
		return
	}

	s.timeScale = s.tuning.CrashTimeScale
	s.boosting = false
	s.setState(race.StateCrashed)
	s.emit(Event{Kind: EventCrash, Cause: cause})
	s.runLog.Info("Crashed", "cause", cause.String(), "lap", s.laps.Count())
}

func (s *Session) updateGhost() {
	start, timing := s.laps.Timing()
	if !s.state.Racing() || !timing {
		s.ghostShown = false
		return
	}
	lapT := s.clock - start

	s.recorder.Sample(lapT, s.bike.Position, s.bike.Yaw)

	f, ok := s.player.At(lapT)
	s.ghostShown = ok
	if !ok {
		return
	}
	s.ghostPose = vehicle.Pose{Position: f.Pos, Yaw: f.Yaw}
	s.ghostTrail.Add(s.ghostTrail.SamplePoint(f.Pos, vehicle.Forward(f.Yaw), s.bike.BaseY()))
}

func (s *Session) updateBoosters() {
	pos := s.bike.Position.XZ()

	switch s.state {
	case race.StatePlaying:
		for _, i := range s.boosters.Update(pos, s.clock, s.nitro) {
			s.emit(Event{Kind: EventBoosterPicked, Booster: i})
			s.runLog.Debug("Booster picked", "index", i, "nitro", s.nitro.Amount())
		}
	case race.StateTutorial:
		if s.tutorialBooster.Collect(pos, s.clock, s.tuning.PickupRadius, math.Inf(1)) {
			s.nitro.Grant(s.tuning.BoosterNitroGain)
			s.tutorialFadeEnd = s.clock + s.tuning.TutorialFadeSeconds
			s.emit(Event{Kind: EventTutorialPickup})
		}
	}
}
