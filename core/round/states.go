package round

import (
	"time"

	"github.com/ingyamilmolinar/shimon/core/model"
)

// StateName identifies a state for logs, metrics and tests.
type StateName string

const (
	StateIdle             StateName = "idle"
	StateInstructions     StateName = "instructions"
	StateAwaitStart       StateName = "await_start"
	StateSequenceInit     StateName = "sequence_init"
	StateSequenceMyTurn   StateName = "sequence_my_turn"
	StateSequenceShow     StateName = "sequence_show"
	StateSequenceYourTurn StateName = "sequence_your_turn"
	StateInput            StateName = "input"
	StateCorrectFeedback  StateName = "correct_feedback"
	StateWrongFeedback    StateName = "wrong_feedback"
	StateTimeoutFeedback  StateName = "timeout_feedback"
	StateGameOver         StateName = "game_over"
	StateScoreDisplay     StateName = "score_display"
	StatePostGameInvite   StateName = "post_game_invite"
)

// state is implemented by one type per machine state. Each type carries
// only the data that state needs; it is created on entry and dropped on
// exit. step returns the receiver to stay.
type state interface {
	name() StateName
	enter(m *Machine, now time.Time)
	step(m *Machine, now time.Time) state
}

// ---- idle --------------------------------------------------------------

type idleState struct{}

func (idleState) name() StateName { return StateIdle }

func (idleState) enter(m *Machine, now time.Time) {
	m.fx.ResetAmbient(now)
}

func (s idleState) step(m *Machine, now time.Time) state {
	m.fx.Ambient(now)

	if m.invites.Due(now) {
		m.invite(now)
		return s
	}

	c, ok := m.in.AnyPressed()
	if !ok {
		return s
	}
	if c == m.cfg.ConfuserToggle {
		m.confuser = !m.confuser
		m.logger.Infof("confuser %s", onOff(m.confuser))
		m.observer.ConfuserToggled(m.confuser)
		m.lights.AllOff()
		m.fx.ConfuserFlash(now)
		return s
	}
	m.logger.Infof("%s pressed in idle", c)
	return &instructionsState{}
}

// ---- instructions ------------------------------------------------------

type instructionsState struct{}

func (*instructionsState) name() StateName { return StateInstructions }

func (*instructionsState) enter(m *Machine, now time.Time) {
	m.quiesce()
	m.cue(model.TrackInstructions, m.cfg.InstructionsBudget, now)
	m.fx.Instructions(now)
}

func (s *instructionsState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	m.logger.Infof("press any button to start")
	return awaitStartState{}
}

// ---- await start -------------------------------------------------------

type awaitStartState struct{}

func (awaitStartState) name() StateName { return StateAwaitStart }

func (awaitStartState) enter(*Machine, time.Time) {}

func (s awaitStartState) step(m *Machine, now time.Time) state {
	m.fx.ReadyPulse(now)
	if _, ok := m.in.AnyPressed(); !ok {
		return s
	}
	m.quiesce()
	m.fx.GameStart(now)
	m.session.Start(m.newID(), m.gen.First(), now)
	m.observer.RoundStarted(m.session.ID)
	m.logger.Infof("round %s started, first color %s", m.session.ID, m.session.Sequence[0])
	return sequenceInitState{}
}

// ---- sequence init -----------------------------------------------------

// sequenceInitState lasts a single tick. Both ways in have already
// cleared the lights, and the game-start effect may still be showing.
type sequenceInitState struct{}

func (sequenceInitState) name() StateName { return StateSequenceInit }

func (sequenceInitState) enter(*Machine, time.Time) {}

func (sequenceInitState) step(m *Machine, now time.Time) state {
	m.logger.Infof("showing level %d", m.session.Level)
	return &myTurnState{}
}

// ---- my turn -----------------------------------------------------------

type myTurnPhase int

const (
	myTurnGuard myTurnPhase = iota
	myTurnSpeaking
	myTurnSwitch
)

// myTurnState spaces "my turn" from whatever played before it and from
// the first color name, without blocking.
type myTurnState struct {
	phase myTurnPhase
}

func (*myTurnState) name() StateName { return StateSequenceMyTurn }

func (*myTurnState) enter(m *Machine, now time.Time) {
	m.pause(m.cfg.OverlapGuard, now)
}

func (s *myTurnState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	switch s.phase {
	case myTurnGuard:
		m.cue(model.TrackMyTurn, m.cfg.MyTurnBudget, now)
		s.phase = myTurnSpeaking
	case myTurnSpeaking:
		m.pause(m.cfg.FolderSwitchGuard, now)
		s.phase = myTurnSwitch
	case myTurnSwitch:
		return &showState{}
	}
	return s
}

// ---- sequence show -----------------------------------------------------

type showState struct {
	pos   int
	lit   bool
	litAt time.Time
	color model.Color
}

func (*showState) name() StateName { return StateSequenceShow }

func (*showState) enter(*Machine, time.Time) {}

func (s *showState) step(m *Machine, now time.Time) state {
	sess := m.session
	if !s.lit {
		s.color = sess.Sequence[s.pos]
		voice := m.gen.Confuser(s.color, m.confuser)
		m.lights.SetWing(s.color, true)
		m.audio.Play(model.ColorTrack(voice))
		if voice != s.color {
			m.logger.Debugf("step %d: lit %s, spoken %s (confuser)", s.pos, s.color, voice)
		} else {
			m.logger.Debugf("step %d: %s", s.pos, s.color)
		}
		s.lit = true
		s.litAt = now
		return s
	}

	held := now.Sub(s.litAt)
	if held < sess.CueOn {
		return s
	}
	m.lights.SetWing(s.color, false)
	if held < sess.CueOn+sess.CueGap {
		return s
	}

	s.pos++
	s.lit = false
	if s.pos >= sess.Level {
		return &yourTurnState{}
	}
	return s
}

// ---- your turn ---------------------------------------------------------

type yourTurnState struct{}

func (*yourTurnState) name() StateName { return StateSequenceYourTurn }

func (*yourTurnState) enter(m *Machine, now time.Time) {
	m.quiesce()
	m.cue(model.TrackYourTurn, m.cfg.YourTurnBudget, now)
}

func (s *yourTurnState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	// presses made while the sequence played must not count
	m.in.ResetEdges()
	return &inputState{}
}

// ---- input -------------------------------------------------------------

type inputState struct {
	pos          int
	since        time.Time
	lastAccepted time.Time

	// awaiting release of a correct, non-final press
	holding bool
	held    model.Color
}

func (*inputState) name() StateName { return StateInput }

func (s *inputState) enter(m *Machine, now time.Time) {
	s.since = now
	m.logger.Debugf("input phase, timeout %v", m.session.InputTimeout)
}

func (s *inputState) step(m *Machine, now time.Time) state {
	sess := m.session

	if s.holding {
		if m.in.Stable(s.held) {
			return s
		}
		m.lights.SetWing(s.held, false)
		m.lights.SetButton(s.held, false)
		s.holding = false
		s.since = now
		return s
	}

	if now.Sub(s.since) >= sess.InputTimeout {
		m.logger.Infof("input timeout at step %d of %d", s.pos, sess.Level)
		return &timeoutFeedbackState{}
	}

	c, ok := m.in.AnyPressed()
	if !ok {
		return s
	}
	if !s.lastAccepted.IsZero() && now.Sub(s.lastAccepted) < m.cfg.MinPressInterval {
		m.logger.Debugf("%s ignored, %v since last press", c, now.Sub(s.lastAccepted))
		m.observer.PressEvaluated(PressIgnored)
		return s
	}
	s.lastAccepted = now

	expected := sess.Expected(s.pos)
	if c != expected {
		m.logger.Infof("wrong: expected %s, got %s", expected, c)
		m.observer.PressEvaluated(PressWrong)
		m.lights.SetButton(c, true)
		return &wrongFeedbackState{pressed: c}
	}

	m.observer.PressEvaluated(PressCorrect)
	m.lights.SetWing(c, true)
	m.lights.SetButton(c, true)
	s.pos++
	if s.pos >= sess.Level {
		sess.AwardLevel()
		m.logger.Infof("level %d complete, score %d", sess.Level, sess.Score)
		return &correctFeedbackState{pressed: c}
	}
	s.holding = true
	s.held = c
	return s
}

// ---- feedback ----------------------------------------------------------

type correctFeedbackState struct {
	pressed model.Color
}

func (*correctFeedbackState) name() StateName { return StateCorrectFeedback }

func (*correctFeedbackState) enter(m *Machine, now time.Time) {
	m.cue(model.TrackCorrect, m.cfg.FeedbackBudget, now)
}

func (s *correctFeedbackState) step(m *Machine, now time.Time) state {
	if !m.in.Stable(s.pressed) {
		m.lights.SetButton(s.pressed, false)
	}
	if !m.done(now) {
		return s
	}
	m.quiesce()
	if !m.session.Extend(m.gen.Next) {
		m.logger.Debugf("sequence full at level %d", m.session.Level)
	}
	return sequenceInitState{}
}

type wrongFeedbackState struct {
	pressed model.Color
}

func (*wrongFeedbackState) name() StateName { return StateWrongFeedback }

func (*wrongFeedbackState) enter(m *Machine, now time.Time) {
	m.cue(model.TrackWrong, m.cfg.FeedbackBudget, now)
}

func (s *wrongFeedbackState) step(m *Machine, now time.Time) state {
	if !m.in.Stable(s.pressed) {
		m.lights.SetButton(s.pressed, false)
	}
	if !m.done(now) {
		return s
	}
	m.quiesce()
	return &gameOverState{reason: EndWrong}
}

type timeoutFeedbackState struct{}

func (*timeoutFeedbackState) name() StateName { return StateTimeoutFeedback }

func (*timeoutFeedbackState) enter(m *Machine, now time.Time) {
	m.cue(model.TrackTimeout, m.cfg.FeedbackBudget, now)
}

func (s *timeoutFeedbackState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	m.quiesce()
	return &gameOverState{reason: EndTimeout}
}

// ---- game over ---------------------------------------------------------

type gameOverState struct {
	reason EndReason
}

func (*gameOverState) name() StateName { return StateGameOver }

func (s *gameOverState) enter(m *Machine, now time.Time) {
	sess := m.session
	m.cue(model.TrackGameOver, m.cfg.GameOverBudget, now)
	m.observer.RoundEnded(sess.ID, s.reason, sess.Score, sess.Level, now.Sub(sess.StartedAt))
	m.logger.Infof("round %s over (%s) at level %d, score %d", sess.ID, s.reason, sess.Level, sess.Score)
}

func (s *gameOverState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	if m.session.Score > 0 {
		return &scoreDisplayState{}
	}
	return &postGameInviteState{}
}

type scoreDisplayState struct{}

func (*scoreDisplayState) name() StateName { return StateScoreDisplay }

func (*scoreDisplayState) enter(m *Machine, now time.Time) {
	score := m.session.Score
	t, ok := model.ScoreTrack(score)
	if !ok {
		m.logger.Warnf("no announcement for score %d", score)
		m.pause(m.cfg.ScoreBudget, now)
		return
	}
	m.cue(t, m.cfg.ScoreBudget, now)
}

func (s *scoreDisplayState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	m.logger.Infof("final score %d", m.session.Score)
	return &postGameInviteState{}
}

type postGameInviteState struct{}

func (*postGameInviteState) name() StateName { return StatePostGameInvite }

func (*postGameInviteState) enter(m *Machine, now time.Time) {
	m.pause(m.cfg.PostGameGrace, now)
}

func (s *postGameInviteState) step(m *Machine, now time.Time) state {
	if !m.done(now) {
		return s
	}
	m.invite(now)
	return idleState{}
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
