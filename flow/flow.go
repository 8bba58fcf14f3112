package flow

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/starfall/director"
	"github.com/lixenwraith/starfall/game"
	"github.com/lixenwraith/starfall/loop"
	"github.com/lixenwraith/starfall/render"
	"github.com/lixenwraith/starfall/status"
)

const (
	StateTitle StateID = iota + 1
	StatePlaying
	StateGameOver
)

const (
	EventStart Event = iota + 1
	EventAbandon
	EventDismiss
)

// SessionFactory builds a session under a fresh id
type SessionFactory func(id string) (*game.Session, error)

type Options struct {
	Canvas     *render.Canvas
	NewSession SessionFactory
	// Clock is paused and resumed by the player; nil disables pausing
	Clock   *loop.Clock
	Metrics *status.Registry
	Logger  *zap.Logger
	// GameOverDelay returns to the title screen without input; zero waits for a key
	GameOverDelay time.Duration
}

// Flow drives title, playing and game over screens
// It is the frame loop stage for the whole program
type Flow struct {
	machine    *Machine[*Flow]
	canvas     *render.Canvas
	newSession SessionFactory
	clock      *loop.Clock
	metrics    *status.Registry
	log        *zap.Logger
	delay      time.Duration

	session   *game.Session
	sessions  int
	lastScore int
	highScore int
	err       error
}

func New(opts Options) (*Flow, error) {
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	f := &Flow{
		canvas:     opts.Canvas,
		newSession: opts.NewSession,
		clock:      opts.Clock,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		delay:      opts.GameOverDelay,
	}

	m := NewMachine[*Flow]()
	title := m.AddState(StateTitle, "title")
	title.OnEnter = append(title.OnEnter, (*Flow).enterTitle)

	playing := m.AddState(StatePlaying, "playing")
	playing.OnEnter = append(playing.OnEnter, (*Flow).startSession)
	playing.OnExit = append(playing.OnExit, (*Flow).endSession)

	over := m.AddState(StateGameOver, "game_over")
	over.OnEnter = append(over.OnEnter, (*Flow).enterGameOver)

	m.AddTransition(StateTitle, Transition[*Flow]{Target: StatePlaying, Event: EventStart})
	m.AddTransition(StatePlaying, Transition[*Flow]{Target: StateGameOver, Guard: (*Flow).sessionOver})
	m.AddTransition(StatePlaying, Transition[*Flow]{Target: StateTitle, Event: EventAbandon})
	m.AddTransition(StateGameOver, Transition[*Flow]{Target: StateTitle, Event: EventDismiss})
	m.AddTransition(StateGameOver, Transition[*Flow]{Target: StateTitle, Guard: (*Flow).gameOverElapsed})

	f.machine = m
	if err := m.Init(f, StateTitle); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Flow) State() StateID { return f.machine.State() }

func (f *Flow) Session() *game.Session { return f.session }

func (f *Flow) HighScore() int { return f.highScore }

// Stats reports the running session's director, or nothing between sessions
func (f *Flow) Stats() director.Stats {
	if f.session == nil {
		return director.Stats{}
	}
	return f.session.Stats()
}

func (f *Flow) UpdateAll(dt time.Duration) {
	if f.machine.State() == StatePlaying && f.session != nil {
		f.session.UpdateAll(dt)
	}
	f.machine.Update(f, dt)
}

func (f *Flow) DrawAll() {
	switch f.machine.State() {
	case StateTitle:
		f.drawTitle()
	case StatePlaying:
		if f.session == nil {
			return
		}
		f.session.DrawAll()
		if f.clock != nil && f.clock.IsPaused() {
			f.center(0, "PAUSED", render.StyleHUDAccent)
			f.canvas.Show()
		}
	case StateGameOver:
		f.drawGameOver()
	}
}

// Handle applies one input event; loop.ErrQuit ends the program
func (f *Flow) Handle(ev any) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.canvas.Screen().Sync()
		if f.session != nil {
			f.session.Resize(ev.Size())
		}
	case *tcell.EventKey:
		if interrupt(ev) {
			return loop.ErrQuit
		}
		if err := f.key(ev); err != nil {
			return err
		}
	}
	if err := f.err; err != nil {
		f.err = nil
		return err
	}
	return nil
}

func (f *Flow) key(ev *tcell.EventKey) error {
	switch f.machine.State() {
	case StateTitle:
		switch {
		case ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			f.machine.HandleEvent(f, EventStart)
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return loop.ErrQuit
		}
	case StatePlaying:
		switch {
		case ev.Key() == tcell.KeyEscape:
			f.machine.HandleEvent(f, EventAbandon)
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			if f.clock != nil {
				paused := f.clock.Toggle()
				f.log.Debug("pause toggled", zap.Bool("paused", paused))
			}
		case f.clock != nil && f.clock.IsPaused():
			// movement is dropped while paused
		case f.session != nil:
			f.session.Handle(game.KeyAction(ev))
		}
	case StateGameOver:
		switch {
		case ev.Key() == tcell.KeyEnter:
			f.machine.HandleEvent(f, EventDismiss)
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return loop.ErrQuit
		}
	}
	return nil
}

// interrupt matches Ctrl-C in both the legacy key code and rune+modifier forms
func interrupt(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0)
}

func (f *Flow) enterTitle() {
	f.session = nil
	f.publish()
}

func (f *Flow) startSession() {
	id := uuid.NewString()
	s, err := f.newSession(id)
	if err != nil {
		f.err = fmt.Errorf("start session: %w", err)
		f.log.Error("session start failed", zap.String("session", id), zap.Error(err))
		return
	}
	f.session = s
	f.sessions++
	f.publish()
}

func (f *Flow) endSession() {
	if f.clock != nil {
		f.clock.Resume()
	}
	if f.session == nil {
		return
	}
	f.lastScore = f.session.World().Score
	if f.lastScore > f.highScore {
		f.highScore = f.lastScore
	}
	f.log.Info("session ended",
		zap.String("session", f.session.ID()),
		zap.Int("score", f.lastScore),
		zap.Int("wave", f.session.Wave()),
		zap.Int("rescued", f.session.World().Rescued),
	)
}

func (f *Flow) enterGameOver() {
	f.publish()
}

func (f *Flow) sessionOver() bool {
	return f.session == nil || f.session.Over()
}

func (f *Flow) gameOverElapsed() bool {
	return f.delay > 0 && f.machine.TimeInState() >= f.delay
}

func (f *Flow) publish() {
	f.metrics.Strings.Get("flow.state").Store(f.machine.StateName())
	f.metrics.Ints.Get("flow.sessions").Store(int64(f.sessions))
	f.metrics.Ints.Get("flow.high_score").Store(int64(f.highScore))
}

func (f *Flow) drawTitle() {
	f.canvas.Clear()
	f.center(-3, "S T A R F A L L", render.StyleHUDAccent)
	f.center(-1, "arrows / hjkl / wasd move   space fires   p pauses", render.StyleHUD)
	f.center(1, "enter to launch   q to quit", render.StyleHUD)
	if f.highScore > 0 {
		f.center(3, fmt.Sprintf("high score %06d", f.highScore), render.StyleFloater)
	}
	f.canvas.Show()
}

func (f *Flow) drawGameOver() {
	f.canvas.Clear()
	f.center(-2, "GAME OVER", render.StyleEnemy)
	f.center(0, fmt.Sprintf("score %06d   high %06d", f.lastScore, f.highScore), render.StyleHUD)
	f.center(2, "enter for title   q to quit", render.StyleHUD)
	f.canvas.Show()
}

// center writes s horizontally centered, dy rows from the middle
func (f *Flow) center(dy int, s string, style tcell.Style) {
	w, h := f.canvas.Size()
	f.canvas.Text((w-len(s))/2, h/2+dy, s, style)
}
