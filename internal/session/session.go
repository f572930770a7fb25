// Package session runs one snake engine on its own goroutine, driving it
// from a resettable ticker and a buffered input channel.
package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const defaultInputBuffer = 32

// Update is published to the Observer after every state change.
type Update struct {
	Snapshot snake.Snapshot
	Ticked   bool // produced by a tick rather than input
	Ate      bool
	Started  bool
	Ended    bool
}

// Observer receives updates on the session goroutine. It must not block.
type Observer func(Update)

// Options configures a Session.
type Options struct {
	ID          string
	Engine      *snake.Engine
	Ticker      Ticker // nil = NewTicker()
	Observer    Observer
	InputBuffer int
	Logger      *log.Logger
}

// Session owns an engine for the lifetime of one viewer.
type Session struct {
	id       string
	engine   *snake.Engine
	ticker   Ticker
	observer Observer
	logger   *log.Logger

	input    chan core.Action
	done     chan struct{}
	doneOnce sync.Once
}

// New creates a session. Call Run to start it.
func New(opts Options) *Session {
	if opts.Ticker == nil {
		opts.Ticker = NewTicker()
	}
	if opts.InputBuffer < 1 {
		opts.InputBuffer = defaultInputBuffer
	}
	if opts.Observer == nil {
		opts.Observer = func(Update) {}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Session{
		id:       opts.ID,
		engine:   opts.Engine,
		ticker:   opts.Ticker,
		observer: opts.Observer,
		logger:   opts.Logger.With("session", opts.ID),
		input:    make(chan core.Action, opts.InputBuffer),
		done:     make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Send queues an action. Non-blocking: it reports false when the session
// has stopped or the buffer is full.
func (s *Session) Send(a core.Action) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.input <- a:
		return true
	default:
		s.logger.Debug("input dropped", "action", a)
		return false
	}
}

// Done returns a channel that closes when the session stops.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop ends the session. Safe to call more than once.
func (s *Session) Stop() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Run drives the engine until ctx is cancelled or Stop is called.
// The ticker is stopped before Run returns, so no tick fires afterwards.
func (s *Session) Run(ctx context.Context) {
	defer s.Stop()
	defer s.ticker.Stop()

	s.logger.Debug("session started")
	s.observer(Update{Snapshot: s.engine.Snapshot()})

	for {
		select {
		case a := <-s.input:
			s.apply(a)

		case <-s.ticker.C():
			s.tick()

		case <-ctx.Done():
			s.logger.Debug("session cancelled")
			return

		case <-s.done:
			s.logger.Debug("session stopped")
			return
		}
	}
}

func (s *Session) apply(a core.Action) {
	prevStatus := s.engine.Status()
	prevInterval := s.engine.CurrentTickInterval()

	if !s.engine.HandleAction(a) {
		return
	}

	status := s.engine.Status()
	s.reschedule(prevStatus, prevInterval)
	s.observer(Update{
		Snapshot: s.engine.Snapshot(),
		Started:  a == core.ActionStart && status == snake.StatusRunning,
		Ended:    prevStatus == snake.StatusRunning && status == snake.StatusOver,
	})
}

func (s *Session) tick() {
	prevStatus := s.engine.Status()
	prevInterval := s.engine.CurrentTickInterval()

	res := s.engine.Tick()
	if prevStatus != snake.StatusRunning {
		return
	}

	s.reschedule(prevStatus, prevInterval)
	s.observer(Update{
		Snapshot: s.engine.Snapshot(),
		Ticked:   true,
		Ate:      res.Ate,
		Ended:    res.StatusChanged && res.State.Status == snake.StatusOver,
	})
}

// reschedule restarts the ticker when the game starts or speeds up and
// stops it when the game leaves running.
func (s *Session) reschedule(prevStatus snake.Status, prevInterval int) {
	status := s.engine.Status()
	switch {
	case status == snake.StatusRunning && (prevStatus != snake.StatusRunning || s.engine.CurrentTickInterval() != prevInterval):
		s.ticker.Reset(s.engine.TickDuration())
	case status != snake.StatusRunning && prevStatus == snake.StatusRunning:
		s.ticker.Stop()
	}
}
