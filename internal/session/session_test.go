package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

type fakeTicker struct {
	ch chan time.Time

	mu      sync.Mutex
	resets  []time.Duration
	stops   int
	running bool
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Reset(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, d)
	f.running = true
}

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
}

func (f *fakeTicker) state() (resets []time.Duration, stops int, running bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.resets...), f.stops, f.running
}

type harness struct {
	t       *testing.T
	session *Session
	ticker  *fakeTicker
	updates chan Update
	cancel  context.CancelFunc
	stopped chan struct{}
}

func newHarness(t *testing.T, speed config.SpeedCurve) *harness {
	t.Helper()

	h := &harness{
		t:       t,
		ticker:  newFakeTicker(),
		updates: make(chan Update, 256),
		stopped: make(chan struct{}),
	}
	h.session = New(Options{
		ID:       "test",
		Engine:   snake.New(snake.Options{Seed: 7, Speed: speed}),
		Ticker:   h.ticker,
		Observer: func(u Update) { h.updates <- u },
		Logger:   log.New(io.Discard),
	})

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.session.Run(ctx)
		close(h.stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-h.stopped
	})

	// Initial snapshot
	if u := h.next(); u.Snapshot.Status != snake.StatusIdle {
		t.Fatalf("initial status = %v, expected idle", u.Snapshot.Status)
	}
	return h
}

func (h *harness) next() Update {
	h.t.Helper()
	select {
	case u := <-h.updates:
		return u
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func (h *harness) send(a core.Action) Update {
	h.t.Helper()
	if !h.session.Send(a) {
		h.t.Fatalf("Send(%v) rejected", a)
	}
	return h.next()
}

func (h *harness) tick() Update {
	h.t.Helper()
	select {
	case h.ticker.ch <- time.Now():
	case <-time.After(2 * time.Second):
		h.t.Fatal("session did not accept tick")
	}
	return h.next()
}

func TestStartSchedulesTicker(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())

	u := h.send(core.ActionStart)
	if !u.Started || u.Snapshot.Status != snake.StatusRunning {
		t.Fatalf("unexpected update %+v", u)
	}

	resets, _, running := h.ticker.state()
	if len(resets) != 1 || resets[0] != 140*time.Millisecond {
		t.Errorf("resets = %v, expected [140ms]", resets)
	}
	if !running {
		t.Error("ticker should be running")
	}
}

func TestTickAdvancesEngine(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())
	h.send(core.ActionStart)

	u := h.tick()
	if !u.Ticked || u.Snapshot.Tick != 1 {
		t.Errorf("expected first tick, got %+v", u)
	}
}

func TestEndGameStopsTicker(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())
	h.send(core.ActionStart)

	u := h.send(core.ActionEndGame)
	if !u.Ended || u.Snapshot.Status != snake.StatusOver {
		t.Fatalf("unexpected update %+v", u)
	}

	_, stops, running := h.ticker.state()
	if running || stops < 1 {
		t.Errorf("ticker should be stopped after game over (stops=%d running=%v)", stops, running)
	}
}

func TestIgnoredInputPublishesNothing(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())

	// Direction while idle is a no-op
	h.session.Send(core.ActionUp)
	u := h.send(core.ActionStart)
	if !u.Started {
		t.Errorf("expected the start update next, got %+v", u)
	}
}

func TestRestartReschedules(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())
	h.send(core.ActionStart)
	h.send(core.ActionEndGame)
	h.send(core.ActionStart)

	resets, _, running := h.ticker.state()
	if len(resets) != 2 || !running {
		t.Errorf("resets = %v running = %v, expected two schedules", resets, running)
	}
}

func TestEatingReschedulesFaster(t *testing.T) {
	speed := config.DefaultSpeedCurve()
	speed.PointsPerStep = 1
	h := newHarness(t, speed)

	u := h.send(core.ActionStart)
	for range 200 {
		// steer never reverses, so every turn it returns is accepted and published
		if a := steer(u.Snapshot); a != core.ActionNone {
			h.send(a)
		}
		u = h.tick()
		if u.Ate || u.Snapshot.Status != snake.StatusRunning {
			break
		}
	}

	if !u.Ate {
		t.Fatalf("snake never reached food, status %v", u.Snapshot.Status)
	}

	resets, _, _ := h.ticker.state()
	last := resets[len(resets)-1]
	if last != 130*time.Millisecond {
		t.Errorf("last reset = %v, expected 130ms after first food", last)
	}
}

// steer turns the snake toward the food without reversing.
func steer(s snake.Snapshot) core.Action {
	head, food := s.Head, s.Food
	horizontal := s.Direction == snake.DirLeft || s.Direction == snake.DirRight

	if horizontal {
		switch {
		case food.Y < head.Y:
			return core.ActionUp
		case food.Y > head.Y:
			return core.ActionDown
		case food.X < head.X && s.Direction == snake.DirRight,
			food.X > head.X && s.Direction == snake.DirLeft:
			if head.Y > 0 {
				return core.ActionUp
			}
			return core.ActionDown
		}
		return core.ActionNone
	}

	switch {
	case food.Y == head.Y && food.X < head.X:
		return core.ActionLeft
	case food.Y == head.Y && food.X > head.X:
		return core.ActionRight
	case food.Y < head.Y && s.Direction == snake.DirDown,
		food.Y > head.Y && s.Direction == snake.DirUp:
		if head.X > 0 {
			return core.ActionLeft
		}
		return core.ActionRight
	}
	return core.ActionNone
}

func TestCancelStopsTicker(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())
	h.send(core.ActionStart)

	h.cancel()
	select {
	case <-h.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	_, _, running := h.ticker.state()
	if running {
		t.Error("ticker should be stopped after cancel")
	}
	select {
	case <-h.session.Done():
	default:
		t.Error("Done() should be closed")
	}
	if h.session.Send(core.ActionUp) {
		t.Error("Send after stop should be rejected")
	}
}

func TestStopEndsRun(t *testing.T) {
	h := newHarness(t, config.DefaultSpeedCurve())
	h.send(core.ActionStart)

	h.session.Stop()
	h.session.Stop()

	select {
	case <-h.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if _, _, running := h.ticker.state(); running {
		t.Error("ticker should be stopped")
	}
}

func TestSendDropsWhenFull(t *testing.T) {
	s := New(Options{
		Engine:      snake.New(snake.Options{Seed: 1}),
		Ticker:      newFakeTicker(),
		InputBuffer: 1,
		Logger:      log.New(io.Discard),
	})

	if !s.Send(core.ActionStart) {
		t.Fatal("first Send should be buffered")
	}
	if s.Send(core.ActionUp) {
		t.Error("second Send should be dropped when the buffer is full")
	}
}
