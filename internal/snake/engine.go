// Package snake implements the snake game tick engine: movement, collision,
// food placement and score/speed progression on a fixed square board.
//
// The engine has no notion of time. A driver calls Tick at the interval
// returned by CurrentTickInterval and feeds input through HandleAction or
// SetPendingDirection. All methods must be called from a single goroutine.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// BoardSize is the side length of the square board.
const BoardSize = 20

// HighScoreStore persists the best score. Implementations are best-effort
// and must not block for long.
type HighScoreStore interface {
	SaveHighScore(score int)
	ClearHighScore()
}

// Options configures a new Engine.
type Options struct {
	Seed      int64 // 0 = time-based
	HighScore int   // value read from storage at startup
	Store     HighScoreStore
	Speed     config.SpeedCurve
}

// Engine owns the state of one snake game.
type Engine struct {
	rng   *rand.Rand
	speed config.SpeedCurve
	store HighScoreStore

	snake      []Cell // tail first, head last
	direction  Direction
	pending    Direction
	hasPending bool
	food       Cell

	status    Status
	score     int
	highScore int
	ticks     uint64
}

// StepResult describes the outcome of a Tick.
type StepResult struct {
	State         State
	Ate           bool
	ScoreChanged  bool
	StatusChanged bool
}

// New creates an idle engine showing a freshly reset board.
func New(opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	speed := opts.Speed
	if speed.IsZero() {
		speed = config.DefaultSpeedCurve()
	}

	e := &Engine{
		rng:       rand.New(rand.NewSource(seed)),
		speed:     speed.Normalize(),
		store:     opts.Store,
		highScore: max(opts.HighScore, 0),
		status:    StatusIdle,
	}
	e.resetBoard()
	return e
}

// resetBoard places the two-cell snake at the center heading right and
// spawns food.
func (e *Engine) resetBoard() {
	mid := BoardSize / 2
	e.snake = []Cell{
		{X: mid - 1, Y: mid},
		{X: mid, Y: mid},
	}
	e.direction = DirRight
	e.hasPending = false
	e.score = 0
	e.ticks = 0
	e.spawnFood()
}

// Start begins a new run. It resets the snake, score and food.
func (e *Engine) Start() {
	e.resetBoard()
	e.status = StatusRunning
}

// Tick advances the game by one step. It does nothing unless running.
func (e *Engine) Tick() StepResult {
	if e.status != StatusRunning {
		return StepResult{State: e.State()}
	}
	e.ticks++

	// Commit the buffered direction
	if e.hasPending {
		e.direction = e.pending
		e.hasPending = false
	}

	next := e.head().Step(e.direction)

	// Walls and self, checked against the pre-move body including the tail
	if !next.InBounds() || e.occupied(next) {
		e.EndGame()
		return StepResult{State: e.State(), StatusChanged: true}
	}

	e.snake = append(e.snake, next)
	if next == e.food {
		e.score++
		e.spawnFood()
		return StepResult{State: e.State(), Ate: true, ScoreChanged: true}
	}

	e.snake = e.snake[1:]
	return StepResult{State: e.State()}
}

// SetPendingDirection buffers a direction change for the next tick.
// It is ignored unless running, and when d reverses the active direction.
// Later calls before the next tick overwrite earlier ones.
func (e *Engine) SetPendingDirection(d Direction) {
	e.queueDirection(d)
}

func (e *Engine) queueDirection(d Direction) bool {
	if e.status != StatusRunning {
		return false
	}
	if _, ok := directionNames[d]; !ok {
		return false
	}
	if d == e.direction.Opposite() {
		return false
	}
	if e.hasPending && e.pending == d {
		return false
	}
	e.pending = d
	e.hasPending = true
	return true
}

// EndGame ends the current run, raising and persisting the high score
// when the run beat it. It does nothing unless running.
func (e *Engine) EndGame() {
	if e.status != StatusRunning {
		return
	}
	e.status = StatusOver
	e.hasPending = false

	if e.score > e.highScore {
		e.highScore = e.score
		if e.store != nil {
			e.store.SaveHighScore(e.score)
		}
	}
}

// ResetHighScore sets the high score to 0 and clears the stored value.
func (e *Engine) ResetHighScore() {
	e.highScore = 0
	if e.store != nil {
		e.store.ClearHighScore()
	}
}

// CurrentTickInterval returns the tick interval, in speed curve units,
// for the current score.
func (e *Engine) CurrentTickInterval() int {
	return e.speed.Interval(e.score)
}

// TickDuration returns CurrentTickInterval as wall-clock time.
func (e *Engine) TickDuration() time.Duration {
	return e.speed.Duration(e.CurrentTickInterval())
}

// HandleAction applies an input action and reports whether it changed
// anything. Start is only honoured while idle or over.
func (e *Engine) HandleAction(a core.Action) bool {
	if d, ok := DirectionFromAction(a); ok {
		return e.queueDirection(d)
	}

	switch a {
	case core.ActionStart:
		if e.status == StatusRunning {
			return false
		}
		e.Start()
		return true
	case core.ActionEndGame:
		if e.status != StatusRunning {
			return false
		}
		e.EndGame()
		return true
	case core.ActionResetHighScore:
		e.ResetHighScore()
		return true
	}
	return false
}

// Status returns the lifecycle state.
func (e *Engine) Status() Status {
	return e.status
}

// Score returns the score of the current or last run.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score.
func (e *Engine) HighScore() int {
	return e.highScore
}

func (e *Engine) head() Cell {
	return e.snake[len(e.snake)-1]
}

// occupied checks if the snake covers the given cell.
func (e *Engine) occupied(c Cell) bool {
	for _, seg := range e.snake {
		if seg == c {
			return true
		}
	}
	return false
}

// spawnFood places food uniformly at random on an empty cell, or NoCell
// when the snake fills the board.
func (e *Engine) spawnFood() {
	taken := make(map[Cell]bool, len(e.snake))
	for _, seg := range e.snake {
		taken[seg] = true
	}

	empty := make([]Cell, 0, BoardSize*BoardSize-len(e.snake))
	for y := range BoardSize {
		for x := range BoardSize {
			c := Cell{X: x, Y: y}
			if !taken[c] {
				empty = append(empty, c)
			}
		}
	}

	if len(empty) == 0 {
		e.food = NoCell
		return
	}
	e.food = empty[e.rng.Intn(len(empty))]
}
