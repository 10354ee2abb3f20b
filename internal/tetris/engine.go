package tetris

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

// State is the Engine's lifecycle state.
type State uint8

const (
	StateInitialized State = iota
	StateRunning
	StatePaused
	StateStopped
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the timer the Engine arms while running. Without one
// the host calls Tick itself.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithRand sets the random source used for piece selection.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a private random source for piece selection.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithEventSink registers the event callback.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// MinInterval is the shortest gravity interval the engine runs at. WithSpeed
// raises lower floors to it.
const MinInterval = time.Millisecond

// WithSpeed replaces the default score-to-interval curve.
func WithSpeed(s Speed) Option {
	s.Floor = max(s.Floor, MinInterval)
	return func(e *Engine) { e.speed = s }
}

// WithMemory sets the generator's no-repeat window.
func WithMemory(m int) Option {
	return func(e *Engine) { e.memory = m }
}

// Engine runs one game. It holds no goroutines; every method must be called
// serialized with the others and with Scheduler callbacks.
type Engine struct {
	board     *Board
	generator *Generator
	current   Block
	next      Block
	hasBlock  bool

	state    State
	score    int
	lines    int
	pieces   int
	interval time.Duration
	stats    *intmap.Map[Shape, int]

	scheduler Scheduler
	rng       *rand.Rand
	memory    int
	speed     Speed
	sink      EventSink
	logger    *log.Logger
}

// New creates an Engine for a width x height playfield. It panics if the
// board is smaller than MinWidth x MinHeight.
func New(width, height int, opts ...Option) *Engine {
	if err := ValidateSize(width, height); err != nil {
		panic(err.Error())
	}

	e := &Engine{
		board:  NewBoard(width, height),
		state:  StateInitialized,
		memory: DefaultMemory,
		speed:  DefaultSpeed(),
		stats:  intmap.New[Shape, int](ShapeCount),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.generator = NewGenerator(e.rng, e.memory)
	e.interval = e.speed.Interval(0)
	return e
}

// SetEventSink replaces the registered event callback. nil disables events.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink(ev)
	}
}

// Start begins a fresh game from any state.
func (e *Engine) Start() {
	e.score = 0
	e.lines = 0
	e.pieces = 0
	e.stats.Clear()
	e.board.Clear()
	e.generator.Reset()

	e.current = e.spawn(e.generator.Next())
	e.next = e.generator.Next()
	e.hasBlock = true
	e.writeBlock(e.current)

	e.logger.Debug("game started", "width", e.board.Width(), "height", e.board.Height(),
		"shape", e.current.Shape, "next", e.next.Shape)
	e.emit(StartGameEvent{})
	e.emit(NewPieceEvent{Shape: e.current.Shape, Next: e.next.Shape})

	e.state = StateRunning
	e.interval = e.speed.Interval(e.score)
	e.arm()
}

// Pause suspends a running game.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.state = StatePaused
	e.disarm()
	e.logger.Debug("game paused", "score", e.score)
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.state = StateRunning
	e.arm()
	e.logger.Debug("game resumed", "score", e.score)
}

// Stop ends the game. A new game requires Start.
func (e *Engine) Stop() {
	if e.state == StateStopped {
		return
	}
	e.state = StateStopped
	e.disarm()
	e.logger.Debug("game stopped", "score", e.score)
}

// Tick advances gravity by one step. It is a no-op unless running.
func (e *Engine) Tick() {
	if e.state != StateRunning || !e.hasBlock {
		return
	}

	switch {
	case e.current.CanFall(e.board):
		e.moveBlock((*Block).Fall)
		e.emit(FallEvent{})

	case e.current.IsFalling():
		e.lock()

	default:
		e.promote()
	}
}

// lock turns the active block into board material, clears completed rows and
// checks for overflow.
func (e *Engine) lock() {
	e.current.MakeObstacle()
	e.writeBlock(e.current)
	e.pieces++

	if lines := e.board.FindCompletedLines(); len(lines) > 0 {
		e.board.Remove(lines)
		e.lines += len(lines)
		e.score += len(lines)
		e.interval = e.speed.Interval(e.score)
		e.arm()
		e.logger.Debug("lines completed", "lines", lines, "score", e.score, "interval", e.interval)
		e.emit(CompletedEvent{Lines: lines})
	}

	if e.board.IsObstacle(e.board.Height()) {
		e.logger.Debug("game over", "score", e.score, "lines", e.lines, "pieces", e.pieces)
		e.emit(GameOverEvent{})
		e.Stop()
	}
}

// promote makes the next block the active one and draws a fresh next block.
func (e *Engine) promote() {
	e.current = e.spawn(e.next)
	e.next = e.generator.Next()
	e.writeBlock(e.current)
	e.emit(NewPieceEvent{Shape: e.current.Shape, Next: e.next.Shape})
}

func (e *Engine) spawn(bl Block) Block {
	placed := bl.Placed(e.board.Height(), e.board)
	count, _ := e.stats.Get(placed.Shape)
	e.stats.Put(placed.Shape, count+1)
	return placed
}

// MoveLeft shifts the active block left if there is room.
func (e *Engine) MoveLeft() {
	if !e.activeFalling() || !e.current.CanMoveLeft(e.board) {
		return
	}
	e.moveBlock((*Block).MoveLeft)
	e.emit(MoveLeftEvent{})
}

// MoveRight shifts the active block right if there is room.
func (e *Engine) MoveRight() {
	if !e.activeFalling() || !e.current.CanMoveRight(e.board) {
		return
	}
	e.moveBlock((*Block).MoveRight)
	e.emit(MoveRightEvent{})
}

// Rotate turns the active block clockwise if the new orientation fits.
func (e *Engine) Rotate() {
	if !e.activeFalling() {
		return
	}
	before := e.current
	if !e.current.Rotate(e.board) {
		return
	}
	e.eraseBlock(before)
	e.writeBlock(e.current)
	e.emit(RotateEvent{By: 90})
}

// Drop lets the active block fall as far as it can. It never locks; locking
// happens on the next Tick. A DropEvent is emitted even for zero rows.
func (e *Engine) Drop() {
	if !e.activeFalling() {
		return
	}
	distance := 0
	for e.current.IsFalling() && e.current.CanFall(e.board) {
		e.moveBlock((*Block).Fall)
		distance++
	}
	e.emit(DropEvent{By: distance})
}

// activeFalling gates input: a paused or stopped game is frozen.
func (e *Engine) activeFalling() bool {
	return e.state == StateRunning && e.hasBlock && e.current.IsFalling()
}

// moveBlock applies mv to the active block and rewrites its board cells as a
// single step.
func (e *Engine) moveBlock(mv func(*Block)) {
	e.eraseBlock(e.current)
	mv(&e.current)
	e.writeBlock(e.current)
}

func (e *Engine) eraseBlock(bl Block) {
	for _, p := range bl.Positions() {
		if e.board.InBounds(p) {
			e.board.Set(Empty(), p)
		}
	}
}

func (e *Engine) writeBlock(bl Block) {
	c := Filled(bl.Shape)
	if bl.IsFalling() {
		c = Falling(bl.Shape)
	}
	for _, p := range bl.Positions() {
		if e.board.InBounds(p) {
			e.board.Set(c, p)
		}
	}
}

// arm (re)starts the scheduler with the current interval, replacing any
// pending callback.
func (e *Engine) arm() {
	if e.scheduler == nil || e.state != StateRunning {
		return
	}
	e.scheduler.Cancel()
	e.scheduler.After(e.interval, e.onTimer)
}

func (e *Engine) disarm() {
	if e.scheduler != nil {
		e.scheduler.Cancel()
	}
}

func (e *Engine) onTimer() {
	e.Tick()
	e.arm()
}

// CellAt returns the board cell at (x, y), buffer rows included. It panics
// for coordinates outside the board.
func (e *Engine) CellAt(x, y int) Cell {
	return e.board.Cell(Pos(x, y))
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the number of lines cleared in this game.
func (e *Engine) Score() int {
	return e.score
}

// Lines returns the total number of completed lines removed.
func (e *Engine) Lines() int {
	return e.lines
}

// Pieces returns how many blocks have locked.
func (e *Engine) Pieces() int {
	return e.pieces
}

// Interval returns the current gravity interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Width returns the board width.
func (e *Engine) Width() int {
	return e.board.Width()
}

// Height returns the number of visible rows.
func (e *Engine) Height() int {
	return e.board.Height()
}

// Current returns the active block, if a game has started.
func (e *Engine) Current() (Block, bool) {
	return e.current, e.hasBlock
}

// Next returns the upcoming block's shape and orientation.
func (e *Engine) Next() (Shape, Orientation, bool) {
	return e.next.Shape, e.next.Orientation, e.hasBlock
}

// Stats returns how many times each shape has spawned this game.
func (e *Engine) Stats() map[Shape]int {
	out := make(map[Shape]int, ShapeCount)
	for _, s := range Shapes {
		if n, ok := e.stats.Get(s); ok {
			out[s] = n
		}
	}
	return out
}

// Board returns a copy of the board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// String implements fmt.Stringer for debugging.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine{state=%s score=%d lines=%d pieces=%d}", e.state, e.score, e.lines, e.pieces)
}
