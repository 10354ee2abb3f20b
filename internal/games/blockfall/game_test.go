package blockfall

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// testConfig uses 50 ticks per second so every frame is exactly 20ms.
func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 50,
	}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id   string
		w, h int
	}{
		{ID, 10, 20},
		{MiniID, 4, 10},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			g, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tc.id, err)
			}
			g.Reset(testConfig(1))
			bf, ok := g.(*Game)
			if !ok {
				t.Fatalf("Create(%q) returned %T", tc.id, g)
			}
			if bf.Engine().Width() != tc.w || bf.Engine().Height() != tc.h {
				t.Errorf("board = %dx%d, want %dx%d", bf.Engine().Width(), bf.Engine().Height(), tc.w, tc.h)
			}
		})
	}
}

func TestConfigureAffectsNewGames(t *testing.T) {
	prev := Settings()
	defer Configure(prev)

	cfg := config.DefaultBlockfallConfig()
	cfg.Board.Width = 12
	Configure(cfg)

	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g.Reset(testConfig(1))
	if w := g.(*Game).Engine().Width(); w != 12 {
		t.Errorf("width = %d, want 12", w)
	}

	mini, _ := registry.Create(MiniID)
	mini.Reset(testConfig(1))
	if w := mini.(*Game).Engine().Width(); w != 4 {
		t.Errorf("mini width = %d, want 4", w)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New(config.DefaultBlockfallConfig())
	g1.Reset(testConfig(12345))
	g2 := New(config.DefaultBlockfallConfig())
	g2.Reset(testConfig(12345))

	a1 := NewAutopilot(7, 5)
	a2 := NewAutopilot(7, 5)
	for i := 0; i < 3000; i++ {
		g1.Step(a1.Next())
		g2.Step(a2.Next())
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if s1.Tick != 3000 {
		t.Errorf("Tick = %d, want 3000", s1.Tick)
	}
}

func TestGravityFollowsFrameClock(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(3))

	for i := 1; i < 50; i++ {
		res := g.Step(core.NewInputFrame())
		if len(res.Events) != 0 {
			t.Fatalf("frame %d: unexpected events %v", i, res.Events)
		}
	}

	res := g.Step(core.NewInputFrame())
	if !slices.Equal(res.Events, []string{"fall"}) {
		t.Errorf("frame 50 events = %v, want [fall]", res.Events)
	}
	if snap := g.Snapshot(); snap.Clock != 1000 {
		t.Errorf("Clock = %dms, want 1000", snap.Clock)
	}
}

func TestActionsApplyInOrder(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(9))

	res := g.Step(input(core.ActionLeft, core.ActionLeft, core.ActionDrop))
	if len(res.Events) != 3 {
		t.Fatalf("events = %v, want three", res.Events)
	}
	if res.Events[0] != "moveLeft" || res.Events[1] != "moveLeft" || !strings.HasPrefix(res.Events[2], "drop(by: ") {
		t.Errorf("events = %v", res.Events)
	}
}

func TestPauseToggle(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(4))

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Pause action should pause the game")
	}
	before := g.Snapshot()

	for i := 0; i < 200; i++ {
		res = g.Step(input(core.ActionLeft, core.ActionDrop))
		if len(res.Events) != 0 {
			t.Fatalf("paused game emitted %v", res.Events)
		}
	}
	after := g.Snapshot()
	if !reflect.DeepEqual(before.Engine, after.Engine) || before.Clock != after.Clock {
		t.Error("paused game state changed")
	}

	res = g.Step(input(core.ActionPause))
	if res.State.Paused {
		t.Error("second Pause action should resume")
	}
}

func TestTooSmallWindowFreezes(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	cfg := testConfig(5)
	cfg.ScreenW = 20
	g.Reset(cfg)

	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	if clock := g.Snapshot().Clock; clock != 0 {
		t.Errorf("Clock = %dms, want 0 while too small", clock)
	}

	screen := core.NewScreen(20, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too small overlay not rendered")
	}

	g.Resize(80, 30)
	g.Step(core.NewInputFrame())
	if clock := g.Snapshot().Clock; clock != 20 {
		t.Errorf("Clock = %dms after resize, want 20", clock)
	}
}

func TestRender(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(6))
	g.Step(input(core.ActionDrop))

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Blockfall", "NEXT", "SCORE  0", "LINES  0", "SPEED  1000ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	box := g.layout.board
	if screen.Get(box.X, box.Y) != '┌' || screen.Get(box.Right()-1, box.Bottom()-1) != '┘' {
		t.Error("board frame not drawn at layout position")
	}

	// The dropped block rests on the floor, drawn two columns per cell.
	cur, ok := g.Engine().Current()
	if !ok {
		t.Fatal("no active block")
	}
	want := ShapeColor(cur.Shape, true)
	drawn := 0
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			if c := screen.GetCell(x, y); c.Rune == '█' && c.Color == want {
				drawn++
			}
		}
	}
	if drawn != 8 {
		t.Errorf("falling block covers %d screen cells, want 8", drawn)
	}
}

func TestGhostRestsOnFloor(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(8))

	ghost := g.ghost()
	if len(ghost) != 4 {
		t.Fatalf("ghost = %v", ghost)
	}
	lowest := ghost[0].Y
	for _, p := range ghost {
		lowest = min(lowest, p.Y)
	}
	if lowest != 0 {
		t.Errorf("ghost lowest row = %d, want 0 on an empty board", lowest)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := NewMini(config.DefaultBlockfallConfig())
	g.Reset(testConfig(10))

	var res core.StepResult
	for i := 0; i < 200000 && !res.State.GameOver; i++ {
		res = g.Step(input(core.ActionDrop))
	}
	if !res.State.GameOver {
		t.Fatal("game never ended")
	}
	if !slices.Contains(res.Events, "gameOver") {
		t.Errorf("final events = %v, want gameOver", res.Events)
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay not rendered")
	}

	res = g.Step(input(core.ActionRestart))
	if res.State.GameOver || res.State.Score != 0 || res.State.Pieces != 0 {
		t.Errorf("state after restart = %+v", res.State)
	}
}

func TestLineFlash(t *testing.T) {
	g := New(config.DefaultBlockfallConfig())
	g.Reset(testConfig(11))

	g.onEvent(tetris.CompletedEvent{Lines: []int{0, 1}})
	if g.flash != "+2 DOUBLE" || g.flashTicks != 50 {
		t.Errorf("flash = %q for %d ticks", g.flash, g.flashTicks)
	}
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.flashTicks != 0 {
		t.Errorf("flashTicks = %d after one second", g.flashTicks)
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name           string
		bw, bh, sw, sh int
		fits           bool
	}{
		{"classic on 80x24", 10, 20, 80, 24, true},
		{"classic on 80x23", 10, 20, 80, 23, false},
		{"mini on 40x14", 4, 10, 40, 14, true},
		{"narrow", 10, 20, 39, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := computeLayout(tc.bw, tc.bh, tc.sw, tc.sh)
			if l.fits != tc.fits {
				t.Errorf("fits = %v, want %v (need %dx%d)", l.fits, tc.fits, l.reqW, l.reqH)
			}
		})
	}
}

func TestAutopilot(t *testing.T) {
	a := NewAutopilot(1, 3)
	b := NewAutopilot(1, 3)
	for i := 1; i <= 30; i++ {
		fa, fb := a.Next(), b.Next()
		if !reflect.DeepEqual(fa, fb) {
			t.Fatalf("frame %d: %v vs %v", i, fa.Actions, fb.Actions)
		}
		if i%3 != 0 && !fa.Empty() {
			t.Errorf("frame %d: autopilot acted off schedule", i)
		}
	}
}

func TestCreateVariants(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	config.ApplyPreset(&cfg, config.DifficultyHard)

	g, err := Create(MiniID, cfg)
	if err != nil {
		t.Fatalf("Create(%q) error: %v", MiniID, err)
	}
	if w, h := g.BoardSize(); w != 4 || h != 10 {
		t.Errorf("BoardSize() = %dx%d, want 4x10", w, h)
	}
	if g.Config().Speed.Step != 40*time.Millisecond {
		t.Errorf("Speed.Step = %v, want 40ms", g.Config().Speed.Step)
	}

	if _, err := Create("tetris", cfg); err == nil {
		t.Error("Create(\"tetris\") succeeded, want error")
	}
}

func TestSetDifficulty(t *testing.T) {
	cfg := config.DefaultBlockfallConfig()
	cfg.Speed.Step = 25 * time.Millisecond

	g := New(cfg)
	g.SetDifficulty(config.DifficultyNormal)
	if got := g.Config().Speed.Step; got != 25*time.Millisecond {
		t.Errorf("same preset: Speed.Step = %v, want the configured 25ms", got)
	}

	g.SetDifficulty(config.DifficultyHard)
	if got := g.Config(); got.Difficulty != config.DifficultyHard || got.Speed.Step != 40*time.Millisecond {
		t.Errorf("hard: got %q step %v, want hard 40ms", got.Difficulty, got.Speed.Step)
	}

	created, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("registry.Create(%q) error: %v", ID, err)
	}
	if _, ok := created.(interface {
		SetDifficulty(config.DifficultyPreset)
	}); !ok {
		t.Errorf("%T does not take a difficulty preset", created)
	}
}
