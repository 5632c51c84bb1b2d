package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/unstable/assets"
	"github.com/milk9111/unstable/common"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/ecs/system"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/scores"
	"github.com/milk9111/unstable/spawnring"
	"golang.org/x/image/colornames"
)

const (
	fixedStep = 1.0 / common.TicksPerSecond
	// maxFixedSteps caps catch-up after a stall so physics never spirals.
	maxFixedSteps = 5
	maxFrameDelta = 0.25
)

// Config is what main collects from the command line.
type Config struct {
	Debug  bool
	Seed   uint64
	DBPath string
}

// loopClock is the system.Clock of the running game. Frame is set once per
// Update; Fixed never changes.
type loopClock struct {
	frame float64
}

func (c *loopClock) DeltaTime() float64      { return c.frame }
func (c *loopClock) FixedDeltaTime() float64 { return fixedStep }

type Game struct {
	world *ecs.World
	spec  *prefabs.GameSpec
	clock *loopClock
	debug bool

	frame  *ecs.Scheduler
	fixed  *ecs.Scheduler
	render *ecs.Scheduler

	director *system.GameSystem
	physics  *system.PhysicsSystem

	scores  *scores.Store
	watcher *prefabs.Watcher
	menu    *ebitenui.UI
	onMenu  func(gs *component.GameState)
	hud     *hud

	last        time.Time
	accumulator float64
	quit        bool
}

func NewGame(cfg Config) (*Game, error) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		spec.Seed = cfg.Seed
	}

	g := &Game{
		world: ecs.NewWorld(),
		spec:  spec,
		clock: &loopClock{frame: fixedStep},
		debug: cfg.Debug,
	}
	w := g.world

	mixer := assets.NewMixer(assets.NewBank(spec.Seed))
	pools := entity.NewPools(w, spec, rand.New(rand.NewPCG(spec.Seed, 1)))

	if _, err := entity.NewGameState(w, spec); err != nil {
		return nil, err
	}
	if _, err := entity.NewArena(w, spec); err != nil {
		return nil, err
	}
	if _, err := entity.NewPlayer(w, spec); err != nil {
		return nil, err
	}
	if _, err := entity.NewCamera(w, spec); err != nil {
		return nil, err
	}
	if _, err := entity.NewMusic(w, spec, mixer); err != nil {
		// a missing audio device only costs the soundtrack
		log.Printf("game: music disabled: %v", err)
	}

	layers := make([]spawnring.LayerConfig, 0, len(spec.Rings))
	for _, r := range spec.Rings {
		layers = append(layers, spawnring.LayerConfig{Radius: r.Radius, Slots: r.Slots})
	}
	ring, err := spawnring.NewScheduler(layers, mgl64.Vec2{}, nil, rand.New(rand.NewPCG(spec.Seed, 2)))
	if err != nil {
		return nil, fmt.Errorf("game: spawn ring: %w", err)
	}

	camera := system.NewCameraSystem(g.clock, mixer)
	ring.SetVisibility(camera)

	var board system.ScoreBoard
	if cfg.DBPath != "" {
		store, err := scores.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Printf("game: run history disabled: %v", err)
		} else {
			g.scores = store
			board = store
		}
	}

	spawners := system.NewSpawnerSystem(g.clock, spec, pools)
	g.director, err = system.NewGameSystem(system.GameSystemConfig{
		Clock:     g.clock,
		Spec:      spec,
		Pools:     pools,
		Scheduler: ring,
		Spawners:  spawners,
		Scores:    board,
		Rng:       rand.New(rand.NewPCG(spec.Seed, 3)),
	})
	if err != nil {
		return nil, err
	}
	g.physics = system.NewPhysicsSystem(g.clock)

	g.frame = ecs.NewScheduler("frame",
		system.NewInputSystem(),
		g.director,
		system.NewPlayerSystem(),
		system.NewWeaponSystem(g.clock, pools, rand.New(rand.NewPCG(spec.Seed, 4))),
		spawners,
		system.NewAudioSystem(pools, mixer),
		system.NewVFXSystem(g.clock, pools),
		system.NewWhiteFlashSystem(g.clock),
		system.NewMusicSystem(g.clock),
		camera,
	)
	g.fixed = ecs.NewScheduler("fixed",
		system.NewMotionSystem(g.clock, pools),
		g.physics,
		system.NewFieldSystem(),
		system.NewCombatSystem(pools, spawners),
		system.NewBulletSystem(g.clock, pools),
	).FlushEvents(true)
	g.render = ecs.NewScheduler("render", system.NewRenderSystem())

	g.menu = NewMenuUI(g)
	g.hud = newHUD()

	if cfg.Debug {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = watcher
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	dt := fixedStep
	if !g.last.IsZero() {
		dt = common.Clamp(now.Sub(g.last).Seconds(), 0, maxFrameDelta)
	}
	g.last = now
	g.clock.frame = dt

	g.drainReloads()

	if gs, ok := g.state(); ok && gs.Phase == component.PhaseMenu {
		if g.onMenu != nil {
			g.onMenu(gs)
		}
		g.menu.Update()
	}

	g.frame.Update(g.world)

	g.accumulator += dt
	steps := 0
	for g.accumulator >= fixedStep && steps < maxFixedSteps {
		g.fixed.Update(g.world)
		g.accumulator -= fixedStep
		steps++
	}
	if steps == maxFixedSteps {
		g.accumulator = 0
	}
	return nil
}

// drainReloads applies tuning and script edits picked up by the watcher.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch {
	case prefabs.IsScriptFile(name):
		if err := g.director.ReloadScript(); err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
	case prefabs.IsSpecFile(name):
		spec, err := prefabs.LoadGameSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		// systems hold the spec pointer; units built from now on see the
		// new values
		seed := g.spec.Seed
		*g.spec = *spec
		g.spec.Seed = seed
	default:
		return
	}
	log.Printf("game: reloaded %s", name)
}

func (g *Game) state() (*component.GameState, bool) {
	e, ok := g.world.First(component.GameStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(g.world, e, component.GameStateComponent.Kind())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawTimeScaleDebug(g.world, screen)
	}

	gs, ok := g.state()
	if !ok {
		return
	}
	if gs.Phase == component.PhaseMenu {
		g.menu.Draw(screen)
		return
	}
	g.hud.Draw(screen, g.world, gs)
}

// Close releases the watcher and the score store.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.scores != nil {
		errs = append(errs, g.scores.Close())
	}
	return errors.Join(errs...)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.ScreenWidth, common.ScreenHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
