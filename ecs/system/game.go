package system

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/unstable/ecs"
	"github.com/milk9111/unstable/ecs/component"
	"github.com/milk9111/unstable/ecs/entity"
	"github.com/milk9111/unstable/prefabs"
	"github.com/milk9111/unstable/spawnring"
)

// GameSystem is the director. It owns the Menu -> Game -> GameOver flow,
// schedules spawners on the ring and resets the session.
type GameSystem struct {
	clock     Clock
	spec      *prefabs.GameSpec
	pools     *entity.Pools
	scheduler *spawnring.Scheduler
	spawners  *SpawnerSystem
	scores    ScoreBoard
	rng       *rand.Rand

	script  *tengo.Compiled
	effects []component.FieldEffect
	loaded  bool
}

// GameSystemConfig wires the director to the rest of the session.
type GameSystemConfig struct {
	Clock     Clock
	Spec      *prefabs.GameSpec
	Pools     *entity.Pools
	Scheduler *spawnring.Scheduler
	Spawners  *SpawnerSystem
	Scores    ScoreBoard
	Rng       *rand.Rand
}

func NewGameSystem(cfg GameSystemConfig) (*GameSystem, error) {
	if cfg.Spec == nil {
		return nil, fmt.Errorf("game: nil spec")
	}
	if cfg.Scheduler == nil {
		return nil, fmt.Errorf("game: nil scheduler")
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(cfg.Spec.Seed, 1))
	}
	g := &GameSystem{
		clock:     cfg.Clock,
		spec:      cfg.Spec,
		pools:     cfg.Pools,
		scheduler: cfg.Scheduler,
		spawners:  cfg.Spawners,
		scores:    cfg.Scores,
		rng:       rng,
	}
	for _, name := range cfg.Spec.Field.Effects {
		effect, ok := component.ParseFieldEffect(name)
		if !ok {
			return nil, fmt.Errorf("game: unknown field effect %q", name)
		}
		g.effects = append(g.effects, effect)
	}
	if err := g.ReloadScript(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReloadScript compiles the director script named by the tuning file. An
// empty name keeps the tuning values fixed.
func (g *GameSystem) ReloadScript() error {
	name := g.spec.Director.Script
	if name == "" {
		g.script = nil
		return nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return fmt.Errorf("game: load script %s: %w", name, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("kills", 0)
	_ = script.Add("base_interval", 0.0)
	_ = script.Add("base_health", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("game: compile script %s: %w", name, err)
	}
	if !compiled.IsDefined("spawn_interval") || !compiled.IsDefined("spawner_health") {
		return fmt.Errorf("game: script %s must define spawn_interval and spawner_health", name)
	}
	g.script = compiled
	return nil
}

// Tune runs the director script for the current run state. Without a
// script the tuning defaults apply.
func (g *GameSystem) Tune(elapsed float64, kills int) (float64, int, error) {
	interval, health := g.spec.Director.SpawnInterval, g.spec.Director.SpawnerHealth
	if g.script == nil {
		return interval, health, nil
	}
	c := g.script
	if err := c.Set("elapsed", elapsed); err != nil {
		return interval, health, err
	}
	if err := c.Set("kills", kills); err != nil {
		return interval, health, err
	}
	if err := c.Set("base_interval", interval); err != nil {
		return interval, health, err
	}
	if err := c.Set("base_health", health); err != nil {
		return interval, health, err
	}
	if err := c.Run(); err != nil {
		return interval, health, err
	}
	if v := c.Get("spawn_interval").Float(); v > 0 {
		interval = v
	}
	if v := c.Get("spawner_health").Int(); v > 0 {
		health = v
	}
	return interval, health, nil
}

// RequestStart asks the director to begin a run on its next update.
func RequestStart(w *ecs.World) {
	if gs, ok := gameState(w); ok {
		gs.StartRequested = true
	}
}

func (g *GameSystem) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	g.pools.AdvanceFrame()

	gs, ok := gameState(w)
	if !ok {
		return
	}
	if !g.loaded {
		g.loaded = true
		g.loadBest(gs)
	}

	player, hasPlayer := w.First(component.PlayerTagComponent.Kind())
	gs.PlayerScale = 1
	if hasPlayer {
		gs.PlayerScale = timeScale(w, player)
	}
	gs.TimeOffset = 1 - gs.PlayerScale

	if hasPlayer && gs.Phase != component.PhaseMenu {
		if in, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
			switch {
			case in.HardReset:
				gs.ResetRequested, gs.ClearBest = true, true
			case in.Reset:
				gs.ResetRequested = true
			}
		}
	}

	if gs.StartRequested || gs.ResetRequested {
		hard := gs.ClearBest
		gs.StartRequested, gs.ResetRequested, gs.ClearBest = false, false, false
		g.Reset(w, hard)
		return
	}

	switch gs.Phase {
	case component.PhaseGame:
		g.tick(w, gs, player)
	case component.PhaseGameOver:
		// late arrivals (enemies from still running spawners) join the freeze
		g.freeze(w)
	}
}

func (g *GameSystem) tick(w *ecs.World, gs *component.GameState, player ecs.Entity) {
	dt := g.clock.DeltaTime()

	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok && p.Dead {
		g.gameOver(w, gs)
		return
	}

	gs.Elapsed += dt
	gs.SpawnTimer += dt
	if gs.SpawnTimer < gs.SpawnInterval {
		return
	}
	gs.SpawnTimer = 0

	interval, health, err := g.Tune(gs.Elapsed, gs.Kills)
	if err != nil {
		log.Printf("game: director script: %v", err)
	}
	gs.SpawnInterval, gs.SpawnerHealth = interval, health
	g.spawnSpawner(w, gs)
}

// spawnSpawner reserves a ring slot pair and launches a spawner. A full
// ring skips this cycle.
func (g *GameSystem) spawnSpawner(w *ecs.World, gs *component.GameState) {
	r, ok := g.scheduler.FindSpawnReservation()
	if !ok {
		return
	}
	ticket := spawnring.NewTicket(g.scheduler, r)
	effect := component.FieldTimeSlow
	if len(g.effects) > 0 {
		effect = g.effects[g.rng.IntN(len(g.effects))]
	}
	e, err := entity.NewSpawner(w, g.spec, ticket, gs.SpawnerHealth, effect)
	if err != nil {
		ticket.Die()
		log.Printf("game: spawn spawner: %v", err)
		return
	}
	g.spawners.LaunchSpawner(w, e)
}

func (g *GameSystem) gameOver(w *ecs.World, gs *component.GameState) {
	gs.Phase = component.PhaseGameOver
	g.freeze(w)
	if gs.Recorded {
		return
	}
	gs.Recorded = true
	if g.scores == nil {
		if gs.Elapsed > gs.BestTime {
			gs.BestTime = gs.Elapsed
		}
		return
	}
	run, err := g.scores.RecordRun(context.Background(), gs.Seed, gs.Elapsed, gs.Kills)
	if err != nil {
		log.Printf("game: record run: %v", err)
		return
	}
	gs.RunID = run.ID
	g.loadBest(gs)
}

// freeze pushes the director's weight onto every live time-scale stack.
func (g *GameSystem) freeze(w *ecs.World) {
	gsEntity, ok := w.First(component.GameStateComponent.Kind())
	if !ok {
		return
	}
	weight := g.spec.Director.FreezeWeight
	ecs.ForEach(w, component.TimeScaleComponent.Kind(), func(e ecs.Entity, ts *component.TimeScale) {
		if parked(w, e) {
			return
		}
		ts.Stack.Push(ownerOf(gsEntity), weight)
	})
}

func (g *GameSystem) unfreeze(w *ecs.World) {
	gsEntity, ok := w.First(component.GameStateComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.TimeScaleComponent.Kind(), func(e ecs.Entity, ts *component.TimeScale) {
		ts.Stack.Pop(ownerOf(gsEntity))
	})
}

func (g *GameSystem) loadBest(gs *component.GameState) {
	if g.scores == nil {
		return
	}
	best, err := g.scores.Best(context.Background())
	if err != nil {
		log.Printf("game: load best time: %v", err)
		return
	}
	gs.BestTime = best
}

// Reset ends the current session and starts a fresh run. A hard reset
// also forgets the best time.
func (g *GameSystem) Reset(w *ecs.World, hard bool) {
	gs, ok := gameState(w)
	if !ok {
		return
	}

	g.pools.ResetAll()
	for _, e := range w.Query(component.SessionTagComponent.Kind()) {
		if sp, ok := ecs.Get(w, e, component.SpawnerComponent.Kind()); ok {
			sp.Runner.Cancel()
		}
		if ecs.Has(w, e, component.FieldComponent.Kind()) {
			ReleaseField(w, e)
			continue
		}
		ecs.DestroyEntity(w, e)
	}
	g.scheduler.Reset()
	g.unfreeze(w)

	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		entity.ResetPlayer(w, player, g.spec)
	}

	if hard {
		if g.scores != nil {
			if err := g.scores.ClearBest(context.Background()); err != nil {
				log.Printf("game: clear best time: %v", err)
			}
		}
		gs.BestTime = 0
	}

	gs.Phase = component.PhaseGame
	gs.Elapsed = 0
	gs.Kills = 0
	gs.RunID = ""
	gs.Recorded = false
	gs.SpawnInterval = g.spec.Director.SpawnInterval
	gs.SpawnerHealth = g.spec.Director.SpawnerHealth
	// the first spawner appears on the first frame of the run
	gs.SpawnTimer = gs.SpawnInterval
	gs.PlayerScale, gs.TimeOffset = 1, 0
}
