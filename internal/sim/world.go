// Package sim связывает траектории, сущности и арбитр попаданий
// в пошаговую симуляцию волн противников.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/sky-shooter/internal/combat"
	"github.com/annel0/sky-shooter/internal/config"
	"github.com/annel0/sky-shooter/internal/entity"
	"github.com/annel0/sky-shooter/internal/eventbus"
	"github.com/annel0/sky-shooter/internal/logging"
	"github.com/annel0/sky-shooter/internal/metrics"
	"github.com/annel0/sky-shooter/internal/motion"
	"github.com/annel0/sky-shooter/internal/observability"
	"github.com/annel0/sky-shooter/internal/path"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// EventSource — значение Envelope.Source для событий симуляции
const EventSource = "sim"

// Deps — необязательные зависимости мира; nil-поля отключают соответствующую функцию
type Deps struct {
	Metrics *metrics.CombatMetrics
	Bus     eventbus.EventBus // nil — публикация в глобальную шину eventbus
	Tracer  trace.Tracer
}

// Stats — накопленные счётчики симуляции
type Stats struct {
	Tick             int  `json:"tick"`
	Spawned          int  `json:"spawned"`
	Kills            int  `json:"kills"`
	Escaped          int  `json:"escaped"`
	EffectiveHits    int  `json:"effective_hits"`
	IneffectiveHits  int  `json:"ineffective_hits"`
	PlayerShots      int  `json:"player_shots"`
	EnemyShots       int  `json:"enemy_shots"`
	PlayerHits       int  `json:"player_hits"`
	PlayerHP         int  `json:"player_hp"`
	PlayerDestroyed  bool `json:"player_destroyed"`
	ActiveEnemies    int  `json:"active_enemies"`
	ActiveShots      int  `json:"active_shots"`
	WavesOutstanding int  `json:"waves_outstanding"`
}

type wave struct {
	cfg     config.WaveConfig
	path    path.Path
	start   vec.Vec2
	spawned int
}

// World — состояние симуляции. Все методы потокобезопасны.
type World struct {
	mu sync.Mutex

	cfg    *config.Config
	deps   Deps
	tracer trace.Tracer
	arena  physics.Rect

	player      *entity.Ship
	patrol      *motion.Mover
	fireCount   int
	enemies     []*entity.Ship
	playerShots []entity.Shot
	enemyShots  []entity.Shot
	waves       []*wave

	stats Stats
}

// NewWorld строит мир по конфигурации: траектории всех волн
// генерируются заранее, ошибка любой из них прерывает создание.
func NewWorld(cfg *config.Config, deps Deps) (*World, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:    cfg,
		deps:   deps,
		tracer: deps.Tracer,
		arena:  cfg.Arena.Rect(),
	}
	if w.tracer == nil {
		w.tracer = observability.Tracer()
	}

	for _, wc := range cfg.Waves {
		p, err := wc.Path.Build()
		deps.Metrics.ObservePath(wc.Path.Kind, p, err)
		if err != nil {
			return nil, fmt.Errorf("волна %q: %w", wc.Name, err)
		}
		w.waves = append(w.waves, &wave{cfg: wc, path: p, start: firstMove(p)})
	}

	w.player = entity.NewShip(entity.KindPlayer, cfg.Player.Position, entity.ShipOptions{
		Faction: entity.FactionPlayer,
		HP:      cfg.Player.HP,
		Mask:    cfg.Player.Mask,
		IFrames: cfg.Player.IFrames,
	})
	if cfg.Player.Patrol != nil {
		p, err := cfg.Player.Patrol.Build()
		deps.Metrics.ObservePath(cfg.Player.Patrol.Kind, p, err)
		if err != nil {
			return nil, fmt.Errorf("патруль игрока: %w", err)
		}
		w.patrol = motion.NewMover(p)
		w.player.Position = firstMove(p)
	}

	w.stats.PlayerHP = w.player.HP
	w.stats.WavesOutstanding = len(w.waves)
	return w, nil
}

// firstMove возвращает координаты первой записи Move траектории
func firstMove(p path.Path) vec.Vec2 {
	for _, e := range p.All() {
		if e.IsMove() {
			return e.Location
		}
	}
	return vec.Vec2{}
}

// Player возвращает корабль игрока
func (w *World) Player() *entity.Ship {
	return w.player
}

// Stats возвращает снимок счётчиков
func (w *World) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Finished сообщает, что все волны выпущены и противников не осталось,
// либо игрок уничтожен
func (w *World) Finished() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats.PlayerDestroyed || (w.stats.WavesOutstanding == 0 && len(w.enemies) == 0)
}

// Run выполняет до ticks тиков подряд; останавливается раньше, когда
// сценарий отыгран (Finished) или отменён ctx
func (w *World) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.Tick(ctx); err != nil {
			return err
		}
		if w.Finished() {
			logging.Debug("Сценарий отыгран на тике %d", i+1)
			return nil
		}
	}
	return nil
}

// Tick продвигает мир на один шаг:
// появление волн → движение кораблей и стрельба → полёт снарядов →
// проверка попаданий → учёт результатов → уборка.
func (w *World) Tick(ctx context.Context) error {
	ctx, span := w.tracer.Start(ctx, "sim.Tick")
	defer span.End()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.stats.Tick++
	tick := w.stats.Tick

	w.spawnWaves(tick)
	w.updatePlayer(tick)

	api := worldAPI{w}
	for _, e := range w.enemies {
		e.Update(api)
	}

	w.advanceShots(w.playerShots)
	w.advanceShots(w.enemyShots)

	start := time.Now()
	playerContacts, err := w.sweep(ctx, w.playerShots, w.activeEnemies())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("тик %d: %w", tick, err)
	}
	var targets []*entity.Ship
	if w.player.Active {
		targets = []*entity.Ship{w.player}
	}
	enemyContacts, err := w.sweep(ctx, w.enemyShots, targets)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("тик %d: %w", tick, err)
	}
	w.deps.Metrics.ObserveSweep(time.Since(start))

	w.apply(ctx, tick, playerContacts)
	w.apply(ctx, tick, enemyContacts)

	w.cleanup()

	span.SetAttributes(
		attribute.Int("sim.tick", tick),
		attribute.Int("sim.enemies", len(w.enemies)),
		attribute.Int("sim.shots", len(w.playerShots)+len(w.enemyShots)),
		attribute.Int("sim.contacts", len(playerContacts)+len(enemyContacts)),
	)
	return nil
}

func (w *World) spawnWaves(tick int) {
	outstanding := 0
	for _, wv := range w.waves {
		for wv.spawned < wv.cfg.Count && tick >= wv.cfg.StartTick+wv.spawned*wv.cfg.Interval {
			ship := entity.NewShip(entity.KindEnemy, wv.start, entity.ShipOptions{
				Faction:      entity.FactionEnemy,
				HP:           wv.cfg.Ship.HP,
				Mask:         wv.cfg.Ship.Mask,
				Invulnerable: wv.cfg.Ship.Invulnerable,
				Large:        wv.cfg.Ship.Large,
			})
			ship.FollowPath(motion.NewMover(wv.path))
			w.enemies = append(w.enemies, ship)
			wv.spawned++
			w.stats.Spawned++
			logging.Debug("🛸 Волна %s: корабль %d/%d (%s) на тике %d", wv.cfg.Name, wv.spawned, wv.cfg.Count, ship.ID, tick)
		}
		if wv.spawned < wv.cfg.Count {
			outstanding++
		}
	}
	w.stats.WavesOutstanding = outstanding
}

func (w *World) updatePlayer(tick int) {
	w.player.Update(nil)
	if !w.player.Active {
		return
	}

	if w.patrol != nil {
		step := w.patrol.Step()
		if step.Moved {
			w.player.Position = step.Location
		}
		if step.Done {
			w.patrol.Reset()
		}
	}

	p := w.cfg.Player
	if p.FireEvery <= 0 || tick%p.FireEvery != 0 {
		return
	}
	w.fireCount++

	var shot entity.Shot
	if p.BombEvery > 0 && w.fireCount%p.BombEvery == 0 {
		wc := w.cfg.Weapons.PlayerBomb
		shot = entity.NewBomb(w.player.Position, vec.New(0, -wc.Speed), wc.Damage, wc.Mask, wc.BlastMask, entity.FactionPlayer)
	} else {
		wc := w.cfg.Weapons.PlayerBullet
		shot = entity.NewBullet(w.player.Position, vec.New(0, -wc.Speed), wc.Damage, wc.Mask, entity.FactionPlayer)
	}
	w.playerShots = append(w.playerShots, shot)
	w.stats.PlayerShots++
}

// fire выпускает пулю противника в сторону игрока
func (w *World) fire(from *entity.Ship) {
	if !w.player.Active {
		return
	}
	wc := w.cfg.Weapons.EnemyBullet
	dir := w.player.Position.Sub(from.Position).Normalized()
	if dir == (vec.Vec2{}) {
		dir = vec.New(0, 1)
	}
	bullet := entity.NewBullet(from.Position, dir.Mul(wc.Speed), wc.Damage, wc.Mask, entity.FactionEnemy)
	w.enemyShots = append(w.enemyShots, bullet)
	w.stats.EnemyShots++
}

// worldAPI открывает кораблям только стрельбу; вызывается под w.mu
type worldAPI struct{ w *World }

func (a worldAPI) Fire(from *entity.Ship) { a.w.fire(from) }

// advanceShots двигает снаряды и гасит покинувшие арену
func (w *World) advanceShots(shots []entity.Shot) {
	arena := []physics.Rect{w.arena}
	for _, s := range shots {
		if !s.IsActive() {
			continue
		}
		s.Advance()
		if !physics.Collide(physics.Resolve(s.CollisionMask(nil), s.Coordinates()), arena) {
			s.Spend()
		}
	}
}

func (w *World) activeEnemies() []*entity.Ship {
	out := make([]*entity.Ship, 0, len(w.enemies))
	for _, e := range w.enemies {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

type contact struct {
	shot   entity.Shot
	target *entity.Ship
	result combat.HitResult
}

func (w *World) sweep(ctx context.Context, shots []entity.Shot, targets []*entity.Ship) ([]contact, error) {
	live := make([]entity.Shot, 0, len(shots))
	damaging := make([]combat.Damaging, 0, len(shots))
	for _, s := range shots {
		if s.IsActive() {
			live = append(live, s)
			damaging = append(damaging, s)
		}
	}
	if len(live) == 0 || len(targets) == 0 {
		return nil, nil
	}

	actors := make([]combat.Damageable, len(targets))
	for i, t := range targets {
		actors[i] = t
	}

	found, err := combat.Sweep(ctx, damaging, actors, combat.SweepOptions{
		StopOnContact: true,
		Parallel:      w.cfg.Simulation.ParallelSweep,
		MaxWorkers:    w.cfg.Simulation.MaxWorkers,
	})
	if err != nil {
		return nil, err
	}

	out := make([]contact, len(found))
	for i, c := range found {
		out[i] = contact{shot: live[c.ShotIndex], target: targets[c.ActorIndex], result: c.Result}
	}
	return out, nil
}

func (w *World) apply(ctx context.Context, tick int, contacts []contact) {
	for _, c := range contacts {
		c.shot.Spend()
		w.deps.Metrics.ObserveHit(c.result)

		damage := 0
		if c.result == combat.Effective {
			damage = c.shot.DamageAgainst(c.target)
			w.stats.EffectiveHits++
		} else {
			w.stats.IneffectiveHits++
		}

		logging.Debug("💥 Тик %d: %s %s → %s %s: %s (урон %d)",
			tick, kindOf(c.shot), c.shot.EntityID(), c.target.Kind, c.target.ID, c.result, damage)
		w.publish(ctx, eventbus.NewHitEnvelope(EventSource, eventbus.HitEvent{
			Tick:    tick,
			ShotID:  c.shot.EntityID(),
			ActorID: c.target.ID,
			Result:  c.result,
			Damage:  damage,
		}))

		if c.target == w.player {
			if c.result == combat.Effective {
				w.stats.PlayerHits++
			}
			w.stats.PlayerHP = w.player.HP
			if w.player.Destroyed() && !w.stats.PlayerDestroyed {
				w.stats.PlayerDestroyed = true
				logging.Info("☠️ Игрок уничтожен на тике %d", tick)
			}
			continue
		}

		if c.result == combat.Effective && c.target.Destroyed() {
			w.stats.Kills++
			w.deps.Metrics.ObserveKill()
			w.publish(ctx, eventbus.NewKillEnvelope(EventSource, eventbus.KillEvent{
				Tick:    tick,
				ActorID: c.target.ID,
				ShotID:  c.shot.EntityID(),
			}))
		}
	}
}

func kindOf(s entity.Shot) entity.Kind {
	if _, ok := s.(*entity.Bomb); ok {
		return entity.KindBomb
	}
	return entity.KindBullet
}

func (w *World) publish(ctx context.Context, ev *eventbus.Envelope) {
	var err error
	if w.deps.Bus != nil {
		err = w.deps.Bus.Publish(ctx, ev)
	} else {
		err = eventbus.Publish(ctx, ev)
	}
	if err != nil {
		logging.Warn("EventBus: не удалось опубликовать %s: %v", ev.EventType, err)
	}
}

// cleanup убирает отыгравшие корабли и погасшие снаряды
func (w *World) cleanup() {
	kept := w.enemies[:0]
	for _, e := range w.enemies {
		if gone, ok := e.CurrentState.(*entity.GoneState); ok {
			if gone.Escaped {
				w.stats.Escaped++
			}
			continue
		}
		kept = append(kept, e)
	}
	clear(w.enemies[len(kept):])
	w.enemies = kept

	w.playerShots = compactShots(w.playerShots)
	w.enemyShots = compactShots(w.enemyShots)

	w.stats.ActiveEnemies = len(w.enemies)
	w.stats.ActiveShots = len(w.playerShots) + len(w.enemyShots)
	w.stats.PlayerHP = w.player.HP

	w.deps.Metrics.SetActive(entity.KindEnemy.String(), len(w.enemies))
	w.deps.Metrics.SetActive("shot", w.stats.ActiveShots)
}

func compactShots(shots []entity.Shot) []entity.Shot {
	kept := shots[:0]
	for _, s := range shots {
		if s.IsActive() {
			kept = append(kept, s)
		}
	}
	clear(shots[len(kept):])
	return kept
}
