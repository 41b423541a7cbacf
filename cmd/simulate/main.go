package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/sky-shooter/internal/api"
	"github.com/annel0/sky-shooter/internal/config"
	"github.com/annel0/sky-shooter/internal/eventbus"
	"github.com/annel0/sky-shooter/internal/logging"
	"github.com/annel0/sky-shooter/internal/metrics"
	"github.com/annel0/sky-shooter/internal/observability"
	"github.com/annel0/sky-shooter/internal/sim"
)

func main() {
	var (
		configPath = flag.String("config", "", "Scenario YAML (default: $SHOOTER_CONFIG or built-in)")
		ticks      = flag.Int("ticks", 0, "Override simulation.ticks")
		serve      = flag.Bool("serve", false, "Keep the debug HTTP server running after the run")
		tickEvery  = flag.Duration("tick", 0, "Wall-clock delay between ticks (0 = as fast as possible)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *ticks > 0 {
		cfg.Simulation.Ticks = *ticks
	}

	if cfg.Logging.File {
		if err := logging.InitDefaultLogger("simulate"); err != nil {
			log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
		}
	} else {
		logging.SetDefaultLogger(logging.NewWriterLogger("simulate", os.Stdout, logging.INFO))
	}
	defer logging.CloseDefaultLogger()
	logging.SetConsoleLevel(logging.ParseLevel(cfg.Logging.Level))

	logging.Info("🚀 Запуск симуляции: %d тиков, %d волн, арена %.0fx%.0f",
		cfg.Simulation.Ticks, len(cfg.Waves), cfg.Arena.Width, cfg.Arena.Height)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === OBSERVABILITY ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			logging.Warn("⚠️ OpenTelemetry недоступен: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("OpenTelemetry shutdown: %v", err)
				}
			}()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	combatMetrics := metrics.NewCombatMetrics(reg)

	// === EVENT BUS ===
	bus := eventbus.NewMemoryBus(cfg.Simulation.EventBuffer)
	defer bus.Close()
	eventbus.Init(bus)

	if _, err := eventbus.StartLoggingListener(bus); err != nil {
		log.Fatalf("❌ Ошибка подписки на события: %v", err)
	}
	exporter := eventbus.NewMetricsExporter(bus, reg)
	exporter.Start(time.Second)
	defer exporter.Stop()

	// === WORLD ===
	world, err := sim.NewWorld(cfg, sim.Deps{
		Metrics: combatMetrics,
		Tracer:  observability.Tracer(),
	})
	if err != nil {
		log.Fatalf("❌ Ошибка создания мира: %v", err)
	}

	// === DEBUG API ===
	gin.SetMode(gin.ReleaseMode)
	server := api.NewDebugServer(api.Config{
		Addr:     fmt.Sprintf(":%d", cfg.Server.GetDebugPort()),
		Registry: reg,
		Stats:    world,
		Metrics:  combatMetrics,
	})
	if err := server.Start(); err != nil {
		log.Fatalf("❌ Ошибка запуска отладочного сервера: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			logging.Error("❌ Ошибка при остановке HTTP сервера: %v", err)
		}
	}()

	// === RUN ===
	started := time.Now()
	if err := run(ctx, world, cfg.Simulation.Ticks, *tickEvery); err != nil {
		logging.Warn("⏹️ Симуляция прервана: %v", err)
	}

	s := world.Stats()
	logging.Info("🏁 Симуляция завершена за %s: тиков=%d", time.Since(started).Round(time.Millisecond), s.Tick)
	logging.Info("   🛸 Появилось: %d, сбито: %d, ушло: %d", s.Spawned, s.Kills, s.Escaped)
	logging.Info("   💥 Попадания: результативных %d, без урона %d", s.EffectiveHits, s.IneffectiveHits)
	logging.Info("   🚀 Выстрелы: игрок %d, противники %d", s.PlayerShots, s.EnemyShots)
	logging.Info("   ❤️  Игрок: HP=%d, уничтожен=%v, попаданий по игроку %d", s.PlayerHP, s.PlayerDestroyed, s.PlayerHits)

	if *serve {
		logging.Info("🌐 Отладочный сервер работает, Ctrl+C для выхода")
		<-ctx.Done()
		logging.Info("📡 Получен сигнал завершения")
	}
}

// run крутит тики до конца сценария; при tickEvery > 0 — в реальном времени
func run(ctx context.Context, world *sim.World, ticks int, tickEvery time.Duration) error {
	if tickEvery <= 0 {
		return world.Run(ctx, ticks)
	}

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := world.Tick(ctx); err != nil {
				return err
			}
			if world.Finished() {
				logging.Info("✅ Все волны отыграны на тике %d", i+1)
				return nil
			}
		}
	}
	return nil
}
