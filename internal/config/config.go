package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/annel0/sky-shooter/internal/path"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

// Config корневая структура конфигурации сценария
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
	Weapons    WeaponsConfig    `yaml:"weapons"`
	Waves      []WaveConfig     `yaml:"waves"`
	Server     ServerConfig     `yaml:"server"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type SimulationConfig struct {
	Ticks         int  `yaml:"ticks"`
	ParallelSweep bool `yaml:"parallel_sweep"`
	MaxWorkers    int  `yaml:"max_workers"`
	EventBuffer   int  `yaml:"event_buffer"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect возвращает прямоугольник арены в мировых координатах
func (a ArenaConfig) Rect() physics.Rect {
	return physics.NewRect(0, a.Width, 0, a.Height)
}

type PlayerConfig struct {
	Position  vec.Vec2     `yaml:"position"`
	HP        int          `yaml:"hp"`
	IFrames   int          `yaml:"iframes"`
	Mask      physics.Mask `yaml:"mask"`
	FireEvery int          `yaml:"fire_every"` // Тиков между выстрелами (0 — не стреляет)
	BombEvery int          `yaml:"bomb_every"` // Каждый N-й выстрел — бомба (0 — без бомб)
	Patrol    *path.Spec   `yaml:"patrol,omitempty"`
}

type WeaponConfig struct {
	Damage    int          `yaml:"damage"`
	Speed     float64      `yaml:"speed"`
	Mask      physics.Mask `yaml:"mask"`
	BlastMask physics.Mask `yaml:"blast_mask,omitempty"`
}

type WeaponsConfig struct {
	PlayerBullet WeaponConfig `yaml:"player_bullet"`
	PlayerBomb   WeaponConfig `yaml:"player_bomb"`
	EnemyBullet  WeaponConfig `yaml:"enemy_bullet"`
}

type ShipConfig struct {
	HP           int          `yaml:"hp"`
	Mask         physics.Mask `yaml:"mask"`
	Large        bool         `yaml:"large"`
	Invulnerable bool         `yaml:"invulnerable"`
}

type WaveConfig struct {
	Name      string     `yaml:"name"`
	StartTick int        `yaml:"start_tick"`
	Count     int        `yaml:"count"`
	Interval  int        `yaml:"interval"` // Тиков между появлением кораблей волны
	Path      path.Spec  `yaml:"path"`
	Ship      ShipConfig `yaml:"ship"`
}

type ServerConfig struct {
	DebugPort int `yaml:"debug_port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
	Endpoint    string `yaml:"endpoint"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  bool   `yaml:"file"`
}

// GetDebugPort возвращает порт отладочного HTTP с поддержкой fallback значений
func (s *ServerConfig) GetDebugPort() int {
	return getPortWithEnvFallback(s.DebugPort, "SHOOTER_DEBUG_PORT", 8090)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", пытается прочитать из ENV SHOOTER_CONFIG,
// иначе возвращает сценарий по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("SHOOTER_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidConfig — общая причина ошибок Validate
var ErrInvalidConfig = errors.New("config: invalid")

// Validate проверяет сценарий и заранее строит траектории волн
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if c.Simulation.Ticks <= 0 {
		fail("simulation.ticks должен быть > 0")
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		fail("arena должна иметь положительные размеры")
	}
	if c.Player.HP <= 0 {
		fail("player.hp должен быть > 0")
	}
	if c.Player.Patrol != nil {
		if _, err := c.Player.Patrol.Build(); err != nil {
			errs = append(errs, fmt.Errorf("player.patrol: %w", err))
		}
	}

	weapons := []struct {
		name string
		w    WeaponConfig
	}{
		{"player_bullet", c.Weapons.PlayerBullet},
		{"player_bomb", c.Weapons.PlayerBomb},
		{"enemy_bullet", c.Weapons.EnemyBullet},
	}
	for _, wp := range weapons {
		if wp.w.Damage <= 0 || wp.w.Speed <= 0 {
			fail("weapons.%s: damage и speed должны быть > 0", wp.name)
		}
	}

	for i, w := range c.Waves {
		if w.Count <= 0 {
			fail("waves[%d] %q: count должен быть > 0", i, w.Name)
		}
		if w.Ship.HP <= 0 {
			fail("waves[%d] %q: ship.hp должен быть > 0", i, w.Name)
		}
		if _, err := w.Path.Build(); err != nil {
			errs = append(errs, fmt.Errorf("waves[%d] %q: %w", i, w.Name, err))
		}
	}

	return errors.Join(errs...)
}
