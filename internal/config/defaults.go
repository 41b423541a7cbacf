package config

import (
	"github.com/annel0/sky-shooter/internal/path"
	"github.com/annel0/sky-shooter/internal/physics"
	"github.com/annel0/sky-shooter/internal/vec"
)

func point(x, y float64) *vec.Vec2 {
	p := vec.New(x, y)
	return &p
}

// Default возвращает встроенный сценарий: три волны и патрулирующий игрок
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Ticks:       900,
			EventBuffer: 256,
		},
		Arena: ArenaConfig{Width: 480, Height: 640},
		Player: PlayerConfig{
			Position:  vec.New(240, 600),
			HP:        5,
			IFrames:   30,
			Mask:      physics.BoxMask(16, 16),
			FireEvery: 6,
			BombEvery: 8,
			Patrol: &path.Spec{
				Kind:  path.KindLine,
				Start: point(80, 600),
				End:   point(400, 600),
				Steps: 240,
			},
		},
		Weapons: WeaponsConfig{
			PlayerBullet: WeaponConfig{Damage: 1, Speed: 8, Mask: physics.BoxMask(4, 8)},
			PlayerBomb: WeaponConfig{
				Damage:    3,
				Speed:     4,
				Mask:      physics.BoxMask(6, 6),
				BlastMask: physics.BoxMask(48, 48),
			},
			EnemyBullet: WeaponConfig{Damage: 1, Speed: 4, Mask: physics.BoxMask(4, 4)},
		},
		Waves: []WaveConfig{
			{
				Name:     "swoop",
				Count:    5,
				Interval: 20,
				Path: path.Spec{
					Kind:    path.KindSpline,
					Points:  []vec.Vec2{vec.New(40, -20), vec.New(120, 260), vec.New(360, 300), vec.New(440, -20)},
					Steps:   180,
					Actions: []path.ActionAt{path.FireAt(0.3), path.FireAt(0.6)},
				},
				Ship: ShipConfig{HP: 2, Mask: physics.BoxMask(20, 16)},
			},
			{
				Name:      "dive",
				StartTick: 120,
				Count:     4,
				Interval:  30,
				Path: path.Spec{
					Kind:      path.KindLine,
					Start:     point(100, -20),
					End:       point(300, 660),
					Steps:     200,
					Actions:   []path.ActionAt{path.FireAt(0.25), path.FireAt(0.5)},
					Mirror:    true,
					Translate: vec.New(480, 0),
				},
				Ship: ShipConfig{HP: 1, Mask: physics.BoxMask(14, 14)},
			},
			{
				Name:      "carrier",
				StartTick: 300,
				Count:     1,
				Path: path.Spec{
					Kind:    path.KindSpline,
					Points:  []vec.Vec2{vec.New(-60, 120), vec.New(120, 180), vec.New(240, 140), vec.New(360, 180), vec.New(540, 120)},
					Steps:   420,
					Actions: []path.ActionAt{path.FireAt(0.2), path.FireAt(0.4), path.FireAt(0.6), path.FireAt(0.8)},
					Noise:   &path.Noise{Seed: 11, Amplitude: 24},
				},
				Ship: ShipConfig{
					HP:    20,
					Large: true,
					// Корпус и два крыла
					Mask: physics.Mask{
						physics.NewRect(-12, 12, -20, 20),
						physics.NewRect(-48, -12, -6, 6),
						physics.NewRect(12, 48, -6, 6),
					},
				},
			},
		},
		Telemetry: TelemetryConfig{ServiceName: "sky-shooter"},
		Logging:   LoggingConfig{Level: "INFO"},
	}
}
