// Package metrics содержит Prometheus-метрики боевой симуляции.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/sky-shooter/internal/combat"
	"github.com/annel0/sky-shooter/internal/path"
)

const namespace = "shooter"

// CombatMetrics — счётчики попаданий, траекторий и длительности проверок.
//
// Метрики:
// * shooter_hits_total{result} — counter, только касания (effective/ineffective)
// * shooter_kills_total — counter
// * shooter_paths_generated_total{kind,status} — counter
// * shooter_path_entries — histogram
// * shooter_sweep_duration_seconds — histogram
// * shooter_active_entities{kind} — gauge
type CombatMetrics struct {
	hits          *prometheus.CounterVec
	kills         prometheus.Counter
	paths         *prometheus.CounterVec
	pathEntries   prometheus.Histogram
	sweepDuration prometheus.Histogram
	active        *prometheus.GaugeVec
}

// NewCombatMetrics создаёт метрики и регистрирует их в reg
// (nil — дефолтный регистр Prometheus).
func NewCombatMetrics(reg prometheus.Registerer) *CombatMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &CombatMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Попадания снарядов с геометрическим касанием по результату (effective, ineffective).",
		}, []string{"result"}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Уничтоженные корабли.",
		}),
		paths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paths_generated_total",
			Help:      "Построенные траектории по виду генератора и статусу.",
		}, []string{"kind", "status"}),
		pathEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_entries",
			Help:      "Количество записей в построенной траектории.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Длительность перебора пар снаряд × цель за тик.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_entities",
			Help:      "Активные сущности по типу.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.hits, m.kills, m.paths, m.pathEntries, m.sweepDuration, m.active)
	return m
}

// ObserveHit учитывает касание снаряда с целью; промахи не считаются
func (m *CombatMetrics) ObserveHit(result combat.HitResult) {
	if m == nil || result == combat.Miss {
		return
	}
	m.hits.WithLabelValues(result.String()).Inc()
}

// ObserveKill учитывает уничтоженный корабль
func (m *CombatMetrics) ObserveKill() {
	if m == nil {
		return
	}
	m.kills.Inc()
}

// ObservePath учитывает построение траектории
func (m *CombatMetrics) ObservePath(kind path.Kind, p path.Path, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.paths.WithLabelValues(string(kind), "error").Inc()
		return
	}
	m.paths.WithLabelValues(string(kind), "ok").Inc()
	m.pathEntries.Observe(float64(p.Len()))
}

// ObserveSweep учитывает длительность перебора
func (m *CombatMetrics) ObserveSweep(d time.Duration) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(d.Seconds())
}

// SetActive задаёт число активных сущностей типа kind
func (m *CombatMetrics) SetActive(kind string, n int) {
	if m == nil {
		return
	}
	m.active.WithLabelValues(kind).Set(float64(n))
}
