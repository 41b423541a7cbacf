package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/sky-shooter/internal/logging"
	"github.com/annel0/sky-shooter/internal/metrics"
	"github.com/annel0/sky-shooter/internal/middleware"
	"github.com/annel0/sky-shooter/internal/path"
	"github.com/annel0/sky-shooter/internal/sim"
)

// Пределы размера запроса /api/paths/preview
const (
	DefaultMaxPreviewSteps   = 10000
	DefaultMaxPreviewActions = 1000
	DefaultMaxPreviewPoints  = 256
)

// StatsProvider отдаёт снимок счётчиков симуляции
type StatsProvider interface {
	Stats() sim.Stats
}

// Config содержит конфигурацию отладочного сервера
type Config struct {
	Addr            string                 // адрес для запуска сервера, например ":8090"
	Registry        *prometheus.Registry   // регистр для HTTP-метрик и /metrics (nil — дефолтный)
	Stats           StatsProvider          // источник /api/sim/stats (nil — маршрут отдаёт 503)
	Metrics         *metrics.CombatMetrics // учёт траекторий, построенных через preview
	MaxPreviewSteps   int
	MaxPreviewActions int
	MaxPreviewPoints  int
}

// DebugServer — отладочный HTTP сервер симуляции
type DebugServer struct {
	router     *gin.Engine
	httpServer *http.Server
	config     Config
	metrics    *ServerMetrics
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewDebugServer создает сервер и настраивает маршруты
func NewDebugServer(config Config) *DebugServer {
	if config.Addr == "" {
		config.Addr = ":8090"
	}
	if config.MaxPreviewSteps <= 0 {
		config.MaxPreviewSteps = DefaultMaxPreviewSteps
	}
	if config.MaxPreviewActions <= 0 {
		config.MaxPreviewActions = DefaultMaxPreviewActions
	}
	if config.MaxPreviewPoints <= 0 {
		config.MaxPreviewPoints = DefaultMaxPreviewPoints
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(middleware.NewRequestLogger().Handler())
	router.Use(otelgin.Middleware("debug_api"))

	var reg prometheus.Registerer
	var gatherer prometheus.Gatherer
	if config.Registry != nil {
		reg, gatherer = config.Registry, config.Registry
	}
	promMw := middleware.NewPrometheusMiddleware("debug_api", reg)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, gatherer)

	server := &DebugServer{
		router:  router,
		config:  config,
		metrics: NewServerMetrics(),
	}
	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты
func (ds *DebugServer) setupRoutes() {
	ds.router.GET("/health", ds.handleHealth)

	api := ds.router.Group("/api")
	{
		api.POST("/paths/preview", ds.handlePathPreview)
		api.GET("/sim/stats", ds.handleSimStats)
	}
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (ds *DebugServer) Handler() http.Handler {
	return ds.router
}

// HealthResponse — ответ /health
type HealthResponse struct {
	Status     string                 `json:"status"`
	Uptime     string                 `json:"uptime"`
	Goroutines int                    `json:"goroutines"`
	RSSMB      float64                `json:"rss_mb"`
	CPUPercent float64                `json:"cpu_percent"`
	Runtime    map[string]interface{} `json:"runtime"`
	Time       int64                  `json:"time"`
}

func (ds *DebugServer) handleHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:     "ok",
		Uptime:     ds.metrics.GetUptime(),
		Goroutines: runtime.NumGoroutine(),
		Runtime:    ds.metrics.GetDetailedMemoryStats(),
		Time:       time.Now().Unix(),
	}
	if rss, err := ds.metrics.GetMemoryUsage(); err == nil {
		resp.RSSMB = rss
	} else {
		logging.Debug("health: RSS недоступен: %v", err)
	}
	if cpu, err := ds.metrics.GetCPUUsage(); err == nil {
		resp.CPUPercent = cpu
	}
	c.JSON(http.StatusOK, resp)
}

// PreviewEntry — запись траектории в ответе preview
type PreviewEntry struct {
	Action path.Action `json:"action"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
}

// PreviewResponse — построенная траектория
type PreviewResponse struct {
	Entries []PreviewEntry `json:"entries"`
	Moves   int            `json:"moves"`
	Actions int            `json:"actions"`
}

// handlePathPreview строит траекторию по описанию path.Spec
func (ds *DebugServer) handlePathPreview(c *gin.Context) {
	var spec path.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверный формат запроса: " + err.Error(),
		})
		return
	}

	if msg := ds.checkPreviewLimits(spec); msg != "" {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	p, err := spec.Build()
	ds.config.Metrics.ObservePath(spec.Kind, p, err)
	if err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	resp := PreviewResponse{Entries: make([]PreviewEntry, 0, p.Len())}
	for _, e := range p.All() {
		resp.Entries = append(resp.Entries, PreviewEntry{Action: e.Action, X: e.Location.X, Y: e.Location.Y})
		if e.IsMove() {
			resp.Moves++
		} else {
			resp.Actions++
		}
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Траектория построена",
		Data:    resp,
	})
}

// checkPreviewLimits возвращает пустую строку, если запрос укладывается в пределы
func (ds *DebugServer) checkPreviewLimits(spec path.Spec) string {
	switch {
	case spec.Steps > ds.config.MaxPreviewSteps:
		return fmt.Sprintf("steps=%d превышает предел %d", spec.Steps, ds.config.MaxPreviewSteps)
	case len(spec.Actions) > ds.config.MaxPreviewActions:
		return fmt.Sprintf("actions=%d превышает предел %d", len(spec.Actions), ds.config.MaxPreviewActions)
	case len(spec.Points) > ds.config.MaxPreviewPoints:
		return fmt.Sprintf("points=%d превышает предел %d", len(spec.Points), ds.config.MaxPreviewPoints)
	}
	return ""
}

func (ds *DebugServer) handleSimStats(c *gin.Context) {
	if ds.config.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, GenericResponse{
			Success: false,
			Message: "Симуляция не подключена",
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика симуляции",
		Data:    ds.config.Stats.Stats(),
	})
}

// Start запускает сервер в отдельной горутине
func (ds *DebugServer) Start() error {
	ds.httpServer = &http.Server{
		Addr:              ds.config.Addr,
		Handler:           ds.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := ds.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("❌ Ошибка отладочного HTTP сервера: %v", err)
		}
	}()

	logging.Info("✅ Отладочный HTTP сервер запущен на %s", ds.config.Addr)
	logging.Info("📋 Доступные эндпоинты:")
	logging.Info("   GET  /health              - Проверка состояния")
	logging.Info("   GET  /metrics             - Метрики Prometheus")
	logging.Info("   POST /api/paths/preview   - Построение траектории")
	logging.Info("   GET  /api/sim/stats       - Статистика симуляции")
	return nil
}

// Stop останавливает сервер с ожиданием активных запросов
func (ds *DebugServer) Stop(ctx context.Context) error {
	if ds.httpServer == nil {
		return nil
	}
	logging.Info("🛑 Остановка отладочного HTTP сервера...")
	return ds.httpServer.Shutdown(ctx)
}
