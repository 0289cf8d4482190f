package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kipkorir-dev/procpulse-agent/config"
	"github.com/kipkorir-dev/procpulse-agent/internal/cache"
	"github.com/kipkorir-dev/procpulse-agent/internal/system"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	cfg       *config.Config
	cache     *cache.MetricsCache
	collector *system.Collector
}

// NewHandlers creates a new handlers instance
func NewHandlers(cfg *config.Config) *Handlers {
	return &Handlers{
		cfg:       cfg,
		cache:     cache.NewMetricsCache(cfg.CacheTTL),
		collector: system.NewCollector(cfg.ProcStatPath, cfg.ProcDir),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	})
}

// GetCPUTimes handles GET /api/cpu/times
func (h *Handlers) GetCPUTimes(c *gin.Context) {
	h.cached(c, cache.KeyCPUTimes, func() (interface{}, error) {
		return h.collector.CPUTimes()
	})
}

// GetPerCPUTimes handles GET /api/cpu/times/percpu
func (h *Handlers) GetPerCPUTimes(c *gin.Context) {
	h.cached(c, cache.KeyPerCPU, func() (interface{}, error) {
		return h.collector.PerCPUTimes()
	})
}

// GetCPUUsage handles GET /api/cpu/usage. The optional interval query param
// overrides the configured sampling window, capped at ten seconds so a
// request cannot hold a connection open indefinitely.
func (h *Handlers) GetCPUUsage(c *gin.Context) {
	interval := h.cfg.SampleInterval
	if raw := c.Query("interval"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid interval"})
			return
		}
		if parsed > 10*time.Second {
			parsed = 10 * time.Second
		}
		interval = parsed

		// Custom windows bypass the cache so the caller gets a sample over
		// the window it asked for.
		usage, err := h.collector.CPUUsage(interval)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, usage)
		return
	}

	h.cached(c, cache.KeyCPUUsage, func() (interface{}, error) {
		return h.collector.CPUUsage(interval)
	})
}

// ListPids handles GET /api/processes/pids
func (h *Handlers) ListPids(c *gin.Context) {
	h.cached(c, cache.KeyPids, func() (interface{}, error) {
		return h.collector.Pids()
	})
}

// GetHost handles GET /api/host
func (h *Handlers) GetHost(c *gin.Context) {
	h.cached(c, cache.KeyHost, func() (interface{}, error) {
		return system.GetHostInfo()
	})
}

// GetMemory handles GET /api/memory
func (h *Handlers) GetMemory(c *gin.Context) {
	h.cached(c, cache.KeyMemory, func() (interface{}, error) {
		return system.GetMemoryInfo()
	})
}

// GetLoad handles GET /api/load
func (h *Handlers) GetLoad(c *gin.Context) {
	h.cached(c, cache.KeyLoad, func() (interface{}, error) {
		return system.GetLoadInfo()
	})
}

func (h *Handlers) cached(c *gin.Context, key string, fn func() (interface{}, error)) {
	value, err := h.cache.GetOrSet(key, fn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, value)
}
