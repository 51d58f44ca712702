package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/response"
)

const pingTimeout = 2 * time.Second

// SystemHandler reports liveness and runtime statistics.
type SystemHandler struct {
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler. rdb may be nil.
func NewSystemHandler(rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Always 200 while the process serves. redis is "disabled", "ok" or "down".
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status": "ok",
		"uptime": formatDuration(time.Since(h.startTime)),
		"redis":  h.redisStatus(c.Request.Context()),
	})
}

type systemMetrics struct {
	Timestamp  int64  `json:"timestamp"`
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	HeapSys    uint64 `json:"heap_sys"`
	NumGC      uint32 `json:"num_gc"`
	GoVersion  string `json:"go_version"`
	NumCPU     int    `json:"num_cpu"`

	Redis            string `json:"redis"`
	TingkatanCached  bool   `json:"tingkatan_cached"`
	JenisCached      bool   `json:"jenis_penyakit_cached"`
	RevokedTokenKeys int64  `json:"revoked_token_keys"`
	OrphanAssets     int64  `json:"orphan_assets_pending"`
}

// Metrics godoc
// GET /api/v1/admin/system/metrics
func (h *SystemHandler) Metrics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.collect(c.Request.Context()))
}

func (h *SystemHandler) collect(ctx context.Context) systemMetrics {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m := systemMetrics{
		Timestamp:  time.Now().Unix(),
		Uptime:     formatDuration(time.Since(h.startTime)),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.Sys,
		NumGC:      ms.NumGC,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		Redis:      h.redisStatus(ctx),
	}
	if m.Redis != "ok" {
		return m
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	pipe := h.rdb.Pipeline()
	tingkatanCmd := pipe.Exists(ctx, config.CacheKey.TingkatanCatalogKey())
	jenisCmd := pipe.Exists(ctx, config.CacheKey.JenisPenyakitCatalogKey())
	orphanCmd := pipe.LLen(ctx, config.WorkerKey.OrphanAssetQueue)
	if _, err := pipe.Exec(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Cache stats unavailable")
		return m
	}
	m.TingkatanCached = tingkatanCmd.Val() > 0
	m.JenisCached = jenisCmd.Val() > 0
	m.OrphanAssets = orphanCmd.Val()

	iter := h.rdb.Scan(ctx, 0, config.CacheKey.RevokedTokenKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		m.RevokedTokenKeys++
	}
	if err := iter.Err(); err != nil {
		h.log.Warn().Err(err).Msg("Revoked token scan failed")
	}
	return m
}

func (h *SystemHandler) redisStatus(ctx context.Context) string {
	if h.rdb == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		h.log.Warn().Err(err).Msg("Redis ping failed")
		return "down"
	}
	return "ok"
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
