package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

const (
	defaultLimit = 50
	maxLimit     = 1000
)

// StatusProvider is implemented by the indexer and the ingestor.
type StatusProvider interface {
	GetStatus() map[string]any
}

// Handler serves read-only queries over the derived state.
type Handler struct {
	logger   *slog.Logger
	repo     repository.Reader
	gatherer prometheus.Gatherer
	status   []StatusProvider
}

func NewHandler(repo repository.Reader, gatherer prometheus.Gatherer, logger *slog.Logger, status ...StatusProvider) *Handler {
	return &Handler{
		logger:   logger.With("component", "api"),
		repo:     repo,
		gatherer: gatherer,
		status:   status,
	}
}

// NewRouter returns a gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	h.RegisterRoutes(&router.RouterGroup)
	return router
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/entities/:kind/:id", h.GetEntity)
	router.GET("/pools/:id/trades", h.ListTrades)
	router.GET("/tokens/:id/holders", h.ListHolders)
	router.GET("/launches/:id/contributions", h.ListContributions)

	stats := router.Group("/stats")
	{
		stats.GET("/platform", h.GetPlatformStats)
		stats.GET("/daily", h.ListDailyStats)
	}

	router.GET("/status", h.GetStatus)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

func (h *Handler) GetEntity(c *gin.Context) {
	kind := repository.EntityKind(c.Param("kind"))
	if !slices.Contains(repository.EntityKinds, kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown entity kind"})
		return
	}

	res, err := h.repo.Entity(c.Request.Context(), kind, normalizeID(c.Param("id")))
	if err != nil {
		h.internalError(c, err)
		return
	}
	entity, ok := res.Get()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": string(kind) + " not found"})
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *Handler) ListTrades(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	trades, err := h.repo.Trades(c.Request.Context(), normalizeID(c.Param("id")), limit)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (h *Handler) ListHolders(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	holders, err := h.repo.TokenHolders(c.Request.Context(), normalizeID(c.Param("id")), limit)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, holders)
}

func (h *Handler) ListContributions(c *gin.Context) {
	contributions, err := h.repo.Contributions(c.Request.Context(), normalizeID(c.Param("id")))
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

func (h *Handler) GetPlatformStats(c *gin.Context) {
	res, err := h.repo.PlatformStats(c.Request.Context(), types.PlatformStatsID)
	if err != nil {
		h.internalError(c, err)
		return
	}
	stats, ok := res.Get()
	if !ok {
		stats = repository.NewPlatformStats()
	}
	c.JSON(http.StatusOK, stats)
}

// ListDailyStats returns buckets between the from and to day numbers, inclusive.
// Both default to the last seven days ending at the newest indexed day.
func (h *Handler) ListDailyStats(c *gin.Context) {
	to, err := h.lastDay(c)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if v := c.Query("to"); v != "" {
		if to, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
	}
	from := to - 6
	if v := c.Query("from"); v != "" {
		if from, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
	}
	if from > to {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is after to"})
		return
	}

	days, err := h.repo.DailyStatsRange(c.Request.Context(), from, to)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *Handler) lastDay(c *gin.Context) (int64, error) {
	res, err := h.repo.Checkpoint(c.Request.Context())
	if err != nil {
		return 0, err
	}
	cp, ok := res.Get()
	if !ok {
		return 0, nil
	}
	return types.DayBucket(cp.UpdatedAt), nil
}

func (h *Handler) GetStatus(c *gin.Context) {
	status := gin.H{}
	for _, p := range h.status {
		maps.Copy(status, p.GetStatus())
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) internalError(c *gin.Context, err error) {
	h.logger.Error("Query failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func parseLimit(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return min(limit, maxLimit), true
}

// normalizeID lowercases IDs since every stored ID is built from lowercase hex.
func normalizeID(id string) string {
	return strings.ToLower(id)
}
