package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/academyhub/stats/apps/api/internal/business/stats"
	"github.com/academyhub/stats/apps/api/internal/repository"
)

// Router wires HTTP handlers.
type Router struct {
	stats     *stats.Service
	refresher *stats.Refresher
	origins   string
}

// NewRouter builds the gin engine. gatherer backs /metrics; nil uses the default registry.
// refresher is shared with the scheduled refresh loop so manual and timed runs never overlap.
func NewRouter(statsSvc *stats.Service, refresher *stats.Refresher, gatherer prometheus.Gatherer, allowedOrigins string) *gin.Engine {
	if refresher == nil {
		refresher = stats.NewRefresher(statsSvc, 0)
	}
	r := &Router{
		stats:     statsSvc,
		refresher: refresher,
		origins:   allowedOrigins,
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(requestLogger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/stats", r.getLatestSnapshot)
		api.POST("/stats/refresh", r.refreshStats)
		api.GET("/stats/dashboard", r.getDashboard)
		api.GET("/stats/teams", r.getTeams)
		api.GET("/stats/players", r.getPlayers)
		api.GET("/stats/players/:playerId", r.getPlayer)
		api.GET("/finance/forecast", r.getForecast)
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requestLogger logs each request through slog once it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			slog.Error("request failed", append(attrs, "errors", c.Errors.String())...)
		case c.Writer.Status() >= http.StatusBadRequest:
			slog.Warn("request rejected", attrs...)
		default:
			slog.Info("request ok", attrs...)
		}
	}
}

type scopeQuery struct {
	TeamID string `form:"teamId" binding:"omitempty,max=128"`
	Month  string `form:"month" binding:"omitempty,datetime=2006-01"`
}

func (q scopeQuery) month() stats.Month {
	if q.Month == "" {
		return stats.Month{}
	}
	t, err := time.Parse("2006-01", q.Month)
	if err != nil {
		return stats.Month{}
	}
	return stats.Month{Year: t.Year(), Month: t.Month()}
}

func bindScope(c *gin.Context) (scopeQuery, bool) {
	var q scopeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid query: %v", err)})
		return q, false
	}
	return q, true
}

func (r *Router) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stats.ErrUnknownTeam), errors.Is(err, stats.ErrUnknownPlayer), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, stats.ErrRefreshInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (r *Router) getDashboard(c *gin.Context) {
	q, ok := bindScope(c)
	if !ok {
		return
	}
	dash, err := r.stats.Dashboard(c.Request.Context(), q.TeamID)
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"teamId":  q.TeamID,
		"stats":   dash,
		"display": dashboardDisplay(dash),
	})
}

func (r *Router) getTeams(c *gin.Context) {
	q, ok := bindScope(c)
	if !ok {
		return
	}
	rows, err := r.stats.Teams(c.Request.Context(), q.month())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": q.Month, "items": teamRows(rows)})
}

func (r *Router) getPlayers(c *gin.Context) {
	q, ok := bindScope(c)
	if !ok {
		return
	}
	rows, err := r.stats.Players(c.Request.Context(), q.TeamID, q.month())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teamId": q.TeamID, "month": q.Month, "items": playerRows(rows)})
}

func (r *Router) getPlayer(c *gin.Context) {
	q, ok := bindScope(c)
	if !ok {
		return
	}
	playerID := c.Param("playerId")
	st, err := r.stats.Player(c.Request.Context(), playerID, q.month())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"playerId": playerID,
		"month":    q.Month,
		"stats":    st,
		"display":  attendanceDisplay(st),
	})
}

func (r *Router) getForecast(c *gin.Context) {
	f, err := r.stats.Forecast(c.Request.Context())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asOf":     r.stats.Now(),
		"forecast": f,
		"display":  forecastDisplay(f),
	})
}

func (r *Router) refreshStats(c *gin.Context) {
	snap, err := r.refresher.RunOnce(c.Request.Context())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (r *Router) getLatestSnapshot(c *gin.Context) {
	snap, err := r.stats.Latest(c.Request.Context())
	if err != nil {
		r.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
