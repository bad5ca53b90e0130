package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Skufu/symptomchat/internal/logger"
	"github.com/Skufu/symptomchat/internal/metrics"
)

const sessionCookie = "chat_session"

func setupRouter(srv *server, staticRoot string) *gin.Engine {
	router := gin.New()
	router.Use(
		requestLogger(srv.log),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.Static("/static", staticRoot)
	router.StaticFile("/", filepath.Join(staticRoot, "index.html"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", srv.handleReady)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/get_all_conditions", srv.handleConditions)
	router.POST("/translate", srv.handleTranslate)

	sessioned := router.Group("")
	sessioned.Use(withSession(srv.sessionTTL))
	sessioned.POST("/get_recommendation", srv.handleRecommendation)
	sessioned.GET("/get_chat_history", srv.handleHistory)
	sessioned.POST("/clear_history", srv.handleClearHistory)

	return router
}

func (s *server) handleReady(c *gin.Context) {
	if len(s.checks) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "conditions": s.kb.Len()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	body := gin.H{"status": "ok", "conditions": s.kb.Len()}
	for _, name := range names {
		result := "ok"
		if err := s.checks[name].Ping(ctx); err != nil {
			result = fmt.Sprintf("unhealthy: %v", err)
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
		body[name] = result
	}
	c.JSON(status, body)
}

// withSession assigns every client a session id cookie on first contact.
func withSession(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil {
			id = ""
		}
		if _, perr := uuid.Parse(id); perr != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(sessionCookie, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCookie)
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			log.Error("request", fields)
			return
		}
		log.Debug("request", fields)
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
