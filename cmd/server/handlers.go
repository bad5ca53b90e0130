package main

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/symptomchat/internal/chat"
	"github.com/Skufu/symptomchat/internal/i18n"
	"github.com/Skufu/symptomchat/internal/matcher"
	"github.com/Skufu/symptomchat/internal/metrics"
)

// Inputs shorter than this after trimming are rejected before matching.
const minSymptomChars = 3

type RecommendationRequest struct {
	Symptoms string `json:"symptoms"`
	Language string `json:"language"`
}

type TranslationRequest struct {
	Language string `json:"language"`
	Key      string `json:"key"`
}

func (s *server) handleRecommendation(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Symptoms)) < minSymptomChars {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.Translate(req.Language, i18n.KeyInputError)})
		return
	}

	start := time.Now()
	recs := matcher.Match(req.Symptoms, s.kb)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())

	if len(recs) == 0 {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeNoMatch).Inc()
		msg := i18n.Translate(req.Language, i18n.KeyNoMatch)
		s.recordExchange(c, req.Symptoms, msg, nil)
		c.JSON(http.StatusOK, gin.H{"success": false, "message": msg})
		return
	}

	metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeMatched).Inc()
	s.recordExchange(c, req.Symptoms, summarize(recs), recs)
	c.JSON(http.StatusOK, gin.H{"success": true, "recommendations": recs})
}

// recordExchange appends the user's message and the bot reply to the
// session history. Failures only get logged.
func (s *server) recordExchange(c *gin.Context, userMsg, botMsg string, recs []matcher.Result) {
	sid := sessionID(c)
	if sid == "" {
		return
	}
	err := s.history.Append(c.Request.Context(), sid,
		chat.NewEntry(chat.RoleUser, userMsg, nil),
		chat.NewEntry(chat.RoleBot, botMsg, recs),
	)
	if err != nil {
		metrics.HistoryErrors.WithLabelValues("append").Inc()
		s.log.WithError(err).Warn("history append failed", map[string]interface{}{"session": sid})
	}
}

// summarize renders the bot reply as the matched condition names only, so the
// stored history carries no untranslated prose; the client localizes around it.
func summarize(recs []matcher.Result) string {
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func (s *server) handleConditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"conditions": s.kb.Names()})
}

func (s *server) handleHistory(c *gin.Context) {
	history, err := s.history.History(c.Request.Context(), sessionID(c))
	if err != nil {
		metrics.HistoryErrors.WithLabelValues("read").Inc()
		s.log.WithError(err).Error("history read failed", map[string]interface{}{"session": sessionID(c)})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (s *server) handleClearHistory(c *gin.Context) {
	if err := s.history.Clear(c.Request.Context(), sessionID(c)); err != nil {
		metrics.HistoryErrors.WithLabelValues("clear").Inc()
		s.log.WithError(err).Error("history clear failed", map[string]interface{}{"session": sessionID(c)})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *server) handleTranslate(c *gin.Context) {
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"translation": i18n.Translate(req.Language, req.Key)})
}
