package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jgoulah/wakerefresh/internal/analytics"
	"github.com/jgoulah/wakerefresh/internal/entry"
	"github.com/jgoulah/wakerefresh/internal/export"
	"github.com/jgoulah/wakerefresh/internal/history"
	"github.com/jgoulah/wakerefresh/internal/score"
	"github.com/jgoulah/wakerefresh/pkg/models"
)

type entriesResponse struct {
	Outcome     string                  `json:"outcome"`
	Days        int                     `json:"days"`
	Streak      int                     `json:"streak"`
	LoggedToday bool                    `json:"loggedToday"`
	Entries     []analytics.ScoredEntry `json:"entries"`
}

type statsResponse struct {
	Days      int               `json:"days"`
	Summary   analytics.Summary `json:"summary"`
	Streak    int               `json:"streak"`
	Hydration analytics.Insight `json:"hydration"`
	Snooze    analytics.Insight `json:"snooze"`
	Series    []analytics.Point `json:"series"`
}

type leaderboardResponse struct {
	Days   int                          `json:"days"`
	Points int                          `json:"points"`
	Rows   []analytics.RankedCompetitor `json:"rows"`
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// days reads the ?days= window, falling back to the configured default
func (s *Server) days(c *gin.Context) (int, error) {
	raw := c.Query("days")
	if raw == "" {
		return s.windowDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("days must be a positive integer")
	}
	return n, nil
}

func (s *Server) load(c *gin.Context) (history.LoadResult, bool) {
	res, err := s.gateway.Load(c.Request.Context())
	if err != nil {
		s.logger.Error("loading history failed", zap.Error(err))
		abort(c, http.StatusInternalServerError, errors.New("storage unavailable"))
		return history.LoadResult{}, false
	}
	return res, true
}

func (s *Server) listEntries(c *gin.Context) {
	days, err := s.days(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	res, ok := s.load(c)
	if !ok {
		return
	}

	today := s.now()
	c.JSON(http.StatusOK, entriesResponse{
		Outcome:     res.Outcome.String(),
		Days:        days,
		Streak:      analytics.Streak(res.Entries, today),
		LoggedToday: analytics.LoggedToday(res.Entries, today),
		Entries:     analytics.View(res.Entries, days, today),
	})
}

func (s *Server) createEntry(c *gin.Context) {
	var candidate entry.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		abort(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	e, err := s.normalizer.Normalize(candidate)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if _, err := s.gateway.Upsert(c.Request.Context(), e); err != nil {
		s.logger.Error("saving entry failed", zap.Error(err), zap.String("date", e.Date))
		abort(c, http.StatusInternalServerError, errors.New("storage unavailable"))
		return
	}

	c.JSON(http.StatusCreated, analytics.ScoredEntry{Entry: e, RefreshScore: score.Score(e)})
}

func (s *Server) stats(c *gin.Context) {
	days, err := s.days(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	res, ok := s.load(c)
	if !ok {
		return
	}

	today := s.now()
	recent := analytics.Recent(res.Entries, days, today)
	c.JSON(http.StatusOK, statsResponse{
		Days:      days,
		Summary:   analytics.Summarize(recent),
		Streak:    analytics.Streak(res.Entries, today),
		Hydration: analytics.HydrationInsight(recent),
		Snooze:    analytics.SnoozeInsight(recent),
		Series:    analytics.Series(analytics.WithScores(recent)),
	})
}

func (s *Server) leaderboard(c *gin.Context) {
	days, err := s.days(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	res, ok := s.load(c)
	if !ok {
		return
	}

	self := analytics.Self(res.Entries, days, s.now())
	c.JSON(http.StatusOK, leaderboardResponse{
		Days:   days,
		Points: self.Points,
		Rows:   analytics.Rank(self, s.roster, s.limit),
	})
}

func (s *Server) exportCSV(c *gin.Context) {
	res, ok := s.load(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(s.now(), "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.ToCSV(res.Entries)))
}

func (s *Server) getSurvey(c *gin.Context) {
	prefs, err := s.gateway.LoadPreferences(c.Request.Context())
	if err != nil {
		s.logger.Error("loading preferences failed", zap.Error(err))
		abort(c, http.StatusInternalServerError, errors.New("storage unavailable"))
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) putSurvey(c *gin.Context) {
	var prefs models.PilotPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abort(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	prefs, err := s.normalizer.NormalizePreferences(prefs)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if err := s.gateway.SavePreferences(c.Request.Context(), prefs); err != nil {
		s.logger.Error("saving preferences failed", zap.Error(err))
		abort(c, http.StatusInternalServerError, errors.New("storage unavailable"))
		return
	}
	c.JSON(http.StatusOK, prefs)
}
