package server

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/models"
	"github.com/amescasi/studyloop/internal/report"
)

// SessionCreate is the request payload for creating or previewing a
// session. The minute fields accept zero, so they carry no required
// binding.
type SessionCreate struct {
	Topic          string         `json:"topic" binding:"required"`
	PlannedMinutes int            `json:"planned_minutes"`
	ActualMinutes  float64        `json:"actual_minutes"`
	Notes          []string       `json:"notes"`
	Breaks         []models.Break `json:"breaks"`
	StartTime      string         `json:"start_time" binding:"required"`
}

// QuickStats is the compact header summary.
type QuickStats struct {
	TotalSessions int     `json:"total_sessions"`
	TotalHours    float64 `json:"total_hours"`
	AvgRelevance  float64 `json:"avg_relevance"`
	CurrentStreak int     `json:"current_streak"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) listSessions(c *gin.Context) {
	sessions, err := s.store.GetAllSessions()
	if err != nil {
		s.logger.WithError(err).Error("listing sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) getSession(c *gin.Context) {
	session, err := s.store.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) createSession(c *gin.Context) {
	var req SessionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "details": err.Error()})
		return
	}

	history, err := s.store.GetAllSessions()
	if err != nil {
		s.logger.WithError(err).Error("loading session history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}

	result := s.engine.Analyze(c.Request.Context(), req.analysisInput(), history)

	session := models.StudySession{
		ID:                     uuid.NewString()[:8],
		Topic:                  req.Topic,
		PlannedMinutes:         req.PlannedMinutes,
		ActualMinutes:          req.ActualMinutes,
		StartTime:              req.StartTime,
		EndTime:                time.Now().Format(time.RFC3339),
		Breaks:                 req.Breaks,
		TotalBreakTime:         totalBreakSeconds(req.Breaks),
		Notes:                  req.Notes,
		AISummary:              result.Summary,
		TopicRelevanceScore:    result.TopicRelevance,
		FocusFeedback:          result.FocusFeedback,
		Completed:              true,
		TopicDriftDetected:     result.Drift.Detected,
		DriftDetails:           result.Drift.Details,
		OverconfidenceDetected: result.Overconfidence.Detected,
		OverconfidenceDetails:  result.Overconfidence.Details,
		RevisionTasks:          result.RevisionTasks,
		NextSessionPlan:        result.NextSessionPlan,
	}

	if err := s.store.AddSession(session); err != nil {
		s.logger.WithError(err).Error("saving session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *Server) weeklyReport(c *gin.Context) {
	sessions, err := s.store.GetAllSessions()
	if err != nil {
		s.logger.WithError(err).Error("loading sessions for report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}
	c.JSON(http.StatusOK, report.Generate(sessions, time.Now()))
}

// analyzeNotes runs the full analysis without saving the session, so
// a client can preview feedback before committing.
func (s *Server) analyzeNotes(c *gin.Context) {
	var req SessionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "details": err.Error()})
		return
	}

	history, err := s.store.GetAllSessions()
	if err != nil {
		s.logger.WithError(err).Error("loading session history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}

	c.JSON(http.StatusOK, s.engine.Analyze(c.Request.Context(), req.analysisInput(), history))
}

func (s *Server) quickStats(c *gin.Context) {
	sessions, err := s.store.GetAllSessions()
	if err != nil {
		s.logger.WithError(err).Error("loading sessions for stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
		return
	}

	if len(sessions) == 0 {
		c.JSON(http.StatusOK, QuickStats{})
		return
	}

	weekly := report.Generate(sessions, time.Now())
	var totalMinutes float64
	for _, session := range sessions {
		totalMinutes += session.ActualMinutes
	}

	c.JSON(http.StatusOK, QuickStats{
		TotalSessions: len(sessions),
		TotalHours:    roundTo1(totalMinutes / 60),
		AvgRelevance:  roundTo1(weekly.Overview.ThisWeek.AvgRelevance),
		CurrentStreak: weekly.Streak.Current,
	})
}

func (r SessionCreate) analysisInput() analysis.Input {
	return analysis.Input{
		Topic:             r.Topic,
		Notes:             r.Notes,
		PlannedMinutes:    r.PlannedMinutes,
		ActualMinutes:     r.ActualMinutes,
		BreakCount:        len(r.Breaks),
		TotalBreakSeconds: totalBreakSeconds(r.Breaks),
	}
}

func totalBreakSeconds(breaks []models.Break) int {
	total := 0
	for _, b := range breaks {
		total += b.DurationSeconds
	}
	return total
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
