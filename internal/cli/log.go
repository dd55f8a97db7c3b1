package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/models"
)

// LogCmd records a session that already happened, without running the
// timer.
type LogCmd struct {
	Topic   string   `arg:"" help:"Topic that was studied."`
	Minutes float64  `help:"How long the session actually ran, in minutes." required:"" short:"m"`
	Planned int      `help:"Planned duration in minutes." default:"25" short:"p"`
	Note    []string `help:"A note about what was learned. Repeatable." short:"n"`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	history, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}

	res := ctx.Engine.Analyze(context.Background(), analysis.Input{
		Topic:          c.Topic,
		Notes:          c.Note,
		PlannedMinutes: c.Planned,
		ActualMinutes:  c.Minutes,
	}, history)

	now := time.Now()
	session := models.StudySession{
		ID:                     now.Format("20060102_150405"),
		Topic:                  c.Topic,
		PlannedMinutes:         c.Planned,
		ActualMinutes:          c.Minutes,
		StartTime:              now.Add(-time.Duration(c.Minutes * float64(time.Minute))).Format(time.RFC3339),
		EndTime:                now.Format(time.RFC3339),
		Notes:                  c.Note,
		AISummary:              res.Summary,
		TopicRelevanceScore:    res.TopicRelevance,
		FocusFeedback:          res.FocusFeedback,
		Completed:              c.Minutes >= float64(c.Planned),
		TopicDriftDetected:     res.Drift.Detected,
		DriftDetails:           res.Drift.Details,
		OverconfidenceDetected: res.Overconfidence.Detected,
		OverconfidenceDetails:  res.Overconfidence.Details,
		RevisionTasks:          res.RevisionTasks,
		NextSessionPlan:        res.NextSessionPlan,
	}

	if err := ctx.Store.AddSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Logged %.0f min on %q\n", c.Minutes, c.Topic)
	printAnalysis(session)
	return nil
}
