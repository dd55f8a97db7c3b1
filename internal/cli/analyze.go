package cli

import (
	"context"
	"fmt"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/models"
)

// AnalyzeCmd previews the analysis for a set of notes without saving
// anything.
type AnalyzeCmd struct {
	Topic   string   `arg:"" help:"Topic the notes are about."`
	Minutes float64  `help:"How long the session ran, in minutes." default:"25" short:"m"`
	Planned int      `help:"Planned duration in minutes." default:"25" short:"p"`
	Note    []string `help:"A note to analyze. Repeatable." short:"n"`
}

func (c *AnalyzeCmd) Run(ctx *Context) error {
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

	fmt.Println("Analysis preview (not saved):")
	printAnalysis(models.StudySession{
		Topic:                  c.Topic,
		PlannedMinutes:         c.Planned,
		ActualMinutes:          c.Minutes,
		Notes:                  c.Note,
		AISummary:              res.Summary,
		TopicRelevanceScore:    res.TopicRelevance,
		FocusFeedback:          res.FocusFeedback,
		TopicDriftDetected:     res.Drift.Detected,
		DriftDetails:           res.Drift.Details,
		OverconfidenceDetected: res.Overconfidence.Detected,
		OverconfidenceDetails:  res.Overconfidence.Details,
		RevisionTasks:          res.RevisionTasks,
		NextSessionPlan:        res.NextSessionPlan,
	})
	return nil
}
