package cli

import (
	"context"
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/models"
	"github.com/amescasi/studyloop/internal/tui"
)

type StartCmd struct {
	Topic   string `help:"Topic to study. Prompts if omitted." short:"t"`
	Minutes int    `help:"Planned duration in minutes. Prompts if omitted." short:"m"`
}

func (c *StartCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	topic, minutes := c.Topic, c.Minutes
	if topic == "" || minutes <= 0 {
		var err error
		topic, minutes, err = tui.SessionSetup()
		if err != nil {
			return err
		}
	}

	startTime := time.Now()
	p := tea.NewProgram(tui.NewTimer(topic, minutes))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("timer failed: %w", err)
	}
	endTime := time.Now()

	timer, ok := final.(tui.TimerModel)
	if !ok {
		return fmt.Errorf("unexpected timer model type %T", final)
	}
	result := timer.Result()

	notes, err := tui.CollectNotes(topic)
	if err != nil {
		return err
	}

	fmt.Println("\nAnalyzing...")

	// History is snapshotted before saving so the plan reflects past
	// sessions only.
	history, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}

	totalBreak := 0
	for _, b := range result.Breaks {
		totalBreak += b.DurationSeconds
	}

	res := ctx.Engine.Analyze(context.Background(), analysis.Input{
		Topic:             topic,
		Notes:             notes,
		PlannedMinutes:    minutes,
		ActualMinutes:     result.ActualMinutes,
		BreakCount:        len(result.Breaks),
		TotalBreakSeconds: totalBreak,
	}, history)

	session := models.StudySession{
		ID:                     startTime.Format("20060102_150405"),
		Topic:                  topic,
		PlannedMinutes:         minutes,
		ActualMinutes:          math.Round(result.ActualMinutes*100) / 100,
		StartTime:              startTime.Format(time.RFC3339),
		EndTime:                endTime.Format(time.RFC3339),
		Breaks:                 result.Breaks,
		TotalBreakTime:         totalBreak,
		Notes:                  notes,
		AISummary:              res.Summary,
		TopicRelevanceScore:    res.TopicRelevance,
		FocusFeedback:          res.FocusFeedback,
		Completed:              result.Completed,
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

	printAnalysis(session)
	return nil
}
