package analysis

import (
	"context"

	"github.com/amescasi/studyloop/internal/models"
)

// Result merges the output of the full analysis pipeline for one
// session. It is a pure function of the input and history.
type Result struct {
	Summary        string  `json:"summary"`
	TopicRelevance float64 `json:"topic_relevance"`
	FocusFeedback  string  `json:"focus_feedback"`

	Drift          DriftResult          `json:"drift"`
	Overconfidence OverconfidenceResult `json:"overconfidence"`

	RevisionTasks   []string `json:"revision_tasks"`
	NextSessionPlan string   `json:"next_session_plan"`
}

// Engine composes the basic analyzer, the detectors, the task
// generator, and the planner into one pipeline. The analyzer and task
// generator are chosen once at construction; NewLocalEngine wires the
// deterministic implementations.
type Engine struct {
	analyzer Analyzer
	tasks    TaskGenerator
}

func NewEngine(analyzer Analyzer, tasks TaskGenerator) *Engine {
	return &Engine{analyzer: analyzer, tasks: tasks}
}

func NewLocalEngine() *Engine {
	return NewEngine(LocalAnalyzer{}, LocalTaskGenerator{})
}

// Analyze runs the full pipeline. The history should be the session
// collection as it stood before this session was saved.
func (e *Engine) Analyze(ctx context.Context, in Input, history []models.StudySession) Result {
	basic := e.analyzer.Analyze(ctx, in)

	drift := DetectDrift(in.Topic, in.Notes, basic.TopicRelevance)
	overconfidence := DetectOverconfidence(in.Topic, in.Notes, in.ActualMinutes, in.PlannedMinutes)

	tasks := e.tasks.Generate(ctx, in.Topic, in.Notes, drift, overconfidence, basic.TopicRelevance)

	plan := PlanNextSession(SessionSummary{
		Topic:                  in.Topic,
		RelevanceScore:         basic.TopicRelevance,
		DriftDetected:          drift.Detected,
		OverconfidenceDetected: overconfidence.Detected,
		ActualMinutes:          in.ActualMinutes,
	}, history)

	return Result{
		Summary:         basic.Summary,
		TopicRelevance:  basic.TopicRelevance,
		FocusFeedback:   basic.FocusFeedback,
		Drift:           drift,
		Overconfidence:  overconfidence,
		RevisionTasks:   tasks,
		NextSessionPlan: plan,
	}
}
