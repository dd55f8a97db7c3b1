package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/amescasi/studyloop/internal/analysis"
)

const (
	analysisMaxTokens = 400
	tasksMaxTokens    = 300
)

var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[^{}]*\}`)
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
)

// RemoteAnalyzer asks the model for the basic analysis and falls back
// to the local rules when the call fails or returns something
// unparseable.
type RemoteAnalyzer struct {
	client *Client
	local  analysis.LocalAnalyzer
}

func NewRemoteAnalyzer(client *Client) *RemoteAnalyzer {
	return &RemoteAnalyzer{client: client}
}

func (a *RemoteAnalyzer) Analyze(ctx context.Context, in analysis.Input) analysis.BasicAnalysis {
	prompt := fmt.Sprintf(`Analyze this study session briefly.

TOPIC: %s
NOTES:
%s
STATS: %.0f/%d min, %d breaks

Provide:
1. SUMMARY (2 sentences): What did they learn?
2. TOPIC_RELEVANCE (0-100): How well do notes match the topic?
3. FOCUS_FEEDBACK (2 sentences): Constructive feedback.

JSON format:
{"summary": "...", "topic_relevance": <number>, "focus_feedback": "..."}`,
		in.Topic, bulletNotes(in.Notes), in.ActualMinutes, in.PlannedMinutes, in.BreakCount)

	text, err := a.client.Complete(ctx, prompt, analysisMaxTokens)
	if err != nil {
		return a.local.Analyze(ctx, in)
	}

	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return a.local.Analyze(ctx, in)
	}

	// Absent fields keep the defaults, matching the API contract of
	// "best effort" analysis.
	parsed := analysis.BasicAnalysis{TopicRelevance: 50}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return a.local.Analyze(ctx, in)
	}

	return parsed
}

// RemoteTaskGenerator asks the model for revision tasks. On any
// failure it falls back to the rule-based generator with a neutral
// relevance score.
type RemoteTaskGenerator struct {
	client *Client
}

func NewRemoteTaskGenerator(client *Client) *RemoteTaskGenerator {
	return &RemoteTaskGenerator{client: client}
}

func (g *RemoteTaskGenerator) Generate(ctx context.Context, topic string, notes []string, drift analysis.DriftResult, overconfidence analysis.OverconfidenceResult, relevanceScore float64) []string {
	prompt := fmt.Sprintf(`Based on this study session, generate 3-4 specific revision tasks.

TOPIC: %s

STUDENT'S NOTES:
%s

ISSUES DETECTED:
- Topic drift: %s
- Overconfidence: %s

Generate 3-4 SHORT, SPECIFIC revision tasks that will help this student actually learn the material.
Tasks should be actionable (start with a verb) and completable in 5-15 minutes each.

Respond as a JSON array of strings:
["task 1", "task 2", "task 3"]`,
		topic, bulletNotes(notes), orNone(drift.Details), orNone(overconfidence.Details))

	text, err := g.client.Complete(ctx, prompt, tasksMaxTokens)
	if err != nil {
		return g.fallback(topic, notes, drift, overconfidence)
	}

	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return g.fallback(topic, notes, drift, overconfidence)
	}

	var tasks []string
	if err := json.Unmarshal([]byte(match), &tasks); err != nil {
		return g.fallback(topic, notes, drift, overconfidence)
	}
	if len(tasks) > 4 {
		tasks = tasks[:4]
	}
	return tasks
}

func (g *RemoteTaskGenerator) fallback(topic string, notes []string, drift analysis.DriftResult, overconfidence analysis.OverconfidenceResult) []string {
	return analysis.GenerateRevisionTasks(topic, notes, drift.Detected, overconfidence.Detected, 50)
}

func bulletNotes(notes []string) string {
	lines := make([]string, len(notes))
	for i, note := range notes {
		lines[i] = "- " + note
	}
	return strings.Join(lines, "\n")
}

func orNone(details string) string {
	if details == "" {
		return "None"
	}
	return details
}
