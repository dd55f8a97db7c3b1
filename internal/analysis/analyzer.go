package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Input carries the raw facts about a session that the analysis
// pipeline works from.
type Input struct {
	Topic             string
	Notes             []string
	PlannedMinutes    int
	ActualMinutes     float64
	BreakCount        int
	TotalBreakSeconds int
}

// BasicAnalysis is the first-stage output: a summary of the notes, a
// 0-100 topic relevance estimate, and feedback on time management.
type BasicAnalysis struct {
	Summary        string  `json:"summary"`
	TopicRelevance float64 `json:"topic_relevance"`
	FocusFeedback  string  `json:"focus_feedback"`
}

// Analyzer produces the basic analysis for a session. Implementations
// must always return a valid result; a remote implementation falls
// back to the local one rather than surfacing an error.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) BasicAnalysis
}

// LocalAnalyzer is the deterministic rule-based analyzer.
type LocalAnalyzer struct{}

func (LocalAnalyzer) Analyze(_ context.Context, in Input) BasicAnalysis {
	return analyzeLocally(in)
}

func analyzeLocally(in Input) BasicAnalysis {
	return BasicAnalysis{
		Summary:        summarizeNotes(in.Notes),
		TopicRelevance: relevanceScore(in.Topic, in.Notes),
		FocusFeedback:  focusFeedback(in),
	}
}

// summarizeNotes builds a one-line summary from the first three notes,
// each truncated to its first 12 words.
func summarizeNotes(notes []string) string {
	if len(notes) == 0 {
		return "No notes recorded."
	}
	head := notes
	if len(head) > 3 {
		head = head[:3]
	}
	parts := make([]string, 0, len(head))
	for _, n := range head {
		words := strings.Fields(n)
		if len(words) > 12 {
			words = words[:12]
		}
		parts = append(parts, strings.Join(words, " "))
	}
	return "Covered: " + strings.Join(parts, "; ") + "."
}

// relevanceScore estimates how well the notes address the topic. The
// base score is the fraction of significant topic words found in the
// notes blob; a small bonus rewards longer notes. Clamped to [0,100]
// and rounded to one decimal.
func relevanceScore(topic string, notes []string) float64 {
	blob := notesBlob(notes)
	words := topicWords(topic)

	var base float64
	if len(words) > 0 {
		matches := 0
		for w := range words {
			if strings.Contains(blob, w) {
				matches++
			}
		}
		base = float64(matches) / float64(len(words)) * 100
	} else {
		base = 50
	}

	bonus := math.Min(20, avgNoteLength(notes))
	score := math.Min(100, base+bonus)
	return math.Round(score*10) / 10
}

func focusFeedback(in Input) string {
	var completion float64
	if in.PlannedMinutes > 0 {
		completion = in.ActualMinutes / float64(in.PlannedMinutes)
	}

	var parts []string
	switch {
	case completion >= 0.95:
		parts = append(parts, "Great time management!")
	case completion >= 0.7:
		parts = append(parts, fmt.Sprintf("Completed %.0f%% of planned time.", completion*100))
	default:
		parts = append(parts, "Consider shorter initial goals.")
	}

	if len(in.Notes) >= 3 {
		parts = append(parts, "Good note-taking effort.")
	} else {
		parts = append(parts, "Try capturing more key points.")
	}

	return strings.Join(parts, " ")
}
