package analysis

import (
	"context"
	"fmt"
)

// TaskGenerator produces revision tasks from detector output.
// Implementations must always return between 1 and 4 tasks.
type TaskGenerator interface {
	Generate(ctx context.Context, topic string, notes []string, drift DriftResult, overconfidence OverconfidenceResult, relevanceScore float64) []string
}

// LocalTaskGenerator is the deterministic rule-based generator.
type LocalTaskGenerator struct{}

func (LocalTaskGenerator) Generate(_ context.Context, topic string, notes []string, drift DriftResult, overconfidence OverconfidenceResult, relevanceScore float64) []string {
	return GenerateRevisionTasks(topic, notes, drift.Detected, overconfidence.Detected, relevanceScore)
}

// GenerateRevisionTasks builds up to four actionable revision tasks.
// Conditions are checked in a fixed order so the highest-impact tasks
// survive the truncation.
func GenerateRevisionTasks(topic string, notes []string, driftDetected, overconfidenceDetected bool, relevanceScore float64) []string {
	var tasks []string

	if driftDetected && relevanceScore < 50 {
		tasks = append(tasks,
			fmt.Sprintf("Re-study '%s' with a specific question in mind", topic),
			"Write a one-paragraph summary of the core concept")
	}

	if overconfidenceDetected {
		tasks = append(tasks,
			"Close all materials and write what you remember",
			"Teach the concept to an imaginary student (out loud)")
	}

	if len(notes) > 0 {
		shortest := notes[0]
		for _, n := range notes[1:] {
			if wordCount(n) < wordCount(shortest) {
				shortest = n
			}
		}
		if wordCount(shortest) < 8 {
			excerpt := shortest
			if r := []rune(excerpt); len(r) > 50 {
				excerpt = string(r[:50])
			}
			tasks = append(tasks, fmt.Sprintf("Expand on: '%s...' - add examples", excerpt))
		}
	}

	if relevanceScore >= 60 {
		tasks = append(tasks, fmt.Sprintf("Tomorrow: Quiz yourself on 3 key points from '%s'", topic))
	}

	if len(notes) >= 3 {
		tasks = append(tasks, "Create a simple diagram connecting the main concepts")
	}

	if len(tasks) == 0 {
		return []string{"Review your notes and add one new insight"}
	}
	if len(tasks) > 4 {
		tasks = tasks[:4]
	}
	return tasks
}
