package cli

import (
	"fmt"
	"strings"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/config"
	"github.com/amescasi/studyloop/internal/models"
	"github.com/amescasi/studyloop/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *analysis.Engine
	Config *config.Config
}

// wrap breaks text into lines of at most width characters, splitting
// on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// truncate shortens s to at most max characters, marking the cut with
// "..". Counts runes so multibyte text is never split mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-2]) + ".."
}

func printWrapped(text string, indent string, width int) {
	for _, line := range wrap(text, width) {
		fmt.Printf("%s%s\n", indent, line)
	}
}

func printAnalysis(session models.StudySession) {
	fmt.Println("\nSummary:")
	printWrapped(session.AISummary, "  ", 60)

	fmt.Printf("\nTopic relevance: %.0f/100\n", session.TopicRelevanceScore)
	switch {
	case session.TopicRelevanceScore >= 80:
		fmt.Println("  Notes align well with the topic")
	case session.TopicRelevanceScore >= 60:
		fmt.Println("  Could be more specific")
	default:
		fmt.Println("  Notes may be off-topic")
	}

	if session.TopicDriftDetected {
		fmt.Println("\nTopic drift detected:")
		printWrapped(session.DriftDetails, "  ", 60)
	}
	if session.OverconfidenceDetected {
		fmt.Println("\nOverconfidence warning:")
		printWrapped(session.OverconfidenceDetails, "  ", 60)
	}

	fmt.Println("\nFocus feedback:")
	printWrapped(session.FocusFeedback, "  ", 60)

	fmt.Println("\nSession stats:")
	fmt.Printf("  Planned: %d min\n", session.PlannedMinutes)
	fmt.Printf("  Actual:  %.1f min\n", session.ActualMinutes)
	fmt.Printf("  Breaks:  %d\n", len(session.Breaks))
	if session.PlannedMinutes > 0 {
		completion := session.ActualMinutes / float64(session.PlannedMinutes) * 100
		fmt.Printf("  Completion: %.0f%%\n", completion)
	}

	if len(session.RevisionTasks) > 0 {
		fmt.Println("\nRevision tasks:")
		for i, task := range session.RevisionTasks {
			fmt.Printf("  %d. %s\n", i+1, task)
		}
	}

	if session.NextSessionPlan != "" {
		fmt.Println("\nNext session:")
		printWrapped(session.NextSessionPlan, "  ", 60)
	}
}
