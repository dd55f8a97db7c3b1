package analysis

import (
	"fmt"
	"strings"

	"github.com/amescasi/studyloop/internal/models"
)

// SessionSummary is the slice of a finished session the planner needs.
type SessionSummary struct {
	Topic                  string
	RelevanceScore         float64
	DriftDetected          bool
	OverconfidenceDetected bool
	ActualMinutes          float64
}

// PlanNextSession recommends what to do next time, based on the current
// session and how often the topic appears in history. The history is
// the pre-save snapshot: it must not include the session being planned
// for, or the study count double-counts.
func PlanNextSession(current SessionSummary, history []models.StudySession) string {
	topicLower := strings.ToLower(current.Topic)
	timesStudied := 0
	for _, s := range history {
		if strings.Contains(strings.ToLower(s.Topic), topicLower) {
			timesStudied++
		}
	}

	switch {
	case current.DriftDetected || current.RelevanceScore < 50:
		return fmt.Sprintf("Restart '%s' with focused 15-min session. "+
			"Set a specific question to answer before starting.", current.Topic)

	case current.OverconfidenceDetected:
		return fmt.Sprintf("Begin with a 5-min recall test on '%s' (no notes). "+
			"Then fill gaps with targeted review.", current.Topic)

	case timesStudied >= 3 && current.RelevanceScore >= 70:
		return fmt.Sprintf("You've studied '%s' %d times. "+
			"Try practice problems or teach the concept to solidify.", current.Topic, timesStudied)

	case current.ActualMinutes < 20 && current.RelevanceScore >= 60:
		return fmt.Sprintf("Good start on '%s'. Next: extend to 25-30 min "+
			"and go deeper into one subtopic.", current.Topic)

	case current.RelevanceScore >= 80:
		return fmt.Sprintf("Strong session! Next: connect '%s' to related concepts "+
			"or apply it to a real problem.", current.Topic)

	default:
		return fmt.Sprintf("Continue with '%s'. Focus on understanding 'why' "+
			"not just 'what'. Add more examples to your notes.", current.Topic)
	}
}
