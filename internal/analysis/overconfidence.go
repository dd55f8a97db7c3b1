package analysis

import "fmt"

// Phrases suggesting passive consumption versus active learning.
var (
	passivePatterns = []string{
		"watched", "saw", "video", "lecture", "tutorial",
		"read", "reading", "article", "chapter", "book",
	}
	activePatterns = []string{
		"learned", "understand", "realized", "discovered",
		"practiced", "solved", "implemented", "applied",
		"because", "therefore", "means that", "so that",
		"example", "such as", "specifically",
	}
)

// OverconfidenceResult is the outcome of overconfidence detection. The
// confidence gap estimates how much the user's sense of mastery likely
// exceeds actual retention, on a 0-1 scale.
type OverconfidenceResult struct {
	Detected      bool    `json:"detected"`
	Details       string  `json:"details"`
	ConfidenceGap float64 `json:"confidence_gap"`
}

// DetectOverconfidence flags sessions that look like content was
// consumed without being retained: passive language, thin notes for a
// long session, or too few words for the time spent.
func DetectOverconfidence(topic string, notes []string, actualMinutes float64, plannedMinutes int) OverconfidenceResult {
	if len(notes) == 0 {
		return OverconfidenceResult{
			Detected:      true,
			Details:       "No notes taken after studying. High risk of zero retention.",
			ConfidenceGap: 1.0,
		}
	}

	blob := notesBlob(notes)
	passiveCount := keywordHits(blob, passivePatterns)
	activeCount := keywordHits(blob, activePatterns)

	// Roughly 5-10 meaningful words per 5 minutes of study is healthy.
	expectedMinWords := (actualMinutes / 5) * 5
	wordDeficit := expectedMinWords - float64(totalWords(notes))
	if wordDeficit < 0 {
		wordDeficit = 0
	}

	longSession := actualMinutes >= 30
	sparseNotes := len(notes) < 3 || avgNoteLength(notes) < 6

	switch {
	case passiveCount > 0 && activeCount == 0:
		return OverconfidenceResult{
			Detected: true,
			Details: "Your notes describe what you watched/read, not what you learned. " +
				"Try explaining concepts in your own words.",
			ConfidenceGap: 0.7,
		}
	case longSession && sparseNotes:
		return OverconfidenceResult{
			Detected: true,
			Details: fmt.Sprintf("You studied for %.0f minutes but captured minimal notes. ", actualMinutes) +
				"This suggests passive consumption. What can you recall without looking?",
			ConfidenceGap: 0.6,
		}
	case wordDeficit > 15:
		return OverconfidenceResult{
			Detected: true,
			Details: "Your notes are brief relative to study time. " +
				"Challenge: Can you explain the key points to someone else?",
			ConfidenceGap: 0.5,
		}
	case passiveCount > activeCount && len(notes) >= 3:
		return OverconfidenceResult{
			Detected: true,
			Details: "Notes lean toward describing content rather than insights. " +
				"Add 'because' and 'therefore' to deepen understanding.",
			ConfidenceGap: 0.3,
		}
	}

	return OverconfidenceResult{}
}
