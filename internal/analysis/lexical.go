package analysis

import "strings"

// stopwords are dropped from topic strings before relevance matching.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true,
	"or": true, "of": true, "in": true, "to": true,
}

// notesBlob joins all notes into one lowercased string for substring
// matching. Matching is containment, not word-boundary: short keywords
// may match inside longer words, which is an accepted imprecision.
func notesBlob(notes []string) string {
	return strings.ToLower(strings.Join(notes, " "))
}

// topicWords returns the lowercased words of a topic with stopwords
// removed. The result is a set; order is not meaningful.
func topicWords(topic string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		if !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

// keywordHits counts how many of the given keywords occur as substrings
// of the blob.
func keywordHits(blob string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(blob, kw) {
			hits++
		}
	}
	return hits
}

// wordCount returns the number of whitespace-separated words in s.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// totalWords sums the word counts of all notes.
func totalWords(notes []string) int {
	total := 0
	for _, n := range notes {
		total += wordCount(n)
	}
	return total
}

// avgNoteLength is the mean word count per note, 0 for no notes.
func avgNoteLength(notes []string) float64 {
	if len(notes) == 0 {
		return 0
	}
	return float64(totalWords(notes)) / float64(len(notes))
}
