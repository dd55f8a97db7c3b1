package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/amescasi/studyloop/internal/models"
)

// WeeklyReport aggregates the session collection into one week's view.
// It is recomputed on every request and never persisted.
type WeeklyReport struct {
	Period          Period          `json:"period"`
	Overview        Overview        `json:"overview"`
	DailyBreakdown  []DayStats      `json:"daily_breakdown"`
	TopicAnalysis   []TopicStats    `json:"topic_analysis"`
	TimeVsRetention TimeVsRetention `json:"time_vs_retention"`
	ProblemAreas    []ProblemArea   `json:"problem_areas"`
	Recommendations []string        `json:"recommendations"`
	Streak          Streak          `json:"streak"`
	Grade           Grade           `json:"grade"`
}

type Period struct {
	Start string `json:"start"` // YYYY-MM-DD, a Monday
	End   string `json:"end"`   // YYYY-MM-DD, the following Sunday
}

type WeekStats struct {
	Time         float64 `json:"time"` // minutes
	Sessions     int     `json:"sessions"`
	AvgRelevance float64 `json:"avg_relevance"`
	Issues       int     `json:"issues"`
}

type Overview struct {
	ThisWeek     WeekStats `json:"this_week"`
	LastWeek     WeekStats `json:"last_week"`
	TimeDelta    float64   `json:"time_delta"`
	SessionDelta int       `json:"session_delta"`
}

type DayStats struct {
	Day          string  `json:"day"`
	Minutes      float64 `json:"minutes"`
	Sessions     int     `json:"sessions"`
	AvgRelevance float64 `json:"avg_relevance"`
}

type TopicStats struct {
	Topic         string  `json:"topic"`
	Time          float64 `json:"time"`
	Sessions      int     `json:"sessions"`
	AvgRelevance  float64 `json:"avg_relevance"`
	Issues        int     `json:"issues"`
	Understanding string  `json:"understanding"` // good / medium / low
}

type DurationBucket struct {
	Count        int     `json:"count"`
	AvgRelevance float64 `json:"avg_relevance"`
}

type TimeVsRetention struct {
	ShortSessions   DurationBucket `json:"short_sessions"`  // < 20 min
	MediumSessions  DurationBucket `json:"medium_sessions"` // 20-40 min
	LongSessions    DurationBucket `json:"long_sessions"`   // >= 40 min
	OptimalDuration string         `json:"optimal_duration"`
	Message         string         `json:"message"`
}

type ProblemArea struct {
	Topic    string   `json:"topic"`
	Issues   []string `json:"issues"`
	Priority string   `json:"priority"` // high / medium
}

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type Grade struct {
	Score   float64 `json:"score"`
	Letter  string  `json:"letter"`
	Message string  `json:"message"`
}

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Generate builds the weekly report for the week containing now. The
// session collection is read in full; sessions outside the current and
// previous week still count toward the streak.
func Generate(sessions []models.StudySession, now time.Time) WeeklyReport {
	weekStart := mondayOf(now)
	weekEnd := weekStart.AddDate(0, 0, 6)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	var thisWeek, lastWeek []models.StudySession
	for _, s := range sessions {
		started, ok := sessionStart(s)
		if !ok {
			continue
		}
		day := dateOf(started)
		switch {
		case !day.Before(weekStart) && day.Before(weekStart.AddDate(0, 0, 7)):
			thisWeek = append(thisWeek, s)
		case !day.Before(lastWeekStart) && day.Before(weekStart):
			lastWeek = append(lastWeek, s)
		}
	}

	thisStats := weekStats(thisWeek)
	lastStats := weekStats(lastWeek)

	return WeeklyReport{
		Period: Period{
			Start: weekStart.Format("2006-01-02"),
			End:   weekEnd.Format("2006-01-02"),
		},
		Overview: Overview{
			ThisWeek:     thisStats,
			LastWeek:     lastStats,
			TimeDelta:    thisStats.Time - lastStats.Time,
			SessionDelta: thisStats.Sessions - lastStats.Sessions,
		},
		DailyBreakdown:  dailyBreakdown(thisWeek),
		TopicAnalysis:   topicAnalysis(thisWeek),
		TimeVsRetention: timeVsRetention(thisWeek),
		ProblemAreas:    problemAreas(thisWeek),
		Recommendations: recommendations(thisWeek, thisStats, lastStats),
		Streak:          computeStreak(sessions, now),
		Grade:           weeklyGrade(thisStats),
	}
}

// mondayOf returns the most recent Monday on or before t, at midnight.
func mondayOf(t time.Time) time.Time {
	day := dateOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sessionStart parses the session's start timestamp. Timestamps are
// accepted with or without a zone, matching what the CLI and API write.
func sessionStart(s models.StudySession) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s.StartTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sessionHasIssue(s models.StudySession) bool {
	return s.TopicDriftDetected || s.OverconfidenceDetected
}

func weekStats(sessions []models.StudySession) WeekStats {
	stats := WeekStats{Sessions: len(sessions)}
	var relevanceSum float64
	for _, s := range sessions {
		stats.Time += s.ActualMinutes
		relevanceSum += s.TopicRelevanceScore
		if sessionHasIssue(s) {
			stats.Issues++
		}
	}
	if len(sessions) > 0 {
		stats.AvgRelevance = relevanceSum / float64(len(sessions))
	}
	return stats
}

func dailyBreakdown(thisWeek []models.StudySession) []DayStats {
	days := make([]DayStats, 7)
	relevance := make([][]float64, 7)
	for i, name := range dayNames {
		days[i].Day = name
	}
	for _, s := range thisWeek {
		started, ok := sessionStart(s)
		if !ok {
			continue
		}
		idx := (int(started.Weekday()) + 6) % 7
		days[idx].Minutes += s.ActualMinutes
		days[idx].Sessions++
		relevance[idx] = append(relevance[idx], s.TopicRelevanceScore)
	}
	for i := range days {
		if len(relevance[i]) > 0 {
			var sum float64
			for _, r := range relevance[i] {
				sum += r
			}
			days[i].AvgRelevance = sum / float64(len(relevance[i]))
		}
	}
	return days
}

func topicAnalysis(thisWeek []models.StudySession) []TopicStats {
	grouped := groupByTopic(thisWeek)

	topics := make([]TopicStats, 0, len(grouped))
	for topic, group := range grouped {
		stats := weekStats(group)
		topics = append(topics, TopicStats{
			Topic:         topic,
			Time:          stats.Time,
			Sessions:      stats.Sessions,
			AvgRelevance:  stats.AvgRelevance,
			Issues:        stats.Issues,
			Understanding: understandingLabel(stats.AvgRelevance),
		})
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Time > topics[j].Time
	})
	return topics
}

func groupByTopic(sessions []models.StudySession) map[string][]models.StudySession {
	grouped := make(map[string][]models.StudySession)
	for _, s := range sessions {
		grouped[s.Topic] = append(grouped[s.Topic], s)
	}
	return grouped
}

func understandingLabel(avgRelevance float64) string {
	switch {
	case avgRelevance >= 70:
		return "good"
	case avgRelevance >= 50:
		return "medium"
	default:
		return "low"
	}
}

func timeVsRetention(thisWeek []models.StudySession) TimeVsRetention {
	var short, medium, long []models.StudySession
	for _, s := range thisWeek {
		switch {
		case s.ActualMinutes < 20:
			short = append(short, s)
		case s.ActualMinutes < 40:
			medium = append(medium, s)
		default:
			long = append(long, s)
		}
	}

	result := TimeVsRetention{
		ShortSessions:  durationBucket(short),
		MediumSessions: durationBucket(medium),
		LongSessions:   durationBucket(long),
	}
	result.OptimalDuration, result.Message = optimalDuration(thisWeek)
	return result
}

func durationBucket(sessions []models.StudySession) DurationBucket {
	bucket := DurationBucket{Count: len(sessions)}
	if len(sessions) == 0 {
		return bucket
	}
	var sum float64
	for _, s := range sessions {
		sum += s.TopicRelevanceScore
	}
	bucket.AvgRelevance = sum / float64(len(sessions))
	return bucket
}

// optimalDuration buckets sessions into 10-minute-wide duration bands
// and picks the band with the best average relevance. Bands with fewer
// than two sessions are ignored; with fewer than three sessions total
// there is not enough signal and a default is returned.
func optimalDuration(thisWeek []models.StudySession) (string, string) {
	const defaultRange = "25-35 minutes"
	if len(thisWeek) < 3 {
		return defaultRange, "Need more data for a reliable estimate"
	}

	type band struct {
		count int
		sum   float64
	}
	bands := make(map[int]*band)
	for _, s := range thisWeek {
		key := int(math.Floor(s.ActualMinutes/10)) * 10
		if bands[key] == nil {
			bands[key] = &band{}
		}
		bands[key].count++
		bands[key].sum += s.TopicRelevanceScore
	}

	bestKey := -1
	bestAvg := -1.0
	for key, b := range bands {
		if b.count < 2 {
			continue
		}
		avg := b.sum / float64(b.count)
		if avg > bestAvg || (avg == bestAvg && key < bestKey) {
			bestKey = key
			bestAvg = avg
		}
	}
	if bestKey < 0 {
		return defaultRange, "Need more data for a reliable estimate"
	}

	rangeText := fmt.Sprintf("%d-%d minutes", bestKey, bestKey+10)
	message := fmt.Sprintf("Your %s sessions average %.0f%% relevance - your sweet spot", rangeText, bestAvg)
	return rangeText, message
}

func problemAreas(thisWeek []models.StudySession) []ProblemArea {
	grouped := groupByTopic(thisWeek)

	var areas []ProblemArea
	for topic, group := range grouped {
		var issues []string
		stats := weekStats(group)

		if stats.AvgRelevance < 60 {
			issues = append(issues, fmt.Sprintf("Low understanding (%.0f%%)", stats.AvgRelevance))
		}

		driftCount, overconfCount := 0, 0
		for _, s := range group {
			if s.TopicDriftDetected {
				driftCount++
			}
			if s.OverconfidenceDetected {
				overconfCount++
			}
		}
		if rate := float64(driftCount) / float64(len(group)); rate > 0.5 {
			issues = append(issues, fmt.Sprintf("Frequent topic drift (%.0f%%)", rate*100))
		}
		if rate := float64(overconfCount) / float64(len(group)); rate > 0.5 {
			issues = append(issues, fmt.Sprintf("Retention issues (%.0f%%)", rate*100))
		}

		if len(issues) == 0 {
			continue
		}
		priority := "medium"
		if len(issues) >= 2 {
			priority = "high"
		}
		areas = append(areas, ProblemArea{Topic: topic, Issues: issues, Priority: priority})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return len(areas[i].Issues) > len(areas[j].Issues)
	})
	return areas
}

func recommendations(thisWeek []models.StudySession, thisStats, lastStats WeekStats) []string {
	if len(thisWeek) == 0 {
		return []string{"No sessions this week. Start with one 25-minute session today."}
	}

	var recs []string

	if thisStats.Time < 120 {
		recs = append(recs, "Schedule more study time - aim for at least 2 hours per week.")
	} else if lastStats.Time > 0 && thisStats.Time > lastStats.Time*1.5 {
		recs = append(recs, "Big jump in study time. Watch for burnout - keep sessions sustainable.")
	}

	if thisStats.AvgRelevance < 60 {
		recs = append(recs, "Try the Pomodoro technique: 25 minutes focused, then a 5-minute break.")
	}

	driftCount, overconfCount := 0, 0
	for _, s := range thisWeek {
		if s.TopicDriftDetected {
			driftCount++
		}
		if s.OverconfidenceDetected {
			overconfCount++
		}
	}
	if float64(driftCount)/float64(len(thisWeek)) > 0.3 {
		recs = append(recs, "Write down your study goal before each session to stay on topic.")
	}
	if float64(overconfCount)/float64(len(thisWeek)) > 0.3 {
		recs = append(recs, "Add 'why' and 'how' explanations to your notes, not just facts.")
	}

	topics := groupByTopic(thisWeek)
	if len(topics) == 1 && len(thisWeek) > 3 {
		recs = append(recs, "You studied a single topic all week. Mix in a second topic to strengthen recall.")
	}

	if len(recs) == 0 {
		return []string{"Keep up the good work! Your study habits look healthy."}
	}
	if len(recs) > 4 {
		recs = recs[:4]
	}
	return recs
}

// computeStreak walks the distinct calendar dates of every session in
// history. The current streak only counts if the last studied day is
// today or yesterday.
func computeStreak(sessions []models.StudySession, now time.Time) Streak {
	seen := make(map[string]bool)
	for _, s := range sessions {
		started, ok := sessionStart(s)
		if !ok {
			continue
		}
		seen[started.Format("2006-01-02")] = true
	}
	if len(seen) == 0 {
		return Streak{}
	}

	// Normalize to UTC midnights so day arithmetic is zone-independent.
	dates := make([]time.Time, 0, len(seen))
	for key := range seen {
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	current := 0
	last := dates[len(dates)-1]
	today, err := time.Parse("2006-01-02", now.Format("2006-01-02"))
	if err == nil && !last.Before(today.AddDate(0, 0, -1)) {
		current = run
	}
	return Streak{Current: current, Longest: longest}
}

func weeklyGrade(thisStats WeekStats) Grade {
	timeComponent := math.Min(40, thisStats.Time/300*40)
	qualityComponent := thisStats.AvgRelevance / 100 * 40
	consistencyComponent := math.Min(20, float64(thisStats.Sessions)*4)
	penalty := float64(thisStats.Issues) * 5

	score := timeComponent + qualityComponent + consistencyComponent - penalty
	if score < 0 {
		score = 0
	}

	letter, message := gradeLetter(score)
	return Grade{Score: score, Letter: letter, Message: message}
}

func gradeLetter(score float64) (string, string) {
	switch {
	case score >= 90:
		return "A+", "Outstanding week! Keep this momentum going."
	case score >= 80:
		return "A", "Excellent work. Your study habits are paying off."
	case score >= 70:
		return "B", "Solid week. A little more consistency will push you higher."
	case score >= 60:
		return "C", "Decent effort, with clear room to improve."
	case score >= 50:
		return "D", "You showed up, but sessions need more focus."
	default:
		return "F", "Tough week. Start small: one focused session today."
	}
}
