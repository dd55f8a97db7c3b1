package report

import (
	"strings"
	"testing"
	"time"

	"github.com/amescasi/studyloop/internal/models"
)

// Wednesday, mid-week, so up to 3 days of the current week exist.
var testNow = time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)

type sessionOpts struct {
	topic          string
	minutes        float64
	relevance      float64
	drift          bool
	overconfidence bool
	daysAgo        int
}

func testSession(opts sessionOpts) models.StudySession {
	if opts.topic == "" {
		opts.topic = "Test Topic"
	}
	if opts.minutes == 0 {
		opts.minutes = 25
	}
	if opts.relevance == 0 {
		opts.relevance = 75
	}
	start := testNow.AddDate(0, 0, -opts.daysAgo)
	return models.StudySession{
		ID:                     start.Format("20060102_150405"),
		Topic:                  opts.topic,
		PlannedMinutes:         30,
		ActualMinutes:          opts.minutes,
		StartTime:              start.Format(time.RFC3339),
		EndTime:                start.Add(time.Duration(opts.minutes) * time.Minute).Format(time.RFC3339),
		Notes:                  []string{"Test note 1", "Test note 2"},
		TopicRelevanceScore:    opts.relevance,
		TopicDriftDetected:     opts.drift,
		OverconfidenceDetected: opts.overconfidence,
		Completed:              true,
	}
}

func TestGenerate_EmptySessions(t *testing.T) {
	got := Generate(nil, testNow)

	if got.Overview.ThisWeek.Time != 0 || got.Overview.ThisWeek.Sessions != 0 {
		t.Errorf("empty input should produce zero overview: %+v", got.Overview.ThisWeek)
	}
	if len(got.DailyBreakdown) != 7 {
		t.Errorf("daily breakdown must always have 7 days, got %d", len(got.DailyBreakdown))
	}
	if got.Streak.Current != 0 || got.Streak.Longest != 0 {
		t.Errorf("expected zero streak: %+v", got.Streak)
	}
	if len(got.Recommendations) != 1 || !strings.Contains(got.Recommendations[0], "No sessions") {
		t.Errorf("expected the bootstrap recommendation: %v", got.Recommendations)
	}
}

func TestGenerate_PeriodIsCurrentWeek(t *testing.T) {
	got := Generate([]models.StudySession{testSession(sessionOpts{})}, testNow)

	if got.Period.Start != "2025-12-29" { // Monday
		t.Errorf("expected week start 2025-12-29, got %s", got.Period.Start)
	}
	if got.Period.End != "2026-01-04" { // Sunday
		t.Errorf("expected week end 2026-01-04, got %s", got.Period.End)
	}
}

func TestGenerate_OverviewTotals(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 25, relevance: 80, daysAgo: 0}),
		testSession(sessionOpts{minutes: 30, relevance: 60, daysAgo: 1}),
		testSession(sessionOpts{minutes: 20, relevance: 70, daysAgo: 2}),
	}

	got := Generate(sessions, testNow)

	if got.Overview.ThisWeek.Time != 75 {
		t.Errorf("expected 75 total minutes, got %v", got.Overview.ThisWeek.Time)
	}
	if got.Overview.ThisWeek.Sessions != 3 {
		t.Errorf("expected 3 sessions, got %d", got.Overview.ThisWeek.Sessions)
	}
	if got.Overview.ThisWeek.AvgRelevance != 70 {
		t.Errorf("expected average relevance 70, got %v", got.Overview.ThisWeek.AvgRelevance)
	}
}

func TestGenerate_IssueCount(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{drift: true, daysAgo: 0}),
		testSession(sessionOpts{overconfidence: true, daysAgo: 1}),
		testSession(sessionOpts{daysAgo: 2}),
	}

	got := Generate(sessions, testNow)

	if got.Overview.ThisWeek.Issues != 2 {
		t.Errorf("expected 2 issues, got %d", got.Overview.ThisWeek.Issues)
	}
}

func TestGenerate_WeekPartitionAndDeltas(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 50, daysAgo: 0}),  // this week (Wed)
		testSession(sessionOpts{minutes: 30, daysAgo: 4}),  // last week (Sat)
		testSession(sessionOpts{minutes: 10, daysAgo: 5}),  // last week (Fri)
		testSession(sessionOpts{minutes: 99, daysAgo: 20}), // neither window
	}

	got := Generate(sessions, testNow)

	if got.Overview.ThisWeek.Time != 50 || got.Overview.ThisWeek.Sessions != 1 {
		t.Errorf("this week mis-bucketed: %+v", got.Overview.ThisWeek)
	}
	if got.Overview.LastWeek.Time != 40 || got.Overview.LastWeek.Sessions != 2 {
		t.Errorf("last week mis-bucketed: %+v", got.Overview.LastWeek)
	}
	if got.Overview.TimeDelta != 10 {
		t.Errorf("expected time delta 10, got %v", got.Overview.TimeDelta)
	}
	if got.Overview.SessionDelta != -1 {
		t.Errorf("expected session delta -1, got %d", got.Overview.SessionDelta)
	}
}

func TestGenerate_DailyBreakdown(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 20, relevance: 80, daysAgo: 0}), // Wed
		testSession(sessionOpts{minutes: 25, relevance: 60, daysAgo: 0}), // Wed
		testSession(sessionOpts{minutes: 15, relevance: 90, daysAgo: 2}), // Mon
	}

	got := Generate(sessions, testNow)

	names := make([]string, len(got.DailyBreakdown))
	for i, d := range got.DailyBreakdown {
		names[i] = d.Day
	}
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("day order wrong: %v", names)
		}
	}

	wed := got.DailyBreakdown[2]
	if wed.Minutes != 45 || wed.Sessions != 2 || wed.AvgRelevance != 70 {
		t.Errorf("Wednesday stats wrong: %+v", wed)
	}
	mon := got.DailyBreakdown[0]
	if mon.Minutes != 15 || mon.AvgRelevance != 90 {
		t.Errorf("Monday stats wrong: %+v", mon)
	}
	if got.DailyBreakdown[3].AvgRelevance != 0 {
		t.Errorf("empty day should average 0: %+v", got.DailyBreakdown[3])
	}
}

func TestGenerate_TopicAnalysis(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{topic: "Python", minutes: 30, relevance: 80, daysAgo: 0}),
		testSession(sessionOpts{topic: "Python", minutes: 25, relevance: 70, daysAgo: 1}),
		testSession(sessionOpts{topic: "JavaScript", minutes: 20, relevance: 55, daysAgo: 2}),
	}

	got := Generate(sessions, testNow)

	if len(got.TopicAnalysis) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(got.TopicAnalysis))
	}
	first := got.TopicAnalysis[0]
	if first.Topic != "Python" || first.Time != 55 || first.Sessions != 2 {
		t.Errorf("topics should sort by time descending: %+v", first)
	}
	if first.Understanding != "good" {
		t.Errorf("average 75 should read as good, got %s", first.Understanding)
	}
	if got.TopicAnalysis[1].Understanding != "medium" {
		t.Errorf("average 55 should read as medium, got %s", got.TopicAnalysis[1].Understanding)
	}
}

func TestUnderstandingLabel_Boundaries(t *testing.T) {
	cases := []struct {
		avg  float64
		want string
	}{
		{70, "good"}, {69.9, "medium"}, {50, "medium"}, {49.9, "low"}, {0, "low"},
	}
	for _, tc := range cases {
		if got := understandingLabel(tc.avg); got != tc.want {
			t.Errorf("understandingLabel(%v) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}

func TestGenerate_TimeVsRetentionBuckets(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 15, daysAgo: 0}), // short
		testSession(sessionOpts{minutes: 20, daysAgo: 1}), // medium boundary
		testSession(sessionOpts{minutes: 39, daysAgo: 1}), // medium
		testSession(sessionOpts{minutes: 40, daysAgo: 2}), // long boundary
		testSession(sessionOpts{minutes: 45, daysAgo: 2}), // long
	}

	got := Generate(sessions, testNow).TimeVsRetention

	if got.ShortSessions.Count != 1 {
		t.Errorf("short count = %d, want 1", got.ShortSessions.Count)
	}
	if got.MediumSessions.Count != 2 {
		t.Errorf("medium count = %d, want 2", got.MediumSessions.Count)
	}
	if got.LongSessions.Count != 2 {
		t.Errorf("long count = %d, want 2", got.LongSessions.Count)
	}
}

func TestGenerate_OptimalDuration(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 25, relevance: 90, daysAgo: 0}),
		testSession(sessionOpts{minutes: 28, relevance: 80, daysAgo: 1}),
		testSession(sessionOpts{minutes: 45, relevance: 60, daysAgo: 2}),
		testSession(sessionOpts{minutes: 47, relevance: 50, daysAgo: 2}),
	}

	got := Generate(sessions, testNow).TimeVsRetention

	if got.OptimalDuration != "20-30 minutes" {
		t.Errorf("expected the 20-30 bucket to win, got %s", got.OptimalDuration)
	}
}

func TestGenerate_OptimalDurationNeedsData(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{minutes: 25, daysAgo: 0}),
		testSession(sessionOpts{minutes: 45, daysAgo: 1}),
	}

	got := Generate(sessions, testNow).TimeVsRetention

	if got.OptimalDuration != "25-35 minutes" {
		t.Errorf("expected the default range, got %s", got.OptimalDuration)
	}
	if !strings.Contains(got.Message, "Need more data") {
		t.Errorf("expected the need-more-data message, got %q", got.Message)
	}
}

func TestGenerate_ProblemAreas(t *testing.T) {
	sessions := []models.StudySession{
		testSession(sessionOpts{topic: "Struggling", relevance: 40, drift: true, daysAgo: 0}),
		testSession(sessionOpts{topic: "Struggling", relevance: 45, drift: true, daysAgo: 1}),
		testSession(sessionOpts{topic: "Drifty", relevance: 70, drift: true, daysAgo: 1}),
		testSession(sessionOpts{topic: "Drifty", relevance: 70, drift: true, daysAgo: 2}),
		testSession(sessionOpts{topic: "Great", relevance: 90, daysAgo: 2}),
	}

	got := Generate(sessions, testNow).ProblemAreas

	byTopic := make(map[string]ProblemArea)
	for _, area := range got {
		byTopic[area.Topic] = area
	}

	if _, ok := byTopic["Great"]; ok {
		t.Error("healthy topic should not be flagged")
	}
	struggling, ok := byTopic["Struggling"]
	if !ok {
		t.Fatal("low-relevance topic should be flagged")
	}
	if struggling.Priority != "high" || len(struggling.Issues) != 2 {
		t.Errorf("two issues should give high priority: %+v", struggling)
	}
	drifty, ok := byTopic["Drifty"]
	if !ok {
		t.Fatal("frequent-drift topic should be flagged")
	}
	if drifty.Priority != "medium" {
		t.Errorf("single issue should be medium priority: %+v", drifty)
	}
	if got[0].Topic != "Struggling" {
		t.Errorf("problem areas should sort by issue count descending: %v", got)
	}
}

func TestGenerate_Recommendations(t *testing.T) {
	t.Run("low time", func(t *testing.T) {
		sessions := []models.StudySession{testSession(sessionOpts{minutes: 30, daysAgo: 0})}
		recs := Generate(sessions, testNow).Recommendations
		if !containsSubstring(recs, "Schedule more study time") {
			t.Errorf("expected schedule-more tip: %v", recs)
		}
	})

	t.Run("healthy week", func(t *testing.T) {
		var sessions []models.StudySession
		for i := 0; i < 3; i++ {
			sessions = append(sessions, testSession(sessionOpts{topic: "A", minutes: 30, relevance: 85, daysAgo: i % 3}))
			sessions = append(sessions, testSession(sessionOpts{topic: "B", minutes: 30, relevance: 85, daysAgo: i % 3}))
		}
		recs := Generate(sessions, testNow).Recommendations
		if len(recs) != 1 || !strings.Contains(recs[0], "Keep up the good work") {
			t.Errorf("healthy week should get the default tip: %v", recs)
		}
	})

	t.Run("single topic all week", func(t *testing.T) {
		var sessions []models.StudySession
		for i := 0; i < 4; i++ {
			sessions = append(sessions, testSession(sessionOpts{
				topic: "Only", minutes: 40, relevance: 85, daysAgo: i % 3,
			}))
		}
		recs := Generate(sessions, testNow).Recommendations
		if !containsSubstring(recs, "single topic") {
			t.Errorf("expected vary-topics tip: %v", recs)
		}
	})

	t.Run("at most four", func(t *testing.T) {
		var sessions []models.StudySession
		for i := 0; i < 5; i++ {
			sessions = append(sessions, testSession(sessionOpts{
				topic: "Only", minutes: 10, relevance: 30,
				drift: true, overconfidence: true, daysAgo: i % 3,
			}))
		}
		recs := Generate(sessions, testNow).Recommendations
		if len(recs) != 4 {
			t.Errorf("expected exactly 4 recommendations, got %d: %v", len(recs), recs)
		}
	})
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestGenerate_Streak(t *testing.T) {
	t.Run("three consecutive days ending today", func(t *testing.T) {
		sessions := []models.StudySession{
			testSession(sessionOpts{daysAgo: 2}),
			testSession(sessionOpts{daysAgo: 1}),
			testSession(sessionOpts{daysAgo: 0}),
		}
		got := Generate(sessions, testNow).Streak
		if got.Current != 3 || got.Longest != 3 {
			t.Errorf("expected streak 3/3, got %+v", got)
		}
	})

	t.Run("gap breaks current streak", func(t *testing.T) {
		sessions := []models.StudySession{
			testSession(sessionOpts{daysAgo: 5}),
			testSession(sessionOpts{daysAgo: 4}),
			testSession(sessionOpts{daysAgo: 3}),
			// nothing since: last studied 3 days ago
		}
		got := Generate(sessions, testNow).Streak
		if got.Current != 0 {
			t.Errorf("stale streak should reset to 0, got %d", got.Current)
		}
		if got.Longest != 3 {
			t.Errorf("longest should survive the gap, got %d", got.Longest)
		}
	})

	t.Run("yesterday keeps streak alive", func(t *testing.T) {
		sessions := []models.StudySession{
			testSession(sessionOpts{daysAgo: 2}),
			testSession(sessionOpts{daysAgo: 1}),
		}
		got := Generate(sessions, testNow).Streak
		if got.Current != 2 {
			t.Errorf("streak ending yesterday should count, got %d", got.Current)
		}
	})

	t.Run("multiple sessions one day count once", func(t *testing.T) {
		sessions := []models.StudySession{
			testSession(sessionOpts{daysAgo: 0}),
			testSession(sessionOpts{daysAgo: 0}),
		}
		got := Generate(sessions, testNow).Streak
		if got.Current != 1 || got.Longest != 1 {
			t.Errorf("expected streak 1/1, got %+v", got)
		}
	})
}

func TestGenerate_WeeklyGrade(t *testing.T) {
	t.Run("perfect week is A+", func(t *testing.T) {
		var sessions []models.StudySession
		for i := 0; i < 5; i++ {
			sessions = append(sessions, testSession(sessionOpts{minutes: 60, relevance: 100, daysAgo: i % 3}))
		}
		got := Generate(sessions, testNow).Grade
		if got.Score < 90 || got.Letter != "A+" {
			t.Errorf("300 min at 100%% relevance should grade A+: %+v", got)
		}
	})

	t.Run("issues drag the score down", func(t *testing.T) {
		healthy := Generate([]models.StudySession{
			testSession(sessionOpts{minutes: 60, relevance: 80, daysAgo: 0}),
		}, testNow).Grade
		flagged := Generate([]models.StudySession{
			testSession(sessionOpts{minutes: 60, relevance: 80, drift: true, daysAgo: 0}),
		}, testNow).Grade

		if flagged.Score != healthy.Score-5 {
			t.Errorf("one issue should cost 5 points: healthy=%v flagged=%v", healthy.Score, flagged.Score)
		}
	})

	t.Run("score floors at zero", func(t *testing.T) {
		var sessions []models.StudySession
		for i := 0; i < 5; i++ {
			sessions = append(sessions, testSession(sessionOpts{
				minutes: 1, relevance: 1, drift: true, overconfidence: true, daysAgo: i % 3,
			}))
		}
		got := Generate(sessions, testNow).Grade
		if got.Score < 0 {
			t.Errorf("score must not go negative: %v", got.Score)
		}
		if got.Letter != "F" {
			t.Errorf("expected F, got %s", got.Letter)
		}
	})
}

func TestGradeLetter_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A+"}, {90, "A+"}, {89.9, "A"}, {80, "A"},
		{70, "B"}, {60, "C"}, {50, "D"}, {49.9, "F"}, {0, "F"},
	}
	for _, tc := range cases {
		if got, _ := gradeLetter(tc.score); got != tc.want {
			t.Errorf("gradeLetter(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
