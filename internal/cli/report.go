package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/amescasi/studyloop/internal/report"
)

type ReportCmd struct{}

func (c *ReportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}

	weekly := report.Generate(sessions, time.Now())

	fmt.Printf("Weekly report  %s to %s\n", weekly.Period.Start, weekly.Period.End)
	fmt.Println(strings.Repeat("=", 50))

	ov := weekly.Overview
	fmt.Printf("\nThis week: %.0f min across %d sessions %s\n",
		ov.ThisWeek.Time, ov.ThisWeek.Sessions,
		report.TrendArrow(ov.ThisWeek.Time, ov.LastWeek.Time))
	fmt.Printf("Last week: %.0f min across %d sessions\n", ov.LastWeek.Time, ov.LastWeek.Sessions)
	fmt.Printf("Average relevance: %.0f%%", ov.ThisWeek.AvgRelevance)
	if ov.ThisWeek.Issues > 0 {
		fmt.Printf("   (%d sessions with focus issues)", ov.ThisWeek.Issues)
	}
	fmt.Println()

	fmt.Println("\nDaily breakdown:")
	var maxMinutes float64
	for _, day := range weekly.DailyBreakdown {
		if day.Minutes > maxMinutes {
			maxMinutes = day.Minutes
		}
	}
	for _, day := range weekly.DailyBreakdown {
		fmt.Println("  " + report.HorizontalBar(day.Day, day.Minutes, maxMinutes, 20))
	}

	relevanceByDay := make([]float64, len(weekly.DailyBreakdown))
	for i, day := range weekly.DailyBreakdown {
		relevanceByDay[i] = day.AvgRelevance
	}
	fmt.Printf("\nRelevance trend: %s\n", report.Sparkline(relevanceByDay))

	if len(weekly.TopicAnalysis) > 0 {
		fmt.Println("\nTopics:")
		for _, topic := range weekly.TopicAnalysis {
			fmt.Printf("  %-20s %4.0f min  %d sessions  %.0f%% (%s)\n",
				topic.Topic, topic.Time, topic.Sessions, topic.AvgRelevance, topic.Understanding)
		}
	}

	tvr := weekly.TimeVsRetention
	fmt.Println("\nTime vs retention:")
	fmt.Printf("  Short  (<20 min):  %d sessions, %.0f%% relevance\n", tvr.ShortSessions.Count, tvr.ShortSessions.AvgRelevance)
	fmt.Printf("  Medium (20-40):    %d sessions, %.0f%% relevance\n", tvr.MediumSessions.Count, tvr.MediumSessions.AvgRelevance)
	fmt.Printf("  Long   (40+ min):  %d sessions, %.0f%% relevance\n", tvr.LongSessions.Count, tvr.LongSessions.AvgRelevance)
	fmt.Printf("  Optimal duration: %s\n", tvr.OptimalDuration)
	if tvr.Message != "" {
		fmt.Printf("  %s\n", tvr.Message)
	}

	if len(weekly.ProblemAreas) > 0 {
		fmt.Println("\nProblem areas:")
		for _, area := range weekly.ProblemAreas {
			fmt.Printf("  [%s] %s: %s\n", area.Priority, area.Topic, strings.Join(area.Issues, "; "))
		}
	}

	fmt.Println("\nRecommendations:")
	for _, rec := range weekly.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}

	fmt.Printf("\nStreak: %d days (longest: %d)\n", weekly.Streak.Current, weekly.Streak.Longest)
	fmt.Printf("Grade:  %s (%.0f/100)\n", weekly.Grade.Letter, weekly.Grade.Score)
	printWrapped(weekly.Grade.Message, "  ", 60)

	return nil
}
