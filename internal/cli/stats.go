package cli

import (
	"fmt"
	"time"

	"github.com/amescasi/studyloop/internal/report"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet!")
		return nil
	}

	weekly := report.Generate(sessions, time.Now())
	var totalMinutes float64
	for _, s := range sessions {
		totalMinutes += s.ActualMinutes
	}

	fmt.Printf("Sessions:       %d\n", len(sessions))
	fmt.Printf("Total time:     %.1f hrs\n", totalMinutes/60)
	fmt.Printf("Avg relevance:  %.1f%% (this week)\n", weekly.Overview.ThisWeek.AvgRelevance)
	fmt.Printf("Current streak: %d days\n", weekly.Streak.Current)

	return nil
}
