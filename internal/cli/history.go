package cli

import (
	"fmt"
	"strings"
)

type HistoryCmd struct {
	Limit int `help:"Number of recent sessions to show." default:"10"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
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

	limit := c.Limit
	if limit <= 0 || limit > len(sessions) {
		limit = len(sessions)
	}
	recent := sessions[len(sessions)-limit:]

	fmt.Printf("%-12s %-20s %-6s %-6s %s\n", "Date", "Topic", "Min", "Rel", "Issues")
	fmt.Println(strings.Repeat("-", 54))

	// Newest first.
	for i := len(recent) - 1; i >= 0; i-- {
		s := recent[i]

		date := s.StartTime
		if len(date) > 10 {
			date = date[:10]
		}
		topic := truncate(s.Topic, 20)

		var issues []string
		if s.TopicDriftDetected {
			issues = append(issues, "drift")
		}
		if s.OverconfidenceDetected {
			issues = append(issues, "overconf")
		}
		issueStr := "ok"
		if len(issues) > 0 {
			issueStr = strings.Join(issues, ",")
		}

		fmt.Printf("%-12s %-20s %-6.0f %-6.0f %s\n",
			date, topic, s.ActualMinutes, s.TopicRelevanceScore, issueStr)
	}

	var total float64
	for _, s := range sessions {
		total += s.ActualMinutes
	}
	fmt.Printf("\nTotal: %.0f min (%.1f hrs) across %d sessions\n", total, total/60, len(sessions))

	return nil
}
