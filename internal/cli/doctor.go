package cli

import (
	"fmt"
	"time"

	"github.com/amescasi/studyloop/internal/backup"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("FAIL  Store reachable\n      %v\n", err)
		hasError = true
	} else {
		fmt.Println("ok    Store reachable")
	}

	// Check 2: sessions readable
	sessions, err := ctx.Store.GetAllSessions()
	if err != nil {
		fmt.Printf("FAIL  Sessions readable\n      %v\n", err)
		hasError = true
	} else {
		fmt.Printf("ok    Sessions readable (%d sessions)\n", len(sessions))
	}

	// Check 3: session timestamps parse
	badTimestamps := 0
	for _, s := range sessions {
		if _, err := time.Parse(time.RFC3339, s.StartTime); err != nil {
			badTimestamps++
		}
	}
	if badTimestamps > 0 {
		fmt.Printf("warn  %d sessions have non-standard start timestamps\n", badTimestamps)
	} else if len(sessions) > 0 {
		fmt.Println("ok    Session timestamps parse")
	}

	// Check 4: backups present (warning only)
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	switch {
	case err != nil:
		fmt.Printf("warn  Could not list backups: %v\n", err)
	case len(backups) == 0:
		fmt.Println("warn  No backups found. Run 'studyloop backup create'.")
	default:
		fmt.Printf("ok    Backups present (latest: %s)\n", backups[0].Timestamp.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
