package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/amescasi/studyloop/internal/analysis"
	"github.com/amescasi/studyloop/internal/cli"
	"github.com/amescasi/studyloop/internal/config"
	"github.com/amescasi/studyloop/internal/llm"
	"github.com/amescasi/studyloop/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/studyloop/studyloop.db"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize studyloop storage."`
	Start   cli.StartCmd   `cmd:"" help:"Run a timed study session." default:"1"`
	Log     cli.LogCmd     `cmd:"" help:"Record a session that already happened."`
	Analyze cli.AnalyzeCmd `cmd:"" help:"Preview analysis for notes without saving."`
	History cli.HistoryCmd `cmd:"" help:"Show recent sessions."`
	Report  cli.ReportCmd  `cmd:"" help:"Show the weekly report."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show quick stats."`
	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP API server."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run storage diagnostics."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the session store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage session store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studyloop"),
		kong.Description("Study session tracker with focus analysis"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if len(CLI.Config) > 5 && CLI.Config[len(CLI.Config)-5:] == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:  store,
		Engine: buildEngine(cfg),
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildEngine wires the model-backed analysis when an API key is
// configured, and the local rules otherwise.
func buildEngine(cfg *config.Config) *analysis.Engine {
	if cfg.Anthropic.APIKey == "" {
		return analysis.NewLocalEngine()
	}

	client, err := llm.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model)
	if err != nil {
		return analysis.NewLocalEngine()
	}
	return analysis.NewEngine(llm.NewRemoteAnalyzer(client), llm.NewRemoteTaskGenerator(client))
}
