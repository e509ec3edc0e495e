package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/loader"
	"github.com/mvdouden/ledgerreport/web"
)

type WebCmd struct {
	File  string `help:"Ledger file, overriding the configured one." type:"path"`
	Port  int    `help:"Port to listen on." default:"8080"`
	Watch bool   `help:"Reload the ledger when the file changes." short:"w" default:"true" negatable:""`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "web", func(runCtx context.Context) error {
		cfg, err := loadConfig(globals)
		if err != nil {
			return err
		}
		if cmd.File != "" {
			cfg.LedgerFile = cmd.File
		}

		ledgerFile, err := filepath.Abs(cfg.LedgerFile)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}

		ld := loader.New(ledgerFile, loader.WithArgs(cfg.LedgerArgs...))
		server := web.New(cmd.Port, ledgerFile, ld, &cfg.Report, cfg.Commodity)
		server.WatchEnabled = cmd.Watch

		printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, cmd.Port)
		printInfof(ctx.Stdout, "Reporting on ledger: %s", pathStyle.Render(ledgerFile))

		return server.Start(runCtx)
	})
}
