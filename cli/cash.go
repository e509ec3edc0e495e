package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/ledger"
)

type CashCmd struct {
	ReportArgs
}

func (cmd *CashCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "cash", func(runCtx context.Context) error {
		rc, err := prepare(runCtx, globals, &cmd.ReportArgs)
		if err != nil {
			return err
		}

		converted, err := ledger.LedgerToCash(runCtx, rc.l, rc.commodity)
		if err != nil {
			return err
		}

		tb, err := ledger.TrialBalanceAt(runCtx, converted, rc.date, rc.pstart, rc.commodity, "Cash Trial Balance")
		if err != nil {
			return err
		}

		rows, err := buildRows(tb, rc.commodity, nil)
		if err != nil {
			return err
		}

		renderReport(ctx.Stdout, "Cash Trial Balance", rc.date, rows)
		return nil
	})
}
