package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/ledger"
)

type TrialCmd struct {
	ReportArgs
	CashBasis bool `help:"Convert the ledger to a cash basis first." name:"cash"`
}

func (cmd *TrialCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "trial", func(runCtx context.Context) error {
		rc, err := prepare(runCtx, globals, &cmd.ReportArgs)
		if err != nil {
			return err
		}

		l := rc.l
		if cmd.CashBasis {
			l, err = ledger.LedgerToCash(runCtx, l, rc.commodity)
			if err != nil {
				return err
			}
		}

		tb, err := ledger.TrialBalanceAt(runCtx, l, rc.date, rc.pstart, rc.commodity, "Trial Balance")
		if err != nil {
			return err
		}

		rows, err := buildRows(tb, rc.commodity, nil)
		if err != nil {
			return err
		}

		renderReport(ctx.Stdout, "Trial Balance", rc.date, rows)
		return nil
	})
}
