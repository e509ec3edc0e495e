package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/ledger"
)

type PandlCmd struct {
	ReportArgs
	CashBasis bool `help:"Convert the ledger to a cash basis first." name:"cash"`
}

func (cmd *PandlCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "pandl", func(runCtx context.Context) error {
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

		tb, err := ledger.TrialBalanceAt(runCtx, l, rc.date, rc.pstart, rc.commodity, "Profit & Loss")
		if err != nil {
			return err
		}

		rows, err := buildRows(tb, rc.commodity, func(a *ledger.Account) bool {
			return a.IsIncome() || a.IsExpense()
		})
		if err != nil {
			return err
		}

		renderReport(ctx.Stdout, "Profit & Loss", rc.date, rows)
		return nil
	})
}
