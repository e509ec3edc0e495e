package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/mvdouden/ledgerreport/ledger"
)

type BalanceCmd struct {
	ReportArgs
	CashBasis bool `help:"Convert the ledger to a cash basis first." name:"cash"`
}

func (cmd *BalanceCmd) Run(ctx *kong.Context, globals *Globals) error {
	return runWithTelemetry(ctx, globals, "balance", func(runCtx context.Context) error {
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

		tb, err := ledger.TrialBalanceAt(runCtx, l, rc.date, rc.pstart, rc.commodity, "Balance Sheet")
		if err != nil {
			return err
		}
		tb = ledger.BalanceSheet(tb)

		rows, err := buildRows(tb, rc.commodity, func(a *ledger.Account) bool {
			return a.IsAsset() || a.IsLiability() || a.IsEquity() || a.IsOCI()
		})
		if err != nil {
			return err
		}

		renderReport(ctx.Stdout, "Balance Sheet", rc.date, rows)
		return nil
	})
}
