// Package loader acquires transactions and prices from the external ledger
// binary. It invokes ledger as a subprocess, parses its tabular CSV output
// into a ledger.Ledger, and loads the price history.
//
// The ledger file's own textual syntax is never parsed here; only the
// machine-readable CSV the binary emits.
package loader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mvdouden/ledgerreport/ledger"
	"github.com/mvdouden/ledgerreport/telemetry"
)

// transactionFormat asks ledger for one CSV row per posting, with the parent
// transaction's identity repeated on each row.
const transactionFormat = `%(quoted(parent.id)),%(quoted(format_date(date))),%(quoted(parent.code)),%(quoted(payee)),%(quoted(account)),%(quoted(display_amount)),%(quoted(comment)),%(quoted(state)),%(quoted(note))
`

// priceFormat asks ledger for one CSV row per price db entry.
const priceFormat = `%(quoted(format_date(date))),%(quoted(display_account)),%(quoted(display_amount))
`

// Loader runs the ledger binary against one ledger file.
type Loader struct {
	file   string
	args   []string
	binary string
}

// Option configures a Loader.
type Option func(*Loader)

// WithArgs appends extra arguments to every ledger invocation.
func WithArgs(args ...string) Option {
	return func(l *Loader) { l.args = append(l.args, args...) }
}

// WithBinary overrides the ledger executable path.
func WithBinary(path string) Option {
	return func(l *Loader) { l.binary = path }
}

// New creates a loader for the given ledger file.
func New(file string, opts ...Option) *Loader {
	l := &Loader{file: file, binary: "ledger"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a ledger as of date: all transactions dated on or before it,
// plus the full price history. A nil config uses the conventional
// chart-of-accounts names.
func (ld *Loader) Load(ctx context.Context, date time.Time, cfg *ledger.Config) (*ledger.Ledger, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.load %s", date.Format("2006-01-02")))
	defer timer.End()

	l := ledger.New(date, cfg)

	priceTimer := timer.Child("loader.prices")
	err := ld.loadPrices(ctx, l)
	priceTimer.End()
	if err != nil {
		return nil, err
	}

	txnTimer := timer.Child("loader.transactions")
	err = ld.loadTransactions(ctx, l, date)
	txnTimer.End()
	if err != nil {
		return nil, err
	}

	return l, nil
}

// run invokes the ledger binary and returns its stdout. Any stderr output is
// treated as a failure.
func (ld *Loader) run(ctx context.Context, args ...string) ([]byte, error) {
	base := []string{
		"--args-only",
		"--file", ld.file,
		"--date-format", "%Y-%m-%d",
		"--unround",
	}
	base = append(base, ld.args...)
	base = append(base, args...)

	cmd := exec.CommandContext(ctx, ld.binary, base...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("ledger: %s", strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("ledger: %w", err)
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("ledger: %s", strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// runAt invokes ledger with reporting cut off the day after date, so
// transactions on the date itself are included.
func (ld *Loader) runAt(ctx context.Context, date time.Time, args ...string) ([]byte, error) {
	end := date.AddDate(0, 0, 1).Format("2006-01-02")
	return ld.run(ctx, append([]string{"--end", end}, args...)...)
}

// newReader wraps ledger's CSV dialect: fields are double-quoted with
// embedded quotes backslash-escaped, which encoding/csv does not speak, so
// escapes are rewritten to RFC 4180 doubled quotes first.
func newReader(output []byte) *csv.Reader {
	output = bytes.ReplaceAll(output, []byte(`\"`), []byte(`""`))
	r := csv.NewReader(bytes.NewReader(output))
	r.FieldsPerRecord = -1
	return r
}

// loadPrices loads the full price db into the ledger's price history.
func (ld *Loader) loadPrices(ctx context.Context, l *ledger.Ledger) error {
	output, err := ld.run(ctx, "prices", "--prices-format", priceFormat)
	if err != nil {
		return err
	}

	r := newReader(output)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing price db: %w", err)
		}
		if len(record) != 3 {
			return fmt.Errorf("parsing price db: expected 3 fields, got %d", len(record))
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			return fmt.Errorf("parsing price db date %q: %w", record[0], err)
		}
		price, err := ParseAmount(record[2])
		if err != nil {
			return fmt.Errorf("parsing price db: %w", err)
		}

		l.Prices.Add(date, strings.Trim(record[1], `"`), price)
	}

	return nil
}

// loadTransactions loads all transactions dated on or before date.
//
// Rows sharing a transaction id with the immediately preceding row continue
// the same transaction. When a transaction id repeats non-contiguously
// (ledger reuses ids across included files), a uuid is derived from the id,
// date and payee so every transaction stays addressable.
func (ld *Loader) loadTransactions(ctx context.Context, l *ledger.Ledger, date time.Time) error {
	output, err := ld.runAt(ctx, date, "csv", "--csv-format", transactionFormat)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var current *ledger.Transaction

	r := newReader(output)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parsing transactions: %w", err)
		}
		if len(record) != 9 {
			return fmt.Errorf("parsing transactions: expected 9 fields, got %d", len(record))
		}

		id, dateStr, code, payee := record[0], record[1], record[2], record[3]
		accountName, amountStr := record[4], record[5]
		comment, stateStr, note := record[6], record[7], record[8]

		if current == nil || id != current.ID {
			txnDate, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("parsing transaction date %q: %w", dateStr, err)
			}

			uuid := id
			if seen[id] {
				digest := sha256.New()
				digest.Write([]byte(id))
				digest.Write([]byte(dateStr))
				digest.Write([]byte(payee))
				uuid = hex.EncodeToString(digest.Sum(nil))
			}
			seen[uuid] = true

			current = ledger.NewTransaction(txnDate, payee)
			current.ID = id
			current.UUID = uuid
			current.Code = code
			current.Metadata = parseMetadata(note)
			l.AddTransaction(current)
		}

		amount, err := ParseAmount(amountStr)
		if err != nil {
			return fmt.Errorf("parsing posting amount: %w", err)
		}
		l.RegisterCommodity(amount.Commodity)

		account, err := l.Account(accountName)
		if err != nil {
			return err
		}

		posting := current.AddPosting(account, amount)
		posting.Comment = parseComment(comment)
		posting.State, err = parseState(stateStr)
		if err != nil {
			return err
		}
	}

	return nil
}

// parseComment strips the comment delimiter and surrounding whitespace.
func parseComment(s string) string {
	if idx := strings.Index(s, ";"); idx >= 0 {
		s = s[idx+1:]
	}
	return strings.TrimSpace(s)
}

// parseState maps ledger's numeric clearing state.
func parseState(s string) (ledger.PostingState, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 2 {
		return ledger.Uncleared, fmt.Errorf("invalid posting state %q", s)
	}
	return ledger.PostingState(n), nil
}

// parseMetadata extracts "Key: Value" lines from a transaction note.
func parseMetadata(note string) map[string]string {
	var metadata map[string]string
	for _, line := range strings.Split(note, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata[key] = strings.TrimSpace(value)
	}
	return metadata
}

// FinancialYear returns the start of the financial year containing date,
// using the 1 July convention.
func FinancialYear(date time.Time) time.Time {
	pstart := time.Date(date.Year(), time.July, 1, 0, 0, 0, 0, date.Location())
	if pstart.After(date) {
		pstart = pstart.AddDate(-1, 0, 0)
	}
	return pstart
}
