// Package report turns a division trace into something a person reads:
// a summary with polynomial notation and an arithmetic check, rendered
// as colored text, markdown or JSON. It also summarizes the stored
// history for the `history --stats` command.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// Summary is the reportable outcome of one division.
type Summary struct {
	Dividend      string   `json:"dividend"`
	Divisor       string   `json:"divisor"`
	Quotient      string   `json:"quotient"`
	Remainder     string   `json:"remainder"`
	DividendPoly  string   `json:"dividend_poly"`
	DivisorPoly   string   `json:"divisor_poly"`
	QuotientPoly  string   `json:"quotient_poly"`
	RemainderPoly string   `json:"remainder_poly"`
	StepCount     int      `json:"step_count"`
	Operations    int      `json:"operations"`
	Degenerate    bool     `json:"degenerate"`
	Verified      bool     `json:"verified"`
	GeneratedAt   string   `json:"generated_at"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Summarize builds the summary of t. Verified reports whether
// quotient·divisor + remainder reproduces the dividend.
func Summarize(t gf2.Trace) *Summary {
	q, r := t.QuotientBits(), t.Remainder()
	s := &Summary{
		Dividend:      t.Dividend.String(),
		Divisor:       t.Divisor.String(),
		Quotient:      q.String(),
		Remainder:     r.String(),
		DividendPoly:  Polynomial(t.Dividend),
		DivisorPoly:   Polynomial(t.Divisor),
		QuotientPoly:  Polynomial(q),
		RemainderPoly: Polynomial(r),
		StepCount:     t.Len(),
		Operations:    t.Operations(),
		Degenerate:    t.Degenerate,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}

	if t.Len() > 0 {
		s.Verified = gf2.Add(gf2.Multiply(q, t.Divisor), r).Equal(t.Dividend.TrimLeadingZeros())
	}

	if t.Degenerate {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"Division not carried out: divisor %q is a single bit or longer than the dividend. "+
				"The dividend is reported as the remainder.", s.Divisor))
	}
	if !s.Verified {
		s.Warnings = append(s.Warnings, "quotient·divisor + remainder does not reproduce the dividend")
	}
	return s
}

// Polynomial writes b in x-notation, highest power first:
// "1011" is "x^3 + x + 1". A zero value is "0".
func Polynomial(b gf2.Bits) string {
	var terms []string
	n := b.Len()
	for i, v := range b {
		if v == 0 {
			continue
		}
		switch p := n - 1 - i; p {
		case 0:
			terms = append(terms, "1")
		case 1:
			terms = append(terms, "x")
		default:
			terms = append(terms, fmt.Sprintf("x^%d", p))
		}
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// ──────────────────────────────────────────────────────────────
// History summary
// ──────────────────────────────────────────────────────────────

// HistoryReport summarizes the stored divisions.
type HistoryReport struct {
	GeneratedAt string                 `json:"generated_at"`
	Stats       *database.HistoryStats `json:"stats"`
	Recent      []*database.Division   `json:"recent"`
}

// Analyzer builds reports over a history store.
type Analyzer struct {
	store database.Store
}

// NewAnalyzer creates an analyzer backed by the given store.
func NewAnalyzer(store database.Store) *Analyzer {
	return &Analyzer{store: store}
}

// History gathers the aggregate statistics of the whole store and the
// divisions matching filter, newest first.
func (a *Analyzer) History(filter database.DivisionFilter) (*HistoryReport, error) {
	stats, err := a.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("gathering history stats: %w", err)
	}
	divs, err := a.store.QueryDivisions(filter)
	if err != nil {
		return nil, fmt.Errorf("listing recent divisions: %w", err)
	}
	return &HistoryReport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Stats:       stats,
		Recent:      divs,
	}, nil
}
