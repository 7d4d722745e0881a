// Package scrutiny runs compliance checks on a contract bill.
package scrutiny

import (
	"fmt"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Severity classifies a scrutiny finding.
type Severity string

const (
	// SeverityInfo marks an observation that needs no action.
	SeverityInfo Severity = "info"
	// SeverityWarning marks an irregularity that should be explained.
	SeverityWarning Severity = "warning"
	// SeverityError marks a defect that blocks passing the bill.
	SeverityError Severity = "error"
)

// Finding is a single scrutiny observation.
type Finding struct {
	// Severity is the finding severity.
	Severity Severity `json:"severity"`
	// Code identifies the check that produced the finding.
	Code string `json:"code"`
	// Message is the human-readable finding text.
	Message string `json:"message"`
}

// Options configures the scrutiny checks.
type Options struct {
	// DeviationLimitPercent is the permissible overall deviation.
	DeviationLimitPercent float64
	// PremiumLimitPercent flags tenders with premium beyond this bound.
	PremiumLimitPercent float64
	// ItemExcessLimitPercent flags items executed beyond this percentage
	// of the ordered quantity.
	ItemExcessLimitPercent float64
}

// DefaultOptions returns the scrutiny bounds used for works contracts.
func DefaultOptions() Options {
	return Options{
		DeviationLimitPercent:  5,
		PremiumLimitPercent:    10,
		ItemExcessLimitPercent: 25,
	}
}

// Check runs all scrutiny checks and returns the findings in a stable order.
func Check(bill *models.BillData, sum models.Summary, opts Options) []Finding {
	var findings []Finding
	add := func(severity Severity, code, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Severity: severity,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	t := bill.Title

	if t.AgreementNo == "" {
		add(SeverityError, "missing-agreement", "agreement number is missing from the title sheet")
	}
	if t.Contractor == "" {
		add(SeverityWarning, "missing-contractor", "contractor name is missing from the title sheet")
	}

	if !t.Commencement.IsZero() && !t.StipulatedCompletion.IsZero() &&
		t.StipulatedCompletion.Before(t.Commencement) {
		add(SeverityError, "date-order",
			"stipulated completion (%s) precedes commencement (%s)",
			t.StipulatedCompletion.Format("02-01-2006"), t.Commencement.Format("02-01-2006"))
	}
	if t.FinalBill && t.ActualCompletion.IsZero() {
		add(SeverityWarning, "missing-completion",
			"final bill without an actual date of completion")
	}

	if opts.PremiumLimitPercent > 0 && t.PremiumPercent > opts.PremiumLimitPercent {
		add(SeverityWarning, "premium-bound",
			"tender premium %.2f%% exceeds the scrutiny bound of %.2f%%",
			t.PremiumPercent, opts.PremiumLimitPercent)
	}

	if opts.DeviationLimitPercent > 0 &&
		(sum.OverallDeviationPercent > opts.DeviationLimitPercent ||
			sum.OverallDeviationPercent < -opts.DeviationLimitPercent) {
		add(SeverityError, "deviation-limit",
			"overall deviation %.2f%% exceeds the permissible %.2f%%",
			sum.OverallDeviationPercent, opts.DeviationLimitPercent)
	}

	for _, dev := range sum.Deviations {
		item := dev.Item
		if item.Quantity <= 0 && item.QuantityUpto > 0 {
			add(SeverityError, "unordered-quantity",
				"item %s has measured quantity %.3f against a nil work order quantity",
				item.ItemNo, item.QuantityUpto)
			continue
		}
		if opts.ItemExcessLimitPercent > 0 && dev.DeviationPercent > opts.ItemExcessLimitPercent {
			add(SeverityWarning, "item-excess",
				"item %s executed %.2f%% beyond the ordered quantity",
				item.ItemNo, dev.DeviationPercent)
		}
		if item.Rate <= 0 {
			add(SeverityError, "nil-rate", "item %s carries no rate", item.ItemNo)
		}
	}

	for _, extra := range bill.Extras {
		if extra.ApprovalRef == "" {
			add(SeverityWarning, "extra-approval",
				"extra item %s has no approval reference", extra.ItemNo)
		}
	}

	if sum.NetPayable < 0 {
		add(SeverityError, "negative-payable",
			"net payable %.2f is negative; recoveries exceed the bill amount", sum.NetPayable)
	}

	if len(findings) == 0 {
		add(SeverityInfo, "clean", "no scrutiny observations; the bill may be passed")
	}

	return findings
}

// HasBlocking reports whether any finding carries error severity.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
