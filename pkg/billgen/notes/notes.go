// Package notes derives the office note sheet for a contract bill.
package notes

import (
	"fmt"

	"github.com/worksbill/billgen-go/pkg/billgen/builder"
	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Options configures note derivation.
type Options struct {
	// DeviationLimitPercent is the permissible overall deviation.
	DeviationLimitPercent float64
}

// Note is a single serial-numbered note sheet entry.
type Note struct {
	// Serial is the 1-based note number.
	Serial int `json:"serial"`
	// Text is the note body.
	Text string `json:"text"`
}

// ForBill derives the ordered note sheet entries from bill data and its
// summary. Notes follow the office convention: bill identity first, then
// progress, delay, deviation, extra items, recoveries, and the payment
// recommendation.
func ForBill(bill *models.BillData, sum models.Summary, opts Options) []Note {
	t := bill.Title

	var texts []string

	texts = append(texts, fmt.Sprintf(
		"The %s of work %q (Agreement No. %s) executed by %s is submitted for payment.",
		t.BillType(), t.NameOfWork, t.AgreementNo, t.Contractor))

	if !t.Commencement.IsZero() && !t.StipulatedCompletion.IsZero() {
		texts = append(texts, fmt.Sprintf(
			"The work commenced on %s with a stipulated date of completion of %s.",
			t.Commencement.Format("02-01-2006"), t.StipulatedCompletion.Format("02-01-2006")))
	}

	if t.WorkOrderAmount > 0 {
		progress := sum.ExecutedTotal / t.WorkOrderAmount * 100
		texts = append(texts, fmt.Sprintf(
			"Value of work done up to date is %s against the work order amount of %s (%.1f%% progress).",
			rupees(sum.ExecutedTotal), rupees(t.WorkOrderAmount), progress))
	}

	switch {
	case sum.DelayDays > 0 && t.FinalBill:
		texts = append(texts, fmt.Sprintf(
			"The work was completed %d days beyond the stipulated date. Liquidated damages of %s have been recovered in this bill.",
			sum.DelayDays, rupees(sum.Deductions.LiquidatedDamages)))
	case sum.DelayDays > 0:
		texts = append(texts, fmt.Sprintf(
			"The work is running %d days beyond the stipulated date of completion; time extension may be regularised before the final bill.",
			sum.DelayDays))
	}

	if opts.DeviationLimitPercent > 0 &&
		(sum.OverallDeviationPercent > opts.DeviationLimitPercent ||
			sum.OverallDeviationPercent < -opts.DeviationLimitPercent) {
		texts = append(texts, fmt.Sprintf(
			"Overall deviation of %.2f%% exceeds the permissible %.2f%%; the deviation statement requires sanction of the competent authority.",
			sum.OverallDeviationPercent, opts.DeviationLimitPercent))
	} else {
		texts = append(texts, fmt.Sprintf(
			"Overall deviation of %.2f%% is within the permissible limit.",
			sum.OverallDeviationPercent))
	}

	if len(bill.Extras) > 0 {
		texts = append(texts, fmt.Sprintf(
			"%d extra item(s) amounting to %s are included as per the statement of extra items.",
			len(bill.Extras), rupees(sum.ExtraTotal)))
	}

	d := sum.Deductions
	texts = append(texts, fmt.Sprintf(
		"Recoveries effected: Security Deposit %s, Income Tax %s, GST TDS %s; total %s.",
		rupees(d.SecurityDeposit), rupees(d.IncomeTax), rupees(d.GST), rupees(d.Total())))

	texts = append(texts, fmt.Sprintf(
		"Net amount payable to the contractor is %s (%s). The bill may kindly be passed for payment.",
		rupees(sum.NetPayable), builder.AmountInWords(sum.NetPayable)))

	notes := make([]Note, len(texts))
	for i, text := range texts {
		notes[i] = Note{Serial: i + 1, Text: text}
	}
	return notes
}

// Texts returns just the note bodies, in order.
func Texts(notes []Note) []string {
	texts := make([]string, len(notes))
	for i, n := range notes {
		texts[i] = n.Text
	}
	return texts
}

func rupees(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
