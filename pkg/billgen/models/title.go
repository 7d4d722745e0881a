// Package models defines data structures for contract bill generation.
package models

import (
	"fmt"
	"time"
)

// PremiumDirection indicates whether the tender premium is charged above or
// below the work order rates.
type PremiumDirection string

const (
	// PremiumAbove adds the premium on top of the work value.
	PremiumAbove PremiumDirection = "above"
	// PremiumBelow subtracts the premium from the work value.
	PremiumBelow PremiumDirection = "below"
)

// TitleInfo holds the contract metadata read from the Title sheet.
type TitleInfo struct {
	// NameOfWork is the sanctioned work description.
	NameOfWork string `json:"name_of_work"`
	// AgreementNo is the contract agreement reference.
	AgreementNo string `json:"agreement_no"`
	// Contractor is the name of the contractor.
	Contractor string `json:"contractor"`
	// Firm is the name of the contracting firm (optional).
	Firm string `json:"firm,omitempty"`
	// WorkOrderAmount is the sanctioned work order amount in rupees.
	WorkOrderAmount float64 `json:"work_order_amount"`
	// PremiumPercent is the tender premium percentage.
	PremiumPercent float64 `json:"premium_percent"`
	// PremiumDirection is above or below.
	PremiumDirection PremiumDirection `json:"premium_direction"`
	// Commencement is the date of commencement of work.
	Commencement time.Time `json:"commencement"`
	// StipulatedCompletion is the contractual completion date.
	StipulatedCompletion time.Time `json:"stipulated_completion"`
	// ActualCompletion is the actual completion date (zero for running bills).
	ActualCompletion time.Time `json:"actual_completion,omitempty"`
	// MeasurementBookNo is the measurement book reference.
	MeasurementBookNo string `json:"measurement_book_no,omitempty"`
	// BillNumber is the running bill serial (1-based).
	BillNumber int `json:"bill_number"`
	// FinalBill is true when this is the final bill.
	FinalBill bool `json:"final_bill"`
	// PreviousBillAmount is the gross amount paid in the previous bill.
	PreviousBillAmount float64 `json:"previous_bill_amount"`
}

// BillType returns the display name of the bill, e.g. "First & Final Bill"
// or "Third Running Bill".
func (t TitleInfo) BillType() string {
	if t.FinalBill {
		if t.BillNumber <= 1 {
			return "First & Final Bill"
		}
		return ordinal(t.BillNumber) + " & Final Bill"
	}
	return ordinal(t.BillNumber) + " Running Bill"
}

// DelayDays returns the number of days the work ran past the stipulated
// completion date. Zero when there is no delay or the work is not complete.
func (t TitleInfo) DelayDays() int {
	if t.ActualCompletion.IsZero() || t.StipulatedCompletion.IsZero() {
		return 0
	}
	if !t.ActualCompletion.After(t.StipulatedCompletion) {
		return 0
	}
	return int(t.ActualCompletion.Sub(t.StipulatedCompletion).Hours() / 24)
}

var ordinals = []string{
	"", "First", "Second", "Third", "Fourth", "Fifth",
	"Sixth", "Seventh", "Eighth", "Ninth", "Tenth",
}

func ordinal(n int) string {
	if n > 0 && n < len(ordinals) {
		return ordinals[n]
	}
	return fmt.Sprintf("%dth", n)
}
