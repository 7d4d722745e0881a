package models

import "math"

// RoundRupees rounds an amount to two decimal places (paise), half away
// from zero, matching spreadsheet ROUND semantics.
func RoundRupees(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundWhole rounds an amount to the nearest whole rupee, half away from
// zero. Statutory deductions are recovered in whole rupees.
func RoundWhole(v float64) float64 {
	return math.Round(v)
}

// BillData is the parsed content of an input workbook.
type BillData struct {
	// Title is the contract metadata.
	Title TitleInfo `json:"title"`
	// Items are the work order items joined with measured quantities.
	Items []BillItem `json:"items"`
	// Extras are items executed outside the work order.
	Extras []ExtraItem `json:"extras,omitempty"`
}

// WorkOrderTotal returns the total sanctioned amount of all items.
func (b *BillData) WorkOrderTotal() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.Amount()
	}
	return RoundRupees(total)
}

// ExecutedTotal returns the total executed amount up to date, before premium.
func (b *BillData) ExecutedTotal() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.AmountUpto()
	}
	return RoundRupees(total)
}

// ExtraTotal returns the total of extra items.
func (b *BillData) ExtraTotal() float64 {
	var total float64
	for _, it := range b.Extras {
		total += it.Amount()
	}
	return RoundRupees(total)
}

// Deductions holds the statutory recoveries applied to a bill.
type Deductions struct {
	// SecurityDeposit is the security deposit recovery.
	SecurityDeposit float64 `json:"security_deposit"`
	// IncomeTax is the income tax (TDS) recovery.
	IncomeTax float64 `json:"income_tax"`
	// GST is the GST TDS recovery.
	GST float64 `json:"gst"`
	// LiquidatedDamages is the compensation recovered for delay.
	LiquidatedDamages float64 `json:"liquidated_damages,omitempty"`
}

// Total returns the sum of all deductions.
func (d Deductions) Total() float64 {
	return RoundRupees(d.SecurityDeposit + d.IncomeTax + d.GST + d.LiquidatedDamages)
}

// DeviationRow compares ordered and executed figures for one item.
type DeviationRow struct {
	// Item is the underlying bill item.
	Item BillItem `json:"item"`
	// ExcessQty is the executed quantity beyond the ordered quantity.
	ExcessQty float64 `json:"excess_qty"`
	// ExcessAmount is the amount of the excess quantity.
	ExcessAmount float64 `json:"excess_amount"`
	// SavingQty is the ordered quantity left unexecuted.
	SavingQty float64 `json:"saving_qty"`
	// SavingAmount is the amount of the saved quantity.
	SavingAmount float64 `json:"saving_amount"`
	// DeviationPercent is the deviation of executed against ordered quantity.
	DeviationPercent float64 `json:"deviation_percent"`
}

// Summary holds all derived figures of a bill.
type Summary struct {
	// WorkOrderTotal is the total sanctioned amount.
	WorkOrderTotal float64 `json:"work_order_total"`
	// ExecutedTotal is the executed amount before premium.
	ExecutedTotal float64 `json:"executed_total"`
	// Premium is the tender premium amount (signed; negative when below).
	Premium float64 `json:"premium"`
	// ExtraTotal is the total of extra items.
	ExtraTotal float64 `json:"extra_total"`
	// GrossPayable is executed + premium + extras.
	GrossPayable float64 `json:"gross_payable"`
	// SincePrevious is the gross payable less the previous bill amount.
	SincePrevious float64 `json:"since_previous"`
	// Deductions are the statutory recoveries on this bill.
	Deductions Deductions `json:"deductions"`
	// NetPayable is the cheque amount after deductions.
	NetPayable float64 `json:"net_payable"`
	// Deviations compares ordered and executed figures per item.
	Deviations []DeviationRow `json:"deviations"`
	// OverallDeviationPercent is the deviation of the executed total
	// against the work order total.
	OverallDeviationPercent float64 `json:"overall_deviation_percent"`
	// DelayDays is the delay beyond the stipulated completion date.
	DelayDays int `json:"delay_days"`
}
