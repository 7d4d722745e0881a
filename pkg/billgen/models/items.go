package models

// WorkOrderItem represents a single item of the sanctioned work order.
type WorkOrderItem struct {
	// ItemNo is the item serial as printed in the work order.
	ItemNo string `json:"item_no"`
	// Description is the item description text.
	Description string `json:"description"`
	// Unit is the unit of measurement (e.g. Cum, Sqm, Kg).
	Unit string `json:"unit"`
	// Quantity is the ordered quantity.
	Quantity float64 `json:"quantity"`
	// Rate is the sanctioned unit rate in rupees.
	Rate float64 `json:"rate"`
}

// Amount returns the ordered amount (quantity x rate, rounded to paise).
func (i WorkOrderItem) Amount() float64 {
	return RoundRupees(i.Quantity * i.Rate)
}

// BillItem joins a work order item with its measured quantity up to date.
type BillItem struct {
	WorkOrderItem

	// QuantityUpto is the executed quantity up to and including this bill.
	QuantityUpto float64 `json:"quantity_upto"`
	// QuantityPrevious is the quantity paid in previous bills.
	QuantityPrevious float64 `json:"quantity_previous,omitempty"`
}

// AmountUpto returns the executed amount up to date.
func (i BillItem) AmountUpto() float64 {
	return RoundRupees(i.QuantityUpto * i.Rate)
}

// AmountSince returns the amount for quantity executed since the previous bill.
func (i BillItem) AmountSince() float64 {
	return RoundRupees((i.QuantityUpto - i.QuantityPrevious) * i.Rate)
}

// ExtraItem represents an item executed outside the work order.
type ExtraItem struct {
	// ItemNo is the extra item serial.
	ItemNo string `json:"item_no"`
	// Description is the item description text.
	Description string `json:"description"`
	// Unit is the unit of measurement.
	Unit string `json:"unit"`
	// Quantity is the executed quantity.
	Quantity float64 `json:"quantity"`
	// Rate is the approved unit rate in rupees.
	Rate float64 `json:"rate"`
	// ApprovalRef is the reference of the approval for the extra item.
	ApprovalRef string `json:"approval_ref,omitempty"`
}

// Amount returns the extra item amount (quantity x rate, rounded to paise).
func (i ExtraItem) Amount() float64 {
	return RoundRupees(i.Quantity * i.Rate)
}
