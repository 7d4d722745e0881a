package billgen

import "github.com/worksbill/billgen-go/pkg/billgen/models"

// Summarize derives all bill figures from parsed data.
func Summarize(bill *models.BillData, opts Options) models.Summary {
	sum := models.Summary{
		WorkOrderTotal: bill.WorkOrderTotal(),
		ExecutedTotal:  bill.ExecutedTotal(),
		ExtraTotal:     bill.ExtraTotal(),
		DelayDays:      bill.Title.DelayDays(),
	}

	premium := models.RoundRupees(sum.ExecutedTotal * bill.Title.PremiumPercent / 100)
	if bill.Title.PremiumDirection == models.PremiumBelow {
		premium = -premium
	}
	sum.Premium = premium

	sum.GrossPayable = models.RoundRupees(sum.ExecutedTotal + sum.Premium + sum.ExtraTotal)
	sum.SincePrevious = models.RoundRupees(sum.GrossPayable - bill.Title.PreviousBillAmount)

	sum.Deviations = deviations(bill)
	if sum.WorkOrderTotal > 0 {
		sum.OverallDeviationPercent = models.RoundRupees(
			(sum.ExecutedTotal - sum.WorkOrderTotal) / sum.WorkOrderTotal * 100)
	}

	sum.Deductions = deductions(bill, sum, opts)
	sum.NetPayable = models.RoundRupees(sum.SincePrevious - sum.Deductions.Total())

	return sum
}

// deductions computes statutory recoveries on the payment of this bill.
// Security deposit, income tax and GST are recovered on the amount payable
// since the previous bill; liquidated damages are charged on the work order
// amount of a delayed final bill.
func deductions(bill *models.BillData, sum models.Summary, opts Options) models.Deductions {
	base := sum.SincePrevious
	d := models.Deductions{
		SecurityDeposit: models.RoundWhole(base * opts.SecurityDepositPercent / 100),
		IncomeTax:       models.RoundWhole(base * opts.IncomeTaxPercent / 100),
		GST:             models.RoundWhole(base * opts.GSTPercent / 100),
	}

	if bill.Title.FinalBill && sum.DelayDays > 0 {
		rate := opts.LDPerDayPercent * float64(sum.DelayDays)
		if rate > opts.LDCapPercent {
			rate = opts.LDCapPercent
		}
		d.LiquidatedDamages = models.RoundWhole(bill.Title.WorkOrderAmount * rate / 100)
	}

	return d
}

func deviations(bill *models.BillData) []models.DeviationRow {
	rows := make([]models.DeviationRow, 0, len(bill.Items))
	for _, it := range bill.Items {
		row := models.DeviationRow{Item: it}

		switch {
		case it.QuantityUpto > it.Quantity:
			row.ExcessQty = it.QuantityUpto - it.Quantity
			row.ExcessAmount = models.RoundRupees(row.ExcessQty * it.Rate)
		case it.QuantityUpto < it.Quantity:
			row.SavingQty = it.Quantity - it.QuantityUpto
			row.SavingAmount = models.RoundRupees(row.SavingQty * it.Rate)
		}

		if it.Quantity > 0 {
			row.DeviationPercent = models.RoundRupees(
				(it.QuantityUpto - it.Quantity) / it.Quantity * 100)
		}

		rows = append(rows, row)
	}
	return rows
}
