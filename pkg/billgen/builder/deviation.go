package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Deviation Statement column layout.
const (
	devColSerial = iota + 1
	devColDesc
	devColUnit
	devColRate
	devColOrderQty
	devColOrderAmt
	devColExecQty
	devColExecAmt
	devColExcessQty
	devColExcessAmt
	devColSavingQty
	devColSavingAmt
	devColPercent
)

// buildDeviation writes the deviation statement comparing ordered against
// executed quantities per item.
func buildDeviation(f *excelize.File, st *styleSet, bill *models.BillData, sum models.Summary, opts Options) error {
	w := &sheetWriter{f: f, sheet: DeviationSheet}

	w.width(devColSerial, 6)
	w.width(devColDesc, 40)
	w.width(devColUnit, 8)
	for col := devColRate; col <= devColPercent; col++ {
		w.width(col, 12)
	}

	w.merge(devColSerial, 1, devColPercent, 1)
	w.set(devColSerial, 1, "DEVIATION STATEMENT")
	w.merge(devColSerial, 2, devColPercent, 2)
	w.set(devColSerial, 2, "Name of Work: "+bill.Title.NameOfWork)
	w.style(devColSerial, 1, devColPercent, 1, st.title)

	headerRow := 4
	headers := []string{
		"S.No", "Item of Work", "Unit", "Rate",
		"W.O. Qty", "W.O. Amount", "Executed Qty", "Executed Amount",
		"Excess Qty", "Excess Amount", "Saving Qty", "Saving Amount", "Deviation %",
	}
	for i, h := range headers {
		w.set(i+1, headerRow, h)
	}
	w.style(devColSerial, headerRow, devColPercent, headerRow, st.header)

	firstItem := headerRow + 1
	row := firstItem
	for i, dev := range sum.Deviations {
		item := dev.Item
		w.set(devColSerial, row, i+1)
		w.set(devColDesc, row, item.Description)
		w.set(devColUnit, row, item.Unit)
		w.set(devColRate, row, item.Rate)
		w.set(devColOrderQty, row, item.Quantity)
		w.set(devColOrderAmt, row, item.Amount())
		w.set(devColExecQty, row, item.QuantityUpto)
		w.set(devColExecAmt, row, item.AmountUpto())
		w.set(devColExcessQty, row, dev.ExcessQty)
		w.set(devColExcessAmt, row, dev.ExcessAmount)
		w.set(devColSavingQty, row, dev.SavingQty)
		w.set(devColSavingAmt, row, dev.SavingAmount)
		w.set(devColPercent, row, dev.DeviationPercent)

		if opts.IncludeFormulas {
			w.formula(devColOrderAmt, row,
				fmt.Sprintf("ROUND(%s*%s,2)", cellRef(devColRate, row), cellRef(devColOrderQty, row)))
			w.formula(devColExecAmt, row,
				fmt.Sprintf("ROUND(%s*%s,2)", cellRef(devColRate, row), cellRef(devColExecQty, row)))
		}
		row++
	}
	lastItem := row - 1

	totalRow := row
	w.set(devColDesc, totalRow, "Total")
	w.set(devColOrderAmt, totalRow, sum.WorkOrderTotal)
	w.set(devColExecAmt, totalRow, sum.ExecutedTotal)
	if opts.IncludeFormulas && lastItem >= firstItem {
		for _, col := range []int{devColOrderAmt, devColExecAmt, devColExcessAmt, devColSavingAmt} {
			w.formula(col, totalRow, fmt.Sprintf("SUM(%s:%s)",
				cellRef(col, firstItem), cellRef(col, lastItem)))
		}
	}

	remarkRow := totalRow + 2
	w.merge(devColSerial, remarkRow, devColPercent, remarkRow)
	w.set(devColSerial, remarkRow, deviationRemark(sum, opts.DeviationLimitPercent))
	w.style(devColSerial, remarkRow, devColPercent, remarkRow, st.words)

	if lastItem >= firstItem {
		w.style(devColSerial, firstItem, devColUnit, totalRow, st.text)
		w.style(devColRate, firstItem, devColPercent, lastItem, st.money)
	}
	w.style(devColOrderAmt, totalRow, devColSavingAmt, totalRow, st.total)

	w.printArea(devColPercent, remarkRow)

	return w.err
}

func deviationRemark(sum models.Summary, limit float64) string {
	if limit > 0 && (sum.OverallDeviationPercent > limit || sum.OverallDeviationPercent < -limit) {
		return fmt.Sprintf(
			"Overall deviation is %.2f%%, beyond the permissible %.2f%%. Sanction of the competent authority is required.",
			sum.OverallDeviationPercent, limit)
	}
	return fmt.Sprintf("Overall deviation is %.2f%%, within the permissible limit.",
		sum.OverallDeviationPercent)
}
