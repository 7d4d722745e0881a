package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Extra Items column layout.
const (
	exColSerial = iota + 1
	exColDesc
	exColUnit
	exColQty
	exColRate
	exColAmount
	exColApproval
)

// buildExtraItems writes the statement of items executed outside the work
// order. The sheet is written even when empty so the document set is stable.
func buildExtraItems(f *excelize.File, st *styleSet, bill *models.BillData, sum models.Summary, opts Options) error {
	w := &sheetWriter{f: f, sheet: ExtraSheet}

	w.width(exColSerial, 6)
	w.width(exColDesc, 45)
	w.width(exColUnit, 8)
	w.width(exColQty, 12)
	w.width(exColRate, 12)
	w.width(exColAmount, 14)
	w.width(exColApproval, 20)

	w.merge(exColSerial, 1, exColApproval, 1)
	w.set(exColSerial, 1, "STATEMENT OF EXTRA ITEMS")
	w.merge(exColSerial, 2, exColApproval, 2)
	w.set(exColSerial, 2, "Name of Work: "+bill.Title.NameOfWork)
	w.style(exColSerial, 1, exColApproval, 1, st.title)

	headerRow := 4
	headers := []string{"S.No", "Item of Work", "Unit", "Quantity", "Rate", "Amount", "Approval Ref"}
	for i, h := range headers {
		w.set(i+1, headerRow, h)
	}
	w.style(exColSerial, headerRow, exColApproval, headerRow, st.header)

	firstItem := headerRow + 1
	row := firstItem
	for i, item := range bill.Extras {
		w.set(exColSerial, row, i+1)
		w.set(exColDesc, row, item.Description)
		w.set(exColUnit, row, item.Unit)
		w.set(exColQty, row, item.Quantity)
		w.set(exColRate, row, item.Rate)
		w.set(exColAmount, row, item.Amount())
		w.set(exColApproval, row, item.ApprovalRef)

		if opts.IncludeFormulas {
			w.formula(exColAmount, row,
				fmt.Sprintf("ROUND(%s*%s,2)", cellRef(exColQty, row), cellRef(exColRate, row)))
		}
		row++
	}
	lastItem := row - 1

	totalRow := row
	if len(bill.Extras) == 0 {
		w.merge(exColSerial, totalRow, exColApproval, totalRow)
		w.set(exColSerial, totalRow, "NIL")
		w.style(exColSerial, totalRow, exColApproval, totalRow, st.text)
	} else {
		w.set(exColDesc, totalRow, "Total of Extra Items")
		w.set(exColAmount, totalRow, sum.ExtraTotal)
		if opts.IncludeFormulas {
			w.formula(exColAmount, totalRow, fmt.Sprintf("SUM(%s:%s)",
				cellRef(exColAmount, firstItem), cellRef(exColAmount, lastItem)))
		}
		w.style(exColSerial, firstItem, exColUnit, lastItem, st.text)
		w.style(exColQty, firstItem, exColQty, lastItem, st.qty)
		w.style(exColRate, firstItem, exColAmount, lastItem, st.money)
		w.style(exColApproval, firstItem, exColApproval, lastItem, st.text)
		w.style(exColAmount, totalRow, exColAmount, totalRow, st.total)
	}

	w.printArea(exColApproval, totalRow)

	return w.err
}
