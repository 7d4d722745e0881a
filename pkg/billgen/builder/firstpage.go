package builder

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// First Page column layout.
const (
	fpColSerial = iota + 1
	fpColDesc
	fpColUnit
	fpColRate
	fpColQtyUpto
	fpColAmtUpto
	fpColQtySince
	fpColAmtSince
)

// buildFirstPage writes the bill abstract: one row per work order item with
// executed quantities and amounts, followed by premium, extra items and the
// gross payable.
func buildFirstPage(f *excelize.File, st *styleSet, bill *models.BillData, sum models.Summary, opts Options) error {
	w := &sheetWriter{f: f, sheet: FirstPageSheet}

	w.width(fpColSerial, 6)
	w.width(fpColDesc, 45)
	w.width(fpColUnit, 8)
	for col := fpColRate; col <= fpColAmtSince; col++ {
		w.width(col, 13)
	}

	w.merge(fpColSerial, 1, fpColAmtSince, 1)
	w.set(fpColSerial, 1, strings.ToUpper(bill.Title.BillType()))
	w.merge(fpColSerial, 2, fpColAmtSince, 2)
	w.set(fpColSerial, 2, "Name of Work: "+bill.Title.NameOfWork)
	w.merge(fpColSerial, 3, fpColAmtSince, 3)
	w.set(fpColSerial, 3, fmt.Sprintf("Agreement No: %s    Contractor: %s",
		bill.Title.AgreementNo, bill.Title.Contractor))
	w.style(fpColSerial, 1, fpColAmtSince, 1, st.title)

	headerRow := 5
	headers := []string{
		"S.No", "Item of Work", "Unit", "Rate",
		"Qty Upto Date", "Amount Upto Date", "Qty Since Previous", "Amount Since Previous",
	}
	for i, h := range headers {
		w.set(i+1, headerRow, h)
	}
	w.style(fpColSerial, headerRow, fpColAmtSince, headerRow, st.header)

	firstItem := headerRow + 1
	row := firstItem
	for i, item := range bill.Items {
		w.set(fpColSerial, row, i+1)
		w.set(fpColDesc, row, item.Description)
		w.set(fpColUnit, row, item.Unit)
		w.set(fpColRate, row, item.Rate)
		w.set(fpColQtyUpto, row, item.QuantityUpto)
		w.set(fpColAmtUpto, row, item.AmountUpto())
		w.set(fpColQtySince, row, item.QuantityUpto-item.QuantityPrevious)
		w.set(fpColAmtSince, row, item.AmountSince())

		if opts.IncludeFormulas {
			w.formula(fpColAmtUpto, row,
				fmt.Sprintf("ROUND(%s*%s,2)", cellRef(fpColRate, row), cellRef(fpColQtyUpto, row)))
			w.formula(fpColAmtSince, row,
				fmt.Sprintf("ROUND(%s*%s,2)", cellRef(fpColRate, row), cellRef(fpColQtySince, row)))
		}
		row++
	}
	lastItem := row - 1

	totalRow := row
	w.set(fpColDesc, totalRow, "Total of Work Order Items")
	w.set(fpColAmtUpto, totalRow, sum.ExecutedTotal)
	if opts.IncludeFormulas && lastItem >= firstItem {
		w.formula(fpColAmtUpto, totalRow, fmt.Sprintf("SUM(%s:%s)",
			cellRef(fpColAmtUpto, firstItem), cellRef(fpColAmtUpto, lastItem)))
		w.formula(fpColAmtSince, totalRow, fmt.Sprintf("SUM(%s:%s)",
			cellRef(fpColAmtSince, firstItem), cellRef(fpColAmtSince, lastItem)))
	}

	premiumRow := totalRow + 1
	verb := "Add"
	if bill.Title.PremiumDirection == models.PremiumBelow {
		verb = "Deduct"
	}
	w.set(fpColDesc, premiumRow, fmt.Sprintf("%s Tender Premium @ %.2f%% (%s)",
		verb, bill.Title.PremiumPercent, bill.Title.PremiumDirection))
	w.set(fpColAmtUpto, premiumRow, sum.Premium)
	if opts.IncludeFormulas {
		w.formula(fpColAmtUpto, premiumRow, fmt.Sprintf("ROUND(%s*%s,2)",
			cellRef(fpColAmtUpto, totalRow), premiumFactor(bill.Title)))
	}

	extraRow := premiumRow + 1
	w.set(fpColDesc, extraRow, "Add Extra Items (as per statement)")
	w.set(fpColAmtUpto, extraRow, sum.ExtraTotal)

	grossRow := extraRow + 1
	w.set(fpColDesc, grossRow, "Gross Amount Payable")
	w.set(fpColAmtUpto, grossRow, sum.GrossPayable)
	if opts.IncludeFormulas {
		w.formula(fpColAmtUpto, grossRow, fmt.Sprintf("ROUND(%s+%s+%s,2)",
			cellRef(fpColAmtUpto, totalRow),
			cellRef(fpColAmtUpto, premiumRow),
			cellRef(fpColAmtUpto, extraRow)))
	}

	wordsRow := grossRow + 2
	w.merge(fpColSerial, wordsRow, fpColAmtSince, wordsRow)
	w.set(fpColSerial, wordsRow, AmountInWords(sum.GrossPayable))
	w.style(fpColSerial, wordsRow, fpColAmtSince, wordsRow, st.words)

	if lastItem >= firstItem {
		w.style(fpColSerial, firstItem, fpColDesc, grossRow, st.text)
		w.style(fpColUnit, firstItem, fpColUnit, lastItem, st.text)
		w.style(fpColRate, firstItem, fpColRate, lastItem, st.money)
		w.style(fpColQtyUpto, firstItem, fpColQtyUpto, lastItem, st.qty)
		w.style(fpColQtySince, firstItem, fpColQtySince, lastItem, st.qty)
		w.style(fpColAmtUpto, firstItem, fpColAmtUpto, lastItem, st.money)
		w.style(fpColAmtSince, firstItem, fpColAmtSince, lastItem, st.money)
	}
	w.style(fpColAmtUpto, totalRow, fpColAmtSince, totalRow, st.total)
	w.style(fpColAmtUpto, premiumRow, fpColAmtUpto, extraRow, st.money)
	w.style(fpColAmtUpto, grossRow, fpColAmtUpto, grossRow, st.total)

	w.printArea(fpColAmtSince, wordsRow)

	return w.err
}

// premiumFactor renders the premium multiplier for a formula, signed by the
// premium direction.
func premiumFactor(t models.TitleInfo) string {
	factor := t.PremiumPercent / 100
	if t.PremiumDirection == models.PremiumBelow {
		factor = -factor
	}
	return fmt.Sprintf("%g", factor)
}
