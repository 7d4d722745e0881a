package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// buildMemorandum writes the memorandum of payment: gross value of work,
// recoveries, and the net cheque amount with its spelling in words.
func buildMemorandum(f *excelize.File, st *styleSet, bill *models.BillData, sum models.Summary, opts Options) error {
	w := &sheetWriter{f: f, sheet: MemorandumSheet}

	const labelCol, amountCol = 1, 3

	w.width(labelCol, 60)
	w.width(2, 4)
	w.width(amountCol, 16)

	w.merge(labelCol, 1, amountCol, 1)
	w.set(labelCol, 1, "MEMORANDUM OF PAYMENT")
	w.merge(labelCol, 2, amountCol, 2)
	w.set(labelCol, 2, fmt.Sprintf("%s — Agreement No: %s", bill.Title.BillType(), bill.Title.AgreementNo))
	w.style(labelCol, 1, amountCol, 1, st.title)

	type line struct {
		label  string
		amount float64
	}

	lines := []line{
		{"1. Total value of work done up to date (incl. premium and extra items)", sum.GrossPayable},
		{"2. Deduct: amount of previous bill(s)", bill.Title.PreviousBillAmount},
		{"3. Payment now to be made (1 - 2)", sum.SincePrevious},
		{"4. Deduct: Security Deposit", sum.Deductions.SecurityDeposit},
		{"5. Deduct: Income Tax", sum.Deductions.IncomeTax},
		{"6. Deduct: GST TDS", sum.Deductions.GST},
	}
	if sum.Deductions.LiquidatedDamages > 0 {
		lines = append(lines, line{
			fmt.Sprintf("7. Deduct: Liquidated Damages (%d days delay)", sum.DelayDays),
			sum.Deductions.LiquidatedDamages,
		})
	}

	row := 4
	firstLine := row
	for _, l := range lines {
		w.merge(labelCol, row, 2, row)
		w.set(labelCol, row, l.label)
		w.set(amountCol, row, l.amount)
		row++
	}
	lastLine := row - 1

	netRow := row + 1
	w.merge(labelCol, netRow, 2, netRow)
	w.set(labelCol, netRow, "Net amount payable by cheque")
	w.set(amountCol, netRow, sum.NetPayable)
	if opts.IncludeFormulas {
		// net = payment now to be made - all deductions below it
		w.formula(amountCol, netRow, fmt.Sprintf("%s-SUM(%s:%s)",
			cellRef(amountCol, firstLine+2),
			cellRef(amountCol, firstLine+3),
			cellRef(amountCol, lastLine)))
	}

	wordsRow := netRow + 2
	w.merge(labelCol, wordsRow, amountCol, wordsRow)
	w.set(labelCol, wordsRow, "Pay "+AmountInWords(sum.NetPayable))
	w.style(labelCol, wordsRow, amountCol, wordsRow, st.words)

	signRow := wordsRow + 3
	w.set(labelCol, signRow, "Prepared by: Divisional Accountant")
	w.set(amountCol, signRow, "Executive Engineer")

	w.style(labelCol, firstLine, labelCol, netRow, st.text)
	w.style(amountCol, firstLine, amountCol, lastLine, st.money)
	w.style(amountCol, netRow, amountCol, netRow, st.total)

	w.printArea(amountCol, signRow)

	return w.err
}
