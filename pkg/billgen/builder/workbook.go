// Package builder writes billing documents into an output workbook.
package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Output sheet names.
const (
	FirstPageSheet  = "First Page"
	DeviationSheet  = "Deviation Statement"
	ExtraSheet      = "Extra Items"
	MemorandumSheet = "Memorandum of Payment"
	NoteSheet       = "Note Sheet"
)

// Options configures output workbook construction.
type Options struct {
	// IncludeFormulas writes spreadsheet formulas alongside computed values.
	IncludeFormulas bool
	// DeviationLimitPercent is the permissible overall deviation, quoted in
	// the deviation statement remark.
	DeviationLimitPercent float64
	// Notes are the note sheet lines, in order.
	Notes []string
}

// styleSet holds the shared cell styles of an output workbook.
type styleSet struct {
	title  int
	header int
	text   int
	money  int
	qty    int
	total  int
	words  int
}

func newStyles(f *excelize.File) (*styleSet, error) {
	moneyFmt := "#,##0.00"
	qtyFmt := "#,##0.000"

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	s := &styleSet{}
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	s.text, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    border,
	})
	if err != nil {
		return nil, err
	}

	s.money, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       border,
	})
	if err != nil {
		return nil, err
	}

	s.qty, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &qtyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       border,
	})
	if err != nil {
		return nil, err
	}

	s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &moneyFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "top"},
		Border:       border,
	})
	if err != nil {
		return nil, err
	}

	s.words, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// sheetWriter accumulates cell writes on one sheet, keeping the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) formula(col, row int, formula string) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellFormula(w.sheet, cell, formula)
}

func (w *sheetWriter) style(c1, r1, c2, r2, styleID int) {
	if w.err != nil {
		return
	}
	top, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		w.err = err
		return
	}
	bottom, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, top, bottom, styleID)
}

func (w *sheetWriter) merge(c1, r1, c2, r2 int) {
	if w.err != nil {
		return
	}
	top, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		w.err = err
		return
	}
	bottom, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.MergeCell(w.sheet, top, bottom)
}

func (w *sheetWriter) width(col int, width float64) {
	if w.err != nil {
		return
	}
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetColWidth(w.sheet, name, name, width)
}

// printArea marks A1 through the given bottom-right cell as the sheet's
// print area so the document prints as laid out.
func (w *sheetWriter) printArea(lastCol, lastRow int) {
	if w.err != nil {
		return
	}
	colName, err := excelize.ColumnNumberToName(lastCol)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$%s$%d", w.sheet, colName, lastRow),
		Scope:    w.sheet,
	})
}

// cellRef returns an A1-style reference, panicking only on impossible
// coordinates (writer paths validate coordinates before use).
func cellRef(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(err)
	}
	return cell
}
