package builder

import (
	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// buildNoteSheet writes the serial-numbered office notes prepared for the
// bill. Note text comes from the notes rule set via Options.Notes.
func buildNoteSheet(f *excelize.File, st *styleSet, bill *models.BillData, opts Options) error {
	w := &sheetWriter{f: f, sheet: NoteSheet}

	const serialCol, textCol = 1, 2

	w.width(serialCol, 6)
	w.width(textCol, 90)

	w.merge(serialCol, 1, textCol, 1)
	w.set(serialCol, 1, "NOTE SHEET")
	w.merge(serialCol, 2, textCol, 2)
	w.set(serialCol, 2, "Name of Work: "+bill.Title.NameOfWork)
	w.style(serialCol, 1, textCol, 1, st.title)

	row := 4
	for i, note := range opts.Notes {
		w.set(serialCol, row, i+1)
		w.set(textCol, row, note)
		row++
	}
	lastRow := row - 1

	if len(opts.Notes) > 0 {
		w.style(serialCol, 4, textCol, lastRow, st.text)
	}

	signRow := lastRow + 3
	w.set(textCol, signRow, "Submitted for orders please.")

	w.printArea(textCol, signRow)

	return w.err
}
