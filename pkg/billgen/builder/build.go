package builder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Build creates the output workbook with all billing document sheets.
// The caller owns the returned file and is responsible for closing it.
func Build(bill *models.BillData, sum models.Summary, opts Options) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", FirstPageSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming first sheet: %w", err)
	}
	for _, name := range []string{DeviationSheet, ExtraSheet, MemorandumSheet, NoteSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating styles: %w", err)
	}

	steps := []struct {
		sheet string
		run   func() error
	}{
		{FirstPageSheet, func() error { return buildFirstPage(f, st, bill, sum, opts) }},
		{DeviationSheet, func() error { return buildDeviation(f, st, bill, sum, opts) }},
		{ExtraSheet, func() error { return buildExtraItems(f, st, bill, sum, opts) }},
		{MemorandumSheet, func() error { return buildMemorandum(f, st, bill, sum, opts) }},
		{NoteSheet, func() error { return buildNoteSheet(f, st, bill, opts) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			f.Close()
			return nil, fmt.Errorf("building sheet %s: %w", step.sheet, err)
		}
	}

	if opts.IncludeFormulas {
		// Recalculate injected formulas when the workbook is opened.
		fullCalc := true
		if err := f.SetCalcProps(&excelize.CalcPropsOptions{FullCalcOnLoad: &fullCalc}); err != nil {
			f.Close()
			return nil, fmt.Errorf("setting calc properties: %w", err)
		}
	}

	idx, err := f.GetSheetIndex(FirstPageSheet)
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	return f, nil
}
