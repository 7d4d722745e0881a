package billgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/builder"
)

// writeInputWorkbook saves a complete input fixture and returns its path.
func writeInputWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Title"); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}

	sheets := map[string][][]interface{}{
		"Title": {
			{"Name of Work", "Construction of Community Hall"},
			{"Agreement No", "12/2025-26"},
			{"Name of Contractor", "M/s Sharma Constructions"},
			{"Work Order Amount", "10,00,000"},
			{"Tender Premium", "5% above"},
			{"Date of Commencement", "01-01-2025"},
			{"Date of Completion", "30-06-2025"},
			{"Actual Date of Completion", "30-07-2025"},
			{"Final Bill", "Yes"},
		},
		"Work Order": {
			{"Item No", "Description", "Unit", "Quantity", "Rate"},
			{"1", "Earthwork in excavation", "Cum", 100, 250},
			{"2", "PCC 1:2:4", "Cum", 50, 4500},
			{"3", "Brickwork in CM 1:4", "Cum", 80, 5200},
		},
		"Bill Quantity": {
			{"Item No", "Quantity Upto Date"},
			{"1", 112},
			{"2", 50},
			{"3", 60},
		},
		"Extra Items": {
			{"Item No", "Description", "Unit", "Quantity", "Rate"},
			{"E1", "Extra PCC in foundation", "Cum", 10, 4800},
		},
	}
	for sheet, rows := range sheets {
		if sheet != "Title" {
			if _, err := f.NewSheet(sheet); err != nil {
				t.Fatalf("adding sheet %s: %v", sheet, err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatalf("writing fixture row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving fixture workbook: %v", err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	input := writeInputWorkbook(t)
	output := filepath.Join(t.TempDir(), "bill.xlsx")

	result, err := Generate(input, output, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.Summary.NetPayable != 536475 {
		t.Errorf("NetPayable = %v, expected 536475", result.Summary.NetPayable)
	}
	if len(result.Notes) == 0 {
		t.Error("expected note sheet entries")
	}

	out, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatalf("reopening output workbook: %v", err)
	}
	defer out.Close()

	for _, sheet := range []string{
		builder.FirstPageSheet, builder.DeviationSheet, builder.ExtraSheet,
		builder.MemorandumSheet, builder.NoteSheet,
	} {
		idx, err := out.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			t.Errorf("output missing sheet %q", sheet)
		}
	}

	heading, err := out.GetCellValue(builder.FirstPageSheet, "A1")
	if err != nil {
		t.Fatalf("reading heading: %v", err)
	}
	if heading != "FIRST & FINAL BILL" {
		t.Errorf("heading = %q, expected FIRST & FINAL BILL", heading)
	}

	formula, err := out.GetCellFormula(builder.FirstPageSheet, "F6")
	if err != nil {
		t.Fatalf("reading formula: %v", err)
	}
	if formula != "ROUND(D6*E6,2)" {
		t.Errorf("F6 formula = %q, expected ROUND(D6*E6,2)", formula)
	}
}

func TestGenerateWithoutFormulas(t *testing.T) {
	input := writeInputWorkbook(t)
	output := filepath.Join(t.TempDir(), "bill.xlsx")

	opts := DefaultOptions()
	off := false
	opts.IncludeFormulas = &off

	if _, err := Generate(input, output, opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatalf("reopening output workbook: %v", err)
	}
	defer out.Close()

	formula, err := out.GetCellFormula(builder.FirstPageSheet, "F6")
	if err != nil {
		t.Fatalf("reading formula: %v", err)
	}
	if formula != "" {
		t.Errorf("F6 formula = %q, expected plain value", formula)
	}
	value, err := out.GetCellValue(builder.FirstPageSheet, "F6")
	if err != nil {
		t.Fatalf("reading value: %v", err)
	}
	if !strings.Contains(value, "28") {
		t.Errorf("F6 value = %q, expected the item amount", value)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("writing garbage file: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestLoadReader(t *testing.T) {
	input := writeInputWorkbook(t)
	f, err := os.Open(input)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	bill, err := LoadReader(f)
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	if len(bill.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(bill.Items))
	}
}
