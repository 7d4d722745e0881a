package billgen

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/builder"
	"github.com/worksbill/billgen-go/pkg/billgen/models"
	"github.com/worksbill/billgen-go/pkg/billgen/notes"
	"github.com/worksbill/billgen-go/pkg/billgen/parser"
)

// Result is the outcome of a bill generation run.
type Result struct {
	// Bill is the parsed input data.
	Bill *models.BillData
	// Summary holds the derived figures written to the output workbook.
	Summary models.Summary
	// Notes are the note sheet entries written to the output workbook.
	Notes []notes.Note
	// OutputPath is the path of the generated workbook.
	OutputPath string
}

// Load parses bill data from an input workbook.
func Load(path string) (*models.BillData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return parser.LoadBill(f)
}

// LoadReader parses bill data from workbook bytes, e.g. an HTTP upload.
func LoadReader(r io.Reader) (*models.BillData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return parser.LoadBill(f)
}

// BuildWorkbook derives all bill figures and returns the output workbook
// in memory along with the summary and note sheet entries. The caller owns
// the returned file.
func BuildWorkbook(bill *models.BillData, opts Options) (*excelize.File, models.Summary, []notes.Note, error) {
	sum := Summarize(bill, opts)
	billNotes := notes.ForBill(bill, sum, notes.Options{
		DeviationLimitPercent: opts.DeviationLimitPercent,
	})

	out, err := builder.Build(bill, sum, builder.Options{
		IncludeFormulas:       opts.ShouldIncludeFormulas(),
		DeviationLimitPercent: opts.DeviationLimitPercent,
		Notes:                 notes.Texts(billNotes),
	})
	if err != nil {
		return nil, sum, nil, fmt.Errorf("building output workbook: %w", err)
	}
	return out, sum, billNotes, nil
}

// Generate reads an input workbook, derives all bill figures, and writes the
// billing documents (first page, deviation statement, extra items,
// memorandum of payment, note sheet) to a new workbook at outputPath.
func Generate(inputPath, outputPath string, opts Options) (*Result, error) {
	bill, err := Load(inputPath)
	if err != nil {
		return nil, err
	}

	return GenerateFromData(bill, outputPath, opts)
}

// GenerateFromData writes the billing documents for already-parsed data.
func GenerateFromData(bill *models.BillData, outputPath string, opts Options) (*Result, error) {
	out, sum, billNotes, err := BuildWorkbook(bill, opts)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if err := out.SaveAs(outputPath); err != nil {
		return nil, fmt.Errorf("saving output workbook: %w", err)
	}

	return &Result{
		Bill:       bill,
		Summary:    sum,
		Notes:      billNotes,
		OutputPath: outputPath,
	}, nil
}
