package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// Sheet names expected in the input workbook.
const (
	WorkOrderSheet  = "Work Order"
	QuantitySheet   = "Bill Quantity"
	ExtraItemsSheet = "Extra Items"
)

// LoadWorkOrder reads the sanctioned items from the Work Order sheet.
// The header row is located by its "item" and "rate" labels; columns are
// mapped by header text so column order does not matter.
func LoadWorkOrder(f *excelize.File, sheetName string) ([]models.WorkOrderItem, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, NewSheetError(sheetName, "work_order", err)
	}

	headerIdx, cols := findHeaderRow(rows, "item", "description", "unit", "quantity", "rate")
	if headerIdx < 0 {
		return nil, NewSheetError(sheetName, "work_order",
			fmt.Errorf("header row with item/description/unit/quantity/rate not found"))
	}

	var items []models.WorkOrderItem
	for _, row := range rows[headerIdx+1:] {
		if rowEmpty(row) {
			continue
		}
		itemNo := cellAt(row, cols["item"])
		desc := cellAt(row, cols["description"])
		if itemNo == "" && desc == "" {
			continue
		}

		qty, _ := parseNumber(cellAt(row, cols["quantity"]))
		rate, _ := parseNumber(cellAt(row, cols["rate"]))

		items = append(items, models.WorkOrderItem{
			ItemNo:      itemNo,
			Description: desc,
			Unit:        cellAt(row, cols["unit"]),
			Quantity:    qty,
			Rate:        rate,
		})
	}

	if len(items) == 0 {
		return nil, NewSheetError(sheetName, "work_order", ErrNoItems)
	}

	return items, nil
}

// Measured holds quantities read from the Bill Quantity sheet.
type Measured struct {
	// Upto is the executed quantity up to and including this bill.
	Upto float64
	// Previous is the quantity paid in previous bills.
	Previous float64
}

// LoadQuantities reads executed quantities keyed by item number. The sheet
// needs "item" and "quantity" columns; a "previous" column is optional.
func LoadQuantities(f *excelize.File, sheetName string) (map[string]Measured, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, NewSheetError(sheetName, "quantities", err)
	}

	headerIdx, cols := findHeaderRow(rows, "item", "quantity")
	if headerIdx < 0 {
		return nil, NewSheetError(sheetName, "quantities",
			fmt.Errorf("header row with item/quantity not found"))
	}
	_, prevCols := findHeaderRow(rows[headerIdx:headerIdx+1], "previous")
	prevCol := -1
	if prevCols != nil {
		prevCol = prevCols["previous"]
	}

	result := make(map[string]Measured)
	for _, row := range rows[headerIdx+1:] {
		itemNo := cellAt(row, cols["item"])
		if itemNo == "" {
			continue
		}
		m := Measured{}
		m.Upto, _ = parseNumber(cellAt(row, cols["quantity"]))
		if prevCol >= 0 {
			m.Previous, _ = parseNumber(cellAt(row, prevCol))
		}
		result[itemNo] = m
	}

	return result, nil
}

// LoadExtras reads extra items. The sheet is optional; a missing sheet
// yields an empty slice.
func LoadExtras(f *excelize.File, sheetName string) ([]models.ExtraItem, error) {
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, NewSheetError(sheetName, "extra_items", err)
	}

	headerIdx, cols := findHeaderRow(rows, "item", "description", "unit", "quantity", "rate")
	if headerIdx < 0 {
		return nil, nil
	}
	_, refCols := findHeaderRow(rows[headerIdx:headerIdx+1], "approval")
	refCol := -1
	if refCols != nil {
		refCol = refCols["approval"]
	}

	var extras []models.ExtraItem
	for _, row := range rows[headerIdx+1:] {
		if rowEmpty(row) {
			continue
		}
		itemNo := cellAt(row, cols["item"])
		desc := cellAt(row, cols["description"])
		if itemNo == "" && desc == "" {
			continue
		}

		qty, _ := parseNumber(cellAt(row, cols["quantity"]))
		rate, _ := parseNumber(cellAt(row, cols["rate"]))

		item := models.ExtraItem{
			ItemNo:      itemNo,
			Description: desc,
			Unit:        cellAt(row, cols["unit"]),
			Quantity:    qty,
			Rate:        rate,
		}
		if refCol >= 0 {
			item.ApprovalRef = cellAt(row, refCol)
		}
		extras = append(extras, item)
	}

	return extras, nil
}
