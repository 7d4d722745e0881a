package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// LoadBill assembles a complete BillData from the four input sheets.
// Work Order and Title are required; Bill Quantity rows are joined to work
// order items by item number, and Extra Items is optional.
func LoadBill(f *excelize.File) (*models.BillData, error) {
	for _, required := range []string{TitleSheet, WorkOrderSheet, QuantitySheet} {
		idx, err := f.GetSheetIndex(required)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingSheet, required)
		}
	}

	title, err := LoadTitle(f, TitleSheet)
	if err != nil {
		return nil, err
	}

	order, err := LoadWorkOrder(f, WorkOrderSheet)
	if err != nil {
		return nil, err
	}

	quantities, err := LoadQuantities(f, QuantitySheet)
	if err != nil {
		return nil, err
	}

	extras, err := LoadExtras(f, ExtraItemsSheet)
	if err != nil {
		return nil, err
	}

	items := make([]models.BillItem, 0, len(order))
	for _, wo := range order {
		item := models.BillItem{WorkOrderItem: wo}
		if m, ok := quantities[wo.ItemNo]; ok {
			item.QuantityUpto = m.Upto
			item.QuantityPrevious = m.Previous
			delete(quantities, wo.ItemNo)
		}
		items = append(items, item)
	}

	// Measured quantities for unknown items indicate a mismatch between
	// the Work Order and Bill Quantity sheets.
	for itemNo := range quantities {
		return nil, NewSheetError(QuantitySheet, "quantities",
			fmt.Errorf("measured item %q not present in work order", itemNo))
	}

	return &models.BillData{
		Title:  title,
		Items:  items,
		Extras: extras,
	}, nil
}
