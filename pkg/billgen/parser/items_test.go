package parser

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

// itemFixture writes rows to a named sheet of a new workbook.
func itemFixture(t *testing.T, sheet string, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}
	writeRows(t, f, sheet, rows)
	return f
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing fixture row: %v", err)
		}
	}
}

func TestLoadWorkOrder(t *testing.T) {
	f := itemFixture(t, WorkOrderSheet, [][]interface{}{
		{"WORK ORDER"},
		{},
		{"Item No", "Description of Item", "Unit", "Quantity", "Rate"},
		{"1", "Earthwork in excavation", "Cum", 100, 250},
		{"2", "PCC 1:2:4", "Cum", 50, 4500},
		{},
		{"3", "Brickwork in CM 1:4", "Cum", 80, 5200},
	})
	defer f.Close()

	items, err := LoadWorkOrder(f, WorkOrderSheet)
	if err != nil {
		t.Fatalf("LoadWorkOrder failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ItemNo != "1" || items[0].Quantity != 100 || items[0].Rate != 250 {
		t.Errorf("item 1 = %+v", items[0])
	}
	if items[2].Description != "Brickwork in CM 1:4" {
		t.Errorf("item 3 description = %q", items[2].Description)
	}
	if items[1].Amount() != 225000 {
		t.Errorf("item 2 amount = %v, expected 225000", items[1].Amount())
	}
}

func TestLoadWorkOrderNoHeader(t *testing.T) {
	f := itemFixture(t, WorkOrderSheet, [][]interface{}{
		{"just", "some", "cells"},
	})
	defer f.Close()

	_, err := LoadWorkOrder(f, WorkOrderSheet)
	if err == nil {
		t.Fatal("expected error for missing header row")
	}
	var sheetErr *SheetError
	if !errors.As(err, &sheetErr) {
		t.Fatalf("expected *SheetError, got %T", err)
	}
}

func TestLoadQuantities(t *testing.T) {
	f := itemFixture(t, QuantitySheet, [][]interface{}{
		{"Item No", "Quantity Upto Date", "Previous Quantity"},
		{"1", 110, 40},
		{"2", 50},
		{"3", 60, 0},
	})
	defer f.Close()

	quantities, err := LoadQuantities(f, QuantitySheet)
	if err != nil {
		t.Fatalf("LoadQuantities failed: %v", err)
	}

	if len(quantities) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(quantities))
	}
	if q := quantities["1"]; q.Upto != 110 || q.Previous != 40 {
		t.Errorf("item 1 = %+v", q)
	}
	if q := quantities["2"]; q.Upto != 50 || q.Previous != 0 {
		t.Errorf("item 2 = %+v", q)
	}
}

func TestLoadExtrasMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	extras, err := LoadExtras(f, ExtraItemsSheet)
	if err != nil {
		t.Fatalf("LoadExtras failed: %v", err)
	}
	if extras != nil {
		t.Errorf("expected nil extras, got %v", extras)
	}
}

func TestLoadExtras(t *testing.T) {
	f := itemFixture(t, ExtraItemsSheet, [][]interface{}{
		{"Item No", "Description", "Unit", "Quantity", "Rate", "Approval Ref"},
		{"E1", "Extra PCC in foundation", "Cum", 10, 4800, "EE/123"},
	})
	defer f.Close()

	extras, err := LoadExtras(f, ExtraItemsSheet)
	if err != nil {
		t.Fatalf("LoadExtras failed: %v", err)
	}
	if len(extras) != 1 {
		t.Fatalf("expected 1 extra, got %d", len(extras))
	}
	if extras[0].ApprovalRef != "EE/123" {
		t.Errorf("ApprovalRef = %q", extras[0].ApprovalRef)
	}
	if extras[0].Amount() != 48000 {
		t.Errorf("Amount() = %v, expected 48000", extras[0].Amount())
	}
}
