package parser

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"250", 250, true},
		{"4,500.50", 4500.50, true},
		{"10,00,000", 1000000, true},
		{"Rs. 250", 250, true},
		{"₹1,200", 1200, true},
		{"5%", 5, true},
		{" 33.333 ", 33.333, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("parseNumber(%q) = %v, %v; expected %v, %v",
				tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFindHeaderRow(t *testing.T) {
	rows := [][]string{
		{"WORK ORDER"},
		{},
		{"Item No", "Description of Item", "Unit", "Quantity", "Rate"},
		{"1", "Earthwork", "Cum", "100", "250"},
	}

	idx, cols := findHeaderRow(rows, "item", "description", "unit", "quantity", "rate")
	if idx != 2 {
		t.Fatalf("header row = %d, expected 2", idx)
	}
	if cols["description"] != 1 || cols["rate"] != 4 {
		t.Errorf("column map = %v", cols)
	}

	idx, cols = findHeaderRow(rows, "item", "approval")
	if idx != -1 || cols != nil {
		t.Errorf("expected no match, got row %d cols %v", idx, cols)
	}
}

func TestCellAt(t *testing.T) {
	row := []string{" a ", "b"}
	if got := cellAt(row, 0); got != "a" {
		t.Errorf("cellAt(0) = %q", got)
	}
	if got := cellAt(row, 5); got != "" {
		t.Errorf("cellAt(5) = %q, expected empty", got)
	}
	if got := cellAt(row, -1); got != "" {
		t.Errorf("cellAt(-1) = %q, expected empty", got)
	}
}

func TestRowEmpty(t *testing.T) {
	if !rowEmpty([]string{"", "  ", ""}) {
		t.Error("blank row reported as non-empty")
	}
	if rowEmpty([]string{"", "x"}) {
		t.Error("row with content reported as empty")
	}
}
