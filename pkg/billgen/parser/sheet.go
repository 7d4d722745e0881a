// Package parser reads bill input sheets into models.
package parser

import (
	"strconv"
	"strings"
)

// parseNumber parses a numeric cell tolerant of thousands separators,
// currency markers and a trailing percent sign.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// normalizeKey lowercases a label cell and collapses separators so that
// "Name of Work :" and "NAME OF WORK" compare equal.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '-', r == '_', r == '/':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// cellAt returns the trimmed cell at a column index, tolerating short rows.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// rowEmpty reports whether every cell of the row is blank.
func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// findHeaderRow locates the first row containing all of the wanted header
// fragments (case-insensitive substring match). Returns the row index and
// a map from fragment to column index, or -1 when not found.
func findHeaderRow(rows [][]string, wanted ...string) (int, map[string]int) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(wanted))
		for _, w := range wanted {
			for colIdx, cell := range row {
				if strings.Contains(strings.ToLower(cell), w) {
					cols[w] = colIdx
					break
				}
			}
		}
		if len(cols) == len(wanted) {
			return rowIdx, cols
		}
	}
	return -1, nil
}
