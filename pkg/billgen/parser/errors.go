package parser

import (
	"errors"
	"fmt"
)

// ErrMissingSheet indicates a required input sheet is absent.
var ErrMissingSheet = errors.New("required sheet missing")

// ErrNoItems indicates an item sheet contained no data rows.
var ErrNoItems = errors.New("no item rows found")

// SheetError represents an error while reading an input sheet.
type SheetError struct {
	SheetName string
	Component string // "title", "work_order", "quantities", "extra_items"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
