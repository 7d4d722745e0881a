// Package faults classifies errors and drives recovery for bill processing.
package faults

import (
	"context"
	"errors"
	"io/fs"

	"github.com/mattn/go-sqlite3"

	"github.com/worksbill/billgen-go/pkg/billgen"
	"github.com/worksbill/billgen-go/pkg/billgen/parser"
)

// Category buckets an error by its origin.
type Category string

const (
	// CategoryInput covers missing or unreadable input files.
	CategoryInput Category = "input"
	// CategoryWorkbook covers malformed or incomplete workbook content.
	CategoryWorkbook Category = "workbook"
	// CategoryStorage covers cache and database failures.
	CategoryStorage Category = "storage"
	// CategoryCanceled covers context cancellation and deadlines.
	CategoryCanceled Category = "canceled"
	// CategoryInternal covers everything else.
	CategoryInternal Category = "internal"
)

// Severity indicates how a fault should be handled.
type Severity string

const (
	// SeverityTransient faults may succeed on retry.
	SeverityTransient Severity = "transient"
	// SeverityPermanent faults will not succeed without changed input.
	SeverityPermanent Severity = "permanent"
)

// Classify buckets an error using its type, never its message text.
func Classify(err error) Category {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CategoryCanceled
	case errors.Is(err, billgen.ErrFileNotFound), errors.Is(err, fs.ErrNotExist):
		return CategoryInput
	case errors.Is(err, billgen.ErrInvalidFormat):
		return CategoryInput
	case errors.Is(err, parser.ErrMissingSheet), errors.Is(err, parser.ErrNoItems):
		return CategoryWorkbook
	}

	var sheetErr *parser.SheetError
	if errors.As(err, &sheetErr) {
		return CategoryWorkbook
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return CategoryStorage
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return CategoryInput
	}

	return CategoryInternal
}

// SeverityOf maps a category to its handling severity. Storage faults are
// retried; input and workbook faults need corrected data.
func SeverityOf(c Category) Severity {
	switch c {
	case CategoryStorage:
		return SeverityTransient
	default:
		return SeverityPermanent
	}
}

// Retryable reports whether an error is worth retrying.
func Retryable(err error) bool {
	return SeverityOf(Classify(err)) == SeverityTransient
}
