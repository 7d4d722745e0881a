package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// TitleSheet is the name of the sheet carrying contract metadata.
const TitleSheet = "Title"

var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
	"2006-01-02",
	"02-01-06",
	"01-02-06", // excelize renders date cells in m-d-yy by default
}

// LoadTitle reads contract metadata from the Title sheet. The sheet holds
// label/value pairs in the first two columns; labels are matched after
// normalization, so punctuation and case differences are tolerated.
func LoadTitle(f *excelize.File, sheetName string) (models.TitleInfo, error) {
	var title models.TitleInfo

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return title, fmt.Errorf("reading %s sheet: %w", sheetName, err)
	}

	for _, row := range rows {
		key := normalizeKey(cellAt(row, 0))
		value := cellAt(row, 1)
		if key == "" || value == "" {
			continue
		}

		switch key {
		case "name of work":
			title.NameOfWork = value
		case "agreement no", "agreement number":
			title.AgreementNo = value
		case "contractor", "name of contractor":
			title.Contractor = value
		case "firm", "name of firm":
			title.Firm = value
		case "work order amount":
			if n, ok := parseNumber(value); ok {
				title.WorkOrderAmount = n
			}
		case "tender premium", "premium":
			premium, direction := parsePremium(value)
			title.PremiumPercent = premium
			title.PremiumDirection = direction
		case "date of commencement", "commencement date":
			title.Commencement = parseDate(value)
		case "date of completion", "stipulated date of completion":
			title.StipulatedCompletion = parseDate(value)
		case "actual date of completion":
			title.ActualCompletion = parseDate(value)
		case "mb no", "measurement book no":
			title.MeasurementBookNo = value
		case "bill no", "running bill no", "bill number":
			if n, ok := parseNumber(value); ok {
				title.BillNumber = int(n)
			}
		case "final bill":
			title.FinalBill = parseBool(value)
		case "previous bill amount":
			if n, ok := parseNumber(value); ok {
				title.PreviousBillAmount = n
			}
		}
	}

	if title.NameOfWork == "" {
		return title, NewSheetError(sheetName, "title", errors.New("name of work is required"))
	}
	if title.BillNumber == 0 {
		title.BillNumber = 1
	}
	if title.PremiumDirection == "" {
		title.PremiumDirection = models.PremiumAbove
	}

	return title, nil
}

// parsePremium reads values like "4.5% above", "5 below" or plain "4.5".
func parsePremium(s string) (float64, models.PremiumDirection) {
	direction := models.PremiumAbove
	lower := strings.ToLower(s)
	if strings.Contains(lower, "below") {
		direction = models.PremiumBelow
	}
	lower = strings.ReplaceAll(lower, "above", "")
	lower = strings.ReplaceAll(lower, "below", "")
	if n, ok := parseNumber(lower); ok {
		return n, direction
	}
	return 0, direction
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "final":
		return true
	}
	return false
}
