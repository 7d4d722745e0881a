// Package billgen generates contract billing documents from workbook inputs.
package billgen

// Options configures bill computation behavior.
type Options struct {
	// SecurityDepositPercent is the security deposit recovery rate.
	SecurityDepositPercent float64
	// IncomeTaxPercent is the income tax (TDS) recovery rate.
	IncomeTaxPercent float64
	// GSTPercent is the GST TDS recovery rate.
	GSTPercent float64
	// DeviationLimitPercent is the permissible overall deviation before the
	// bill is flagged for sanction of a deviation statement.
	DeviationLimitPercent float64
	// LDPerDayPercent is the liquidated damages rate per day of delay,
	// applied on the work order amount of a final bill.
	LDPerDayPercent float64
	// LDCapPercent caps liquidated damages as a percentage of the work
	// order amount.
	LDCapPercent float64
	// IncludeFormulas controls whether output cells carry spreadsheet
	// formulas alongside computed values. If nil, defaults to true.
	IncludeFormulas *bool
}

// DefaultOptions returns the statutory defaults used for works contracts.
func DefaultOptions() Options {
	return Options{
		SecurityDepositPercent: 10,
		IncomeTaxPercent:       2,
		GSTPercent:             2,
		DeviationLimitPercent:  5,
		LDPerDayPercent:        0.05,
		LDCapPercent:           10,
	}
}

// ShouldIncludeFormulas returns whether output cells carry formulas.
func (o Options) ShouldIncludeFormulas() bool {
	if o.IncludeFormulas != nil {
		return *o.IncludeFormulas
	}
	return true
}
