package billgen

import (
	"testing"
	"time"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

// fixtureBill mirrors a small but complete works contract: three work order
// items with one excess and one saving, an extra item, 5% premium above and a
// thirty day delayed final bill.
func fixtureBill() *models.BillData {
	stipulated := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return &models.BillData{
		Title: models.TitleInfo{
			NameOfWork:           "Construction of Community Hall",
			WorkOrderAmount:      1000000,
			PremiumPercent:       5,
			PremiumDirection:     models.PremiumAbove,
			StipulatedCompletion: stipulated,
			ActualCompletion:     stipulated.AddDate(0, 0, 30),
			BillNumber:           1,
			FinalBill:            true,
		},
		Items: []models.BillItem{
			{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "1", Quantity: 100, Rate: 250},
				QuantityUpto:  112,
			},
			{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "2", Quantity: 50, Rate: 4500},
				QuantityUpto:  50,
			},
			{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "3", Quantity: 80, Rate: 5200},
				QuantityUpto:  60,
			},
		},
		Extras: []models.ExtraItem{
			{ItemNo: "E1", Quantity: 10, Rate: 4800},
		},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(fixtureBill(), DefaultOptions())

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"WorkOrderTotal", sum.WorkOrderTotal, 666000},
		{"ExecutedTotal", sum.ExecutedTotal, 565000},
		{"Premium", sum.Premium, 28250},
		{"ExtraTotal", sum.ExtraTotal, 48000},
		{"GrossPayable", sum.GrossPayable, 641250},
		{"SincePrevious", sum.SincePrevious, 641250},
		{"SecurityDeposit", sum.Deductions.SecurityDeposit, 64125},
		{"IncomeTax", sum.Deductions.IncomeTax, 12825},
		{"GST", sum.Deductions.GST, 12825},
		{"LiquidatedDamages", sum.Deductions.LiquidatedDamages, 15000},
		{"NetPayable", sum.NetPayable, 536475},
		{"OverallDeviationPercent", sum.OverallDeviationPercent, -15.17},
	}
	for _, c := range checks {
		if c.got != c.expected {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.expected)
		}
	}

	if sum.DelayDays != 30 {
		t.Errorf("DelayDays = %d, expected 30", sum.DelayDays)
	}
}

func TestSummarizePremiumBelow(t *testing.T) {
	bill := fixtureBill()
	bill.Title.PremiumDirection = models.PremiumBelow

	sum := Summarize(bill, DefaultOptions())
	if sum.Premium != -28250 {
		t.Errorf("Premium = %v, expected -28250", sum.Premium)
	}
	if sum.GrossPayable != 584750 {
		t.Errorf("GrossPayable = %v, expected 584750", sum.GrossPayable)
	}
}

func TestSummarizeRunningBillSkipsDamages(t *testing.T) {
	bill := fixtureBill()
	bill.Title.FinalBill = false

	sum := Summarize(bill, DefaultOptions())
	if sum.Deductions.LiquidatedDamages != 0 {
		t.Errorf("LiquidatedDamages = %v, expected 0 on a running bill",
			sum.Deductions.LiquidatedDamages)
	}
}

func TestSummarizeDamagesCap(t *testing.T) {
	bill := fixtureBill()
	bill.Title.ActualCompletion = bill.Title.StipulatedCompletion.AddDate(0, 0, 400)

	sum := Summarize(bill, DefaultOptions())
	// 400 days at 0.05%/day would be 20%; capped at 10% of the work order amount.
	if sum.Deductions.LiquidatedDamages != 100000 {
		t.Errorf("LiquidatedDamages = %v, expected 100000", sum.Deductions.LiquidatedDamages)
	}
}

func TestSummarizeDeviations(t *testing.T) {
	sum := Summarize(fixtureBill(), DefaultOptions())

	if len(sum.Deviations) != 3 {
		t.Fatalf("expected 3 deviation rows, got %d", len(sum.Deviations))
	}

	first := sum.Deviations[0]
	if first.ExcessQty != 12 || first.ExcessAmount != 3000 {
		t.Errorf("item 1 excess = %v qty / %v amount, expected 12 / 3000",
			first.ExcessQty, first.ExcessAmount)
	}
	if first.DeviationPercent != 12 {
		t.Errorf("item 1 deviation = %v%%, expected 12%%", first.DeviationPercent)
	}

	third := sum.Deviations[2]
	if third.SavingQty != 20 || third.SavingAmount != 104000 {
		t.Errorf("item 3 saving = %v qty / %v amount, expected 20 / 104000",
			third.SavingQty, third.SavingAmount)
	}
	if third.DeviationPercent != -25 {
		t.Errorf("item 3 deviation = %v%%, expected -25%%", third.DeviationPercent)
	}
}
