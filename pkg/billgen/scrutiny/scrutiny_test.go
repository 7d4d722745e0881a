package scrutiny

import (
	"strings"
	"testing"
	"time"

	"github.com/worksbill/billgen-go/pkg/billgen/models"
)

func scrutinyFixture() (*models.BillData, models.Summary) {
	bill := &models.BillData{
		Title: models.TitleInfo{
			NameOfWork:           "Construction of Community Hall",
			AgreementNo:          "12/2025-26",
			Contractor:           "M/s Sharma Constructions",
			WorkOrderAmount:      1000000,
			Commencement:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			StipulatedCompletion: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			ActualCompletion:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			BillNumber:           1,
			FinalBill:            true,
		},
	}
	sum := models.Summary{
		OverallDeviationPercent: -2,
		NetPayable:              500000,
	}
	return bill, sum
}

func codes(findings []Finding) map[string]Severity {
	m := make(map[string]Severity, len(findings))
	for _, f := range findings {
		m[f.Code] = f.Severity
	}
	return m
}

func TestCheckClean(t *testing.T) {
	bill, sum := scrutinyFixture()

	findings := Check(bill, sum, DefaultOptions())
	if len(findings) != 1 {
		t.Fatalf("expected a single clean finding, got %d: %v", len(findings), findings)
	}
	if findings[0].Code != "clean" || findings[0].Severity != SeverityInfo {
		t.Errorf("finding = %+v, expected clean/info", findings[0])
	}
	if HasBlocking(findings) {
		t.Error("clean bill reported as blocking")
	}
}

func TestCheckTitleDefects(t *testing.T) {
	bill, sum := scrutinyFixture()
	bill.Title.AgreementNo = ""
	bill.Title.Contractor = ""
	bill.Title.StipulatedCompletion = bill.Title.Commencement.AddDate(0, 0, -10)

	got := codes(Check(bill, sum, DefaultOptions()))
	if got["missing-agreement"] != SeverityError {
		t.Error("expected missing-agreement error")
	}
	if got["missing-contractor"] != SeverityWarning {
		t.Error("expected missing-contractor warning")
	}
	if got["date-order"] != SeverityError {
		t.Error("expected date-order error")
	}
}

func TestCheckFinalBillWithoutCompletion(t *testing.T) {
	bill, sum := scrutinyFixture()
	bill.Title.ActualCompletion = time.Time{}

	got := codes(Check(bill, sum, DefaultOptions()))
	if got["missing-completion"] != SeverityWarning {
		t.Error("expected missing-completion warning")
	}
}

func TestCheckDeviationAndPremium(t *testing.T) {
	bill, sum := scrutinyFixture()
	bill.Title.PremiumPercent = 15
	sum.OverallDeviationPercent = -15.17

	findings := Check(bill, sum, DefaultOptions())
	got := codes(findings)
	if got["premium-bound"] != SeverityWarning {
		t.Error("expected premium-bound warning")
	}
	if got["deviation-limit"] != SeverityError {
		t.Error("expected deviation-limit error")
	}
	if !HasBlocking(findings) {
		t.Error("expected blocking findings")
	}
}

func TestCheckItemDefects(t *testing.T) {
	bill, sum := scrutinyFixture()
	sum.Deviations = []models.DeviationRow{
		{
			Item: models.BillItem{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "1", Quantity: 100, Rate: 250},
				QuantityUpto:  140,
			},
			ExcessQty:        40,
			DeviationPercent: 40,
		},
		{
			Item: models.BillItem{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "2"},
				QuantityUpto:  10,
			},
		},
		{
			Item: models.BillItem{
				WorkOrderItem: models.WorkOrderItem{ItemNo: "3", Quantity: 50},
				QuantityUpto:  20,
			},
		},
	}

	got := codes(Check(bill, sum, DefaultOptions()))
	if got["item-excess"] != SeverityWarning {
		t.Error("expected item-excess warning")
	}
	if got["unordered-quantity"] != SeverityError {
		t.Error("expected unordered-quantity error")
	}
	if got["nil-rate"] != SeverityError {
		t.Error("expected nil-rate error for the rateless item")
	}
}

func TestCheckExtraApproval(t *testing.T) {
	bill, sum := scrutinyFixture()
	bill.Extras = []models.ExtraItem{
		{ItemNo: "E1", Quantity: 10, Rate: 4800},
	}

	got := codes(Check(bill, sum, DefaultOptions()))
	if got["extra-approval"] != SeverityWarning {
		t.Error("expected extra-approval warning")
	}
}

func TestRenderHTML(t *testing.T) {
	bill, sum := scrutinyFixture()
	sum.OverallDeviationPercent = -15.17
	findings := Check(bill, sum, DefaultOptions())

	var b strings.Builder
	if err := RenderHTML(&b, bill.Title, findings); err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}

	html := b.String()
	for _, want := range []string{
		"SCRUTINY REPORT",
		"deviation-limit",
		`class="error"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestCheckNegativePayable(t *testing.T) {
	bill, sum := scrutinyFixture()
	sum.NetPayable = -1200

	findings := Check(bill, sum, DefaultOptions())
	got := codes(findings)
	if got["negative-payable"] != SeverityError {
		t.Error("expected negative-payable error")
	}
	if !HasBlocking(findings) {
		t.Error("expected blocking findings")
	}
}
