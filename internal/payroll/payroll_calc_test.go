package payroll

import (
	"testing"
	"time"

	"go-payroll/internal/employee"

	"github.com/stretchr/testify/assert"
)

func TestCompute_StatementVariant(t *testing.T) {
	empl := employee.Employee{
		Name:       "Alice Smith",
		Email:      "alice@example.com",
		TotalHours: 80,
		HourlyRate: 20,
		Bonus:      500,
	}

	slip := Compute(empl, time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC), VariantStatement)

	assert.Equal(t, 1600.0, slip.GrossPay)
	assert.Equal(t, 160.0, slip.Tax)
	assert.Equal(t, 80.0, slip.Insurance)
	assert.Equal(t, 240.0, slip.TotalDeduction)
	assert.Equal(t, 1360.0, slip.NetPay)
	// The statement variant never folds the bonus into the deduction base.
	assert.Equal(t, 1600.0, slip.TotalEarnings)
	assert.Equal(t, "2025-11-20", slip.PayPeriod)
}

func TestCompute_ReportVariantIncludesBonus(t *testing.T) {
	empl := employee.Employee{
		Name:       "Bob Jones",
		TotalHours: 100,
		HourlyRate: 10,
		Bonus:      200,
	}

	slip := Compute(empl, time.Now(), VariantReport)

	assert.Equal(t, 1000.0, slip.GrossPay)
	assert.Equal(t, 1200.0, slip.TotalEarnings)
	assert.Equal(t, 120.0, slip.Tax)
	assert.Equal(t, 60.0, slip.Insurance)
	assert.Equal(t, 1020.0, slip.NetPay)
}

func TestCompute_DefaultsMissingRate(t *testing.T) {
	empl := employee.Employee{Name: "Carol", TotalHours: 10}

	slip := Compute(empl, time.Now(), VariantStatement)

	assert.Equal(t, 25.0, slip.HourlyRate)
	assert.Equal(t, 250.0, slip.GrossPay)
}

func TestCompute_NegativeRateDefaults(t *testing.T) {
	empl := employee.Employee{Name: "Dan", TotalHours: 4, HourlyRate: -3}

	slip := Compute(empl, time.Now(), VariantStatement)

	assert.Equal(t, 25.0, slip.HourlyRate)
	assert.Equal(t, 100.0, slip.GrossPay)
}

func TestCompute_ZeroHours(t *testing.T) {
	empl := employee.Employee{Name: "Eve", HourlyRate: 30}

	slip := Compute(empl, time.Now(), VariantStatement)

	assert.Zero(t, slip.GrossPay)
	assert.Zero(t, slip.Tax)
	assert.Zero(t, slip.NetPay)
}

func TestCompute_RoundingAtPresentationOnly(t *testing.T) {
	empl := employee.Employee{Name: "Frank", TotalHours: 33.33, HourlyRate: 17.77}

	slip := Compute(empl, time.Now(), VariantStatement)
	resp := mapToPayslipResponse(slip)

	// Raw figures stay unrounded; the response carries two decimals.
	assert.InDelta(t, 592.2741, slip.GrossPay, 1e-9)
	assert.Equal(t, 592.27, resp.GrossPay)
	assert.Equal(t, 59.23, resp.Deductions.Tax)
	assert.Equal(t, 29.61, resp.Deductions.Insurance)
}
