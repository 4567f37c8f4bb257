package payroll

import (
	"time"

	"go-payroll/internal/employee"
)

// The two deduction-base strategies in circulation. The statement variant
// (emails, on-screen payslip) deducts from gross pay only; the report
// variant (bulk PDF) folds the bonus into the base before deducting. Both
// are deliberately kept as named strategies; see DESIGN.md.
const (
	VariantStatement = "STATEMENT"
	VariantReport    = "REPORT"
)

const (
	defaultHourlyRate = 25.0
	taxRate           = 0.10
	insuranceRate     = 0.05
)

// Payslip is a derived view; it is never persisted. All figures are
// unrounded, rounding happens in response/render mapping only.
type Payslip struct {
	EmployeeID     string
	EmployeeName   string
	EmployeeEmail  string
	Department     string
	Position       string
	PayPeriod      string
	Variant        string
	RegularHours   float64
	HourlyRate     float64
	GrossPay       float64
	Bonus          float64
	TotalEarnings  float64
	Tax            float64
	Insurance      float64
	TotalDeduction float64
	NetPay         float64
}

// Compute turns one employee record into a payslip breakdown. Pure: no
// side effects, safe to call concurrently and repeatedly.
func Compute(empl employee.Employee, asOf time.Time, variant string) Payslip {
	regularHours := empl.TotalHours
	hourlyRate := empl.HourlyRate
	if hourlyRate <= 0 {
		hourlyRate = defaultHourlyRate
	}

	grossPay := regularHours * hourlyRate

	base := grossPay
	totalEarnings := grossPay
	if variant == VariantReport {
		totalEarnings = grossPay + empl.Bonus
		base = totalEarnings
	}

	tax := base * taxRate
	insurance := base * insuranceRate
	totalDeduction := tax + insurance

	return Payslip{
		EmployeeID:     empl.EmployeeNumber,
		EmployeeName:   empl.Name,
		EmployeeEmail:  empl.Email,
		Department:     empl.Department,
		Position:       empl.Position,
		PayPeriod:      asOf.Format("2006-01-02"),
		Variant:        variant,
		RegularHours:   regularHours,
		HourlyRate:     hourlyRate,
		GrossPay:       grossPay,
		Bonus:          empl.Bonus,
		TotalEarnings:  totalEarnings,
		Tax:            tax,
		Insurance:      insurance,
		TotalDeduction: totalDeduction,
		NetPay:         base - totalDeduction,
	}
}
