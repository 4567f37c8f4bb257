package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// buildPayslipReport renders one A4 page per payslip and returns the
// document bytes. Figures are rounded here, at render time.
func buildPayslipReport(slips []Payslip, asOf time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	for _, slip := range slips {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(40, 10, "Payslip")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.EmployeeName))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", orNA(slip.EmployeeID)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", orNA(slip.Department)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Position: %s", orNA(slip.Position)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Pay Period: %s", slip.PayPeriod))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Earnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Hours Worked: %g hrs at $%.2f/hr", slip.RegularHours, slip.HourlyRate))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Gross Pay: $%.2f", round2(slip.GrossPay)))
		pdf.Ln(7)
		if slip.Bonus > 0 {
			pdf.Cell(0, 8, fmt.Sprintf("Bonus: $%.2f", round2(slip.Bonus)))
			pdf.Ln(7)
		}
		pdf.Cell(0, 8, fmt.Sprintf("Total Earnings: $%.2f", round2(slip.TotalEarnings)))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Deductions")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Tax (10%%): $%.2f", round2(slip.Tax)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Insurance (5%%): $%.2f", round2(slip.Insurance)))
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Total Deductions: $%.2f", round2(slip.TotalDeduction)))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("Net Pay: $%.2f", round2(slip.NetPay)))
	}

	if len(slips) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(40, 10, "Payslip Report")
		pdf.Ln(12)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 8, fmt.Sprintf("No employees on record as of %s.", asOf.Format("2006-01-02")))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
