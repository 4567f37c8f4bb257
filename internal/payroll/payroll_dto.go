package payroll

type AddBonusRequest struct {
	BonusAmount float64 `json:"bonus_amount"`
}

type AddBonusResponse struct {
	Message       string  `json:"message"`
	Amount        float64 `json:"amount"`
	ModifiedCount int64   `json:"modified_count"`
}

type DeductionsResponse struct {
	Tax       float64 `json:"tax"`
	Insurance float64 `json:"insurance"`
	Total     float64 `json:"total"`
}

type PayslipResponse struct {
	EmployeeID    string             `json:"employee_id"`
	EmployeeName  string             `json:"employee_name"`
	Department    string             `json:"department"`
	Position      string             `json:"position"`
	PayPeriod     string             `json:"pay_period"`
	RegularHours  float64            `json:"regular_hours"`
	HourlyRate    float64            `json:"hourly_rate"`
	GrossPay      float64            `json:"gross_pay"`
	Bonus         float64            `json:"bonus,omitempty"`
	TotalEarnings float64            `json:"total_earnings,omitempty"`
	Deductions    DeductionsResponse `json:"deductions"`
	NetPay        float64            `json:"net_pay"`
}

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

type BulkItemOutcome struct {
	Employee string `json:"employee"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type BulkSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

type BulkResult struct {
	Message string            `json:"message"`
	Results []BulkItemOutcome `json:"results"`
	Summary BulkSummary       `json:"summary"`
}
