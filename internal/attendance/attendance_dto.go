package attendance

type ClockInRequest struct {
	Description *string `json:"description"`
}

type ClockOutRequest struct {
	Description *string `json:"description"`
}

type WorkHourEntryResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	WorkDate    string  `json:"work_date"`
	ClockIn     string  `json:"clock_in"`
	ClockOut    *string `json:"clock_out,omitempty"`
	Hours       float64 `json:"hours"`
	Description *string `json:"description,omitempty"`
}
