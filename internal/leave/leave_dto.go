package leave

type SubmitLeaveRequest struct {
	Date   string `json:"date" binding:"required"`
	Policy string `json:"policy"`
	// Accepted for wire compatibility; submission always stores pending.
	Status string `json:"status"`
}

type LeaveResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"type"`
	Days       int     `json:"days"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason,omitempty"`
	ApprovedBy *string `json:"approved_by,omitempty"`
	ApprovedAt *string `json:"approved_at,omitempty"`
}
