package employee

type CreateEmployeeRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	EmployeeNumber string  `json:"employee_number"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	HourlyRate     float64 `json:"hourly_rate"`
	Role           string  `json:"role" binding:"omitempty,oneof=employee admin"`
}

type UpdateEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	EmployeeNumber string  `json:"employee_number"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	HourlyRate     float64 `json:"hourly_rate"`
	TotalHours     float64 `json:"total_hours"`
	Bonus          float64 `json:"bonus"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
}

// ComputedSalary is the detail-view block: baseSalary uses the stored rate
// as-is (zero when unset), unlike the payslip path which defaults to 25.
type ComputedSalary struct {
	Salary     float64 `json:"salary"`
	BaseSalary float64 `json:"base_salary"`
	Bonus      float64 `json:"bonus"`
	TotalHours float64 `json:"total_hours"`
	HourlyRate float64 `json:"hourly_rate"`
}

type EmployeeDetailResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Computed ComputedSalary   `json:"computed"`
}

type EmployeeListResponse struct {
	Total     int                `json:"total"`
	Employees []EmployeeResponse `json:"employees"`
}
