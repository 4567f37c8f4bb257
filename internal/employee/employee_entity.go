package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Employee is the payroll record: identity, rate and the cumulative figures
// the calculator reads. Work-hour, holiday and leave rows reference it by id
// and are append-only.
type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"type:varchar(120);not null"`
	Email          string    `gorm:"type:varchar(160);not null;uniqueIndex"`
	PasswordHash   string    `gorm:"type:varchar(100);not null"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex"`
	Department     string    `gorm:"type:varchar(80)"`
	Position       string    `gorm:"type:varchar(80)"`

	// Payroll attributes. Monetary values stay unrounded; rounding happens
	// only at the response/render boundary.
	HourlyRate float64 `gorm:"not null;default:25"`
	TotalHours float64 `gorm:"not null;default:0"`
	Bonus      float64 `gorm:"not null;default:0"`

	Role     string `gorm:"type:varchar(20);not null;default:'employee'"`
	IsActive bool   `gorm:"not null;default:true"`

	JoinDate  time.Time `gorm:"type:date"`
	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
