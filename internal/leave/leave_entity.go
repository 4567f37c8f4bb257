package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeVacation  = "vacation"
	TypeSick      = "sick"
	TypePersonal  = "personal"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
)

// Leave rows carry a generated id so approve/reject route by id; the
// positional index of a row inside its employee's sequence is derived from
// ordering, never stored.
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_created"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	Days      int       `gorm:"type:int;not null;default:1"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text"`

	// approvedBy/approvedAt are set together on the terminal transition and
	// only then; both rejected and approved decisions record the decider.
	Status     string     `gorm:"type:varchar(20);not null;default:'pending'"`
	ApprovedBy *string    `gorm:"type:varchar(160)"`
	ApprovedAt *time.Time

	CreatedAt time.Time `gorm:"index:idx_leaves_employee_created"`
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leaves"
}
