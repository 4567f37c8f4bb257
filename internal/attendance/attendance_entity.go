package attendance

import (
	"time"

	"github.com/google/uuid"
)

type WorkHourEntry struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	WorkDate    time.Time  `gorm:"column:work_date;type:date;not null;index"`
	ClockIn     time.Time  `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut    *time.Time `gorm:"column:clock_out;type:timestamptz"`
	Hours       float64    `gorm:"column:hours;not null;default:0"`
	Description *string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (WorkHourEntry) TableName() string {
	return "work_hour_entries"
}
