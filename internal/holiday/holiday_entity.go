package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeNational = "national"
	TypeCompany  = "company"
	TypePersonal = "personal"
)

type Holiday struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"column:name;type:varchar(150);not null"`
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex"`
	Type        string    `gorm:"column:type;type:varchar(20);not null;default:company"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
