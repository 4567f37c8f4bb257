package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *WorkHourEntry) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]WorkHourEntry, error)
	Update(ctx context.Context, entry *WorkHourEntry) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, entry *WorkHourEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
	var entry WorkHourEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&entry).Error
	return &entry, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]WorkHourEntry, error) {
	var entries []WorkHourEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("work_date DESC, clock_in DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Update(ctx context.Context, entry *WorkHourEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}
