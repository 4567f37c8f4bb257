package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindByIDAndEmployee(ctx context.Context, employeeID, id string) (*Leave, error)
	FindByEmployeePosition(ctx context.Context, employeeID string, position int) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndEmployee(ctx context.Context, employeeID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&l, "id = ?", id).Error
	return &l, err
}

// FindByEmployeePosition serves clients that still address a leave by its
// index in the employee's sequence. Ordering matches FindAllByEmployee so
// positions are stable for append-only data.
func (r *repository) FindByEmployeePosition(ctx context.Context, employeeID string, position int) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC, id ASC").
		Offset(position).
		First(&l).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
