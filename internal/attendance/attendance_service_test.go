package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, entry *WorkHourEntry) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error)
	findAllByEmployeeFn     func(ctx context.Context, employeeID string) ([]WorkHourEntry, error)
	updateFn                func(ctx context.Context, entry *WorkHourEntry) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, entry *WorkHourEntry) error {
	return f.createFn(ctx, entry)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]WorkHourEntry, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) Update(ctx context.Context, entry *WorkHourEntry) error {
	return f.updateFn(ctx, entry)
}

type fakeEmployeeRepo struct {
	employee.Repository
	stored *employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.stored
	return &cp, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	*f.stored = *empl
	return nil
}

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	empl := &employee.Employee{ID: employeeID, Name: "Alice", TotalHours: 100}
	ctx := context.Background()

	var saved WorkHourEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, entry *WorkHourEntry) error { saved = *entry; return nil }
	repo.updateFn = func(ctx context.Context, entry *WorkHourEntry) error { saved = *entry; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := saved
		return &cp, nil
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{stored: empl}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, employeeID.String(), ClockInRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, inResp.ID)
	assert.Nil(t, inResp.ClockOut)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, employeeID.String(), ClockOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, outResp.ClockOut)

	// Worked hours land on the employee's running total in the same commit.
	assert.Equal(t, 100+outResp.Hours, empl.TotalHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_InvalidatesRosterCache(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	employeeID := uuid.New()
	empl := &employee.Employee{ID: employeeID, Name: "Alice", TotalHours: 40}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.updateFn = func(ctx context.Context, entry *WorkHourEntry) error { return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
		return &WorkHourEntry{ID: uuid.New(), ClockIn: time.Now().UTC().Add(-8 * time.Hour)}, nil
	}

	rdb, rmock := redismock.NewClientMock()
	rmock.ExpectDel(employee.ListCacheKey).SetVal(1)

	svc := NewService(db, repo, &fakeEmployeeRepo{stored: empl}, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.ClockOut(context.Background(), employeeID.String(), ClockOutRequest{})
	assert.NoError(t, err)
	assert.NoError(t, rmock.ExpectationsWereMet())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
		return &WorkHourEntry{ID: uuid.New()}, nil
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), uuid.New().String(), ClockInRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_WithoutClockIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockOut(context.Background(), uuid.New().String(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
}

func TestService_ClockOut_Twice(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	now := time.Now().UTC()
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*WorkHourEntry, error) {
		return &WorkHourEntry{ID: uuid.New(), ClockIn: now.Add(-8 * time.Hour), ClockOut: &now}, nil
	}

	svc := NewService(db, repo, &fakeEmployeeRepo{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockOut(context.Background(), uuid.New().String(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)
}

func TestService_InvalidEmployeeID(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeEmployeeRepo{}, nil)

	_, err := svc.ClockIn(context.Background(), "bad", ClockInRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)

	_, err = svc.History(context.Background(), "bad")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)
}
