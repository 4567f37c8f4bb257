package employee

import (
	"context"
	"database/sql"
	"testing"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn            func(tx *sql.Tx) Repository
	createFn            func(ctx context.Context, empl *Employee) error
	findAllFn           func(ctx context.Context) ([]Employee, error)
	findByIDFn          func(ctx context.Context, id string) (*Employee, error)
	findByEmailFn       func(ctx context.Context, email string) (*Employee, error)
	updateFn            func(ctx context.Context, empl *Employee) error
	incrementBonusAllFn func(ctx context.Context, amount float64) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	return f.findByEmailFn(ctx, email)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) IncrementBonusAll(ctx context.Context, amount float64) (int64, error) {
	return f.incrementBonusAllFn(ctx, amount)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func TestService_Register_Defaults(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error { saved = *empl; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), CreateEmployeeRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	assert.NoError(t, err)

	assert.Equal(t, 25.0, resp.HourlyRate)
	assert.Equal(t, "EMP-000001", resp.EmployeeNumber)
	assert.Equal(t, RoleEmployee, resp.Role)
	assert.True(t, resp.IsActive)
	assert.Zero(t, resp.TotalHours)
	assert.Zero(t, resp.Bonus)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "s3cret", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_KeepsExplicitRate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error { return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Register(context.Background(), CreateEmployeeRequest{
		Name:       "Bob Jones",
		Email:      "bob@example.com",
		Password:   "pw",
		HourlyRate: 31.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, 31.5, resp.HourlyRate)
}

func TestService_Register_NegativeRate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeCounter{}, nil)

	_, err := svc.Register(context.Background(), CreateEmployeeRequest{
		Name:       "Carol",
		Email:      "carol@example.com",
		Password:   "pw",
		HourlyRate: -1,
	})
	assert.ErrorIs(t, err, employeeerrors.ErrNegativeHourlyRate)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, empl *Employee) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "idx_employees_email"}
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Register(context.Background(), CreateEmployeeRequest{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetDetails_SalaryFormula(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, qid string) (*Employee, error) {
			return &Employee{
				ID:         id,
				Name:       "Alice",
				TotalHours: 80,
				HourlyRate: 20,
				Bonus:      500,
			}, nil
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	resp, err := svc.GetDetails(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, 1600.0, resp.Computed.BaseSalary)
	assert.Equal(t, 2100.0, resp.Computed.Salary)
	assert.Equal(t, 500.0, resp.Computed.Bonus)
}

func TestService_GetDetails_ZeroRateStaysZero(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, qid string) (*Employee, error) {
			return &Employee{ID: id, Name: "NoRate", TotalHours: 40}, nil
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	// The detail view reports the stored rate as-is; only payslips default
	// a missing rate.
	resp, err := svc.GetDetails(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Zero(t, resp.Computed.BaseSalary)
	assert.Zero(t, resp.Computed.Salary)
}

func TestService_GetDetails_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	_, err := svc.GetDetails(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)

	_, err = svc.GetDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}

func TestService_GetAll(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findAllFn: func(ctx context.Context) ([]Employee, error) {
			return []Employee{
				{ID: uuid.New(), Name: "Alice"},
				{ID: uuid.New(), Name: "Bob"},
			}, nil
		},
	}

	svc := NewService(db, repo, &fakeCounter{}, nil)

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Employees, 2)
}

func TestService_Deactivate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	stored := Employee{ID: id, Name: "Alice", IsActive: true}

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByIDFn = func(ctx context.Context, qid string) (*Employee, error) {
		cp := stored
		return &cp, nil
	}
	repo.updateFn = func(ctx context.Context, empl *Employee) error { stored = *empl; return nil }

	svc := NewService(db, repo, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	assert.NoError(t, svc.Deactivate(context.Background(), id.String()))
	assert.False(t, stored.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
