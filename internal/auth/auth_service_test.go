package auth

import (
	"context"
	"database/sql"
	"testing"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepo struct {
	employee.Repository
	byEmail map[string]*employee.Employee
	byID    map[string]*employee.Employee
	updated *employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if empl, ok := f.byEmail[email]; ok {
		cp := *empl
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if empl, ok := f.byID[id]; ok {
		cp := *empl
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	f.updated = empl
	return nil
}

func newTestEmployee(t *testing.T, password string) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &employee.Employee{
		ID:           uuid.New(),
		Name:         "Alice Smith",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
		IsActive:     true,
	}
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	empl := newTestEmployee(t, "s3cret")
	repo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{empl.Email: empl}}
	svc := NewService(repo)

	access, refresh, resp, err := svc.Login(context.Background(), empl.Email, "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, empl.ID.String(), resp.ID)
	assert.Equal(t, employee.RoleEmployee, resp.Role)

	// A successful login stamps the last-login time.
	assert.NotNil(t, repo.updated)
	assert.NotNil(t, repo.updated.LastLogin)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	empl := newTestEmployee(t, "s3cret")
	repo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{empl.Email: empl}}
	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), empl.Email, "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	repo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{}}
	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "pw")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestService_Login_DeactivatedAccount(t *testing.T) {
	empl := newTestEmployee(t, "s3cret")
	empl.IsActive = false
	repo := &fakeEmployeeRepo{byEmail: map[string]*employee.Employee{empl.Email: empl}}
	svc := NewService(repo)

	_, _, _, err := svc.Login(context.Background(), empl.Email, "s3cret")
	assert.ErrorIs(t, err, autherrors.ErrAccountDisabled)
}

func TestService_RefreshToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	empl := newTestEmployee(t, "s3cret")
	repo := &fakeEmployeeRepo{
		byEmail: map[string]*employee.Employee{empl.Email: empl},
		byID:    map[string]*employee.Employee{empl.ID.String(): empl},
	}
	svc := NewService(repo)

	_, refresh, _, err := svc.Login(context.Background(), empl.Email, "s3cret")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, empl.ID.String(), resp.ID)
}

func TestService_RefreshToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	svc := NewService(&fakeEmployeeRepo{})

	_, _, _, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_GetMe(t *testing.T) {
	empl := newTestEmployee(t, "s3cret")
	repo := &fakeEmployeeRepo{byID: map[string]*employee.Employee{empl.ID.String(): empl}}
	svc := NewService(repo)

	resp, err := svc.GetMe(context.Background(), empl.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, empl.Email, resp.Email)

	_, err = svc.GetMe(context.Background(), "bad")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	_, err = svc.GetMe(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
