package attendance

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (WorkHourEntryResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (WorkHourEntryResponse, error)
	History(ctx context.Context, employeeID string) ([]WorkHourEntryResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	rdb          *redis.Client
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employeeRepo employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, employeeRepo: employeeRepo, rdb: rdb, logger: l}
}

// ClockIn opens today's work entry. At most one entry exists per employee
// per UTC day.
func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (WorkHourEntryResponse, error) {
	emplID, err := uuid.Parse(employeeID)
	if err != nil {
		return WorkHourEntryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkHourEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return WorkHourEntryResponse{}, err
	}
	if err == nil && existing != nil {
		return WorkHourEntryResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	entry := &WorkHourEntry{
		ID:          uuid.New(),
		EmployeeID:  emplID,
		WorkDate:    today,
		ClockIn:     now,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, entry); err != nil {
		return WorkHourEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkHourEntryResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("employee_id", employeeID),
		zap.String("work_date", today.Format("2006-01-02")),
	)
	return mapToResponse(*entry), nil
}

// ClockOut closes today's entry and folds the worked hours into the
// employee's running total in the same transaction, so payslips never see
// an entry without its accumulated hours.
func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (WorkHourEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return WorkHourEntryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkHourEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	entry, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkHourEntryResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return WorkHourEntryResponse{}, err
	}
	if entry.ClockOut != nil {
		return WorkHourEntryResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	worked := round2(now.Sub(entry.ClockIn).Hours())
	entry.ClockOut = &now
	entry.Hours = worked
	if req.Description != nil {
		entry.Description = req.Description
	}

	if err := qtx.Update(ctx, entry); err != nil {
		return WorkHourEntryResponse{}, err
	}

	emplTx := s.employeeRepo.WithTx(tx)
	empl, err := emplTx.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkHourEntryResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return WorkHourEntryResponse{}, err
	}
	empl.TotalHours = round2(empl.TotalHours + worked)
	if err := emplTx.Update(ctx, empl); err != nil {
		return WorkHourEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkHourEntryResponse{}, err
	}

	// TotalHours feeds the cached roster view.
	s.invalidateListCache(ctx)

	s.logger.Info("clock out recorded",
		zap.String("employee_id", employeeID),
		zap.Float64("hours", worked),
	)
	return mapToResponse(*entry), nil
}

func (s *service) History(ctx context.Context, employeeID string) ([]WorkHourEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	entries, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	res := make([]WorkHourEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = mapToResponse(entry)
	}
	return res, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employee.ListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", employee.ListCacheKey),
		)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToResponse(entry WorkHourEntry) WorkHourEntryResponse {
	resp := WorkHourEntryResponse{
		ID:          entry.ID.String(),
		EmployeeID:  entry.EmployeeID.String(),
		WorkDate:    entry.WorkDate.Format("2006-01-02"),
		ClockIn:     entry.ClockIn.Format(time.RFC3339),
		Hours:       entry.Hours,
		Description: entry.Description,
	}
	if entry.ClockOut != nil {
		v := entry.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
