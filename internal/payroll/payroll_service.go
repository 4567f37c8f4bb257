package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/notification"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	GetPayslip(ctx context.Context, employeeID string) (PayslipResponse, error)
	SendPayslip(ctx context.Context, employeeID string) (BulkItemOutcome, error)
	SendAllPayslips(ctx context.Context) (BulkResult, error)
	ReportAllPayslips(ctx context.Context) ([]byte, error)
	AddBonusToAll(ctx context.Context, actorID string, req AddBonusRequest) (AddBonusResponse, error)
}

type service struct {
	db     *sql.DB
	repo   employee.Repository
	mailer notification.Mailer
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo employee.Repository, mailer notification.Mailer, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, mailer, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo employee.Repository,
	mailer notification.Mailer,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, mailer: mailer, outbox: outboxRepo, rdb: rdb, logger: l}
}

func (s *service) GetPayslip(ctx context.Context, employeeID string) (PayslipResponse, error) {
	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return PayslipResponse{}, err
	}

	slip := Compute(*empl, time.Now().UTC(), VariantStatement)
	return mapToPayslipResponse(slip), nil
}

func (s *service) SendPayslip(ctx context.Context, employeeID string) (BulkItemOutcome, error) {
	empl, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return BulkItemOutcome{}, err
	}

	slip := Compute(*empl, time.Now().UTC(), VariantStatement)
	if err := s.deliver(ctx, slip); err != nil {
		s.logger.Error("send payslip delivery failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return BulkItemOutcome{}, payrollerrors.ErrPayslipDelivery
	}

	s.logger.Info("send payslip success",
		zap.String("employee_id", employeeID),
		zap.String("email", empl.Email),
	)

	return BulkItemOutcome{
		Employee: empl.Name,
		Email:    empl.Email,
		Status:   OutcomeSuccess,
	}, nil
}

// SendAllPayslips is the canonical partial-failure batch: one employee's
// delivery failure never aborts the rest, and every employee appears in the
// itemized result exactly once.
func (s *service) SendAllPayslips(ctx context.Context) (BulkResult, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("send all payslips list failed", zap.Error(err))
		return BulkResult{}, err
	}

	now := time.Now().UTC()
	results := make([]BulkItemOutcome, 0, len(empls))
	successCount := 0
	failureCount := 0

	for _, empl := range empls {
		slip := Compute(empl, now, VariantStatement)

		if err := s.deliver(ctx, slip); err != nil {
			s.logger.Warn("payslip delivery failed, continuing batch",
				zap.String("employee_id", empl.ID.String()),
				zap.String("email", empl.Email),
				zap.Error(err),
			)
			results = append(results, BulkItemOutcome{
				Employee: empl.Name,
				Email:    empl.Email,
				Status:   OutcomeFailed,
				Error:    err.Error(),
			})
			failureCount++
			continue
		}

		results = append(results, BulkItemOutcome{
			Employee: empl.Name,
			Email:    empl.Email,
			Status:   OutcomeSuccess,
		})
		successCount++
	}

	s.logger.Info("send all payslips finished",
		zap.Int("total", len(empls)),
		zap.Int("success", successCount),
		zap.Int("failed", failureCount),
	)

	return BulkResult{
		Message: fmt.Sprintf("Bulk payslip sending completed. %d successful, %d failed.", successCount, failureCount),
		Results: results,
		Summary: BulkSummary{
			Total:   len(empls),
			Success: successCount,
			Failed:  failureCount,
		},
	}, nil
}

// ReportAllPayslips renders the full-roster PDF, one page per employee,
// using the report variant (bonus inside the deduction base).
func (s *service) ReportAllPayslips(ctx context.Context) ([]byte, error) {
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("report all payslips list failed", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	slips := make([]Payslip, len(empls))
	for i, empl := range empls {
		slips[i] = Compute(empl, now, VariantReport)
	}

	pdf, err := buildPayslipReport(slips, now)
	if err != nil {
		s.logger.Error("report all payslips render failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("report all payslips rendered", zap.Int("pages", len(slips)))
	return pdf, nil
}

func (s *service) AddBonusToAll(ctx context.Context, actorID string, req AddBonusRequest) (AddBonusResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("add bonus to all requested",
		zap.String("request_id", rid),
		zap.Float64("amount", req.BonusAmount),
	)

	// Validation strictly precedes mutation: a bad amount modifies nothing.
	amount := req.BonusAmount
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return AddBonusResponse{}, payrollerrors.ErrInvalidBonusAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add bonus begin tx failed", zap.Error(err))
		return AddBonusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	modified, err := qtx.IncrementBonusAll(ctx, amount)
	if err != nil {
		s.logger.Error("add bonus increment failed", zap.Error(err))
		return AddBonusResponse{}, err
	}

	if s.outbox != nil {
		event := events.BonusGrantedEvent{
			EventType:     "bonus_granted",
			RequestID:     rid,
			Amount:        amount,
			ModifiedCount: modified,
			GrantedBy:     actorID,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AddBonusResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   uuid.NewString(),
			EventType:     event.EventType,
			Topic:         events.BonusGrantedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("add bonus outbox persist failed", zap.Error(err))
			return AddBonusResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add bonus commit failed", zap.Error(err))
		return AddBonusResponse{}, err
	}

	// The roster cache still carries the pre-grant bonuses.
	s.invalidateListCache(ctx)

	s.logger.Info("add bonus to all success",
		zap.String("request_id", rid),
		zap.Float64("amount", amount),
		zap.Int64("modified_count", modified),
	)

	return AddBonusResponse{
		Message:       fmt.Sprintf("Bonus of $%.2f added to %d employees.", amount, modified),
		Amount:        amount,
		ModifiedCount: modified,
	}, nil
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

func (s *service) findEmployee(ctx context.Context, employeeID string) (*employee.Employee, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrEmployeeNotFound
	}
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return empl, nil
}

func (s *service) deliver(ctx context.Context, slip Payslip) error {
	subject := fmt.Sprintf("Payslip for %s - %s", slip.PayPeriod, slip.EmployeeName)
	return s.mailer.Send(ctx, slip.EmployeeEmail, subject, renderPayslipBody(slip))
}

// renderPayslipBody produces the plain-text statement mailed to the
// employee; figures are rounded here at the presentation boundary.
func renderPayslipBody(slip Payslip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PAYROLL SLIP\n\n")
	fmt.Fprintf(&b, "Employee Name: %s\n", slip.EmployeeName)
	fmt.Fprintf(&b, "Employee ID: %s\n", orNA(slip.EmployeeID))
	fmt.Fprintf(&b, "Department: %s\n", orNA(slip.Department))
	fmt.Fprintf(&b, "Position: %s\n", orNA(slip.Position))
	fmt.Fprintf(&b, "Pay Period: %s\n\n", slip.PayPeriod)
	fmt.Fprintf(&b, "EARNINGS\n")
	fmt.Fprintf(&b, "Regular Hours: %g hrs\n", slip.RegularHours)
	fmt.Fprintf(&b, "Hourly Rate: $%.2f\n", slip.HourlyRate)
	fmt.Fprintf(&b, "Gross Pay: $%.2f\n\n", slip.GrossPay)
	fmt.Fprintf(&b, "DEDUCTIONS\n")
	fmt.Fprintf(&b, "Tax (10%%): $%.2f\n", slip.Tax)
	fmt.Fprintf(&b, "Insurance (5%%): $%.2f\n", slip.Insurance)
	fmt.Fprintf(&b, "Total Deductions: $%.2f\n\n", slip.TotalDeduction)
	fmt.Fprintf(&b, "NET PAY: $%.2f\n\n", slip.NetPay)
	fmt.Fprintf(&b, "This is an automated payslip. Please contact HR if you have any questions.\n")
	return b.String()
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapToPayslipResponse(slip Payslip) PayslipResponse {
	resp := PayslipResponse{
		EmployeeID:   slip.EmployeeID,
		EmployeeName: slip.EmployeeName,
		Department:   slip.Department,
		Position:     slip.Position,
		PayPeriod:    slip.PayPeriod,
		RegularHours: slip.RegularHours,
		HourlyRate:   round2(slip.HourlyRate),
		GrossPay:     round2(slip.GrossPay),
		Deductions: DeductionsResponse{
			Tax:       round2(slip.Tax),
			Insurance: round2(slip.Insurance),
			Total:     round2(slip.TotalDeduction),
		},
		NetPay: round2(slip.NetPay),
	}
	if slip.Variant == VariantReport {
		resp.Bonus = round2(slip.Bonus)
		resp.TotalEarnings = round2(slip.TotalEarnings)
	}
	return resp
}
