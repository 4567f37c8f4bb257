package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-payroll/internal/events"
	leaveerrors "go-payroll/internal/leave/errors"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetByPosition(ctx context.Context, employeeID string, position int) (LeaveResponse, error)
	Approve(ctx context.Context, employeeID, leaveID, approver string) (LeaveResponse, error)
	Reject(ctx context.Context, employeeID, leaveID, approver string) (LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

// mapPolicyToType resolves a free-form policy label to a canonical leave
// type. "Medical Leave" maps to sick, the nearest canonical type; anything
// unrecognized is a personal day.
func mapPolicyToType(policy string) string {
	switch policy {
	case "Medical Leave":
		return TypeSick
	case "Vacation Leave":
		return TypeVacation
	default:
		return TypePersonal
	}
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("employee_id", employeeID),
		zap.String("date", req.Date),
		zap.String("policy", req.Policy),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return LeaveResponse{}, err
	}

	// A caller-supplied status is never honored; submissions always enter
	// the lifecycle at pending.
	if req.Status != "" && !strings.EqualFold(req.Status, StatusPending) {
		s.logger.Warn("submit leave ignoring requested status override",
			zap.String("employee_id", employeeID),
			zap.String("requested_status", req.Status),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("submit leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  mapPolicyToType(req.Policy),
		Days:       1,
		StartDate:  date,
		EndDate:    date,
		Reason:     fmt.Sprintf("Requested via dashboard on %s", time.Now().UTC().Format("2006-01-02")),
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("type", l.LeaveType),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	leaves, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByPosition(ctx context.Context, employeeID string, position int) (LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if position < 0 {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	l, err := s.repo.FindByEmployeePosition(ctx, employeeID, position)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, employeeID, leaveID, approver string) (LeaveResponse, error) {
	return s.decide(ctx, employeeID, leaveID, approver, StatusApproved)
}

func (s *service) Reject(ctx context.Context, employeeID, leaveID, approver string) (LeaveResponse, error) {
	return s.decide(ctx, employeeID, leaveID, approver, StatusRejected)
}

// decide performs the single pending→terminal transition. The pending check
// and the write run inside one transaction; a request that lost the race
// surfaces as leaveerrors.ErrLeaveAlreadyDecided.
func (s *service) decide(ctx context.Context, employeeID, leaveID, approver, targetStatus string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("leave_id", leaveID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(employeeID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if _, err := uuid.Parse(leaveID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	if strings.TrimSpace(approver) == "" {
		return LeaveResponse{}, leaveerrors.ErrApproverRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndEmployee(ctx, employeeID, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid state",
			zap.String("leave_id", leaveID),
			zap.String("current_status", l.Status),
			zap.String("target_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	now := time.Now().UTC()
	l.Status = targetStatus
	l.ApprovedBy = &approver
	l.ApprovedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveDecidedEvent{
			EventType:  "leave_decided",
			RequestID:  rid,
			EmployeeID: employeeID,
			LeaveID:    leaveID,
			Status:     targetStatus,
			DecidedBy:  approver,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal leave decided event failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave",
			AggregateID:   leaveID,
			EventType:     event.EventType,
			Topic:         events.LeaveDecidedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide leave outbox persist failed",
				zap.String("leave_id", leaveID),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("leave_id", leaveID),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("leave_id", leaveID),
		zap.String("status", targetStatus),
		zap.String("decided_by", approver),
	)

	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		Days:       l.Days,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Status:     l.Status,
		Reason:     l.Reason,
	}
	if l.ApprovedBy != nil {
		v := *l.ApprovedBy
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
