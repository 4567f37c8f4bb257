package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveDecisions delivers a decision email for every approved or
// rejected leave request. Employee lookup failures are retried by leaving
// the message uncommitted; malformed payloads are committed and skipped.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeService employee.Service,
	mailer notification.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		empl, err := employeeService.GetByID(ctx, event.EmployeeID)
		if err != nil {
			log.Error("resolve employee for leave decision failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		subject := fmt.Sprintf("Your leave request has been %s", event.Status)
		body := fmt.Sprintf(
			"Hello %s,\n\nYour leave request (%s) has been %s.\n\nRegards,\nHR Team\n",
			empl.Name, event.LeaveID, strings.ToLower(event.Status),
		)
		if err := mailer.Send(ctx, empl.Email, subject, body); err != nil {
			log.Error("send leave decision email failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("email", empl.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision email sent",
			zap.String("employee_id", event.EmployeeID),
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}
