package consumer

import (
	"context"
	"encoding/json"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeBonusGrants records an audit trail entry for every company-wide
// bonus grant that went through the outbox.
func ConsumeBonusGrants(
	ctx context.Context,
	reader *kafkago.Reader,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.bonus_grant")
	log.Info("bonus grant consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("bonus grant consumer stopped")
				return
			}
			log.Error("fetch bonus grant message failed", zap.Error(err))
			continue
		}

		var event events.BonusGrantedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode bonus grant event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, bootstrap.AuditLog{
			Action:  "BONUS_GRANTED",
			Message: "Company-wide bonus applied",
			Meta: map[string]any{
				"amount":         event.Amount,
				"modified_count": event.ModifiedCount,
				"granted_by":     event.GrantedBy,
				"request_id":     event.RequestID,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit bonus grant message failed", zap.Error(err))
			continue
		}

		log.Info("bonus grant audited",
			zap.Float64("amount", event.Amount),
			zap.Int64("modified_count", event.ModifiedCount),
		)
	}
}
