package events

import "time"

const BonusGrantedTopic = "hr.payroll.bonus.v1"

type BonusGrantedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	Amount        float64   `json:"amount"`
	ModifiedCount int64     `json:"modified_count"`
	GrantedBy     string    `json:"granted_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
