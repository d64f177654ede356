// Package alert is the notification port for critical clinical findings.
// The scoring engine stays pure; the service layer fires alerts through a
// Sink wired up by the caller. Alerts are fire-and-forget: they must not
// block and carry no ordering guarantee relative to score recomputation.
package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/peds-protocol-api/pkg/messaging"
)

// Severity of a fired alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Alert is one notification payload.
type Alert struct {
	SessionID uuid.UUID `json:"session_id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	FiredAt   time.Time `json:"fired_at"`
}

// Sink receives alerts. Implementations must return quickly; slow
// delivery belongs behind the broker, not in the request path.
type Sink interface {
	Fire(ctx context.Context, a Alert)
}

// NopSink discards all alerts.
type NopSink struct{}

func (NopSink) Fire(context.Context, Alert) {}

const alertChannel = "clinical.alerts"

// BrokerSink publishes alerts on the message broker without waiting for
// delivery.
type BrokerSink struct {
	broker messaging.Broker
	logger *zerolog.Logger
}

func NewBrokerSink(broker messaging.Broker, logger *zerolog.Logger) *BrokerSink {
	return &BrokerSink{broker: broker, logger: logger}
}

func (s *BrokerSink) Fire(ctx context.Context, a Alert) {
	if a.FiredAt.IsZero() {
		a.FiredAt = time.Now()
	}
	go func() {
		// Detached from the request context so a finished request cannot
		// cancel delivery mid-flight.
		if err := s.broker.Publish(context.Background(), alertChannel, a); err != nil {
			s.logger.Warn().Err(err).
				Str("session_id", a.SessionID.String()).
				Str("severity", string(a.Severity)).
				Msg("alert publish failed")
		}
	}()
}
