package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savannawatch/climate-watch-api/internal/report"
)

// SubscriberStore looks up the active subscriber phone numbers for a county
// and alert type (including "all" wildcard subscriptions).
type SubscriberStore interface {
	SubscriberPhones(ctx context.Context, countyID int, alertType string) ([]string, error)
}

// Sender delivers one message to a set of recipients.
type Sender interface {
	SendBulk(ctx context.Context, recipients []string, message string) (int, error)
}

// Dispatcher implements report.AlertDispatcher: it resolves a county's
// subscribers and sends them one bulk SMS.
type Dispatcher struct {
	subscribers SubscriberStore
	sender      Sender
	logger      *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(subscribers SubscriberStore, sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		subscribers: subscribers,
		sender:      sender,
		logger:      logger,
	}
}

// SendWeatherAlert delivers the message to every active subscriber of the
// county whose subscription covers alertType. Zero matching subscribers is
// a successful no-op.
func (d *Dispatcher) SendWeatherAlert(ctx context.Context, countyID int, alertType, message string) (report.AlertDelivery, error) {
	phones, err := d.subscribers.SubscriberPhones(ctx, countyID, alertType)
	if err != nil {
		return report.AlertDelivery{}, fmt.Errorf("resolve subscribers: %w", err)
	}

	if len(phones) == 0 {
		d.logger.Info("no subscribers for alert", "county_id", countyID, "alert_type", alertType)
		return report.AlertDelivery{Success: true, SentCount: 0}, nil
	}

	sent, err := d.sender.SendBulk(ctx, phones, message)
	if err != nil {
		return report.AlertDelivery{}, fmt.Errorf("send alert: %w", err)
	}

	return report.AlertDelivery{Success: true, SentCount: sent}, nil
}
