// Package stream publishes verified reports to a Kafka topic for downstream
// consumers (alert aggregation, dashboards).
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

// Publisher produces verified-report events to a Kafka topic.
// It implements report.EventPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the given topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishVerified serializes and publishes one verified report.
func (p *Publisher) PublishVerified(ctx context.Context, r domain.Report, outcome report.VerificationOutcome) error {
	msg, err := serializeToMessage(r, outcome)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// verifiedEvent is the wire form of a verified report.
type verifiedEvent struct {
	ReportID      string     `json:"report_id"`
	CountyID      int        `json:"county_id"`
	EventType     string     `json:"event_type"`
	Severity      string     `json:"severity"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	LocationName  string     `json:"location_name"`
	TrustScore    float64    `json:"trust_score"`
	NearbyReports int        `json:"nearby_reports"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
}

// serializeToMessage marshals a verified report into a Kafka message keyed
// by report id.
func serializeToMessage(r domain.Report, outcome report.VerificationOutcome) (kafkago.Message, error) {
	event := verifiedEvent{
		ReportID:      r.ID.String(),
		CountyID:      r.CountyID,
		EventType:     r.EventType,
		Severity:      r.Severity,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		LocationName:  r.LocationName,
		TrustScore:    outcome.TrustScore,
		NearbyReports: outcome.NearbyReports,
		VerifiedAt:    r.VerifiedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize verified event: %w", err)
	}

	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(r.EventType)},
	}
	if r.VerifiedAt != nil {
		headers = append(headers, kafkago.Header{
			Key: "verified_at", Value: []byte(r.VerifiedAt.Format(time.RFC3339)),
		})
	}

	return kafkago.Message{
		Key:     []byte(r.ID.String()),
		Value:   data,
		Headers: headers,
	}, nil
}
