package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event types accepted at intake.
const (
	EventFlood      = "flood"
	EventDrought    = "drought"
	EventCropDamage = "crop_damage"
	EventStorm      = "storm"
	EventHeatwave   = "heatwave"
	EventOther      = "other"
)

// Severity levels accepted at intake.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Verification statuses. StatusFalse is only reachable through an
// out-of-band manual rejection, never through the automatic policy.
const (
	StatusUnverified = "unverified"
	StatusPending    = "pending"
	StatusVerified   = "verified"
	StatusFalse      = "false"
)

// Verification methods recorded alongside a status.
const (
	MethodClustering   = "clustering"
	MethodManualReview = "manual_review"
	MethodSatellite    = "satellite"
)

// Report is a community-submitted climate event observation.
type Report struct {
	ID uuid.UUID `json:"id"`

	CountyID     int     `json:"county_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`

	EventType   string `json:"event_type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`

	ReporterPhone string `json:"reporter_phone,omitempty"`
	ReporterName  string `json:"reporter_name,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`

	VerificationStatus string  `json:"verification_status"`
	TrustScore         float64 `json:"trust_score"`
	VerificationMethod string  `json:"verification_method,omitempty"`

	EventDate  time.Time  `json:"event_date"`
	ReportedAt time.Time  `json:"reported_at"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// SubmitParams carries the caller-supplied fields of a new report.
// Identity, timestamps, and verification state are assigned by the service.
type SubmitParams struct {
	EventType    string
	Severity     string
	Description  string
	Latitude     float64
	Longitude    float64
	LocationName string

	ReporterPhone string
	ReporterName  string
	ImageURL      string

	// EventDate is the raw form value; empty means "now".
	EventDate string
}

// Date-time layouts accepted for the event_date form field.
var eventDateLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// ValidEventType reports whether v is a member of the event type set.
func ValidEventType(v string) bool {
	switch v {
	case EventFlood, EventDrought, EventCropDamage, EventStorm, EventHeatwave, EventOther:
		return true
	}
	return false
}

// ValidSeverity reports whether v is a member of the severity set.
func ValidSeverity(v string) bool {
	switch v {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ValidStatus reports whether v is a member of the verification status set.
func ValidStatus(v string) bool {
	switch v {
	case StatusUnverified, StatusPending, StatusVerified, StatusFalse:
		return true
	}
	return false
}

// Validate checks enum membership and parses the event date. It returns the
// parsed event date (submission time when the field is empty) so the caller
// never re-parses. Violations fail with an invalid-coded error naming the
// bad field; nothing is persisted on failure.
func (p SubmitParams) Validate() (time.Time, error) {
	const op = "report.validate"

	if !ValidEventType(p.EventType) {
		return time.Time{}, Errorf(EINVALID, op, "invalid event type %q", p.EventType)
	}
	if !ValidSeverity(p.Severity) {
		return time.Time{}, Errorf(EINVALID, op, "invalid severity level %q", p.Severity)
	}
	if strings.TrimSpace(p.Description) == "" {
		return time.Time{}, Errorf(EINVALID, op, "description is required")
	}
	if strings.TrimSpace(p.LocationName) == "" {
		return time.Time{}, Errorf(EINVALID, op, "location_name is required")
	}

	if p.EventDate == "" {
		return clock.Now().UTC(), nil
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, p.EventDate); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Errorf(EINVALID, op, "invalid date format %q", p.EventDate)
}
