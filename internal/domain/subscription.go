package domain

// AlertTypeAll is the wildcard subscription entry matching every alert type.
const AlertTypeAll = "all"

// Subscription is a phone number's standing request for alerts in a county.
type Subscription struct {
	PhoneNumber string   `json:"phone_number"`
	CountyID    int      `json:"county_id"`
	AlertTypes  []string `json:"alert_types"`
	Language    string   `json:"language"`
	Active      bool     `json:"active"`
}

// Wants reports whether the subscription covers the given alert type,
// either explicitly or through the "all" wildcard.
func (s Subscription) Wants(alertType string) bool {
	if !s.Active {
		return false
	}
	for _, t := range s.AlertTypes {
		if t == alertType || t == AlertTypeAll {
			return true
		}
	}
	return false
}
