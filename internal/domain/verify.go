package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Clustering parameters. The tolerance is applied independently to latitude
// and longitude (a degree box), matching the store's proximity predicate.
const (
	// ProximityToleranceDegrees is roughly 10 km at equatorial latitudes.
	ProximityToleranceDegrees = 0.1

	// ClusterWindow is the trailing window for corroborating reports.
	ClusterWindow = 24 * time.Hour

	// ClusterThreshold is the nearby-report count at which a report is
	// considered corroborated (inclusive).
	ClusterThreshold = 3

	// detailedDescriptionLen is the strict lower bound above which a
	// description counts as detailed for the manual-review branch.
	detailedDescriptionLen = 50
)

// Trust scores are fixed per branch. Kept discrete rather than derived from
// the nearby count; see the package comment.
const (
	trustVerified   = 0.8
	trustPending    = 0.6
	trustUnverified = 0.0
)

// Decision is the outcome of one verification policy evaluation.
type Decision struct {
	Status     string
	TrustScore float64
	Method     string
}

// DecideVerification applies the verification policy to a report given the
// count of nearby same-type reports in the trailing window. Branches are
// evaluated in precedence order; the first match wins:
//
//  1. nearbyCount >= ClusterThreshold: verified by clustering.
//  2. reporter phone present and description longer than 50 characters:
//     pending manual review.
//  3. otherwise: unverified.
func DecideVerification(nearbyCount int, reporterPhone, description string) Decision {
	if nearbyCount >= ClusterThreshold {
		return Decision{Status: StatusVerified, TrustScore: trustVerified, Method: MethodClustering}
	}
	if reporterPhone != "" && utf8.RuneCountInString(description) > detailedDescriptionLen {
		return Decision{Status: StatusPending, TrustScore: trustPending, Method: MethodManualReview}
	}
	return Decision{Status: StatusUnverified, TrustScore: trustUnverified, Method: MethodClustering}
}

// alertDescriptionLen caps how much of the description is quoted in an alert.
const alertDescriptionLen = 100

// AlertMessage formats the SMS body sent to county subscribers when a report
// is verified. The description is truncated to its first 100 characters
// (code points, so multi-byte text is never split mid-rune) and always
// followed by an ellipsis marker.
func AlertMessage(r Report) string {
	desc := r.Description
	if runes := []rune(desc); len(runes) > alertDescriptionLen {
		desc = string(runes[:alertDescriptionLen])
	}
	return fmt.Sprintf("CLIMATE ALERT: %s reported in %s. Severity: %s. Description: %s...",
		strings.ToUpper(r.EventType), r.LocationName, strings.ToUpper(r.Severity), desc)
}
