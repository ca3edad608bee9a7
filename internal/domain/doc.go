// Package domain models community-reported climate events across Kenya's
// 47 counties.
//
// # Reports
//
// A Report is a single observation submitted by a community member: an event
// type (flood, drought, crop damage, storm, heatwave, or other), a severity
// level, free-text description, WGS-84 coordinates, and optional reporter
// contact details. Reports enter the system unverified with a trust score
// of zero and are scored by the verification policy immediately after
// submission.
//
// # Verification policy
//
// Verification is a clustering heuristic: corroborating reports of the same
// event type within a fixed spatial tolerance and a trailing 24-hour window
// raise confidence that the event is real.
//
//	>= 3 nearby reports            -> verified, trust 0.8, method "clustering"
//	phone + description > 50 chars -> pending,  trust 0.6, method "manual_review"
//	otherwise                      -> unverified, trust 0.0
//
// The spatial tolerance is 0.1 decimal degrees applied independently to
// latitude and longitude (a degree box, roughly 10 km near the equator).
// Exact great-circle distance is deliberately not used; the store's
// proximity query must reproduce the same box semantics so that repeated
// verification passes are comparable.
//
// Trust scores are fixed per policy branch, not a continuous function of
// the nearby count. See [DecideVerification].
//
// # Counties
//
// Counties are referenced by integer id 1-47. Resolution from coordinates
// is delegated to a [CountyLocator]; when a point cannot be resolved the
// intake service assigns a configured fallback county rather than failing.
package domain
