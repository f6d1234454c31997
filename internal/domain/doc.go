// Package domain models the IndyRadio station catalog records, listener
// preferences, and the match-scoring rules that turn one into the other.
//
// # Stations
//
// Each station carries a funding-risk tier and the share of its budget that
// comes from federal appropriations:
//
//	critical > high > moderate > low
//	federal_funding: integer percent, 0–100
//
// Free text fields (description, programs, needs) are scanned for keywords.
// The remaining fields (funding breakdown, listeners, coordinates) are
// display-only and pass through untouched.
//
// # Preferences
//
// A questionnaire yields four required answers (priority, geography,
// contribution, impact) and an optional budget. Only priority, geography and
// impact influence the score. Use [PreferencesBuilder] to collect answers one
// at a time; it refuses to build a partial value.
//
// # Scoring
//
//	priority      25  programs/description keyword match
//	geography     20  state list or "rural" in description (no-preference: 10)
//	risk          30/20/10/5 by tier, always awarded
//	federal       15  federal_funding > 50
//	impact        15  save-station on critical, investigative on needs
//
// The sum is capped at 100. expand-coverage and improve-quality have no
// impact rule and score 0.
//
// # Reasons
//
// [GenerateReason] uses its own clause list, which overlaps with but does not
// mirror the scoring rules. A station with no applicable clause gets
// [FallbackReason].
package domain
