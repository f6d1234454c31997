package domain

import "strings"

// FallbackReason is used when no reason clause applies to a station.
const FallbackReason = "This station matches your support preferences."

const (
	reasonCritical    = "in critical need of immediate support"
	reasonRural       = "serves rural communities that match your interests"
	reasonRedState    = "located in a politically conservative state as preferred"
	reasonFederalRisk = "heavily dependent on federal funding under threat"
)

// GenerateReason explains a recommendation in one sentence.
//
// The clauses are written independently of ComputeScore and only partly
// overlap with it: priority keyword matches raise the score but never show
// up here. The rural clause matches "rural" case-sensitively while the score
// ignores case.
func GenerateReason(station Station, prefs UserPreferences) string {
	var clauses []string

	if station.RiskLevel == RiskCritical {
		clauses = append(clauses, reasonCritical)
	}
	if prefs.Priority == PriorityRuralCommunities && strings.Contains(station.Description, "rural") {
		clauses = append(clauses, reasonRural)
	}
	if prefs.Geography == GeographyRedStates && inConservativeState(station) {
		clauses = append(clauses, reasonRedState)
	}
	if station.HighFederalDependency() {
		clauses = append(clauses, reasonFederalRisk)
	}

	if len(clauses) == 0 {
		return FallbackReason
	}
	return "This station is " + strings.Join(clauses, " and ") + "."
}
