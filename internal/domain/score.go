package domain

import (
	"slices"
	"strings"
)

// Score component weights. The raw sum can reach 105 and is clipped to MaxScore.
const (
	MaxScore = 100

	priorityMatchPoints     = 25
	geographyMatchPoints    = 20
	geographyNeutralPoints  = 10
	federalDependencyPoints = 15
	impactMatchPoints       = 15
)

var (
	// westCoastStates is the "local" area offered by the questionnaire (Pacific Northwest and California).
	westCoastStates = []string{"CA", "WA", "OR"}

	// conservativeStates backs both the red-states geography score and its reason clause.
	conservativeStates = []string{"TX", "AR", "UT", "ID", "MT"}
)

// riskWeight is awarded unconditionally and dominates the score.
func riskWeight(level RiskLevel) int {
	switch level {
	case RiskCritical:
		return 30
	case RiskHigh:
		return 20
	case RiskModerate:
		return 10
	case RiskLow:
		return 5
	default:
		return 0
	}
}

// ComputeScore returns the 0–100 match score of a station for a preference set.
// It sums five independent components, each all-or-nothing:
//   - priority keyword match (25)
//   - geography match (20, or 10 for no-preference)
//   - risk tier (critical 30, high 20, moderate 10, low 5)
//   - federal dependency above 50% (15)
//   - impact match (15)
//
// Keyword matching is case-insensitive substring search over the station's
// programs, description and needs.
func ComputeScore(station Station, prefs UserPreferences) int {
	score := priorityScore(station, prefs.Priority) +
		geographyScore(station, prefs.Geography) +
		riskWeight(station.RiskLevel) +
		federalScore(station) +
		impactScore(station, prefs.Impact)
	return min(MaxScore, score)
}

func priorityScore(station Station, priority Priority) int {
	var matched bool
	switch priority {
	case PriorityLocalNews:
		matched = anyContains(station.Programs, "news", "edition")
	case PriorityRuralCommunities:
		matched = containsFold(station.Description, "rural")
	case PriorityEmergencyServices:
		matched = anyContains(station.Programs, "emergency", "hurricane")
	case PriorityCulturalProgramming:
		matched = anyContains(station.Programs, "music", "cultural")
	}
	if matched {
		return priorityMatchPoints
	}
	return 0
}

func geographyScore(station Station, geography Geography) int {
	switch geography {
	case GeographyLocal:
		if slices.Contains(westCoastStates, station.State) {
			return geographyMatchPoints
		}
	case GeographyRuralNational:
		if containsFold(station.Description, "rural") {
			return geographyMatchPoints
		}
	case GeographyRedStates:
		if inConservativeState(station) {
			return geographyMatchPoints
		}
	case GeographyNoPreference:
		return geographyNeutralPoints
	}
	return 0
}

func federalScore(station Station) int {
	if station.HighFederalDependency() {
		return federalDependencyPoints
	}
	return 0
}

// impactScore has no rule for expand-coverage or improve-quality; both score 0.
func impactScore(station Station, impact ImpactType) int {
	switch impact {
	case ImpactSaveStation:
		if station.RiskLevel == RiskCritical {
			return impactMatchPoints
		}
	case ImpactInvestigative:
		if anyContains(station.Needs, "investigative") {
			return impactMatchPoints
		}
	}
	return 0
}

func inConservativeState(station Station) bool {
	return slices.Contains(conservativeStates, station.State)
}

// containsFold reports whether the lowercased text contains keyword.
// Keywords are always given in lowercase.
func containsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), keyword)
}

// anyContains reports whether any entry contains any of the keywords, ignoring case.
func anyContains(entries []string, keywords ...string) bool {
	for _, e := range entries {
		lower := strings.ToLower(e)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}
