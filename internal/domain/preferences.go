package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompletePreferences is returned when a required questionnaire answer is missing.
var ErrIncompletePreferences = errors.New("incomplete preferences")

// InvalidAnswerError reports a value outside the allowed answers of a field.
type InvalidAnswerError struct {
	Field Field
	Value string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

type (
	Priority     string
	Geography    string
	Contribution string
	ImpactType   string
	Budget       string
)

const (
	PriorityLocalNews           Priority = "local-news"
	PriorityRuralCommunities    Priority = "rural-communities"
	PriorityEmergencyServices   Priority = "emergency-services"
	PriorityCulturalProgramming Priority = "cultural-programming"
)

const (
	GeographyLocal         Geography = "local"
	GeographyRuralNational Geography = "rural-national"
	GeographyRedStates     Geography = "red-states"
	GeographyNoPreference  Geography = "no-preference"
)

const (
	ContributionMonthly   Contribution = "monthly"
	ContributionOneTime   Contribution = "one-time"
	ContributionEmergency Contribution = "emergency"
	ContributionVolunteer Contribution = "volunteer"
)

const (
	ImpactSaveStation    ImpactType = "save-station"
	ImpactExpandCoverage ImpactType = "expand-coverage"
	ImpactImproveQuality ImpactType = "improve-quality"
	ImpactInvestigative  ImpactType = "investigative"
)

const (
	BudgetUnder50  Budget = "under-50"
	Budget50To100  Budget = "50-100"
	Budget100To250 Budget = "100-250"
	Budget250To500 Budget = "250-500"
	BudgetOver500  Budget = "over-500"
)

// Field names a single preference answer. The values double as JSON keys
// and questionnaire question keys.
type Field string

const (
	FieldPriority     Field = "priority"
	FieldGeography    Field = "geography"
	FieldContribution Field = "contribution"
	FieldImpact       Field = "impact"
	FieldBudget       Field = "budget"
)

// UserPreferences is a completed questionnaire. Contribution and Budget are
// carried for display and never scored.
type UserPreferences struct {
	Priority     Priority     `json:"priority" validate:"required,oneof=local-news rural-communities emergency-services cultural-programming"`
	Geography    Geography    `json:"geography" validate:"required,oneof=local rural-national red-states no-preference"`
	Contribution Contribution `json:"contribution" validate:"required,oneof=monthly one-time emergency volunteer"`
	Impact       ImpactType   `json:"impact" validate:"required,oneof=save-station expand-coverage improve-quality investigative"`
	Budget       Budget       `json:"budget,omitempty" validate:"omitempty,oneof=under-50 50-100 100-250 250-500 over-500"`
}

// Key returns a canonical string for the preference set, suitable as a cache key.
func (p UserPreferences) Key() string {
	return strings.Join([]string{
		string(p.Priority),
		string(p.Geography),
		string(p.Contribution),
		string(p.Impact),
		string(p.Budget),
	}, "|")
}

// Check verifies that every required field is set to a known value.
// Missing fields are reported as ErrIncompletePreferences.
func (p UserPreferences) Check() error {
	var missing []string
	if p.Priority == "" {
		missing = append(missing, string(FieldPriority))
	}
	if p.Geography == "" {
		missing = append(missing, string(FieldGeography))
	}
	if p.Contribution == "" {
		missing = append(missing, string(FieldContribution))
	}
	if p.Impact == "" {
		missing = append(missing, string(FieldImpact))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompletePreferences, strings.Join(missing, ", "))
	}
	for _, f := range []Field{FieldPriority, FieldGeography, FieldContribution, FieldImpact, FieldBudget} {
		v := p.value(f)
		if v == "" {
			continue
		}
		if !ValidAnswer(f, v) {
			return &InvalidAnswerError{Field: f, Value: v}
		}
	}
	return nil
}

func (p UserPreferences) value(f Field) string {
	switch f {
	case FieldPriority:
		return string(p.Priority)
	case FieldGeography:
		return string(p.Geography)
	case FieldContribution:
		return string(p.Contribution)
	case FieldImpact:
		return string(p.Impact)
	case FieldBudget:
		return string(p.Budget)
	default:
		return ""
	}
}

// answerValues holds the allowed values for each field, in questionnaire order.
var answerValues = map[Field][]string{
	FieldPriority: {
		string(PriorityLocalNews), string(PriorityRuralCommunities),
		string(PriorityEmergencyServices), string(PriorityCulturalProgramming),
	},
	FieldGeography: {
		string(GeographyLocal), string(GeographyRuralNational),
		string(GeographyRedStates), string(GeographyNoPreference),
	},
	FieldContribution: {
		string(ContributionMonthly), string(ContributionOneTime),
		string(ContributionEmergency), string(ContributionVolunteer),
	},
	FieldImpact: {
		string(ImpactSaveStation), string(ImpactExpandCoverage),
		string(ImpactImproveQuality), string(ImpactInvestigative),
	},
	FieldBudget: {
		string(BudgetUnder50), string(Budget50To100), string(Budget100To250),
		string(Budget250To500), string(BudgetOver500),
	},
}

// AnswerValues returns the allowed values for a field, or nil for an unknown field.
func AnswerValues(f Field) []string {
	vals, ok := answerValues[f]
	if !ok {
		return nil
	}
	return append([]string(nil), vals...)
}

// ValidAnswer reports whether value is allowed for the field.
func ValidAnswer(f Field, value string) bool {
	for _, v := range answerValues[f] {
		if v == value {
			return true
		}
	}
	return false
}

// PreferencesBuilder accumulates questionnaire answers one field at a time.
// Build only succeeds once every required field has been set.
type PreferencesBuilder struct {
	prefs UserPreferences
}

// Set records the answer for a single field, rejecting unknown fields and values.
func (b *PreferencesBuilder) Set(f Field, value string) error {
	if _, ok := answerValues[f]; !ok {
		return fmt.Errorf("unknown preference field %q", f)
	}
	if !ValidAnswer(f, value) {
		return &InvalidAnswerError{Field: f, Value: value}
	}
	switch f {
	case FieldPriority:
		b.prefs.Priority = Priority(value)
	case FieldGeography:
		b.prefs.Geography = Geography(value)
	case FieldContribution:
		b.prefs.Contribution = Contribution(value)
	case FieldImpact:
		b.prefs.Impact = ImpactType(value)
	case FieldBudget:
		b.prefs.Budget = Budget(value)
	}
	return nil
}

// Answered reports whether the field has been set.
func (b *PreferencesBuilder) Answered(f Field) bool {
	return b.prefs.value(f) != ""
}

// Answers returns a snapshot of the answers given so far, keyed by field.
func (b *PreferencesBuilder) Answers() map[Field]string {
	out := make(map[Field]string, len(answerValues))
	for f := range answerValues {
		if v := b.prefs.value(f); v != "" {
			out[f] = v
		}
	}
	return out
}

// Complete reports whether every required field is set.
func (b *PreferencesBuilder) Complete() bool {
	return b.prefs.Check() == nil
}

// Build returns the completed preferences or ErrIncompletePreferences.
func (b *PreferencesBuilder) Build() (UserPreferences, error) {
	if err := b.prefs.Check(); err != nil {
		return UserPreferences{}, err
	}
	return b.prefs, nil
}
