// Package questionnaire holds the fixed preference questions and the
// sessions that collect answers to them.
package questionnaire

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/indyradio-service/internal/domain"
)

// ErrUnknownQuestion is returned for a field that no question asks about.
var ErrUnknownQuestion = errors.New("unknown question")

// Option is one selectable answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question binds a prompt to a single preference field.
type Question struct {
	Field    domain.Field `json:"key"`
	Prompt   string       `json:"question"`
	Required bool         `json:"required"`
	Options  []Option     `json:"options"`
}

var questions = []Question{
	{
		Field:    domain.FieldPriority,
		Prompt:   "What's most important to you in supporting public radio?",
		Required: true,
		Options: []Option{
			{string(domain.PriorityLocalNews), "Preserving local journalism and news coverage"},
			{string(domain.PriorityRuralCommunities), "Supporting rural and underserved communities"},
			{string(domain.PriorityEmergencyServices), "Maintaining emergency broadcasting services"},
			{string(domain.PriorityCulturalProgramming), "Preserving cultural and educational programming"},
		},
	},
	{
		Field:    domain.FieldGeography,
		Prompt:   "Which geographic area would you like to focus on?",
		Required: true,
		Options: []Option{
			{string(domain.GeographyLocal), "My local area (Pacific Northwest)"},
			{string(domain.GeographyRuralNational), "Rural communities nationwide"},
			{string(domain.GeographyRedStates), "Stations in politically conservative states"},
			{string(domain.GeographyNoPreference), "No preference - show me where help is needed most"},
		},
	},
	{
		Field:    domain.FieldContribution,
		Prompt:   "How would you like to contribute?",
		Required: true,
		Options: []Option{
			{string(domain.ContributionMonthly), "Monthly donations ($25-100/month)"},
			{string(domain.ContributionOneTime), "One-time donation ($100-500)"},
			{string(domain.ContributionEmergency), "Emergency response when stations are in crisis"},
			{string(domain.ContributionVolunteer), "Both financial support and volunteering"},
		},
	},
	{
		Field:    domain.FieldImpact,
		Prompt:   "What type of impact do you want to have?",
		Required: true,
		Options: []Option{
			{string(domain.ImpactSaveStation), "Help save a station from closure"},
			{string(domain.ImpactExpandCoverage), "Expand coverage to underserved areas"},
			{string(domain.ImpactImproveQuality), "Improve programming quality and equipment"},
			{string(domain.ImpactInvestigative), "Support investigative journalism"},
		},
	},
	{
		Field:  domain.FieldBudget,
		Prompt: "What's your preferred donation range?",
		Options: []Option{
			{string(domain.BudgetUnder50), "Under $50"},
			{string(domain.Budget50To100), "$50 - $100"},
			{string(domain.Budget100To250), "$100 - $250"},
			{string(domain.Budget250To500), "$250 - $500"},
			{string(domain.BudgetOver500), "Over $500"},
		},
	},
}

// Questions returns the questionnaire in the order it is presented.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Count is the number of questions, required or not.
func Count() int {
	return len(questions)
}

// stepOf returns the index of the question for field.
func stepOf(f domain.Field) (int, error) {
	for i, q := range questions {
		if q.Field == f {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuestion, f)
}
