package domain

// RiskLevel is the ordinal funding-risk tier of a station, from most to least severe.
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskModerate RiskLevel = "moderate"
	RiskLow      RiskLevel = "low"
)

// RiskLevels lists every tier in decreasing severity.
var RiskLevels = []RiskLevel{RiskCritical, RiskHigh, RiskModerate, RiskLow}

// Valid reports whether r is one of the four known tiers.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskCritical, RiskHigh, RiskModerate, RiskLow:
		return true
	default:
		return false
	}
}

// Funding is the display-only budget breakdown of a station.
type Funding struct {
	Total     string `json:"total"`
	Federal   string `json:"federal"`
	State     string `json:"state"`
	Local     string `json:"local"`
	Donations string `json:"donations"`
}

// Coordinates are percentage offsets over the decorative map illustration.
type Coordinates struct {
	X float64 `json:"x" validate:"gte=0,lte=100"`
	Y float64 `json:"y" validate:"gte=0,lte=100"`
}

// Station is an immutable catalog record. Only State, RiskLevel,
// FederalFunding, Description, Needs and Programs feed the recommender;
// everything else is carried through for display.
type Station struct {
	ID               string      `json:"id" validate:"required"`
	Name             string      `json:"name" validate:"required"`
	Frequency        string      `json:"frequency"`
	Location         string      `json:"location"`
	State            string      `json:"state" validate:"required,len=2,uppercase"`
	RiskLevel        RiskLevel   `json:"risk_level" validate:"required,oneof=critical high moderate low"`
	Listeners        string      `json:"listeners"`
	FederalFunding   int         `json:"federal_funding" validate:"gte=0,lte=100"`
	Description      string      `json:"description"`
	Funding          Funding     `json:"funding"`
	Impact           string      `json:"impact"`
	Needs            []string    `json:"needs" validate:"required,min=1,dive,required"`
	Programs         []string    `json:"programs" validate:"required,min=1,dive,required"`
	EmergencyFunding string      `json:"emergency_funding"`
	Coordinates      Coordinates `json:"coordinates"`
	PoliticalLean    string      `json:"political_lean" validate:"omitempty,oneof=liberal moderate conservative"`
	StationType      string      `json:"station_type" validate:"omitempty,oneof=university community npr_affiliate"`
}

// Clone returns a copy that shares no slices with s.
func (s Station) Clone() Station {
	s.Needs = append([]string(nil), s.Needs...)
	s.Programs = append([]string(nil), s.Programs...)
	return s
}

// HighFederalDependency reports whether more than half of the station's
// budget comes from federal funds.
func (s Station) HighFederalDependency() bool {
	return s.FederalFunding > 50
}
