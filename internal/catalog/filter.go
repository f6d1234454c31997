package catalog

import (
	"fmt"

	"github.com/couchcryptid/indyradio-service/internal/domain"
)

// StationFilter selects a subset of the catalog for the station map.
type StationFilter string

const (
	FilterAll       StationFilter = "all"
	FilterCritical  StationFilter = "critical"
	FilterHigh      StationFilter = "high"
	FilterModerate  StationFilter = "moderate"
	FilterDefunding StationFilter = "defunding"
)

// defundingThreshold is the federal share above which a station is shown
// under the "high federal dependency" map filter. The scoring threshold is 50.
const defundingThreshold = 45

// ParseFilter maps a query value to a StationFilter. Empty means all.
func ParseFilter(s string) (StationFilter, error) {
	switch f := StationFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCritical, FilterHigh, FilterModerate, FilterDefunding:
		return f, nil
	default:
		return "", fmt.Errorf("unknown station filter %q", s)
	}
}

// Filter returns the matching stations in catalog order.
func (c *Catalog) Filter(f StationFilter) []domain.Station {
	var keep func(domain.Station) bool
	switch f {
	case FilterCritical:
		keep = riskIs(domain.RiskCritical)
	case FilterHigh:
		keep = riskIs(domain.RiskHigh)
	case FilterModerate:
		keep = riskIs(domain.RiskModerate)
	case FilterDefunding:
		keep = func(s domain.Station) bool { return s.FederalFunding > defundingThreshold }
	default:
		return c.Stations()
	}

	out := make([]domain.Station, 0, len(c.stations))
	for _, s := range c.stations {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	return out
}

func riskIs(level domain.RiskLevel) func(domain.Station) bool {
	return func(s domain.Station) bool { return s.RiskLevel == level }
}

// Summary aggregates the catalog for the landing page counters.
type Summary struct {
	Total                 int                      `json:"total"`
	ByRisk                map[domain.RiskLevel]int `json:"by_risk"`
	AtRisk                int                      `json:"at_risk"`
	HighFederalDependency int                      `json:"high_federal_dependency"`
}

// Summary counts stations per risk tier. AtRisk is critical plus high.
func (c *Catalog) Summary() Summary {
	sum := Summary{
		Total:  len(c.stations),
		ByRisk: make(map[domain.RiskLevel]int, len(domain.RiskLevels)),
	}
	for _, level := range domain.RiskLevels {
		sum.ByRisk[level] = 0
	}
	for _, s := range c.stations {
		sum.ByRisk[s.RiskLevel]++
		if s.HighFederalDependency() {
			sum.HighFederalDependency++
		}
	}
	sum.AtRisk = sum.ByRisk[domain.RiskCritical] + sum.ByRisk[domain.RiskHigh]
	return sum
}
