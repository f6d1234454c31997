// Command catalogcheck validates a station catalog file and exercises the
// recommender against it across every preference combination. It verifies
// record integrity, score bounds, reason text, and ranking determinism.
//
// Usage:
//
//	go run ./cmd/catalogcheck [-catalog stations.json]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/domain"
)

// phase tracks pass/fail for a check phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	catalogPath := flag.String("catalog", "", "station catalog JSON (default: embedded catalog)")
	flag.Parse()

	os.Exit(run(*catalogPath, os.Stdout))
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== Station Catalog Check ===")
	fmt.Fprintln(out)

	c, err := catalog.LoadFile(path)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	sum := c.Summary()
	fmt.Fprintf(out, "Stations: %d (critical %d, high %d, moderate %d, low %d)\n",
		sum.Total, sum.ByRisk[domain.RiskCritical], sum.ByRisk[domain.RiskHigh],
		sum.ByRisk[domain.RiskModerate], sum.ByRisk[domain.RiskLow])
	fmt.Fprintf(out, "At risk: %d, high federal dependency: %d\n\n", sum.AtRisk, sum.HighFederalDependency)

	combos := preferenceCombinations()
	phases := []*phase{
		checkScores(c, combos),
		checkRanking(c, combos),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if unseen := unreachable(c, combos); len(unseen) > 0 {
		fmt.Fprintf(out, "\nNote: %d stations never reach a top-%d list: %v\n", len(unseen), domain.DefaultLimit, unseen)
	}

	if allPassed {
		fmt.Fprintf(out, "\nAll checks passed across %d preference sets.\n", len(combos))
		return 0
	}
	fmt.Fprintln(out, "\nCatalog check FAILED.")
	return 1
}

// preferenceCombinations enumerates every scored answer combination.
// Contribution and budget are not scored and stay fixed.
func preferenceCombinations() []domain.UserPreferences {
	var out []domain.UserPreferences
	for _, p := range domain.AnswerValues(domain.FieldPriority) {
		for _, g := range domain.AnswerValues(domain.FieldGeography) {
			for _, i := range domain.AnswerValues(domain.FieldImpact) {
				out = append(out, domain.UserPreferences{
					Priority:     domain.Priority(p),
					Geography:    domain.Geography(g),
					Contribution: domain.ContributionMonthly,
					Impact:       domain.ImpactType(i),
				})
			}
		}
	}
	return out
}

func checkScores(c *catalog.Catalog, combos []domain.UserPreferences) *phase {
	p := &phase{name: "Scores within 0-100 with a reason"}
	for _, prefs := range combos {
		for _, s := range c.Stations() {
			score := domain.ComputeScore(s, prefs)
			if score < 0 || score > domain.MaxScore {
				p.errorf("%s %s: score %d out of range", s.ID, prefs.Key(), score)
			}
			if domain.GenerateReason(s, prefs) == "" {
				p.errorf("%s %s: empty reason", s.ID, prefs.Key())
			}
		}
	}
	return p
}

func checkRanking(c *catalog.Catalog, combos []domain.UserPreferences) *phase {
	p := &phase{name: "Ranking deterministic and ordered"}
	for _, prefs := range combos {
		first, err := domain.Recommend(c.Stations(), prefs, c.Len())
		if err != nil {
			p.errorf("%s: %v", prefs.Key(), err)
			continue
		}
		second, err := domain.Recommend(c.Stations(), prefs, c.Len())
		if err != nil {
			p.errorf("%s: %v", prefs.Key(), err)
			continue
		}
		if !reflect.DeepEqual(first, second) {
			p.errorf("%s: repeated ranking differs", prefs.Key())
		}
		for i := 1; i < len(first); i++ {
			if first[i-1].Score < first[i].Score {
				p.errorf("%s: %s (%d) ranked above %s (%d)", prefs.Key(),
					first[i-1].Station.ID, first[i-1].Score, first[i].Station.ID, first[i].Score)
			}
		}
	}
	return p
}

// unreachable lists stations that no preference set ranks into the
// default-sized list, in catalog order.
func unreachable(c *catalog.Catalog, combos []domain.UserPreferences) []string {
	seen := make(map[string]bool, c.Len())
	for _, prefs := range combos {
		recs, err := domain.Recommend(c.Stations(), prefs, domain.DefaultLimit)
		if err != nil {
			continue
		}
		for _, r := range recs {
			seen[r.Station.ID] = true
		}
	}
	var out []string
	for _, s := range c.Stations() {
		if !seen[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}
