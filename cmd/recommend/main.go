// Command recommend ranks the station catalog for one preference set and
// prints the recommendations as JSON.
//
// Usage:
//
//	go run ./cmd/recommend \
//	  -priority rural-communities \
//	  -geography red-states \
//	  -contribution monthly \
//	  -impact save-station \
//	  [-budget 50-100] [-limit 4] [-catalog stations.json]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/goccy/go-json"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "recommend:", err)
		os.Exit(1)
	}
}

type output struct {
	Preferences     domain.UserPreferences  `json:"preferences"`
	Limit           int                     `json:"limit"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Answers are applied in questionnaire order so the first bad flag wins.
	answers := []struct {
		field domain.Field
		value *string
	}{
		{domain.FieldPriority, fs.String("priority", "", "what matters most: local-news, rural-communities, emergency-services, cultural-programming")},
		{domain.FieldGeography, fs.String("geography", "", "focus area: local, rural-national, red-states, no-preference")},
		{domain.FieldContribution, fs.String("contribution", "", "how to give: monthly, one-time, emergency, volunteer")},
		{domain.FieldImpact, fs.String("impact", "", "desired impact: save-station, expand-coverage, improve-quality, investigative")},
		{domain.FieldBudget, fs.String("budget", "", "optional range: under-50, 50-100, 100-250, 250-500, over-500")},
	}
	limit := fs.Int("limit", domain.DefaultLimit, "number of recommendations")
	catalogPath := fs.String("catalog", "", "station catalog JSON (default: embedded catalog)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var b domain.PreferencesBuilder
	for _, a := range answers {
		if *a.value == "" {
			continue
		}
		if err := b.Set(a.field, *a.value); err != nil {
			return err
		}
	}
	prefs, err := b.Build()
	if err != nil {
		return err
	}

	c, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		return err
	}

	recs, err := domain.Recommend(c.Stations(), prefs, *limit)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(output{Preferences: prefs, Limit: *limit, Recommendations: recs}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
