package main

import (
	"bytes"
	"testing"

	"github.com/couchcryptid/indyradio-service/internal/domain"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PrintsRankedJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-priority", "rural-communities",
		"-geography", "red-states",
		"-contribution", "monthly",
		"-impact", "save-station",
		"-limit", "3",
	}, &stdout, &stderr)
	require.NoError(t, err)

	var out output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, 3, out.Limit)
	assert.Equal(t, domain.PriorityRuralCommunities, out.Preferences.Priority)
	require.Len(t, out.Recommendations, 3)
	assert.Equal(t, "kasu", out.Recommendations[0].Station.ID)
	assert.Equal(t, 100, out.Recommendations[0].Score)
	assert.Equal(t, "kpbx", out.Recommendations[1].Station.ID)
	assert.Equal(t, "kypr", out.Recommendations[2].Station.ID)
}

func TestRun_IncompletePreferences(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-priority", "local-news", "-geography", "local"}, &stdout, &stderr)
	require.ErrorIs(t, err, domain.ErrIncompletePreferences)
	assert.Contains(t, err.Error(), "contribution, impact")
	assert.Empty(t, stdout.String())
}

func TestRun_InvalidValue(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-priority", "sports",
		"-geography", "local",
		"-contribution", "monthly",
		"-impact", "investigative",
	}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid priority "sports"`)
}

func TestRun_SeveralInvalidValuesReportFirstField(t *testing.T) {
	args := []string{
		"-priority", "sports",
		"-geography", "moon",
		"-contribution", "monthly",
		"-impact", "investigative",
		"-budget", "lots",
	}
	for range 20 {
		var stdout, stderr bytes.Buffer
		err := run(args, &stdout, &stderr)

		var ansErr *domain.InvalidAnswerError
		require.ErrorAs(t, err, &ansErr)
		assert.Equal(t, domain.FieldPriority, ansErr.Field)
		assert.Equal(t, "sports", ansErr.Value)
	}
}

func TestRun_NegativeLimit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-priority", "local-news",
		"-geography", "local",
		"-contribution", "monthly",
		"-impact", "investigative",
		"-limit", "-2",
	}, &stdout, &stderr)
	require.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestRun_MissingCatalogFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-priority", "local-news",
		"-geography", "local",
		"-contribution", "monthly",
		"-impact", "investigative",
		"-catalog", "does-not-exist.json",
	}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}
