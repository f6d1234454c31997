package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStations() []Station {
	wfiu := plainStation("wfiu", RiskHigh)
	wfiu.Description = "providing news and cultural programming to rural southern Indiana."
	return []Station{
		plainStation("wnyc", RiskModerate),
		kpbx(),
		wfiu,
		plainStation("wbur", RiskModerate),
		plainStation("low1", RiskLow),
		plainStation("krcc", RiskCritical),
	}
}

func stationIDs(recs []Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.Station.ID
	}
	return ids
}

func TestRecommend_RanksByScoreStable(t *testing.T) {
	p := prefs(PriorityRuralCommunities, GeographyNoPreference, ImpactExpandCoverage)

	recs, err := Recommend(sampleStations(), p, 10)
	require.NoError(t, err)

	// kpbx 25+10+30+15=80, krcc 10+30=40, wfiu 25+10+20=55,
	// wnyc/wbur 10+10=20 in catalog order, low1 10+5=15.
	want := []string{"kpbx", "wfiu", "krcc", "wnyc", "wbur", "low1"}
	if diff := cmp.Diff(want, stationIDs(recs)); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{80, 55, 40, 20, 20, 15}, []int{
		recs[0].Score, recs[1].Score, recs[2].Score, recs[3].Score, recs[4].Score, recs[5].Score,
	})
	assert.Equal(t, "This station is in critical need of immediate support and serves rural communities that match your interests and heavily dependent on federal funding under threat.", recs[0].Reason)
}

func TestRecommend_LimitRespected(t *testing.T) {
	stations := sampleStations()
	p := prefs(PriorityLocalNews, GeographyLocal, ImpactSaveStation)

	for _, limit := range []int{0, 1, 4, len(stations), len(stations) + 5} {
		recs, err := Recommend(stations, p, limit)
		require.NoError(t, err)
		assert.Len(t, recs, min(limit, len(stations)), "limit %d", limit)
	}
}

func TestRecommend_ZeroLimitIsEmpty(t *testing.T) {
	recs, err := Recommend(sampleStations(), prefs(PriorityLocalNews, GeographyLocal, ImpactSaveStation), 0)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	recs, err := Recommend(nil, prefs(PriorityLocalNews, GeographyLocal, ImpactSaveStation), DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_Deterministic(t *testing.T) {
	stations := sampleStations()
	p := prefs(PriorityEmergencyServices, GeographyRedStates, ImpactInvestigative)

	first, err := Recommend(stations, p, DefaultLimit)
	require.NoError(t, err)
	for range 5 {
		again, err := Recommend(stations, p, DefaultLimit)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("non-deterministic result (-first +again):\n%s", diff)
		}
	}
}

func TestRecommend_DoesNotReorderInput(t *testing.T) {
	stations := sampleStations()
	before := make([]Station, len(stations))
	copy(before, stations)

	_, err := Recommend(stations, prefs(PriorityLocalNews, GeographyNoPreference, ImpactSaveStation), DefaultLimit)
	require.NoError(t, err)
	if diff := cmp.Diff(before, stations); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestRecommend_EqualScoresKeepCatalogOrder(t *testing.T) {
	stations := []Station{
		plainStation("c", RiskModerate),
		plainStation("a", RiskModerate),
		plainStation("b", RiskModerate),
	}
	recs, err := Recommend(stations, prefs(PriorityLocalNews, GeographyNoPreference, ImpactSaveStation), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, stationIDs(recs))
}

func TestRecommend_IncompletePreferences(t *testing.T) {
	_, err := Recommend(sampleStations(), UserPreferences{Priority: PriorityLocalNews}, DefaultLimit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompletePreferences))
	assert.Contains(t, err.Error(), "geography")
	assert.Contains(t, err.Error(), "contribution")
	assert.Contains(t, err.Error(), "impact")
}

func TestRecommend_InvalidPreferenceValue(t *testing.T) {
	p := prefs(PriorityLocalNews, "mars", ImpactSaveStation)
	_, err := Recommend(sampleStations(), p, DefaultLimit)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrIncompletePreferences))
	assert.Contains(t, err.Error(), `invalid geography "mars"`)
}

func TestRecommend_NegativeLimit(t *testing.T) {
	_, err := Recommend(sampleStations(), prefs(PriorityLocalNews, GeographyLocal, ImpactSaveStation), -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
