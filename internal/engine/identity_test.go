package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"DugoutEdge/internal/domain/models"
)

func profileFromJSON(t *testing.T, raw string) *models.PitcherProfile {
	t.Helper()
	var p models.PitcherProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func lineupFromJSON(t *testing.T, raw string) *models.LineupFeed {
	t.Helper()
	var l models.LineupFeed
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	return &l
}

const vulnerableSlotOne = `{
	"pitcher_name": "Test Pitcher",
	"position_vulnerabilities": {
		"position_1": {"vulnerability_score": 14, "player_name": "Embedded Name"}
	}
}`

func TestResolveBattersPrefersLineupFeed(t *testing.T) {
	e := New(testConfig(t))

	lineups := lineupFromJSON(t, `{
		"games": [{
			"teams": {"home": {"abbr": "BOS"}, "away": {"abbr": "NYY"}},
			"lineups": {
				"away": [{"name": "Lineup Name", "batting_order": 1}],
				"home": []
			}
		}]
	}`)

	batters := e.resolveBatters(profileFromJSON(t, vulnerableSlotOne), "NYY", nil, lineups)
	require.Len(t, batters, 1)
	require.Equal(t, "Lineup Name", batters[0].ref.Name)
	require.False(t, batters[0].ref.Placeholder)
	// no opportunity record matched, so the defaults apply
	require.InDelta(t, 0.250, batters[0].stats.RecentAvg, 0.001)
	require.InDelta(t, 50, batters[0].stats.HRScore, 0.001)
}

func TestResolveBattersFallsBackToEmbeddedName(t *testing.T) {
	e := New(testConfig(t))

	batters := e.resolveBatters(profileFromJSON(t, vulnerableSlotOne), "NYY", nil, nil)
	require.Len(t, batters, 1)
	require.Equal(t, "Embedded Name", batters[0].ref.Name)
}

func TestResolveBattersMatchesOpportunityByNameFuzzily(t *testing.T) {
	e := New(testConfig(t))

	opps := oppsFromJSON(t, `[
		{"player_name": "embedded name", "recent_avg": 0.290, "hr_score": 85}
	]`)

	batters := e.resolveBatters(profileFromJSON(t, vulnerableSlotOne), "NYY", opps, nil)
	require.Len(t, batters, 1)
	require.InDelta(t, 0.290, batters[0].stats.RecentAvg, 0.001)
	require.InDelta(t, 85, batters[0].stats.HRScore, 0.001)
}

func TestResolveBattersMatchesOpportunityBySlot(t *testing.T) {
	e := New(testConfig(t))

	profile := profileFromJSON(t, `{
		"position_vulnerabilities": {
			"position_2": {"vulnerability_score": 14}
		}
	}`)
	opps := oppsFromJSON(t, `[
		{"player_name": "Slot Match", "team": "nyy", "batting_order": 2, "recent_avg": 0.310}
	]`)

	batters := e.resolveBatters(profile, "NYY", opps, nil)
	require.Len(t, batters, 1)
	require.Equal(t, "Slot Match", batters[0].ref.Name)
	// slot matches carry their raw line, no defaults
	require.InDelta(t, 0.310, batters[0].stats.RecentAvg, 0.001)
	require.Zero(t, batters[0].stats.Confidence)
}

func TestResolveBattersSynthesizesPlaceholder(t *testing.T) {
	e := New(testConfig(t))

	profile := profileFromJSON(t, `{
		"position_vulnerabilities": {
			"position_3": {"vulnerability_score": 18, "hit_rate": 0.30}
		}
	}`)

	batters := e.resolveBatters(profile, "NYY", nil, nil)
	require.Len(t, batters, 1)
	require.Equal(t, "Position 3 Hitter (NYY)", batters[0].ref.Name)
	require.True(t, batters[0].ref.Placeholder)
	// stats estimated from the position record
	require.InDelta(t, 0.30, batters[0].stats.RecentAvg, 0.001)
	require.InDelta(t, 30, batters[0].stats.HitProbability, 0.001)
	require.InDelta(t, 18, batters[0].stats.HRScore, 0.001)
	require.InDelta(t, 60, batters[0].stats.Confidence, 0.001)
}

func TestResolveBattersSkipsNonVulnerableSlots(t *testing.T) {
	e := New(testConfig(t))

	profile := profileFromJSON(t, `{
		"position_vulnerabilities": {
			"position_1": {"vulnerability_score": 2, "hit_rate": 0.10},
			"position_2": {"vulnerability_score": 14}
		}
	}`)

	batters := e.resolveBatters(profile, "NYY", nil, nil)
	require.Len(t, batters, 1)
	require.Equal(t, 2, batters[0].ref.Position)
}
