package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Environment: "test"}
	cfg.ApplyEngineDefaults()
	return cfg
}

func analysisFromJSON(t *testing.T, raw string) *models.AnalysisPayload {
	t.Helper()
	var payload models.AnalysisPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return &payload
}

func oppsFromJSON(t *testing.T, raw string) []models.LooseRecord {
	t.Helper()
	var opps []models.LooseRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &opps))
	return opps
}

const comprehensiveFixture = `{
	"matchup_analysis": {
		"NYY@BOS": {
			"matchup": {"away_team": "NYY", "home_team": "BOS", "venue": "Fenway Park"},
			"home_pitcher_analysis": {
				"pitcher_name": "Chris Sale",
				"games_analyzed": 12,
				"pitcher_era": 3.80,
				"pitcher_whip": 1.10,
				"inning_patterns": {
					"inning_1": {"vulnerability_score": 25, "hit_frequency": 0.35, "hr_frequency": 0.12},
					"inning_2": {"vulnerability_score": 15},
					"inning_3": {"vulnerability_score": 5}
				},
				"position_vulnerabilities": {
					"position_1": {"vulnerability_score": 12, "hit_rate": 0.32, "player_name": "Leadoff Guy"}
				}
			}
		}
	}
}`

const leadoffOpportunity = `[
	{"player_name": "Leadoff Guy", "team": "NYY", "recent_avg": 0.280,
	 "recent_ops": 0.750, "hr_score": 80, "hit_probability": 70, "confidence": 80}
]`

func TestAnalyzeComprehensive(t *testing.T) {
	e := New(testConfig(t))

	result := e.Analyze(context.Background(), Inputs{
		Analysis:      analysisFromJSON(t, comprehensiveFixture),
		Opportunities: oppsFromJSON(t, leadoffOpportunity),
	})

	require.Equal(t, models.MethodComprehensive, result.Metadata.AnalysisMethod)
	require.Empty(t, result.Metadata.Error)
	require.Len(t, result.Candidates, 1)

	c := result.Candidates[0]
	require.Equal(t, 1, c.Rank)
	require.Equal(t, "Leadoff Guy", c.Player.Name)
	require.Equal(t, "NYY", c.Player.Team)
	require.Equal(t, 1, c.Player.Position)
	require.Equal(t, "Chris Sale", c.Pitcher.Name)
	require.Equal(t, "BOS", c.Pitcher.Team)
	require.Equal(t, "NYY@BOS", c.Matchup.Key)
	require.Equal(t, "away", c.Matchup.Side)

	require.True(t, c.Criteria.InningPatterns)
	require.True(t, c.Criteria.PositionVulnerability)
	require.True(t, c.Criteria.RecentPerformance)
	require.True(t, c.Criteria.OptimalMatchup)

	// inning: (25+10+8)*0.5 + 15*0.3 + 5*0.2 = 27, x1.2 for full data = 32.4
	require.InDelta(t, 32.4, c.Scores.InningPatterns, 0.001)
	// position: 12*3 + 10 slot bonus + 15 hit-rate bonus = 61
	require.InDelta(t, 61, c.Scores.PositionVulnerability, 0.001)
	// recent: 20 for avg .280 + 15 for ops .750 = 35
	require.InDelta(t, 35, c.Scores.RecentPerformance, 0.001)
	// optimal: 80*.4 + 70*.4 + 80*.2 = 76
	require.InDelta(t, 76, c.Scores.OptimalMatchup, 0.001)
	// composite: .45*32.4 + .30*61 + .20*35 + .05*76 = 43.68
	require.InDelta(t, 43.68, c.Scores.Composite, 0.001)
	require.Equal(t, models.TierStandard, c.Tier)

	require.Equal(t, 1, result.Summary.Total)
	require.InDelta(t, 43.68, result.Metadata.AverageScore, 0.001)

	require.InDelta(t, 3.80, c.Starter.ERA, 0.001)
	require.InDelta(t, 1.10, c.Starter.WHIP, 0.001)
	require.Equal(t, 12, c.Starter.GamesAnalyzed)
	require.InDelta(t, 35, c.Starter.FirstInningHitRate, 0.001)
}

func TestAnalyzeFallbackFromOpportunities(t *testing.T) {
	e := New(testConfig(t))

	opps := oppsFromJSON(t, `[
		{"player_name": "Fallback Guy", "team": "NYY", "recent_avg": 0.260,
		 "recent_ops": 0.720, "hr_score": 60, "hit_probability": 55, "confidence": 70}
	]`)

	result := e.Analyze(context.Background(), Inputs{Opportunities: opps})

	require.Equal(t, models.MethodFallback, result.Metadata.AnalysisMethod)
	require.Len(t, result.Candidates, 1)

	c := result.Candidates[0]
	// high score plus good average estimates the third slot
	require.Equal(t, 3, c.Player.Position)
	require.False(t, c.Criteria.InningPatterns)
	require.True(t, c.Criteria.PositionVulnerability)
	require.True(t, c.Criteria.RecentPerformance)
	require.False(t, c.Criteria.OptimalMatchup)

	// base 40 + slot-3 bonus 12 + 0.3 * recent 35 = 62.5
	require.InDelta(t, 62.5, c.Scores.Composite, 0.001)
	require.Equal(t, models.TierMonitoring, c.Tier)
	require.InDelta(t, 65, c.Scores.PositionVulnerability, 0.001)
}

func TestAnalyzeFallbackRequiresTwoCriteria(t *testing.T) {
	// Estimated batting positions make the position criterion nearly free
	// in fallback mode, so one satisfied criterion is not enough.
	opps := oppsFromJSON(t, `[
		{"player_name": "Thin Data Guy", "team": "SEA", "batting_order": 2,
		 "recent_avg": 0.180, "hr_score": 40, "hit_probability": 45}
	]`)

	e := New(testConfig(t))
	result := e.Analyze(context.Background(), Inputs{Opportunities: opps})
	require.Equal(t, models.MethodFallback, result.Metadata.AnalysisMethod)
	require.Empty(t, result.Candidates)

	cfg := testConfig(t)
	cfg.Engine.MinCriteriaFallback = 1
	loose := New(cfg)
	result = loose.Analyze(context.Background(), Inputs{Opportunities: opps})
	require.Len(t, result.Candidates, 1)
}

func TestAnalyzeSourceCascade(t *testing.T) {
	e := New(testConfig(t))

	// Embedded secondary opportunities are used when the matchup analysis
	// is empty and no flat list was passed.
	payload := analysisFromJSON(t, `{
		"matchup_analysis": {},
		"weakspot_opportunities": [
			{"player_name": "Embedded Guy", "team": "LAD", "batting_order": 1,
			 "recent_avg": 0.310, "recent_ops": 0.900}
		]
	}`)

	result := e.Analyze(context.Background(), Inputs{Analysis: payload})
	require.Equal(t, models.MethodFallback, result.Metadata.AnalysisMethod)
	require.Len(t, result.Candidates, 1)
	require.Equal(t, "Embedded Guy", result.Candidates[0].Player.Name)
	require.Equal(t, 1, result.Candidates[0].Player.Position)
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	e := New(testConfig(t))

	result := e.Analyze(context.Background(), Inputs{})

	require.NotNil(t, result)
	require.Equal(t, models.MethodEmpty, result.Metadata.AnalysisMethod)
	require.NotNil(t, result.Candidates)
	require.Empty(t, result.Candidates)
	require.Equal(t, models.Summary{}, result.Summary)
}

func TestAnalyzeNeverPanicsOnMalformedData(t *testing.T) {
	e := New(testConfig(t))

	payload := analysisFromJSON(t, `{
		"matchup_analysis": {
			"X@Y": {
				"matchup": {"away_team": 123, "home_team": null},
				"home_pitcher_analysis": {
					"pitcher_name": ["not", "a", "string"],
					"inning_patterns": {"inning_1": {"vulnerability_score": "25"}},
					"position_vulnerabilities": {"position_1": "not-an-object"}
				}
			}
		}
	}`)
	opps := oppsFromJSON(t, `[
		{"player_name": "Type Chaos", "team": {"nested": true}, "recent_avg": "high",
		 "hr_score": null, "batting_order": "leadoff"},
		{}
	]`)

	require.NotPanics(t, func() {
		result := e.Analyze(context.Background(), Inputs{Analysis: payload, Opportunities: opps, Lineups: &models.LineupFeed{}})
		require.NotNil(t, result)
	})
}

func TestAnalyzeCacheTTL(t *testing.T) {
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e := New(testConfig(t), WithClock(func() time.Time { return clock }))

	in := Inputs{Opportunities: oppsFromJSON(t, leadoffOpportunity)}

	first := e.Analyze(context.Background(), in)
	second := e.Analyze(context.Background(), in)
	require.Same(t, first, second)

	clock = clock.Add(29 * time.Minute)
	require.Same(t, first, e.Analyze(context.Background(), in))

	clock = clock.Add(2 * time.Minute)
	third := e.Analyze(context.Background(), in)
	require.NotSame(t, first, third)
}

func TestAnalyzeCacheKeyedByInputs(t *testing.T) {
	e := New(testConfig(t))

	a := e.Analyze(context.Background(), Inputs{Opportunities: oppsFromJSON(t, leadoffOpportunity)})
	b := e.Analyze(context.Background(), Inputs{Opportunities: oppsFromJSON(t, `[
		{"player_name": "Other Guy", "team": "SD", "recent_avg": 0.305, "recent_ops": 0.880},
		{"player_name": "Second Guy", "team": "SD", "batting_order": 2, "recent_avg": 0.240}
	]`)})
	require.NotSame(t, a, b)
}

func TestTierCutoffsCoverEveryScore(t *testing.T) {
	e := New(testConfig(t))
	valid := map[models.Tier]bool{
		models.TierElite: true, models.TierStrong: true,
		models.TierMonitoring: true, models.TierStandard: true,
	}
	for score := 0.0; score <= 100; score += 0.5 {
		require.True(t, valid[e.tierFor(score)], "score %v has no tier", score)
	}
	require.Equal(t, models.TierElite, e.tierFor(85))
	require.Equal(t, models.TierStrong, e.tierFor(84.99))
	require.Equal(t, models.TierStrong, e.tierFor(70))
	require.Equal(t, models.TierMonitoring, e.tierFor(55))
	require.Equal(t, models.TierStandard, e.tierFor(54.99))
}

func TestRankCandidatesFiltersAndOrders(t *testing.T) {
	e := New(testConfig(t))

	mk := func(name string, composite float64) models.Candidate {
		return models.Candidate{
			Player: models.PlayerRef{Name: name},
			Scores: models.ScoreBreakdown{Composite: composite},
		}
	}
	ranked := e.rankCandidates([]models.Candidate{
		mk("low", 39.99), mk("mid", 60), mk("top", 90), mk("tie-a", 60),
	})

	require.Len(t, ranked, 3)
	require.Equal(t, "top", ranked[0].Player.Name)
	require.Equal(t, models.TierElite, ranked[0].Tier)
	// stable sort keeps build order for equal composites
	require.Equal(t, "mid", ranked[1].Player.Name)
	require.Equal(t, "tie-a", ranked[2].Player.Name)
	for i, c := range ranked {
		require.Equal(t, i+1, c.Rank)
	}
}

func TestSummarizeCountsTiers(t *testing.T) {
	ranked := []models.RankedCandidate{
		{Tier: models.TierElite}, {Tier: models.TierElite},
		{Tier: models.TierStrong}, {Tier: models.TierMonitoring},
		{Tier: models.TierStandard},
	}
	s := summarize(ranked)
	require.Equal(t, models.Summary{Elite: 2, Strong: 1, Monitoring: 1, Total: 5}, s)
}
