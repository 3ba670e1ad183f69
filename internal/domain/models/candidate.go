package models

import "time"

// Tier buckets a composite score for display and alerting.
type Tier string

const (
	TierElite      Tier = "ELITE"
	TierStrong     Tier = "STRONG"
	TierMonitoring Tier = "MONITORING"
	TierStandard   Tier = "STANDARD"
)

// AnalysisMethod records which source branch produced a candidate set.
type AnalysisMethod string

const (
	MethodComprehensive AnalysisMethod = "comprehensive"
	MethodFallback      AnalysisMethod = "fallback_opportunities"
	MethodEmpty         AnalysisMethod = "none"
)

// PlayerRef identifies the batter a candidate is built around.
type PlayerRef struct {
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    int    `json:"batting_position"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// PitcherRef identifies the opposing starter.
type PitcherRef struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// MatchupRef ties a candidate back to its game.
type MatchupRef struct {
	Key   string `json:"key"`
	Venue string `json:"venue,omitempty"`
	Side  string `json:"side,omitempty"` // which pitcher side produced it: home or away
}

// CriteriaResult holds the four qualification booleans.
type CriteriaResult struct {
	InningPatterns        bool `json:"inning_patterns"`
	PositionVulnerability bool `json:"position_vulnerability"`
	RecentPerformance     bool `json:"recent_performance"`
	OptimalMatchup        bool `json:"optimal_matchup"`
}

// Satisfied counts how many criteria passed.
func (c CriteriaResult) Satisfied() int {
	n := 0
	for _, b := range []bool{c.InningPatterns, c.PositionVulnerability, c.RecentPerformance, c.OptimalMatchup} {
		if b {
			n++
		}
	}
	return n
}

// ScoreBreakdown carries the composite and its four category sub-scores,
// all in [0,100].
type ScoreBreakdown struct {
	Composite             float64 `json:"composite"`
	InningPatterns        float64 `json:"inning_patterns"`
	PositionVulnerability float64 `json:"position_vulnerability"`
	RecentPerformance     float64 `json:"recent_performance"`
	OptimalMatchup        float64 `json:"optimal_matchup"`
}

// BatterStats is the resolved batter line used by scoring. Rates are
// normalized to percent at read time, never here.
type BatterStats struct {
	RecentAvg      float64 `json:"recent_avg"`
	RecentOPS      float64 `json:"recent_ops"`
	Last7Avg       float64 `json:"last_7_avg,omitempty"`
	Last15Avg      float64 `json:"last_15_avg,omitempty"`
	HRScore        float64 `json:"hr_score"`
	HitProbability float64 `json:"hit_probability"`
	Confidence     float64 `json:"confidence"`
}

// PitcherStats is the opposing starter's line with scraper defaults applied.
type PitcherStats struct {
	ERA                float64 `json:"era"`
	WHIP               float64 `json:"whip"`
	FirstInningVuln    float64 `json:"first_inning_vulnerability"`
	FirstInningHitRate float64 `json:"first_inning_hit_rate"`
	GamesAnalyzed      int     `json:"games_analyzed"`
}

// Candidate is one scored batter/pitcher pairing before ranking.
type Candidate struct {
	Player   PlayerRef      `json:"player"`
	Pitcher  PitcherRef     `json:"pitcher"`
	Matchup  MatchupRef     `json:"matchup"`
	Scores   ScoreBreakdown `json:"scores"`
	Criteria CriteriaResult `json:"criteria"`
	Batter   BatterStats    `json:"batter_stats"`
	Starter  PitcherStats   `json:"pitcher_stats"`
}

// RankedCandidate is a candidate after filtering, sorting and tiering.
type RankedCandidate struct {
	Candidate
	Rank int  `json:"rank"`
	Tier Tier `json:"tier"`
}

// Summary counts ranked candidates per tier. Standard-tier candidates are
// included in Total only.
type Summary struct {
	Elite      int `json:"elite"`
	Strong     int `json:"strong"`
	Monitoring int `json:"monitoring"`
	Total      int `json:"total"`
}

// Metadata describes one engine run.
type Metadata struct {
	TotalAnalyzed        int            `json:"total_analyzed"`
	QualifyingCandidates int            `json:"qualifying_candidates"`
	AverageScore         float64        `json:"average_score"`
	Timestamp            time.Time      `json:"timestamp"`
	AnalysisMethod       AnalysisMethod `json:"analysis_method"`
	Error                string         `json:"error,omitempty"`
}

// Result is the full engine output. An errored run still returns a valid
// Result with empty candidates and Metadata.Error set.
type Result struct {
	Candidates []RankedCandidate `json:"candidates"`
	Summary    Summary           `json:"summary"`
	Metadata   Metadata          `json:"metadata"`
}

// ClassifiedGroup is one bucket of a classified view.
type ClassifiedGroup struct {
	Label        string            `json:"label"`
	Count        int               `json:"count"`
	AverageScore float64           `json:"average_score"`
	Candidates   []RankedCandidate `json:"candidates"`
}

// Classification is a grouped view over ranked candidates.
type Classification struct {
	Mode   string            `json:"mode"`
	Groups []ClassifiedGroup `json:"groups"`
}
