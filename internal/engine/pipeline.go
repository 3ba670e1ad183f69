package engine

import (
	"fmt"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/pkg/logger"
)

// Inputs are one day's source payloads. Any of them may be nil or empty;
// the pipeline degrades through its source cascade instead of failing.
type Inputs struct {
	Analysis      *models.AnalysisPayload
	Opportunities []models.LooseRecord
	Lineups       *models.LineupFeed
}

// source is the tagged outcome of the cascade. Exactly one branch is used
// per run.
type source struct {
	method        models.AnalysisMethod
	analysis      *models.AnalysisPayload
	opportunities []models.LooseRecord
}

// selectSource picks the richest available source: the comprehensive
// per-pitcher analysis, then the flat opportunity list, then the
// opportunity list embedded in the analysis payload, then nothing.
func selectSource(in Inputs) source {
	if in.Analysis != nil && len(in.Analysis.MatchupAnalysis) > 0 {
		return source{method: models.MethodComprehensive, analysis: in.Analysis}
	}
	if len(in.Opportunities) > 0 {
		return source{method: models.MethodFallback, opportunities: in.Opportunities}
	}
	if in.Analysis != nil && len(in.Analysis.WeakspotOpportunities) > 0 {
		return source{method: models.MethodFallback, opportunities: in.Analysis.WeakspotOpportunities}
	}
	return source{method: models.MethodEmpty}
}

// buildCandidates produces the unranked candidate set for the selected
// source.
func (e *Engine) buildCandidates(src source, in Inputs) []models.Candidate {
	switch src.method {
	case models.MethodComprehensive:
		return e.comprehensiveCandidates(src.analysis, in.Opportunities, in.Lineups)
	case models.MethodFallback:
		return e.fallbackCandidates(src.opportunities)
	}
	return nil
}

// comprehensiveCandidates walks every matchup and evaluates the opposing
// top of the order against each starter. The away lineup is scored against
// the home pitcher and vice versa, and only pitchers showing early-inning
// vulnerability are worth walking at all.
func (e *Engine) comprehensiveCandidates(analysis *models.AnalysisPayload, opportunities []models.LooseRecord, lineups *models.LineupFeed) []models.Candidate {
	var candidates []models.Candidate

	for key, game := range analysis.MatchupAnalysis {
		matchup := game.Matchup
		awayTeam := matchup.StringOr("", aliasAwayTeam...)
		homeTeam := matchup.StringOr("", aliasHomeTeam...)

		sides := []struct {
			profile *models.PitcherProfile
			batting string // team batting against the profile
			side    string
		}{
			{game.HomePitcherAnalysis, awayTeam, "away"},
			{game.AwayPitcherAnalysis, homeTeam, "home"},
		}

		for _, s := range sides {
			if s.profile == nil || s.batting == "" {
				continue
			}
			if !e.inningPatternsQualify(s.profile) {
				continue
			}
			for _, b := range e.resolveBatters(s.profile, s.batting, opportunities, lineups) {
				if c, ok := e.evaluateCandidate(b, s.profile, key, matchup, s.side); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}

	return candidates
}

// evaluateCandidate scores one batter/pitcher pairing. Only the top three
// batting slots are in scope, and the pairing must satisfy the minimum
// criteria count for comprehensive mode.
func (e *Engine) evaluateCandidate(b batter, profile *models.PitcherProfile, matchupKey string, matchup models.LooseRecord, side string) (models.Candidate, bool) {
	if b.ref.Position < 1 || b.ref.Position > 3 {
		return models.Candidate{}, false
	}

	criteria := e.evaluateCriteria(b, profile)
	if criteria.Satisfied() < e.cfg.Engine.MinCriteriaComprehensive {
		return models.Candidate{}, false
	}

	breakdown := models.ScoreBreakdown{
		InningPatterns:        e.inningPatternsScore(profile),
		PositionVulnerability: e.positionScore(profile, b.ref.Position),
		RecentPerformance:     e.recentPerformanceScore(b.stats),
		OptimalMatchup:        e.optimalMatchupScore(b.stats),
	}
	breakdown.Composite = round2(e.compositeScore(breakdown, criteria))

	// side names the batting lineup, so the pitcher belongs to the other
	// club.
	pitcherTeam := matchup.StringOr("", aliasHomeTeam...)
	if side == "home" {
		pitcherTeam = matchup.StringOr("", aliasAwayTeam...)
	}

	return models.Candidate{
		Player: b.ref,
		Pitcher: models.PitcherRef{
			Name: pitcherName(profile),
			Team: pitcherTeam,
		},
		Matchup: models.MatchupRef{
			Key:   matchupKey,
			Venue: matchup.StringOr("", "venue", "stadium"),
			Side:  side,
		},
		Scores:   breakdown,
		Criteria: criteria,
		Batter:   b.stats,
		Starter:  pitcherStats(profile),
	}, true
}

// fallbackCandidates builds candidates straight off the flat opportunity
// list when no pitcher breakdown exists.
func (e *Engine) fallbackCandidates(opportunities []models.LooseRecord) []models.Candidate {
	var candidates []models.Candidate

	for _, opp := range opportunities {
		name, ok := opp.String(aliasPlayerName...)
		if !ok {
			continue
		}
		pos := battingOrder(opp)
		team := opp.StringOr("Unknown", aliasTeam...)
		stats := rawStats(opp)

		topOrder := pos >= 1 && pos <= 3
		highScore := stats.HRScore >= 50 || stats.HitProbability >= 50
		goodAvg := stats.RecentAvg >= 0.200
		if !topOrder && !highScore && !goodAvg {
			continue
		}

		if pos == 0 {
			pos = estimatePosition(highScore, goodAvg)
			e.debug("estimated batting slot for opportunity",
				logger.String("player", name), logger.Int("slot", pos))
		}

		criteria := e.evaluateFallbackCriteria(pos, stats)
		if criteria.Satisfied() < e.cfg.Engine.MinCriteriaFallback {
			continue
		}

		breakdown := models.ScoreBreakdown{
			PositionVulnerability: fallbackPositionScore(pos),
			RecentPerformance:     e.recentPerformanceScore(stats),
			OptimalMatchup:        e.optimalMatchupScore(stats),
		}
		breakdown.Composite = round2(e.fallbackCompositeScore(criteria, breakdown, pos))

		candidates = append(candidates, models.Candidate{
			Player: models.PlayerRef{Name: name, Team: team, Position: pos},
			Pitcher: models.PitcherRef{
				Name: opp.StringOr("Unknown", aliasPitcherName...),
				Team: "Opponent",
			},
			Matchup: models.MatchupRef{
				Key:   fmt.Sprintf("%s_opportunity", team),
				Venue: opp.StringOr("", "venue"),
				Side:  "opportunity",
			},
			Scores:   breakdown,
			Criteria: criteria,
			Batter:   stats,
		})
	}

	return candidates
}

// estimatePosition guesses a batting slot from performance shape: power
// plus average bats third, pure average leads off, anything else slots
// second.
func estimatePosition(highScore, goodAvg bool) int {
	switch {
	case highScore && goodAvg:
		return 3
	case goodAvg:
		return 1
	}
	return 2
}
