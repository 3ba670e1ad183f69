package engine

import "DugoutEdge/internal/domain/models"

// The four qualification criteria. Thresholds are tuning knobs, not
// invariants, and come from configuration; missing data always fails the
// criterion rather than erroring.

// inningPatternsQualify checks innings 1-3 of a pitcher for enough
// vulnerable innings.
func (e *Engine) inningPatternsQualify(profile *models.PitcherProfile) bool {
	if profile == nil {
		return false
	}
	qualifying := 0
	for inning := 1; inning <= 3; inning++ {
		rec := profile.Inning(inning)
		if rec == nil {
			continue
		}
		if rec.FloatOr(0, aliasVulnScore...) >= e.cfg.Engine.InningVulnThreshold {
			qualifying++
		}
	}
	return qualifying >= e.cfg.Engine.MinQualifyingInnings
}

// positionVulnerable checks one batting slot of the pitcher's positional
// breakdown: vulnerability score or hit rate over threshold.
func (e *Engine) positionVulnerable(profile *models.PitcherProfile, pos int) bool {
	if profile == nil {
		return false
	}
	rec := profile.Position(pos)
	if rec == nil {
		return false
	}
	if rec.FloatOr(0, aliasVulnScore...) >= e.cfg.Engine.PositionVulnThreshold {
		return true
	}
	rate := rateFrom(rec, aliasHitRate...)
	return KnownRate(rate) && rate >= e.cfg.Engine.PositionHitRateThreshold
}

// recentPerformanceQualifies checks the batter's short-term form.
func (e *Engine) recentPerformanceQualifies(stats models.BatterStats) bool {
	return stats.RecentAvg >= e.cfg.Engine.RecentAvgThreshold ||
		stats.RecentOPS >= e.cfg.Engine.RecentOPSThreshold
}

// optimalMatchupQualifies checks whether upstream projection models already
// flagged the pairing.
func (e *Engine) optimalMatchupQualifies(stats models.BatterStats) bool {
	return stats.HRScore >= e.cfg.Engine.OptimalScoreThreshold ||
		stats.HitProbability >= e.cfg.Engine.OptimalScoreThreshold
}

// evaluateCriteria runs all four checks for a comprehensive-mode candidate.
func (e *Engine) evaluateCriteria(b batter, profile *models.PitcherProfile) models.CriteriaResult {
	return models.CriteriaResult{
		InningPatterns:        e.inningPatternsQualify(profile),
		PositionVulnerability: e.positionVulnerable(profile, b.ref.Position),
		RecentPerformance:     e.recentPerformanceQualifies(b.stats),
		OptimalMatchup:        e.optimalMatchupQualifies(b.stats),
	}
}

// evaluateFallbackCriteria is the reduced set available when only the flat
// opportunity list exists: no pitcher breakdown, so the positional check
// degrades to "bats in the top three".
func (e *Engine) evaluateFallbackCriteria(pos int, stats models.BatterStats) models.CriteriaResult {
	return models.CriteriaResult{
		InningPatterns:        false,
		PositionVulnerability: pos >= 1 && pos <= 3,
		RecentPerformance:     e.recentPerformanceQualifies(stats),
		OptimalMatchup:        e.optimalMatchupQualifies(stats),
	}
}
