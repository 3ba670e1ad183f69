package engine

import "DugoutEdge/internal/domain/models"

// Category weights for the composite. These are the expert-recommended
// splits the whole product is tuned around and are deliberately not
// configuration.
const (
	weightInningPatterns = 0.45
	weightPosition       = 0.30
	weightRecent         = 0.20
	weightOptimal        = 0.05
)

// Per-inning weights inside the inning-patterns category. The first inning
// dominates since that is the window being bet on.
var inningWeights = map[int]float64{1: 0.5, 2: 0.3, 3: 0.2}

// inningPatternsScore scores innings 1-3 of a pitcher: the raw
// vulnerability score per inning plus hit-rate and HR-rate bonuses,
// weighted toward the first inning, with a 1.2x bonus when all three
// innings have data.
func (e *Engine) inningPatternsScore(profile *models.PitcherProfile) float64 {
	if profile == nil {
		return 0
	}

	score := 0.0
	processed := 0
	for inning := 1; inning <= 3; inning++ {
		rec := profile.Inning(inning)
		if rec == nil {
			continue
		}

		inningScore := rec.FloatOr(0, aliasVulnScore...)

		hitRate := rateFrom(rec, aliasHitRate...)
		switch {
		case KnownRate(hitRate) && hitRate > 30:
			inningScore += 10
		case KnownRate(hitRate) && hitRate > 25:
			inningScore += 5
		}

		hrRate := rateFrom(rec, aliasHRRate...)
		switch {
		case KnownRate(hrRate) && hrRate > 15:
			inningScore += 15
		case KnownRate(hrRate) && hrRate > 10:
			inningScore += 8
		}

		score += inningScore * inningWeights[inning]
		processed++
	}

	if processed == 3 {
		score *= 1.2
	}
	return clamp(score, 0, 100)
}

// positionScore scores one batting slot: scaled vulnerability plus a
// slot-specific bonus plus rate bonuses. The third slot carries the largest
// bonus since that is where the best hitter usually bats.
func (e *Engine) positionScore(profile *models.PitcherProfile, pos int) float64 {
	if profile == nil {
		return 0
	}
	rec := profile.Position(pos)
	if rec == nil {
		return 0
	}

	score := rec.FloatOr(0, aliasVulnScore...) * 3

	switch pos {
	case 1:
		score += 10
	case 2:
		score += 8
	case 3:
		score += 15
	}

	hitRate := rateFrom(rec, aliasHitRate...)
	switch {
	case KnownRate(hitRate) && hitRate > 30:
		score += 15
	case KnownRate(hitRate) && hitRate > 25:
		score += 10
	}

	hrRate := rateFrom(rec, aliasHRRate...)
	switch {
	case KnownRate(hrRate) && hrRate > 12:
		score += 20
	case KnownRate(hrRate) && hrRate > 8:
		score += 12
	}

	return clamp(score, 0, 100)
}

// recentPerformanceScore scores short-term form on a tier table plus a hot
// streak bonus.
func (e *Engine) recentPerformanceScore(stats models.BatterStats) float64 {
	score := 0.0

	switch {
	case stats.RecentAvg >= 0.300:
		score += 30
	case stats.RecentAvg >= 0.250:
		score += 20
	case stats.RecentAvg >= 0.200:
		score += 10
	}

	switch {
	case stats.RecentOPS >= 0.800:
		score += 25
	case stats.RecentOPS >= 0.700:
		score += 15
	case stats.RecentOPS >= 0.600:
		score += 8
	}

	if hotStreak(stats) {
		score += 15
	}

	return clamp(score, 0, 100)
}

// hotStreak reports whether the last week clearly outruns the last two.
func hotStreak(stats models.BatterStats) bool {
	return stats.Last7Avg > 0.300 && stats.Last7Avg > stats.Last15Avg+0.050
}

// optimalMatchupScore blends the upstream projection scores.
func (e *Engine) optimalMatchupScore(stats models.BatterStats) float64 {
	return clamp(stats.HRScore*0.4+stats.HitProbability*0.4+stats.Confidence*0.2, 0, 100)
}

// compositeScore combines the four category scores, counting only
// categories whose criterion passed.
func (e *Engine) compositeScore(breakdown models.ScoreBreakdown, criteria models.CriteriaResult) float64 {
	score := 0.0
	if criteria.InningPatterns {
		score += breakdown.InningPatterns * weightInningPatterns
	}
	if criteria.PositionVulnerability {
		score += breakdown.PositionVulnerability * weightPosition
	}
	if criteria.RecentPerformance {
		score += breakdown.RecentPerformance * weightRecent
	}
	if criteria.OptimalMatchup {
		score += breakdown.OptimalMatchup * weightOptimal
	}
	return clamp(score, 0, 100)
}

// fallbackPositionScore is the flat per-slot score used when no pitcher
// breakdown exists.
func fallbackPositionScore(pos int) float64 {
	switch pos {
	case 1:
		return 70
	case 2:
		return 60
	case 3:
		return 65
	}
	return 40
}

// fallbackCompositeScore is the simplified composite for opportunity-list
// candidates: a base plus slot bonus plus damped performance terms.
func (e *Engine) fallbackCompositeScore(criteria models.CriteriaResult, breakdown models.ScoreBreakdown, pos int) float64 {
	score := 40.0

	switch pos {
	case 1:
		score += 15
	case 2:
		score += 10
	case 3:
		score += 12
	}

	if criteria.RecentPerformance {
		score += breakdown.RecentPerformance * 0.3
	}
	if criteria.OptimalMatchup {
		score += breakdown.OptimalMatchup * 0.2
	}

	return clamp(score, 0, 100)
}
