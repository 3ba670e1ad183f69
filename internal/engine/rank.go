package engine

import (
	"sort"

	"DugoutEdge/internal/domain/models"
)

// rankCandidates filters out sub-threshold composites, sorts the rest
// descending and assigns 1-based ranks and tiers. The sort is stable so
// equal composites keep their build order.
func (e *Engine) rankCandidates(candidates []models.Candidate) []models.RankedCandidate {
	kept := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Scores.Composite >= e.cfg.Engine.MinCompositeScore {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Scores.Composite > kept[j].Scores.Composite
	})

	ranked := make([]models.RankedCandidate, len(kept))
	for i, c := range kept {
		ranked[i] = models.RankedCandidate{
			Candidate: c,
			Rank:      i + 1,
			Tier:      e.tierFor(c.Scores.Composite),
		}
	}
	return ranked
}

// tierFor buckets a composite score. Cutoffs are configuration and
// validated to be strictly descending, so every score lands in exactly one
// tier.
func (e *Engine) tierFor(score float64) models.Tier {
	switch {
	case score >= e.cfg.Engine.TierElite:
		return models.TierElite
	case score >= e.cfg.Engine.TierStrong:
		return models.TierStrong
	case score >= e.cfg.Engine.TierMonitoring:
		return models.TierMonitoring
	}
	return models.TierStandard
}

// summarize counts ranked candidates per tier.
func summarize(ranked []models.RankedCandidate) models.Summary {
	s := models.Summary{Total: len(ranked)}
	for _, c := range ranked {
		switch c.Tier {
		case models.TierElite:
			s.Elite++
		case models.TierStrong:
			s.Strong++
		case models.TierMonitoring:
			s.Monitoring++
		}
	}
	return s
}

// averageScore is the mean composite over ranked candidates, two decimals.
func averageScore(ranked []models.RankedCandidate) float64 {
	if len(ranked) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range ranked {
		sum += c.Scores.Composite
	}
	return round2(sum / float64(len(ranked)))
}
