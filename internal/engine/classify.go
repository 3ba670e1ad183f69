package engine

import "DugoutEdge/internal/domain/models"

// Classification modes.
const (
	ClassifyByConfidence = "confidence"
	ClassifyByPosition   = "position"
	ClassifyByTiming     = "timing"
)

// Classify groups ranked candidates along one display dimension. Unknown
// modes fall back to confidence grouping. Group order is fixed per mode;
// empty groups are omitted.
func (e *Engine) Classify(result *models.Result, mode string) models.Classification {
	var order []string
	label := func(c models.RankedCandidate) string { return "" }

	switch mode {
	case ClassifyByPosition:
		order = []string{"Leadoff", "2nd Hitter", "3rd Hitter", "Other"}
		label = func(c models.RankedCandidate) string {
			switch c.Player.Position {
			case 1:
				return "Leadoff"
			case 2:
				return "2nd Hitter"
			case 3:
				return "3rd Hitter"
			}
			return "Other"
		}
	case ClassifyByTiming:
		order = []string{"First Inning Ready", "Developing"}
		label = func(c models.RankedCandidate) string {
			if c.Criteria.InningPatterns {
				return "First Inning Ready"
			}
			return "Developing"
		}
	default:
		mode = ClassifyByConfidence
		order = []string{"High Confidence", "Medium Confidence", "Low Confidence"}
		label = func(c models.RankedCandidate) string {
			switch {
			case c.Batter.Confidence >= 75:
				return "High Confidence"
			case c.Batter.Confidence >= 50:
				return "Medium Confidence"
			}
			return "Low Confidence"
		}
	}

	buckets := make(map[string][]models.RankedCandidate)
	for _, c := range result.Candidates {
		l := label(c)
		buckets[l] = append(buckets[l], c)
	}

	classification := models.Classification{Mode: mode}
	for _, l := range order {
		group := buckets[l]
		if len(group) == 0 {
			continue
		}
		sum := 0.0
		for _, c := range group {
			sum += c.Scores.Composite
		}
		classification.Groups = append(classification.Groups, models.ClassifiedGroup{
			Label:        l,
			Count:        len(group),
			AverageScore: round2(sum / float64(len(group))),
			Candidates:   group,
		})
	}
	return classification
}
