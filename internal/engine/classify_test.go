package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DugoutEdge/internal/domain/models"
)

func classifiable() *models.Result {
	mk := func(pos int, conf, composite float64, inning bool) models.RankedCandidate {
		return models.RankedCandidate{
			Candidate: models.Candidate{
				Player:   models.PlayerRef{Position: pos},
				Batter:   models.BatterStats{Confidence: conf},
				Scores:   models.ScoreBreakdown{Composite: composite},
				Criteria: models.CriteriaResult{InningPatterns: inning},
			},
		}
	}
	return &models.Result{
		Candidates: []models.RankedCandidate{
			mk(1, 80, 90, true),
			mk(2, 60, 70, false),
			mk(3, 60, 50, true),
			mk(1, 40, 45, false),
		},
	}
}

func TestClassifyByConfidence(t *testing.T) {
	e := New(testConfig(t))

	c := e.Classify(classifiable(), ClassifyByConfidence)
	require.Equal(t, ClassifyByConfidence, c.Mode)
	require.Len(t, c.Groups, 3)

	require.Equal(t, "High Confidence", c.Groups[0].Label)
	require.Equal(t, 1, c.Groups[0].Count)
	require.InDelta(t, 90, c.Groups[0].AverageScore, 0.001)

	require.Equal(t, "Medium Confidence", c.Groups[1].Label)
	require.Equal(t, 2, c.Groups[1].Count)
	require.InDelta(t, 60, c.Groups[1].AverageScore, 0.001)

	require.Equal(t, "Low Confidence", c.Groups[2].Label)
	require.Equal(t, 1, c.Groups[2].Count)
}

func TestClassifyByPosition(t *testing.T) {
	e := New(testConfig(t))

	c := e.Classify(classifiable(), ClassifyByPosition)
	require.Len(t, c.Groups, 3)
	require.Equal(t, "Leadoff", c.Groups[0].Label)
	require.Equal(t, 2, c.Groups[0].Count)
	require.Equal(t, "2nd Hitter", c.Groups[1].Label)
	require.Equal(t, "3rd Hitter", c.Groups[2].Label)
}

func TestClassifyByTiming(t *testing.T) {
	e := New(testConfig(t))

	c := e.Classify(classifiable(), ClassifyByTiming)
	require.Len(t, c.Groups, 2)
	require.Equal(t, "First Inning Ready", c.Groups[0].Label)
	require.Equal(t, 2, c.Groups[0].Count)
	require.Equal(t, "Developing", c.Groups[1].Label)
	require.Equal(t, 2, c.Groups[1].Count)
}

func TestClassifyUnknownModeFallsBackToConfidence(t *testing.T) {
	e := New(testConfig(t))

	c := e.Classify(classifiable(), "nonsense")
	require.Equal(t, ClassifyByConfidence, c.Mode)
}
