package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/engine"
	"DugoutEdge/pkg/config"
)

type fakeProvider struct {
	inputs engine.Inputs
	dates  []string
}

func (f *fakeProvider) Daily(_ context.Context, date string) (engine.Inputs, error) {
	f.dates = append(f.dates, date)
	return f.inputs, nil
}

type fakeHistory struct {
	saves chan string
}

func (f *fakeHistory) SaveRun(_ context.Context, date string, _ *models.Result) error {
	f.saves <- date
	return nil
}

func (f *fakeHistory) Close() error { return nil }

type fakeAlerts struct {
	players chan string
}

func (f *fakeAlerts) PublishAlert(_ context.Context, c models.RankedCandidate) error {
	f.players <- c.Player.Name
	return nil
}

func (f *fakeAlerts) Close() error { return nil }

type fakeQueue struct {
	types []string
}

func (f *fakeQueue) PublishMessage(_ context.Context, msgType string, _ interface{}) error {
	f.types = append(f.types, msgType)
	return nil
}

func aggConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{Environment: "test"}
	cfg.ApplyEngineDefaults()
	return cfg
}

// Two opportunity-list hitters: a leadoff bat hot enough to rank elite and
// a third-slot bat that lands in the monitoring band.
func slateProvider() *fakeProvider {
	return &fakeProvider{inputs: engine.Inputs{
		Opportunities: []models.LooseRecord{
			{
				"player_name":     "Aaron Judge",
				"team":            "NYY",
				"position":        1,
				"recent_avg":      0.320,
				"recent_ops":      0.850,
				"hr_score":        90,
				"hit_probability": 88,
				"confidence":      90,
			},
			{
				"player_name":     "Rafael Devers",
				"team":            "BOS",
				"position":        3,
				"recent_avg":      0.260,
				"recent_ops":      0.720,
				"hr_score":        40,
				"hit_probability": 45,
				"confidence":      50,
			},
		},
	}}
}

func newAggregator(t *testing.T, provider *fakeProvider, history *fakeHistory, alerts *fakeAlerts) *OpportunityAggregator {
	t.Helper()
	eng := engine.New(aggConfig(t))
	agg := NewOpportunityAggregator(provider, eng, nil, nil, nil, nil)
	if history != nil {
		agg.history = history
	}
	if alerts != nil {
		agg.alerts = alerts
	}
	return agg
}

func TestOpportunitiesRanksFullSlate(t *testing.T) {
	agg := newAggregator(t, slateProvider(), nil, nil)

	res, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", MinScore: 40, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 2)

	require.Equal(t, "Aaron Judge", res.Candidates[0].Player.Name)
	require.Equal(t, 1, res.Candidates[0].Rank)
	require.Equal(t, models.TierElite, res.Candidates[0].Tier)
	require.InDelta(t, 89.34, res.Candidates[0].Scores.Composite, 0.001)

	require.Equal(t, "Rafael Devers", res.Candidates[1].Player.Name)
	require.Equal(t, 2, res.Candidates[1].Rank)
	require.Equal(t, models.TierMonitoring, res.Candidates[1].Tier)
	require.InDelta(t, 62.5, res.Candidates[1].Scores.Composite, 0.001)

	require.Equal(t, models.Summary{Elite: 1, Monitoring: 1, Total: 2}, res.Summary)
}

func TestOpportunitiesTeamFilterKeepsOverallRank(t *testing.T) {
	agg := newAggregator(t, slateProvider(), nil, nil)

	res, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", Team: "bos", MinScore: 40, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	require.Equal(t, "Rafael Devers", res.Candidates[0].Player.Name)
	// rank reflects the full board, not the filtered view
	require.Equal(t, 2, res.Candidates[0].Rank)
	require.Equal(t, models.Summary{Monitoring: 1, Total: 1}, res.Summary)
}

func TestOpportunitiesMinScoreAndLimit(t *testing.T) {
	agg := newAggregator(t, slateProvider(), nil, nil)

	res, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", MinScore: 80, Limit: 50,
	})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	require.Equal(t, "Aaron Judge", res.Candidates[0].Player.Name)

	res, err = agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", MinScore: 40, Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	require.Equal(t, "Aaron Judge", res.Candidates[0].Player.Name)
}

func TestOpportunitiesDefaultsDate(t *testing.T) {
	provider := slateProvider()
	agg := newAggregator(t, provider, nil, nil)

	_, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{MinScore: 40, Limit: 50})
	require.NoError(t, err)
	require.Len(t, provider.dates, 1)
	require.Equal(t, time.Now().Format("2006-01-02"), provider.dates[0])
}

func TestFanOutPersistsRunAndAlertsElite(t *testing.T) {
	history := &fakeHistory{saves: make(chan string, 1)}
	alerts := &fakeAlerts{players: make(chan string, 4)}
	agg := newAggregator(t, slateProvider(), history, alerts)

	_, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", MinScore: 40, Limit: 50,
	})
	require.NoError(t, err)

	select {
	case date := <-history.saves:
		require.Equal(t, "2025-06-01", date)
	case <-time.After(2 * time.Second):
		t.Fatal("history save never happened")
	}

	select {
	case player := <-alerts.players:
		require.Equal(t, "Aaron Judge", player)
	case <-time.After(2 * time.Second):
		t.Fatal("elite alert never published")
	}
	// the monitoring-tier candidate must not alert
	require.Empty(t, alerts.players)
}

func TestFanOutPrefersJobQueue(t *testing.T) {
	history := &fakeHistory{saves: make(chan string, 1)}
	agg := newAggregator(t, slateProvider(), history, nil)
	q := &fakeQueue{}
	agg.SetJobQueue(q)

	_, err := agg.Opportunities(context.Background(), &models.OpportunitiesRequest{
		Date: "2025-06-01", MinScore: 40, Limit: 50,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"persist_run"}, q.types)
	require.Empty(t, history.saves)
}

func TestClassifyGroupsByPosition(t *testing.T) {
	agg := newAggregator(t, slateProvider(), nil, nil)

	c, err := agg.Classify(context.Background(), &models.ClassifyRequest{
		Date: "2025-06-01", Mode: "position",
	})
	require.NoError(t, err)

	groups := make(map[string]int)
	for _, g := range c.Groups {
		groups[g.Label] = len(g.Candidates)
	}
	require.Equal(t, map[string]int{"Leadoff": 1, "3rd Hitter": 1}, groups)
}
