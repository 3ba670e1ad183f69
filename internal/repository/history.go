package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/internal/domain/repository"
)

// HistorySchema creates the candidate history table. Passed to the
// ClickHouse client's InitSchema on startup.
var HistorySchema = []string{
	`CREATE TABLE IF NOT EXISTS candidate_history (
		run_date      Date,
		run_ts        DateTime,
		method        LowCardinality(String),
		rank          UInt16,
		tier          LowCardinality(String),
		player_name   String,
		player_team   LowCardinality(String),
		batting_slot  UInt8,
		pitcher_name  String,
		pitcher_team  LowCardinality(String),
		matchup_key   String,
		composite     Float64,
		inning_score  Float64,
		position_score Float64,
		recent_score  Float64,
		optimal_score Float64
	) ENGINE = MergeTree()
	ORDER BY (run_date, rank)`,
}

// ClickHouseHistory implements HistorySink on ClickHouse. One row per
// ranked candidate per run; reruns for the same date append, hindsight
// queries take the latest run_ts.
type ClickHouseHistory struct {
	db *sql.DB
}

// NewClickHouseHistory creates a ClickHouse history sink.
func NewClickHouseHistory(db *sql.DB) repository.HistorySink {
	return &ClickHouseHistory{db: db}
}

func (s *ClickHouseHistory) SaveRun(ctx context.Context, date string, result *models.Result) error {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}

	runDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		runDate = result.Metadata.Timestamp
	}

	values := make([]string, 0, len(result.Candidates))
	args := make([]interface{}, 0, len(result.Candidates)*16)
	for _, c := range result.Candidates {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			runDate,
			result.Metadata.Timestamp,
			string(result.Metadata.AnalysisMethod),
			uint16(c.Rank),
			string(c.Tier),
			c.Player.Name,
			c.Player.Team,
			uint8(c.Player.Position),
			c.Pitcher.Name,
			c.Pitcher.Team,
			c.Matchup.Key,
			c.Scores.Composite,
			c.Scores.InningPatterns,
			c.Scores.PositionVulnerability,
			c.Scores.RecentPerformance,
			c.Scores.OptimalMatchup,
		)
	}

	q := fmt.Sprintf(`INSERT INTO candidate_history
		(run_date, run_ts, method, rank, tier, player_name, player_team, batting_slot,
		 pitcher_name, pitcher_team, matchup_key, composite, inning_score, position_score,
		 recent_score, optimal_score) VALUES %s`, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save run %s: %w", date, err)
	}
	return nil
}

func (s *ClickHouseHistory) Close() error {
	return nil // pool managed by pkg/clickhouse
}
