package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFileProviderLoadsDay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2026-05-01", "analysis.json"),
		`{"matchup_analysis": {"NYY@BOS": {"matchup": {"away_team": "NYY", "home_team": "BOS"}}}}`)
	writeFile(t, filepath.Join(dir, "2026-05-01", "opportunities.json"),
		`[{"player_name": "A"}, {"player_name": "B"}]`)
	writeFile(t, filepath.Join(dir, "2026-05-01", "lineups.json"),
		`{"games": [{"home_team": "BOS"}]}`)

	p := NewFileProvider(dir, nil)
	in, err := p.Daily(context.Background(), "2026-05-01")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if in.Analysis == nil || len(in.Analysis.MatchupAnalysis) != 1 {
		t.Fatalf("analysis not loaded: %+v", in.Analysis)
	}
	if len(in.Opportunities) != 2 {
		t.Fatalf("opportunities = %d, want 2", len(in.Opportunities))
	}
	if in.Lineups == nil || len(in.Lineups.Games) != 1 {
		t.Fatalf("lineups not loaded: %+v", in.Lineups)
	}
}

func TestFileProviderMissingDayIsEmpty(t *testing.T) {
	p := NewFileProvider(t.TempDir(), nil)
	in, err := p.Daily(context.Background(), "2026-05-02")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if in.Analysis != nil || in.Opportunities != nil || in.Lineups != nil {
		t.Fatalf("expected empty inputs, got %+v", in)
	}
}

func TestFileProviderCorruptPayloadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2026-05-01", "analysis.json"), `{not json`)

	p := NewFileProvider(dir, nil)
	if _, err := p.Daily(context.Background(), "2026-05-01"); err == nil {
		t.Fatal("expected parse error")
	}
}
