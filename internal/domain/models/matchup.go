package models

import (
	"encoding/json"
	"fmt"
)

// AnalysisPayload is one day's scraped output: per-game pitcher breakdowns
// plus the flat opportunity list the scraper emits when the deep analysis
// fails.
type AnalysisPayload struct {
	MatchupAnalysis       map[string]GameAnalysis `json:"matchup_analysis"`
	WeakspotOpportunities []LooseRecord           `json:"weakspot_opportunities"`
	GeneratedAt           string                  `json:"generated_at,omitempty"`
}

// GameAnalysis groups the two pitcher breakdowns for one matchup key
// (e.g. "NYY@BOS"). Either side may be missing.
type GameAnalysis struct {
	Matchup             LooseRecord     `json:"matchup"`
	AwayPitcherAnalysis *PitcherProfile `json:"away_pitcher_analysis"`
	HomePitcherAnalysis *PitcherProfile `json:"home_pitcher_analysis"`
}

// Venue reads the venue off the matchup grouping, tolerating its absence.
func (g GameAnalysis) Venue() string {
	if g.Matchup == nil {
		return ""
	}
	return g.Matchup.StringOr("", "venue", "stadium")
}

// PitcherProfile is one pitcher's vulnerability breakdown. The scalar
// fields move around between scraper versions, so everything except the
// two pattern maps stays loose.
type PitcherProfile struct {
	InningPatterns          map[string]LooseRecord `json:"inning_patterns"`
	PositionVulnerabilities map[string]LooseRecord `json:"position_vulnerabilities"`
	Scalars                 LooseRecord            `json:"-"`
}

// UnmarshalJSON keeps the full object as Scalars so alias chains can reach
// fields we did not model.
func (p *PitcherProfile) UnmarshalJSON(b []byte) error {
	var raw LooseRecord
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	p.Scalars = raw
	p.InningPatterns = childRecordMap(raw, "inning_patterns")
	p.PositionVulnerabilities = childRecordMap(raw, "position_vulnerabilities")
	return nil
}

// Inning returns the pattern record for inning n, trying both key styles.
func (p *PitcherProfile) Inning(n int) LooseRecord {
	if p == nil || p.InningPatterns == nil {
		return nil
	}
	if r, ok := p.InningPatterns[fmt.Sprintf("inning_%d", n)]; ok {
		return r
	}
	return p.InningPatterns[fmt.Sprintf("%d", n)]
}

// Position returns the vulnerability record for batting-order slot n.
func (p *PitcherProfile) Position(n int) LooseRecord {
	if p == nil || p.PositionVulnerabilities == nil {
		return nil
	}
	if r, ok := p.PositionVulnerabilities[fmt.Sprintf("position_%d", n)]; ok {
		return r
	}
	return p.PositionVulnerabilities[fmt.Sprintf("%d", n)]
}

func childRecordMap(raw LooseRecord, key string) map[string]LooseRecord {
	child := raw.Child(key)
	if child == nil {
		return nil
	}
	out := make(map[string]LooseRecord, len(child))
	for k, v := range child {
		if m, ok := v.(map[string]any); ok {
			out[k] = LooseRecord(m)
		}
	}
	return out
}

// LineupFeed is the starting-lineup snapshot. The feed sometimes wraps the
// games in an object and sometimes sends a bare array.
type LineupFeed struct {
	Games []LooseRecord
}

func (l *LineupFeed) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Games []LooseRecord `json:"games"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil && wrapped.Games != nil {
		l.Games = wrapped.Games
		return nil
	}
	var bare []LooseRecord
	if err := json.Unmarshal(b, &bare); err != nil {
		return err
	}
	l.Games = bare
	return nil
}

func (l *LineupFeed) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Games []LooseRecord `json:"games"`
	}{Games: l.Games})
}
