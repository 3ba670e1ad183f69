package engine

import "DugoutEdge/internal/domain/models"

// Alias chains for the loose upstream records. The scraper has renamed
// most of these fields at least once, so every component reads through
// this table; a new upstream name is added here and nowhere else.
var (
	aliasPlayerName   = []string{"player_name", "playerName", "name", "hitter_name", "batter_name"}
	aliasTeam         = []string{"team", "Team"}
	aliasBattingOrder = []string{"position", "batting_order", "order", "lineup_position"}

	aliasRecentAvg = []string{"recent_avg", "last_15_avg", "recent_average", "batting_average"}
	aliasRecentOPS = []string{"recent_ops", "last_15_ops", "ops"}
	aliasLast7Avg  = []string{"last_7_avg"}
	aliasLast15Avg = []string{"last_15_avg"}
	aliasHRScore   = []string{"hr_score"}
	aliasHitProb   = []string{"hit_probability"}
	aliasConf      = []string{"confidence"}

	aliasVulnScore = []string{"vulnerability_score"}
	aliasHitRate   = []string{"hit_frequency", "hit_rate"}
	aliasHRRate    = []string{"hr_frequency", "hr_rate"}

	aliasPitcherName = []string{"pitcher_name", "pitcher"}
	aliasERA         = []string{"pitcher_era", "era", "season_era", "recent_era", "overall_era"}
	aliasWHIP        = []string{"pitcher_whip", "whip", "season_whip", "recent_whip"}
	aliasGames       = []string{"games_analyzed"}

	aliasHomeTeam = []string{"home_team", "homeTeam"}
	aliasAwayTeam = []string{"away_team", "awayTeam"}
)

// battingOrder reads a 1-9 batting slot off a loose record, 0 when absent.
func battingOrder(r models.LooseRecord) int {
	n, ok := r.Int(aliasBattingOrder...)
	if !ok || n < 1 || n > 9 {
		return 0
	}
	return n
}

// rateFrom reads a rate through an alias chain and normalizes it.
func rateFrom(r models.LooseRecord, keys ...string) float64 {
	f, ok := r.Float(keys...)
	if !ok {
		return RateUnknown
	}
	return NormalizeRate(f)
}

// gameSideTeam reads a team abbreviation off a lineup-feed game, trying the
// nested teams object first.
func gameSideTeam(game models.LooseRecord, side string) string {
	if t, ok := game.Child("teams").Child(side).String("abbr", "abbreviation"); ok {
		return t
	}
	if side == "home" {
		return game.StringOr("", aliasHomeTeam...)
	}
	return game.StringOr("", aliasAwayTeam...)
}

// pitcherStats pulls the starter's display line off a profile, applying the
// league-typical defaults the scraper uses when a season line is missing.
func pitcherStats(p *models.PitcherProfile) models.PitcherStats {
	if p == nil {
		return models.PitcherStats{ERA: 4.50, WHIP: 1.30}
	}
	s := p.Scalars

	era, ok := s.Float(aliasERA...)
	if !ok {
		era, ok = nestedPitcherFloat(s, "era")
	}
	if !ok {
		era = 4.50
	}

	whip, ok := s.Float(aliasWHIP...)
	if !ok {
		whip, ok = nestedPitcherFloat(s, "whip")
	}
	if !ok {
		whip = 1.30
	}

	games, ok := s.Int(aliasGames...)
	if !ok {
		games, _ = s.Child("recent_form").Int(aliasGames...)
	}

	first := p.Inning(1)
	return models.PitcherStats{
		ERA:                era,
		WHIP:               whip,
		FirstInningVuln:    first.FloatOr(0, aliasVulnScore...),
		FirstInningHitRate: rateFrom(first, aliasHitRate...),
		GamesAnalyzed:      games,
	}
}

// nestedPitcherFloat checks the nested containers some scraper versions
// bury season lines in.
func nestedPitcherFloat(s models.LooseRecord, key string) (float64, bool) {
	for _, child := range []models.LooseRecord{
		s.Child("component_scores").Child("pitcher_analysis"),
		s.Child("stats"),
		s.Child("season_stats"),
		s.Child("recent_form"),
	} {
		if f, ok := child.Float(key); ok {
			return f, true
		}
	}
	return 0, false
}

// pitcherName reads the starter's name, empty when the profile is nil.
func pitcherName(p *models.PitcherProfile) string {
	if p == nil {
		return ""
	}
	return p.Scalars.StringOr("", aliasPitcherName...)
}
