package engine

import (
	"fmt"
	"strings"

	"DugoutEdge/internal/domain/models"
	"DugoutEdge/pkg/logger"
)

// batter is a resolved batting-slot occupant ready for evaluation.
type batter struct {
	ref    models.PlayerRef
	stats  models.BatterStats
	record models.LooseRecord // matched opportunity record, may be nil
}

// resolveBatters walks batting slots 1-3 of a pitcher's vulnerability map
// and resolves each qualifying slot to a batter. Resolution falls through
// four sources in priority order: the live lineup feed, a name embedded on
// the position record, the flat opportunity list matched by team and slot,
// and finally a synthesized placeholder whose stats are estimated from the
// position record itself. The resolver never fails; the worst case is a
// placeholder.
func (e *Engine) resolveBatters(profile *models.PitcherProfile, team string, opportunities []models.LooseRecord, lineups *models.LineupFeed) []batter {
	var batters []batter
	if profile == nil || team == "" {
		return batters
	}

	for pos := 1; pos <= 3; pos++ {
		posRec := profile.Position(pos)
		if posRec == nil {
			continue
		}
		if !e.positionVulnerable(profile, pos) {
			continue
		}

		if name, ok := e.lineupHitter(pos, team, lineups); ok {
			rec := findOpportunityByName(opportunities, name)
			batters = append(batters, batter{
				ref:    models.PlayerRef{Name: name, Team: team, Position: pos},
				stats:  statsWithDefaults(rec),
				record: rec,
			})
			e.debug("batter resolved from lineup feed",
				logger.String("player", name), logger.String("team", team), logger.Int("slot", pos))
			continue
		}

		if name, ok := posRec.String(aliasPlayerName...); ok {
			rec := findOpportunityByName(opportunities, name)
			batters = append(batters, batter{
				ref:    models.PlayerRef{Name: name, Team: team, Position: pos},
				stats:  statsWithDefaults(rec),
				record: rec,
			})
			e.debug("batter resolved from position record",
				logger.String("player", name), logger.String("team", team), logger.Int("slot", pos))
			continue
		}

		if rec := findOpportunityBySlot(opportunities, team, pos); rec != nil {
			name := rec.StringOr("", aliasPlayerName...)
			batters = append(batters, batter{
				ref:    models.PlayerRef{Name: name, Team: team, Position: pos},
				stats:  rawStats(rec),
				record: rec,
			})
			e.debug("batter resolved from opportunity list",
				logger.String("player", name), logger.String("team", team), logger.Int("slot", pos))
			continue
		}

		batters = append(batters, batter{
			ref: models.PlayerRef{
				Name:        fmt.Sprintf("Position %d Hitter (%s)", pos, team),
				Team:        team,
				Position:    pos,
				Placeholder: true,
			},
			stats: placeholderStats(posRec),
		})
		e.debug("no identity source for slot, synthesized placeholder",
			logger.String("team", team), logger.Int("slot", pos))
	}

	return batters
}

// lineupHitter finds the batter occupying a slot in the lineup feed.
func (e *Engine) lineupHitter(pos int, team string, lineups *models.LineupFeed) (string, bool) {
	if lineups == nil {
		return "", false
	}
	for _, game := range lineups.Games {
		home := gameSideTeam(game, "home")
		away := gameSideTeam(game, "away")
		var side string
		switch {
		case strings.EqualFold(home, team):
			side = "home"
		case strings.EqualFold(away, team):
			side = "away"
		default:
			continue
		}

		// The feed has shipped both {lineups: {home: [...]}} and
		// {lineup: {home: [...]}}.
		lineup := game.Child("lineups").Records(side)
		if lineup == nil {
			lineup = game.Child("lineup").Records(side)
		}
		for _, player := range lineup {
			if battingOrder(player) == pos {
				if name, ok := player.String(aliasPlayerName...); ok {
					return name, true
				}
			}
		}
		return "", false
	}
	return "", false
}

// findOpportunityByName fuzzy-matches a player name against the flat
// opportunity list. Feeds abbreviate names inconsistently ("J. Soto" vs
// "Juan Soto"), so containment in either direction counts.
func findOpportunityByName(opportunities []models.LooseRecord, name string) models.LooseRecord {
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	for _, opp := range opportunities {
		oppName, ok := opp.String(aliasPlayerName...)
		if !ok {
			continue
		}
		ol := strings.ToLower(oppName)
		if ol == lower || strings.Contains(ol, lower) || strings.Contains(lower, ol) {
			return opp
		}
	}
	return nil
}

// findOpportunityBySlot matches by team and batting slot.
func findOpportunityBySlot(opportunities []models.LooseRecord, team string, pos int) models.LooseRecord {
	for _, opp := range opportunities {
		if !strings.EqualFold(opp.StringOr("", aliasTeam...), team) {
			continue
		}
		if battingOrder(opp) == pos {
			return opp
		}
	}
	return nil
}

// statsWithDefaults reads a batter line off an opportunity record, filling
// gaps with league-typical defaults. rec may be nil.
func statsWithDefaults(rec models.LooseRecord) models.BatterStats {
	return models.BatterStats{
		RecentAvg:      rec.FloatOr(0.250, aliasRecentAvg...),
		RecentOPS:      rec.FloatOr(0.700, aliasRecentOPS...),
		Last7Avg:       rec.FloatOr(0, aliasLast7Avg...),
		Last15Avg:      rec.FloatOr(0, aliasLast15Avg...),
		HRScore:        rec.FloatOr(50, aliasHRScore...),
		HitProbability: rec.FloatOr(50, aliasHitProb...),
		Confidence:     rec.FloatOr(60, aliasConf...),
	}
}

// rawStats reads a batter line with zero defaults, for records that came
// straight off the opportunity list.
func rawStats(rec models.LooseRecord) models.BatterStats {
	return models.BatterStats{
		RecentAvg:      rec.FloatOr(0, aliasRecentAvg...),
		RecentOPS:      rec.FloatOr(0, aliasRecentOPS...),
		Last7Avg:       rec.FloatOr(0, aliasLast7Avg...),
		Last15Avg:      rec.FloatOr(0, aliasLast15Avg...),
		HRScore:        rec.FloatOr(0, aliasHRScore...),
		HitProbability: rec.FloatOr(0, aliasHitProb...),
		Confidence:     rec.FloatOr(0, aliasConf...),
	}
}

// placeholderStats estimates a batter line from the position record alone.
func placeholderStats(posRec models.LooseRecord) models.BatterStats {
	stats := models.BatterStats{
		RecentAvg:      0.250,
		RecentOPS:      0.700,
		HRScore:        posRec.FloatOr(50, aliasVulnScore...),
		HitProbability: 25,
		Confidence:     60,
	}
	if rate := rateFrom(posRec, aliasHitRate...); KnownRate(rate) {
		stats.RecentAvg = rate / 100
		stats.HitProbability = rate
	}
	return stats
}
