package client

import (
	"sort"

	"github.com/prospia/roster-system/stats"
)

// buildLineup переводит детальный ответ сервера в UI-форму: делит
// игроков на бьющих и питчеров, считает производные показатели и
// сортирует по политике показа. Сортировки стабильные: равные слоты
// остаются в порядке исходного списка.
func buildLineup(details *wireTournamentDetails) *Lineup {
	lineup := &Lineup{
		Tournament: details.Tournament.toView(),
		Batters:    make([]Batter, 0),
		Pitchers:   make([]Pitcher, 0),
	}

	for _, pws := range details.PlayersWithStats {
		switch pws.Player.Type {
		case "batter":
			lineup.Batters = append(lineup.Batters, toBatter(pws))
		case "pitcher":
			lineup.Pitchers = append(lineup.Pitchers, toPitcher(pws))
		}
	}

	sort.SliceStable(lineup.Batters, func(i, j int) bool {
		return stats.BatterOrderValue(lineup.Batters[i].Order) < stats.BatterOrderValue(lineup.Batters[j].Order)
	})
	sort.SliceStable(lineup.Pitchers, func(i, j int) bool {
		return stats.PitcherOrderValue(lineup.Pitchers[i].Order) < stats.PitcherOrderValue(lineup.Pitchers[j].Order)
	})

	return lineup
}

func toBatter(pws wirePlayerWithStats) Batter {
	b := Batter{
		ID:       pws.Player.ID,
		Name:     pws.Player.Name,
		Position: pws.Player.Position,
		Order:    pws.Stats.Order,
		AtBats:   orZero(pws.Stats.AtBats),
		Hits:     orZero(pws.Stats.Hits),
		Doubles:  orZero(pws.Stats.Doubles),
		Triples:  orZero(pws.Stats.Triples),
		HomeRuns: orZero(pws.Stats.HomeRuns),
		RBI:      orZero(pws.Stats.RBI),
	}
	recomputeBatter(&b)
	return b
}

func toPitcher(pws wirePlayerWithStats) Pitcher {
	p := Pitcher{
		ID:       pws.Player.ID,
		Name:     pws.Player.Name,
		Position: pws.Player.Position,
		Order:    pws.Stats.Order,
		Wins:     orZero(pws.Stats.Wins),
		Losses:   orZero(pws.Stats.Losses),
		Saves:    orZero(pws.Stats.Saves),
	}
	recomputePitcher(&p)
	return p
}

// Производные значения всегда пересчитываются из счётчиков, с провода
// они не приходят.
func recomputeBatter(b *Batter) {
	b.Average = stats.Average(b.AtBats, b.Hits)
	b.Slugging = stats.Slugging(b.AtBats, b.Hits, b.Doubles, b.Triples, b.HomeRuns)
	b.OPS = stats.OPS(b.AtBats, b.Hits, b.Doubles, b.Triples, b.HomeRuns)
}

func recomputePitcher(p *Pitcher) {
	p.WinRate = stats.WinRate(p.Wins, p.Losses)
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
