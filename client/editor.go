package client

import (
	"context"
	"fmt"
	"strconv"
)

// BatterLine — редактируемые счётчики бьющего.
type BatterLine struct {
	Order    *int
	AtBats   int
	Hits     int
	Doubles  int
	Triples  int
	HomeRuns int
	RBI      int
}

// PitcherLine — редактируемые счётчики питчера.
type PitcherLine struct {
	Order  *int
	Wins   int
	Losses int
	Saves  int
}

// LineupEditor накапливает локальные правки состава и отправляет их
// одним bulk-update, как режим редактирования таблицы в веб-UI.
// Правки видны через Lineup() сразу (оптимистично), сервер узнаёт о
// них только при Save.
type LineupEditor struct {
	client       *Client
	tournamentID int
	lineup       *Lineup
	dirty        bool
}

// EditLineup открывает сессию правок поверх свежей копии состава.
func (c *Client) EditLineup(ctx context.Context, tournamentID int) (*LineupEditor, error) {
	lineup, err := c.TournamentLineup(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	// Рабочая копия: правки не должны протекать в кэш до Save.
	working := &Lineup{
		Tournament: lineup.Tournament,
		Batters:    append([]Batter(nil), lineup.Batters...),
		Pitchers:   append([]Pitcher(nil), lineup.Pitchers...),
	}

	return &LineupEditor{
		client:       c,
		tournamentID: tournamentID,
		lineup:       working,
	}, nil
}

// Lineup возвращает текущее (возможно, ещё не сохранённое) состояние.
func (e *LineupEditor) Lineup() *Lineup {
	return e.lineup
}

func (e *LineupEditor) Dirty() bool {
	return e.dirty
}

// SetBatterLine заменяет счётчики бьющего и пересчитывает производные.
func (e *LineupEditor) SetBatterLine(playerID int, line BatterLine) error {
	for i := range e.lineup.Batters {
		b := &e.lineup.Batters[i]
		if b.ID != playerID {
			continue
		}
		b.Order = line.Order
		b.AtBats = line.AtBats
		b.Hits = line.Hits
		b.Doubles = line.Doubles
		b.Triples = line.Triples
		b.HomeRuns = line.HomeRuns
		b.RBI = line.RBI
		recomputeBatter(b)
		e.dirty = true
		return nil
	}
	return fmt.Errorf("batter %d is not in the lineup", playerID)
}

// SetPitcherLine заменяет счётчики питчера и пересчитывает производные.
func (e *LineupEditor) SetPitcherLine(playerID int, line PitcherLine) error {
	for i := range e.lineup.Pitchers {
		p := &e.lineup.Pitchers[i]
		if p.ID != playerID {
			continue
		}
		p.Order = line.Order
		p.Wins = line.Wins
		p.Losses = line.Losses
		p.Saves = line.Saves
		recomputePitcher(p)
		e.dirty = true
		return nil
	}
	return fmt.Errorf("pitcher %d is not in the lineup", playerID)
}

// Save отправляет ВЕСЬ состав одним bulk-update (UI сохраняет таблицу
// целиком, не дельту) и сбрасывает кэш турнира.
func (e *LineupEditor) Save(ctx context.Context) (*BulkUpdateResult, error) {
	request := wireBulkUpdateRequest{
		Batters:  make([]wireBatterEntry, 0, len(e.lineup.Batters)),
		Pitchers: make([]wirePitcherEntry, 0, len(e.lineup.Pitchers)),
	}
	for _, b := range e.lineup.Batters {
		request.Batters = append(request.Batters, wireBatterEntry{
			ID:       b.ID,
			Order:    b.Order,
			AtBats:   b.AtBats,
			Hits:     b.Hits,
			Doubles:  b.Doubles,
			Triples:  b.Triples,
			HomeRuns: b.HomeRuns,
			RBI:      b.RBI,
		})
	}
	for _, p := range e.lineup.Pitchers {
		request.Pitchers = append(request.Pitchers, wirePitcherEntry{
			ID:     p.ID,
			Order:  p.Order,
			Wins:   p.Wins,
			Losses: p.Losses,
			Saves:  p.Saves,
		})
	}

	url := e.client.baseURL + "/tournaments/" + strconv.Itoa(e.tournamentID) + "/player-stats/bulk-update"
	var response wireBulkUpdateResponse
	if err := e.client.postJSON(ctx, url, request, &response); err != nil {
		return nil, err
	}

	e.client.Invalidate(e.tournamentID)
	e.dirty = false

	result := &BulkUpdateResult{
		TournamentID:    response.TournamentID,
		UpdatedBatters:  make([]UpdatedStatRef, len(response.UpdatedBatters)),
		UpdatedPitchers: make([]UpdatedStatRef, len(response.UpdatedPitchers)),
		UpdatedAt:       response.UpdatedAt,
	}
	for i, ref := range response.UpdatedBatters {
		result.UpdatedBatters[i] = UpdatedStatRef{PlayerID: ref.PlayerID, StatsID: ref.StatsID}
	}
	for i, ref := range response.UpdatedPitchers {
		result.UpdatedPitchers[i] = UpdatedStatRef{PlayerID: ref.PlayerID, StatsID: ref.StatsID}
	}
	return result, nil
}
