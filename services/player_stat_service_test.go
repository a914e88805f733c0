package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospia/roster-system/models"
)

func newStatServiceFixture() (*fakeStore, PlayerStatService) {
	store := newFakeStore()
	svc := NewPlayerStatService(
		&fakeTxRunner{store: store},
		&fakeStatRepo{store: store},
		&fakePlayerRepo{store: store},
		&fakeTournamentRepo{store: store},
	)
	return store, svc
}

func seedTournament(store *fakeStore) models.Tournament {
	return store.addTournament(models.Tournament{
		Name:      "8月カップ",
		Type:      models.TypeCup,
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
}

func batterEntry(id int, order *int, atBats, hits, doubles, triples, homeRuns, rbi int) BatterStatInput {
	return BatterStatInput{
		ID:       id,
		Order:    order,
		AtBats:   intPtr(atBats),
		Hits:     intPtr(hits),
		Doubles:  intPtr(doubles),
		Triples:  intPtr(triples),
		HomeRuns: intPtr(homeRuns),
		RBI:      intPtr(rbi),
	}
}

func pitcherEntry(id int, order *int, wins, losses, saves int) PitcherStatInput {
	return PitcherStatInput{
		ID:     id,
		Order:  order,
		Wins:   intPtr(wins),
		Losses: intPtr(losses),
		Saves:  intPtr(saves),
	}
}

func TestBulkUpdateCreatesAndUpdates(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})
	pitcher := store.addPlayer(models.Player{Name: "pitcher", Type: models.PlayerTypePitcher})

	// у бьющего уже есть скамеечная строка — она должна обновиться,
	// а не задвоиться
	statRepo := &fakeStatRepo{store: store}
	require.NoError(t, statRepo.Create(context.Background(), nil, &models.PlayerStat{
		PlayerID:     batter.ID,
		TournamentID: tournament.ID,
		PositionType: models.PlayerTypeBatter,
		IsBench:      true,
	}))

	result, err := svc.BulkUpdate(context.Background(), tournament.ID, BulkUpdateInput{
		Batters:  []BatterStatInput{batterEntry(batter.ID, intPtr(3), 4, 2, 1, 0, 1, 3)},
		Pitchers: []PitcherStatInput{pitcherEntry(pitcher.ID, intPtr(1), 2, 1, 0)},
	})
	require.NoError(t, err)

	assert.Equal(t, tournament.ID, result.TournamentID)
	require.Len(t, result.UpdatedBatters, 1)
	require.Len(t, result.UpdatedPitchers, 1)
	assert.Equal(t, batter.ID, result.UpdatedBatters[0].PlayerID)
	assert.False(t, result.UpdatedAt.IsZero())

	assert.Len(t, store.stats, 2)

	batterRow, ok := store.statByPair(batter.ID, tournament.ID)
	require.True(t, ok)
	assert.Equal(t, result.UpdatedBatters[0].StatsID, batterRow.ID)
	assert.Equal(t, 3, *batterRow.Order)
	assert.False(t, batterRow.IsBench)
	assert.Equal(t, 4, *batterRow.AtBats)
	assert.Equal(t, 2, *batterRow.Hits)
	// питчерские поля бьющего принудительно занулены
	assert.Equal(t, 0, *batterRow.Wins)
	assert.Equal(t, 0, *batterRow.Losses)
	assert.Equal(t, 0, *batterRow.Saves)

	pitcherRow, ok := store.statByPair(pitcher.ID, tournament.ID)
	require.True(t, ok)
	assert.Equal(t, 2, *pitcherRow.Wins)
	assert.Equal(t, 0, *pitcherRow.AtBats)
	assert.Equal(t, 0, *pitcherRow.HomeRuns)
}

func TestBulkUpdateIdempotent(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})

	input := BulkUpdateInput{
		Batters:  []BatterStatInput{batterEntry(batter.ID, intPtr(4), 10, 4, 1, 0, 2, 6)},
		Pitchers: []PitcherStatInput{},
	}

	first, err := svc.BulkUpdate(context.Background(), tournament.ID, input)
	require.NoError(t, err)
	second, err := svc.BulkUpdate(context.Background(), tournament.ID, input)
	require.NoError(t, err)

	assert.Len(t, store.stats, 1)
	assert.Equal(t, first.UpdatedBatters[0].StatsID, second.UpdatedBatters[0].StatsID)
}

func TestBulkUpdateNilOrderMeansBench(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})

	_, err := svc.BulkUpdate(context.Background(), tournament.ID, BulkUpdateInput{
		Batters:  []BatterStatInput{batterEntry(batter.ID, nil, 4, 1, 0, 0, 0, 0)},
		Pitchers: []PitcherStatInput{},
	})
	require.NoError(t, err)

	row, ok := store.statByPair(batter.ID, tournament.ID)
	require.True(t, ok)
	assert.True(t, row.IsBench)
	assert.Nil(t, row.Order)
}

func TestBulkUpdateUnknownPlayerAppliesNothing(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})

	_, err := svc.BulkUpdate(context.Background(), tournament.ID, BulkUpdateInput{
		Batters: []BatterStatInput{
			batterEntry(batter.ID, intPtr(1), 4, 2, 0, 0, 0, 1),
			batterEntry(9999, intPtr(2), 3, 1, 0, 0, 0, 0),
		},
		Pitchers: []PitcherStatInput{},
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "batters.1.id")

	// батч отвергнут целиком: строка существующего игрока не появилась
	assert.Empty(t, store.stats)
}

func TestBulkUpdateValidation(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})
	pitcher := store.addPlayer(models.Player{Name: "pitcher", Type: models.PlayerTypePitcher})

	cases := []struct {
		name  string
		input BulkUpdateInput
		field string
	}{
		{
			"negative at_bats",
			BulkUpdateInput{
				Batters:  []BatterStatInput{batterEntry(batter.ID, nil, -1, 0, 0, 0, 0, 0)},
				Pitchers: []PitcherStatInput{},
			},
			"batters.0.at_bats",
		},
		{
			"batter order above lineup size",
			BulkUpdateInput{
				Batters:  []BatterStatInput{batterEntry(batter.ID, intPtr(10), 0, 0, 0, 0, 0, 0)},
				Pitchers: []PitcherStatInput{},
			},
			"batters.0.order",
		},
		{
			"pitcher order above staff size",
			BulkUpdateInput{
				Batters:  []BatterStatInput{},
				Pitchers: []PitcherStatInput{pitcherEntry(pitcher.ID, intPtr(13), 0, 0, 0)},
			},
			"pitchers.0.order",
		},
		{
			"zero order",
			BulkUpdateInput{
				Batters:  []BatterStatInput{batterEntry(batter.ID, intPtr(0), 0, 0, 0, 0, 0, 0)},
				Pitchers: []PitcherStatInput{},
			},
			"batters.0.order",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BulkUpdate(context.Background(), tournament.ID, tc.input)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestBulkUpdateTournamentNotFound(t *testing.T) {
	_, svc := newStatServiceFixture()

	_, err := svc.BulkUpdate(context.Background(), 777, BulkUpdateInput{
		Batters:  []BatterStatInput{},
		Pitchers: []PitcherStatInput{},
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestGetPlayerStatsSynthesizesDefault(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	pitcher := store.addPlayer(models.Player{Name: "pitcher", Type: models.PlayerTypePitcher})

	stat, err := svc.GetPlayerStats(context.Background(), tournament.ID, pitcher.ID)
	require.NoError(t, err)

	assert.Equal(t, pitcher.ID, stat.PlayerID)
	assert.Equal(t, models.PlayerTypePitcher, stat.PositionType)
	assert.True(t, stat.IsBench)
	assert.Nil(t, stat.Order)
	require.NotNil(t, stat.Saves)
	assert.Zero(t, *stat.Saves)
	assert.Empty(t, store.stats)
}

func TestUpdatePlayerStatsAppliesTypedFields(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	pitcher := store.addPlayer(models.Player{Name: "pitcher", Type: models.PlayerTypePitcher})

	updated, err := svc.UpdatePlayerStats(context.Background(), tournament.ID, pitcher.ID, UpdatePlayerStatsInput{
		Order:  intPtr(12),
		Wins:   intPtr(5),
		Losses: intPtr(2),
		Saves:  intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, *updated.Wins)
	assert.False(t, updated.IsBench)
	assert.Equal(t, 0, *updated.AtBats)
	assert.Len(t, store.stats, 1)

	// повторный PUT обновляет ту же строку
	again, err := svc.UpdatePlayerStats(context.Background(), tournament.ID, pitcher.ID, UpdatePlayerStatsInput{
		Wins:   intPtr(6),
		Losses: intPtr(2),
		Saves:  intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, updated.ID, again.ID)
	assert.Equal(t, 6, *again.Wins)
	assert.True(t, again.IsBench)
	assert.Len(t, store.stats, 1)
}

func TestDeletePlayerStats(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	batter := store.addPlayer(models.Player{Name: "batter", Type: models.PlayerTypeBatter})

	statRepo := &fakeStatRepo{store: store}
	require.NoError(t, statRepo.Create(context.Background(), nil, &models.PlayerStat{
		PlayerID:     batter.ID,
		TournamentID: tournament.ID,
		PositionType: models.PlayerTypeBatter,
		IsBench:      true,
	}))

	require.NoError(t, svc.DeletePlayerStats(context.Background(), tournament.ID, batter.ID))
	assert.Empty(t, store.stats)

	err := svc.DeletePlayerStats(context.Background(), tournament.ID, batter.ID)
	assert.ErrorIs(t, err, ErrPlayerStatNotFound)
}

func TestGetStatisticsSummary(t *testing.T) {
	store, svc := newStatServiceFixture()
	tournament := seedTournament(store)
	b1 := store.addPlayer(models.Player{Name: "b1", Type: models.PlayerTypeBatter})
	b2 := store.addPlayer(models.Player{Name: "b2", Type: models.PlayerTypeBatter})
	p1 := store.addPlayer(models.Player{Name: "p1", Type: models.PlayerTypePitcher})

	_, err := svc.BulkUpdate(context.Background(), tournament.ID, BulkUpdateInput{
		Batters: []BatterStatInput{
			batterEntry(b1.ID, intPtr(1), 4, 2, 1, 0, 1, 3),
			batterEntry(b2.ID, intPtr(2), 4, 1, 0, 0, 0, 0),
		},
		Pitchers: []PitcherStatInput{pitcherEntry(p1.ID, intPtr(1), 3, 1, 2)},
	})
	require.NoError(t, err)

	summary, err := svc.GetStatisticsSummary(context.Background(), tournament.ID)
	require.NoError(t, err)

	assert.Equal(t, 8, summary.Batting.AtBats)
	assert.Equal(t, 3, summary.Batting.Hits)
	assert.Equal(t, 1, summary.Batting.Doubles)
	assert.Equal(t, 1, summary.Batting.HomeRuns)
	assert.Equal(t, 3, summary.Batting.RBI)
	assert.InDelta(t, 0.375, summary.Batting.Average, 1e-9)
	// total bases = 3 + 1 + 3*1 = 7
	assert.InDelta(t, 0.875, summary.Batting.Slugging, 1e-9)
	assert.InDelta(t, 1.25, summary.Batting.OPS, 1e-9)

	assert.Equal(t, 3, summary.Pitching.Wins)
	assert.Equal(t, 1, summary.Pitching.Losses)
	assert.Equal(t, 2, summary.Pitching.Saves)
	assert.InDelta(t, 0.75, summary.Pitching.WinRate, 1e-9)
}
