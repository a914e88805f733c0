package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/repositories"
	"github.com/prospia/roster-system/stats"
)

const (
	maxBatterOrder  = 9
	maxPitcherOrder = 12
)

type BatterStatInput struct {
	ID       int  `json:"id"`
	Order    *int `json:"order"`
	AtBats   *int `json:"at_bats"`
	Hits     *int `json:"hits"`
	Doubles  *int `json:"doubles"`
	Triples  *int `json:"triples"`
	HomeRuns *int `json:"home_runs"`
	RBI      *int `json:"rbi"`
}

type PitcherStatInput struct {
	ID     int  `json:"id"`
	Order  *int `json:"order"`
	Wins   *int `json:"wins"`
	Losses *int `json:"losses"`
	Saves  *int `json:"saves"`
}

type BulkUpdateInput struct {
	Batters  []BatterStatInput  `json:"batters"`
	Pitchers []PitcherStatInput `json:"pitchers"`
}

// UpdatedStatRef связывает игрока с id затронутой строки статистики.
type UpdatedStatRef struct {
	PlayerID int `json:"player_id"`
	StatsID  int `json:"stats_id"`
}

type BulkUpdateResult struct {
	TournamentID    int              `json:"tournament_id"`
	UpdatedBatters  []UpdatedStatRef `json:"updated_batters"`
	UpdatedPitchers []UpdatedStatRef `json:"updated_pitchers"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// UpdatePlayerStatsInput — одиночный PUT; какие поля применяются,
// решает тип игрока.
type UpdatePlayerStatsInput struct {
	Order    *int `json:"order"`
	AtBats   *int `json:"at_bats"`
	Hits     *int `json:"hits"`
	Doubles  *int `json:"doubles"`
	Triples  *int `json:"triples"`
	HomeRuns *int `json:"home_runs"`
	RBI      *int `json:"rbi"`
	Wins     *int `json:"wins"`
	Losses   *int `json:"losses"`
	Saves    *int `json:"saves"`
}

// BattingTotals — командные итоги по бьющим; все rate-поля считаются
// на лету и нигде не хранятся.
type BattingTotals struct {
	AtBats   int     `json:"at_bats"`
	Hits     int     `json:"hits"`
	Doubles  int     `json:"doubles"`
	Triples  int     `json:"triples"`
	HomeRuns int     `json:"home_runs"`
	RBI      int     `json:"rbi"`
	Average  float64 `json:"average"`
	Slugging float64 `json:"slugging"`
	OPS      float64 `json:"ops"`
}

type PitchingTotals struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Saves   int     `json:"saves"`
	WinRate float64 `json:"win_rate"`
}

type TournamentStatistics struct {
	TournamentID int            `json:"tournament_id"`
	Batting      BattingTotals  `json:"batting"`
	Pitching     PitchingTotals `json:"pitching"`
}

type PlayerStatService interface {
	BulkUpdate(ctx context.Context, tournamentID int, input BulkUpdateInput) (*BulkUpdateResult, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error)
	GetPlayerStats(ctx context.Context, tournamentID, playerID int) (*models.PlayerStat, error)
	UpdatePlayerStats(ctx context.Context, tournamentID, playerID int, input UpdatePlayerStatsInput) (*models.PlayerStat, error)
	DeletePlayerStats(ctx context.Context, tournamentID, playerID int) error
	GetStatisticsSummary(ctx context.Context, tournamentID int) (*TournamentStatistics, error)
}

type playerStatService struct {
	tx             repositories.TxRunner
	statRepo       repositories.PlayerStatRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
}

func NewPlayerStatService(
	tx repositories.TxRunner,
	statRepo repositories.PlayerStatRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
) PlayerStatService {
	return &playerStatService{
		tx:             tx,
		statRepo:       statRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
	}
}

// BulkUpdate применяет батч статистики одного турнира целиком: одна
// транзакция, для каждой записи find-by-(player_id,tournament_id)-
// else-create. Существование игроков проверяется ДО открытия
// транзакции, как часть валидации входа; частичное применение
// наблюдать невозможно.
func (s *playerStatService) BulkUpdate(ctx context.Context, tournamentID int, input BulkUpdateInput) (*BulkUpdateResult, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if err := s.validateBulkInput(ctx, input); err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{
		TournamentID:    tournamentID,
		UpdatedBatters:  make([]UpdatedStatRef, 0, len(input.Batters)),
		UpdatedPitchers: make([]UpdatedStatRef, 0, len(input.Pitchers)),
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, entry := range input.Batters {
			stat, err := s.upsert(ctx, exec, entry.ID, tournamentID, models.PlayerTypeBatter, func(st *models.PlayerStat) {
				st.AtBats = entry.AtBats
				st.Hits = entry.Hits
				st.Doubles = entry.Doubles
				st.Triples = entry.Triples
				st.HomeRuns = entry.HomeRuns
				st.RBI = entry.RBI
				st.Order = entry.Order
				// Чужие для этой группы поля принудительно обнуляются,
				// а не остаются как были.
				st.Wins = intPtr(0)
				st.Losses = intPtr(0)
				st.Saves = intPtr(0)
			})
			if err != nil {
				return fmt.Errorf("batter %d: %w", entry.ID, err)
			}
			result.UpdatedBatters = append(result.UpdatedBatters, UpdatedStatRef{PlayerID: entry.ID, StatsID: stat.ID})
		}

		for _, entry := range input.Pitchers {
			stat, err := s.upsert(ctx, exec, entry.ID, tournamentID, models.PlayerTypePitcher, func(st *models.PlayerStat) {
				st.Wins = entry.Wins
				st.Losses = entry.Losses
				st.Saves = entry.Saves
				st.Order = entry.Order
				st.AtBats = intPtr(0)
				st.Hits = intPtr(0)
				st.Doubles = intPtr(0)
				st.Triples = intPtr(0)
				st.HomeRuns = intPtr(0)
				st.RBI = intPtr(0)
			})
			if err != nil {
				return fmt.Errorf("pitcher %d: %w", entry.ID, err)
			}
			result.UpdatedPitchers = append(result.UpdatedPitchers, UpdatedStatRef{PlayerID: entry.ID, StatsID: stat.ID})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.UpdatedAt = time.Now().UTC()
	return result, nil
}

func (s *playerStatService) validateBulkInput(ctx context.Context, input BulkUpdateInput) error {
	verr := NewValidationError()

	ids := make([]int, 0, len(input.Batters)+len(input.Pitchers))
	for i, entry := range input.Batters {
		prefix := fmt.Sprintf("batters.%d.", i)
		if entry.ID <= 0 {
			verr.Add(prefix+"id", "is required")
		} else {
			ids = append(ids, entry.ID)
		}
		validateOrderRange(verr, prefix+"order", entry.Order, 1, maxBatterOrder)
		requireNonNegative(verr, prefix+"at_bats", entry.AtBats)
		requireNonNegative(verr, prefix+"hits", entry.Hits)
		requireNonNegative(verr, prefix+"doubles", entry.Doubles)
		requireNonNegative(verr, prefix+"triples", entry.Triples)
		requireNonNegative(verr, prefix+"home_runs", entry.HomeRuns)
		requireNonNegative(verr, prefix+"rbi", entry.RBI)
	}
	for i, entry := range input.Pitchers {
		prefix := fmt.Sprintf("pitchers.%d.", i)
		if entry.ID <= 0 {
			verr.Add(prefix+"id", "is required")
		} else {
			ids = append(ids, entry.ID)
		}
		validateOrderRange(verr, prefix+"order", entry.Order, 1, maxPitcherOrder)
		requireNonNegative(verr, prefix+"wins", entry.Wins)
		requireNonNegative(verr, prefix+"losses", entry.Losses)
		requireNonNegative(verr, prefix+"saves", entry.Saves)
	}
	if verr.HasErrors() {
		return verr
	}

	existing, err := s.playerRepo.FilterExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i, entry := range input.Batters {
		if _, ok := existing[entry.ID]; !ok {
			verr.Add(fmt.Sprintf("batters.%d.id", i), "player does not exist")
		}
	}
	for i, entry := range input.Pitchers {
		if _, ok := existing[entry.ID]; !ok {
			verr.Add(fmt.Sprintf("pitchers.%d.id", i), "player does not exist")
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// upsert реализует insert-or-update по составному ключу
// (player_id, tournament_id) без ORM-магии. is_bench выводится из
// слота: нет слота — скамейка.
func (s *playerStatService) upsert(
	ctx context.Context,
	exec repositories.SQLExecutor,
	playerID, tournamentID int,
	positionType models.PlayerType,
	apply func(*models.PlayerStat),
) (*models.PlayerStat, error) {
	existing, err := s.statRepo.GetByPlayerAndTournament(ctx, exec, playerID, tournamentID)
	if err != nil && !errors.Is(err, repositories.ErrPlayerStatNotFound) {
		return nil, err
	}

	if existing == nil {
		stat := &models.PlayerStat{
			PlayerID:     playerID,
			TournamentID: tournamentID,
			PositionType: positionType,
		}
		apply(stat)
		stat.IsBench = stat.Order == nil
		if err := s.statRepo.Create(ctx, exec, stat); err != nil {
			return nil, err
		}
		return stat, nil
	}

	apply(existing)
	existing.IsBench = existing.Order == nil
	if err := s.statRepo.Update(ctx, exec, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *playerStatService) ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.statRepo.ListByTournament(ctx, tournamentID)
}

// GetPlayerStats возвращает строку статистики игрока в турнире либо
// синтетический нулевой дефолт, если строки нет.
func (s *playerStatService) GetPlayerStats(ctx context.Context, tournamentID, playerID int) (*models.PlayerStat, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	stat, err := s.statRepo.GetByPlayerAndTournament(ctx, nil, playerID, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerStatNotFound) {
			def := models.DefaultPlayerStat(playerID, tournamentID, player.Type)
			return &def, nil
		}
		return nil, err
	}
	return stat, nil
}

func (s *playerStatService) UpdatePlayerStats(ctx context.Context, tournamentID, playerID int, input UpdatePlayerStatsInput) (*models.PlayerStat, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	verr := NewValidationError()
	var updated *models.PlayerStat
	switch player.Type {
	case models.PlayerTypeBatter:
		validateOrderRange(verr, "order", input.Order, 1, maxBatterOrder)
		requireNonNegative(verr, "at_bats", input.AtBats)
		requireNonNegative(verr, "hits", input.Hits)
		requireNonNegative(verr, "doubles", input.Doubles)
		requireNonNegative(verr, "triples", input.Triples)
		requireNonNegative(verr, "home_runs", input.HomeRuns)
		requireNonNegative(verr, "rbi", input.RBI)
		if verr.HasErrors() {
			return nil, verr
		}
		err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
			var txErr error
			updated, txErr = s.upsert(ctx, exec, playerID, tournamentID, player.Type, func(st *models.PlayerStat) {
				st.AtBats = input.AtBats
				st.Hits = input.Hits
				st.Doubles = input.Doubles
				st.Triples = input.Triples
				st.HomeRuns = input.HomeRuns
				st.RBI = input.RBI
				st.Order = input.Order
				st.Wins = intPtr(0)
				st.Losses = intPtr(0)
				st.Saves = intPtr(0)
			})
			return txErr
		})
	case models.PlayerTypePitcher:
		validateOrderRange(verr, "order", input.Order, 1, maxPitcherOrder)
		requireNonNegative(verr, "wins", input.Wins)
		requireNonNegative(verr, "losses", input.Losses)
		requireNonNegative(verr, "saves", input.Saves)
		if verr.HasErrors() {
			return nil, verr
		}
		err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
			var txErr error
			updated, txErr = s.upsert(ctx, exec, playerID, tournamentID, player.Type, func(st *models.PlayerStat) {
				st.Wins = input.Wins
				st.Losses = input.Losses
				st.Saves = input.Saves
				st.Order = input.Order
				st.AtBats = intPtr(0)
				st.Hits = intPtr(0)
				st.Doubles = intPtr(0)
				st.Triples = intPtr(0)
				st.HomeRuns = intPtr(0)
				st.RBI = intPtr(0)
			})
			return txErr
		})
	default:
		return nil, ErrPlayerInvalidType
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *playerStatService) DeletePlayerStats(ctx context.Context, tournamentID, playerID int) error {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if err := s.statRepo.DeleteByPlayerAndTournament(ctx, playerID, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrPlayerStatNotFound) {
			return ErrPlayerStatNotFound
		}
		return err
	}
	return nil
}

// GetStatisticsSummary агрегирует сырые счётчики турнира и считает
// производные показатели заново при каждом чтении.
func (s *playerStatService) GetStatisticsSummary(ctx context.Context, tournamentID int) (*TournamentStatistics, error) {
	statRows, err := s.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	summary := &TournamentStatistics{TournamentID: tournamentID}
	for _, row := range statRows {
		summary.Batting.AtBats += derefInt(row.AtBats)
		summary.Batting.Hits += derefInt(row.Hits)
		summary.Batting.Doubles += derefInt(row.Doubles)
		summary.Batting.Triples += derefInt(row.Triples)
		summary.Batting.HomeRuns += derefInt(row.HomeRuns)
		summary.Batting.RBI += derefInt(row.RBI)
		summary.Pitching.Wins += derefInt(row.Wins)
		summary.Pitching.Losses += derefInt(row.Losses)
		summary.Pitching.Saves += derefInt(row.Saves)
	}

	b := &summary.Batting
	b.Average = stats.Average(b.AtBats, b.Hits)
	b.Slugging = stats.Slugging(b.AtBats, b.Hits, b.Doubles, b.Triples, b.HomeRuns)
	b.OPS = stats.OPS(b.AtBats, b.Hits, b.Doubles, b.Triples, b.HomeRuns)
	summary.Pitching.WinRate = stats.WinRate(summary.Pitching.Wins, summary.Pitching.Losses)

	return summary, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
