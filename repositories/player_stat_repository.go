package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/prospia/roster-system/models"
)

var (
	ErrPlayerStatNotFound = errors.New("player stats not found")
	ErrPlayerStatConflict = errors.New("player stats already exist for this player and tournament")
	ErrPlayerStatBadRef   = errors.New("player stats reference a missing player or tournament")
)

type PlayerStatRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stat *models.PlayerStat) error
	GetByPlayerAndTournament(ctx context.Context, exec SQLExecutor, playerID, tournamentID int) (*models.PlayerStat, error)
	Update(ctx context.Context, exec SQLExecutor, stat *models.PlayerStat) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error)
	DeleteByPlayerAndTournament(ctx context.Context, playerID, tournamentID int) error
}

type postgresPlayerStatRepository struct {
	db *sql.DB
}

func NewPostgresPlayerStatRepository(db *sql.DB) PlayerStatRepository {
	return &postgresPlayerStatRepository{db: db}
}

func (r *postgresPlayerStatRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerStatColumns = `
	id, player_id, tournament_id, position_type, lineup_order, is_bench,
	at_bats, hits, doubles, triples, home_runs, rbi,
	wins, losses, saves, created_at, updated_at`

func scanPlayerStat(row interface{ Scan(dest ...interface{}) error }, s *models.PlayerStat) error {
	return row.Scan(
		&s.ID, &s.PlayerID, &s.TournamentID, &s.PositionType, &s.Order, &s.IsBench,
		&s.AtBats, &s.Hits, &s.Doubles, &s.Triples, &s.HomeRuns, &s.RBI,
		&s.Wins, &s.Losses, &s.Saves, &s.CreatedAt, &s.UpdatedAt,
	)
}

func (r *postgresPlayerStatRepository) Create(ctx context.Context, exec SQLExecutor, s *models.PlayerStat) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO player_stats (
			player_id, tournament_id, position_type, lineup_order, is_bench,
			at_bats, hits, doubles, triples, home_runs, rbi,
			wins, losses, saves
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		s.PlayerID, s.TournamentID, s.PositionType, s.Order, s.IsBench,
		s.AtBats, s.Hits, s.Doubles, s.Triples, s.HomeRuns, s.RBI,
		s.Wins, s.Losses, s.Saves,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return r.handlePlayerStatError(err)
}

func (r *postgresPlayerStatRepository) GetByPlayerAndTournament(ctx context.Context, exec SQLExecutor, playerID, tournamentID int) (*models.PlayerStat, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + playerStatColumns + `
		FROM player_stats
		WHERE player_id = $1 AND tournament_id = $2`

	s := &models.PlayerStat{}
	err := scanPlayerStat(executor.QueryRowContext(ctx, query, playerID, tournamentID), s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerStatNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresPlayerStatRepository) Update(ctx context.Context, exec SQLExecutor, s *models.PlayerStat) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE player_stats SET
			lineup_order = $1,
			is_bench = $2,
			at_bats = $3,
			hits = $4,
			doubles = $5,
			triples = $6,
			home_runs = $7,
			rbi = $8,
			wins = $9,
			losses = $10,
			saves = $11,
			updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at`

	err := executor.QueryRowContext(ctx, query,
		s.Order, s.IsBench,
		s.AtBats, s.Hits, s.Doubles, s.Triples, s.HomeRuns, s.RBI,
		s.Wins, s.Losses, s.Saves,
		s.ID,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerStatNotFound
		}
		return r.handlePlayerStatError(err)
	}
	return nil
}

func (r *postgresPlayerStatRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error) {
	query := `SELECT` + playerStatColumns + `
		FROM player_stats
		WHERE tournament_id = $1
		ORDER BY player_id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statRows := make([]models.PlayerStat, 0)
	for rows.Next() {
		var s models.PlayerStat
		if scanErr := scanPlayerStat(rows, &s); scanErr != nil {
			return nil, scanErr
		}
		statRows = append(statRows, s)
	}
	return statRows, rows.Err()
}

func (r *postgresPlayerStatRepository) DeleteByPlayerAndTournament(ctx context.Context, playerID, tournamentID int) error {
	query := `DELETE FROM player_stats WHERE player_id = $1 AND tournament_id = $2`
	result, err := r.db.ExecContext(ctx, query, playerID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete player stats: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerStatNotFound)
}

func (r *postgresPlayerStatRepository) handlePlayerStatError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrPlayerStatConflict
		case "23503":
			return ErrPlayerStatBadRef
		}
	}
	return err
}
