package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/prospia/roster-system/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	// FilterExistingIDs возвращает подмножество ids, реально существующих
	// в таблице players. Используется для предвалидации батчей.
	FilterExistingIDs(ctx context.Context, ids []int) (map[int]struct{}, error)
	UpdateIconKey(ctx context.Context, playerID int, iconKey *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `
	id, name, position, series, type, spirit, limit_break,
	skill1, skill2, skill3,
	average, trajectory, meet, power, speed,
	era, velocity, control, stamina,
	icon_key, created_at`

func scanPlayer(row interface{ Scan(dest ...interface{}) error }, p *models.Player) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Position, &p.Series, &p.Type, &p.Spirit, &p.LimitBreak,
		&p.Skill1, &p.Skill2, &p.Skill3,
		&p.Average, &p.Trajectory, &p.Meet, &p.Power, &p.Speed,
		&p.ERA, &p.Velocity, &p.Control, &p.Stamina,
		&p.IconKey, &p.CreatedAt,
	)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (
			name, position, series, type, spirit, limit_break,
			skill1, skill2, skill3,
			average, trajectory, meet, power, speed,
			era, velocity, control, stamina
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		p.Name, p.Position, p.Series, p.Type, p.Spirit, p.LimitBreak,
		p.Skill1, p.Skill2, p.Skill3,
		p.Average, p.Trajectory, p.Meet, p.Power, p.Speed,
		p.ERA, p.Velocity, p.Control, p.Stamina,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players WHERE id = $1`

	p := &models.Player{}
	err := scanPlayer(r.db.QueryRowContext(ctx, query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT` + playerColumns + ` FROM players ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := scanPlayer(rows, &p); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) FilterExistingIDs(ctx context.Context, ids []int) (map[int]struct{}, error) {
	existing := make(map[int]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query := `SELECT id FROM players WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to check player ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		existing[id] = struct{}{}
	}
	return existing, rows.Err()
}

func (r *postgresPlayerRepository) UpdateIconKey(ctx context.Context, playerID int, iconKey *string) error {
	query := `UPDATE players SET icon_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, iconKey, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player icon key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
