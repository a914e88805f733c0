package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/repositories"
	"github.com/prospia/roster-system/storage"
)

// CreatePlayerInput — полезная нагрузка POST /players/create. Все поля
// указатели: нормализация может обнулить пустые строки, а валидация
// различает "не передано" и "передан ноль".
type CreatePlayerInput struct {
	Name       *string `json:"name"`
	Position   *string `json:"position"`
	Series     *string `json:"series"`
	Type       *string `json:"type"`
	Spirit     *int    `json:"spirit"`
	LimitBreak *int    `json:"limit_break"`
	Skill1     *string `json:"skill1"`
	Skill2     *string `json:"skill2"`
	Skill3     *string `json:"skill3"`

	// batter
	Average    *float64 `json:"average"`
	Trajectory *string  `json:"trajectory"`
	Meet       *int     `json:"meet"`
	Power      *int     `json:"power"`
	Speed      *int     `json:"speed"`

	// pitcher
	ERA      *float64 `json:"era"`
	Velocity *int     `json:"velocity"`
	Control  *int     `json:"control"`
	Stamina  *int     `json:"stamina"`
}

func (in *CreatePlayerInput) normalize() {
	normalizeStringFields(
		&in.Name, &in.Position, &in.Series, &in.Type,
		&in.Skill1, &in.Skill2, &in.Skill3, &in.Trajectory,
	)
}

func (in *CreatePlayerInput) validate() error {
	verr := NewValidationError()
	if in.Name == nil {
		verr.Add("name", "is required")
	}
	if in.Position == nil {
		verr.Add("position", "is required")
	}
	if in.Type == nil {
		verr.Add("type", "is required")
	} else if !models.PlayerType(*in.Type).Valid() {
		verr.Add("type", "must be batter or pitcher")
	}
	if in.Spirit == nil {
		verr.Add("spirit", "is required")
	}
	if in.LimitBreak == nil {
		verr.Add("limit_break", "is required")
	} else if *in.LimitBreak < 0 || *in.LimitBreak > 5 {
		verr.Add("limit_break", "must be between 0 and 5")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	UploadIcon(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error)
}

type playerService struct {
	tx             repositories.TxRunner
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	statRepo       repositories.PlayerStatRepository
	uploader       storage.FileUploader // nil, если хранилище не сконфигурировано
	logger         *slog.Logger
}

func NewPlayerService(
	tx repositories.TxRunner,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	statRepo repositories.PlayerStatRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		tx:             tx,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		statRepo:       statRepo,
		uploader:       uploader,
		logger:         logger,
	}
}

// CreatePlayer создаёт игрока и — в той же транзакции — по одной
// скамеечной строке player_stats на каждый уже существующий турнир.
// Откат любой вставки статистики откатывает и самого игрока.
//
// Турниры, созданные ПОСЛЕ игрока, строк задним числом не получают:
// асимметрия исходного поведения сохранена намеренно.
func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	input.normalize()
	if err := input.validate(); err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:       derefString(input.Name),
		Position:   derefString(input.Position),
		Series:     input.Series,
		Type:       models.PlayerType(derefString(input.Type)),
		Spirit:     *input.Spirit,
		LimitBreak: *input.LimitBreak,
		Skill1:     input.Skill1,
		Skill2:     input.Skill2,
		Skill3:     input.Skill3,
		Average:    input.Average,
		Trajectory: input.Trajectory,
		Meet:       input.Meet,
		Power:      input.Power,
		Speed:      input.Speed,
		ERA:        input.ERA,
		Velocity:   input.Velocity,
		Control:    input.Control,
		Stamina:    input.Stamina,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.playerRepo.Create(ctx, exec, player); err != nil {
			return err
		}

		tournamentIDs, err := s.tournamentRepo.ListIDs(ctx, exec)
		if err != nil {
			return err
		}

		for _, tournamentID := range tournamentIDs {
			stat := &models.PlayerStat{
				PlayerID:     player.ID,
				TournamentID: tournamentID,
				PositionType: player.Type,
				Order:        nil,
				IsBench:      true,
			}
			if err := s.statRepo.Create(ctx, exec, stat); err != nil {
				return fmt.Errorf("failed to bootstrap stats for tournament %d: %w", tournamentID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create player",
			slog.String("name", player.Name),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPlayerCreationFailed, err)
	}

	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.populateIconURL(&players[i])
	}
	return players, nil
}

// UploadIcon заливает иконку карточки в объектное хранилище и
// привязывает её к игроку. Старый объект удаляется best-effort.
func (s *playerService) UploadIcon(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrIconStorageDisabled
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("players/%d/icon-%d", playerID, time.Now().UnixNano())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload player icon: %w", err)
	}

	oldKey := player.IconKey
	if err := s.playerRepo.UpdateIconKey(ctx, playerID, &result.Key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != "" {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous player icon",
				slog.String("key", *oldKey),
				slog.Any("error", delErr),
			)
		}
	}

	player.IconKey = &result.Key
	s.populateIconURL(player)
	return player, nil
}

func (s *playerService) populateIconURL(p *models.Player) {
	if s.uploader == nil || p.IconKey == nil || *p.IconKey == "" {
		return
	}
	if url := s.uploader.GetPublicURL(*p.IconKey); url != "" {
		p.IconURL = &url
	}
}
