package services

import (
	"context"
	"errors"
	"time"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/repositories"
)

type CreateTournamentInput struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// UpdateTournamentInput — частичное обновление: nil-поля не трогаются.
type UpdateTournamentInput struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

type ListTournamentsFilter struct {
	Type *models.TournamentType
}

// PlayerWithStats — пара "игрок + его статистика" в детальном ответе.
type PlayerWithStats struct {
	Player models.PlayerSummary `json:"player"`
	Stats  models.PlayerStat    `json:"stats"`
}

// TournamentDetails — агрегат GET /tournaments/{id}/details. Ключ
// playersWithStats намеренно в camelCase: этого ждёт фронтенд.
type TournamentDetails struct {
	Tournament       models.Tournament `json:"tournament"`
	PlayersWithStats []PlayerWithStats `json:"playersWithStats"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	GetTournamentDetails(ctx context.Context, id int) (*TournamentDetails, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	statRepo       repositories.PlayerStatRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	statRepo repositories.PlayerStatRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		statRepo:       statRepo,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	normalizeStringFields(&input.Name, &input.Type, &input.Description, &input.StartDate, &input.EndDate)

	verr := NewValidationError()
	if input.Name == nil {
		verr.Add("name", "is required")
	}
	if input.Type == nil {
		verr.Add("type", "is required")
	} else if !models.TournamentType(*input.Type).Valid() {
		verr.Add("type", "must be one of rank_battle, cup, league")
	}

	var startDate time.Time
	if input.StartDate == nil {
		verr.Add("start_date", "is required")
	} else {
		parsed, err := parseDate(*input.StartDate)
		if err != nil {
			verr.Add("start_date", err.Error())
		} else {
			startDate = parsed
		}
	}

	var endDate *time.Time
	if input.EndDate != nil {
		parsed, err := parseDate(*input.EndDate)
		if err != nil {
			verr.Add("end_date", err.Error())
		} else {
			endDate = &parsed
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}
	if endDate != nil && !endDate.After(startDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	tournament := &models.Tournament{
		Name:        derefString(input.Name),
		Type:        models.TournamentType(derefString(input.Type)),
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{Type: filter.Type})
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	normalizeStringFields(&input.Name, &input.Type, &input.Description, &input.StartDate, &input.EndDate)

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := NewValidationError()
	if input.Name != nil {
		tournament.Name = *input.Name
	}
	if input.Type != nil {
		newType := models.TournamentType(*input.Type)
		if !newType.Valid() {
			verr.Add("type", "must be one of rank_battle, cup, league")
		} else {
			tournament.Type = newType
		}
	}
	if input.Description != nil {
		tournament.Description = input.Description
	}
	if input.StartDate != nil {
		parsed, perr := parseDate(*input.StartDate)
		if perr != nil {
			verr.Add("start_date", perr.Error())
		} else {
			tournament.StartDate = parsed
		}
	}
	if input.EndDate != nil {
		parsed, perr := parseDate(*input.EndDate)
		if perr != nil {
			verr.Add("end_date", perr.Error())
		} else {
			tournament.EndDate = &parsed
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}
	if tournament.EndDate != nil && !tournament.EndDate.After(tournament.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

// GetTournamentDetails собирает детальный вид турнира: КАЖДЫЙ игрок
// системы попадает в ответ, участвовал он в турнире или нет. Для
// игроков без сохранённой строки подставляется нулевой дефолт (он не
// персистится).
func (s *tournamentService) GetTournamentDetails(ctx context.Context, id int) (*TournamentDetails, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	statRows, err := s.statRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	statsByPlayer := make(map[int]models.PlayerStat, len(statRows))
	for _, row := range statRows {
		statsByPlayer[row.PlayerID] = row
	}

	playersWithStats := make([]PlayerWithStats, 0, len(players))
	for _, player := range players {
		stats, ok := statsByPlayer[player.ID]
		if !ok {
			stats = models.DefaultPlayerStat(player.ID, id, player.Type)
		}
		playersWithStats = append(playersWithStats, PlayerWithStats{
			Player: player.Summary(),
			Stats:  stats,
		})
	}

	return &TournamentDetails{
		Tournament:       *tournament,
		PlayersWithStats: playersWithStats,
	}, nil
}
