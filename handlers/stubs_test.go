package handlers

import (
	"context"
	"io"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/services"
)

// Стабы сервисов: каждый метод подменяется замыканием в конкретном
// тесте, непереопределённый вызов — паника с понятным текстом.

type stubPlayerService struct {
	createFn func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error)
	listFn   func(ctx context.Context) ([]models.Player, error)
	uploadFn func(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error)
}

func (s *stubPlayerService) CreatePlayer(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	if s.createFn == nil {
		panic("stubPlayerService.CreatePlayer not configured")
	}
	return s.createFn(ctx, input)
}

func (s *stubPlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if s.listFn == nil {
		panic("stubPlayerService.ListPlayers not configured")
	}
	return s.listFn(ctx)
}

func (s *stubPlayerService) UploadIcon(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploadFn == nil {
		panic("stubPlayerService.UploadIcon not configured")
	}
	return s.uploadFn(ctx, playerID, contentType, file)
}

type stubTournamentService struct {
	createFn  func(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error)
	getFn     func(ctx context.Context, id int) (*models.Tournament, error)
	listFn    func(ctx context.Context, filter services.ListTournamentsFilter) ([]models.Tournament, error)
	updateFn  func(ctx context.Context, id int, input services.UpdateTournamentInput) (*models.Tournament, error)
	deleteFn  func(ctx context.Context, id int) error
	detailsFn func(ctx context.Context, id int) (*services.TournamentDetails, error)
}

func (s *stubTournamentService) CreateTournament(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	if s.createFn == nil {
		panic("stubTournamentService.CreateTournament not configured")
	}
	return s.createFn(ctx, input)
}

func (s *stubTournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	if s.getFn == nil {
		panic("stubTournamentService.GetTournamentByID not configured")
	}
	return s.getFn(ctx, id)
}

func (s *stubTournamentService) ListTournaments(ctx context.Context, filter services.ListTournamentsFilter) ([]models.Tournament, error) {
	if s.listFn == nil {
		panic("stubTournamentService.ListTournaments not configured")
	}
	return s.listFn(ctx, filter)
}

func (s *stubTournamentService) UpdateTournament(ctx context.Context, id int, input services.UpdateTournamentInput) (*models.Tournament, error) {
	if s.updateFn == nil {
		panic("stubTournamentService.UpdateTournament not configured")
	}
	return s.updateFn(ctx, id, input)
}

func (s *stubTournamentService) DeleteTournament(ctx context.Context, id int) error {
	if s.deleteFn == nil {
		panic("stubTournamentService.DeleteTournament not configured")
	}
	return s.deleteFn(ctx, id)
}

func (s *stubTournamentService) GetTournamentDetails(ctx context.Context, id int) (*services.TournamentDetails, error) {
	if s.detailsFn == nil {
		panic("stubTournamentService.GetTournamentDetails not configured")
	}
	return s.detailsFn(ctx, id)
}

type stubPlayerStatService struct {
	bulkFn    func(ctx context.Context, tournamentID int, input services.BulkUpdateInput) (*services.BulkUpdateResult, error)
	listFn    func(ctx context.Context, tournamentID int) ([]models.PlayerStat, error)
	getFn     func(ctx context.Context, tournamentID, playerID int) (*models.PlayerStat, error)
	updateFn  func(ctx context.Context, tournamentID, playerID int, input services.UpdatePlayerStatsInput) (*models.PlayerStat, error)
	deleteFn  func(ctx context.Context, tournamentID, playerID int) error
	summaryFn func(ctx context.Context, tournamentID int) (*services.TournamentStatistics, error)
}

func (s *stubPlayerStatService) BulkUpdate(ctx context.Context, tournamentID int, input services.BulkUpdateInput) (*services.BulkUpdateResult, error) {
	if s.bulkFn == nil {
		panic("stubPlayerStatService.BulkUpdate not configured")
	}
	return s.bulkFn(ctx, tournamentID, input)
}

func (s *stubPlayerStatService) ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error) {
	if s.listFn == nil {
		panic("stubPlayerStatService.ListByTournament not configured")
	}
	return s.listFn(ctx, tournamentID)
}

func (s *stubPlayerStatService) GetPlayerStats(ctx context.Context, tournamentID, playerID int) (*models.PlayerStat, error) {
	if s.getFn == nil {
		panic("stubPlayerStatService.GetPlayerStats not configured")
	}
	return s.getFn(ctx, tournamentID, playerID)
}

func (s *stubPlayerStatService) UpdatePlayerStats(ctx context.Context, tournamentID, playerID int, input services.UpdatePlayerStatsInput) (*models.PlayerStat, error) {
	if s.updateFn == nil {
		panic("stubPlayerStatService.UpdatePlayerStats not configured")
	}
	return s.updateFn(ctx, tournamentID, playerID, input)
}

func (s *stubPlayerStatService) DeletePlayerStats(ctx context.Context, tournamentID, playerID int) error {
	if s.deleteFn == nil {
		panic("stubPlayerStatService.DeletePlayerStats not configured")
	}
	return s.deleteFn(ctx, tournamentID, playerID)
}

func (s *stubPlayerStatService) GetStatisticsSummary(ctx context.Context, tournamentID int) (*services.TournamentStatistics, error) {
	if s.summaryFn == nil {
		panic("stubPlayerStatService.GetStatisticsSummary not configured")
	}
	return s.summaryFn(ctx, tournamentID)
}
