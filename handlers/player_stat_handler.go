package handlers

import (
	"errors"
	"net/http"

	"github.com/prospia/roster-system/services"
)

type PlayerStatHandler struct {
	statService services.PlayerStatService
}

func NewPlayerStatHandler(ss services.PlayerStatService) *PlayerStatHandler {
	return &PlayerStatHandler{statService: ss}
}

// BulkUpdateHandler обрабатывает
// POST /tournaments/{tournamentID}/player-stats/bulk-update.
// Применение строго «всё или ничего»: при любом сбое транзакции ответ
// 500 с текстом ошибки, частичного успеха в ответе не бывает.
func (h *PlayerStatHandler) BulkUpdateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.BulkUpdateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Batters == nil || input.Pitchers == nil {
		badRequestResponse(w, r, errors.New("both batters and pitchers arrays are required"))
		return
	}

	result, err := h.statService.BulkUpdate(r.Context(), tournamentID, input)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			failedValidationResponse(w, r, verr.Fields)
		case errors.Is(err, services.ErrTournamentNotFound):
			notFoundResponse(w, r)
		default:
			// Транзакционный сбой: сообщение поднимается наружу, как и
			// в исходном контракте.
			errorResponse(w, r, http.StatusInternalServerError, jsonResponse{
				"message": "failed to update player stats",
				"error":   err.Error(),
			})
		}
		return
	}

	response := jsonResponse{
		"message":          "player stats updated",
		"tournament_id":    result.TournamentID,
		"updated_batters":  result.UpdatedBatters,
		"updated_pitchers": result.UpdatedPitchers,
		"updated_at":       result.UpdatedAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTournamentHandler обрабатывает
// GET /tournaments/{tournamentID}/player-stats — только сохранённые
// строки, без синтетических дефолтов.
func (h *PlayerStatHandler) ListByTournamentHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	statRows, err := h.statService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, statRows, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StatisticsHandler обрабатывает GET /tournaments/{tournamentID}/statistics.
func (h *PlayerStatHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.statService.GetStatisticsSummary(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetForPlayerHandler обрабатывает
// GET /tournaments/{tournamentID}/players/{playerID}/stats.
func (h *PlayerStatHandler) GetForPlayerHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stat, err := h.statService.GetPlayerStats(r.Context(), tournamentID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stat, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateForPlayerHandler обрабатывает
// PUT /tournaments/{tournamentID}/players/{playerID}/stats — одиночный
// апсерт через тот же find-else-create путь, что и bulk-update.
func (h *PlayerStatHandler) UpdateForPlayerHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdatePlayerStatsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stat, err := h.statService.UpdatePlayerStats(r.Context(), tournamentID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, stat, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteForPlayerHandler обрабатывает
// DELETE /tournaments/{tournamentID}/players/{playerID}/stats.
func (h *PlayerStatHandler) DeleteForPlayerHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.statService.DeletePlayerStats(r.Context(), tournamentID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "player stats deleted"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
