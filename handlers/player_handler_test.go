package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/services"
)

func newPlayerRouter(svc services.PlayerService) *chi.Mux {
	h := NewPlayerHandler(svc)
	r := chi.NewRouter()
	r.Get("/players", h.ListHandler)
	r.Post("/players/create", h.CreateHandler)
	return r
}

func TestListPlayersReturnsBareArray(t *testing.T) {
	svc := &stubPlayerService{
		listFn: func(ctx context.Context) ([]models.Player, error) {
			return []models.Player{
				{ID: 1, Name: "佐藤", Position: "2B", Type: models.PlayerTypeBatter, Spirit: 3000},
			}, nil
		},
	}
	router := newPlayerRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var players []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "佐藤", players[0]["name"])
	// icon_key наружу не отдаётся
	assert.NotContains(t, players[0], "icon_key")
}

func TestCreatePlayerReturns201(t *testing.T) {
	svc := &stubPlayerService{
		createFn: func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
			require.NotNil(t, input.Name)
			return &models.Player{ID: 7, Name: *input.Name, Position: "CF", Type: models.PlayerTypeBatter}, nil
		},
	}
	router := newPlayerRouter(svc)

	body := `{"name":"鈴木","position":"CF","type":"batter","spirit":3400,"limit_break":5}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/players/create", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "鈴木", created.Name)
}

func TestCreatePlayerValidationFailure(t *testing.T) {
	svc := &stubPlayerService{
		createFn: func(ctx context.Context, input services.CreatePlayerInput) (*models.Player, error) {
			verr := services.NewValidationError()
			verr.Add("name", "is required")
			verr.Add("spirit", "is required")
			return nil, verr
		},
	}
	router := newPlayerRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/players/create", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "is required", envelope.Error["name"])
	assert.Equal(t, "is required", envelope.Error["spirit"])
}

func TestCreatePlayerRejectsMalformedJSON(t *testing.T) {
	router := newPlayerRouter(&stubPlayerService{})

	cases := []struct {
		name string
		body string
	}{
		{"broken json", `{"name":`},
		{"unknown field", `{"nickname":"x"}`},
		{"empty body", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/players/create", strings.NewReader(tc.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
