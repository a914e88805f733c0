package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prospia/roster-system/handlers"
)

// SetupRoutes вешает все маршруты API на переданный роутер.
// iconUploadsEnabled=false убирает маршрут загрузки иконок, когда
// объектное хранилище не сконфигурировано.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	statHandler *handlers.PlayerStatHandler,
	iconUploadsEnabled bool,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListHandler)
		r.Post("/create", playerHandler.CreateHandler)
		if iconUploadsEnabled {
			r.Post("/{playerID}/icon", playerHandler.UploadIconHandler)
		}
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Put("/", tournamentHandler.UpdateHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)
			r.Get("/details", tournamentHandler.DetailsHandler)
			r.Get("/statistics", statHandler.StatisticsHandler)

			r.Route("/player-stats", func(r chi.Router) {
				r.Get("/", statHandler.ListByTournamentHandler)
				r.Post("/bulk-update", statHandler.BulkUpdateHandler)
			})

			r.Route("/players/{playerID}/stats", func(r chi.Router) {
				r.Get("/", statHandler.GetForPlayerHandler)
				r.Put("/", statHandler.UpdateForPlayerHandler)
				r.Delete("/", statHandler.DeleteForPlayerHandler)
			})
		})
	})
}
