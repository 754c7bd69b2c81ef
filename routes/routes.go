package routes

import (
	"github.com/Berikbol/ring-system/handlers"
	"github.com/Berikbol/ring-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

// SetupRoutes собирает весь HTTP-интерфейс движка. Чтение открыто,
// мутации закрыты JWT-токеном оператора.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	datasetHandler *handlers.DatasetHandler,
	categoryHandler *handlers.CategoryHandler,
	assignmentHandler *handlers.AssignmentHandler,
	checkpointHandler *handlers.CheckpointHandler,
	historyHandler *handlers.HistoryHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.Login)

	// Чтение: табло и операторский UI без токена.
	router.Get("/dataset", datasetHandler.GetDataset)
	router.Get("/rings", datasetHandler.GetRings)
	router.Get("/warnings", datasetHandler.GetWarnings)
	router.Get("/categories", categoryHandler.List)
	router.Get("/checkpoints", checkpointHandler.List)
	router.Get("/ws", webSocketHandler.ServeWs)

	// Мутации: только аутентифицированный оператор.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Post("/roster/import", datasetHandler.ImportRoster)
		r.Patch("/competitors/{competitorID}", datasetHandler.UpdateCompetitor)

		r.Post("/categories", categoryHandler.Create)
		r.Delete("/categories/{categoryID}", categoryHandler.Delete)

		r.Post("/divisions/{division}/assign", assignmentHandler.AssignDivision)
		r.Post("/assign", assignmentHandler.AssignAll)
		r.Post("/sparring/map", assignmentHandler.MapSparring)
		r.Post("/divisions/{division}/rings/auto-assign", assignmentHandler.AutoAssignRings)
		r.Patch("/ring-mappings/{mappingID}", assignmentHandler.OverrideRingMapping)

		r.Post("/checkpoints", checkpointHandler.Create)
		r.Get("/checkpoints/{checkpointID}/diff", checkpointHandler.Diff)
		r.Post("/checkpoints/{checkpointID}/load", checkpointHandler.Load)
		r.Patch("/checkpoints/{checkpointID}", checkpointHandler.Rename)
		r.Delete("/checkpoints/{checkpointID}", checkpointHandler.Delete)

		r.Post("/history/undo", historyHandler.Undo)
		r.Post("/history/redo", historyHandler.Redo)

		r.Post("/dataset/save", datasetHandler.SaveDataset)
		r.Post("/dataset/restore", datasetHandler.RestoreDataset)
	})
}
