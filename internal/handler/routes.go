package handler

import (
	"study-deck/internal/middleware"
	"study-deck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the route handlers mounted under /api.
type Handlers struct {
	Workspace *WorkspaceHandler
	Decks     *DeckHandler
	Study     *StudyHandler
	Auth      *AuthHandler
}

// RegisterRoutes mounts the API on api. Workspace routes accept anonymous
// callers; saving and the library require a signed-in owner.
func RegisterRoutes(api fiber.Router, h Handlers, authService service.AuthService) {
	api.Get("/categories", GetCategories)

	if h.Auth != nil {
		authGroup := api.Group("/auth")
		authGroup.Get("/google/login", h.Auth.GoogleLogin)
		authGroup.Get("/google/callback", h.Auth.GoogleCallback)
	}

	ws := api.Group("/workspace", middleware.Session(), middleware.OptionalAuth(authService))
	ws.Get("/", h.Workspace.GetWorkspace)
	ws.Put("/input", h.Workspace.SetInput)
	ws.Put("/category", h.Workspace.SetCategory)
	ws.Put("/view", h.Workspace.SetView)
	ws.Put("/tab", h.Workspace.SetTab)
	ws.Post("/ingest", h.Workspace.Ingest)
	ws.Post("/generate", h.Workspace.Generate)
	ws.Post("/save", middleware.Protected(authService), h.Workspace.Save)

	ws.Get("/flashcards", h.Study.GetFlashcards)
	ws.Post("/flashcards/next", h.Study.NextFlashcard)
	ws.Post("/flashcards/previous", h.Study.PreviousFlashcard)
	ws.Post("/flashcards/flip", h.Study.FlipFlashcard)

	ws.Get("/quiz", h.Study.GetQuiz)
	ws.Post("/quiz/select", h.Study.SelectOption)
	ws.Post("/quiz/text", h.Study.SetAnswerText)
	ws.Post("/quiz/submit", h.Study.SubmitAnswer)
	ws.Post("/quiz/advance", h.Study.AdvanceQuiz)
	ws.Post("/quiz/restart", h.Study.RestartQuiz)

	decks := api.Group("/decks", middleware.Session(), middleware.Protected(authService))
	decks.Get("/", h.Decks.ListDecks)
	decks.Post("/:id/open", h.Decks.OpenDeck)
}
