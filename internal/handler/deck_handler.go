package handler

import (
	"study-deck/internal/domain"
	"study-deck/internal/dto"
	"study-deck/internal/middleware"
	"study-deck/internal/service"
	"study-deck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type DeckHandler struct {
	pipeline  service.GenerationPipeline
	validator *validation.Validator
}

func NewDeckHandler(pipeline service.GenerationPipeline) *DeckHandler {
	return &DeckHandler{pipeline: pipeline, validator: validation.NewValidator()}
}

// ListDecks returns the caller's saved decks.
// @Summary List saved decks
// @Description Newest first. Also refreshes the workspace library.
// @Tags decks
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.DeckListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Deck store still provisioning"
// @Router /decks [get]
func (h *DeckHandler) ListDecks(c *fiber.Ctx) error {
	decks, err := h.pipeline.ListDecks(c.UserContext(), middleware.SessionID(c), middleware.UserID(c))
	if err != nil {
		return err
	}
	if decks == nil {
		decks = []*domain.StudySet{}
	}
	return c.JSON(dto.DeckListResponse{Decks: decks})
}

// OpenDeck makes a library deck the active deck.
// @Summary Open saved deck
// @Tags decks
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Deck ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} middleware.ErrorResponse "Malformed deck ID"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /decks/{id}/open [post]
func (h *DeckHandler) OpenDeck(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.validator.ValidateDeckID(id); err != nil {
		return err
	}
	s, err := h.pipeline.OpenDeck(c.UserContext(), middleware.SessionID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewWorkspaceResponse(middleware.SessionID(c), s))
}
