package handler

import (
	"fmt"
	"io"
	"strings"

	"study-deck/internal/domain"
	"study-deck/internal/dto"
	"study-deck/internal/logger"
	"study-deck/internal/middleware"
	"study-deck/internal/service"
	"study-deck/internal/validation"
	"study-deck/internal/workspace"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes bounds the uploaded document size.
const DefaultMaxUploadBytes = 20 * 1024 * 1024

type WorkspaceHandler struct {
	pipeline       service.GenerationPipeline
	validator      *validation.Validator
	maxUploadBytes int64
}

func NewWorkspaceHandler(pipeline service.GenerationPipeline, maxUploadBytes int64) *WorkspaceHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &WorkspaceHandler{
		pipeline:       pipeline,
		validator:      validation.NewValidator(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *WorkspaceHandler) respond(c *fiber.Ctx, s workspace.State) error {
	return c.JSON(dto.NewWorkspaceResponse(middleware.SessionID(c), s))
}

// parseBody decodes a JSON body into req and reports malformed input as INVALID_INPUT.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(req); err != nil {
		return domain.NewInvalidInputError(fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// GetWorkspace returns the caller's workspace.
// @Summary Get workspace
// @Description Returns the workspace for the X-Session-ID session.
// @Tags workspace
// @Produce json
// @Param X-Session-ID header string false "Workspace session id"
// @Success 200 {object} dto.WorkspaceResponse
// @Router /workspace [get]
func (h *WorkspaceHandler) GetWorkspace(c *fiber.Ctx) error {
	s, err := h.pipeline.State(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return h.respond(c, s)
}

// SetInput replaces the source text.
// @Summary Edit source text
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body dto.InputRequest true "Source text"
// @Success 200 {object} dto.WorkspaceResponse
// @Router /workspace/input [put]
func (h *WorkspaceHandler) SetInput(c *fiber.Ctx) error {
	var req dto.InputRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	s, err := h.pipeline.SetInput(c.UserContext(), middleware.SessionID(c), req.Text)
	if err != nil {
		return err
	}
	return h.respond(c, s)
}

// SetCategory selects the category.
// @Summary Select category
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /workspace/category [put]
func (h *WorkspaceHandler) SetCategory(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	s, err := h.pipeline.SelectCategory(c.UserContext(), middleware.SessionID(c), req.Category)
	if err != nil {
		return err
	}
	return h.respond(c, s)
}

// SetView switches between dashboard, create and study.
// @Summary Change view
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body dto.ViewRequest true "View"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 409 {object} middleware.ErrorResponse "No active deck"
// @Router /workspace/view [put]
func (h *WorkspaceHandler) SetView(c *fiber.Ctx) error {
	var req dto.ViewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	s, err := h.pipeline.SetView(c.UserContext(), middleware.SessionID(c), middleware.UserID(c), workspace.View(req.View))
	if err != nil {
		return err
	}
	return h.respond(c, s)
}

// SetTab switches the study tab.
// @Summary Change study tab
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body dto.TabRequest true "Tab"
// @Success 200 {object} dto.WorkspaceResponse
// @Router /workspace/tab [put]
func (h *WorkspaceHandler) SetTab(c *fiber.Ctx) error {
	var req dto.TabRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	s, err := h.pipeline.SetTab(c.UserContext(), middleware.SessionID(c), workspace.Tab(req.Tab))
	if err != nil {
		return err
	}
	return h.respond(c, s)
}

// Ingest extracts text from an uploaded PDF and appends it to the input.
// @Summary Upload a document
// @Tags workspace
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} dto.IngestResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /workspace/ingest [post]
func (h *WorkspaceHandler) Ingest(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("Multipart field 'file' is required")
	}
	if err := h.validator.ValidateUpload(fh.Filename, fh.Size, h.maxUploadBytes); err != nil {
		return err
	}
	f, err := fh.Open()
	if err != nil {
		return domain.NewInternalError("failed to open upload", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes))
	if err != nil {
		return domain.NewInternalError("failed to read upload", err)
	}

	sessionID := middleware.SessionID(c)
	text, err := h.pipeline.Ingest(c.UserContext(), sessionID, fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return err
	}
	s, err := h.pipeline.State(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	logger.Get().Debug("Document ingested",
		zap.String("filename", fh.Filename),
		zap.Int("bytes", len(data)),
		zap.Int("chars", len(text)))
	return c.JSON(dto.IngestResponse{Text: text, Input: s.Input})
}

// Generate creates a study set from the given or current source text.
// @Summary Generate study set
// @Description Auto-saves the result for signed-in callers. Blank text is a no-op.
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest false "Source text and category"
// @Success 200 {object} dto.DeckResponse
// @Success 204 "Nothing to generate"
// @Failure 409 {object} middleware.ErrorResponse "Generation already running"
// @Failure 502 {object} middleware.ErrorResponse "Generator failed"
// @Router /workspace/generate [post]
func (h *WorkspaceHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sessionID := middleware.SessionID(c)
	text := req.Text
	if strings.TrimSpace(text) == "" {
		s, err := h.pipeline.State(c.UserContext(), sessionID)
		if err != nil {
			return err
		}
		text = s.Input
	}

	deck, err := h.pipeline.Generate(c.UserContext(), sessionID, middleware.UserID(c), text, req.Category)
	if err != nil {
		return err
	}
	if deck == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.DeckResponse{Deck: deck})
}

// Save stores a new copy of the active deck.
// @Summary Save active deck
// @Tags workspace
// @Security ApiKeyAuth
// @Produce json
// @Success 201 {object} dto.DeckResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "No active deck"
// @Failure 502 {object} middleware.ErrorResponse "Save failed"
// @Router /workspace/save [post]
func (h *WorkspaceHandler) Save(c *fiber.Ctx) error {
	deck, err := h.pipeline.ManualSave(c.UserContext(), middleware.SessionID(c), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DeckResponse{Deck: deck})
}
