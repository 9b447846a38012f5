package handler

import (
	"study-deck/internal/dto"
	"study-deck/internal/middleware"
	"study-deck/internal/service"
	"study-deck/internal/workspace"

	"github.com/gofiber/fiber/v2"
)

// StudyHandler drives the flashcard viewer and the quiz runner.
type StudyHandler struct {
	pipeline service.GenerationPipeline
}

func NewStudyHandler(pipeline service.GenerationPipeline) *StudyHandler {
	return &StudyHandler{pipeline: pipeline}
}

// apply dispatches action, or only reads the state when action is nil.
func (h *StudyHandler) apply(c *fiber.Ctx, action workspace.Action) (workspace.State, error) {
	sessionID := middleware.SessionID(c)
	if action == nil {
		return h.pipeline.State(c.UserContext(), sessionID)
	}
	return h.pipeline.Dispatch(c.UserContext(), sessionID, action)
}

func (h *StudyHandler) flashcards(c *fiber.Ctx, action workspace.Action) error {
	s, err := h.apply(c, action)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFlashcardResponse(s))
}

func (h *StudyHandler) quiz(c *fiber.Ctx, action workspace.Action) error {
	s, err := h.apply(c, action)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizResponse(s))
}

// GetFlashcards returns the current card.
// @Summary Current flashcard
// @Tags flashcards
// @Produce json
// @Success 200 {object} dto.FlashcardResponse
// @Router /workspace/flashcards [get]
func (h *StudyHandler) GetFlashcards(c *fiber.Ctx) error {
	return h.flashcards(c, nil)
}

// NextFlashcard moves forward and shows the question side.
// @Summary Next flashcard
// @Tags flashcards
// @Produce json
// @Success 200 {object} dto.FlashcardResponse
// @Failure 409 {object} middleware.ErrorResponse "No active deck"
// @Router /workspace/flashcards/next [post]
func (h *StudyHandler) NextFlashcard(c *fiber.Ctx) error {
	return h.flashcards(c, workspace.FlashcardNext{})
}

// PreviousFlashcard moves back and shows the question side.
// @Summary Previous flashcard
// @Tags flashcards
// @Produce json
// @Success 200 {object} dto.FlashcardResponse
// @Router /workspace/flashcards/previous [post]
func (h *StudyHandler) PreviousFlashcard(c *fiber.Ctx) error {
	return h.flashcards(c, workspace.FlashcardPrevious{})
}

// FlipFlashcard toggles the visible side.
// @Summary Flip flashcard
// @Tags flashcards
// @Produce json
// @Success 200 {object} dto.FlashcardResponse
// @Router /workspace/flashcards/flip [post]
func (h *StudyHandler) FlipFlashcard(c *fiber.Ctx) error {
	return h.flashcards(c, workspace.FlashcardFlipped{})
}

// GetQuiz returns the current question, or the results once finished.
// @Summary Quiz state
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Router /workspace/quiz [get]
func (h *StudyHandler) GetQuiz(c *fiber.Ctx) error {
	return h.quiz(c, nil)
}

// SelectOption picks a multiple choice option.
// @Summary Select option
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body dto.QuizOptionRequest true "Option"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse "Option not offered by the question"
// @Failure 409 {object} middleware.ErrorResponse "Answer already submitted"
// @Router /workspace/quiz/select [post]
func (h *StudyHandler) SelectOption(c *fiber.Ctx) error {
	var req dto.QuizOptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.quiz(c, workspace.QuizOptionSelected{Option: req.Option})
}

// SetAnswerText edits the short answer.
// @Summary Edit short answer
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body dto.QuizTextRequest true "Answer text"
// @Success 200 {object} dto.QuizResponse
// @Router /workspace/quiz/text [post]
func (h *StudyHandler) SetAnswerText(c *fiber.Ctx) error {
	var req dto.QuizTextRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	return h.quiz(c, workspace.QuizTextChanged{Text: req.Text})
}

// SubmitAnswer grades the current question.
// @Summary Submit answer
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Failure 409 {object} middleware.ErrorResponse "Nothing to submit"
// @Router /workspace/quiz/submit [post]
func (h *StudyHandler) SubmitAnswer(c *fiber.Ctx) error {
	return h.quiz(c, workspace.QuizSubmitted{})
}

// AdvanceQuiz moves to the next question or to the results.
// @Summary Next question
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Router /workspace/quiz/advance [post]
func (h *StudyHandler) AdvanceQuiz(c *fiber.Ctx) error {
	return h.quiz(c, workspace.QuizAdvanced{})
}

// RestartQuiz starts over from the results screen.
// @Summary Restart quiz
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Router /workspace/quiz/restart [post]
func (h *StudyHandler) RestartQuiz(c *fiber.Ctx) error {
	return h.quiz(c, workspace.QuizRestarted{})
}
