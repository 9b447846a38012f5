package dto

import (
	"study-deck/internal/domain"
	"study-deck/internal/session"
	"study-deck/internal/workspace"
)

// InputRequest replaces the workspace source text.
// @Description Request body for editing the source text
type InputRequest struct {
	Text string `json:"text"`
}

// CategoryRequest selects the category used for the next generation and save.
type CategoryRequest struct {
	Category string `json:"category"`
}

type ViewRequest struct {
	View string `json:"view"`
}

type TabRequest struct {
	Tab string `json:"tab"`
}

// GenerateRequest starts generation. An empty Text falls back to the
// workspace input and an empty Category to the selected one.
// @Description Request body for generating a study set
type GenerateRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type QuizOptionRequest struct {
	Option string `json:"option"`
}

type QuizTextRequest struct {
	Text string `json:"text"`
}

// WorkspaceResponse is the full workspace with the derived study views.
// @Description Workspace state
type WorkspaceResponse struct {
	SessionID        string               `json:"sessionId"`
	State            workspace.State      `json:"state"`
	CurrentFlashcard *domain.Flashcard    `json:"currentFlashcard,omitempty"`
	CurrentQuestion  *domain.QuizQuestion `json:"currentQuestion,omitempty"`
	QuizResults      *session.QuizResults `json:"quizResults,omitempty"`
}

func NewWorkspaceResponse(sessionID string, s workspace.State) WorkspaceResponse {
	return WorkspaceResponse{
		SessionID:        sessionID,
		State:            s,
		CurrentFlashcard: s.CurrentFlashcard(),
		CurrentQuestion:  s.CurrentQuestion(),
		QuizResults:      s.QuizResults(),
	}
}

// FlashcardResponse describes the flashcard viewer.
type FlashcardResponse struct {
	Session session.FlashcardSession `json:"session"`
	Card    *domain.Flashcard        `json:"card,omitempty"`
}

func NewFlashcardResponse(s workspace.State) FlashcardResponse {
	return FlashcardResponse{Session: s.Flashcards, Card: s.CurrentFlashcard()}
}

// QuizResponse describes the quiz runner. Results is set once finished.
type QuizResponse struct {
	Session  session.QuizSession  `json:"session"`
	Question *domain.QuizQuestion `json:"question,omitempty"`
	Total    int                  `json:"total"`
	Results  *session.QuizResults `json:"results,omitempty"`
}

func NewQuizResponse(s workspace.State) QuizResponse {
	return QuizResponse{
		Session:  s.Quiz,
		Question: s.CurrentQuestion(),
		Total:    len(s.Questions()),
		Results:  s.QuizResults(),
	}
}

// DeckResponse wraps a single study set.
// @Description Study set
type DeckResponse struct {
	Deck *domain.StudySet `json:"deck"`
}

// DeckListResponse lists the caller's decks, newest first.
type DeckListResponse struct {
	Decks []*domain.StudySet `json:"decks"`
}

// IngestResponse returns the extracted text and the updated input.
type IngestResponse struct {
	Text  string `json:"text"`
	Input string `json:"input"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Default    string   `json:"default"`
}
