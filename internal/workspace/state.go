package workspace

import (
	"study-deck/internal/domain"
	"study-deck/internal/session"
)

type View string

const (
	ViewDashboard View = "dashboard"
	ViewCreate    View = "create"
	ViewStudy     View = "study"
)

func (v View) Valid() bool {
	return v == ViewDashboard || v == ViewCreate || v == ViewStudy
}

type Tab string

const (
	TabSummary    Tab = "summary"
	TabFlashcards Tab = "flashcards"
	TabQuiz       Tab = "quiz"
	TabJSON       Tab = "json"
)

func (t Tab) Valid() bool {
	switch t {
	case TabSummary, TabFlashcards, TabQuiz, TabJSON:
		return true
	}
	return false
}

// Banner texts shown to the user.
const (
	BannerGenerationFailed = "Failed to summon knowledge. Please try again later."
	BannerAutoSaveFailed   = "Deck generated but not saved. Click 'Save Deck' to retry."
	BannerManualSaveFailed = "Save Failed. API may still be initializing. Try again in 30s."
	BannerProvisioning     = "DB Connection Issue: Please refresh page in 1 minute. (API enabling...)"
	BannerLibraryFailed    = "Could not connect to library."
	BannerIngestFailed     = "Failed to read file. Please ensure it is a valid PDF."
)

// State is everything a client needs to render one workspace.
type State struct {
	View     View   `json:"view"`
	Tab      Tab    `json:"tab"`
	Input    string `json:"input"`
	Category string `json:"category"`

	Generating   bool `json:"generating"`
	Ingesting    bool `json:"ingesting"`
	PendingSaves int  `json:"pendingSaves"`

	ActiveDeck *domain.StudySet `json:"activeDeck,omitempty"`
	// DeckSeq changes whenever ActiveDeck is replaced or cleared so late
	// save results for an older deck can be recognised.
	DeckSeq  int64 `json:"deckSeq"`
	Saved    bool  `json:"saved"`
	SavedSeq int64 `json:"savedSeq"`

	Error     string `json:"error,omitempty"`
	DeckError string `json:"deckError,omitempty"`

	Library []*domain.StudySet `json:"library"`

	Flashcards session.FlashcardSession `json:"flashcards"`
	Quiz       session.QuizSession      `json:"quiz"`
}

func NewState() State {
	return State{
		View:       ViewDashboard,
		Tab:        TabFlashcards,
		Category:   domain.DefaultCategory,
		Library:    []*domain.StudySet{},
		Flashcards: session.NewFlashcardSession(0),
		Quiz:       session.NewQuizSession(),
	}
}

// Questions returns the active deck's quiz questions, or nil.
func (s State) Questions() []domain.QuizQuestion {
	if s.ActiveDeck == nil {
		return nil
	}
	return s.ActiveDeck.Quiz.Questions
}

// QuizResults is set once the quiz reaches its results state.
func (s State) QuizResults() *session.QuizResults {
	if !s.Quiz.Finished {
		return nil
	}
	r := s.Quiz.Results(len(s.Questions()))
	return &r
}

func (s State) CurrentFlashcard() *domain.Flashcard {
	if s.ActiveDeck == nil || s.Flashcards.Position >= len(s.ActiveDeck.Flashcards) {
		return nil
	}
	card := s.ActiveDeck.Flashcards[s.Flashcards.Position]
	return &card
}

func (s State) CurrentQuestion() *domain.QuizQuestion {
	qs := s.Questions()
	if s.Quiz.QuestionIndex >= len(qs) {
		return nil
	}
	q := qs[s.Quiz.QuestionIndex]
	return &q
}
