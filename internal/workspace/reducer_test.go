package workspace

import (
	"errors"
	"testing"

	"study-deck/internal/domain"
	"study-deck/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDeck() *domain.StudySet {
	return &domain.StudySet{
		Summary: "Cells are the basic unit of life.",
		Flashcards: []domain.Flashcard{
			{Question: "What is a cell?", Answer: "Basic unit of life", Difficulty: domain.DifficultyEasy},
			{Question: "Powerhouse?", Answer: "Mitochondria", Difficulty: domain.DifficultyMedium},
		},
		Quiz: domain.Quiz{Title: "Cells", Questions: []domain.QuizQuestion{
			{Type: domain.QuestionMultipleChoice, Question: "Powerhouse?", Options: []string{"Mitochondria", "Nucleus"}, CorrectAnswer: "Mitochondria"},
			{Type: domain.QuestionShortAnswer, Question: "Define osmosis", IdealAnswer: "Water diffusion"},
		}},
	}
}

func mustReduce(t *testing.T, s State, a Action) (State, []Effect) {
	t.Helper()
	next, effects, err := Reduce(s, a)
	require.NoError(t, err)
	return next, effects
}

func generated(t *testing.T, owner string) (State, []Effect) {
	t.Helper()
	s, _ := mustReduce(t, NewState(), GenerateRequested{Text: "Cell Biology\nnotes", Category: "Medicine & Biology", Owner: owner})
	return mustReduce(t, s, GenerateSucceeded{Deck: sampleDeck(), Source: "Cell Biology\nnotes", Category: "Medicine & Biology", Owner: owner})
}

func TestReduce_GenerateBlankTextIsNoop(t *testing.T) {
	s := NewState()
	s.ActiveDeck = sampleDeck()
	for _, text := range []string{"", "   ", "\n\t"} {
		next, effects, err := Reduce(s, GenerateRequested{Text: text})
		require.NoError(t, err)
		assert.Empty(t, effects)
		assert.Equal(t, s, next)
	}
}

func TestReduce_GenerateRequestedClearsDeck(t *testing.T) {
	s := NewState()
	s.ActiveDeck = sampleDeck()
	s.Saved = true
	s.Error = "old"

	next, effects := mustReduce(t, s, GenerateRequested{Text: "Topic", Category: "History", Owner: "u1"})
	assert.Nil(t, next.ActiveDeck)
	assert.False(t, next.Saved)
	assert.True(t, next.Generating)
	assert.Empty(t, next.Error)
	assert.Equal(t, "History", next.Category)
	assert.Equal(t, []Effect{CallGenerator{Text: "Topic", Category: "History", Owner: "u1"}}, effects)

	_, _, err := Reduce(next, GenerateRequested{Text: "Again"})
	assert.True(t, domain.IsCode(err, domain.ErrGenerationInProgress))

	_, _, err = Reduce(s, GenerateRequested{Text: "Topic", Category: "Alchemy"})
	assert.True(t, domain.IsCode(err, domain.ErrInvalidCategory))
}

func TestReduce_GenerateSucceededWithOwnerAutoSaves(t *testing.T) {
	s, effects := generated(t, "u1")

	require.NotNil(t, s.ActiveDeck)
	assert.Equal(t, "Cell Biology", s.ActiveDeck.Title)
	assert.Equal(t, "Medicine & Biology", s.ActiveDeck.Category)
	assert.Equal(t, ViewStudy, s.View)
	assert.Equal(t, TabFlashcards, s.Tab)
	assert.Equal(t, session.NewFlashcardSession(2), s.Flashcards)
	assert.Equal(t, 1, s.PendingSaves)

	require.Len(t, effects, 1)
	persist, ok := effects[0].(PersistDeck)
	require.True(t, ok)
	assert.Equal(t, "u1", persist.Owner)
	assert.False(t, persist.Manual)
	assert.Equal(t, s.DeckSeq, persist.DeckSeq)
	assert.Equal(t, "Cell Biology", persist.Deck.Title)
}

func TestReduce_GenerateSucceededAnonymousDoesNotSave(t *testing.T) {
	s, effects := generated(t, "")
	assert.NotNil(t, s.ActiveDeck)
	assert.Empty(t, effects)
	assert.Zero(t, s.PendingSaves)
}

func TestReduce_GenerateFailed(t *testing.T) {
	s, _ := mustReduce(t, NewState(), GenerateRequested{Text: "Topic"})
	s, _ = mustReduce(t, s, GenerateFailed{Err: errors.New("boom")})
	assert.False(t, s.Generating)
	assert.Nil(t, s.ActiveDeck)
	assert.Equal(t, BannerGenerationFailed, s.Error)
}

func TestReduce_AutoSaveOutcome(t *testing.T) {
	s, effects := generated(t, "u1")
	persist := effects[0].(PersistDeck)

	ok, okEffects := mustReduce(t, s, SaveSucceeded{ID: "d1", CreatedAt: 100, Owner: "u1", DeckSeq: persist.DeckSeq})
	assert.Equal(t, "d1", ok.ActiveDeck.ID)
	assert.Equal(t, "u1", ok.ActiveDeck.UserID)
	assert.True(t, ok.Saved)
	assert.Equal(t, []Effect{RefreshLibrary{Owner: "u1"}}, okEffects, "auto-save success is silent")
	assert.Empty(t, s.ActiveDeck.ID, "previous state is not mutated")

	failed, _ := mustReduce(t, s, SaveFailed{Err: errors.New("down"), DeckSeq: persist.DeckSeq})
	assert.Equal(t, BannerAutoSaveFailed, failed.DeckError)
	assert.NotNil(t, failed.ActiveDeck)
	assert.Zero(t, failed.PendingSaves)
}

func TestReduce_ManualSave(t *testing.T) {
	s, _ := generated(t, "")
	_, _, err := Reduce(s, SaveRequested{})
	assert.True(t, domain.IsCode(err, domain.ErrUnauthorized))

	_, _, err = Reduce(NewState(), SaveRequested{Owner: "u1"})
	assert.True(t, domain.IsCode(err, domain.ErrNoActiveDeck))

	s.Category = "History"
	s.DeckError = BannerAutoSaveFailed
	s, effects := mustReduce(t, s, SaveRequested{Owner: "u1"})
	assert.Empty(t, s.DeckError)
	persist := effects[0].(PersistDeck)
	assert.True(t, persist.Manual)
	assert.Equal(t, "History", persist.Deck.Category, "saves use the current category")

	saved, effects := mustReduce(t, s, SaveSucceeded{ID: "d2", Owner: "u1", Manual: true, DeckSeq: persist.DeckSeq})
	assert.True(t, saved.Saved)
	assert.Equal(t, []Effect{RefreshLibrary{Owner: "u1"}, ExpireSavedIndicator{Seq: saved.SavedSeq}}, effects)

	expired, _ := mustReduce(t, saved, SavedIndicatorExpired{Seq: saved.SavedSeq})
	assert.False(t, expired.Saved)
	stale, _ := mustReduce(t, saved, SavedIndicatorExpired{Seq: saved.SavedSeq - 1})
	assert.True(t, stale.Saved)

	failed, _ := mustReduce(t, s, SaveFailed{Manual: true, DeckSeq: persist.DeckSeq})
	assert.Equal(t, BannerManualSaveFailed, failed.DeckError)
}

func TestReduce_StaleSaveResultIgnored(t *testing.T) {
	s, effects := generated(t, "u1")
	persist := effects[0].(PersistDeck)

	s, _ = mustReduce(t, s, GenerateRequested{Text: "Another topic"})
	s, effects = mustReduce(t, s, SaveSucceeded{ID: "old", Owner: "u1", DeckSeq: persist.DeckSeq})
	assert.Nil(t, s.ActiveDeck)
	assert.False(t, s.Saved)
	assert.Equal(t, []Effect{RefreshLibrary{Owner: "u1"}}, effects)

	s, _ = mustReduce(t, s, SaveFailed{DeckSeq: persist.DeckSeq})
	assert.Empty(t, s.DeckError)
}

func TestReduce_Ingest(t *testing.T) {
	s := NewState()
	s.Input = "My notes"
	s, effects := mustReduce(t, s, IngestRequested{Filename: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF-")})
	assert.True(t, s.Ingesting)
	assert.Len(t, effects, 1)

	_, _, err := Reduce(s, IngestRequested{Filename: "b.pdf"})
	assert.True(t, domain.IsCode(err, domain.ErrIngestInProgress))

	ok, _ := mustReduce(t, s, IngestSucceeded{Text: "page one"})
	assert.Equal(t, "My notes\n\npage one", ok.Input)
	assert.False(t, ok.Ingesting)

	failed, _ := mustReduce(t, s, IngestFailed{Err: errors.New("bad")})
	assert.Equal(t, "My notes", failed.Input)
	assert.Equal(t, BannerIngestFailed, failed.Error)
}

func TestReduce_Library(t *testing.T) {
	decks := []*domain.StudySet{{ID: "d3", Title: "Three"}, {ID: "d1", Title: "One"}}
	s, _ := mustReduce(t, NewState(), LibraryLoaded{Decks: decks})
	assert.Equal(t, decks, s.Library)

	failed, _ := mustReduce(t, s, LibraryFailed{Provisioning: true})
	assert.Equal(t, BannerProvisioning, failed.DeckError)
	assert.Equal(t, decks, failed.Library, "keeps the last known list")

	failed, _ = mustReduce(t, s, LibraryFailed{})
	assert.Equal(t, BannerLibraryFailed, failed.DeckError)

	recovered, _ := mustReduce(t, failed, LibraryLoaded{})
	assert.Empty(t, recovered.DeckError)
	assert.NotNil(t, recovered.Library)

	opened, _ := mustReduce(t, s, DeckOpened{DeckID: "d1"})
	assert.Equal(t, "One", opened.ActiveDeck.Title)
	assert.Equal(t, ViewStudy, opened.View)

	_, _, err := Reduce(s, DeckOpened{DeckID: "missing"})
	assert.True(t, domain.IsCode(err, domain.ErrDeckNotFound))
}

func TestReduce_ViewAndTab(t *testing.T) {
	s := NewState()
	_, _, err := Reduce(s, ViewChanged{View: ViewStudy})
	assert.True(t, domain.IsCode(err, domain.ErrNoActiveDeck))

	_, _, err = Reduce(s, ViewChanged{View: "settings"})
	assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))

	next, effects := mustReduce(t, s, ViewChanged{View: ViewDashboard, Owner: "u1"})
	assert.Equal(t, ViewDashboard, next.View)
	assert.Equal(t, []Effect{RefreshLibrary{Owner: "u1"}}, effects)

	next, _ = mustReduce(t, s, TabChanged{Tab: TabJSON})
	assert.Equal(t, TabJSON, next.Tab)
	_, _, err = Reduce(s, TabChanged{Tab: "notes"})
	assert.Error(t, err)

	next, _ = mustReduce(t, s, CategorySelected{Category: ""})
	assert.Equal(t, domain.DefaultCategory, next.Category)
}

func TestReduce_StudySessions(t *testing.T) {
	_, _, err := Reduce(NewState(), FlashcardNext{})
	assert.True(t, domain.IsCode(err, domain.ErrNoActiveDeck))
	_, _, err = Reduce(NewState(), QuizSubmitted{})
	assert.True(t, domain.IsCode(err, domain.ErrNoActiveDeck))

	s, _ := generated(t, "")
	s, _ = mustReduce(t, s, FlashcardFlipped{})
	assert.Equal(t, session.FaceAnswer, s.Flashcards.Face)
	s, _ = mustReduce(t, s, FlashcardNext{})
	assert.Equal(t, 1, s.Flashcards.Position)
	assert.Equal(t, "Mitochondria", s.CurrentFlashcard().Answer)

	_, _, err = Reduce(s, QuizSubmitted{})
	assert.True(t, domain.IsCode(err, domain.ErrInvalidTransition))

	s, _ = mustReduce(t, s, QuizOptionSelected{Option: "Mitochondria"})
	s, _ = mustReduce(t, s, QuizSubmitted{})
	s, _ = mustReduce(t, s, QuizAdvanced{})
	s, _ = mustReduce(t, s, QuizTextChanged{Text: "water moves"})
	s, _ = mustReduce(t, s, QuizSubmitted{})
	s, _ = mustReduce(t, s, QuizAdvanced{})
	require.NotNil(t, s.QuizResults())
	assert.Equal(t, session.QuizResults{Score: 2, Total: 2, Percent: 100}, *s.QuizResults())

	s, _ = mustReduce(t, s, QuizRestarted{})
	assert.Nil(t, s.QuizResults())
	assert.Equal(t, "Powerhouse?", s.CurrentQuestion().Question)
}

func TestReduce_QuizOptionMustBeListed(t *testing.T) {
	s, _ := generated(t, "")

	_, _, err := Reduce(s, QuizOptionSelected{Option: "Ribosome"})
	assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))

	s, _ = mustReduce(t, s, QuizOptionSelected{Option: "Nucleus"})
	require.NotNil(t, s.Quiz.SelectedOption)
	assert.Equal(t, "Nucleus", *s.Quiz.SelectedOption)

	s, _ = mustReduce(t, s, QuizSubmitted{})
	_, _, err = Reduce(s, QuizOptionSelected{Option: "Ribosome"})
	assert.True(t, domain.IsCode(err, domain.ErrInvalidTransition), "submitted question rejects selection first")
}

func TestReduce_QuizOptionWithoutListedOptions(t *testing.T) {
	deck := sampleDeck()
	deck.Quiz.Questions[0].Options = nil
	s, _ := mustReduce(t, NewState(), GenerateRequested{Text: "Cells", Category: "General"})
	s, _ = mustReduce(t, s, GenerateSucceeded{Deck: deck, Source: "Cells", Category: "General"})

	s, _ = mustReduce(t, s, QuizOptionSelected{Option: "Mitochondria"})
	require.NotNil(t, s.Quiz.SelectedOption)
	assert.Equal(t, "Mitochondria", *s.Quiz.SelectedOption)
}
