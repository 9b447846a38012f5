package workspace

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"study-deck/internal/domain"
	"study-deck/internal/session"
)

// Reduce applies a to s and returns the next state with the effects the
// caller must run. On error the returned state is s unchanged.
func Reduce(s State, a Action) (State, []Effect, error) {
	switch a := a.(type) {
	case InputChanged:
		s.Input = a.Text
		return s, nil, nil

	case CategorySelected:
		category, err := domain.NormalizeCategory(a.Category)
		if err != nil {
			return s, nil, err
		}
		s.Category = category
		return s, nil, nil

	case ViewChanged:
		if !a.View.Valid() {
			return s, nil, domain.NewInvalidInputError(fmt.Sprintf("unknown view: %s", a.View))
		}
		if a.View == ViewStudy && s.ActiveDeck == nil {
			return s, nil, domain.NewNoActiveDeckError()
		}
		s.View = a.View
		if a.View == ViewDashboard && a.Owner != "" {
			return s, []Effect{RefreshLibrary{Owner: a.Owner}}, nil
		}
		return s, nil, nil

	case TabChanged:
		if !a.Tab.Valid() {
			return s, nil, domain.NewInvalidInputError(fmt.Sprintf("unknown tab: %s", a.Tab))
		}
		s.Tab = a.Tab
		return s, nil, nil

	case IngestRequested:
		if s.Ingesting {
			return s, nil, domain.NewError(domain.ErrIngestInProgress, "A file is already being read", nil)
		}
		s.Ingesting = true
		s.Error = ""
		return s, []Effect{ExtractContent{Filename: a.Filename, ContentType: a.ContentType, Data: a.Data}}, nil

	case IngestSucceeded:
		s.Ingesting = false
		s.Input = s.Input + "\n\n" + a.Text
		return s, nil, nil

	case IngestFailed:
		s.Ingesting = false
		s.Error = BannerIngestFailed
		return s, nil, nil

	case GenerateRequested:
		return reduceGenerateRequested(s, a)

	case GenerateSucceeded:
		return reduceGenerateSucceeded(s, a)

	case GenerateFailed:
		s.Generating = false
		s.Error = BannerGenerationFailed
		return s, nil, nil

	case SaveRequested:
		if s.ActiveDeck == nil {
			return s, nil, domain.NewNoActiveDeckError()
		}
		if a.Owner == "" {
			return s, nil, domain.NewUnauthorizedError("Sign in to save decks")
		}
		return startSave(s, a.Owner, true)

	case SaveSucceeded:
		s.PendingSaves = decrement(s.PendingSaves)
		effects := []Effect{RefreshLibrary{Owner: a.Owner}}
		if a.DeckSeq != s.DeckSeq || s.ActiveDeck == nil {
			return s, effects, nil
		}
		deck := s.ActiveDeck.Clone()
		deck.ID = a.ID
		deck.CreatedAt = a.CreatedAt
		deck.UserID = a.Owner
		s.ActiveDeck = deck
		s.Saved = true
		if a.Manual {
			s.SavedSeq++
			effects = append(effects, ExpireSavedIndicator{Seq: s.SavedSeq})
		}
		return s, effects, nil

	case SaveFailed:
		s.PendingSaves = decrement(s.PendingSaves)
		if a.DeckSeq != s.DeckSeq {
			return s, nil, nil
		}
		if a.Manual {
			s.DeckError = BannerManualSaveFailed
		} else {
			s.DeckError = BannerAutoSaveFailed
		}
		return s, nil, nil

	case SavedIndicatorExpired:
		if a.Seq == s.SavedSeq {
			s.Saved = false
		}
		return s, nil, nil

	case LibraryLoaded:
		s.Library = a.Decks
		if s.Library == nil {
			s.Library = []*domain.StudySet{}
		}
		s.DeckError = ""
		return s, nil, nil

	case LibraryFailed:
		if a.Provisioning {
			s.DeckError = BannerProvisioning
		} else {
			s.DeckError = BannerLibraryFailed
		}
		return s, nil, nil

	case DeckOpened:
		for _, d := range s.Library {
			if d != nil && d.ID == a.DeckID {
				s = activate(s, d.Clone())
				s.Saved = false
				s.View = ViewStudy
				return s, nil, nil
			}
		}
		return s, nil, domain.NewDeckNotFoundError(a.DeckID)

	case FlashcardNext, FlashcardPrevious, FlashcardFlipped:
		return reduceFlashcard(s, a)

	case QuizOptionSelected, QuizTextChanged, QuizSubmitted, QuizAdvanced, QuizRestarted:
		return reduceQuiz(s, a)
	}
	return s, nil, domain.NewInternalError(fmt.Sprintf("unhandled action %T", a), nil)
}

func reduceGenerateRequested(s State, a GenerateRequested) (State, []Effect, error) {
	if strings.TrimSpace(a.Text) == "" {
		return s, nil, nil
	}
	if s.Generating {
		return s, nil, domain.NewError(domain.ErrGenerationInProgress, "Generation is already running", nil)
	}
	category := s.Category
	if a.Category != "" {
		c, err := domain.NormalizeCategory(a.Category)
		if err != nil {
			return s, nil, err
		}
		category = c
	}
	s.Category = category
	s.Input = a.Text
	s.Generating = true
	s.Error = ""
	s = activate(s, nil)
	s.Saved = false
	return s, []Effect{CallGenerator{Text: a.Text, Category: category, Owner: a.Owner}}, nil
}

func reduceGenerateSucceeded(s State, a GenerateSucceeded) (State, []Effect, error) {
	s.Generating = false
	if a.Deck == nil {
		s.Error = BannerGenerationFailed
		return s, nil, nil
	}
	deck := a.Deck.Clone()
	deck.Title = domain.DeriveTitle(a.Source)
	deck.Category = a.Category
	s = activate(s, deck)
	s.View = ViewStudy
	s.Tab = TabFlashcards
	if a.Owner == "" {
		return s, nil, nil
	}
	next, effects, _ := startSave(s, a.Owner, false)
	return next, effects, nil
}

// startSave builds the create request for the active deck using the
// currently selected category.
func startSave(s State, owner string, manual bool) (State, []Effect, error) {
	deck := s.ActiveDeck.Clone()
	if deck.Title == "" {
		deck.Title = domain.DefaultDeckTitle
	}
	deck.Category = s.Category
	s.PendingSaves++
	s.DeckError = ""
	return s, []Effect{PersistDeck{Owner: owner, Deck: deck, DeckSeq: s.DeckSeq, Manual: manual}}, nil
}

// activate swaps the active deck and resets both study sessions.
func activate(s State, deck *domain.StudySet) State {
	s.ActiveDeck = deck
	s.DeckSeq++
	cards := 0
	if deck != nil {
		cards = len(deck.Flashcards)
	}
	s.Flashcards = session.NewFlashcardSession(cards)
	s.Quiz = session.NewQuizSession()
	return s
}

func reduceFlashcard(s State, a Action) (State, []Effect, error) {
	if s.ActiveDeck == nil {
		return s, nil, domain.NewNoActiveDeckError()
	}
	switch a.(type) {
	case FlashcardNext:
		s.Flashcards = s.Flashcards.Next()
	case FlashcardPrevious:
		s.Flashcards = s.Flashcards.Previous()
	case FlashcardFlipped:
		s.Flashcards = s.Flashcards.Flip()
	}
	return s, nil, nil
}

func reduceQuiz(s State, a Action) (State, []Effect, error) {
	if s.ActiveDeck == nil {
		return s, nil, domain.NewNoActiveDeckError()
	}
	questions := s.ActiveDeck.Quiz.Questions

	var (
		next session.QuizSession
		err  error
	)
	switch a := a.(type) {
	case QuizOptionSelected:
		next, err = s.Quiz.SelectOption(a.Option)
		if err == nil && !optionListed(questions, s.Quiz.QuestionIndex, a.Option) {
			return s, nil, domain.NewInvalidInputError(fmt.Sprintf("%q is not an option of the current question", a.Option))
		}
	case QuizTextChanged:
		next, err = s.Quiz.SetText(a.Text)
	case QuizSubmitted:
		next, err = s.Quiz.Submit(questions)
	case QuizAdvanced:
		next, err = s.Quiz.Advance(questions)
	case QuizRestarted:
		next, err = s.Quiz.Restart()
	}
	if err != nil {
		if errors.Is(err, session.ErrTransitionNotAllowed) {
			return s, nil, domain.NewInvalidTransitionError(err)
		}
		return s, nil, err
	}
	s.Quiz = next
	return s, nil, nil
}

// optionListed accepts any option when the current question lists none.
func optionListed(questions []domain.QuizQuestion, index int, option string) bool {
	if index < 0 || index >= len(questions) || len(questions[index].Options) == 0 {
		return true
	}
	return slices.Contains(questions[index].Options, option)
}

func decrement(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
