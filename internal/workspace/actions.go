package workspace

import "study-deck/internal/domain"

// Action is a discrete user or system event applied by Reduce.
type Action interface {
	isAction()
}

type InputChanged struct{ Text string }

type CategorySelected struct{ Category string }

// ViewChanged refreshes the library when Owner is set and the view is the dashboard.
type ViewChanged struct {
	View  View
	Owner string
}

type TabChanged struct{ Tab Tab }

type IngestRequested struct {
	Filename    string
	ContentType string
	Data        []byte
}

type IngestSucceeded struct{ Text string }

type IngestFailed struct{ Err error }

// GenerateRequested starts generation for Text. Blank text is ignored.
type GenerateRequested struct {
	Text     string
	Category string
	Owner    string
}

type GenerateSucceeded struct {
	Deck     *domain.StudySet
	Source   string
	Category string
	Owner    string
}

type GenerateFailed struct{ Err error }

type SaveRequested struct{ Owner string }

type SaveSucceeded struct {
	ID        string
	CreatedAt int64
	Owner     string
	Manual    bool
	DeckSeq   int64
}

type SaveFailed struct {
	Err     error
	Manual  bool
	DeckSeq int64
}

type SavedIndicatorExpired struct{ Seq int64 }

type LibraryLoaded struct{ Decks []*domain.StudySet }

type LibraryFailed struct {
	Err          error
	Provisioning bool
}

type DeckOpened struct{ DeckID string }

type FlashcardNext struct{}

type FlashcardPrevious struct{}

type FlashcardFlipped struct{}

type QuizOptionSelected struct{ Option string }

type QuizTextChanged struct{ Text string }

type QuizSubmitted struct{}

type QuizAdvanced struct{}

type QuizRestarted struct{}

func (InputChanged) isAction()          {}
func (CategorySelected) isAction()      {}
func (ViewChanged) isAction()           {}
func (TabChanged) isAction()            {}
func (IngestRequested) isAction()       {}
func (IngestSucceeded) isAction()       {}
func (IngestFailed) isAction()          {}
func (GenerateRequested) isAction()     {}
func (GenerateSucceeded) isAction()     {}
func (GenerateFailed) isAction()        {}
func (SaveRequested) isAction()         {}
func (SaveSucceeded) isAction()         {}
func (SaveFailed) isAction()            {}
func (SavedIndicatorExpired) isAction() {}
func (LibraryLoaded) isAction()         {}
func (LibraryFailed) isAction()         {}
func (DeckOpened) isAction()            {}
func (FlashcardNext) isAction()         {}
func (FlashcardPrevious) isAction()     {}
func (FlashcardFlipped) isAction()      {}
func (QuizOptionSelected) isAction()    {}
func (QuizTextChanged) isAction()       {}
func (QuizSubmitted) isAction()         {}
func (QuizAdvanced) isAction()          {}
func (QuizRestarted) isAction()         {}
