package workspace

import "study-deck/internal/domain"

// Effect describes external work the caller of Reduce must perform.
type Effect interface {
	isEffect()
}

type ExtractContent struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CallGenerator struct {
	Text     string
	Category string
	Owner    string
}

// PersistDeck stores Deck for Owner. DeckSeq identifies the active deck the
// result belongs to.
type PersistDeck struct {
	Owner   string
	Deck    *domain.StudySet
	DeckSeq int64
	Manual  bool
}

type RefreshLibrary struct{ Owner string }

// ExpireSavedIndicator clears the manual save confirmation identified by Seq.
type ExpireSavedIndicator struct{ Seq int64 }

func (ExtractContent) isEffect()       {}
func (CallGenerator) isEffect()        {}
func (PersistDeck) isEffect()          {}
func (RefreshLibrary) isEffect()       {}
func (ExpireSavedIndicator) isEffect() {}
