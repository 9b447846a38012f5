package session

type Face string

const (
	FaceQuestion Face = "question"
	FaceAnswer   Face = "answer"
)

// FlashcardSession tracks position and shown face over a fixed number of cards.
// It has no terminal state.
type FlashcardSession struct {
	Position int  `json:"position"`
	Face     Face `json:"face"`
	Length   int  `json:"length"`
}

func NewFlashcardSession(length int) FlashcardSession {
	if length < 0 {
		length = 0
	}
	return FlashcardSession{Face: FaceQuestion, Length: length}
}

// Next moves forward one card showing its question. No-op on the last card.
func (s FlashcardSession) Next() FlashcardSession {
	if s.Position < s.Length-1 {
		s.Position++
		s.Face = FaceQuestion
	}
	return s
}

// Previous moves back one card showing its question. No-op on the first card.
func (s FlashcardSession) Previous() FlashcardSession {
	if s.Position > 0 {
		s.Position--
		s.Face = FaceQuestion
	}
	return s
}

// Flip toggles the face. An empty deck is display-only.
func (s FlashcardSession) Flip() FlashcardSession {
	if s.Length == 0 {
		return s
	}
	if s.Face == FaceAnswer {
		s.Face = FaceQuestion
	} else {
		s.Face = FaceAnswer
	}
	return s
}

func (s FlashcardSession) Empty() bool {
	return s.Length == 0
}
