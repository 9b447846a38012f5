package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashcardSession_Initial(t *testing.T) {
	s := NewFlashcardSession(3)
	assert.Equal(t, 0, s.Position)
	assert.Equal(t, FaceQuestion, s.Face)
}

func TestFlashcardSession_RoundTripResetsFace(t *testing.T) {
	for pos := 1; pos < 4; pos++ {
		s := NewFlashcardSession(5)
		for i := 0; i < pos; i++ {
			s = s.Next()
		}
		s = s.Flip()
		assert.Equal(t, FaceAnswer, s.Face)

		back := s.Next().Previous()
		assert.Equal(t, pos, back.Position)
		assert.Equal(t, FaceQuestion, back.Face)
	}
}

func TestFlashcardSession_DoubleFlip(t *testing.T) {
	states := []FlashcardSession{
		NewFlashcardSession(3),
		NewFlashcardSession(3).Next(),
		NewFlashcardSession(3).Next().Flip(),
	}
	for _, s := range states {
		got := s.Flip().Flip()
		assert.Equal(t, s, got)
	}
}

func TestFlashcardSession_Boundaries(t *testing.T) {
	s := NewFlashcardSession(2).Flip()
	assert.Equal(t, s, s.Previous(), "previous at first card is a no-op")

	last := NewFlashcardSession(2).Next().Flip()
	assert.Equal(t, last, last.Next(), "next at last card is a no-op")
	assert.Equal(t, 1, last.Position)
}

func TestFlashcardSession_Empty(t *testing.T) {
	s := NewFlashcardSession(0)
	assert.True(t, s.Empty())
	assert.Equal(t, s, s.Next())
	assert.Equal(t, s, s.Previous())
	assert.Equal(t, s, s.Flip())
}
