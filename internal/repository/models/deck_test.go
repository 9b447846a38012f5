package models

import (
	"testing"

	"study-deck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashcardList_ValueScan(t *testing.T) {
	v, err := FlashcardList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	list := FlashcardList{{Question: "q", Answer: "a", Difficulty: domain.DifficultyHard}}
	v, err = list.Value()
	require.NoError(t, err)

	var scanned FlashcardList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, list, scanned)

	for _, empty := range []interface{}{nil, "", "null", []byte("")} {
		var l FlashcardList
		assert.NoError(t, l.Scan(empty))
		assert.NotNil(t, l)
		assert.Empty(t, l)
	}

	var bad FlashcardList
	assert.Error(t, bad.Scan(42))
}

func TestQuestionList_Scan(t *testing.T) {
	var l QuestionList
	require.NoError(t, l.Scan([]byte(`[{"type":"multiple_choice","question":"q","options":["a","b"],"correct_answer":"a"}]`)))
	require.Len(t, l, 1)
	assert.Equal(t, "a", l[0].CorrectAnswer)
	assert.Error(t, l.Scan("{not json"))
}

func TestDeckConversion(t *testing.T) {
	set := &domain.StudySet{
		ID: "01J", UserID: "u1", CreatedAt: 1700000000000, Title: "Cells", Category: "Medicine & Biology",
		Summary:    "summary",
		Flashcards: []domain.Flashcard{{Question: "q", Answer: "a", Difficulty: domain.DifficultyEasy}},
		Quiz:       domain.Quiz{Title: "quiz", Questions: []domain.QuizQuestion{{Type: domain.QuestionShortAnswer, Question: "why"}}},
	}
	assert.Equal(t, set, ToDomainDeck(FromDomainDeck(set)))
	assert.Nil(t, ToDomainDeck(nil))

	row := FromDomainDeck(&domain.StudySet{Title: "Cells"})
	assert.False(t, row.Summary.Valid)
	assert.False(t, row.QuizTitle.Valid)
	back := ToDomainDeck(row)
	assert.Empty(t, back.Summary)
	assert.Empty(t, back.Quiz.Title)
	assert.Nil(t, FromDomainDeck(nil))
}
