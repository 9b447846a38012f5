package generator

import (
	"testing"

	"study-deck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = `{
  "summary": "  Cells make up living things. ",
  "flashcards": [
    {"question": "What is a cell?", "answer": "Basic unit of life", "difficulty": "easy"},
    {"question": "Powerhouse?", "answer": "Mitochondria", "difficulty": "HARD"},
    {"question": "   ", "answer": "dropped", "difficulty": "easy"},
    {"question": "Odd difficulty", "answer": "kept", "difficulty": "legendary"}
  ],
  "quiz": {
    "title": "Cell quiz",
    "questions": [
      {"type": "multiple_choice", "question": "Capital of France?", "options": ["Paris", " Rome ", ""], "correct_answer": "Paris"},
      {"type": "multiple_choice", "question": "No answer given", "options": ["a", "b"]},
      {"type": "short_answer", "question": "Define osmosis", "ideal_answer": "Diffusion of water", "options": ["x"]},
      {"type": "essay", "question": "Unknown type"},
      {"type": "short_answer", "question": ""}
    ]
  }
}`

func TestDecode_Sanitizes(t *testing.T) {
	set, err := Decode(validReply)
	require.NoError(t, err)

	assert.Equal(t, "Cells make up living things.", set.Summary)
	require.Len(t, set.Flashcards, 3)
	assert.Equal(t, domain.DifficultyHard, set.Flashcards[1].Difficulty)
	assert.Equal(t, domain.DifficultyMedium, set.Flashcards[2].Difficulty)

	assert.Equal(t, "Cell quiz", set.Quiz.Title)
	require.Len(t, set.Quiz.Questions, 4)
	assert.Equal(t, []string{"Paris", "Rome"}, set.Quiz.Questions[0].Options)
	assert.Empty(t, set.Quiz.Questions[1].CorrectAnswer, "malformed multiple choice is kept")
	assert.Nil(t, set.Quiz.Questions[2].Options)
	assert.Equal(t, domain.QuestionShortAnswer, set.Quiz.Questions[3].Type)
}

func TestDecode_StripsWrapping(t *testing.T) {
	raw := "<think>let me plan the deck</think>\n```json\n" + validReply + "\n```"
	set, err := Decode(raw)
	require.NoError(t, err)
	assert.Len(t, set.Flashcards, 3)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no json", "I could not do that"},
		{"broken json", `{"summary": "x", "flashcards": [}`},
		{"missing quiz", `{"summary": "x", "flashcards": []}`},
		{"wrong type", `{"summary": 3, "flashcards": [], "quiz": {"title": "t", "questions": []}}`},
		{"flashcard missing answer", `{"summary": "x", "flashcards": [{"question": "q", "difficulty": "easy"}], "quiz": {"title": "t", "questions": []}}`},
		{"question missing type", `{"summary": "x", "flashcards": [], "quiz": {"title": "t", "questions": [{"question": "q"}]}}`},
		{"empty material", `{"summary": " ", "flashcards": [], "quiz": {"title": "t", "questions": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Decode(tt.raw)
			assert.Error(t, err)
			assert.Nil(t, set)
		})
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	s := buildGeminiSchema(studySetSchema)
	assert.ElementsMatch(t, []string{"summary", "flashcards", "quiz"}, s.Required)

	card := s.Properties["flashcards"].Items
	require.NotNil(t, card)
	assert.Equal(t, []string{"easy", "medium", "hard"}, card.Properties["difficulty"].Enum)

	question := s.Properties["quiz"].Properties["questions"].Items
	assert.Equal(t, []string{"multiple_choice", "short_answer"}, question.Properties["type"].Enum)
	assert.NotEmpty(t, question.Properties["options"].Description)
}

func TestStripKey(t *testing.T) {
	stripped := stripKey(studySetSchema, "enum")
	card := stripped["properties"].(map[string]any)["flashcards"].(map[string]any)["items"].(map[string]any)
	_, hasEnum := card["properties"].(map[string]any)["difficulty"].(map[string]any)["enum"]
	assert.False(t, hasEnum)

	_, stillThere := studySetSchema["properties"].(map[string]any)["flashcards"].(map[string]any)["items"].(map[string]any)["properties"].(map[string]any)["difficulty"].(map[string]any)["enum"]
	assert.True(t, stillThere)
}
