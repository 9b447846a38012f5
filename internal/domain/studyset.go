package domain

import (
	"strings"
	"unicode/utf8"
)

// DefaultDeckTitle labels a deck whose source text has no usable first line.
const DefaultDeckTitle = "New Deck"

const maxTitleRunes = 30

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionShortAnswer    QuestionType = "short_answer"
)

func (q QuestionType) Valid() bool {
	return q == QuestionMultipleChoice || q == QuestionShortAnswer
}

// StudySet is one generated deck: a summary, flashcards in study order and a quiz.
// ID, UserID and CreatedAt stay empty until the deck is persisted.
type StudySet struct {
	ID         string      `json:"id,omitempty" db:"id"`
	UserID     string      `json:"userId,omitempty" db:"user_id"`
	CreatedAt  int64       `json:"createdAt,omitempty" db:"created_at"`
	Title      string      `json:"title"`
	Category   string      `json:"category"`
	Summary    string      `json:"summary"`
	Flashcards []Flashcard `json:"flashcards"`
	Quiz       Quiz        `json:"quiz"`
}

type Flashcard struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

type Quiz struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is a tagged union over Type. Options and CorrectAnswer apply to
// multiple choice; IdealAnswer to short answer and is never graded.
type QuizQuestion struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	IdealAnswer   string       `json:"ideal_answer,omitempty"`
}

// Clone returns a deep copy so callers can hand out decks without sharing slices.
func (s *StudySet) Clone() *StudySet {
	if s == nil {
		return nil
	}
	out := *s
	out.Flashcards = append([]Flashcard(nil), s.Flashcards...)
	out.Quiz.Questions = make([]QuizQuestion, len(s.Quiz.Questions))
	for i, q := range s.Quiz.Questions {
		q.Options = append([]string(nil), q.Options...)
		out.Quiz.Questions[i] = q
	}
	if s.Quiz.Questions == nil {
		out.Quiz.Questions = nil
	}
	return &out
}

// DeriveTitle takes the first newline-delimited line of source, cut to 30 runes.
func DeriveTitle(source string) string {
	line, _, _ := strings.Cut(source, "\n")
	if utf8.RuneCountInString(line) > maxTitleRunes {
		line = string([]rune(line)[:maxTitleRunes])
	}
	if strings.TrimSpace(line) == "" {
		return DefaultDeckTitle
	}
	return line
}
