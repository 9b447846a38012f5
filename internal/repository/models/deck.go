package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"study-deck/internal/domain"
	"study-deck/internal/util"
)

// Deck is a row of the decks table. Flashcards and questions are JSON CLOBs.
// Summary and QuizTitle are nullable: Oracle stores an empty string as NULL.
type Deck struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Title         string         `db:"title"`
	Category      string         `db:"category"`
	Summary       sql.NullString `db:"summary"`
	Flashcards    FlashcardList  `db:"flashcards"`
	QuizTitle     sql.NullString `db:"quiz_title"`
	QuizQuestions QuestionList   `db:"quiz_questions"`
	CreatedAt     int64          `db:"created_at"`
}

type FlashcardList []domain.Flashcard

type QuestionList []domain.QuizQuestion

func (l FlashcardList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalColumn(l)
}

func (l *FlashcardList) Scan(value interface{}) error {
	*l = FlashcardList{}
	return scanColumn(value, (*[]domain.Flashcard)(l))
}

func (l QuestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return marshalColumn(l)
}

func (l *QuestionList) Scan(value interface{}) error {
	*l = QuestionList{}
	return scanColumn(value, (*[]domain.QuizQuestion)(l))
}

func marshalColumn(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// scanColumn treats NULL, "" and "null" as an empty list.
func scanColumn(value interface{}, dest any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("json column Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func ToDomainDeck(d *Deck) *domain.StudySet {
	if d == nil {
		return nil
	}
	return &domain.StudySet{
		ID:         d.ID,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt,
		Title:      d.Title,
		Category:   d.Category,
		Summary:    d.Summary.String,
		Flashcards: []domain.Flashcard(d.Flashcards),
		Quiz: domain.Quiz{
			Title:     d.QuizTitle.String,
			Questions: []domain.QuizQuestion(d.QuizQuestions),
		},
	}
}

func FromDomainDeck(s *domain.StudySet) *Deck {
	if s == nil {
		return nil
	}
	return &Deck{
		ID:            s.ID,
		UserID:        s.UserID,
		Title:         s.Title,
		Category:      s.Category,
		Summary:       util.StringToNullString(s.Summary),
		Flashcards:    FlashcardList(s.Flashcards),
		QuizTitle:     util.StringToNullString(s.Quiz.Title),
		QuizQuestions: QuestionList(s.Quiz.Questions),
		CreatedAt:     s.CreatedAt,
	}
}
