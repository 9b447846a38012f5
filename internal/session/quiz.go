package session

import (
	"strings"

	"study-deck/internal/domain"
)

// QuizSession walks a question list with one submit per question and a
// terminal Finished state. Transitions return a new value and never mutate
// the receiver.
type QuizSession struct {
	QuestionIndex  int     `json:"questionIndex"`
	SelectedOption *string `json:"selectedOption,omitempty"`
	FreeTextAnswer string  `json:"freeTextAnswer"`
	Submitted      bool    `json:"submitted"`
	Score          int     `json:"score"`
	Finished       bool    `json:"finished"`
	// LastCorrect holds the grade of the current question once submitted.
	LastCorrect *bool `json:"lastCorrect,omitempty"`
}

type QuizResults struct {
	Score   int     `json:"score"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func NewQuizSession() QuizSession {
	return QuizSession{}
}

func (s QuizSession) SelectOption(option string) (QuizSession, error) {
	if s.Submitted || s.Finished {
		return s, ErrTransitionNotAllowed
	}
	s.SelectedOption = &option
	return s, nil
}

func (s QuizSession) SetText(text string) (QuizSession, error) {
	if s.Submitted || s.Finished {
		return s, ErrTransitionNotAllowed
	}
	s.FreeTextAnswer = text
	return s, nil
}

// Submit grades the current question. Multiple choice is correct only on an
// exact match with a non-empty correct answer; short answer is always credited.
func (s QuizSession) Submit(questions []domain.QuizQuestion) (QuizSession, error) {
	if s.Submitted || s.Finished || s.QuestionIndex >= len(questions) {
		return s, ErrTransitionNotAllowed
	}
	q := questions[s.QuestionIndex]

	var correct bool
	if q.Type == domain.QuestionMultipleChoice {
		if s.SelectedOption == nil {
			return s, ErrTransitionNotAllowed
		}
		correct = q.CorrectAnswer != "" && *s.SelectedOption == q.CorrectAnswer
	} else {
		if strings.TrimSpace(s.FreeTextAnswer) == "" {
			return s, ErrTransitionNotAllowed
		}
		correct = true
	}

	if correct {
		s.Score++
	}
	s.Submitted = true
	s.LastCorrect = &correct
	return s, nil
}

// Advance moves past a submitted question, finishing after the last one.
func (s QuizSession) Advance(questions []domain.QuizQuestion) (QuizSession, error) {
	if !s.Submitted || s.Finished {
		return s, ErrTransitionNotAllowed
	}
	if s.QuestionIndex >= len(questions)-1 {
		s.Finished = true
		return s, nil
	}
	s.QuestionIndex++
	s.SelectedOption = nil
	s.FreeTextAnswer = ""
	s.Submitted = false
	s.LastCorrect = nil
	return s, nil
}

// Restart is only valid from the results state.
func (s QuizSession) Restart() (QuizSession, error) {
	if !s.Finished {
		return s, ErrTransitionNotAllowed
	}
	return NewQuizSession(), nil
}

func (s QuizSession) Results(total int) QuizResults {
	r := QuizResults{Score: s.Score, Total: total}
	if total > 0 {
		r.Percent = float64(s.Score) / float64(total) * 100
	}
	return r
}
