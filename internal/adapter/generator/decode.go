package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"study-deck/internal/domain"
)

var errEmptyStudySet = errors.New("response contains no study material")

// Decode turns a raw model reply into a StudySet. The reply is untrusted:
// reasoning blocks and code fences are stripped, the JSON object is checked
// against the schema, and the result is sanitised.
func Decode(raw string) (*domain.StudySet, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := validationSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var set domain.StudySet
	if err := json.Unmarshal([]byte(body), &set); err != nil {
		return nil, fmt.Errorf("decode study set: %w", err)
	}
	return sanitize(&set)
}

func extractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
		}
	}
	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return cleaned[jsonStart : jsonEnd+1], nil
}

func sanitize(set *domain.StudySet) (*domain.StudySet, error) {
	out := &domain.StudySet{
		Summary:    strings.TrimSpace(set.Summary),
		Flashcards: make([]domain.Flashcard, 0, len(set.Flashcards)),
		Quiz: domain.Quiz{
			Title:     strings.TrimSpace(set.Quiz.Title),
			Questions: make([]domain.QuizQuestion, 0, len(set.Quiz.Questions)),
		},
	}

	for _, card := range set.Flashcards {
		card.Question = strings.TrimSpace(card.Question)
		card.Answer = strings.TrimSpace(card.Answer)
		if card.Question == "" || card.Answer == "" {
			continue
		}
		card.Difficulty = domain.Difficulty(strings.ToLower(strings.TrimSpace(string(card.Difficulty))))
		if !card.Difficulty.Valid() {
			card.Difficulty = domain.DifficultyMedium
		}
		out.Flashcards = append(out.Flashcards, card)
	}

	for _, q := range set.Quiz.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.Type = domain.QuestionType(strings.ToLower(strings.TrimSpace(string(q.Type))))
		if !q.Type.Valid() {
			q.Type = domain.QuestionShortAnswer
		}
		q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
		q.IdealAnswer = strings.TrimSpace(q.IdealAnswer)
		options := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		q.Options = options
		if q.Type == domain.QuestionShortAnswer {
			q.Options = nil
			q.CorrectAnswer = ""
		}
		out.Quiz.Questions = append(out.Quiz.Questions, q)
	}

	if out.Summary == "" && len(out.Flashcards) == 0 && len(out.Quiz.Questions) == 0 {
		return nil, errEmptyStudySet
	}
	return out, nil
}
