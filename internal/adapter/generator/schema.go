package generator

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// studySetSchema is the response shape requested from the model.
var studySetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"summary": map[string]any{
			"type":        "string",
			"description": "A fun and engaging summary of the key ideas.",
		},
		"flashcards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question":   map[string]any{"type": "string"},
					"answer":     map[string]any{"type": "string"},
					"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				},
				"required": []any{"question", "answer", "difficulty"},
			},
		},
		"quiz": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"type":     map[string]any{"type": "string", "enum": []any{"multiple_choice", "short_answer"}},
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"description": "Array of 4 options if type is multiple_choice",
							},
							"correct_answer": map[string]any{
								"type":        "string",
								"description": "The correct option string if type is multiple_choice",
							},
							"ideal_answer": map[string]any{
								"type":        "string",
								"description": "The model answer if type is short_answer",
							},
						},
						"required": []any{"type", "question"},
					},
				},
			},
			"required": []any{"title", "questions"},
		},
	},
	"required": []any{"summary", "flashcards", "quiz"},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validationSchema compiles studySetSchema without enum constraints. Enum
// values are normalised during decode instead of failing the whole set.
func validationSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		defBytes, err := json.Marshal(stripKey(studySetSchema, "enum"))
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://study_set.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

func stripKey(def map[string]any, key string) map[string]any {
	out := make(map[string]any, len(def))
	for k, v := range def {
		if k == key {
			continue
		}
		switch v := v.(type) {
		case map[string]any:
			out[k] = stripKey(v, key)
		default:
			out[k] = v
		}
	}
	return out
}
