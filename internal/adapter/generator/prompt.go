package generator

import "fmt"

const studyPrompt = `
You are 'Cultists', a fun and engaging AI study buddy.
Analyze the following study material and generate a study set.
The user has selected the category: "%s".
Tailor the tone and examples to this category, but keep it accurate for university-level study.

Content to analyze:
"%s"

Tasks:
1. Create a summary that is easy to understand.
2. Generate flashcards with varying difficulty.
3. Create a quiz with a mix of multiple choice and short answer questions.

Output strictly in the requested JSON format.
`

// jsonShapeHint is appended for backends without native response schemas.
const jsonShapeHint = `
Respond with ONLY a JSON object in the following format:
{
  "summary": "string",
  "flashcards": [{"question": "string", "answer": "string", "difficulty": "easy|medium|hard"}],
  "quiz": {
    "title": "string",
    "questions": [
      {"type": "multiple_choice", "question": "string", "options": ["a", "b", "c", "d"], "correct_answer": "one of options"},
      {"type": "short_answer", "question": "string", "ideal_answer": "string"}
    ]
  }
}
`

func buildPrompt(text, category string) string {
	return fmt.Sprintf(studyPrompt, category, text)
}
