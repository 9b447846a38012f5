package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study-deck/internal/domain"
	"study-deck/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainGenerator drives any langchaingo model (ollama, openai) with a
// JSON-only prompt and decodes the reply.
type LangchainGenerator struct {
	llm         llms.Model
	name        string
	temperature float64
	timeout     time.Duration
}

func NewLangchainGenerator(llm llms.Model, name string, temperature float64, timeout time.Duration) *LangchainGenerator {
	return &LangchainGenerator{llm: llm, name: name, temperature: temperature, timeout: timeout}
}

func (g *LangchainGenerator) Generate(ctx context.Context, text, category string) (*domain.StudySet, error) {
	l := logger.Get()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := buildPrompt(text, category) + jsonShapeHint
	l.Debug("Calling LLM for study set", zap.String("provider", g.name), zap.String("category", category))

	raw, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			l.Error("LLM request timed out", zap.String("provider", g.name), zap.Error(err))
			return nil, domain.NewGenerationError(fmt.Errorf("LLM request timed out: %w", err))
		}
		l.Error("Failed to get response from LLM", zap.String("provider", g.name), zap.Error(err))
		return nil, domain.NewGenerationError(fmt.Errorf("LLM call failed: %w", err))
	}

	set, err := Decode(raw)
	if err != nil {
		l.Warn("Rejected LLM response", zap.String("provider", g.name), zap.Error(err))
		return nil, domain.NewGenerationError(err)
	}
	return set, nil
}
