package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"study-deck/internal/domain"
	"study-deck/internal/logger"
	"study-deck/internal/workspace"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSavedIndicatorWindow = 3 * time.Second
	DefaultAutoSaveTimeout      = 30 * time.Second

	recordTimeout = 5 * time.Second
)

// GenerationPipeline runs extraction, generation and persistence for a
// workspace. Every outcome is recorded in the workspace state as well as
// returned to the caller.
type GenerationPipeline interface {
	State(ctx context.Context, sessionKey string) (workspace.State, error)
	// Dispatch applies a user action that needs no external call.
	Dispatch(ctx context.Context, sessionKey string, action workspace.Action) (workspace.State, error)

	SetInput(ctx context.Context, sessionKey, text string) (workspace.State, error)
	SelectCategory(ctx context.Context, sessionKey, category string) (workspace.State, error)
	SetView(ctx context.Context, sessionKey, ownerID string, view workspace.View) (workspace.State, error)
	SetTab(ctx context.Context, sessionKey string, tab workspace.Tab) (workspace.State, error)
	OpenDeck(ctx context.Context, sessionKey, deckID string) (workspace.State, error)

	// Generate returns (nil, nil) for blank text without calling the generator.
	Generate(ctx context.Context, sessionKey, ownerID, sourceText, category string) (*domain.StudySet, error)
	// ManualSave issues a new create for the active deck on every call.
	ManualSave(ctx context.Context, sessionKey, ownerID string) (*domain.StudySet, error)
	ListDecks(ctx context.Context, sessionKey, ownerID string) ([]*domain.StudySet, error)
	// Ingest appends the extracted text to the workspace input.
	Ingest(ctx context.Context, sessionKey, filename, contentType string, data []byte) (string, error)

	// Wait blocks until background saves and library refreshes finish and
	// cancels pending indicator timers.
	Wait()
}

type PipelineConfig struct {
	SavedIndicatorWindow time.Duration
	AutoSaveTimeout      time.Duration
}

type generationPipeline struct {
	extractor domain.ContentExtractor
	generator domain.MaterialGenerator
	decks     domain.DeckStore
	store     WorkspaceStore
	cfg       PipelineConfig

	locks   *keyedMutex
	listing singleflight.Group
	wg      sync.WaitGroup

	timersMu sync.Mutex
	timers   map[*time.Timer]struct{}
	// afterFunc is time.AfterFunc outside tests.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewGenerationPipeline(
	extractor domain.ContentExtractor,
	generator domain.MaterialGenerator,
	decks domain.DeckStore,
	store WorkspaceStore,
	cfg PipelineConfig,
) GenerationPipeline {
	if cfg.SavedIndicatorWindow <= 0 {
		cfg.SavedIndicatorWindow = DefaultSavedIndicatorWindow
	}
	if cfg.AutoSaveTimeout <= 0 {
		cfg.AutoSaveTimeout = DefaultAutoSaveTimeout
	}
	return &generationPipeline{
		extractor: extractor,
		generator: generator,
		decks:     decks,
		store:     store,
		cfg:       cfg,
		locks:     newKeyedMutex(),
		timers:    make(map[*time.Timer]struct{}),
		afterFunc: time.AfterFunc,
	}
}

// apply runs one reducer step under the session lock and persists the result.
func (p *generationPipeline) apply(ctx context.Context, sessionKey string, action workspace.Action) (workspace.State, []workspace.Effect, error) {
	unlock := p.locks.Lock(sessionKey)
	defer unlock()

	state, err := p.store.Load(ctx, sessionKey)
	if err != nil {
		return workspace.State{}, nil, err
	}
	next, effects, err := workspace.Reduce(state, action)
	if err != nil {
		return state, nil, err
	}
	if err := p.store.Save(ctx, sessionKey, next); err != nil {
		return state, nil, err
	}
	return next, effects, nil
}

// record applies a completion action whose failure must not mask the
// operation's own result. It runs even when the request context is done so
// the busy flags set by the matching request are always cleared.
func (p *generationPipeline) record(ctx context.Context, sessionKey string, action workspace.Action) (workspace.State, []workspace.Effect) {
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	state, effects, err := p.apply(recCtx, sessionKey, action)
	if err != nil {
		logger.Get().Error("Failed to record pipeline outcome",
			zap.String("session", sessionKey),
			zap.String("action", fmt.Sprintf("%T", action)),
			zap.Error(err))
	}
	return state, effects
}

func (p *generationPipeline) State(ctx context.Context, sessionKey string) (workspace.State, error) {
	return p.store.Load(ctx, sessionKey)
}

func (p *generationPipeline) Dispatch(ctx context.Context, sessionKey string, action workspace.Action) (workspace.State, error) {
	if !userAction(action) {
		return workspace.State{}, domain.NewInvalidInputError(fmt.Sprintf("action %T cannot be dispatched directly", action))
	}
	state, effects, err := p.apply(ctx, sessionKey, action)
	if err != nil {
		return state, err
	}
	p.runBackground(ctx, sessionKey, effects)
	return state, nil
}

func userAction(action workspace.Action) bool {
	switch action.(type) {
	case workspace.InputChanged, workspace.CategorySelected, workspace.ViewChanged, workspace.TabChanged,
		workspace.DeckOpened,
		workspace.FlashcardNext, workspace.FlashcardPrevious, workspace.FlashcardFlipped,
		workspace.QuizOptionSelected, workspace.QuizTextChanged, workspace.QuizSubmitted,
		workspace.QuizAdvanced, workspace.QuizRestarted:
		return true
	}
	return false
}

func (p *generationPipeline) SetInput(ctx context.Context, sessionKey, text string) (workspace.State, error) {
	return p.Dispatch(ctx, sessionKey, workspace.InputChanged{Text: text})
}

func (p *generationPipeline) SelectCategory(ctx context.Context, sessionKey, category string) (workspace.State, error) {
	return p.Dispatch(ctx, sessionKey, workspace.CategorySelected{Category: category})
}

func (p *generationPipeline) SetView(ctx context.Context, sessionKey, ownerID string, view workspace.View) (workspace.State, error) {
	return p.Dispatch(ctx, sessionKey, workspace.ViewChanged{View: view, Owner: ownerID})
}

func (p *generationPipeline) SetTab(ctx context.Context, sessionKey string, tab workspace.Tab) (workspace.State, error) {
	return p.Dispatch(ctx, sessionKey, workspace.TabChanged{Tab: tab})
}

func (p *generationPipeline) OpenDeck(ctx context.Context, sessionKey, deckID string) (workspace.State, error) {
	return p.Dispatch(ctx, sessionKey, workspace.DeckOpened{DeckID: deckID})
}

func (p *generationPipeline) Generate(ctx context.Context, sessionKey, ownerID, sourceText, category string) (*domain.StudySet, error) {
	l := logger.Get()
	_, effects, err := p.apply(ctx, sessionKey, workspace.GenerateRequested{Text: sourceText, Category: category, Owner: ownerID})
	if err != nil {
		return nil, err
	}
	call, ok := findEffect[workspace.CallGenerator](effects)
	if !ok {
		return nil, nil
	}

	start := time.Now()
	deck, genErr := guard("generator", func() (*domain.StudySet, error) {
		return p.generator.Generate(ctx, call.Text, call.Category)
	})
	if genErr == nil && deck == nil {
		genErr = errors.New("generator returned no study set")
	}
	if genErr != nil {
		l.Error("Study set generation failed",
			zap.String("session", sessionKey),
			zap.String("category", call.Category),
			zap.Error(genErr))
		p.record(ctx, sessionKey, workspace.GenerateFailed{Err: genErr})
		if domain.IsCode(genErr, domain.ErrGenerationFailed) {
			return nil, genErr
		}
		return nil, domain.NewGenerationError(genErr)
	}

	state, effects := p.record(ctx, sessionKey, workspace.GenerateSucceeded{
		Deck:     deck,
		Source:   call.Text,
		Category: call.Category,
		Owner:    call.Owner,
	})
	l.Info("Study set generated",
		zap.String("session", sessionKey),
		zap.String("category", call.Category),
		zap.Int("flashcards", len(deck.Flashcards)),
		zap.Int("questions", len(deck.Quiz.Questions)),
		zap.Duration("latency", time.Since(start)))

	p.runBackground(ctx, sessionKey, effects)
	if state.ActiveDeck == nil {
		return nil, domain.NewInternalError("generated deck was not recorded", nil)
	}
	return state.ActiveDeck.Clone(), nil
}

func (p *generationPipeline) ManualSave(ctx context.Context, sessionKey, ownerID string) (*domain.StudySet, error) {
	_, effects, err := p.apply(ctx, sessionKey, workspace.SaveRequested{Owner: ownerID})
	if err != nil {
		return nil, err
	}
	persist, ok := findEffect[workspace.PersistDeck](effects)
	if !ok {
		return nil, domain.NewInternalError("save produced no persistence request", nil)
	}
	return p.persist(ctx, sessionKey, persist)
}

// persist performs one create call and records its outcome.
func (p *generationPipeline) persist(ctx context.Context, sessionKey string, req workspace.PersistDeck) (*domain.StudySet, error) {
	l := logger.Get()
	type created struct {
		id        string
		createdAt int64
	}
	res, err := guard("deck store", func() (created, error) {
		id, createdAt, err := p.decks.Create(ctx, req.Owner, req.Deck)
		return created{id, createdAt}, err
	})
	id, createdAt := res.id, res.createdAt
	if err != nil {
		l.Warn("Could not save deck",
			zap.String("session", sessionKey),
			zap.Bool("manual", req.Manual),
			zap.Error(err))
		p.record(ctx, sessionKey, workspace.SaveFailed{Err: err, Manual: req.Manual, DeckSeq: req.DeckSeq})
		if domain.IsCode(err, domain.ErrPersistenceFailed) {
			return nil, err
		}
		return nil, domain.NewPersistenceError(err)
	}

	state, effects := p.record(ctx, sessionKey, workspace.SaveSucceeded{
		ID:        id,
		CreatedAt: createdAt,
		Owner:     req.Owner,
		Manual:    req.Manual,
		DeckSeq:   req.DeckSeq,
	})
	l.Info("Deck saved",
		zap.String("session", sessionKey),
		zap.String("deck_id", id),
		zap.Bool("manual", req.Manual))
	p.runBackground(ctx, sessionKey, effects)

	if state.ActiveDeck != nil && state.DeckSeq == req.DeckSeq {
		return state.ActiveDeck.Clone(), nil
	}
	saved := req.Deck.Clone()
	saved.ID, saved.CreatedAt, saved.UserID = id, createdAt, req.Owner
	return saved, nil
}

func (p *generationPipeline) ListDecks(ctx context.Context, sessionKey, ownerID string) ([]*domain.StudySet, error) {
	if ownerID == "" {
		return nil, domain.NewUnauthorizedError("Sign in to see your decks")
	}
	v, err, shared := p.listing.Do(ownerID, func() (interface{}, error) {
		return p.decks.Query(ctx, ownerID)
	})
	if err != nil {
		provisioning := domain.IsCode(err, domain.ErrBackendProvisioning)
		p.record(ctx, sessionKey, workspace.LibraryFailed{Err: err, Provisioning: provisioning})
		if domain.CodeOf(err) == "" {
			return nil, domain.NewQueryError(err)
		}
		return nil, err
	}

	decks, _ := v.([]*domain.StudySet)
	logger.Get().Debug("Library loaded",
		zap.String("session", sessionKey),
		zap.Int("decks", len(decks)),
		zap.Bool("shared", shared))
	p.record(ctx, sessionKey, workspace.LibraryLoaded{Decks: decks})
	return decks, nil
}

func (p *generationPipeline) Ingest(ctx context.Context, sessionKey, filename, contentType string, data []byte) (string, error) {
	_, effects, err := p.apply(ctx, sessionKey, workspace.IngestRequested{Filename: filename, ContentType: contentType, Data: data})
	if err != nil {
		return "", err
	}
	extract, ok := findEffect[workspace.ExtractContent](effects)
	if !ok {
		return "", domain.NewInternalError("ingest produced no extraction request", nil)
	}

	text, err := guard("extractor", func() (string, error) {
		return p.extractor.Extract(ctx, extract.Filename, extract.ContentType, extract.Data)
	})
	if err != nil {
		logger.Get().Warn("Failed to read uploaded file",
			zap.String("session", sessionKey),
			zap.String("filename", filename),
			zap.Error(err))
		p.record(ctx, sessionKey, workspace.IngestFailed{Err: err})
		if domain.CodeOf(err) == "" {
			return "", domain.NewExtractionError(err)
		}
		return "", err
	}

	p.record(ctx, sessionKey, workspace.IngestSucceeded{Text: text})
	return text, nil
}

// runBackground executes the effects that never block the caller.
func (p *generationPipeline) runBackground(ctx context.Context, sessionKey string, effects []workspace.Effect) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case workspace.PersistDeck:
			p.goDetached(ctx, p.cfg.AutoSaveTimeout, func(ctx context.Context) {
				_, _ = p.persist(ctx, sessionKey, eff)
			})
		case workspace.RefreshLibrary:
			p.goDetached(ctx, p.cfg.AutoSaveTimeout, func(ctx context.Context) {
				if _, err := p.ListDecks(ctx, sessionKey, eff.Owner); err != nil {
					logger.Get().Warn("Background library refresh failed", zap.String("session", sessionKey), zap.Error(err))
				}
			})
		case workspace.ExpireSavedIndicator:
			p.scheduleExpiry(sessionKey, eff.Seq)
		default:
			logger.Get().Error("Unexpected background effect", zap.String("effect", fmt.Sprintf("%T", eff)))
		}
	}
}

// goDetached runs fn after the request returns, bounded by timeout.
func (p *generationPipeline) goDetached(ctx context.Context, timeout time.Duration, fn func(ctx context.Context)) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		fn(bgCtx)
	}()
}

func (p *generationPipeline) scheduleExpiry(sessionKey string, seq int64) {
	p.timersMu.Lock()
	defer p.timersMu.Unlock()

	var timer *time.Timer
	timer = p.afterFunc(p.cfg.SavedIndicatorWindow, func() {
		p.timersMu.Lock()
		delete(p.timers, timer)
		p.timersMu.Unlock()

		p.record(context.Background(), sessionKey, workspace.SavedIndicatorExpired{Seq: seq})
	})
	p.timers[timer] = struct{}{}
}

func (p *generationPipeline) Wait() {
	p.wg.Wait()
	p.timersMu.Lock()
	for timer := range p.timers {
		timer.Stop()
		delete(p.timers, timer)
	}
	p.timersMu.Unlock()
}

// guard turns a panic in an external call into an error so the failure
// action for the pending request is still recorded.
func guard[T any](name string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Error("Recovered panic in external call",
				zap.String("call", name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			var zero T
			v, err = zero, fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}

func findEffect[T workspace.Effect](effects []workspace.Effect) (T, bool) {
	for _, eff := range effects {
		if v, ok := eff.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
