package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"study-deck/internal/domain"
	"study-deck/internal/logger"
	"study-deck/internal/repository/models"
	"study-deck/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/sijms/go-ora/v2/network"
	"go.uber.org/zap"
)

// oraTableMissing is ORA-00942 "table or view does not exist", raised while
// the schema has not been migrated yet.
const oraTableMissing = 942

// provisioningHints are matched when the driver error is not structured.
var provisioningHints = []string{
	"ORA-00942",
	"table or view does not exist",
	"Cloud Firestore API",
}

// sqlxDeckRepository implements domain.DeckStore on Oracle via sqlx.
type sqlxDeckRepository struct {
	db    *sqlx.DB
	now   func() time.Time
	newID func() string
}

func NewSQLXDeckRepository(db *sqlx.DB) domain.DeckStore {
	return &sqlxDeckRepository{db: db, now: time.Now, newID: util.NewULID}
}

// Create always inserts a new row. Repeated saves of the same deck produce
// separate records.
func (r *sqlxDeckRepository) Create(ctx context.Context, ownerID string, deck *domain.StudySet) (string, int64, error) {
	if deck == nil {
		return "", 0, domain.NewInvalidInputError("deck is required")
	}
	row := models.FromDomainDeck(deck)
	row.ID = r.newID()
	row.UserID = ownerID
	row.CreatedAt = r.now().UnixMilli()

	query := `INSERT INTO decks (id, user_id, title, category, summary, flashcards, quiz_title, quiz_questions, created_at)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.UserID, row.Title, row.Category, row.Summary,
		row.Flashcards, row.QuizTitle, row.QuizQuestions, row.CreatedAt,
	)
	if err != nil {
		logger.Get().Error("Failed to insert deck", zap.String("user_id", ownerID), zap.Error(err))
		return "", 0, domain.NewPersistenceError(fmt.Errorf("failed to insert deck: %w", err))
	}
	return row.ID, row.CreatedAt, nil
}

// Query returns the owner's decks newest first.
func (r *sqlxDeckRepository) Query(ctx context.Context, ownerID string) ([]*domain.StudySet, error) {
	var rows []models.Deck
	query := `SELECT id, user_id, title, category, summary, flashcards, quiz_title, quiz_questions, created_at
	          FROM decks WHERE user_id = :1 ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		classified := ClassifyQueryError(err)
		logger.Get().Warn("Failed to query decks",
			zap.String("user_id", ownerID),
			zap.String("code", string(domain.CodeOf(classified))),
			zap.Error(err))
		return nil, classified
	}

	decks := make([]*domain.StudySet, 0, len(rows))
	for i := range rows {
		decks = append(decks, models.ToDomainDeck(&rows[i]))
	}
	SortNewestFirst(decks)
	return decks, nil
}

// ClassifyQueryError separates a store that is still being provisioned from
// any other read failure. Oracle error codes are checked first, then the
// message text.
func ClassifyQueryError(err error) error {
	var oraErr *network.OracleError
	if errors.As(err, &oraErr) && oraErr.ErrCode == oraTableMissing {
		return domain.NewProvisioningError(err)
	}
	msg := err.Error()
	for _, hint := range provisioningHints {
		if strings.Contains(msg, hint) {
			return domain.NewProvisioningError(err)
		}
	}
	return domain.NewQueryError(err)
}

// SortNewestFirst orders by CreatedAt descending, keeping input order on ties.
func SortNewestFirst(decks []*domain.StudySet) {
	slices.SortStableFunc(decks, func(a, b *domain.StudySet) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})
}
