package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// ERRORS
// ==============================================

var (
	ErrDuplicateEntry = errors.New("entry already exists for this contest and phone")
)

const pgUniqueViolation = "23505"

// ==============================================
// ENTRY REPOSITORY
// ==============================================

type EntryRepository struct {
	db *pgxpool.Pool
}

func NewEntryRepository(db *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{db: db}
}

// CreateEntry inserts a new entry. The UNIQUE (contest_id, phone) constraint
// makes the duplicate check and the insert a single atomic step, so
// concurrent submissions from the same user yield exactly one success.
func (r *EntryRepository) CreateEntry(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO entries (id, contest_id, phone, entered_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.ContestID,
		entry.Phone,
		entry.EnteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// ListEntriesByContest returns the full entry set for one contest. Winner
// selection draws from this snapshot.
func (r *EntryRepository) ListEntriesByContest(ctx context.Context, contestID int64) ([]models.Entry, error) {
	query := `
		SELECT id, contest_id, phone, entered_at
		FROM entries
		WHERE contest_id = $1
		ORDER BY entered_at
	`

	rows, err := r.db.Query(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.ContestID, &e.Phone, &e.EnteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListEntriesByPhone returns a user's entries with contest names attached
func (r *EntryRepository) ListEntriesByPhone(ctx context.Context, phone string) ([]models.EntryWithContest, error) {
	query := `
		SELECT e.id, e.contest_id, e.phone, e.entered_at, c.name
		FROM entries e
		JOIN contests c ON c.id = e.contest_id
		WHERE e.phone = $1
		ORDER BY e.entered_at DESC
	`

	rows, err := r.db.Query(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for phone: %w", err)
	}
	defer rows.Close()

	var entries []models.EntryWithContest
	for rows.Next() {
		var e models.EntryWithContest
		if err := rows.Scan(&e.ID, &e.ContestID, &e.Phone, &e.EnteredAt, &e.ContestName); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
