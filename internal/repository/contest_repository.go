package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// ERRORS
// ==============================================

var (
	ErrContestNotFound = errors.New("contest not found")
)

// ==============================================
// CONTEST REPOSITORY
// ==============================================

type ContestRepository struct {
	db *pgxpool.Pool
}

func NewContestRepository(db *pgxpool.Pool) *ContestRepository {
	return &ContestRepository{db: db}
}

// ==============================================
// CREATE
// ==============================================

// CreateContest inserts the contest and its official rules in one transaction
func (r *ContestRepository) CreateContest(ctx context.Context, contest *models.Contest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO contests (
			name, description, location, latitude, longitude,
			start_time, end_time, prize_description, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	row := tx.QueryRow(ctx, query,
		contest.Name,
		contest.Description,
		contest.Location,
		contest.Latitude,
		contest.Longitude,
		contest.StartTime,
		contest.EndTime,
		contest.PrizeDescription,
		contest.Active,
	)
	if err := row.Scan(&contest.ID, &contest.CreatedAt, &contest.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}

	rulesQuery := `
		INSERT INTO official_rules (
			contest_id, eligibility_text, sponsor_name, start_date, end_date,
			prize_value_usd, terms_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	rules := &contest.OfficialRules
	row = tx.QueryRow(ctx, rulesQuery,
		contest.ID,
		rules.EligibilityText,
		rules.SponsorName,
		rules.StartDate,
		rules.EndDate,
		rules.PrizeValueUSD,
		rules.TermsURL,
	)
	if err := row.Scan(&rules.ID); err != nil {
		return fmt.Errorf("failed to create official rules: %w", err)
	}
	rules.ContestID = contest.ID

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit contest creation: %w", err)
	}

	return nil
}

// ==============================================
// GET
// ==============================================

func (r *ContestRepository) GetContestByID(ctx context.Context, id int64) (*models.Contest, error) {
	query := `
		SELECT c.id, c.name, c.description, c.location, c.latitude, c.longitude,
		       c.start_time, c.end_time, c.prize_description, c.active,
		       c.created_at, c.updated_at,
		       r.id, r.contest_id, r.eligibility_text, r.sponsor_name,
		       r.start_date, r.end_date, r.prize_value_usd, r.terms_url
		FROM contests c
		JOIN official_rules r ON r.contest_id = c.id
		WHERE c.id = $1
	`

	var c models.Contest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Location, &c.Latitude, &c.Longitude,
		&c.StartTime, &c.EndTime, &c.PrizeDescription, &c.Active,
		&c.CreatedAt, &c.UpdatedAt,
		&c.OfficialRules.ID, &c.OfficialRules.ContestID,
		&c.OfficialRules.EligibilityText, &c.OfficialRules.SponsorName,
		&c.OfficialRules.StartDate, &c.OfficialRules.EndDate,
		&c.OfficialRules.PrizeValueUSD, &c.OfficialRules.TermsURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}

	return &c, nil
}

// ==============================================
// UPDATE
// ==============================================

// UpdateContest writes back a fully merged contest record. Partial-merge
// semantics live in the service layer; this persists the merged result.
func (r *ContestRepository) UpdateContest(ctx context.Context, contest *models.Contest) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE contests
		SET name = $2, description = $3, location = $4, latitude = $5,
		    longitude = $6, start_time = $7, end_time = $8,
		    prize_description = $9, active = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		contest.ID,
		contest.Name,
		contest.Description,
		contest.Location,
		contest.Latitude,
		contest.Longitude,
		contest.StartTime,
		contest.EndTime,
		contest.PrizeDescription,
		contest.Active,
		contest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrContestNotFound
	}

	rulesQuery := `
		UPDATE official_rules
		SET eligibility_text = $2, sponsor_name = $3, start_date = $4,
		    end_date = $5, prize_value_usd = $6, terms_url = $7
		WHERE contest_id = $1
	`

	rules := &contest.OfficialRules
	_, err = tx.Exec(ctx, rulesQuery,
		contest.ID,
		rules.EligibilityText,
		rules.SponsorName,
		rules.StartDate,
		rules.EndDate,
		rules.PrizeValueUSD,
		rules.TermsURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update official rules: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit contest update: %w", err)
	}

	return nil
}

// ==============================================
// LISTINGS
// ==============================================

// ListActiveContests returns contests accepting entries at the given instant
func (r *ContestRepository) ListActiveContests(ctx context.Context, now time.Time) ([]models.Contest, error) {
	query := `
		SELECT id, name, description, location, latitude, longitude,
		       start_time, end_time, prize_description, active,
		       created_at, updated_at
		FROM contests
		WHERE active = TRUE AND start_time <= $1 AND end_time > $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list active contests: %w", err)
	}
	defer rows.Close()

	return scanContests(rows)
}

// ListContestsWithEntryCounts returns every contest with its entry total,
// newest first. Admin listing.
func (r *ContestRepository) ListContestsWithEntryCounts(ctx context.Context) ([]models.ContestWithEntryCount, error) {
	query := `
		SELECT c.id, c.name, c.description, c.location, c.latitude, c.longitude,
		       c.start_time, c.end_time, c.prize_description, c.active,
		       c.created_at, c.updated_at,
		       COUNT(e.id) AS entry_count
		FROM contests c
		LEFT JOIN entries e ON e.contest_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	defer rows.Close()

	var contests []models.ContestWithEntryCount
	for rows.Next() {
		var c models.ContestWithEntryCount
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Location, &c.Latitude, &c.Longitude,
			&c.StartTime, &c.EndTime, &c.PrizeDescription, &c.Active,
			&c.CreatedAt, &c.UpdatedAt,
			&c.EntryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest row: %w", err)
		}
		contests = append(contests, c)
	}

	return contests, rows.Err()
}

func scanContests(rows pgx.Rows) ([]models.Contest, error) {
	var contests []models.Contest
	for rows.Next() {
		var c models.Contest
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Location, &c.Latitude, &c.Longitude,
			&c.StartTime, &c.EndTime, &c.PrizeDescription, &c.Active,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contest row: %w", err)
		}
		contests = append(contests, c)
	}

	return contests, rows.Err()
}
