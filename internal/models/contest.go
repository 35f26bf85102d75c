package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ==============================================
// CONTEST MODEL
// ==============================================

type Contest struct {
	ID               int64         `db:"id"`
	Name             string        `db:"name"`
	Description      string        `db:"description"`
	Location         string        `db:"location"`
	Latitude         float64       `db:"latitude"`
	Longitude        float64       `db:"longitude"`
	StartTime        time.Time     `db:"start_time"` // UTC
	EndTime          time.Time     `db:"end_time"`   // UTC
	PrizeDescription string        `db:"prize_description"`
	Active           bool          `db:"active"`
	OfficialRules    OfficialRules `db:"-"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// OfficialRules holds the legally-required disclosure fields for a contest.
// All fields except TermsURL are mandatory at creation time.
type OfficialRules struct {
	ID              int64       `db:"id"`
	ContestID       int64       `db:"contest_id"`
	EligibilityText string      `db:"eligibility_text"`
	SponsorName     string      `db:"sponsor_name"`
	StartDate       time.Time   `db:"start_date"` // UTC
	EndDate         time.Time   `db:"end_date"`   // UTC
	PrizeValueUSD   float64     `db:"prize_value_usd"`
	TermsURL        pgtype.Text `db:"terms_url"` // optional
}

// ==============================================
// ELIGIBILITY STATE MACHINE
// ==============================================

type ContestState string

const (
	StateNotStarted ContestState = "not_started"
	StateActive     ContestState = "active"
	StateEnded      ContestState = "ended"
	StateInactive   ContestState = "inactive"
)

// State derives the contest's eligibility phase from its own fields and the
// supplied instant. The inactive flag dominates the time window. Re-evaluated
// on every call; nothing is persisted.
func (c *Contest) State(now time.Time) ContestState {
	if !c.Active {
		return StateInactive
	}
	if now.Before(c.StartTime) {
		return StateNotStarted
	}
	if now.Before(c.EndTime) {
		return StateActive
	}
	return StateEnded
}

// CanEnter reports whether entries are accepted at the given instant.
// Entries are accepted in [StartTime, EndTime) while the contest is active.
func (c *Contest) CanEnter(now time.Time) bool {
	return c.State(now) == StateActive
}

// CanSelectWinner reports whether a winner draw is permitted. Draws are only
// permitted once the contest has ended.
func (c *Contest) CanSelectWinner(now time.Time) bool {
	return c.State(now) == StateEnded
}

// ==============================================
// ENTRY MODEL
// ==============================================

// Entry records a single user's participation in a contest. At most one entry
// exists per (contest, phone) pair; entries are never mutated once created.
type Entry struct {
	ID        uuid.UUID `db:"id"`
	ContestID int64     `db:"contest_id"`
	Phone     string    `db:"phone"` // normalized
	EnteredAt time.Time `db:"entered_at"`
}

// EntryWithContest pairs an entry with its contest name for user listings
type EntryWithContest struct {
	Entry
	ContestName string `db:"contest_name"`
}

// ContestWithEntryCount pairs a contest with its entry total for admin listings
type ContestWithEntryCount struct {
	Contest
	EntryCount int64 `db:"entry_count"`
}

// ==============================================
// WINNER SELECTION RESULT
// ==============================================

// WinnerSelectionResult is the outcome of one winner draw. A draw over zero
// entries is a normal outcome with Success=false, not an error.
type WinnerSelectionResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalEntries  int    `json:"total_entries"`
	SelectedEntry *Entry `json:"selected_entry,omitempty"`
}
