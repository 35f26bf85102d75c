package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/clock"
	"github.com/contestlet/contestlet/internal/geo"
	"github.com/contestlet/contestlet/internal/models"
	"github.com/contestlet/contestlet/internal/repository"
)

// ==============================================
// REPOSITORY INTERFACES (for testing)
// ==============================================

type ContestRepositoryInterface interface {
	CreateContest(ctx context.Context, contest *models.Contest) error
	GetContestByID(ctx context.Context, id int64) (*models.Contest, error)
	UpdateContest(ctx context.Context, contest *models.Contest) error
	ListActiveContests(ctx context.Context, now time.Time) ([]models.Contest, error)
	ListContestsWithEntryCounts(ctx context.Context) ([]models.ContestWithEntryCount, error)
}

type EntryRepositoryInterface interface {
	CreateEntry(ctx context.Context, entry *models.Entry) error
	ListEntriesByContest(ctx context.Context, contestID int64) ([]models.Entry, error)
	ListEntriesByPhone(ctx context.Context, phone string) ([]models.EntryWithContest, error)
}

// ==============================================
// CONTEST SERVICE
// ==============================================

type ContestService struct {
	contests           ContestRepositoryInterface
	entries            EntryRepositoryInterface
	clock              clock.Clock
	defaultRadiusMiles float64
	pick               Picker
}

func NewContestService(
	contests ContestRepositoryInterface,
	entries EntryRepositoryInterface,
	clk clock.Clock,
	defaultRadiusMiles float64,
	pick Picker,
) *ContestService {
	return &ContestService{
		contests:           contests,
		entries:            entries,
		clock:              clk,
		defaultRadiusMiles: defaultRadiusMiles,
		pick:               pick,
	}
}

// ==============================================
// CREATE CONTEST (ADMIN)
// ==============================================

func (s *ContestService) CreateContest(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error) {
	// 1. Compliance validation fully precedes any mutation
	if err := ValidateOfficialRules(req.OfficialRules); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	contest := &models.Contest{
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		StartTime:        req.StartTime.UTC(),
		EndTime:          req.EndTime.UTC(),
		PrizeDescription: req.PrizeDescription,
		Active:           active,
		OfficialRules: models.OfficialRules{
			EligibilityText: *req.OfficialRules.EligibilityText,
			SponsorName:     *req.OfficialRules.SponsorName,
			StartDate:       req.OfficialRules.StartDate.UTC(),
			EndDate:         req.OfficialRules.EndDate.UTC(),
			PrizeValueUSD:   *req.OfficialRules.PrizeValueUSD,
		},
	}
	if req.OfficialRules.TermsURL != nil {
		contest.OfficialRules.TermsURL.String = *req.OfficialRules.TermsURL
		contest.OfficialRules.TermsURL.Valid = true
	}

	if err := s.contests.CreateContest(ctx, contest); err != nil {
		return nil, models.Unavailable(err)
	}

	log.Info().Int64("contest_id", contest.ID).Str("name", contest.Name).Msg("contest created")
	return contest, nil
}

// ==============================================
// UPDATE CONTEST (ADMIN, PARTIAL MERGE)
// ==============================================

// UpdateContest merges the sparse payload field-by-field into the stored
// record. Omitted fields are untouched; only supplied official-rules
// subfields are validated and changed.
func (s *ContestService) UpdateContest(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error) {
	if err := ValidateOfficialRulesPatch(req.OfficialRules); err != nil {
		return nil, err
	}

	contest, err := s.getContest(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contest.Name = *req.Name
	}
	if req.Description != nil {
		contest.Description = *req.Description
	}
	if req.Location != nil {
		contest.Location = *req.Location
	}
	if req.Latitude != nil {
		contest.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		contest.Longitude = *req.Longitude
	}
	if req.StartTime != nil {
		contest.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		contest.EndTime = req.EndTime.UTC()
	}
	if req.PrizeDescription != nil {
		contest.PrizeDescription = *req.PrizeDescription
	}
	if req.Active != nil {
		contest.Active = *req.Active
	}
	if req.OfficialRules != nil {
		rules := req.OfficialRules
		if rules.EligibilityText != nil {
			contest.OfficialRules.EligibilityText = *rules.EligibilityText
		}
		if rules.SponsorName != nil {
			contest.OfficialRules.SponsorName = *rules.SponsorName
		}
		if rules.StartDate != nil {
			contest.OfficialRules.StartDate = rules.StartDate.UTC()
		}
		if rules.EndDate != nil {
			contest.OfficialRules.EndDate = rules.EndDate.UTC()
		}
		if rules.PrizeValueUSD != nil {
			contest.OfficialRules.PrizeValueUSD = *rules.PrizeValueUSD
		}
		if rules.TermsURL != nil {
			contest.OfficialRules.TermsURL.String = *rules.TermsURL
			contest.OfficialRules.TermsURL.Valid = true
		}
	}

	contest.UpdatedAt = s.clock.Now()

	if err := s.contests.UpdateContest(ctx, contest); err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, models.ErrContestNotFound
		}
		return nil, models.Unavailable(err)
	}

	return contest, nil
}

// ==============================================
// LISTINGS & GEOSEARCH
// ==============================================

func (s *ContestService) ListActiveContests(ctx context.Context) ([]models.Contest, error) {
	contests, err := s.contests.ListActiveContests(ctx, s.clock.Now())
	if err != nil {
		return nil, models.Unavailable(err)
	}
	return contests, nil
}

func (s *ContestService) ListContestsForAdmin(ctx context.Context) ([]models.ContestWithEntryCount, error) {
	contests, err := s.contests.ListContestsWithEntryCounts(ctx)
	if err != nil {
		return nil, models.Unavailable(err)
	}
	return contests, nil
}

// NearbyContests returns active contests within radiusMiles of the query
// point, closest first. A non-positive radius falls back to the configured
// default.
func (s *ContestService) NearbyContests(ctx context.Context, lat, lng, radiusMiles float64) ([]geo.ContestDistance, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}
	if radiusMiles <= 0 {
		radiusMiles = s.defaultRadiusMiles
	}

	candidates, err := s.contests.ListActiveContests(ctx, s.clock.Now())
	if err != nil {
		return nil, models.Unavailable(err)
	}

	return geo.Nearby(lat, lng, radiusMiles, candidates)
}

// ==============================================
// CONTEST ENTRY
// ==============================================

func (s *ContestService) EnterContest(ctx context.Context, contestID int64, phone string) (*models.Entry, error) {
	contest, err := s.getContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !contest.CanEnter(now) {
		return nil, models.ErrContestNotOpen
	}

	entry := &models.Entry{
		ID:        uuid.New(),
		ContestID: contestID,
		Phone:     phone,
		EnteredAt: now,
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, models.ErrDuplicateEntry
		}
		return nil, models.Unavailable(err)
	}

	log.Info().Int64("contest_id", contestID).Str("phone", phone).Msg("contest entry accepted")
	return entry, nil
}

func (s *ContestService) ListEntriesForPhone(ctx context.Context, phone string) ([]models.EntryWithContest, error) {
	entries, err := s.entries.ListEntriesByPhone(ctx, phone)
	if err != nil {
		return nil, models.Unavailable(err)
	}
	return entries, nil
}

// ==============================================
// WINNER SELECTION (ADMIN)
// ==============================================

// SelectWinner draws one entry uniformly at random from the contest's entry
// set as visible at call time. Zero entries is a normal outcome, not an
// error. Each call is an independent fair draw; any "one winner ever" policy
// belongs to the caller.
func (s *ContestService) SelectWinner(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error) {
	contest, err := s.getContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	if !contest.CanSelectWinner(s.clock.Now()) {
		return nil, models.ErrContestNotEnded
	}

	entries, err := s.entries.ListEntriesByContest(ctx, contestID)
	if err != nil {
		return nil, models.Unavailable(err)
	}

	if len(entries) == 0 {
		return &models.WinnerSelectionResult{
			Success:      false,
			Message:      "no entries in this contest",
			TotalEntries: 0,
		}, nil
	}

	idx, err := s.pick(len(entries))
	if err != nil {
		return nil, fmt.Errorf("winner draw failed: %w", err)
	}

	winner := entries[idx]
	log.Info().
		Int64("contest_id", contestID).
		Str("entry_id", winner.ID.String()).
		Int("total_entries", len(entries)).
		Msg("winner selected")

	return &models.WinnerSelectionResult{
		Success:       true,
		Message:       fmt.Sprintf("winner selected from %d entries", len(entries)),
		TotalEntries:  len(entries),
		SelectedEntry: &winner,
	}, nil
}

// ==============================================
// HELPERS
// ==============================================

func (s *ContestService) getContest(ctx context.Context, id int64) (*models.Contest, error) {
	contest, err := s.contests.GetContestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContestNotFound) {
			return nil, models.ErrContestNotFound
		}
		return nil, models.Unavailable(err)
	}
	return contest, nil
}
