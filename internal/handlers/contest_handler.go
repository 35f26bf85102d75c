package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/geo"
	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type ContestService interface {
	ListActiveContests(ctx context.Context) ([]models.Contest, error)
	NearbyContests(ctx context.Context, lat, lng, radiusMiles float64) ([]geo.ContestDistance, error)
	EnterContest(ctx context.Context, contestID int64, phone string) (*models.Entry, error)
	ListEntriesForPhone(ctx context.Context, phone string) ([]models.EntryWithContest, error)
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type ContestHandler struct {
	service   ContestService
	jwtSecret string
}

func NewContestHandler(service ContestService, jwtSecret string) *ContestHandler {
	return &ContestHandler{service: service, jwtSecret: jwtSecret}
}

// ==============================================
// ENDPOINTS
// ==============================================

// ListActive handles GET /contests/active
func (h *ContestHandler) ListActive(c *gin.Context) {
	contests, err := h.service.ListActiveContests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.ContestDTO, 0, len(contests))
	for i := range contests {
		out = append(out, contestToDTO(&contests[i]))
	}

	c.JSON(http.StatusOK, out)
}

// Nearby handles GET /contests/nearby?lat=..&lng=..&radius=..
func (h *ContestHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidCoordinates, errors.New("lat must be a number"))
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidCoordinates, errors.New("lng must be a number"))
		return
	}
	// radius is optional; the service applies the configured default
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)

	results, err := h.service.NearbyContests(c.Request.Context(), lat, lng, radius)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.ContestDTO, 0, len(results))
	for i := range results {
		d := contestToDTO(&results[i].Contest)
		miles := results[i].Miles
		d.DistanceMiles = &miles
		out = append(out, d)
	}

	c.JSON(http.StatusOK, out)
}

// Enter handles POST /contests/:contest_id/enter
func (h *ContestHandler) Enter(c *gin.Context) {
	contestID, err := parseContestID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeNotFound, err)
		return
	}

	entry, err := h.service.EnterContest(c.Request.Context(), contestID, callerPhone(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EnterContestResponse{
		Success: true,
		Message: "Entry accepted",
		Entry:   entryToDTO(entry, ""),
	})
}

// MyEntries handles GET /entries/me
func (h *ContestHandler) MyEntries(c *gin.Context) {
	entries, err := h.service.ListEntriesForPhone(c.Request.Context(), callerPhone(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.EntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, *entryToDTO(&entries[i].Entry, entries[i].ContestName))
	}

	c.JSON(http.StatusOK, out)
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *ContestHandler) RegisterRoutes(router *gin.Engine) {
	contests := router.Group("/contests")
	{
		contests.GET("/active", h.ListActive)
		contests.GET("/nearby", h.Nearby)
		contests.POST("/:contest_id/enter", RequireUser(h.jwtSecret), h.Enter)
	}

	router.GET("/entries/me", RequireUser(h.jwtSecret), h.MyEntries)
}

// ==============================================
// HELPER FUNCTIONS
// ==============================================

// parseContestID extracts and validates contest_id from the URL parameter
func parseContestID(c *gin.Context) (int64, error) {
	idStr := c.Param("contest_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("contest_id must be a positive number")
	}
	return id, nil
}

func contestToDTO(contest *models.Contest) dto.ContestDTO {
	return dto.ContestDTO{
		ID:               contest.ID,
		Name:             contest.Name,
		Description:      contest.Description,
		Location:         contest.Location,
		Latitude:         contest.Latitude,
		Longitude:        contest.Longitude,
		StartTime:        contest.StartTime,
		EndTime:          contest.EndTime,
		PrizeDescription: contest.PrizeDescription,
		Active:           contest.Active,
	}
}

func officialRulesToDTO(rules *models.OfficialRules) *dto.OfficialRulesDTO {
	out := &dto.OfficialRulesDTO{
		EligibilityText: rules.EligibilityText,
		SponsorName:     rules.SponsorName,
		StartDate:       rules.StartDate,
		EndDate:         rules.EndDate,
		PrizeValueUSD:   rules.PrizeValueUSD,
	}
	if rules.TermsURL.Valid {
		out.TermsURL = rules.TermsURL.String
	}
	return out
}

func entryToDTO(entry *models.Entry, contestName string) *dto.EntryDTO {
	return &dto.EntryDTO{
		ID:          entry.ID.String(),
		ContestID:   entry.ContestID,
		ContestName: contestName,
		Phone:       entry.Phone,
		EnteredAt:   entry.EnteredAt,
	}
}
