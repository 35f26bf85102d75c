package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// SERVICE INTERFACE (for testing)
// ==============================================

type AdminContestService interface {
	CreateContest(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error)
	UpdateContest(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error)
	ListContestsForAdmin(ctx context.Context) ([]models.ContestWithEntryCount, error)
	SelectWinner(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error)
}

// ==============================================
// HANDLER (HTTP Layer ONLY)
// ==============================================

type AdminHandler struct {
	service    AdminContestService
	adminToken string
}

func NewAdminHandler(service AdminContestService, adminToken string) *AdminHandler {
	return &AdminHandler{service: service, adminToken: adminToken}
}

// ==============================================
// ENDPOINTS
// ==============================================

// Auth handles GET /admin/auth - credential probe for admin tooling
func (h *AdminHandler) Auth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// ListContests handles GET /admin/contests
func (h *AdminHandler) ListContests(c *gin.Context) {
	contests, err := h.service.ListContestsForAdmin(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.ContestDTO, 0, len(contests))
	for i := range contests {
		d := contestToDTO(&contests[i].Contest)
		count := contests[i].EntryCount
		d.EntryCount = &count
		out = append(out, d)
	}

	c.JSON(http.StatusOK, out)
}

// CreateContest handles POST /admin/contests
func (h *AdminHandler) CreateContest(c *gin.Context) {
	var req dto.CreateContestRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeValidationFailed, err)
		return
	}

	contest, err := h.service.CreateContest(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	d := contestToDTO(contest)
	d.OfficialRules = officialRulesToDTO(&contest.OfficialRules)
	c.JSON(http.StatusOK, d)
}

// UpdateContest handles PUT /admin/contests/:contest_id
func (h *AdminHandler) UpdateContest(c *gin.Context) {
	contestID, err := parseContestID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeNotFound, err)
		return
	}

	var req dto.UpdateContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeValidationFailed, err)
		return
	}

	contest, err := h.service.UpdateContest(c.Request.Context(), contestID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	d := contestToDTO(contest)
	d.OfficialRules = officialRulesToDTO(&contest.OfficialRules)
	c.JSON(http.StatusOK, d)
}

// SelectWinner handles POST /admin/contests/:contest_id/select-winner
func (h *AdminHandler) SelectWinner(c *gin.Context) {
	contestID, err := parseContestID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeNotFound, err)
		return
	}

	result, err := h.service.SelectWinner(c.Request.Context(), contestID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := dto.WinnerSelectionResponse{
		Success:      result.Success,
		Message:      result.Message,
		TotalEntries: result.TotalEntries,
	}
	if result.SelectedEntry != nil {
		resp.SelectedEntry = entryToDTO(result.SelectedEntry, "")
	}

	c.JSON(http.StatusOK, resp)
}

// ==============================================
// ROUTE REGISTRATION
// ==============================================

func (h *AdminHandler) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin", RequireAdmin(h.adminToken))
	{
		admin.GET("/auth", h.Auth)
		admin.GET("/contests", h.ListContests)
		admin.POST("/contests", h.CreateContest)
		admin.PUT("/contests/:contest_id", h.UpdateContest)
		admin.POST("/contests/:contest_id/select-winner", h.SelectWinner)
	}
}
