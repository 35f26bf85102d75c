package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/models"
)

const testAdminToken = "admin-secret"

// ==============================================
// TEST DOUBLES
// ==============================================

type mockAdminSvc struct {
	createFunc func(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error)
	updateFunc func(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error)
	listFunc   func(ctx context.Context) ([]models.ContestWithEntryCount, error)
	selectFunc func(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error)
}

func (m *mockAdminSvc) CreateContest(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error) {
	return m.createFunc(ctx, req)
}

func (m *mockAdminSvc) UpdateContest(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error) {
	return m.updateFunc(ctx, id, req)
}

func (m *mockAdminSvc) ListContestsForAdmin(ctx context.Context) ([]models.ContestWithEntryCount, error) {
	return m.listFunc(ctx)
}

func (m *mockAdminSvc) SelectWinner(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error) {
	return m.selectFunc(ctx, contestID)
}

func newAdminRouter(svc *mockAdminSvc) *gin.Engine {
	router := gin.New()
	NewAdminHandler(svc, testAdminToken).RegisterRoutes(router)
	return router
}

// ==============================================
// ADMIN AUTH
// ==============================================

func TestAdminAuthEndpoint(t *testing.T) {
	router := newAdminRouter(&mockAdminSvc{})

	w := doRequest(router, http.MethodGet, "/admin/auth", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["authenticated"])
}

func TestAdminAuthEndpoint_MissingToken(t *testing.T) {
	router := newAdminRouter(&mockAdminSvc{})

	w := doRequest(router, http.MethodGet, "/admin/auth", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthEndpoint_WrongToken(t *testing.T) {
	router := newAdminRouter(&mockAdminSvc{})

	w := doRequest(router, http.MethodGet, "/admin/auth", "wrong-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// ==============================================
// ADMIN LISTING
// ==============================================

func TestAdminListContestsEndpoint(t *testing.T) {
	svc := &mockAdminSvc{
		listFunc: func(ctx context.Context) ([]models.ContestWithEntryCount, error) {
			return []models.ContestWithEntryCount{
				{Contest: models.Contest{ID: 1, Name: "Summer Giveaway"}, EntryCount: 12},
			}, nil
		},
	}
	router := newAdminRouter(svc)

	w := doRequest(router, http.MethodGet, "/admin/contests", testAdminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, float64(12), out[0]["entry_count"])
}

// ==============================================
// CREATE & UPDATE
// ==============================================

// postJSONAuth sends a JSON body with an admin bearer credential
func postJSONAuth(t *testing.T, router *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminCreateContestEndpoint(t *testing.T) {
	svc := &mockAdminSvc{
		createFunc: func(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error) {
			contest := &models.Contest{
				ID:        42,
				Name:      req.Name,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Active:    true,
				OfficialRules: models.OfficialRules{
					EligibilityText: *req.OfficialRules.EligibilityText,
					SponsorName:     *req.OfficialRules.SponsorName,
					PrizeValueUSD:   *req.OfficialRules.PrizeValueUSD,
				},
			}
			return contest, nil
		},
	}
	router := newAdminRouter(svc)

	eligibility := "Open to legal residents 18 or older"
	sponsor := "Acme Corp"
	prize := 500.0
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(30 * 24 * time.Hour)

	w := postJSONAuth(t, router, http.MethodPost, "/admin/contests", testAdminToken, dto.CreateContestRequest{
		Name:      "Summer Giveaway",
		StartTime: start,
		EndTime:   end,
		OfficialRules: &dto.OfficialRulesPayload{
			EligibilityText: &eligibility,
			SponsorName:     &sponsor,
			StartDate:       &start,
			EndDate:         &end,
			PrizeValueUSD:   &prize,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(42), body["id"])
	rules := body["official_rules"].(map[string]any)
	assert.Equal(t, "Acme Corp", rules["sponsor_name"])
}

func TestAdminCreateContestEndpoint_ComplianceFailure(t *testing.T) {
	svc := &mockAdminSvc{
		createFunc: func(ctx context.Context, req dto.CreateContestRequest) (*models.Contest, error) {
			return nil, models.NewMissingFieldError("eligibility_text")
		},
	}
	router := newAdminRouter(svc)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	w := postJSONAuth(t, router, http.MethodPost, "/admin/contests", testAdminToken, dto.CreateContestRequest{
		Name:      "Summer Giveaway",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, models.ErrCodeMissingField, body["error"])
	assert.Contains(t, body["message"], "eligibility_text")
}

func TestAdminUpdateContestEndpoint(t *testing.T) {
	svc := &mockAdminSvc{
		updateFunc: func(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error) {
			assert.Equal(t, int64(5), id)
			require.NotNil(t, req.Name)
			return &models.Contest{ID: 5, Name: *req.Name, Active: true}, nil
		},
	}
	router := newAdminRouter(svc)

	name := "Renamed Giveaway"
	w := postJSONAuth(t, router, http.MethodPut, "/admin/contests/5", testAdminToken,
		dto.UpdateContestRequest{Name: &name})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed Giveaway", decodeBody(t, w)["name"])
}

func TestAdminUpdateContestEndpoint_NotFound(t *testing.T) {
	svc := &mockAdminSvc{
		updateFunc: func(ctx context.Context, id int64, req dto.UpdateContestRequest) (*models.Contest, error) {
			return nil, models.ErrContestNotFound
		},
	}
	router := newAdminRouter(svc)

	name := "x"
	w := postJSONAuth(t, router, http.MethodPut, "/admin/contests/99", testAdminToken,
		dto.UpdateContestRequest{Name: &name})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ==============================================
// WINNER SELECTION
// ==============================================

func TestAdminSelectWinnerEndpoint(t *testing.T) {
	winner := models.Entry{ID: uuid.New(), ContestID: 5, Phone: "+15551234567"}
	svc := &mockAdminSvc{
		selectFunc: func(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error) {
			return &models.WinnerSelectionResult{
				Success:       true,
				Message:       "winner selected from 3 entries",
				TotalEntries:  3,
				SelectedEntry: &winner,
			}, nil
		},
	}
	router := newAdminRouter(svc)

	w := postJSONAuth(t, router, http.MethodPost, "/admin/contests/5/select-winner", testAdminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["total_entries"])
	entry := body["selected_entry"].(map[string]any)
	assert.Equal(t, winner.ID.String(), entry["id"])
}

func TestAdminSelectWinnerEndpoint_NoEntries(t *testing.T) {
	svc := &mockAdminSvc{
		selectFunc: func(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error) {
			return &models.WinnerSelectionResult{Success: false, Message: "no entries in this contest"}, nil
		},
	}
	router := newAdminRouter(svc)

	w := postJSONAuth(t, router, http.MethodPost, "/admin/contests/5/select-winner", testAdminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "selected_entry")
}

func TestAdminSelectWinnerEndpoint_NotEnded(t *testing.T) {
	svc := &mockAdminSvc{
		selectFunc: func(ctx context.Context, contestID int64) (*models.WinnerSelectionResult, error) {
			return nil, models.ErrContestNotEnded
		},
	}
	router := newAdminRouter(svc)

	w := postJSONAuth(t, router, http.MethodPost, "/admin/contests/5/select-winner", testAdminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
