package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// ==============================================
// TEST DOUBLES
// ==============================================

type mockAuthService struct {
	requestFunc func(ctx context.Context, phone string) (*dto.RequestOTPResponse, error)
	verifyFunc  func(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error)
	legacyFunc  func(ctx context.Context, phone string) (*dto.VerifyPhoneResponse, error)
}

func (m *mockAuthService) RequestOTP(ctx context.Context, phone string) (*dto.RequestOTPResponse, error) {
	return m.requestFunc(ctx, phone)
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error) {
	return m.verifyFunc(ctx, phone, code)
}

func (m *mockAuthService) VerifyPhoneInsecure(ctx context.Context, phone string) (*dto.VerifyPhoneResponse, error) {
	return m.legacyFunc(ctx, phone)
}

func newAuthRouter(svc *mockAuthService) *gin.Engine {
	router := gin.New()
	NewAuthHandler(svc).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ==============================================
// REQUEST OTP
// ==============================================

func TestRequestOTPEndpoint_OK(t *testing.T) {
	svc := &mockAuthService{
		requestFunc: func(ctx context.Context, phone string) (*dto.RequestOTPResponse, error) {
			assert.Equal(t, "+15551234567", phone)
			return &dto.RequestOTPResponse{Message: "Verification code sent", ExpiresIn: 600}, nil
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/request-otp", dto.RequestOTPRequest{Phone: "+15551234567"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Verification code sent", body["message"])
	assert.Equal(t, float64(600), body["expires_in"])
}

func TestRequestOTPEndpoint_MissingPhone(t *testing.T) {
	router := newAuthRouter(&mockAuthService{})

	w := postJSON(t, router, "/auth/request-otp", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestOTPEndpoint_InvalidPhone(t *testing.T) {
	svc := &mockAuthService{
		requestFunc: func(ctx context.Context, phone string) (*dto.RequestOTPResponse, error) {
			return nil, models.ErrInvalidPhoneFormat
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/request-otp", dto.RequestOTPRequest{Phone: "garbage"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrCodeInvalidPhone, decodeBody(t, w)["error"])
}

func TestRequestOTPEndpoint_RateLimited(t *testing.T) {
	svc := &mockAuthService{
		requestFunc: func(ctx context.Context, phone string) (*dto.RequestOTPResponse, error) {
			return nil, models.ErrRateLimited
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/request-otp", dto.RequestOTPRequest{Phone: "+15551234567"})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, models.ErrCodeRateLimited, decodeBody(t, w)["error"])
}

func TestRequestOTPEndpoint_StoreDown(t *testing.T) {
	svc := &mockAuthService{
		requestFunc: func(ctx context.Context, phone string) (*dto.RequestOTPResponse, error) {
			return nil, models.Unavailable(assert.AnError)
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/request-otp", dto.RequestOTPRequest{Phone: "+15551234567"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ==============================================
// VERIFY OTP
// ==============================================

func TestVerifyOTPEndpoint_Success(t *testing.T) {
	svc := &mockAuthService{
		verifyFunc: func(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error) {
			return &dto.VerifyOTPResponse{
				Success:     true,
				Message:     "Phone verified successfully",
				AccessToken: "token123",
				TokenType:   "Bearer",
				ExpiresIn:   86400,
			}, nil
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/verify-otp", dto.VerifyOTPRequest{Phone: "+15551234567", Code: "123456"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "token123", body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])
}

// A wrong code is a processed request, not a protocol failure: 200 with
// success=false and no token
func TestVerifyOTPEndpoint_WrongCode(t *testing.T) {
	svc := &mockAuthService{
		verifyFunc: func(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error) {
			return nil, models.ErrCodeMismatch
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/verify-otp", dto.VerifyOTPRequest{Phone: "+15551234567", Code: "000000"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "access_token")
}

func TestVerifyOTPEndpoint_ExpiredAndExhausted(t *testing.T) {
	for _, serviceErr := range []error{models.ErrNoPendingChallenge, models.ErrChallengeExhausted} {
		svc := &mockAuthService{
			verifyFunc: func(ctx context.Context, phone, code string) (*dto.VerifyOTPResponse, error) {
				return nil, serviceErr
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/auth/verify-otp", dto.VerifyOTPRequest{Phone: "+15551234567", Code: "123456"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	}
}

func TestVerifyOTPEndpoint_MalformedCode(t *testing.T) {
	router := newAuthRouter(&mockAuthService{})

	for _, code := range []string{"", "12345", "1234567", "12345a"} {
		w := postJSON(t, router, "/auth/verify-otp", gin.H{"phone": "+15551234567", "code": code})
		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q must fail binding", code)
	}
}

// ==============================================
// LEGACY VERIFY-PHONE
// ==============================================

func TestVerifyPhoneEndpoint(t *testing.T) {
	svc := &mockAuthService{
		legacyFunc: func(ctx context.Context, phone string) (*dto.VerifyPhoneResponse, error) {
			return &dto.VerifyPhoneResponse{AccessToken: "token123", TokenType: "Bearer", ExpiresIn: 86400}, nil
		},
	}
	router := newAuthRouter(svc)

	w := postJSON(t, router, "/auth/verify-phone", dto.VerifyPhoneRequest{Phone: "+15551234567"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token123", decodeBody(t, w)["access_token"])
}
