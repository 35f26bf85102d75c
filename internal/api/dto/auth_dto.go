package dto

// ==============================================
// AUTH REQUEST DTOs
// ==============================================

// RequestOTPRequest - ask for a one-time code
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOTPRequest - redeem a one-time code
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// VerifyPhoneRequest - legacy code-free issuance (non-production path)
type VerifyPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// ==============================================
// AUTH RESPONSE DTOs
// ==============================================

// RequestOTPResponse
type RequestOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"` // seconds until the code expires
}

// VerifyOTPResponse - Success=false with no token on a failed attempt
type VerifyOTPResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type,omitempty"` // "Bearer"
	ExpiresIn   int    `json:"expires_in,omitempty"` // seconds
}

// VerifyPhoneResponse
type VerifyPhoneResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
