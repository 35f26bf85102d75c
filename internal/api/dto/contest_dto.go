package dto

import "time"

// ==============================================
// CONTEST REQUEST DTOs
// ==============================================

// OfficialRulesPayload - full rules document for contest creation.
// Pointer fields distinguish "absent" from zero values so the compliance
// validator can name the missing field.
type OfficialRulesPayload struct {
	EligibilityText *string    `json:"eligibility_text"`
	SponsorName     *string    `json:"sponsor_name"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	PrizeValueUSD   *float64   `json:"prize_value_usd"`
	TermsURL        *string    `json:"terms_url"`
}

// CreateContestRequest
type CreateContestRequest struct {
	Name             string                `json:"name" binding:"required"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	Latitude         float64               `json:"latitude"`
	Longitude        float64               `json:"longitude"`
	StartTime        time.Time             `json:"start_time" binding:"required"`
	EndTime          time.Time             `json:"end_time" binding:"required"`
	PrizeDescription string                `json:"prize_description"`
	Active           *bool                 `json:"active"` // defaults to true
	OfficialRules    *OfficialRulesPayload `json:"official_rules"`
}

// UpdateContestRequest - sparse partial update; nil fields are untouched
type UpdateContestRequest struct {
	Name             *string               `json:"name"`
	Description      *string               `json:"description"`
	Location         *string               `json:"location"`
	Latitude         *float64              `json:"latitude"`
	Longitude        *float64              `json:"longitude"`
	StartTime        *time.Time            `json:"start_time"`
	EndTime          *time.Time            `json:"end_time"`
	PrizeDescription *string               `json:"prize_description"`
	Active           *bool                 `json:"active"`
	OfficialRules    *OfficialRulesPayload `json:"official_rules"`
}

// ==============================================
// CONTEST RESPONSE DTOs
// ==============================================

// OfficialRulesDTO
type OfficialRulesDTO struct {
	EligibilityText string    `json:"eligibility_text"`
	SponsorName     string    `json:"sponsor_name"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	PrizeValueUSD   float64   `json:"prize_value_usd"`
	TermsURL        string    `json:"terms_url,omitempty"`
}

// ContestDTO
type ContestDTO struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Location         string            `json:"location"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          time.Time         `json:"end_time"`
	PrizeDescription string            `json:"prize_description"`
	Active           bool              `json:"active"`
	OfficialRules    *OfficialRulesDTO `json:"official_rules,omitempty"`
	EntryCount       *int64            `json:"entry_count,omitempty"`
	DistanceMiles    *float64          `json:"distance_miles,omitempty"`
}

// EntryDTO
type EntryDTO struct {
	ID          string    `json:"id"`
	ContestID   int64     `json:"contest_id"`
	ContestName string    `json:"contest_name,omitempty"`
	Phone       string    `json:"phone"`
	EnteredAt   time.Time `json:"entered_at"`
}

// EnterContestResponse
type EnterContestResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Entry   *EntryDTO `json:"entry,omitempty"`
}

// WinnerSelectionResponse
type WinnerSelectionResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message"`
	TotalEntries  int       `json:"total_entries"`
	SelectedEntry *EntryDTO `json:"selected_entry,omitempty"`
}
