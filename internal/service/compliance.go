package service

import (
	"errors"
	"strings"

	"github.com/contestlet/contestlet/internal/api/dto"
	"github.com/contestlet/contestlet/internal/models"
)

// ==============================================
// COMPLIANCE VALIDATION
// ==============================================

var ErrInvalidPrizeValue = errors.New("prize value must be zero or positive")

// ValidateOfficialRules enforces the mandatory disclosure fields on contest
// creation: eligibility_text, sponsor_name, start_date, end_date and
// prize_value_usd must all be present and non-empty. Absence is a hard
// validation failure, not a warning.
func ValidateOfficialRules(rules *dto.OfficialRulesPayload) error {
	if rules == nil {
		return models.NewMissingFieldError("official_rules")
	}
	if rules.EligibilityText == nil || strings.TrimSpace(*rules.EligibilityText) == "" {
		return models.NewMissingFieldError("eligibility_text")
	}
	if rules.SponsorName == nil || strings.TrimSpace(*rules.SponsorName) == "" {
		return models.NewMissingFieldError("sponsor_name")
	}
	if rules.StartDate == nil {
		return models.NewMissingFieldError("start_date")
	}
	if rules.EndDate == nil {
		return models.NewMissingFieldError("end_date")
	}
	if rules.PrizeValueUSD == nil {
		return models.NewMissingFieldError("prize_value_usd")
	}
	if *rules.PrizeValueUSD < 0 {
		return ErrInvalidPrizeValue
	}
	return nil
}

// ValidateOfficialRulesPatch validates only the fields present in a partial
// update. Omitted fields are untouched and not re-validated; supplied fields
// must still satisfy the creation rules.
func ValidateOfficialRulesPatch(rules *dto.OfficialRulesPayload) error {
	if rules == nil {
		return nil
	}
	if rules.EligibilityText != nil && strings.TrimSpace(*rules.EligibilityText) == "" {
		return models.NewMissingFieldError("eligibility_text")
	}
	if rules.SponsorName != nil && strings.TrimSpace(*rules.SponsorName) == "" {
		return models.NewMissingFieldError("sponsor_name")
	}
	if rules.PrizeValueUSD != nil && *rules.PrizeValueUSD < 0 {
		return ErrInvalidPrizeValue
	}
	return nil
}
