package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contestlet/contestlet/internal/models"
)

func TestGenerateOTP_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, models.OTPLength)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", code)
		}

		// No leading zero by construction: codes start at 100000
		assert.NotEqual(t, byte('0'), code[0])
	}
}

func TestGenerateOTP_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		seen[code] = true
	}

	assert.Greater(t, len(seen), 1, "50 draws produced a single code")
}
