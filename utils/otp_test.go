package utils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, OTPLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in code %q", code)
		}
		seen[code] = true
	}
	// 50 draws from a million-value space should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	b, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestValidateOTPAttempts(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	for i := 0; i < 5; i++ {
		assert.NoError(t, ValidateOTPAttempts("user@example.com", client))
	}
	assert.Error(t, ValidateOTPAttempts("user@example.com", client))

	// other accounts are unaffected
	assert.NoError(t, ValidateOTPAttempts("other@example.com", client))

	ClearOTPAttempts("user@example.com", client)
	assert.NoError(t, ValidateOTPAttempts("user@example.com", client))
}
