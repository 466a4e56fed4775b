// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// OTPLength is the number of digits in a recovery code.
const OTPLength = 6

// OTPExpiry is how long a recovery code stays valid.
const OTPExpiry = 10 * time.Minute

// GenerateOTP returns a random numeric code of OTPLength digits.
func GenerateOTP() (string, error) {
	digits := make([]byte, OTPLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateResetToken returns a 32-byte random hex token for password reset links.
func GenerateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// ValidateOTPAttempts counts verification attempts per account and rejects
// after 5 within an hour.
func ValidateOTPAttempts(email string, redis *redis.Client) error {
	key := "otp_attempts:" + email
	attempts, err := redis.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		redis.Expire(context.Background(), key, 1*time.Hour)
	}

	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}

// ClearOTPAttempts resets the attempt counter after a successful verification.
func ClearOTPAttempts(email string, redis *redis.Client) {
	redis.Del(context.Background(), "otp_attempts:"+email)
}
