package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

const passwordSpecialChars = "!@#$%^&*(),.?\":{}|<>"

// ValidatePasswordStrength checks minimum length plus uppercase, lowercase,
// digit and special character presence
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	hasSpecial := false
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, ch):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one number")
	}
	if !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}

// GenerateSecurePassword generates a random password used for admin resets
func GenerateSecurePassword() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" + passwordSpecialChars
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	password := make([]byte, 12)
	for i := range password {
		password[i] = charset[rng.Intn(len(charset))]
	}
	// guarantee the strength check passes
	password[0] = 'A'
	password[1] = 'a'
	password[2] = byte('0' + rng.Intn(10))
	password[len(password)-1] = passwordSpecialChars[rng.Intn(len(passwordSpecialChars))]
	return string(password)
}
