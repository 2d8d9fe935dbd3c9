package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP_SixDigits(t *testing.T) {
	otp := GenerateOTP()
	assert.Len(t, otp, 6)
	for _, ch := range otp {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("Sh0rt!"), "too short")
	assert.Error(t, ValidatePasswordStrength("lowercase123!"), "missing uppercase")
	assert.Error(t, ValidatePasswordStrength("PASSWORD123!"), "missing lowercase")
	assert.Error(t, ValidatePasswordStrength("Password!!"), "missing digit")
	assert.Error(t, ValidatePasswordStrength("Password123"), "missing special character")
	assert.NoError(t, ValidatePasswordStrength("Password123!"))
	assert.NoError(t, ValidatePasswordStrength("Aa1,Aa1,Aa1,"))
}

func TestGenerateSecurePassword_PassesStrengthCheck(t *testing.T) {
	for i := 0; i < 5; i++ {
		password := GenerateSecurePassword()
		assert.Len(t, password, 12)
		assert.NoError(t, ValidatePasswordStrength(password))
	}
}
