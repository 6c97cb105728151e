package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	valid, _ := ValidateUsername("max_mustermann")
	assert.True(t, valid)

	valid, msg := ValidateUsername("ab")
	assert.False(t, valid)
	assert.Contains(t, msg, "at least 3")

	valid, _ = ValidateUsername("has space")
	assert.False(t, valid)

	valid, _ = ValidateUsername("way_too_long_username_exceeding_thirty_chars")
	assert.False(t, valid)
}

func TestValidateEmail(t *testing.T) {
	valid, _ := ValidateEmail("user@example.com")
	assert.True(t, valid)

	valid, _ = ValidateEmail("not-an-email")
	assert.False(t, valid)

	valid, _ = ValidateEmail("user@")
	assert.False(t, valid)
}

func TestValidatePassword(t *testing.T) {
	valid, _ := ValidatePassword("longenough")
	assert.True(t, valid)

	valid, msg := ValidatePassword("short")
	assert.False(t, valid)
	assert.Contains(t, msg, "at least 8")
}

func TestValidateRating(t *testing.T) {
	for rating := MinRating; rating <= MaxRating; rating++ {
		valid, _ := ValidateRating(rating)
		assert.True(t, valid, "rating %d", rating)
	}

	valid, _ := ValidateRating(0)
	assert.False(t, valid)

	valid, _ = ValidateRating(6)
	assert.False(t, valid)
}
