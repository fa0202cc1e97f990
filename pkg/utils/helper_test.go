package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}

func TestGenerateOrderID(t *testing.T) {
	orderID := GenerateOrderID()

	assert.True(t, strings.HasPrefix(orderID, "BOOK-"))

	parts := strings.Split(orderID, "-")
	assert.Len(t, parts, 4)
	assert.Len(t, parts[1], 8) // YYYYMMDD
	assert.Len(t, parts[2], 6) // HHMMSS
	assert.Len(t, parts[3], 4)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	assert.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.True(t, CheckPasswordHash("rahasia123", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}
