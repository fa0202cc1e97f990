package middleware

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMaskTokenNeverExposesFullToken(t *testing.T) {
	token := uuid.New().String()

	masked := maskToken(token)

	assert.NotEqual(t, token, masked)
	assert.NotContains(t, masked, token[8:])
	assert.Equal(t, token[:8]+"***", masked)
}

func TestMaskTokenShortInput(t *testing.T) {
	assert.Equal(t, "***", maskToken("abc"))
	assert.Equal(t, "***", maskToken(""))
}
