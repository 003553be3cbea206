package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomNumber(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := GenerateRandomNumber(3, 5)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, 7, GenerateRandomNumber(7, 7))
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BV-\d{4}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	}
}
