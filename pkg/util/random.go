package util

import (
	"fmt"
	"math/rand/v2"
)

// GenerateRandomNumber returns a number between min and max (inclusive).
func GenerateRandomNumber(min, max int) int {
	return min + rand.IntN(max-min+1)
}

// GenerateOrderNumber returns a display order number such as BV-4821.
func GenerateOrderNumber() string {
	return fmt.Sprintf("BV-%04d", GenerateRandomNumber(1000, 9999))
}
