package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ReviewTokenBytes is the entropy of a review token before hex encoding.
const ReviewTokenBytes = 32

// GenerateReviewToken returns 32 random bytes as 64 lowercase hex characters.
func GenerateReviewToken() (string, error) {
	buf := make([]byte, ReviewTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate review token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
