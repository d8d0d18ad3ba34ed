package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
)

// GeneratePublicID generates a secure, URL-safe, 22-character public ID.
// Public IDs are shared externally instead of the sequential primary key.
func GeneratePublicID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble
		log.Fatalf("Failed to read random bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

// ImageIdentifier derives the content identifier for an uploaded image.
// It hashes the file bytes together with the owning campaign, so the same
// bytes uploaded to the same campaign always map to the same identifier.
func ImageIdentifier(data []byte, campaignID uint) string {
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, ":%d", campaignID)
	return hex.EncodeToString(h.Sum(nil))
}

// ScaleCost converts an API cost value to its stored form (x100, cents).
func ScaleCost(cost int64) int64 {
	return cost * 100
}

// UnscaleCost converts a stored cost back to the API form.
func UnscaleCost(cost int64) int64 {
	return cost / 100
}
