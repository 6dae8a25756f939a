package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/Adityadhvn/Partier/internal/models"
)

// referenceSpace is the number of distinct reference suffixes. Draws
// are uniform over [0, referenceSpace) and zero-padded to five digits
// so the reference is always exactly eight characters. Fixed width is
// part of the contract: confirmation QR payloads embed the literal
// string.
const referenceSpace = 100000

// maxReferenceAttempts bounds the generate-check-retry loop during
// issuance. With a 100k suffix space collisions stay rare well into
// the thousands of tickets, but they are possible from the second
// ticket on, so every draw is verified against the store.
const maxReferenceAttempts = 5

// generateReferenceNumber draws a fresh candidate reference number.
// Pure function of random input; uniqueness is the issuer's job.
func generateReferenceNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(referenceSpace))
	if err != nil {
		return "", fmt.Errorf("failed to draw reference suffix: %w", err)
	}

	return fmt.Sprintf("%s%05d", models.ReferencePrefix, n.Int64()), nil
}
