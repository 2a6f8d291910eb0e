// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode"
)

const maxUserIDLen = 128

var (
	ErrMissingUserID = errors.New("user id is required")
	ErrInvalidUserID = errors.New("invalid user id")
)

// ValidateUserID checks an owner identifier taken from a request.
// Any non-empty printable string up to 128 bytes is accepted.
func ValidateUserID(userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if len(userID) > maxUserIDLen {
		return ErrInvalidUserID
	}
	for _, r := range userID {
		if unicode.IsControl(r) {
			return ErrInvalidUserID
		}
	}
	return nil
}

// GenerateSalt creates a random hex salt of the specified byte length
func GenerateSalt(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}
