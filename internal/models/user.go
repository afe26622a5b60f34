// ABOUTME: User model for pushup participants and rabbit pacers.
// ABOUTME: Handles name normalization and secret validation.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// User is a leaderboard participant. Rabbits are synthetic pacers whose
// challenge total is computed from RabbitTarget instead of real entries.
type User struct {
	ID           int64
	Name         string
	Secret       string
	IsRabbit     bool
	RabbitTarget int
}

// reservedSecrets collide with top-level routes served next to /:secret.
var reservedSecrets = map[string]bool{
	"api":         true,
	"assets":      true,
	"healthz":     true,
	"favicon.ico": true,
}

// NormalizeName lowercases and trims a user name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateName checks a normalized user name.
func ValidateName(name string) error {
	if name == "" {
		return Invalid("name", "must not be empty")
	}
	if strings.ContainsAny(name, "/ \t\n") {
		return Invalid("name", "must not contain slashes or whitespace")
	}
	return nil
}

// ValidateSecret checks that a secret can be used as a URL path segment.
func ValidateSecret(secret string) error {
	if secret == "" {
		return Invalid("secret", "must not be empty")
	}
	if strings.ContainsAny(secret, "/?# \t\n") {
		return Invalid("secret", "must be a single URL path segment")
	}
	if reservedSecrets[strings.ToLower(secret)] {
		return Invalid("secret", "%q is reserved", secret)
	}
	return nil
}

// NewSecret generates a random secret suitable for a user's private link.
func NewSecret() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidateRabbitTarget checks that a pacer target is a positive count.
func ValidateRabbitTarget(target int) error {
	if target < 1 {
		return Invalid("target", "must be a positive integer")
	}
	return nil
}
