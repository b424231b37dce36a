// Package tripcode resolves the free-text name field into a display name and,
// when a "#secret" suffix is present, a stable verifiable signature.
package tripcode

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"
)

const (
	DefaultDisplayName = "Anonymous"

	tripLen = 10
)

type Result struct {
	DisplayName string
	Trip        string // empty when no secret was supplied
}

// Resolve always succeeds. The secret is everything after the first '#',
// including any further '#' characters.
func Resolve(input, salt string) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{DisplayName: DefaultDisplayName}
	}

	hashIndex := strings.Index(trimmed, "#")
	if hashIndex == -1 {
		return Result{DisplayName: trimmed}
	}

	baseName := strings.TrimSpace(trimmed[:hashIndex])
	if baseName == "" {
		baseName = DefaultDisplayName
	}
	secret := trimmed[hashIndex+1:]
	if secret == "" {
		return Result{DisplayName: baseName}
	}

	return Result{DisplayName: baseName, Trip: sign(secret, salt)}
}

// sign digests secret+salt, base64s it, strips non-alphanumerics and keeps
// the first 10 characters. Identical secret+salt always yields the same trip.
func sign(secret, salt string) string {
	sum := sha1.Sum([]byte(secret + salt))
	encoded := base64.StdEncoding.EncodeToString(sum[:])

	var b strings.Builder
	for _, r := range encoded {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	trip := b.String()
	if len(trip) > tripLen {
		trip = trip[:tripLen]
	}
	return trip
}
