// Package identity derives the rotating per-visitor pseudonym shown next to
// each post, plus the stable correlation hashes used as rate-limit keys.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	fallbackAddr      = "127.0.0.1"
	fallbackUserAgent = "unknown"

	dayIdLen = 8
	hashLen  = 32
)

// Identity is deterministic for (addr, user-agent, UTC calendar day).
// DayId rotates at day rollover; the hashes do not include the day.
type Identity struct {
	DayId     string
	AddrHash  string
	AgentHash string
}

// ExtractRemoteAddr picks the visitor address: first X-Forwarded-For entry,
// then X-Real-Ip, then the host part of RemoteAddr, then loopback.
func ExtractRemoteAddr(r *http.Request) string {
	header := r.Header.Get("X-Forwarded-For")
	if header == "" {
		header = r.Header.Get("X-Real-Ip")
	}
	if header != "" {
		candidate := strings.TrimSpace(strings.Split(header, ",")[0])
		if candidate != "" {
			return candidate
		}
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return fallbackAddr
}

// Derive never fails; missing inputs fall back to documented defaults.
func Derive(addr, userAgent string, now time.Time) Identity {
	if addr == "" {
		addr = fallbackAddr
	}
	if userAgent == "" {
		userAgent = fallbackUserAgent
	}
	dayKey := now.UTC().Format("2006-01-02")

	daySum := sha256.Sum256([]byte(addr + "|" + userAgent + "|" + dayKey))
	dayId := strings.ToUpper(hex.EncodeToString(daySum[:])[:dayIdLen])

	return Identity{
		DayId:     dayId,
		AddrHash:  truncatedHash(addr),
		AgentHash: truncatedHash(userAgent),
	}
}

// FromRequest derives the identity straight from an inbound request.
func FromRequest(r *http.Request, now time.Time) Identity {
	return Derive(ExtractRemoteAddr(r), r.Header.Get("User-Agent"), now)
}

func truncatedHash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:hashLen]
}
