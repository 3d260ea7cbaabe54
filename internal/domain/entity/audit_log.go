package entity

import (
	"time"
	"unicode/utf8"
)

// Bounds for client metadata stored on audit entries, so hostile clients
// cannot grow the table with oversized headers.
const (
	AuditMaxIPLen    = 64
	AuditMaxAgentLen = 256
)

// AuditLog is an append-only record of a security-relevant action. Entries
// are never updated or deleted by normal flow.
type AuditLog struct {
	ID        string
	ClinicID  string
	UserID    string // empty when the actor could not be resolved
	Action    string
	IP        string
	UserAgent string
	CreatedAt time.Time
}

// Truncate clamps s to at most max bytes, backing up so the cut never
// splits a multi-byte UTF-8 rune.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
