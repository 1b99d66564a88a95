// Package policy is the single source of the account-data rules the
// platform enforces: email shape, Spanish telephone format and password
// strength. Both the request validators and the services consult it, so the
// two layers cannot drift apart.
package policy

import (
	"regexp"
	"strings"
)

var (
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Spanish mobile/landline numbers: leading 6, 7 or 9 plus 8 digits.
	phoneRx = regexp.MustCompile(`^[679][0-9]{8}$`)
)

func ValidEmail(email string) bool   { return emailRx.MatchString(email) }
func ValidTelephone(tel string) bool { return phoneRx.MatchString(tel) }

// ValidPassword requires at least 8 characters with an upper-case letter, a
// lower-case letter and a digit. RE2 has no lookahead, so the composed
// pattern is expressed as separate checks.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	return strings.ContainsAny(pw, "abcdefghijklmnopqrstuvwxyz") &&
		strings.ContainsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") &&
		strings.ContainsAny(pw, "0123456789")
}
