package services

import (
	"regexp"

	"github.com/dmitrijs2005/onepass/internal/common"
)

// MaxUsernameLength bounds usernames in bytes; every allowed character is ASCII.
const MaxUsernameLength = 254

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\-.!@$]+$`)
	allDigits       = regexp.MustCompile(`^[0-9]+$`)
)

// reservedUsernames collide with route segments of the HTTP API and UI.
var reservedUsernames = map[string]struct{}{
	"api":            {},
	"users":          {},
	"auth":           {},
	"user":           {},
	"vault":          {},
	"static":         {},
	"check-password": {},
	"settings":       {},
	"not-found":      {},
	"create":         {},
}

// ValidateUsername returns common.ErrUsernameInvalid unless name is 1 to
// MaxUsernameLength allowed characters, is not purely numeric and is not
// reserved.
func ValidateUsername(name string) error {
	if len(name) == 0 || len(name) > MaxUsernameLength {
		return common.ErrUsernameInvalid
	}
	if !usernamePattern.MatchString(name) || allDigits.MatchString(name) {
		return common.ErrUsernameInvalid
	}
	if _, reserved := reservedUsernames[name]; reserved {
		return common.ErrUsernameInvalid
	}
	return nil
}
