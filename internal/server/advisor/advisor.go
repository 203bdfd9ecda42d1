// Package advisor tells a user whether a password is known to be weak: it
// looks the password up in a list of commonly used passwords, then asks a
// Pwned Passwords compatible range API how often it appeared in breaches.
package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/onepass/internal/logging"
)

// NoProblems is the message returned when no check matched.
const NoProblems = "No problems found with the password!"

// Advice is the outcome of a password check. Place is the rank in the common
// list or the breach count, and -1 when nothing was found.
type Advice struct {
	Place   int64  `json:"place"`
	Message string `json:"message"`
}

// Found reports whether any check matched.
func (a Advice) Found() bool { return a.Place >= 0 }

// RangeClient returns the breach counts of every SHA-1 hash whose first five
// hex characters equal prefix, keyed by the remaining 35 characters.
type RangeClient interface {
	Range(ctx context.Context, prefix string) (map[string]int64, error)
}

// Advisor runs the checks in order and stops at the first hit.
type Advisor struct {
	common *CommonList
	pwned  RangeClient
	log    logging.Logger
}

// New builds an Advisor. Either source may be nil, in which case its check
// is skipped.
func New(common *CommonList, pwned RangeClient, log logging.Logger) *Advisor {
	if log == nil {
		log = logging.Nop{}
	}
	return &Advisor{common: common, pwned: pwned, log: log.With("module", "advisor")}
}

// Check evaluates password. An error is returned only when the remote check
// could not be completed.
func (a *Advisor) Check(ctx context.Context, password string) (Advice, error) {
	if a.common != nil {
		if rank, ok := a.common.Rank(password); ok {
			place := formatCount(int64(rank))
			return Advice{
				Place:   int64(rank),
				Message: fmt.Sprintf("Password is at place %s of %s in the list of most used passwords", place, formatCount(int64(a.common.Len()))),
			}, nil
		}
	}

	if a.pwned != nil {
		count, err := a.breachCount(ctx, password)
		if err != nil {
			a.log.Warn(ctx, "breach range lookup failed", "error", err)
			return Advice{}, fmt.Errorf("breach lookup: %w", err)
		}
		if count > 0 {
			return Advice{
				Place:   count,
				Message: fmt.Sprintf("Password has been seen %s times before in database leaks", formatCount(count)),
			}, nil
		}
	}

	return Advice{Place: -1, Message: NoProblems}, nil
}

func (a *Advisor) breachCount(ctx context.Context, password string) (int64, error) {
	hash := sha1Hex(password)
	counts, err := a.pwned.Range(ctx, hash[:5])
	if err != nil {
		return 0, err
	}
	return counts[hash[5:]], nil
}

// formatCount groups digits in threes with dots: 1234567 -> "1.234.567".
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 || len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
