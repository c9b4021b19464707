// Purpose: Convert between seconds and the pretty (1h2m3s) and clock (1:02:03) notations.
// Exports: SecondsToPretty, SecondsToClock, PrettyToSeconds, ClockToSeconds.
// Role: Shared by text templates and the free-text input grammar.
// Invariants: Zero renders as "0s" in both notations; negatives carry a leading "-".
// Notes: Parsers accept bare digits as seconds and reject totals that overflow int.
package timer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockTimeRegex  = regexp.MustCompile(`^(\d+:)?\d+:\d+$`)
	prettyTimeRegex = regexp.MustCompile(`^(\d+h)?(\d+m)?(\d+s)?$`)
)

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitSeconds(secs int) (sign string, hrs, mins, rest int) {
	if secs < 0 {
		sign = "-"
		secs = -secs
	}
	hrs, secs = secs/3600, secs%3600
	mins, rest = secs/60, secs%60
	return sign, hrs, mins, rest
}

// SecondsToPretty renders 3723 as "1h2m3s", omitting zero units.
func SecondsToPretty(secs int) string {
	sign, hrs, mins, rest := splitSeconds(secs)
	if hrs == 0 && mins == 0 && rest == 0 {
		return sign + "0s"
	}
	var b strings.Builder
	b.WriteString(sign)
	if hrs > 0 {
		fmt.Fprintf(&b, "%dh", hrs)
	}
	if mins > 0 {
		fmt.Fprintf(&b, "%dm", mins)
	}
	if rest > 0 {
		fmt.Fprintf(&b, "%ds", rest)
	}
	return b.String()
}

// SecondsToClock renders 3723 as "1:02:03" and 125 as "2:05".
func SecondsToClock(secs int) string {
	sign, hrs, mins, rest := splitSeconds(secs)
	if hrs == 0 && mins == 0 && rest == 0 {
		return sign + "0s"
	}
	if hrs > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, hrs, mins, rest)
	}
	return fmt.Sprintf("%s%d:%02d", sign, mins, rest)
}

func PrettyToSeconds(text string) (int, error) {
	text = strings.TrimSpace(text)
	if isDigits(text) {
		return atoiTime(text, ErrBadPrettyTime)
	}
	match := prettyTimeRegex.FindStringSubmatch(text)
	if text == "" || match == nil {
		return 0, newError(ErrBadPrettyTime, "bad pretty time %q", text)
	}
	total := 0
	for i, unit := range []int{3600, 60, 1} {
		part := match[i+1]
		if part == "" {
			continue
		}
		n, err := atoiTime(part[:len(part)-1], ErrBadPrettyTime)
		if err != nil {
			return 0, err
		}
		var ok bool
		if total, ok = addScaled(total, n, unit); !ok {
			return 0, newError(ErrBadPrettyTime, "time %q out of range", text)
		}
	}
	return total, nil
}

func ClockToSeconds(text string) (int, error) {
	text = strings.TrimSpace(text)
	if isDigits(text) {
		return atoiTime(text, ErrBadClockTime)
	}
	if !clockTimeRegex.MatchString(text) {
		return 0, newError(ErrBadClockTime, "bad clock time %q", text)
	}
	total := 0
	for _, part := range strings.Split(text, ":") {
		n, err := atoiTime(part, ErrBadClockTime)
		if err != nil {
			return 0, err
		}
		var ok bool
		if total, ok = addScaled(n, total, 60); !ok {
			return 0, newError(ErrBadClockTime, "time %q out of range", text)
		}
	}
	return total, nil
}

// addScaled returns base + n*unit for non-negative operands, or false on overflow.
func addScaled(base, n, unit int) (int, bool) {
	if n > (math.MaxInt-base)/unit {
		return 0, false
	}
	return base + n*unit, true
}

// saturatingAdd adds a delta to a non-negative seconds value, pinning at math.MaxInt and 0.
func saturatingAdd(secs, delta int) int {
	if delta > 0 && secs > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(secs+delta, 0)
}

func atoiTime(text string, kind error) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, newError(kind, "time %q out of range", text)
	}
	return n, nil
}
