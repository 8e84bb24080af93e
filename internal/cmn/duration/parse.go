package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dayPattern takes the whole numeric token so "1.5d" is seen as one value.
var dayPattern = regexp.MustCompile(`[\d.]+[dw]`)

// maxHours is the largest whole hour count a time.Duration can hold.
const maxHours = math.MaxInt64 / int64(time.Hour)

// Parse parses a signed duration in Go syntax extended with 'd' (24h) and
// 'w' (7d) units, e.g. "2d12h", "-1w", "90m". Unlike time.ParseDuration the
// day and week units are accepted; the sign applies to the whole value.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	if strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("invalid duration %q: sign must lead", sign+s)
	}

	var convErr error
	expanded := dayPattern.ReplaceAllStringFunc(s, func(match string) string {
		if convErr != nil {
			return match
		}
		hours, err := expandDays(match)
		if err != nil {
			convErr = err
			return match
		}
		return strconv.FormatInt(hours, 10) + "h"
	})
	if convErr != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", sign+s, convErr)
	}

	d, err := time.ParseDuration(sign + expanded)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", sign+s, err)
	}
	return d, nil
}

// expandDays converts a whole "<n>d" or "<n>w" token to hours.
func expandDays(token string) (int64, error) {
	count, unit := token[:len(token)-1], token[len(token)-1]
	if strings.Contains(count, ".") {
		return 0, fmt.Errorf("fractional %q is not supported, use hours", token)
	}
	n, err := strconv.ParseInt(count, 10, 64)
	if err != nil {
		return 0, err
	}
	per := int64(24)
	if unit == 'w' {
		per = 7 * 24
	}
	if n > maxHours/per {
		return 0, fmt.Errorf("%q overflows a duration", token)
	}
	return n * per, nil
}
