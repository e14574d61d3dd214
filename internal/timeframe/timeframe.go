package timeframe

import (
	"fmt"
	"strconv"
	"strings"

	"volumeProfiler/internal/ports"
)

// Timeframe is a chart resolution in platform notation: a bare number is
// minutes ("1", "15", "240"), a "D"/"W"/"M" suffix is days/weeks/months
// ("1D", "2D", "1W").
type Timeframe string

const (
	minutesPerDay   = 1440
	minutesPerWeek  = 7 * minutesPerDay
	minutesPerMonth = 30 * minutesPerDay
)

// Minutes converts a timeframe to its bar duration in minutes.
func (tf Timeframe) Minutes() (int, error) {
	s := strings.ToUpper(strings.TrimSpace(string(tf)))
	if s == "" {
		return 0, fmt.Errorf("%w: empty timeframe", ports.ErrInvalidArgument)
	}

	multiplier := 1
	switch s[len(s)-1] {
	case 'D':
		multiplier = minutesPerDay
		s = s[:len(s)-1]
	case 'W':
		multiplier = minutesPerWeek
		s = s[:len(s)-1]
	case 'M':
		multiplier = minutesPerMonth
		s = s[:len(s)-1]
	}
	if s == "" {
		// "D" alone means one day, matching platform shorthand.
		return multiplier, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: cannot parse timeframe %q", ports.ErrInvalidArgument, string(tf))
	}
	return n * multiplier, nil
}
