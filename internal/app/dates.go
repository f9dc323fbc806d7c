package app

import (
	"strconv"
	"strings"
	"time"

	"casarural/internal/domain"
)

// NormalizeDate converts a DD-MM-YYYY input date to the YYYY-MM-DD form the
// stores keep. Pure function: exactly three numeric dash-separated parts,
// and the parts must name a real calendar date (31-02-2024 is rejected).
func NormalizeDate(s string) (string, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", domain.ErrInvalidDate
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", domain.ErrInvalidDate
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", domain.ErrInvalidDate
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return "", domain.ErrInvalidDate
	}

	// time.Date normalizes overflow (Feb 31 -> Mar 2), so round-trip the
	// components to detect impossible dates instead of silently shifting.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", domain.ErrInvalidDate
	}
	return t.Format("2006-01-02"), nil
}
