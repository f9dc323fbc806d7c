package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casarural/internal/app"
	"casarural/internal/domain"
)

func TestNormalizeDate_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"05-03-2024", "2024-03-05"},
		{"01-06-2024", "2024-06-01"},
		{"31-12-1999", "1999-12-31"},
		{"29-02-2024", "2024-02-29"}, // leap day
		{"1-1-2024", "2024-01-01"},   // single-digit components
	}
	for _, c := range cases {
		got, err := app.NormalizeDate(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	cases := []string{
		"31-02-2024", // impossible calendar date
		"29-02-2023", // not a leap year
		"05-03",      // wrong component count
		"05-03-2024-1",
		"aa-03-2024",
		"05-bb-2024",
		"05-03-cccc",
		"",
		"2024-03-05", // already ISO: year lands in the day slot
	}
	for _, c := range cases {
		_, err := app.NormalizeDate(c)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", c)
	}
}
