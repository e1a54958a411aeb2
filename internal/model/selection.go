package model

import (
	"fmt"
	"strings"
)

// Normalize lowercases and trims user input before matching.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ParseCity matches a city name case-insensitively.
func ParseCity(value string) (string, bool) {
	return match(value, Cities, false)
}

// ParseMonth matches a month name or "all".
func ParseMonth(value string) (string, bool) {
	return match(value, Months, true)
}

// ParseDay matches a weekday name or "all".
func ParseDay(value string) (string, bool) {
	return match(value, Days, true)
}

func match(value string, options []string, allowAll bool) (string, bool) {
	v := Normalize(value)
	if allowAll && v == AllFilter {
		return AllFilter, true
	}
	for _, opt := range options {
		if v == opt {
			return opt, true
		}
	}
	return "", false
}

// MonthIndex returns the 1-based month number for a supported month name.
func MonthIndex(month string) (int, bool) {
	v := Normalize(month)
	for i, m := range Months {
		if m == v {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthName returns the display name of a month number, or the number itself
// when it is outside the supported range.
func MonthName(n int) string {
	if n >= 1 && n <= len(Months) {
		return Title(Months[n-1])
	}
	return fmt.Sprintf("%d", n)
}

// Title upper-cases the first letter of each word.
func Title(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseSelection validates a full selection, as used by non-interactive commands.
func ParseSelection(city, month, day string) (Selection, error) {
	c, ok := ParseCity(city)
	if !ok {
		return Selection{}, fmt.Errorf("unknown city %q (available: %s)", city, strings.Join(Cities, ", "))
	}
	if strings.TrimSpace(month) == "" {
		month = AllFilter
	}
	m, ok := ParseMonth(month)
	if !ok {
		return Selection{}, fmt.Errorf("unknown month %q (available: %s, all)", month, strings.Join(Months, ", "))
	}
	if strings.TrimSpace(day) == "" {
		day = AllFilter
	}
	d, ok := ParseDay(day)
	if !ok {
		return Selection{}, fmt.Errorf("unknown day %q (available: %s, all)", day, strings.Join(Days, ", "))
	}
	return Selection{City: c, Month: m, Day: d}, nil
}

// String renders the selection the way it is echoed back to the user.
func (s Selection) String() string {
	return s.City + " " + s.Month + " " + s.Day
}
