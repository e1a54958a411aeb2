// Package model defines shared data structures.
package model

import "time"

// AllFilter disables the month or day filter.
const AllFilter = "all"

// Cities lists the supported cities in prompt order.
var Cities = []string{"chicago", "new york city", "washington"}

// Months lists the supported months; a month's filter value is its index + 1.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days lists the weekdays accepted by the day filter.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Selection is the (city, month, day) triple chosen for one exploration.
type Selection struct {
	City  string
	Month string
	Day   string
}

// CitySource maps a city to its CSV source.
type CitySource struct {
	Name         string `validate:"required"`
	File         string `validate:"required"`
	Demographics bool
}

// Settings is the resolved runtime configuration.
type Settings struct {
	DataDir  string       `validate:"required"`
	DBPath   string       `validate:"required"`
	PageSize int          `validate:"min=1,max=500"`
	LogLevel string       `validate:"oneof=trace debug info warn warning error fatal panic"`
	Cities   []CitySource `validate:"min=1,dive"`
}

// Exploration records one completed pass of the interactive loop.
type Exploration struct {
	ID          int64
	StartedAt   time.Time
	EndedAt     time.Time
	City        string
	Month       string
	Day         string
	Rows        int
	PagesViewed int
}
