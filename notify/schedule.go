// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"fmt"
	"time"
)

// Schedule is a weekly point in time in a fixed location.
type Schedule struct {
	Weekday  time.Weekday
	Hour     int
	Minute   int
	Location *time.Location
}

// ParseSchedule builds a schedule from a day number counted from Monday
// (0 = Monday ... 6 = Sunday) and an "HH:MM" clock time.
func ParseSchedule(day int, clock string, loc *time.Location) (Schedule, error) {
	if day < 0 || day > 6 {
		return Schedule{}, fmt.Errorf("notify day must be between 0 (Monday) and 6 (Sunday), got %d", day)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid notify time %q: %w", clock, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return Schedule{
		Weekday:  time.Weekday((day + 1) % 7),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Location: loc,
	}, nil
}

// Next returns the first scheduled time strictly after the given instant.
func (s Schedule) Next(after time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	local := after.In(loc)

	days := (int(s.Weekday) - int(local.Weekday()) + 7) % 7
	next := time.Date(local.Year(), local.Month(), local.Day()+days, s.Hour, s.Minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+days+7, s.Hour, s.Minute, 0, 0, loc)
	}
	return next
}

func (s Schedule) String() string {
	return fmt.Sprintf("%s %02d:%02d", s.Weekday, s.Hour, s.Minute)
}
