// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package person holds the Person record and the calendar math derived from it.
package person

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Clock returns the current instant. Only the calendar date is used.
type Clock func() time.Time

// SystemClock is the wall clock.
var SystemClock Clock = time.Now

// Person is a plain data holder. Empty names and future birth dates are
// valid values; nothing is enforced here.
type Person struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
}

// Age returns the age in whole years on the date given by clock.
func (p Person) Age(clock Clock) int {
	if clock == nil {
		clock = SystemClock
	}
	return AgeOn(p.DateOfBirth, clock())
}

// AgeOn returns the number of whole years between dob and today.
//
// The year difference is reduced by one when the birthday has not come
// around yet this year. Future birth dates yield 0.
func AgeOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if age > 0 && birthdayPending(dob, today) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// birthdayPending reports whether dob's month/day is still ahead of today's
// month/day within the same year.
func birthdayPending(dob, today time.Time) bool {
	if dob.Month() != today.Month() {
		return dob.Month() > today.Month()
	}
	return dob.Day() > today.Day()
}

// Date truncates t to its calendar date at midnight UTC.
//
// Dates of birth are civil dates, so two values describing the same
// year/month/day compare equal regardless of time of day or zone.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date reported by clock.
func Today(clock Clock) time.Time {
	if clock == nil {
		clock = SystemClock
	}
	return Date(clock())
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// DateLayout is the textual form of a date of birth.
const DateLayout = strfmt.RFC3339FullDate

// ErrInvalidDate is returned by ParseDate.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD date of birth.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strfmt.IsDate(s) {
		return time.Time{}, fmt.Errorf("%w %q: want %s", ErrInvalidDate, s, DateLayout)
	}
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return Date(time.Time(d)), nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(t time.Time) string {
	return strfmt.Date(t).String()
}
