// Package timeparse resolves natural language date and clock phrases into
// absolute values. Relative phrases are anchored to an injected instant and
// always resolve forward in time, never into the past.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Patterns for date phrase parsing.
var (
	// ordinalPattern strips English ordinal suffixes: "March 5th" -> "March 5".
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)

	// monthDayPattern matches "march 5", "march 5 2026" and "march 5, 2026".
	monthDayPattern = regexp.MustCompile(`\b([a-z]+)\.?\s+(\d{1,2})(?:\s*,?\s+(\d{4}))?\b`)

	// dayMonthPattern matches "5 march" and "5 march 2026".
	dayMonthPattern = regexp.MustCompile(`\b(\d{1,2})\s+([a-z]+)(?:\s*,?\s+(\d{4}))?\b`)

	weekdayPattern = regexp.MustCompile(`\b(?:next|this|coming)?\s*(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// standardFormats are tried verbatim before any phrase rules kick in.
var standardFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// Parser resolves date phrases in a single configured timezone.
type Parser struct {
	loc *time.Location
}

// NewParser creates a parser operating in the given timezone. A nil location
// falls back to time.Local.
func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}
	return &Parser{loc: loc}
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.loc
}

// ResolveDate resolves a date phrase into an absolute calendar date anchored
// to the provided instant. Relative and ambiguous phrases resolve to the
// nearest future occurrence. It reports false when the phrase does not carry
// a recognizable date.
func (p *Parser) ResolveDate(phrase string, anchor time.Time) (time.Time, bool) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return time.Time{}, false
	}

	anchor = anchor.In(p.loc)
	today := p.midnight(anchor)

	if t, ok := p.tryStandardFormats(phrase); ok {
		return t, true
	}

	normalized := strings.ToLower(ordinalPattern.ReplaceAllString(phrase, "$1"))
	normalized = strings.Join(strings.Fields(normalized), " ")

	if t, ok := p.tryRelativeKeywords(normalized, today); ok {
		return t, true
	}

	if t, ok := p.tryWeekday(normalized, today); ok {
		return t, true
	}

	if t, ok := p.tryMonthDay(normalized, today); ok {
		return t, true
	}

	return time.Time{}, false
}

func (p *Parser) tryStandardFormats(phrase string) (time.Time, bool) {
	for _, format := range standardFormats {
		if t, err := time.ParseInLocation(format, phrase, p.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (p *Parser) tryRelativeKeywords(phrase string, today time.Time) (time.Time, bool) {
	switch {
	case strings.Contains(phrase, "day after tomorrow"):
		return today.AddDate(0, 0, 2), true
	case strings.Contains(phrase, "tomorrow"):
		return today.AddDate(0, 0, 1), true
	case strings.Contains(phrase, "today"):
		return today, true
	case strings.Contains(phrase, "next week"):
		return today.AddDate(0, 0, 7), true
	case strings.Contains(phrase, "next month"):
		return today.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

// tryWeekday resolves a weekday mention to its nearest strictly future
// occurrence: on a Wednesday, both "Monday" and "next Monday" mean the
// Monday five days out.
func (p *Parser) tryWeekday(phrase string, today time.Time) (time.Time, bool) {
	matches := weekdayPattern.FindStringSubmatch(phrase)
	if matches == nil {
		return time.Time{}, false
	}

	target, ok := weekdays[matches[1]]
	if !ok {
		return time.Time{}, false
	}

	diff := (int(target) - int(today.Weekday()) + 7) % 7
	if diff == 0 {
		diff = 7
	}

	return today.AddDate(0, 0, diff), true
}

func (p *Parser) tryMonthDay(phrase string, today time.Time) (time.Time, bool) {
	if t, ok := p.matchMonthDay(monthDayPattern, phrase, today, 1, 2); ok {
		return t, true
	}
	return p.matchMonthDay(dayMonthPattern, phrase, today, 2, 1)
}

func (p *Parser) matchMonthDay(pattern *regexp.Regexp, phrase string, today time.Time, monthIdx, dayIdx int) (time.Time, bool) {
	for _, matches := range pattern.FindAllStringSubmatch(phrase, -1) {
		month, ok := months[matches[monthIdx]]
		if !ok {
			continue
		}

		day, err := strconv.Atoi(matches[dayIdx])
		if err != nil || day < 1 || day > 31 {
			continue
		}

		if matches[3] != "" {
			year, err := strconv.Atoi(matches[3])
			if err != nil {
				continue
			}
			return time.Date(year, month, day, 0, 0, 0, 0, p.loc), true
		}

		// Yearless dates roll forward: a month-day already past resolves
		// to next year's occurrence.
		t := time.Date(today.Year(), month, day, 0, 0, 0, 0, p.loc)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
		return t, true
	}

	return time.Time{}, false
}

func (p *Parser) midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}
