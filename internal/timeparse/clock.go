package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockPattern matches a 12-hour clock phrase with a mandatory meridiem
// marker, e.g. "2 PM", "2:30pm", "11 AM".
var clockPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)

// Clock is a time of day in 24-hour form.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ResolveClock parses a clock phrase into a 24-hour time of day. It reports
// false for anything it cannot parse instead of returning an error, so a
// stray time-like substring never aborts a whole submission.
func ResolveClock(phrase string) (Clock, bool) {
	matches := clockPattern.FindStringSubmatch(strings.TrimSpace(phrase))
	if matches == nil {
		return Clock{}, false
	}

	hour, err := strconv.Atoi(matches[1])
	if err != nil || hour < 1 || hour > 12 {
		return Clock{}, false
	}

	minute := 0
	if matches[2] != "" {
		minute, err = strconv.Atoi(matches[2])
		if err != nil || minute > 59 {
			return Clock{}, false
		}
	}

	switch strings.ToLower(matches[3]) {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}

	return Clock{Hour: hour, Minute: minute}, true
}
