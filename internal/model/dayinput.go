package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// ParseDayInput turns user input into a Day. ISO dates are taken as is;
// anything else ("yesterday", "last monday", "3 days ago") goes through
// natural language parsing relative to now.
func ParseDayInput(input string, now time.Time) (Day, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return DayOf(now), nil
	}

	if day, err := ParseDay(input); err == nil {
		return day, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return "", fmt.Errorf("cannot understand date %q", input)
	}
	return DayOf(result.Time), nil
}
