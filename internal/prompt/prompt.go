// Package prompt chooses the meal-question text for the current time of day.
package prompt

import (
	"strings"
	"time"
)

type Window int

const (
	Morning Window = iota
	Noon
	Night
)

func (w Window) String() string {
	switch w {
	case Morning:
		return "morning"
	case Noon:
		return "noon"
	default:
		return "night"
	}
}

// WindowAt maps an hour of day (0-23) to its window: [4,11) morning,
// [11,17) noon, everything else night.
func WindowAt(hour int) Window {
	switch {
	case hour >= 4 && hour < 11:
		return Morning
	case hour >= 11 && hour < 17:
		return Noon
	default:
		return Night
	}
}

// Texts holds the configured prompt variants. Empty window texts fall back
// to Default.
type Texts struct {
	Default string
	Morning string
	Noon    string
	Night   string
}

func (t Texts) resolved() (morning, noon, night string) {
	or := func(s string) string {
		if strings.TrimSpace(s) != "" {
			return s
		}
		return t.Default
	}
	return or(t.Morning), or(t.Noon), or(t.Night)
}

// HourIn returns the hour of now in the named zone, or the process-local
// hour when tz is empty or unknown.
func HourIn(now time.Time, tz string) int {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return now.In(loc).Hour()
		}
	}
	return now.Local().Hour()
}

// Pick returns the text for the window containing now in tz. It reports
// false when no text is configured for that window.
func Pick(now time.Time, tz string, t Texts) (string, bool) {
	morning, noon, night := t.resolved()
	if strings.TrimSpace(morning+noon+night) == "" {
		return "", false
	}

	var text string
	switch WindowAt(HourIn(now, tz)) {
	case Morning:
		text = morning
	case Noon:
		text = noon
	default:
		text = night
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
