// Package deadline normalizes free-text deadline phrases into concrete timestamps.
//
// Normalization is a pure function of the phrase and an explicit reference time;
// it never reads the ambient clock. Ambiguous numeric dates (03/04/2025) follow a
// fixed day-first convention. Inputs that can only be valid month-first (04/13/2025)
// parse month-first, which keeps the rule deterministic for every input.
package deadline

import (
	"regexp"
	"strings"
	"time"
)

// Kind classifies how a phrase was resolved.
type Kind int

const (
	// KindUnresolved means the phrase matched no known pattern.
	KindUnresolved Kind = iota
	// KindAbsolute means the phrase carried an explicit calendar date.
	KindAbsolute
	// KindRelative means the phrase was resolved against the reference time.
	KindRelative
)

func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindRelative:
		return "relative"
	default:
		return "unresolved"
	}
}

// Resolved is the outcome of normalizing a deadline phrase.
type Resolved struct {
	Kind Kind
	At   time.Time
}

// Time returns the resolved instant, or nil when the phrase was unresolved.
func (r Resolved) Time() *time.Time {
	if r.Kind == KindUnresolved {
		return nil
	}
	t := r.At
	return &t
}

var (
	durationRe = regexp.MustCompile(`^in (\d+) (hour|hours|day|days|week|weeks)$`)
	weekdayRe  = regexp.MustCompile(`^(?:next )?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// dateOnlyLayouts are tried in order; day-first numeric forms come before
// month-first so that ambiguous dates always resolve day-first.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"2.1.2006",
	"01/02/2006", // month-first, reached only when day-first cannot parse
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
}

var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Normalize resolves a free-text deadline phrase against ref.
// Unrecognized phrases yield KindUnresolved; callers must treat that as
// "no deadline", never as an error.
func Normalize(raw string, ref time.Time) Resolved {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Resolved{}
	}

	// Leading connectives the model tends to emit ("by Friday", "due tomorrow").
	for _, prefix := range []string{"by ", "due ", "before ", "until ", "on "} {
		if strings.HasPrefix(phrase, prefix) {
			phrase = strings.TrimSpace(strings.TrimPrefix(phrase, prefix))
			break
		}
	}
	if phrase == "" {
		return Resolved{}
	}

	switch phrase {
	case "today", "eod", "end of day", "asap", "cob":
		return Resolved{Kind: KindRelative, At: endOfDay(ref)}
	case "tomorrow":
		return Resolved{Kind: KindRelative, At: endOfDay(ref.AddDate(0, 0, 1))}
	case "next week":
		return Resolved{Kind: KindRelative, At: endOfDay(ref.AddDate(0, 0, 7))}
	case "end of week", "eow", "this week":
		// The next Sunday on or after the reference date.
		days := (int(time.Sunday) - int(ref.Weekday()) + 7) % 7
		return Resolved{Kind: KindRelative, At: endOfDay(ref.AddDate(0, 0, days))}
	case "end of month", "eom":
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Resolved{Kind: KindRelative, At: endOfDay(first.AddDate(0, 1, -1))}
	}

	if m := weekdayRe.FindStringSubmatch(phrase); m != nil {
		target := weekdays[m[1]]
		// Next occurrence strictly after the reference day, never the same day.
		delta := (int(target) - int(ref.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return Resolved{Kind: KindRelative, At: endOfDay(ref.AddDate(0, 0, delta))}
	}

	if m := durationRe.FindStringSubmatch(phrase); m != nil {
		n := atoi(m[1])
		switch strings.TrimSuffix(m[2], "s") {
		case "hour":
			return Resolved{Kind: KindRelative, At: ref.Add(time.Duration(n) * time.Hour)}
		case "day":
			return Resolved{Kind: KindRelative, At: ref.AddDate(0, 0, n)}
		case "week":
			return Resolved{Kind: KindRelative, At: ref.AddDate(0, 0, 7*n)}
		}
	}

	if t, err := time.Parse(time.RFC3339, strings.ToUpper(phrase)); err == nil {
		return Resolved{Kind: KindAbsolute, At: t}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, phrase, ref.Location()); err == nil {
			return Resolved{Kind: KindAbsolute, At: t}
		}
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, phrase, ref.Location()); err == nil {
			return Resolved{Kind: KindAbsolute, At: endOfDay(t)}
		}
	}

	return Resolved{}
}

// endOfDay returns 23:59:59 on the same calendar day as t.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
