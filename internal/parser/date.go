package parser

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// time.Parse only knows the offset of the local zone's abbreviations; the
// rest come back as UTC. These are the names RFC 822 defines.
var rfc822Zones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"Z":   0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// ParseDate accepts the RFC 822 family used by RSS plus ISO 8601 forms.
// ok is false for anything else; such articles rank as the oldest.
func ParseDate(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return withZoneOffset(parsed), true
		}
	}
	return time.Time{}, false
}

func withZoneOffset(t time.Time) time.Time {
	name, offset := t.Zone()
	want, known := rfc822Zones[strings.ToUpper(name)]
	if !known || offset == want {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, want))
}
