package domain

import "time"

// TimestampFormat is the layout entries are stamped with.
const TimestampFormat = time.RFC3339Nano

// timestampLayouts covers the formats seen in persisted documents: RFC 3339
// and zone-less ISO-8601 as written by earlier versions of the app.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a stored entry timestamp.
func ParseTimestamp(value string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var ts time.Time
		ts, err = time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// TimestampAfter reports whether timestamp a is later than timestamp b.
// Values are compared as parsed times: RFC 3339 is not fixed-width (trailing
// zeros are dropped) and older documents carry zone-less microsecond stamps,
// so lexicographic comparison would misorder them. Values that fail to parse
// fall back to string comparison.
func TimestampAfter(a, b string) bool {
	ta, errA := ParseTimestamp(a)
	tb, errB := ParseTimestamp(b)
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a > b
}
