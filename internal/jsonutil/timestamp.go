package jsonutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/qasymphony/qtest-ci/internal/errors"
)

// DateFormat is the layout timestamps are written in.
const DateFormat = "2006-01-02T15:04:05.000-0700"

// timestampLayouts are tried in order. qTest endpoints differ in how many fractional digits they send.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000000Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05.0000Z07:00",
	"2006-01-02T15:04:05.00000Z07:00",
	"2006-01-02T15:04:05.0000000Z07:00",
	"2006-01-02T15:04:05.00000000Z07:00",
	"2006-01-02T15:04:05.000000000Z07:00",
	"2006-01-02T15:04:05.0Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// numericOffsetRegexp matches a trailing "+hh", "+hhmm" or "+hh:mm" after the time of day.
var numericOffsetRegexp = regexp.MustCompile(`^(.*T\d{2}:\d{2}:\d{2}(?:\.\d+)?)([+-])(\d{2}):?(\d{2})?$`)

// ParseTimestamp reads a timestamp sent by qTest. A positive integer is taken as milliseconds since the epoch;
// anything else is matched against timestampLayouts. It returns nil if nothing matches.
func (c *Codec) ParseTimestamp(text string) *time.Time {
	return parseTimestamp(text, c.location, c.log)
}

// FormatTimestamp renders t in DateFormat.
func FormatTimestamp(t time.Time) string {
	return t.Format(DateFormat)
}

// CurrentDateString is the current time in DateFormat.
func CurrentDateString() string {
	return FormatTimestamp(time.Now())
}

func parseTimestamp(text string, location *time.Location, log *zap.SugaredLogger) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if millis, err := strconv.ParseInt(text, 10, 64); err == nil && millis > 0 {
		t := time.UnixMilli(millis).UTC()
		return &t
	}

	normalized := normalizeOffset(text)
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, normalized, location)
		if err != nil {
			log.Debugf("unable to parse timestamp %q with layout %q: %s", text, layout, err)
			continue
		}

		return &t
	}

	log.Warnf("unable to parse timestamp %q with any known layout", text)
	return nil
}

func normalizeOffset(text string) string {
	matches := numericOffsetRegexp.FindStringSubmatch(text)
	if matches == nil {
		return text
	}

	minutes := matches[4]
	if minutes == "" {
		minutes = "00"
	}

	return matches[1] + matches[2] + matches[3] + ":" + minutes
}

// Timestamp is a time that serializes in DateFormat and deserializes leniently, like ParseTimestamp.
type Timestamp struct {
	time.Time
}

// MarshalJSON renders the timestamp in DateFormat. The zero timestamp is null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return []byte(strconv.Quote(FormatTimestamp(t.Time))), nil
}

// UnmarshalJSON accepts epoch milliseconds (as number or string) and any of the known layouts.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	parsed := parseTimestamp(raw, time.UTC, zap.NewNop().Sugar())
	if parsed == nil {
		return errors.NewInputError("unable to parse timestamp %q", raw)
	}

	t.Time = *parsed
	return nil
}
