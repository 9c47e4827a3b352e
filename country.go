package countries

import (
	"fmt"
	"slices"
	"time"
	_ "time/tzdata" // resolve zones without a host timezone database
)

// Country is a single record from the bundled dataset.
// Values are never modified after load.
type Country struct {
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Alpha2      string   `json:"alpha2"`   // ISO 3166-1 alpha-2 (e.g., "IN")
	Alpha3      string   `json:"alpha3"`   // ISO 3166-1 alpha-3 (e.g., "IND")
	DialCode    string   `json:"dialCode"` // International dial prefix (e.g., "+91")
	Timezones   []string `json:"timezones"`
	Capital     string   `json:"capital"`
	Region      string   `json:"region"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Description string   `json:"description"`
}

// clone returns a copy that shares no backing arrays with c.
func (c Country) clone() Country {
	c.Timezones = slices.Clone(c.Timezones)
	return c
}

// OffsetResolver resolves a timezone identifier to its base UTC offset.
type OffsetResolver func(tz string) (time.Duration, error)

// StandardOffset returns the standard (non-daylight) UTC offset of an IANA
// zone for the current year. Daylight saving only ever moves clocks forward
// of standard time, so the smaller of the January and July offsets is the base.
func StandardOffset(tz string) (time.Duration, error) {
	if tz == "" || tz == "Local" {
		return 0, fmt.Errorf("%w: timezone %q", ErrInvalidArgument, tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0, err
	}
	year := time.Now().Year()
	_, jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return time.Duration(min(jan, jul)) * time.Second, nil
}

// FormatOffset renders an offset as "UTC+HH:MM" or "UTC-HH:MM".
func FormatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// UTCOffsets returns one offset string per distinct base offset of the
// country's timezones, in first-seen order. Unresolvable zones are skipped.
func (c Country) UTCOffsets() []string {
	return c.OffsetsWith(StandardOffset)
}

// OffsetsWith is UTCOffsets with a caller-supplied resolver.
func (c Country) OffsetsWith(resolve OffsetResolver) []string {
	offsets := make([]string, 0, len(c.Timezones))
	seen := make(map[string]bool, len(c.Timezones))
	for _, tz := range c.Timezones {
		d, err := resolve(tz)
		if err != nil {
			continue
		}
		s := FormatOffset(d)
		if seen[s] {
			continue
		}
		seen[s] = true
		offsets = append(offsets, s)
	}
	return offsets
}

// String renders "<emoji> <name> (<dialCode>, <first UTC offset>)".
func (c Country) String() string {
	return c.Format(StandardOffset)
}

// Format is String with a caller-supplied resolver.
func (c Country) Format(resolve OffsetResolver) string {
	first := ""
	if offsets := c.OffsetsWith(resolve); len(offsets) > 0 {
		first = offsets[0]
	}
	return fmt.Sprintf("%s %s (%s, %s)", c.Emoji, c.Name, c.DialCode, first)
}
