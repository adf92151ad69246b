package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultSetName is used when a set is created with a blank name.
	DefaultSetName = "Set"

	// TimestampLayout is the createdAt format: UTC, millisecond precision,
	// e.g. "2024-01-01T10:00:00.000Z".
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	dayIDLayout = "2006-01-02"
)

var trMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// DayIDFor truncates t to its UTC calendar date, e.g. "2024-01-01".
func DayIDFor(t time.Time) string {
	return t.UTC().Format(dayIDLayout)
}

// ParseDayID is the inverse of DayIDFor. The result is midnight UTC.
func ParseDayID(id string) (time.Time, error) {
	t, err := time.Parse(dayIDLayout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day id %q", common.ErrInvalidInput, id)
	}
	return t, nil
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// TRDate formats t as a long Turkish date, e.g. "1 Ocak 2024".
// The calendar date is taken in UTC so it always agrees with DayIDFor.
func TRDate(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d %s %d", t.Day(), trMonths[t.Month()-1], t.Year())
}

// NewSetID returns a random set id such as "set_9f2c1ab4".
func NewSetID() string {
	s, err := common.MakeRandHexString(4)
	if err != nil {
		panic(err)
	}
	return "set_" + s
}

// NewWordID returns a word id made of the creation time in milliseconds and
// a short random suffix, e.g. "w_1704067200000_a1b2c3".
func NewWordID(now time.Time) string {
	s, err := common.MakeRandHexString(3)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("w_%d_%s", now.UnixMilli(), s)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a free-form label into a file-name friendly slug:
// accents are stripped, letters lowercased and every other run of
// characters collapsed into a single dash.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = nonAlnum.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
