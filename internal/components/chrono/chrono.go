package chrono

import (
	"strconv"
	"time"
	_ "time/tzdata"
)

var reykjavik *time.Location

func init() {
	var err error
	reykjavik, err = time.LoadLocation("Atlantic/Reykjavik")
	if err != nil {
		panic(err)
	}
}

// Reykjavik returns a [*time.Location] for Atlantic/Reykjavik
func Reykjavik() *time.Location {
	return reykjavik
}

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current time in Location().
	Now() time.Time
	Location() *time.Location
}

// StandardImpl is the standard implementation of API using the standard library.
type StandardImpl struct {
	location *time.Location
}

// NewStandardImpl is the constructor of StandardImpl, the clock is pinned to Atlantic/Reykjavik
// so that dates are rendered the way the court publishes them regardless of the host timezone.
func NewStandardImpl() StandardImpl {
	return StandardImpl{location: reykjavik}
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

func (s StandardImpl) Location() *time.Location {
	return s.location
}

// FixedImpl always returns the same instant, used in tests.
type FixedImpl struct {
	At time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.At.In(reykjavik)
}

func (f FixedImpl) Location() *time.Location {
	return reykjavik
}

var icelandicMonths = [...]string{
	"janúar", "febrúar", "mars", "apríl", "maí", "júní",
	"júlí", "ágúst", "september", "október", "nóvember", "desember",
}

// IcelandicMonth returns the lowercase Icelandic name of a month.
func IcelandicMonth(month time.Month) string {
	return icelandicMonths[month-1]
}

// IcelandicMonths returns all twelve month names in calendar order.
func IcelandicMonths() []string {
	out := make([]string, len(icelandicMonths))
	copy(out, icelandicMonths[:])
	return out
}

// FormatIcelandicDate renders t as "15. maí 2025".
func FormatIcelandicDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + ". " + IcelandicMonth(t.Month()) + " " + strconv.Itoa(t.Year())
}
