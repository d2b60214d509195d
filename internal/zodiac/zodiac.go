// Package zodiac maps birth dates onto tropical zodiac signs.
package zodiac

import (
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the only accepted birth date format.
const DateLayout = "2006-01-02"

type span struct {
	sign       string
	startMonth time.Month
	startDay   int
}

// spans lists each sign by its first day, in calendar order. A date belongs to
// the last span that starts on or before it; dates before Aquarius wrap to
// Capricorn.
var spans = []span{
	{"Capricorn", time.January, 1},
	{"Aquarius", time.January, 20},
	{"Pisces", time.February, 19},
	{"Aries", time.March, 21},
	{"Taurus", time.April, 20},
	{"Gemini", time.May, 21},
	{"Cancer", time.June, 21},
	{"Leo", time.July, 23},
	{"Virgo", time.August, 23},
	{"Libra", time.September, 23},
	{"Scorpio", time.October, 23},
	{"Sagittarius", time.November, 22},
	{"Capricorn", time.December, 22},
}

// ErrInvalidDate is returned for birth dates that are not real YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid birth date")

// SignFor returns the sign for a month and day.
func SignFor(month time.Month, day int) string {
	sign := spans[0].sign
	for _, s := range spans {
		if month > s.startMonth || (month == s.startMonth && day >= s.startDay) {
			sign = s.sign
		}
	}
	return sign
}

// FromDOB parses a YYYY-MM-DD birth date and returns its sign.
func FromDOB(dob string) (string, error) {
	t, err := time.Parse(DateLayout, dob)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidDate, "%q", dob)
	}
	return SignFor(t.Month(), t.Day()), nil
}
