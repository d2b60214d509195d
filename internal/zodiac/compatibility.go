package zodiac

import (
	"strings"

	"github.com/pkg/errors"
)

// NeutralScore is the compatibility of any pair the table does not rank.
const NeutralScore = 70

// ErrUnknownSign is returned for names that are not one of the twelve signs.
var ErrUnknownSign = errors.New("unknown zodiac sign")

// affinity ranks each sign's best matches. Lookups fall back to the reverse
// pair before NeutralScore, so a pair listed one way only still scores.
var affinity = map[string]map[string]int{
	"Aries":       {"Leo": 88, "Sagittarius": 85, "Gemini": 78, "Libra": 72},
	"Taurus":      {"Virgo": 86, "Capricorn": 84, "Cancer": 78, "Scorpio": 72},
	"Gemini":      {"Libra": 86, "Aquarius": 84, "Aries": 78, "Sagittarius": 70},
	"Cancer":      {"Scorpio": 86, "Pisces": 84, "Taurus": 78, "Capricorn": 70},
	"Leo":         {"Aries": 88, "Sagittarius": 85, "Libra": 78, "Aquarius": 72},
	"Virgo":       {"Taurus": 86, "Capricorn": 84, "Cancer": 76, "Pisces": 70},
	"Libra":       {"Gemini": 86, "Aquarius": 84, "Leo": 78, "Aries": 72},
	"Scorpio":     {"Cancer": 86, "Pisces": 84, "Virgo": 76, "Taurus": 72},
	"Sagittarius": {"Aries": 85, "Leo": 84, "Libra": 76, "Gemini": 70},
	"Capricorn":   {"Taurus": 84, "Virgo": 82, "Pisces": 74, "Cancer": 70},
	"Aquarius":    {"Gemini": 84, "Libra": 82, "Sagittarius": 76, "Leo": 72},
	"Pisces":      {"Cancer": 84, "Scorpio": 82, "Capricorn": 74, "Virgo": 70},
}

// ParseSign returns the canonical name of a sign, matched case-insensitively.
func ParseSign(name string) (string, error) {
	for sign := range affinity {
		if strings.EqualFold(sign, strings.TrimSpace(name)) {
			return sign, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownSign, "%q", name)
}

// Compatibility scores two signs between NeutralScore and 88.
func Compatibility(a, b string) (int, error) {
	signA, err := ParseSign(a)
	if err != nil {
		return 0, err
	}
	signB, err := ParseSign(b)
	if err != nil {
		return 0, err
	}

	if score, ok := affinity[signA][signB]; ok {
		return score, nil
	}
	if score, ok := affinity[signB][signA]; ok {
		return score, nil
	}
	return NeutralScore, nil
}
