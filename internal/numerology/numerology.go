// Package numerology derives Pythagorean numerology scores from a name and a
// birth date.
//
// All functions are pure; the letter table is read-only package data.
package numerology

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// letterValues is the Pythagorean letter table.
var letterValues = map[rune]int{
	'A': 1, 'J': 1, 'S': 1,
	'B': 2, 'K': 2, 'T': 2,
	'C': 3, 'L': 3, 'U': 3,
	'D': 4, 'M': 4, 'V': 4,
	'E': 5, 'N': 5, 'W': 5,
	'F': 6, 'O': 6, 'X': 6,
	'G': 7, 'P': 7, 'Y': 7,
	'H': 8, 'Q': 8, 'Z': 8,
	'I': 9, 'R': 9,
}

// Y counts as a vowel.
const vowels = "AEIOUY"

// IsMasterNumber reports whether n is one of 11, 22, 33.
func IsMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce sums the decimal digits of n until the value is a single digit or a
// master number. The master check runs on every intermediate sum, so 29 stops
// at 11 instead of continuing to 2.
func Reduce(n int) int {
	for n > 9 && !IsMasterNumber(n) {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LifePath reduces the digits of a YYYY-MM-DD date. The date must split into
// exactly three dash-separated parts made of ASCII digits; it is not checked
// against the calendar, so "2024-13-45" is accepted.
func LifePath(dob string) (int, bool) {
	parts := strings.Split(dob, "-")
	if len(parts) != 3 {
		return 0, false
	}

	total := 0
	for _, part := range parts {
		for _, ch := range part {
			if ch < '0' || ch > '9' {
				return 0, false
			}
			total += int(ch - '0')
		}
	}

	return Reduce(total), true
}

// Expression reduces the letter values of every letter in name.
func Expression(name string) (int, bool) {
	letters := cleanLetters(name)
	if len(letters) == 0 {
		return 0, false
	}

	return Reduce(sumValues(letters)), true
}

// SoulUrge reduces the letter values of the vowels in name.
func SoulUrge(name string) (int, bool) {
	var vowelLetters []rune
	for _, ch := range cleanLetters(name) {
		if strings.ContainsRune(vowels, ch) {
			vowelLetters = append(vowelLetters, ch)
		}
	}
	if len(vowelLetters) == 0 {
		return 0, false
	}

	return Reduce(sumValues(vowelLetters)), true
}

// cleanLetters uppercases s with full case mapping, so ß becomes SS, then keeps
// its letters. Letters outside A-Z are kept too; they score 0 in the table.
func cleanLetters(s string) []rune {
	var letters []rune
	for _, ch := range cases.Upper(language.Und).String(s) {
		if unicode.IsLetter(ch) {
			letters = append(letters, ch)
		}
	}
	return letters
}

func sumValues(letters []rune) int {
	total := 0
	for _, ch := range letters {
		total += letterValues[ch]
	}
	return total
}

// Result holds the three scores. A nil field means the input could not be
// scored and is encoded as JSON null.
type Result struct {
	LifePath   *int `json:"lifePath"`
	Expression *int `json:"expression"`
	SoulUrge   *int `json:"soulUrge"`
}

// Compute scores name and dob.
func Compute(name, dob string) Result {
	return Result{
		LifePath:   optional(LifePath(dob)),
		Expression: optional(Expression(name)),
		SoulUrge:   optional(SoulUrge(name)),
	}
}

func optional(n int, ok bool) *int {
	if !ok {
		return nil
	}
	return &n
}
