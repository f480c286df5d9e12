package validation

import (
	"math"
	"regexp"
	"strings"
)

const (
	maxNameLength = 100
	maxCalories   = 5000
	maxMacroGrams = 1000
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeString strips HTML tags and control characters, trims whitespace
// and caps the result at maxLength runes.
func SanitizeString(input string, maxLength int) string {
	s := htmlTagPattern.ReplaceAllString(input, "")

	s = strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)

	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}
	return string(runes)
}

// Name validates a food, recipe or exercise name. Returns the sanitized
// name and false when nothing usable remains.
func Name(input string) (string, bool) {
	s := SanitizeString(input, maxNameLength)
	if s == "" {
		return "", false
	}
	return s, true
}

// Calories validates a calorie value against the 0-5000 kcal range and
// rounds to the nearest integer.
func Calories(input float64) (int, bool) {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		return 0, false
	}
	if input < 0 || input > maxCalories {
		return 0, false
	}
	return int(math.Round(input)), true
}

// Macro validates a protein/carbs/fat value in grams (0-1000) and rounds
// to one decimal place.
func Macro(input float64) (float64, bool) {
	if math.IsNaN(input) || math.IsInf(input, 0) {
		return 0, false
	}
	if input < 0 || input > maxMacroGrams {
		return 0, false
	}
	return math.Round(input*10) / 10, true
}

// WorkoutMinutes validates an accumulated workout duration increment.
func WorkoutMinutes(minutes int) bool {
	return minutes > 0 && minutes <= 24*60
}
