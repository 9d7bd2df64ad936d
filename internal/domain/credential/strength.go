// Package credential scores password candidates for the password manager
// views. Nothing here stores or encrypts secrets.
package credential

import "strings"

// Strength buckets a Score.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

const (
	maxScore      = 100
	mediumAt      = 40
	strongAt      = 70
	varietyCap    = 20
	repeatRunSize = 3
	specialChars  = `!@#$%^&*(),.?":{}|<>`
)

var commonFragments = []string{"password", "123456", "qwerty", "admin", "letmein", "welcome"}

// Report is the result of scoring one password.
type Report struct {
	Score    int      `json:"score"`
	Strength Strength `json:"strength"`
}

// Evaluate scores password and buckets the score.
func Evaluate(password string) Report {
	score := Score(password)
	return Report{Score: score, Strength: StrengthOf(score)}
}

// StrengthOf buckets a score from Score.
func StrengthOf(score int) Strength {
	switch {
	case score >= strongAt:
		return StrengthStrong
	case score >= mediumAt:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

// Score rates password from 0 to 100. Length, character classes and
// distinct characters add points; runs of a repeated character, single
// class passwords and well-known fragments take them away.
func Score(password string) int {
	runes := []rune(password)
	score := 0

	for _, n := range []int{8, 12, 16} {
		if len(runes) >= n {
			score += 10
		}
	}

	var lower, upper, digit, special bool
	letterOnly, digitOnly := len(runes) > 0, len(runes) > 0
	unique := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		unique[r] = struct{}{}
		isLower := r >= 'a' && r <= 'z'
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		lower = lower || isLower
		upper = upper || isUpper
		digit = digit || isDigit
		special = special || strings.ContainsRune(specialChars, r)
		letterOnly = letterOnly && (isLower || isUpper)
		digitOnly = digitOnly && isDigit
	}
	for _, has := range []bool{lower, upper, digit, special} {
		if has {
			score += 10
		}
	}
	score += min(varietyCap, len(unique)*2)

	if hasRepeatRun(runes, repeatRunSize) {
		score -= 10
	}
	if letterOnly {
		score -= 10
	}
	if digitOnly {
		score -= 10
	}

	folded := strings.ToLower(password)
	for _, frag := range commonFragments {
		if strings.Contains(folded, frag) {
			score -= 20
			break
		}
	}

	return min(max(score, 0), maxScore)
}

// hasRepeatRun reports whether some rune repeats n or more times in a row.
func hasRepeatRun(runes []rune, n int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
