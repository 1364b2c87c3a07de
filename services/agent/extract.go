package agent

import (
	"regexp"
	"strconv"
	"strings"

	"voltvox/models"
)

// Slot extractors. Each one is a pure function from an utterance (and, for
// the two step-gated extractors, the prior state) to a value or its zero
// value when nothing usable is found. Malformed input never errors; the
// state machine simply re-asks.

var (
	numberWordPattern = regexp.MustCompile(`(?i)\b(zero|one|two|three|four|five|six|seven|eight|nine)\b`)
	nonDigitPattern   = regexp.MustCompile(`[^0-9]`)
	plzPattern        = regexp.MustCompile(`^\d{5}$`)

	householdDigit     = regexp.MustCompile(`\b([1-5])\b`)
	householdDigitWord = regexp.MustCompile(`(?i)([1-5])\s*(person|people|haushalt|family)`)

	consumptionWithUnit = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*|\d{3,5})[^\d]{0,10}(kwh|kilowattstunden|kilowatt[- ]?hours?)`)
	bareConsumption     = regexp.MustCompile(`(\d{3,5})(?:[.,])?`)

	costWithUnit = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*|\d{2,4})[^\d]{0,10}(euro|eur|€)`)
	bareCost     = regexp.MustCompile(`(\d{2,4})`)
)

var digitWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
}

var householdWords = []struct {
	pattern *regexp.Regexp
	value   int
}{
	{regexp.MustCompile(`(?i)\bone\b`), 1},
	{regexp.MustCompile(`(?i)\btwo\b`), 2},
	{regexp.MustCompile(`(?i)\bthree\b`), 3},
	{regexp.MustCompile(`(?i)\bfour\b`), 4},
	{regexp.MustCompile(`(?i)\bfive\b`), 5},
}

// extractLocation normalizes spelled-out digits ("one two three four five"),
// strips everything that is not a digit and accepts the result only if
// exactly five digits remain. Longer digit runs are rejected rather than
// searched for an embedded postal code.
func extractLocation(text string) string {
	normalized := numberWordPattern.ReplaceAllStringFunc(text, func(w string) string {
		return digitWords[strings.ToLower(w)]
	})
	digits := nonDigitPattern.ReplaceAllString(normalized, "")
	if len(digits) == 5 {
		return digits
	}
	return ""
}

// extractHouseholdSize accepts 1-5 persons: a standalone digit, a digit
// followed by a size word, or an English number word, in that order.
func extractHouseholdSize(text string) int {
	if m := householdDigit.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := householdDigitWord.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	for _, w := range householdWords {
		if w.pattern.MatchString(text) {
			return w.value
		}
	}
	return 0
}

// extractConsumption looks for a number with a kWh unit nearby. A bare 3-5
// digit number in [100,50000] is accepted only when the agent has just asked
// for consumption; without that conversational position a bare number is
// ambiguous between consumption, cost and household size.
func extractConsumption(text string, state *models.ConversationState) string {
	if m := consumptionWithUnit.FindStringSubmatch(text); m != nil {
		return strings.ReplaceAll(m[1], ",", "")
	}
	if state != nil && state.Step == models.StepAskConsumption {
		if m := bareConsumption.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v >= 100 && v <= 50000 {
				return strconv.Itoa(v)
			}
		}
	}
	return ""
}

// extractCost mirrors extractConsumption for a euro amount; bare 2-4 digit
// numbers in [10,5000] are only accepted while the cost question is pending.
func extractCost(text string, state *models.ConversationState) string {
	if m := costWithUnit.FindStringSubmatch(text); m != nil {
		return strings.ReplaceAll(m[1], ",", "")
	}
	if state != nil && state.Step == models.StepAskCost {
		if m := bareCost.FindStringSubmatch(text); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v >= 10 && v <= 5000 {
				return strconv.Itoa(v)
			}
		}
	}
	return ""
}

// preferenceVocabulary fixes both the recognized tags and the scan order.
var preferenceVocabulary = []struct {
	tag      string
	keywords []string
}{
	{"green", []string{"green", "öko"}},
	{"cost", []string{"cost", "preis", "cheap"}},
	{"service", []string{"service", "support"}},
	{"local", []string{"local", "stadtwerk"}},
	{"tech", []string{"tech"}},
}

// extractPreferences collects every preference tag asserted in the
// utterance. An utterance may set several tags at once; none matching
// yields the empty string.
func extractPreferences(text string) string {
	lower := strings.ToLower(text)
	var prefs []string
	for _, entry := range preferenceVocabulary {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				prefs = append(prefs, entry.tag)
				break
			}
		}
	}
	return strings.Join(prefs, ", ")
}
