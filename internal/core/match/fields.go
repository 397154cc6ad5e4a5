package match

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zerox80/tresormatch/internal/core/model"
)

// Reason labels shown to the user for each positive field match.
const (
	ReasonNameExact           = "Name (exact)"
	ReasonNamePrefix          = "Name (prefix match)"
	ReasonNameContains        = "Name (contains)"
	ReasonDescriptionExact    = "Description (exact)"
	ReasonDescriptionContains = "Description (contains)"
	ReasonWodisExact          = "Inventory number (exact)"
)

func reasonPurchaseDate(toleranceDays int) string {
	return fmt.Sprintf("Purchase date (±%d days)", toleranceDays)
}

// normalizeText trims, lowercases and collapses whitespace runs to single
// spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// textMatches decides whether two raw text values match under mode. Values
// that are empty after normalization never match, so two blank fields are not
// treated as identical.
func textMatches(a, b, mode string) bool {
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" || nb == "" {
		return false
	}
	switch mode {
	case ModeExact:
		return na == nb
	case ModePrefix:
		return prefixMatches(na, nb)
	case ModeContains:
		return containsMatches(na, nb)
	}
	return false
}

// prefixMatches compares prefixes of length 5 when both values have at least
// 5 runes, else length 3. Short prefixes on very short strings keep accidental
// matches down while still catching names that differ only in a suffix.
func prefixMatches(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	n := 3
	if len(ra) >= 5 && len(rb) >= 5 {
		n = 5
	}
	return string(runePrefix(ra, n)) == string(runePrefix(rb, n))
}

func runePrefix(r []rune, n int) []rune {
	if len(r) <= n {
		return r
	}
	return r[:n]
}

// containsMatches reports whether the shorter value is a substring of the
// longer one. Shorter values under 4 runes never match; almost everything
// contains a two-letter fragment.
func containsMatches(a, b string) bool {
	shorter, longer := a, b
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < 4 {
		return false
	}
	return strings.Contains(longer, shorter)
}

// datesWithin reports whether both purchase dates are present and at most
// toleranceDays whole days apart.
func datesWithin(a, b *model.Date, toleranceDays int) bool {
	if a == nil || b == nil {
		return false
	}
	return model.DaysBetween(*a, *b) <= toleranceDays
}
