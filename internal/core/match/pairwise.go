package match

import "github.com/zerox80/tresormatch/internal/core/model"

// compare returns the reason labels explaining why a and b are considered a
// duplicate pair under opts, or nil when they are not a match.
//
// Every enabled criterion must pass (strict AND). With RequireAnyTextMatch the
// two text criteria are relaxed to "at least one checked text field matched";
// the inventory number and purchase date criteria stay strict either way.
// The result is symmetric in a and b.
func compare(a, b model.Item, opts Options) []string {
	var reasons []string
	textChecked := 0
	textMatched := 0

	if enabled(opts.NameMode) {
		textChecked++
		if textMatches(a.Name, b.Name, opts.NameMode) {
			reasons = append(reasons, nameReason(opts.NameMode))
			textMatched++
		} else if !opts.RequireAnyTextMatch {
			return nil
		}
	}

	if enabled(opts.DescriptionMode) {
		textChecked++
		if textMatches(a.Description, b.Description, opts.DescriptionMode) {
			reasons = append(reasons, descriptionReason(opts.DescriptionMode))
			textMatched++
		} else if !opts.RequireAnyTextMatch {
			return nil
		}
	}

	if opts.RequireAnyTextMatch && textChecked > 0 && textMatched == 0 {
		return nil
	}

	if enabled(opts.WodisMode) {
		na, nb := normalizeText(a.WodisNumber), normalizeText(b.WodisNumber)
		if na == "" || nb == "" || na != nb {
			return nil
		}
		reasons = append(reasons, ReasonWodisExact)
	}

	if opts.PurchaseToleranceDays != nil {
		tolerance := *opts.PurchaseToleranceDays
		if !datesWithin(a.PurchaseDate, b.PurchaseDate, tolerance) {
			return nil
		}
		reasons = append(reasons, reasonPurchaseDate(tolerance))
	}

	return reasons
}

func nameReason(mode string) string {
	switch mode {
	case ModePrefix:
		return ReasonNamePrefix
	case ModeContains:
		return ReasonNameContains
	}
	return ReasonNameExact
}

func descriptionReason(mode string) string {
	if mode == ModeContains {
		return ReasonDescriptionContains
	}
	return ReasonDescriptionExact
}
