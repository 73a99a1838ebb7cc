package app

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Palco-Teams-2/internal-dashboard/app/models"
)

// Internal notes that are not closer assignments.
var skipMarkers = []string{"Release", "SMC Simplified"}

// notePattern pairs one notes matcher with the mapper that derives the
// plan-type code and label for it. Patterns are tried in declared order and
// the first match wins, so specific prefixes (split1k) must come before
// generic ones (split).
type notePattern struct {
	re     *regexp.Regexp
	prefix string
	mapper func(initialPrice float64) (code, label string)
}

var notePatterns = []notePattern{
	{regexp.MustCompile(`(?i)^pif-(.+@.+)$`), "pif", pifLabel},
	{regexp.MustCompile(`(?i)^split1k-(.+@.+)$`), "split1k", fixedLabel("split1k", "SPLIT $1K")},
	{regexp.MustCompile(`(?i)^split2k-(.+@.+)$`), "split2k", fixedLabel("split2k", "SPLIT $2K")},
	// "splitlk" is a recurring typo for split1k in the notes field.
	{regexp.MustCompile(`(?i)^splitlk-(.+@.+)$`), "splitlk", fixedLabel("split1k", "SPLIT $1K")},
	{regexp.MustCompile(`(?i)^split3500-(.+@.+)$`), "split3500", fixedLabel("split3500", "3500 SPLIT")},
	{regexp.MustCompile(`(?i)^split-(.+@.+)$`), "split", fixedLabel("split", "SPLIT")},
	{regexp.MustCompile(`(?i)^deposit500-(.+@.+)$`), "deposit500", fixedLabel("deposit500", "DEPOSIT $500")},
	{regexp.MustCompile(`(?i)^deposit-(.+@.+)$`), "deposit", fixedLabel("deposit", "DEPOSIT $250")},
	{regexp.MustCompile(`(?i)^psplit-(.+@.+)$`), "psplit", fixedLabel("psplit", "P-SPLIT")},
	// Bare company email with no prefix.
	{regexp.MustCompile(`(?i)^([a-z0-9-]+@tjr-trades\.com)$`), "other", fixedLabel("other", "Other")},
}

func fixedLabel(code, label string) func(float64) (string, string) {
	return func(float64) (string, string) { return code, label }
}

// pifLabel derives the PIF code and label from the initial price.
func pifLabel(initialPrice float64) (string, string) {
	switch initialPrice {
	case 7000:
		return "pif7k", "7K PIF"
	case 5000:
		return "pif5k", "5K PIF"
	default:
		return fmt.Sprintf("pif%g", initialPrice), fmt.Sprintf("%gK PIF", initialPrice/1000)
	}
}

// parseInternalNotes extracts the closer assignment from a plan's internal
// notes. It returns nil for empty notes, known non-assignment entries, and
// notes that match no known pattern.
func parseInternalNotes(notes string, initialPrice float64) *models.ParsedAssignment {
	if notes == "" {
		return nil
	}

	for _, marker := range skipMarkers {
		if strings.Contains(notes, marker) {
			return nil
		}
	}

	for _, p := range notePatterns {
		m := p.re.FindStringSubmatch(notes)
		if m == nil {
			continue
		}
		code, label := p.mapper(initialPrice)
		return &models.ParsedAssignment{
			Email:     strings.ToLower(m[1]),
			Type:      code,
			TypeLabel: label,
		}
	}

	return nil
}
