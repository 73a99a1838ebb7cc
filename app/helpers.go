package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var reNonDigits = regexp.MustCompile(`\D`)

// normalizePhone strips everything but digits so numbers from different
// systems compare equal ("+1 (650) 555-0100" == "16505550100").
func normalizePhone(phone string) string {
	return reNonDigits.ReplaceAllString(phone, "")
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("value must be positive: %d", v)
	}
	return v, nil
}
