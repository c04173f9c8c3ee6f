// internal/creator/validator.go
package creator

import (
	"strconv"
	"strings"
)

// ValidateForm checks all required fields together and returns a fresh
// error map plus the overall result.
func ValidateForm(form Form) (FormErrors, bool) {
	errs := make(FormErrors, len(RequiredFields))
	for _, field := range RequiredFields {
		value := form.Get(field)
		failed := strings.TrimSpace(value) == ""
		if field == FieldUstarPoints && !failed {
			failed = !isDigits(value) || isNegative(value)
		}
		errs[field] = failed
	}
	return errs, !errs.Any()
}

// isDigits tests the raw value, so surrounding whitespace fails.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isNegative never reports true after isDigits passes; the rule is retained
// as written. Values beyond int64 range count as non-negative.
func isNegative(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n < 0
}
