package service

import (
	"strings"

	dErrors "staffdir/pkg/domain-errors"
)

// validatePhoneNumber enforces the phone format contract. Failures report as
// conflicts, and callers must run this before any uniqueness check so the
// error precedence stays deterministic: phone format, then code uniqueness,
// then email uniqueness, then branch resolution.
func validatePhoneNumber(phone string) error {
	digits := stripNonDigits(phone)
	if digits == "" {
		return dErrors.New(dErrors.CodeConflict, "Phone number is required")
	}
	if len(digits) != 12 {
		return dErrors.New(dErrors.CodeConflict, "Phone number must be exactly 12 digits long")
	}
	if !strings.HasPrefix(digits, "08") {
		return dErrors.New(dErrors.CodeConflict, "Phone number must start with '08'")
	}
	return nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
