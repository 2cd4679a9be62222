package validation

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

var usStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// IsValidURL reports whether s parses as an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

// IsValidAPIKey accepts any key that is not blank.
func IsValidAPIKey(key string) bool {
	return strings.TrimSpace(key) != ""
}

// IsValidEmail performs a basic shape check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidResidential accepts only "true" and "false".
func IsValidResidential(s string) bool {
	return s == "true" || s == "false"
}

// IsValidProfile accepts the two stocked materials.
func IsValidProfile(s string) bool {
	return s == "PLA" || s == "PETG"
}

// IsValidZipCode accepts 5-digit and ZIP+4 codes.
func IsValidZipCode(s string) bool {
	return zipPattern.MatchString(s)
}

// IsValidState reports whether s is a US state code, ignoring case.
func IsValidState(s string) bool {
	return slices.Contains(usStates, strings.ToUpper(s))
}
