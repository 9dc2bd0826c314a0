package service

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

const minPasswordLength = 6

// normalizeEmail lower-cases the address and converts an internationalised
// domain to its ASCII form so lookups are consistent.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", invalid("email", "Please provide a valid email")
	}

	local, domain := email[:at], email[at+1:]
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return "", invalid("email", "Please provide a valid email")
	}

	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return "", invalid("email", "Please provide a valid email")
	}
	return email, nil
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return invalid("password", "password must be at least 6 characters")
	}
	return nil
}
