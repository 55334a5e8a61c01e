package utils

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses a human-formatted phone number (e.g. "(555) 123-4567")
// and returns the national significant digits, stripped of all formatting.
// Validation is by digit count for the region, so 10 digits are required for
// US-style numbers. defaultRegion is used when the input has no country prefix.
func NormalizePhone(raw, defaultRegion string) (string, error) {
	num, err := parsePhone(raw, defaultRegion)
	if err != nil {
		return "", err
	}
	return phonenumbers.GetNationalSignificantNumber(num), nil
}

// FormatPhoneE164 returns the E.164 form (e.g. "+15551234567") for deployments
// that persist fully-qualified numbers.
func FormatPhoneE164(raw, defaultRegion string) (string, error) {
	num, err := parsePhone(raw, defaultRegion)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func parsePhone(raw, defaultRegion string) (*phonenumbers.PhoneNumber, error) {
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil {
		return nil, fmt.Errorf("could not parse phone number: %w", err)
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return nil, fmt.Errorf("phone number does not have the right number of digits for region %s", defaultRegion)
	}
	return num, nil
}
