package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9]{7,20}$`)
	slugRegexp  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	clockRegexp = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ISODateLayout is the YYYY-MM-DD layout used for calendar dates on the wire.
const ISODateLayout = "2006-01-02"

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email matches the basic address pattern.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// NormalizePhone strips common separators. An empty result means no phone was given.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// ValidPhone reports whether a normalized phone is digits with an optional leading plus.
func ValidPhone(phone string) bool {
	return phoneRegexp.MatchString(phone)
}

// ValidSlug reports whether s is a lowercase, hyphen-separated slug.
func ValidSlug(s string) bool {
	return slugRegexp.MatchString(s)
}

// ValidISODate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidISODate(s string) bool {
	if len(s) != len(ISODateLayout) {
		return false
	}
	_, err := time.Parse(ISODateLayout, s)
	return err == nil
}

// ValidClock reports whether s is a 24-hour HH:MM time.
func ValidClock(s string) bool {
	return clockRegexp.MatchString(s)
}

// FormInt is an integer form field that also accepts a numeric JSON string such as "2".
// Anything that is not a whole number decodes as -1 so range validation reports the field.
type FormInt int

func (n *FormInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = -1
		return nil
	}
	*n = FormInt(v)
	return nil
}

// LenBetween reports whether the rune length of s is within [min, max].
func LenBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
