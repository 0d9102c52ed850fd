// Package validate holds the field validators shared by the intake endpoints and the client form.
// Every function is total: it never panics and only reports whether the value is acceptable.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ContactMessageMinLength is the minimum trimmed length of a contact form message.
const ContactMessageMinLength = 10

var (
	// Whitespace covers the Unicode separators and BOM, not just ASCII space.
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// PartnershipTypes lists the recognized partnership categories in display order.
var PartnershipTypes = []string{
	"financial-advisory",
	"educational-institution",
	"community-organization",
	"impact-investor",
	"media-press",
	"technology-partner",
	"content-creator",
	"other",
}

// InterestAreas lists the newsletter interest areas. The first entry is the default.
var InterestAreas = []string{"all", "financial", "community", "education"}

// IsNonEmpty reports whether s has content after trimming whitespace.
func IsNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail applies the permissive localpart@domain.tld shape check.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// HasMinLength reports whether the trimmed value holds at least n characters.
func HasMinLength(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

// IsValidPhone checks a loose international number once spaces, hyphens and parentheses are removed.
// An empty value is not a valid phone; callers skip the check for absent optional phones.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(phoneStrip.Replace(s))
}

// IsPartnershipType reports whether id is a recognized partnership category.
func IsPartnershipType(id string) bool {
	return contains(PartnershipTypes, id)
}

// IsInterestArea reports whether area is a recognized newsletter interest area.
func IsInterestArea(area string) bool {
	return contains(InterestAreas, area)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
