// Package validation holds the pure field validators for the project
// request form. Nothing here touches storage or the router, so every rule
// is unit-testable on its own.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

type Currency string

const (
	CurrencyPHP Currency = "PHP"
	CurrencyUSD Currency = "USD"
)

// Field names as exchanged with the portal frontend.
const (
	FieldCompanyName  = "companyName"
	FieldContactEmail = "contactEmail"
	FieldContactPhone = "contactPhone"
	FieldProjectType  = "projectType"
	FieldDescription  = "description"
	FieldTimeline     = "timeline"
	FieldBudgetRange  = "budgetRange"
)

const MinDescriptionLength = 50

var emailShape = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Common typo TLDs rejected even when the address matches the shape check.
var invalidTLDs = []string{
	"cum", "con", "coom", "cmo", "cim", "cpm", "ocm", "vom", "cm", "co", "c",
	"om", "comm", "coml", "nit", "nte", "ner", "ne", "orgm", "ogr", "or",
	"phm", "phl",
}

var validTLDs = []string{
	"com", "net", "org", "edu", "gov", "mil", "int", "ph", "co.uk", "co.ph",
	"gov.ph", "org.ph", "net.ph", "edu.ph", "io", "ly", "me", "tv", "cc",
	"ws", "biz", "info", "name", "tech", "app",
}

// ValidEmail reports whether the address matches the general shape, does not
// use a denylisted typo TLD, and ends in one of the allowed TLDs.
func ValidEmail(email string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if !emailShape.MatchString(trimmed) {
		return false
	}

	parts := strings.SplitN(trimmed, "@", 2)
	domain := parts[1]
	labels := strings.Split(domain, ".")
	tld := labels[len(labels)-1]

	for _, bad := range invalidTLDs {
		if tld == bad {
			return false
		}
	}

	for _, good := range validTLDs {
		if strings.HasSuffix(domain, "."+good) {
			return true
		}
	}
	return false
}

var phoneShape = regexp.MustCompile(`^(?:\+63|0)?9\d{9}$`)

// ValidPhone reports whether the input is a Philippine mobile number:
// optional +63 or 0 prefix, then ten digits starting with 9. Whitespace is
// stripped first, so "+63 976 125 1205" and "09761251205" both pass.
func ValidPhone(phone string) bool {
	cleaned := strings.Join(strings.Fields(phone), "")
	return phoneShape.MatchString(cleaned)
}

var phpBudgetRanges = []string{
	"Under ₱50,000",
	"₱50,000 - ₱150,000",
	"₱150,000 - ₱300,000",
	"₱300,000 - ₱500,000",
	"Over ₱500,000",
}

var usdBudgetRanges = []string{
	"Under $900",
	"$900 - $2,700",
	"$2,700 - $5,400",
	"$5,400 - $9,000",
	"Over $9,000",
}

// BudgetRanges returns the five budget bands labeled in the given currency.
func BudgetRanges(currency Currency) []string {
	if currency == CurrencyUSD {
		return append([]string(nil), usdBudgetRanges...)
	}
	return append([]string(nil), phpBudgetRanges...)
}

// ValidBudgetRange reports whether value is a member of the currency's band
// set. Band labels are currency-specific, so a PHP label never validates
// under USD and vice versa.
func ValidBudgetRange(currency Currency, value string) bool {
	for _, r := range BudgetRanges(currency) {
		if value == r {
			return true
		}
	}
	return false
}

// Result is the outcome of a live, advisory validation pass on one field.
// CharCount is only meaningful for the description field.
type Result struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	CharCount int    `json:"char_count,omitempty"`
}

// LiveValidate runs the keystroke-time validator for a field. It drives
// inline affordances only; step gating re-runs the authoritative checks.
func LiveValidate(field, value string) Result {
	switch field {
	case FieldContactEmail:
		if strings.TrimSpace(value) == "" {
			return Result{Valid: false, Message: "Email is required"}
		}
		if !ValidEmail(value) {
			return Result{Valid: false, Message: "Please enter a valid email (e.g., user@gmail.com)"}
		}
		return Result{Valid: true, Message: "Valid email address"}

	case FieldContactPhone:
		if strings.TrimSpace(value) == "" {
			return Result{Valid: false, Message: "Phone number is required"}
		}
		if !ValidPhone(value) {
			return Result{Valid: false, Message: "Please enter a valid PH mobile number (e.g., +63 976 125 1205)"}
		}
		return Result{Valid: true, Message: "Valid Philippine mobile number"}

	case FieldDescription:
		count := len([]rune(strings.TrimSpace(value)))
		if count == 0 {
			return Result{Valid: false, Message: "Project description is required"}
		}
		if count < MinDescriptionLength {
			return Result{
				Valid:     false,
				Message:   fmt.Sprintf("Please provide at least %d characters (%d/%d)", MinDescriptionLength, count, MinDescriptionLength),
				CharCount: count,
			}
		}
		return Result{
			Valid:     true,
			Message:   fmt.Sprintf("Good description (%d characters)", count),
			CharCount: count,
		}
	}

	return Result{Valid: true}
}
