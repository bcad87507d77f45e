package workflow

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/drinkph/portal-go/models"
	"github.com/drinkph/portal-go/validation"
)

// Step gating uses a loose email shape; the full pass at submit time applies
// the strict TLD checks. Step gating is a UX convenience, not a boundary.
var looseEmailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// stepErrors runs the authoritative validator for one step.
func stepErrors(d *Draft, step Step, currency validation.Currency) FieldErrors {
	errs := FieldErrors{}

	switch step {
	case StepCompanyInfo:
		if strings.TrimSpace(d.CompanyName) == "" {
			errs[validation.FieldCompanyName] = "Company name is required"
		}
		if strings.TrimSpace(d.ContactEmail) == "" {
			errs[validation.FieldContactEmail] = "Contact email is required"
		} else if !looseEmailShape.MatchString(d.ContactEmail) {
			errs[validation.FieldContactEmail] = "Please enter a valid email address"
		}

	case StepProjectDetails:
		if !models.ProjectType(d.ProjectType).Valid() {
			errs[validation.FieldProjectType] = "Please select a project type"
		}
		descLen := len([]rune(strings.TrimSpace(d.Description)))
		if descLen == 0 {
			errs[validation.FieldDescription] = "Project description is required"
		} else if descLen < validation.MinDescriptionLength {
			errs[validation.FieldDescription] = fmt.Sprintf(
				"Please provide at least %d characters for the project description",
				validation.MinDescriptionLength)
		}

	case StepTimelineBudget:
		if strings.TrimSpace(d.Timeline) == "" {
			errs[validation.FieldTimeline] = "Timeline is required"
		}
		if d.BudgetRange == "" {
			errs[validation.FieldBudgetRange] = "Please select a budget range"
		} else if !validation.ValidBudgetRange(currency, d.BudgetRange) {
			errs[validation.FieldBudgetRange] = "Please select a budget range"
		}
	}

	return errs
}

// fullErrors re-validates the entire draft, strictly. A draft can reach the
// review step with stale or bypassed data, so submission always re-checks
// every field.
func fullErrors(d *Draft, currency validation.Currency) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.CompanyName) == "" {
		errs[validation.FieldCompanyName] = "Company name is required"
	}

	if strings.TrimSpace(d.ContactEmail) == "" {
		errs[validation.FieldContactEmail] = "Contact email is required"
	} else if !validation.ValidEmail(d.ContactEmail) {
		errs[validation.FieldContactEmail] = "Please enter a valid email address"
	}

	if strings.TrimSpace(d.ContactPhone) != "" && !validation.ValidPhone(d.ContactPhone) {
		errs[validation.FieldContactPhone] = "Please enter a valid Philippine mobile number (e.g., +63 976 125 1205, 0976 125 1205, or 976 125 1205)"
	}

	if !models.ProjectType(d.ProjectType).Valid() {
		errs[validation.FieldProjectType] = "Please select a project type"
	}

	descLen := len([]rune(strings.TrimSpace(d.Description)))
	if descLen == 0 {
		errs[validation.FieldDescription] = "Project description is required"
	} else if descLen < validation.MinDescriptionLength {
		errs[validation.FieldDescription] = fmt.Sprintf(
			"Please provide at least %d characters for the project description",
			validation.MinDescriptionLength)
	}

	if strings.TrimSpace(d.Timeline) == "" {
		errs[validation.FieldTimeline] = "Timeline is required"
	}

	if d.BudgetRange == "" || !validation.ValidBudgetRange(currency, d.BudgetRange) {
		errs[validation.FieldBudgetRange] = "Please select a budget range"
	}

	return errs
}
