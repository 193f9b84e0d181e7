// Package validation provides validation rules shared by the HTTP request DTOs.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/outreach/internal/errors"
	leadDomain "github.com/allisson/outreach/internal/lead/domain"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	domainRegex = regexp.MustCompile(`^@?([a-z0-9]([a-z0-9\-]*[a-z0-9])?\.)*[a-z0-9]([a-z0-9\-]*[a-z0-9])?$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Domain validates a blacklist entry: a host name or fragment, optionally prefixed with '@'.
var Domain = validation.NewStringRuleWithError(
	func(s string) bool {
		return domainRegex.MatchString(strings.ToLower(strings.TrimSpace(s)))
	},
	validation.NewError("validation_domain", "must be a domain name"),
)

// ReplyClassification validates a classifier label against the fixed category set.
var ReplyClassification = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := leadDomain.NormalizeCategory(s)
		return err == nil
	},
	validation.NewError("validation_reply_classification",
		"must be one of interested, not_interested, out_of_office, maybe, bounce, unsubscribe"),
)

// LeadStatus validates a persisted lead status such as sent_step0 or stopped_manual.
var LeadStatus = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := leadDomain.ParseStatus(s)
		return err == nil
	},
	validation.NewError("validation_lead_status", "must be a valid lead status"),
)
