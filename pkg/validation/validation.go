// Package validation holds the signup field rules shared by the HTTP handlers
// and the form controller. Every function here is pure.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	FieldName  = "name"
	FieldEmail = "email"

	MinNameLength = 2
	MaxNameLength = 100
)

const (
	MsgNameRequired  = "Name is required"
	MsgNameTooShort  = "Name must be at least 2 characters"
	MsgNameTooLong   = "Name must be less than 100 characters"
	MsgEmailRequired = "Email is required"
	MsgEmailInvalid  = "Please enter a valid email address"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Result struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// Validate checks name and email independently and accumulates at most one
// error per field. The subscription flag has no constraints.
func Validate(name, email string, subscribed bool) Result {
	errs := make([]FieldError, 0, 2)

	if fe := ValidateName(name); fe != nil {
		errs = append(errs, *fe)
	}

	if fe := ValidateEmail(email); fe != nil {
		errs = append(errs, *fe)
	}

	return Result{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

func ValidateName(name string) *FieldError {
	trimmed := NormalizeName(name)

	if trimmed == "" {
		return &FieldError{Field: FieldName, Message: MsgNameRequired}
	}

	length := utf8.RuneCountInString(trimmed)
	switch {
	case length < MinNameLength:
		return &FieldError{Field: FieldName, Message: MsgNameTooShort}
	case length > MaxNameLength:
		return &FieldError{Field: FieldName, Message: MsgNameTooLong}
	}

	return nil
}

func ValidateEmail(email string) *FieldError {
	trimmed := strings.TrimSpace(email)

	if trimmed == "" {
		return &FieldError{Field: FieldEmail, Message: MsgEmailRequired}
	}

	if !emailPattern.MatchString(trimmed) {
		return &FieldError{Field: FieldEmail, Message: MsgEmailInvalid}
	}

	return nil
}

// NormalizeName trims surrounding whitespace and composes the name to NFC.
// Length rules are applied to this form, and it is the form that is stored.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NormalizeEmail trims and lower-cases an address; stored emails and lookups
// always go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FieldErrorFor returns the first message reported for field, or "".
func FieldErrorFor(errs []FieldError, field string) string {
	for _, fe := range errs {
		if fe.Field == field {
			return fe.Message
		}
	}

	return ""
}
