// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contact validates contact form submissions and relays them by
// email.
package contact

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/localelab/internal/i18n"
)

// Form is a contact form submission.
type Form struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=1500"`
	Locale  string `json:"locale" validate:"-"`
}

// Error keys returned by Validate. They name entries of the contact error
// dictionary.
const (
	KeyNameRequired    = "nameRequired"
	KeyNameLength      = "nameLength"
	KeyEmailInvalid    = "emailInvalid"
	KeyMessageRequired = "messageRequired"
	KeyMessageLength   = "messageLength"
	KeyRequestError    = "requestError"
	KeyRateLimited     = "rateLimited"
)

// FieldErrors maps a form field ("name", "email", "message") to an error key.
type FieldErrors map[string]string

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form and returns at most one error key per field, or
// nil when the form is valid.
func (f Form) Validate() FieldErrors {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"message": KeyRequestError}
	}

	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field, key := errorKey(fe)
		if _, seen := errs[field]; !seen {
			errs[field] = key
		}
	}
	return errs
}

func errorKey(fe validator.FieldError) (string, string) {
	switch fe.StructField() {
	case "Name":
		if fe.Tag() == "required" {
			return "name", KeyNameRequired
		}
		return "name", KeyNameLength
	case "Email":
		return "email", KeyEmailInvalid
	case "Message":
		if fe.Tag() == "required" {
			return "message", KeyMessageRequired
		}
		return "message", KeyMessageLength
	default:
		return fe.Field(), KeyRequestError
	}
}

// Localize turns error keys into messages from the contact dictionary.
func Localize(errs FieldErrors, dict i18n.ContactErrors) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, key := range errs {
		out[field] = dict.Lookup(key)
	}
	return out
}

// ResolveLocale returns the submission's locale, or fallback when it is
// missing or unsupported.
func (f Form) ResolveLocale(fallback i18n.Locale) i18n.Locale {
	if i18n.IsLocale(f.Locale) {
		return i18n.Locale(f.Locale)
	}
	return fallback
}
