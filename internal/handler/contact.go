// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/localelab/internal/contact"
	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/render"
)

// Submitter delivers a validated contact form and returns its reference.
type Submitter interface {
	Submit(ctx context.Context, f contact.Form) (string, error)
}

// contactPage is the data of the contact template.
type contactPage struct {
	Form      contact.Form
	Errors    map[string]string
	FormError string
	Sent      bool
}

// ContactHandler serves the contact page and the contact API.
type ContactHandler struct {
	catalog   *i18n.Catalog
	renderer  *render.Renderer
	submitter Submitter
	limiter   *middleware.RateLimiter
	logger    *slog.Logger
}

// NewContactHandler creates a new contact handler. A nil limiter disables
// rate limiting.
func NewContactHandler(catalog *i18n.Catalog, renderer *render.Renderer, submitter Submitter, limiter *middleware.RateLimiter, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{
		catalog:   catalog,
		renderer:  renderer,
		submitter: submitter,
		limiter:   limiter,
		logger:    logger,
	}
}

// Page handles GET /contact requests.
func (h *ContactHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, contactPage{})
}

// Submit handles POST /contact form submissions.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		dict := h.catalog.Dictionary(middleware.GetLocale(r))
		h.renderPage(w, r, http.StatusBadRequest, contactPage{FormError: dict.Contact.Errors.RequestError})
		return
	}

	form := contact.Form{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
		Locale:  r.PostFormValue("locale"),
	}
	dict := h.catalog.Dictionary(form.ResolveLocale(middleware.GetLocale(r)))

	status, errs, err := h.process(r, form)
	data := contactPage{Form: form, Errors: contact.Localize(errs, dict.Contact.Errors)}
	switch {
	case status == http.StatusOK:
		data = contactPage{Sent: true}
	case err != nil:
		data.FormError = dict.Contact.Errors.Lookup(err.Error())
	}
	h.renderPage(w, r, status, data)
}

// API handles POST /api/contact requests. Responses are {"ok":true},
// {"errors":{field:message}} or {"error":message}.
func (h *ContactHandler) API(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if err := decodeJSON(w, r, &form); err != nil {
		h.logger.WarnContext(r.Context(), "invalid contact request", "error", err)
		dict := h.catalog.Dictionary(middleware.GetLocale(r))
		writeJSONError(w, http.StatusBadRequest, dict.Contact.Errors.RequestError)
		return
	}
	dict := h.catalog.Dictionary(form.ResolveLocale(middleware.GetLocale(r)))

	status, errs, err := h.process(r, form)
	switch {
	case status == http.StatusOK:
		writeJSON(w, status, map[string]bool{"ok": true})
	case len(errs) > 0:
		writeJSON(w, status, map[string]map[string]string{"errors": contact.Localize(errs, dict.Contact.Errors)})
	default:
		writeJSONError(w, status, dict.Contact.Errors.Lookup(err.Error()))
	}
}

// submitError carries a contact error key back to the caller.
type submitError string

func (e submitError) Error() string { return string(e) }

// process rate-limits, validates and submits a form. It returns the HTTP
// status plus either field errors or an error whose text is a contact
// error key.
func (h *ContactHandler) process(r *http.Request, form contact.Form) (int, contact.FieldErrors, error) {
	if h.limiter != nil && !h.limiter.Allow(r) {
		h.logger.WarnContext(r.Context(), "contact rate limit exceeded", "ip", middleware.ClientIP(r))
		return http.StatusTooManyRequests, nil, submitError(contact.KeyRateLimited)
	}
	if errs := form.Validate(); errs != nil {
		return http.StatusBadRequest, errs, nil
	}
	if _, err := h.submitter.Submit(r.Context(), form); err != nil {
		// The relay has already logged the failure with its reference.
		return http.StatusInternalServerError, nil, submitError(contact.KeyRequestError)
	}
	return http.StatusOK, nil, nil
}

func (h *ContactHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, data contactPage) {
	dict := h.catalog.Dictionary(middleware.GetLocale(r))
	page(w, r, h.renderer, status, "contact", render.TemplateData{
		Title:       dict.Contact.Title,
		Description: dict.Contact.Description,
		Data:        data,
	})
}
