// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/middleware"
	"github.com/olegiv/localelab/internal/render"
)

// errorPage is the data of the error template.
type errorPage struct {
	Status  int
	Heading string
	Body    string
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, r *http.Request, message string, statusCode int, logMsg string, args ...any) {
	slog.ErrorContext(r.Context(), logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, r *http.Request, logMsg string, args ...any) {
	logAndHTTPError(w, r, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// page renders a template, falling back to a plain 500 when rendering fails.
func page(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.Render(w, r, status, name, data); err != nil {
		logAndInternalError(w, r, "failed to render template", "template", name, "error", err)
	}
}

// renderNotFound renders the localized 404 page.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, catalog *i18n.Catalog) {
	dict := catalog.Dictionary(middleware.GetLocale(r))
	page(w, r, renderer, http.StatusNotFound, "error", render.TemplateData{
		Title: dict.Errors.NotFoundTitle,
		Data: errorPage{
			Status:  http.StatusNotFound,
			Heading: dict.Errors.NotFoundTitle,
			Body:    dict.Errors.NotFoundBody,
		},
	})
}

// renderServerError logs err and renders the localized 500 page.
func renderServerError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, catalog *i18n.Catalog, logMsg string, err error) {
	slog.ErrorContext(r.Context(), logMsg, "path", r.URL.Path, "error", err)
	dict := catalog.Dictionary(middleware.GetLocale(r))
	page(w, r, renderer, http.StatusInternalServerError, "error", render.TemplateData{
		Title: dict.Errors.ServerTitle,
		Data: errorPage{
			Status:  http.StatusInternalServerError,
			Heading: dict.Errors.ServerTitle,
			Body:    dict.Errors.ServerBody,
		},
	})
}
