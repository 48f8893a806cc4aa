// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content loads translated blog articles, pairs them into posts and
// resolves each post to the best language variant for a request.
package content

import (
	"time"

	"github.com/olegiv/localelab/internal/i18n"
)

// Entry is one language variant of an article, loaded from a single file.
// Entries are shared between requests and must not be modified.
type Entry struct {
	Slug           string
	TranslationKey string
	Language       i18n.Locale
	Title          string
	Description    string
	PublishedAt    time.Time
	UpdatedAt      *time.Time
	Tags           []string
	HeroImage      string
	HeroImageAlt   string
	Body           string
	Path           string
}

// LastModified returns UpdatedAt when set, PublishedAt otherwise.
func (e *Entry) LastModified() time.Time {
	if e.UpdatedAt != nil {
		return *e.UpdatedAt
	}
	return e.PublishedAt
}
