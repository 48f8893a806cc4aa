// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"sort"

	"github.com/olegiv/localelab/internal/i18n"
	"github.com/olegiv/localelab/internal/util"
)

// Service answers blog queries: every call groups the loaded entries and
// resolves each group for the requested locale.
type Service struct {
	loader   *Loader
	renderer Renderer
	fallback i18n.Locale
}

// NewService creates a content service. fallback is the locale used when a
// post has no variant in the requested locale.
func NewService(loader *Loader, renderer Renderer, fallback i18n.Locale) *Service {
	return &Service{
		loader:   loader,
		renderer: renderer,
		fallback: fallback,
	}
}

// Loader returns the service's loader.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Fallback returns the service's fallback locale.
func (s *Service) Fallback() i18n.Locale {
	return s.fallback
}

// Groups returns every post group.
func (s *Service) Groups(ctx context.Context) ([]Group, error) {
	entries, err := s.loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByTranslationKey(entries), nil
}

// Summaries returns one summary per post, most recently published first.
func (s *Service) Summaries(ctx context.Context, locale i18n.Locale) ([]Summary, error) {
	groups, err := s.Groups(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(groups))
	for i := range groups {
		summaries = append(summaries, ToSummary(Resolve(locale, s.fallback, &groups[i])))
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PublishedAt.After(summaries[j].PublishedAt)
	})
	return summaries, nil
}

// SummariesByTag returns the summaries whose displayed variant carries a tag
// with the given slug.
func (s *Service) SummariesByTag(ctx context.Context, locale i18n.Locale, tagSlug string) ([]Summary, error) {
	all, err := s.Summaries(ctx, locale)
	if err != nil {
		return nil, err
	}

	var tagged []Summary
	for _, sum := range all {
		for _, tag := range sum.Tags {
			if util.Slugify(tag) == tagSlug {
				tagged = append(tagged, sum)
				break
			}
		}
	}
	return tagged, nil
}

// Post returns the rendered post with the given canonical slug.
func (s *Service) Post(ctx context.Context, slug string, locale i18n.Locale) (Detail, error) {
	groups, err := s.Groups(ctx)
	if err != nil {
		return Detail{}, err
	}

	g, ok := FindGroup(groups, slug)
	if !ok {
		return Detail{}, &NotFoundError{Slug: slug}
	}
	return ToDetail(ctx, Resolve(locale, s.fallback, g), s.renderer)
}

// Slugs returns the canonical slug of every post.
func (s *Service) Slugs(ctx context.Context) ([]string, error) {
	groups, err := s.Groups(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(groups))
	for i, g := range groups {
		slugs[i] = g.CanonicalSlug
	}
	return slugs, nil
}
