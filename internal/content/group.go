// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"sort"
	"time"

	"github.com/olegiv/localelab/internal/i18n"
)

// Group is one logical post: every language variant sharing a translation
// key. Entries are ordered by PublishedAt, most recent first.
type Group struct {
	TranslationKey string
	CanonicalSlug  string
	Entries        []*Entry
}

// Languages lists the group's languages in entry order.
func (g *Group) Languages() []i18n.Locale {
	langs := make([]i18n.Locale, len(g.Entries))
	for i, e := range g.Entries {
		langs[i] = e.Language
	}
	return langs
}

// LastModified returns the most recent modification time of any variant.
func (g *Group) LastModified() time.Time {
	var latest time.Time
	for _, e := range g.Entries {
		if t := e.LastModified(); t.After(latest) {
			latest = t
		}
	}
	return latest
}

// GroupByTranslationKey clusters entries by translation key, keeping the
// first-seen order of keys. The canonical slug of a group is the slug of its
// first entry in input order. Entries are referenced, not copied.
func GroupByTranslationKey(entries []Entry) []Group {
	index := make(map[string]int, len(entries))
	groups := make([]Group, 0, len(entries))

	for i := range entries {
		e := &entries[i]
		if pos, ok := index[e.TranslationKey]; ok {
			groups[pos].Entries = append(groups[pos].Entries, e)
			continue
		}
		index[e.TranslationKey] = len(groups)
		groups = append(groups, Group{
			TranslationKey: e.TranslationKey,
			CanonicalSlug:  e.Slug,
			Entries:        []*Entry{e},
		})
	}

	for i := range groups {
		list := groups[i].Entries
		sort.SliceStable(list, func(a, b int) bool {
			return list[a].PublishedAt.After(list[b].PublishedAt)
		})
	}
	return groups
}

// FindGroup returns the group whose canonical slug is slug.
func FindGroup(groups []Group, slug string) (*Group, bool) {
	for i := range groups {
		if groups[i].CanonicalSlug == slug {
			return &groups[i], true
		}
	}
	return nil, false
}
