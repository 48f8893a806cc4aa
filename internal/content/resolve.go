// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/olegiv/localelab/internal/i18n"

// ResolvedView is the variant of a group chosen for a requested locale.
type ResolvedView struct {
	Group              *Group
	Entry              *Entry
	IsFallback         bool
	LanguageUsed       i18n.Locale
	AvailableLanguages []i18n.Locale
}

// Resolve picks the entry to show for requested:
//  1. the entry in the requested locale;
//  2. otherwise the entry in the fallback locale;
//  3. otherwise the group's first (most recent) entry.
//
// Steps 2 and 3 mark the view as a fallback. g must hold at least one entry.
func Resolve(requested, fallback i18n.Locale, g *Group) ResolvedView {
	view := ResolvedView{
		Group:              g,
		AvailableLanguages: g.Languages(),
	}

	chosen, exact := pick(requested, fallback, g.Entries)
	if chosen == nil {
		view.IsFallback = true
		return view
	}

	view.Entry = chosen
	view.IsFallback = !exact
	view.LanguageUsed = chosen.Language
	return view
}

func pick(requested, fallback i18n.Locale, entries []*Entry) (*Entry, bool) {
	for _, e := range entries {
		if e.Language == requested {
			return e, true
		}
	}
	for _, e := range entries {
		if e.Language == fallback {
			return e, false
		}
	}
	if len(entries) > 0 {
		return entries[0], false
	}
	return nil, false
}
