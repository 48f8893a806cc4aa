//go:build property

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/olegiv/localelab/internal/i18n"
)

// genEntries builds entries over a small key space so groups have several
// variants. Duplicate (key, language) pairs are dropped, as the loader
// rejects them.
func genEntries() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflectEntrySeed, map[string]gopter.Gen{
		"Key":  gen.IntRange(0, 5),
		"Lang": gen.IntRange(0, 1),
		"Day":  gen.IntRange(0, 365),
	})).Map(func(seeds []entrySeed) []Entry {
		seen := make(map[string]bool)
		var entries []Entry
		for i, s := range seeds {
			lang := i18n.Locales[s.Lang]
			id := fmt.Sprintf("k%d-%s", s.Key, lang)
			if seen[id] {
				continue
			}
			seen[id] = true
			entries = append(entries, Entry{
				Slug:           fmt.Sprintf("%s-%d", id, i),
				TranslationKey: fmt.Sprintf("k%d", s.Key),
				Language:       lang,
				Title:          id,
				PublishedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, s.Day),
				Tags:           []string{},
			})
		}
		return entries
	})
}

type entrySeed struct {
	Key  int
	Lang int
	Day  int
}

var reflectEntrySeed = reflect.TypeOf(entrySeed{})

func TestGroupingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2024)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every entry lands in exactly one group", prop.ForAll(
		func(entries []Entry) bool {
			seen := make(map[*Entry]int, len(entries))
			for _, g := range GroupByTranslationKey(entries) {
				for _, e := range g.Entries {
					if e.TranslationKey != g.TranslationKey {
						return false
					}
					seen[e]++
				}
			}
			for i := range entries {
				if seen[&entries[i]] != 1 {
					return false
				}
			}
			return len(seen) == len(entries)
		},
		genEntries(),
	))

	properties.Property("group variants are ordered most recent first", prop.ForAll(
		func(entries []Entry) bool {
			for _, g := range GroupByTranslationKey(entries) {
				for i := 1; i < len(g.Entries); i++ {
					if g.Entries[i].PublishedAt.After(g.Entries[i-1].PublishedAt) {
						return false
					}
				}
			}
			return true
		},
		genEntries(),
	))

	properties.Property("resolution is exact or flagged as fallback", prop.ForAll(
		func(entries []Entry, requested string) bool {
			for _, g := range GroupByTranslationKey(entries) {
				v := Resolve(i18n.Locale(requested), i18n.English, &g)
				if v.Entry == nil {
					return false
				}
				if v.IsFallback != (v.LanguageUsed != i18n.Locale(requested)) {
					return false
				}
				if !reflect.DeepEqual(v.AvailableLanguages, g.Languages()) {
					return false
				}
			}
			return true
		},
		genEntries(),
		gen.OneConstOf("en", "es", "fr", ""),
	))

	properties.TestingRun(t)
}
