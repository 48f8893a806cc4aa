// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strconv"
	"strings"
	"time"
)

//go:embed locales
var localesFS embed.FS

// Catalog holds the validated dictionary of every supported locale.
type Catalog struct {
	dictionaries map[Locale]*Dictionary
	fallback     Locale
}

// NewCatalog loads the embedded dictionaries and validates them.
func NewCatalog(fallback Locale) (*Catalog, error) {
	return LoadCatalog(localesFS, fallback)
}

// LoadCatalog loads locales/<code>.json for every supported locale from fsys.
// Every locale must provide every field; a missing or empty entry is an error.
func LoadCatalog(fsys fs.FS, fallback Locale) (*Catalog, error) {
	if !fallback.Valid() {
		return nil, fmt.Errorf("fallback locale %q is not supported", fallback)
	}

	c := &Catalog{
		dictionaries: make(map[Locale]*Dictionary, len(Locales)),
		fallback:     fallback,
	}

	var errs []error
	for _, l := range Locales {
		dict, err := loadDictionary(fsys, l)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if problems := validateDictionary(dict); len(problems) > 0 {
			errs = append(errs, fmt.Errorf("locale %s: %s", l, strings.Join(problems, "; ")))
			continue
		}
		c.dictionaries[l] = dict
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return c, nil
}

func loadDictionary(fsys fs.FS, l Locale) (*Dictionary, error) {
	path := fmt.Sprintf("locales/%s.json", l)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var dict Dictionary
	if err := dec.Decode(&dict); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &dict, nil
}

// validateDictionary walks every string field and reports empty ones, then
// checks the structural rules reflection cannot express.
func validateDictionary(d *Dictionary) []string {
	var problems []string
	walkStrings(reflect.ValueOf(*d), "", func(path, value string) {
		if strings.TrimSpace(value) == "" {
			problems = append(problems, path+" is empty")
		}
	})

	for _, l := range Locales {
		if strings.TrimSpace(d.LanguageNames[l]) == "" {
			problems = append(problems, "languageNames."+string(l)+" is missing")
		}
	}
	for _, key := range []struct{ name, value string }{
		{"blog.fallbackLabel", d.Blog.FallbackLabel},
		{"blog.fallbackChip", d.Blog.FallbackChip},
	} {
		if strings.Count(key.value, "%s") != 1 || strings.Count(key.value, "%") != 1 {
			problems = append(problems, key.name+" must contain exactly one %s")
		}
	}
	if len(d.Dates.Months) != 12 {
		problems = append(problems, fmt.Sprintf("dates.months has %d entries, want 12", len(d.Dates.Months)))
	}
	for _, placeholder := range []string{"{day}", "{month}", "{year}"} {
		if !strings.Contains(d.Dates.LongLayout, placeholder) {
			problems = append(problems, "dates.longLayout is missing "+placeholder)
		}
	}
	return problems
}

func walkStrings(v reflect.Value, path string, fn func(path, value string)) {
	switch v.Kind() {
	case reflect.String:
		fn(path, v.String())
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name == "" {
				name = t.Field(i).Name
			}
			if path != "" {
				name = path + "." + name
			}
			walkStrings(v.Field(i), name, fn)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			walkStrings(v.Index(i), path+"["+strconv.Itoa(i)+"]", fn)
		}
	}
}

// Dictionary returns the dictionary for l, or the fallback locale's
// dictionary when l is not supported.
func (c *Catalog) Dictionary(l Locale) *Dictionary {
	if d, ok := c.dictionaries[l]; ok {
		return d
	}
	return c.dictionaries[c.fallback]
}

// Fallback returns the catalog's fallback locale.
func (c *Catalog) Fallback() Locale {
	return c.fallback
}

// LanguageName returns the name of l written in target's language.
func (c *Catalog) LanguageName(l, target Locale) string {
	return c.Dictionary(target).LanguageName(l)
}

// FormatDate formats t in the long date style of l,
// e.g. "February 1, 2024" or "1 de febrero de 2024".
func (c *Catalog) FormatDate(t time.Time, l Locale) string {
	if t.IsZero() {
		return ""
	}
	d := c.Dictionary(l)
	r := strings.NewReplacer(
		"{day}", strconv.Itoa(t.Day()),
		"{month}", d.Dates.Months[t.Month()-1],
		"{year}", strconv.Itoa(t.Year()),
	)
	return r.Replace(d.Dates.LongLayout)
}
