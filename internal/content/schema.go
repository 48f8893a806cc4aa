// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/olegiv/localelab/internal/i18n"
)

// frontMatter is the schema every content file's metadata must satisfy.
type frontMatter struct {
	Title          string   `fm:"title" validate:"required,min=3"`
	Description    string   `fm:"description" validate:"required,min=10"`
	Slug           string   `fm:"slug" validate:"required"`
	TranslationKey string   `fm:"translationKey"`
	Language       string   `fm:"language" validate:"required,locale"`
	PublishedAt    string   `fm:"publishedAt" validate:"required,date"`
	UpdatedAt      string   `fm:"updatedAt" validate:"omitempty,date"`
	Tags           []string `fm:"tags"`
	HeroImage      string   `fm:"heroImage"`
	HeroImageAlt   string   `fm:"heroImageAlt"`
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses a front matter date string.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}

// schemaValidator checks frontMatter values. It is safe for concurrent use.
var schemaValidator = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("fm")
	})
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		return i18n.IsLocale(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// parseEntry builds an Entry from decoded front matter and body. It returns
// every schema problem found rather than stopping at the first.
func parseEntry(meta map[string]any, body, path string) (Entry, []string) {
	fm, problems := decodeFrontMatter(meta)

	if err := schemaValidator.Struct(fm); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Entry{}, append(problems, err.Error())
		}
		for _, fe := range verrs {
			problems = append(problems, describeFieldError(fe))
		}
	}
	if len(problems) > 0 {
		return Entry{}, problems
	}

	published, _ := ParseDate(fm.PublishedAt)
	entry := Entry{
		Slug:           fm.Slug,
		TranslationKey: fm.TranslationKey,
		Language:       i18n.Locale(fm.Language),
		Title:          fm.Title,
		Description:    fm.Description,
		PublishedAt:    published,
		Tags:           fm.Tags,
		HeroImage:      fm.HeroImage,
		HeroImageAlt:   fm.HeroImageAlt,
		Body:           body,
		Path:           path,
	}
	if entry.TranslationKey == "" {
		entry.TranslationKey = entry.Slug
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if fm.UpdatedAt != "" {
		updated, _ := ParseDate(fm.UpdatedAt)
		entry.UpdatedAt = &updated
	}
	return entry, nil
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "min":
		return fmt.Sprintf("%s: must be at least %s characters", field, fe.Param())
	case "locale":
		return fmt.Sprintf("%s: %q is not a supported locale", field, fe.Value())
	case "date":
		return fmt.Sprintf("%s: %q is not a valid date", field, fe.Value())
	default:
		return fmt.Sprintf("%s: failed %q check", field, fe.Tag())
	}
}

// decodeFrontMatter copies known keys from the decoded YAML/TOML map into a
// frontMatter, reporting values of the wrong type. Unknown keys are ignored.
func decodeFrontMatter(meta map[string]any) (frontMatter, []string) {
	var (
		fm       frontMatter
		problems []string
	)

	str := func(key string, dst *string) {
		v, ok := meta[key]
		if !ok || v == nil {
			return
		}
		s, err := scalarString(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
			return
		}
		*dst = s
	}

	str("title", &fm.Title)
	str("description", &fm.Description)
	str("slug", &fm.Slug)
	str("translationKey", &fm.TranslationKey)
	str("language", &fm.Language)
	str("publishedAt", &fm.PublishedAt)
	str("updatedAt", &fm.UpdatedAt)
	str("heroImage", &fm.HeroImage)
	str("heroImageAlt", &fm.HeroImageAlt)

	if v, ok := meta["tags"]; ok && v != nil {
		tags, err := stringList(v)
		if err != nil {
			problems = append(problems, "tags: "+err.Error())
		} else {
			fm.Tags = tags
		}
	}

	sort.Strings(problems)
	return fm, problems
}

// scalarString converts a decoded YAML/TOML scalar to its string form.
// Native dates are rendered in a layout ParseDate accepts.
func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case time.Time:
		return t.Format(time.RFC3339Nano), nil
	case toml.LocalDate:
		return t.String(), nil
	case toml.LocalDateTime:
		return t.String(), nil
	case int, int64, uint64, float64:
		return fmt.Sprint(t), nil
	default:
		return "", fmt.Errorf("expected a string, got %T", v)
	}
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of strings, got %T", v)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a list of strings, found %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}
