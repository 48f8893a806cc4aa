// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"fmt"
	"strings"
)

// Dictionary holds all user-facing copy for one locale.
type Dictionary struct {
	Navigation    NavigationCopy    `json:"navigation"`
	Home          HomeCopy          `json:"home"`
	Blog          BlogCopy          `json:"blog"`
	BlogPost      BlogPostCopy      `json:"blogPost"`
	Footnotes     FootnotesCopy     `json:"footnotes"`
	Contact       ContactCopy       `json:"contact"`
	Errors        ErrorPageCopy     `json:"errors"`
	LanguageNames map[Locale]string `json:"languageNames"`
	Dates         DatesCopy         `json:"dates"`
}

// NavigationCopy is the header navigation copy.
type NavigationCopy struct {
	Blog          string `json:"blog"`
	Contact       string `json:"contact"`
	ThemeLabel    string `json:"themeLabel"`
	LanguageLabel string `json:"languageLabel"`
	ThemeLight    string `json:"themeLight"`
	ThemeDark     string `json:"themeDark"`
}

// HomeCopy is the landing page copy.
type HomeCopy struct {
	HeroTitle    string `json:"heroTitle"`
	HeroBody     string `json:"heroBody"`
	PrimaryCta   string `json:"primaryCta"`
	SecondaryCta string `json:"secondaryCta"`
	StatLabel    string `json:"statLabel"`
	StatValue    string `json:"statValue"`
}

// BlogCopy is the blog index copy. FallbackLabel and FallbackChip take the
// displayed language name as their only %s verb.
type BlogCopy struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	TranslationsLabel string `json:"translationsLabel"`
	FallbackLabel     string `json:"fallbackLabel"`
	FallbackChip      string `json:"fallbackChip"`
	ReadPost          string `json:"readPost"`
	MissingPosts      string `json:"missingPosts"`
	TagTitle          string `json:"tagTitle"`
}

// BlogPostCopy is the article page copy.
type BlogPostCopy struct {
	Published          string `json:"published"`
	Updated            string `json:"updated"`
	AvailableLanguages string `json:"availableLanguages"`
	TranslationBadge   string `json:"translationBadge"`
}

// FootnotesCopy is the footnote section copy.
type FootnotesCopy struct {
	Heading string `json:"heading"`
}

// ContactCopy is the contact page and form copy.
type ContactCopy struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	NameLabel    string        `json:"nameLabel"`
	EmailLabel   string        `json:"emailLabel"`
	MessageLabel string        `json:"messageLabel"`
	SubmitCta    string        `json:"submitCta"`
	SuccessTitle string        `json:"successTitle"`
	SuccessBody  string        `json:"successBody"`
	Errors       ContactErrors `json:"errors"`
}

// ContactErrors holds the localized contact form validation messages.
type ContactErrors struct {
	NameRequired    string `json:"nameRequired"`
	NameLength      string `json:"nameLength"`
	EmailInvalid    string `json:"emailInvalid"`
	MessageRequired string `json:"messageRequired"`
	MessageLength   string `json:"messageLength"`
	RequestError    string `json:"requestError"`
	RateLimited     string `json:"rateLimited"`
}

// Lookup returns the message for a contact error key, falling back to
// RequestError for unknown keys.
func (e ContactErrors) Lookup(key string) string {
	switch key {
	case "nameRequired":
		return e.NameRequired
	case "nameLength":
		return e.NameLength
	case "emailInvalid":
		return e.EmailInvalid
	case "messageRequired":
		return e.MessageRequired
	case "messageLength":
		return e.MessageLength
	case "rateLimited":
		return e.RateLimited
	default:
		return e.RequestError
	}
}

// ErrorPageCopy is the copy for error pages.
type ErrorPageCopy struct {
	NotFoundTitle string `json:"notFoundTitle"`
	NotFoundBody  string `json:"notFoundBody"`
	ServerTitle   string `json:"serverTitle"`
	ServerBody    string `json:"serverBody"`
	BackHome      string `json:"backHome"`
}

// DatesCopy describes how long dates are written. LongLayout uses the
// placeholders {day}, {month} and {year}.
type DatesCopy struct {
	Months     []string `json:"months"`
	LongLayout string   `json:"longLayout"`
}

// FallbackNotice returns the banner shown when a post is displayed in
// another language than the one requested.
func (d *Dictionary) FallbackNotice(languageName string) string {
	return fmt.Sprintf(d.Blog.FallbackLabel, languageName)
}

// FallbackBadge returns the short chip shown on fallback post cards.
func (d *Dictionary) FallbackBadge(languageName string) string {
	return fmt.Sprintf(d.Blog.FallbackChip, languageName)
}

// LanguageName returns the name of l written in this dictionary's language.
func (d *Dictionary) LanguageName(l Locale) string {
	if name, ok := d.LanguageNames[l]; ok {
		return name
	}
	return strings.ToUpper(string(l))
}
