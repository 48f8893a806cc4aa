// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/localelab/internal/i18n"
)

// Sentinel errors for errors.Is checks.
var (
	ErrInvalidContent = errors.New("invalid content")
	ErrNotFound       = errors.New("post not found")
)

// FileError lists the schema problems of a single content file.
type FileError struct {
	Path     string
	Problems []string
}

func (e FileError) Error() string {
	return e.Path + ": " + strings.Join(e.Problems, "; ")
}

// ValidationError is returned when one or more content files do not conform
// to the front matter schema. The whole load fails; no entries are returned.
type ValidationError struct {
	Files []FileError
}

func (e *ValidationError) Error() string {
	if len(e.Files) == 1 {
		return "invalid content: " + e.Files[0].Error()
	}
	parts := make([]string, len(e.Files))
	for i, f := range e.Files {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("invalid content in %d files: %s", len(e.Files), strings.Join(parts, " | "))
}

// Is reports ErrInvalidContent.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidContent
}

// NotFoundError is returned when no post group has the requested slug.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("post %q not found", e.Slug)
}

// Is reports ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RenderError wraps a renderer failure for a post body.
type RenderError struct {
	Slug     string
	Language i18n.Locale
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering post %q (%s): %v", e.Slug, e.Language, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
