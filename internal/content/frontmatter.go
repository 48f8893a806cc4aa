// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Front matter formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrNoFrontMatter is returned when a file does not start with a front
// matter fence.
var ErrNoFrontMatter = errors.New("missing front matter block")

// SplitFrontMatter separates the leading metadata block from the body.
// YAML blocks are fenced with "---" lines, TOML blocks with "+++" lines.
// The returned body is trimmed.
func SplitFrontMatter(source string) (map[string]any, string, string, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.TrimPrefix(source, "\ufeff")

	firstLine, rest, _ := strings.Cut(source, "\n")
	var format string
	switch strings.TrimSpace(firstLine) {
	case "---":
		format = FormatYAML
	case "+++":
		format = FormatTOML
	default:
		return nil, "", "", ErrNoFrontMatter
	}
	fence := strings.TrimSpace(firstLine)

	block, body, ok := cutAtFence(rest, fence)
	if !ok {
		return nil, "", "", fmt.Errorf("unterminated %s front matter: closing %q not found", format, fence)
	}

	meta := make(map[string]any)
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal([]byte(block), &meta)
	case FormatTOML:
		err = toml.Unmarshal([]byte(block), &meta)
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("parsing %s front matter: %w", format, err)
	}

	return meta, strings.TrimSpace(body), format, nil
}

// cutAtFence splits s at the first line consisting only of fence.
func cutAtFence(s, fence string) (string, string, bool) {
	offset := 0
	for offset <= len(s) {
		line := s[offset:]
		end := strings.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if strings.TrimRight(line, " \t") == fence {
			block := s[:offset]
			if end < 0 {
				return block, "", true
			}
			return block, s[offset+end+1:], true
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return "", "", false
}
