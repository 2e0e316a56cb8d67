// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package skill checks and inspects skill files: UTF-8 text with a
// "---"-delimited frontmatter block followed by a free-form body.
package skill

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/skilltools/pkg/types"
)

const delimiter = "---"

var (
	nameFieldRe        = regexp.MustCompile(`(?m)^name:`)
	descriptionFieldRe = regexp.MustCompile(`(?m)^description:`)
	nameValueRe        = regexp.MustCompile(`(?m)^name:[\s\v\x1c-\x1f\x{85}\p{Z}]*(.+)$`)

	// namePattern accepts lowercase letters, digits and hyphens, with no
	// leading or trailing hyphen.
	namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$|^[a-z0-9]$`)
)

// Options tunes the checklist.
type Options struct {
	// MaxBodyLines is the largest accepted body line count; zero means
	// types.DefaultMaxBodyLines.
	MaxBodyLines int
}

// ErrNotUTF8 is returned by Validate for files that are not valid UTF-8.
var ErrNotUTF8 = errors.New("not valid UTF-8")

// Validate reads the file at path and runs Check on its content. Read
// failures and undecodable content are returned as errors; findings are
// returned as issues. "\r\n" and lone "\r" line endings are read as "\n".
func Validate(path string, opts Options) ([]types.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: %w", path, ErrNotUTF8)
	}
	return Check(normalizeNewlines(string(data)), opts), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Check runs the checklist over content and returns the issues found, in
// check order. A missing or unterminated frontmatter block is reported alone;
// the field, name and body checks are independent of each other.
func Check(content string, opts Options) []types.Issue {
	maxLines := opts.MaxBodyLines
	if maxLines <= 0 {
		maxLines = types.DefaultMaxBodyLines
	}

	if !strings.HasPrefix(content, delimiter) {
		return []types.Issue{newIssue(types.IssueMissingFrontmatter, "Missing frontmatter (must start with ---)")}
	}

	parts := strings.SplitN(content, delimiter, 3)
	if len(parts) < 3 {
		return []types.Issue{newIssue(types.IssueIncompleteFrontmatter, "Incomplete frontmatter (missing closing ---)")}
	}

	var issues []types.Issue
	fm := strip(parts[1])

	if !nameFieldRe.MatchString(fm) {
		issues = append(issues, newIssue(types.IssueMissingField, "Missing required field: name"))
	}
	if !descriptionFieldRe.MatchString(fm) {
		issues = append(issues, newIssue(types.IssueMissingField, "Missing required field: description"))
	}

	if m := nameValueRe.FindStringSubmatch(fm); m != nil {
		name := strings.Trim(strip(m[1]), `"'`)
		if err := ValidateName(name); err != nil {
			issues = append(issues, newIssue(types.IssueInvalidNameFormat,
				fmt.Sprintf("Invalid name format: '%s' (must be lowercase, hyphens only)", name)))
		}
	}

	body := strip(parts[2])
	if body == "" {
		issues = append(issues, newIssue(types.IssueEmptyBody, "Empty body (add instructions after frontmatter)"))
	} else if n := countLines(body); n > maxLines {
		issues = append(issues, newIssue(types.IssueBodyTooLong,
			fmt.Sprintf("Body too long (%d lines, recommended max %d)", n, maxLines)))
	}

	return issues
}

// ValidateName reports whether name is a valid skill name: non-empty,
// lowercase alphanumerics and hyphens, not starting or ending with a hyphen.
func ValidateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Match(namePattern).Error("must be lowercase alphanumerics and hyphens"),
	)
}

func newIssue(kind types.IssueKind, msg string) types.Issue {
	return types.Issue{Kind: kind, Message: msg}
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// FS, GS, RS and US, which count as whitespace in Unicode-aware text tools.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func strip(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// countLines counts lines the way text editors do: a trailing line break
// does not start a new line, and "\r\n" is a single break.
func countLines(s string) int {
	lines, pending := 0, false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if !isLineBreak(r) {
			pending = true
			continue
		}
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		lines++
		pending = false
	}
	if pending {
		lines++
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
