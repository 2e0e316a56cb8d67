// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package skill

import (
	"bytes"
	"fmt"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/skilltools/pkg/types"
)

type frontMatterEnvelope struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	License     string         `yaml:"license"`
	Extra       map[string]any `yaml:",inline"`
}

// Inspect reads the file at path and parses it with Parse.
func Inspect(path string) (*types.SkillDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes the YAML frontmatter of a skill file and summarizes its body:
// line count and heading outline. Unlike Check, Parse needs well-formed YAML
// and fails when it is not.
func Parse(path string, source []byte) (*types.SkillDocument, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}
	body = bytes.TrimSpace(body)

	doc := &types.SkillDocument{
		Path:        path,
		Name:        meta.Name,
		Description: meta.Description,
		License:     meta.License,
		BodyLines:   countLines(string(body)),
		Headings:    outline(body),
	}
	if len(meta.Extra) > 0 {
		doc.Extra = normalizeMap(meta.Extra)
	}
	return doc, nil
}

// outline returns the Markdown headings of body in document order.
func outline(body []byte) []types.Heading {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var headings []types.Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, types.Heading{Level: h.Level, Text: string(h.Text(body))})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// normalizeMap converts YAML-decoded maps with interface keys into
// string-keyed maps so the document can be encoded as JSON.
func normalizeMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case map[string]any:
		return normalizeMap(t)
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	}
	return v
}
