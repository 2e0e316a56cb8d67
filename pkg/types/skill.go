// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// IssueKind classifies a problem found in a skill file.
type IssueKind string

const (
	IssueMissingFrontmatter    IssueKind = "missing-frontmatter"
	IssueIncompleteFrontmatter IssueKind = "incomplete-frontmatter"
	IssueMissingField          IssueKind = "missing-field"
	IssueInvalidNameFormat     IssueKind = "invalid-name-format"
	IssueEmptyBody             IssueKind = "empty-body"
	IssueBodyTooLong           IssueKind = "body-too-long"
)

// Issue is one validation finding. Issues are reported in check order.
type Issue struct {
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
}

func (i Issue) String() string { return i.Message }

// Heading is a Markdown heading found in a skill body.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// SkillDocument is the parsed form of a skill file: frontmatter fields plus
// a summary of the body.
type SkillDocument struct {
	Path        string         `json:"path" yaml:"path"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	License     string         `json:"license,omitempty" yaml:"license,omitempty"`
	Extra       map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
	BodyLines   int            `json:"body_lines" yaml:"body_lines"`
	Headings    []Heading      `json:"headings,omitempty" yaml:"headings,omitempty"`
}
