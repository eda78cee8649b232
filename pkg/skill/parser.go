package skill

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Parse failures that describe the skill rather than the environment.
// Callers match these with errors.Is to turn them into validation issues
// instead of hard failures.
var (
	ErrNotFound            = errors.New("SKILL.md file not found (required)")
	ErrNotAFile            = errors.New("SKILL.md exists but is not a regular file")
	ErrNoFrontmatter       = errors.New("SKILL.md must start with YAML frontmatter (---)")
	ErrUnclosedFrontmatter = errors.New("YAML frontmatter not properly closed with ---")
	ErrInvalidFrontmatter  = errors.New("invalid YAML frontmatter")
)

// Load reads and parses the SKILL.md file inside dir. Malformed skills are
// reported through the sentinel errors above; anything else (unreadable
// disk, permissions) is returned as an operational error.
func Load(dir string) (*Skill, error) {
	path := filepath.Join(dir, FileName)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if info.IsDir() {
		return nil, ErrNotAFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	skill, err := Parse(content)
	if err != nil {
		return nil, err
	}

	skill.Dir = dir
	return skill, nil
}

// Parse parses raw SKILL.md content. The frontmatter block must open on the
// first line and close with a matching --- line; the YAML between the
// delimiters must be a mapping. Missing fields are left zero valued, their
// presence is the validator's concern, not the parser's.
func Parse(content []byte) (*Skill, error) {
	text := string(content)

	if !strings.HasPrefix(text, "---") {
		return nil, ErrNoFrontmatter
	}
	if !frontmatterClosed(text) {
		return nil, ErrUnclosedFrontmatter
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFrontmatter, err.Error())
	}
	if metaData == nil {
		return nil, errors.Wrap(ErrInvalidFrontmatter, "frontmatter must be a YAML mapping")
	}

	skill := &Skill{}
	skill.Name, _ = metaData["name"].(string)
	skill.Description, _ = metaData["description"].(string)
	skill.License, _ = metaData["license"].(string)

	if raw, ok := metaData["metadata"]; ok {
		skill.Metadata = decodeMetadata(raw)
	}

	skill.Body = extractBody(text)
	return skill, nil
}

// decodeMetadata coerces the frontmatter metadata value into a string map.
// The YAML library hands nested mappings back as map[interface{}]interface{}
// and scalar values in whatever type they parsed as, so decode weakly and
// drop the key entirely when the shape is not map-like.
func decodeMetadata(raw interface{}) map[string]string {
	var metadata map[string]string

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &metadata,
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(raw); err != nil {
		return nil
	}

	return metadata
}

// frontmatterClosed reports whether a --- line after the opening delimiter
// closes the frontmatter block.
func frontmatterClosed(text string) bool {
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return true
		}
	}
	return false
}

// extractBody strips the frontmatter block and returns the markdown body.
func extractBody(content string) string {
	lines := strings.Split(content, "\n")

	frontmatterEnd := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
