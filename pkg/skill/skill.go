// Package skill defines the skill descriptor model and loads skills from
// SKILL.md files. A skill is a directory containing a SKILL.md file whose
// YAML frontmatter carries the skill metadata and whose markdown body
// carries the instructions.
package skill

// FileName is the conventional metadata file name inside a skill directory.
const FileName = "SKILL.md"

// Dirs lists the conventional subdirectories of a skill.
var Dirs = []string{"scripts", "references", "templates", "examples"}

// Frontmatter is the YAML block at the top of a SKILL.md file. Name and
// description are required, everything else is optional.
type Frontmatter struct {
	Name        string            `yaml:"name" json:"name" jsonschema:"description=Skill identifier in hyphenated lowercase form"`
	Description string            `yaml:"description" json:"description" jsonschema:"description=One or two sentence summary of what the skill does"`
	License     string            `yaml:"license,omitempty" json:"license,omitempty" jsonschema:"description=SPDX license identifier"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty" jsonschema:"description=Opaque key-value annotations"`
}

// Skill is a fully parsed skill. Body holds the markdown content after the
// frontmatter block. Dir is the directory the skill was loaded from and is
// empty for skills parsed from raw bytes.
type Skill struct {
	Frontmatter `yaml:",inline"`

	Body string `yaml:"-" json:"-"`
	Dir  string `yaml:"-" json:"directory,omitempty"`
}
