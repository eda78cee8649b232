package skill

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// Discovery finds skills under configured directories. In the default mode
// each immediate subdirectory is checked for a SKILL.md file; in recursive
// mode the whole tree is searched.
type Discovery struct {
	dirs      []string
	recursive bool
	filter    glob.Glob
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithDirs sets the directories to search. Defaults to the current
// directory.
func WithDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		if len(dirs) > 0 {
			d.dirs = dirs
		}
		return nil
	}
}

// WithRecursive searches the whole tree under each directory instead of
// only the immediate subdirectories.
func WithRecursive(recursive bool) Option {
	return func(d *Discovery) error {
		d.recursive = recursive
		return nil
	}
}

// WithNameFilter keeps only skills whose name matches the glob pattern,
// e.g. "data-*" or "*-reviewer".
func WithNameFilter(pattern string) Option {
	return func(d *Discovery) error {
		if pattern == "" {
			return nil
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.Wrapf(err, "invalid filter pattern %q", pattern)
		}
		d.filter = g
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{
		dirs: []string{"."},
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Discover returns all parseable skills keyed by name. When two skills
// share a name the one from the earlier configured directory wins.
// Directories that do not exist or cannot be read are skipped, and so are
// SKILL.md files that fail to parse; discovery is a listing, not a
// validation pass.
func (d *Discovery) Discover() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.dirs {
		var err error
		if d.recursive {
			err = d.discoverTree(dir, skills)
		} else {
			err = d.discoverChildren(dir, skills)
		}
		if err != nil {
			return nil, err
		}
	}

	return skills, nil
}

// discoverChildren checks each immediate subdirectory of dir for a skill.
// Entries are stat'ed rather than type-checked so symlinks to directories
// count and broken symlinks are skipped.
func (d *Discovery) discoverChildren(dir string, skills map[string]*Skill) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		d.collect(entryPath, skills)
	}

	return nil
}

// discoverTree finds every SKILL.md under dir, at any depth.
func (d *Discovery) discoverTree(dir string, skills map[string]*Skill) error {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/"+FileName)
	if err != nil {
		return errors.Wrapf(err, "failed to search %s", dir)
	}

	for _, match := range matches {
		if skipPath(match) {
			continue
		}
		d.collect(filepath.Join(dir, filepath.Dir(match)), skills)
	}

	return nil
}

// collect loads the skill at skillDir and records it unless it is
// unparseable, unnamed, filtered out, or shadowed by an earlier skill with
// the same name.
func (d *Discovery) collect(skillDir string, skills map[string]*Skill) {
	skill, err := Load(skillDir)
	if err != nil || skill.Name == "" {
		return
	}

	if d.filter != nil && !d.filter.Match(skill.Name) {
		return
	}

	if _, exists := skills[skill.Name]; !exists {
		skills[skill.Name] = skill
	}
}

// skipPath filters out matches under directories that never hold skills.
func skipPath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".git" || part == "node_modules" {
			return true
		}
	}
	return false
}
