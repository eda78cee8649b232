// Package scaffold generates the boilerplate structure for a new skill: the
// skill directory with its conventional subdirectories, a SKILL.md that
// passes validation, and a README.
package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/skillet-cli/skillet/pkg/logger"
	"github.com/skillet-cli/skillet/pkg/skill"
	"github.com/skillet-cli/skillet/pkg/validator"
)

// DefaultLicense is written into generated skills unless overridden.
const DefaultLicense = "Apache-2.0"

// Scaffolder creates skill directories under a parent directory.
type Scaffolder struct {
	parentDir string
	license   string
	dryRun    bool
}

// Option is a function that configures a Scaffolder
type Option func(*Scaffolder) error

// WithParentDir sets the directory new skills are created under. Defaults
// to the current directory.
func WithParentDir(dir string) Option {
	return func(s *Scaffolder) error {
		if dir != "" {
			s.parentDir = dir
		}
		return nil
	}
}

// WithLicense sets the license written into generated skills. An empty
// license omits the field entirely.
func WithLicense(license string) Option {
	return func(s *Scaffolder) error {
		s.license = license
		return nil
	}
}

// WithDryRun plans the scaffold without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(s *Scaffolder) error {
		s.dryRun = dryRun
		return nil
	}
}

// NewScaffolder creates a new scaffolder instance
func NewScaffolder(opts ...Option) (*Scaffolder, error) {
	s := &Scaffolder{
		parentDir: ".",
		license:   DefaultLicense,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Action kinds reported by Create.
const (
	ActionDir  = "dir"
	ActionFile = "file"
)

// Action describes one filesystem step of a scaffold run, with the path
// relative to the parent directory.
type Action struct {
	Kind string
	Path string
}

type renderedFile struct {
	path    string
	content []byte
}

// Create generates a new skill named name. The name is checked with the
// same predicate the validator uses, so a name that scaffolds is a name
// that validates. Nothing is written over an existing directory, and a
// half-written skill is removed again if any step fails.
func (sc *Scaffolder) Create(ctx context.Context, name, description string) ([]Action, error) {
	if err := validator.ValidateName(name); err != nil {
		return nil, errors.Wrap(err, validator.CodeNameFormat)
	}
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("skill description cannot be empty")
	}

	skillDir := filepath.Join(sc.parentDir, name)
	if _, err := os.Stat(skillDir); err == nil {
		return nil, errors.Errorf("directory %q already exists", skillDir)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to stat %s", skillDir)
	}

	files, err := sc.renderFiles(name, description)
	if err != nil {
		return nil, err
	}
	actions := planActions(name, files)

	if sc.dryRun {
		logger.G(ctx).WithField("skill", name).Debug("dry run, skipping filesystem writes")
		return actions, nil
	}

	if err := sc.write(ctx, skillDir, files); err != nil {
		if rmErr := os.RemoveAll(skillDir); rmErr != nil {
			return nil, multierror.Append(err, errors.Wrap(rmErr, "failed to clean up partial skill directory"))
		}
		return nil, err
	}

	return actions, nil
}

// renderFiles produces every file of the new skill in write order. Files
// are rendered before anything touches the filesystem so a template or
// marshalling failure leaves no partial skill behind.
func (sc *Scaffolder) renderFiles(name, description string) ([]renderedFile, error) {
	data := TemplateData{
		Name:        name,
		Title:       Title(name),
		Description: description,
		License:     sc.license,
	}

	body, err := renderTemplate(skillBodyTemplate, data)
	if err != nil {
		return nil, err
	}
	readme, err := renderTemplate(readmeTemplate, data)
	if err != nil {
		return nil, err
	}

	frontmatter, err := yaml.Marshal(skill.Frontmatter{
		Name:        name,
		Description: description,
		License:     sc.license,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal frontmatter")
	}

	files := []renderedFile{
		{path: skill.FileName, content: []byte("---\n" + string(frontmatter) + "---\n\n" + body)},
		{path: "README.md", content: []byte(readme)},
	}
	for _, dir := range skill.Dirs {
		files = append(files, renderedFile{path: filepath.Join(dir, ".gitkeep")})
	}

	return files, nil
}

func (sc *Scaffolder) write(ctx context.Context, skillDir string, files []renderedFile) error {
	for _, dir := range append([]string{skillDir}, subDirs(skillDir)...) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	for _, file := range files {
		path := filepath.Join(skillDir, file.path)
		if err := os.WriteFile(path, file.content, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
	}

	logger.G(ctx).WithField("dir", skillDir).Debug("skill directory created")
	return nil
}

func subDirs(skillDir string) []string {
	dirs := make([]string, 0, len(skill.Dirs))
	for _, dir := range skill.Dirs {
		dirs = append(dirs, filepath.Join(skillDir, dir))
	}
	return dirs
}

func planActions(name string, files []renderedFile) []Action {
	actions := []Action{{Kind: ActionDir, Path: name}}
	for _, dir := range skill.Dirs {
		actions = append(actions, Action{Kind: ActionDir, Path: filepath.Join(name, dir)})
	}
	for _, file := range files {
		actions = append(actions, Action{Kind: ActionFile, Path: filepath.Join(name, file.path)})
	}
	return actions
}

// Title turns a hyphenated skill name into a spaced title, so
// "data-reviewer" becomes "Data Reviewer".
func Title(name string) string {
	parts := strings.Split(name, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
