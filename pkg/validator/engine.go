package validator

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/skillet-cli/skillet/pkg/logger"
	"github.com/skillet-cli/skillet/pkg/skill"
)

// Config holds the tunable validation thresholds.
type Config struct {
	// MinDescriptionLength is the length below which a description draws a
	// too-short warning.
	MinDescriptionLength int
	// MaxDescriptionLength is the length above which a description draws a
	// too-long warning.
	MaxDescriptionLength int
	// MinBodyLength is the body length below which the skill draws a
	// too-brief warning.
	MinBodyLength int
	// MaxStyleIssues caps how many style warnings are reported
	// individually before the rest collapse into a single summary.
	MaxStyleIssues int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinDescriptionLength: 10,
		MaxDescriptionLength: 200,
		MinBodyLength:        50,
		MaxStyleIssues:       10,
	}
}

// Engine runs the validation rules. Thresholds live on the engine instance
// so two engines with different configs can coexist.
type Engine struct {
	config Config
}

// Option is a function that configures an Engine
type Option func(*Engine)

// WithConfig overrides the default thresholds.
func WithConfig(config Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// NewEngine creates a validation engine with the default thresholds unless
// overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateDir loads the skill at dir and validates it. Parse failures
// become single-error reports: a missing or malformed SKILL.md is a finding
// about the skill, not a fault of the validator. Only environmental
// failures (unreadable disk, bad permissions) are returned as errors.
func (e *Engine) ValidateDir(ctx context.Context, dir string) (*Report, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", dir)
	}

	report := newReport()

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		report.errorf(CodeInvalidPath, "directory does not exist: %s", abs)
		return report, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", abs)
	}
	if !info.IsDir() {
		report.errorf(CodeInvalidPath, "path is not a directory: %s", abs)
		return report, nil
	}

	s, err := skill.Load(abs)
	if err != nil {
		switch {
		case errors.Is(err, skill.ErrNotFound), errors.Is(err, skill.ErrNotAFile):
			report.errorf(CodeMetadataNotFound, "%s", err.Error())
		case errors.Is(err, skill.ErrNoFrontmatter),
			errors.Is(err, skill.ErrUnclosedFrontmatter),
			errors.Is(err, skill.ErrInvalidFrontmatter):
			report.errorf(CodeInvalidFrontmatter, "%s", err.Error())
		default:
			return nil, err
		}

		logger.G(ctx).WithField("dir", abs).Debug("skill failed to parse, skipping rule evaluation")
		return report, nil
	}

	return e.Validate(ctx, s), nil
}

// Validate runs every rule against an already parsed skill. Rules are
// independent of each other and the report lists their findings in rule
// order: name, directory match, description, body, file references,
// writing style.
func (e *Engine) Validate(ctx context.Context, s *skill.Skill) *Report {
	report := newReport()

	e.checkName(s, report)
	e.checkDirectoryMatch(s, report)
	e.checkDescription(s, report)
	e.checkBody(s, report)
	e.checkFileReferences(s, report)
	e.checkWritingStyle(s, report)

	logger.G(ctx).WithFields(logrus.Fields{
		"skill":    s.Name,
		"errors":   len(report.Errors()),
		"warnings": len(report.Warnings()),
	}).Debug("validation completed")

	return report
}

// checkName applies the shared name predicate. A missing name field shows
// up here as an empty string, so absence is reported as a format violation
// rather than a separate code.
func (e *Engine) checkName(s *skill.Skill, report *Report) {
	if err := ValidateName(s.Name); err != nil {
		report.errorf(CodeNameFormat, "%s", err.Error())
	}
}

func (e *Engine) checkDescription(s *skill.Skill, report *Report) {
	description := strings.TrimSpace(s.Description)
	if description == "" {
		report.errorf(CodeMissingDescription, "skill description is required in frontmatter")
		return
	}

	if len(description) < e.config.MinDescriptionLength {
		report.warnf(CodeDescriptionTooShort, "description is very short, consider adding more detail")
	}
	if len(description) > e.config.MaxDescriptionLength {
		report.warnf(CodeDescriptionTooLong, "description is longer than %d characters, consider being more concise", e.config.MaxDescriptionLength)
	}
}

// checkDirectoryMatch compares the name field against the directory the
// skill was loaded from. Skills parsed from raw bytes have no directory and
// are skipped.
func (e *Engine) checkDirectoryMatch(s *skill.Skill, report *Report) {
	if s.Dir == "" {
		return
	}

	dirName := filepath.Base(filepath.Clean(s.Dir))
	if s.Name != dirName {
		report.errorf(CodeDirectoryMismatch, "directory name %q does not match skill name %q", dirName, s.Name)
	}
}

func (e *Engine) checkBody(s *skill.Skill, report *Report) {
	body := strings.TrimSpace(s.Body)
	if body == "" {
		report.errorf(CodeEmptyBody, "SKILL.md has no content after the frontmatter")
		return
	}

	if len(body) < e.config.MinBodyLength {
		report.warnf(CodeBodyTooShort, "SKILL.md content is very brief, consider adding more guidance")
	}
}

// Relative paths the body may reference: backtick-quoted paths like
// `scripts/run.py` and markdown link targets under the conventional
// subdirectories.
var fileReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile("`([a-z-]+/[a-z0-9_.-]+(?:/[a-z0-9_.-]+)*)`"),
	regexp.MustCompile(`\(((?:scripts|references|templates|examples|assets)/[^)]+)\)`),
}

// checkFileReferences warns about referenced files that do not exist on
// disk. Each distinct reference is checked once and missing ones are
// reported in sorted order so repeated runs produce identical reports.
func (e *Engine) checkFileReferences(s *skill.Skill, report *Report) {
	if s.Dir == "" {
		return
	}

	seen := make(map[string]bool)
	refs := []string{}
	for _, pattern := range fileReferencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(s.Body, -1) {
			if ref := match[1]; !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	sort.Strings(refs)

	for _, ref := range refs {
		if _, err := os.Stat(filepath.Join(s.Dir, ref)); err != nil {
			report.warnf(CodeMissingFileReference, "referenced file not found: %s", ref)
		}
	}
}

// List items that open with a third-person verb ("- Creates", "1. Analyzes")
// instead of the imperative form the format asks for.
var thirdPersonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*-\s+[A-Z][a-z]+s\s+`),
	regexp.MustCompile(`^\s*\d+\.\s+[A-Z][a-z]+s\s+`),
}

// checkWritingStyle is a heuristic and only ever warns. Findings beyond
// the configured cap collapse into one summary warning.
func (e *Engine) checkWritingStyle(s *skill.Skill, report *Report) {
	var lines []int
	for i, line := range strings.Split(s.Body, "\n") {
		for _, pattern := range thirdPersonPatterns {
			if pattern.MatchString(line) {
				lines = append(lines, i+1)
				break
			}
		}
	}

	shown := len(lines)
	if shown > e.config.MaxStyleIssues {
		shown = e.config.MaxStyleIssues
	}

	for _, line := range lines[:shown] {
		report.warnf(CodeNonImperativeStyle, "line %d: consider using imperative form ('Create' instead of 'Creates')", line)
	}
	if rest := len(lines) - shown; rest > 0 {
		report.warnf(CodeNonImperativeStyle, "... and %d more style warnings", rest)
	}
}
