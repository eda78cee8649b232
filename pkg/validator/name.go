package validator

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateName checks that name is a valid skill name: non-empty groups of
// lowercase letters and digits separated by single hyphens. It returns nil
// for a valid name and the first violation otherwise. The scaffolder runs
// the same check before creating anything.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("skill name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return errors.New("skill name must contain only lowercase letters, numbers, and hyphens")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return errors.New("skill name cannot start or end with a hyphen")
	}
	if strings.Contains(name, "--") {
		return errors.New("skill name cannot contain consecutive hyphens")
	}
	return nil
}
