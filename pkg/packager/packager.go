// Package packager bundles a skill directory into a zip archive for
// distribution.
package packager

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// DefaultOutput returns the conventional archive name for a skill
// directory: the directory's base name with a .zip extension, in the
// current directory.
func DefaultOutput(skillDir string) (string, error) {
	abs, err := filepath.Abs(skillDir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", skillDir)
	}
	return filepath.Base(abs) + ".zip", nil
}

// Create writes a zip archive of skillDir to outPath. Entries are rooted
// at the skill directory's base name so the archive unpacks into a single
// directory. A partial archive is removed again when archiving fails.
func Create(skillDir, outPath string) error {
	abs, err := filepath.Abs(skillDir)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", skillDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", outPath)
	}

	if err := writeArchive(out, abs); err != nil {
		out.Close()
		if rmErr := os.Remove(outPath); rmErr != nil {
			return multierror.Append(err, errors.Wrap(rmErr, "failed to remove partial archive"))
		}
		return err
	}

	return errors.Wrapf(out.Close(), "failed to close %s", outPath)
}

func writeArchive(w io.Writer, skillDir string) error {
	zw := zip.NewWriter(w)
	base := filepath.Base(skillDir)

	err := filepath.Walk(skillDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(skillDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		name := filepath.ToSlash(filepath.Join(base, rel))

		if info.IsDir() {
			if info.Name() == ".git" || info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			_, err := zw.Create(name + "/")
			return err
		}

		entry, err := zw.Create(name)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(entry, file)
		return err
	})
	if err != nil {
		zw.Close()
		return errors.Wrapf(err, "failed to archive %s", skillDir)
	}

	return errors.Wrap(zw.Close(), "failed to finalize archive")
}
