package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkill(t *testing.T, dir, name, description string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := `---
name: ` + name + `
description: ` + description + `
---

# ` + name + `

Instructions for ` + name + `.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestNewDiscovery(t *testing.T) {
	t.Run("defaults to current directory", func(t *testing.T) {
		discovery, err := NewDiscovery()
		require.NoError(t, err)
		assert.Equal(t, []string{"."}, discovery.dirs)
		assert.False(t, discovery.recursive)
	})

	t.Run("with custom dirs", func(t *testing.T) {
		discovery, err := NewDiscovery(WithDirs("/tmp/a", "/tmp/b"))
		require.NoError(t, err)
		assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, discovery.dirs)
	})

	t.Run("empty dirs keep the default", func(t *testing.T) {
		discovery, err := NewDiscovery(WithDirs())
		require.NoError(t, err)
		assert.Equal(t, []string{"."}, discovery.dirs)
	})

	t.Run("invalid filter pattern", func(t *testing.T) {
		discovery, err := NewDiscovery(WithNameFilter("[unclosed"))
		assert.Error(t, err)
		assert.Nil(t, discovery)
	})
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "alpha-skill"), "alpha-skill", "The first skill")
	writeSkill(t, filepath.Join(tmpDir, "beta-skill"), "beta-skill", "The second skill")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "stray-file.md"), []byte("not a skill"), 0o644))

	discovery, err := NewDiscovery(WithDirs(tmpDir))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, skills, 2)

	alpha, exists := skills["alpha-skill"]
	require.True(t, exists)
	assert.Equal(t, "The first skill", alpha.Description)
	assert.Equal(t, filepath.Join(tmpDir, "alpha-skill"), alpha.Dir)
}

func TestDiscoverSkipsMalformedSkills(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "good-skill"), "good-skill", "Parses fine")

	badDir := filepath.Join(tmpDir, "bad-skill")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, FileName), []byte("no frontmatter here"), 0o644))

	emptyDir := filepath.Join(tmpDir, "no-skill-md")
	require.NoError(t, os.MkdirAll(emptyDir, 0o755))

	discovery, err := NewDiscovery(WithDirs(tmpDir))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, skills, 1)
	assert.Contains(t, skills, "good-skill")
}

func TestDiscoverRecursive(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "top-skill"), "top-skill", "At the top")
	writeSkill(t, filepath.Join(tmpDir, "nested", "deep", "deep-skill"), "deep-skill", "Buried two levels down")
	writeSkill(t, filepath.Join(tmpDir, "node_modules", "dep-skill"), "dep-skill", "Should be ignored")

	t.Run("flat misses nested skills", func(t *testing.T) {
		discovery, err := NewDiscovery(WithDirs(tmpDir))
		require.NoError(t, err)

		skills, err := discovery.Discover()
		require.NoError(t, err)
		assert.Contains(t, skills, "top-skill")
		assert.NotContains(t, skills, "deep-skill")
	})

	t.Run("recursive finds nested skills", func(t *testing.T) {
		discovery, err := NewDiscovery(WithDirs(tmpDir), WithRecursive(true))
		require.NoError(t, err)

		skills, err := discovery.Discover()
		require.NoError(t, err)
		assert.Contains(t, skills, "top-skill")
		assert.Contains(t, skills, "deep-skill")
		assert.NotContains(t, skills, "dep-skill")
	})
}

func TestDiscoverNameFilter(t *testing.T) {
	tmpDir := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir, "data-cleaning"), "data-cleaning", "Cleans data")
	writeSkill(t, filepath.Join(tmpDir, "data-viz"), "data-viz", "Plots data")
	writeSkill(t, filepath.Join(tmpDir, "git-helper"), "git-helper", "Unrelated")

	discovery, err := NewDiscovery(WithDirs(tmpDir), WithNameFilter("data-*"))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, skills, 2)
	assert.Contains(t, skills, "data-cleaning")
	assert.Contains(t, skills, "data-viz")
	assert.NotContains(t, skills, "git-helper")
}

func TestDiscoverPrecedence(t *testing.T) {
	tmpDir1 := t.TempDir()
	tmpDir2 := t.TempDir()
	writeSkill(t, filepath.Join(tmpDir1, "shared-skill"), "shared-skill", "From the first directory")
	writeSkill(t, filepath.Join(tmpDir2, "shared-skill"), "shared-skill", "From the second directory")

	discovery, err := NewDiscovery(WithDirs(tmpDir1, tmpDir2))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, skills, 1)
	assert.Equal(t, "From the first directory", skills["shared-skill"].Description)
}

func TestDiscoverFollowsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	searchDir := filepath.Join(tmpDir, "skills")
	require.NoError(t, os.MkdirAll(searchDir, 0o755))

	actualDir := filepath.Join(tmpDir, "elsewhere", "linked-skill")
	writeSkill(t, actualDir, "linked-skill", "Reached through a symlink")
	require.NoError(t, os.Symlink(actualDir, filepath.Join(searchDir, "linked-skill")))

	// Symlinks to files and broken symlinks should both be skipped.
	targetFile := filepath.Join(tmpDir, "somefile.txt")
	require.NoError(t, os.WriteFile(targetFile, []byte("just a file"), 0o644))
	require.NoError(t, os.Symlink(targetFile, filepath.Join(searchDir, "file-symlink")))
	require.NoError(t, os.Symlink("/non/existent/path", filepath.Join(searchDir, "broken-symlink")))

	discovery, err := NewDiscovery(WithDirs(searchDir))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Len(t, skills, 1)
	assert.Contains(t, skills, "linked-skill")
}

func TestDiscoverNonExistentDirectory(t *testing.T) {
	discovery, err := NewDiscovery(WithDirs("/non/existent/path"))
	require.NoError(t, err)

	skills, err := discovery.Discover()
	require.NoError(t, err)
	assert.Empty(t, skills)
}
