package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/rulemend/internal/core/frontmatter"
)

const wellFormed = `---
description: build rules
globs: "**/*.go"
alwaysApply: true
---

# Build
`

const misplaced = `# Build rules

Some explanation.

---
description: build rules
globs: "**/*.go"
---
`

const loose = `description: x
globs: y
alwaysApply: true

Hello
`

const noMetadata = "# Just a heading\n\nProse only.\n"

func newTestRunner(t *testing.T, dir string) *Runner {
	t.Helper()
	r, err := NewRunner(Options{Dir: dir, Pattern: Pattern, BackupSuffix: BackupSuffix}, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func writeRule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_Fix(t *testing.T) {
	dir := t.TempDir()
	wellPath := writeRule(t, dir, "well.mdc", wellFormed)
	misplacedPath := writeRule(t, dir, "misplaced.mdc", misplaced)
	loosePath := writeRule(t, dir, "loose.mdc", loose)
	nonePath := writeRule(t, dir, "plain.mdc", noMetadata)

	r := newTestRunner(t, dir)
	report, err := r.Fix()
	require.NoError(t, err)

	assert.Equal(t, 4, report.Scanned)
	assert.Equal(t, 2, report.Clean)
	assert.Equal(t, 2, report.Fixed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)

	// Fixed files reclassify as well-formed.
	for _, path := range []string{misplacedPath, loosePath} {
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, frontmatter.KindWellFormed, frontmatter.Classify(string(raw)).Kind)
	}

	// Backups hold the original content of rewritten files only.
	backup, err := os.ReadFile(misplacedPath + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, misplaced, string(backup))

	assert.NoFileExists(t, nonePath+BackupSuffix)
	assert.NoFileExists(t, wellPath+BackupSuffix)

	// Untouched files keep their content byte for byte.
	raw, err := os.ReadFile(nonePath)
	require.NoError(t, err)
	assert.Equal(t, noMetadata, string(raw))
}

func TestRunner_FixIgnoresBackupsFromEarlierRuns(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "misplaced.mdc", misplaced)

	r := newTestRunner(t, dir)
	_, err := r.Fix()
	require.NoError(t, err)

	// A second run sees the fixed file plus its backup sibling, but only
	// scans the rule file.
	report, err := r.Fix()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Clean)
	assert.Equal(t, 0, report.Fixed)
}

func TestRunner_Check(t *testing.T) {
	dir := t.TempDir()
	writeRule(t, dir, "well.mdc", wellFormed)
	misplacedPath := writeRule(t, dir, "misplaced.mdc", misplaced)
	writeRule(t, dir, "loose.mdc", loose)

	r := newTestRunner(t, dir)
	report, err := r.Check()
	require.NoError(t, err)

	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.NeedsFix())
	assert.Equal(t, 0, report.Fixed)

	// Check never modifies or backs anything up.
	raw, err := os.ReadFile(misplacedPath)
	require.NoError(t, err)
	assert.Equal(t, misplaced, string(raw))
	assert.NoFileExists(t, misplacedPath+BackupSuffix)

	// Well-formed results carry the parsed metadata.
	for _, f := range report.Files {
		if f.Status == StatusOK {
			require.NotNil(t, f.Meta)
			assert.Equal(t, "build rules", f.Meta.Description)
		}
	}
}

func TestRunner_WriteFailureRestoresBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeRule(t, dir, "misplaced.mdc", misplaced)

	r := newTestRunner(t, dir)
	r.writeFile = func(string, []byte, os.FileMode) error {
		return fmt.Errorf("disk full")
	}

	report, err := r.Fix()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 1)
	assert.Equal(t, StatusFailed, report.Files[0].Status)

	// Original content survives via the restore.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, misplaced, string(raw))
}

func TestRunner_UnfixableLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeRule(t, dir, "odd.mdc", noMetadata)

	r := newTestRunner(t, dir)

	// Simulate a loose classification whose extraction walk finds nothing.
	err := r.fix(path, noMetadata, frontmatter.Classification{Kind: frontmatter.KindLoose})
	assert.ErrorIs(t, err, frontmatter.ErrNoMetadata)

	raw, rerr := os.ReadFile(path)
	require.NoError(t, rerr)
	assert.Equal(t, noMetadata, string(raw))
}

func TestRunner_MissingDirectory(t *testing.T) {
	r := newTestRunner(t, filepath.Join(t.TempDir(), "nope"))

	_, err := r.Fix()
	assert.ErrorIs(t, err, ErrDirMissing)
}

func TestRunner_EmptyDirectory(t *testing.T) {
	r := newTestRunner(t, t.TempDir())

	report, err := r.Fix()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
	assert.Empty(t, report.Files)
}

func TestRunner_UnreadableFileSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	path := writeRule(t, dir, "locked.mdc", misplaced)
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	r := newTestRunner(t, dir)
	report, err := r.Fix()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Fixed)
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	err := Options{Pattern: Pattern, BackupSuffix: BackupSuffix}.Validate()
	assert.Error(t, err)

	err = Options{Dir: Dir, Pattern: "[", BackupSuffix: BackupSuffix}.Validate()
	assert.Error(t, err)
}
