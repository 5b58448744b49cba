package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/hay-kot/rulemend/internal/core/frontmatter"
)

// Status is the per-file outcome of a batch pass.
type Status string

const (
	// StatusOK is a well-formed file, left untouched.
	StatusOK Status = "ok"
	// StatusNone is a file with no metadata at all, left untouched.
	StatusNone Status = "none"
	// StatusNeedsFix is a fixable file seen during a check-only pass.
	StatusNeedsFix Status = "needs-fix"
	// StatusFixed is a file rewritten with its block relocated to the top.
	StatusFixed Status = "fixed"
	// StatusSkipped is a file that could not be read.
	StatusSkipped Status = "skipped"
	// StatusFailed is a file whose fix could not be applied.
	StatusFailed Status = "failed"
)

// FileResult is the outcome for a single file.
type FileResult struct {
	Name   string            `json:"name"`
	Status Status            `json:"status"`
	Kind   frontmatter.Kind  `json:"kind,omitempty"`
	Meta   *frontmatter.Meta `json:"meta,omitempty"`
	Detail string            `json:"detail,omitempty"`
}

// Report accumulates the outcome of one batch pass. Counters are explicit
// values threaded through the run, not shared state.
type Report struct {
	Scanned int          `json:"scanned"`
	Clean   int          `json:"clean"`
	Fixed   int          `json:"fixed"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	Files   []FileResult `json:"files"`
}

// NeedsFix counts check-pass results that a fix pass would rewrite.
func (r Report) NeedsFix() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusNeedsFix {
			n++
		}
	}
	return n
}

// Options configure a Runner. Zero value is not usable; use DefaultOptions.
type Options struct {
	Dir          string
	Pattern      string
	BackupSuffix string
}

// DefaultOptions returns the fixed scan targets the CLI uses.
func DefaultOptions() Options {
	return Options{Dir: Dir, Pattern: Pattern, BackupSuffix: BackupSuffix}
}

// Validate checks option fields before a run.
func (o Options) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("dir", o.Dir, notEmpty),
		criterio.Run("pattern", o.Pattern, validPattern),
		criterio.Run("backup_suffix", o.BackupSuffix, notEmpty),
	)
}

func notEmpty(v string) error {
	if v == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func validPattern(v string) error {
	if !doublestar.ValidatePattern(v) {
		return fmt.Errorf("invalid glob pattern %q", v)
	}
	return nil
}

// Runner executes batch passes over the rules directory. Files are processed
// strictly one at a time; no state crosses file boundaries.
type Runner struct {
	opts   Options
	logger zerolog.Logger

	// writeFile is swappable for tests that exercise the restore path.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewRunner validates opts and returns a Runner.
func NewRunner(opts Options, logger zerolog.Logger) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runner options: %w", err)
	}

	return &Runner{
		opts:      opts,
		logger:    logger,
		writeFile: os.WriteFile,
	}, nil
}

// Check classifies every matching file without modifying anything.
func (r *Runner) Check() (Report, error) {
	return r.run(false)
}

// Fix classifies every matching file and rewrites the fixable ones. Each
// rewrite is preceded by a backup copy; a failed rewrite restores the backup
// and the batch continues with the next file.
func (r *Runner) Fix() (Report, error) {
	return r.run(true)
}

func (r *Runner) run(apply bool) (Report, error) {
	var report Report

	files, err := Discover(r.opts.Dir, r.opts.Pattern)
	if err != nil {
		return report, err
	}

	for _, path := range files {
		report.Scanned++
		result := r.process(path, apply)

		switch result.Status {
		case StatusOK, StatusNone:
			report.Clean++
		case StatusFixed:
			report.Fixed++
		case StatusFailed:
			report.Failed++
		case StatusSkipped:
			report.Skipped++
		}

		report.Files = append(report.Files, result)
	}

	return report, nil
}

// process handles one file end to end. Every error is converted into the
// file's result; nothing propagates to abort the batch.
func (r *Runner) process(path string, apply bool) FileResult {
	name := filepath.Base(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error().Err(err).Str("file", name).Msg("read failed")
		return FileResult{Name: name, Status: StatusSkipped, Detail: fmt.Sprintf("read: %v", err)}
	}

	content := string(raw)
	c := frontmatter.Classify(content)

	switch c.Kind {
	case frontmatter.KindWellFormed:
		meta := frontmatter.ParseMeta(content)
		return FileResult{Name: name, Status: StatusOK, Kind: c.Kind, Meta: &meta}
	case frontmatter.KindNone:
		return FileResult{Name: name, Status: StatusNone, Kind: c.Kind}
	}

	if !apply {
		detail := fmt.Sprintf("block at offset %d", c.Offset)
		if c.Kind == frontmatter.KindLoose {
			detail = fmt.Sprintf("unwrapped keys at line %d", c.Line+1)
		}
		return FileResult{Name: name, Status: StatusNeedsFix, Kind: c.Kind, Detail: detail}
	}

	if err := r.fix(path, content, c); err != nil {
		r.logger.Error().Err(err).Str("file", name).Msg("fix failed")
		return FileResult{Name: name, Status: StatusFailed, Kind: c.Kind, Detail: err.Error()}
	}

	r.logger.Info().Str("file", name).Str("kind", string(c.Kind)).Msg("fixed")
	return FileResult{Name: name, Status: StatusFixed, Kind: c.Kind}
}

// fix rewrites one fixable file. The backup is taken before reconstruction;
// if the write step fails the backup is copied back over the original so the
// last-known-good content survives.
func (r *Runner) fix(path, content string, c frontmatter.Classification) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	backup := path + r.opts.BackupSuffix
	if err := copyFile(path, backup, mode); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	fixed, err := frontmatter.Reconstruct(content, c)
	if err != nil {
		// Original untouched; the backup already taken is harmless.
		return err
	}

	if err := r.writeFile(path, []byte(fixed), mode); err != nil {
		if rerr := copyFile(backup, path, mode); rerr != nil {
			return fmt.Errorf("write failed (%v) and restore failed: %w", err, rerr)
		}
		return fmt.Errorf("write fixed content (restored from backup): %w", err)
	}

	return nil
}
