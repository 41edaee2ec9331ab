package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Outcome is what happened to a single file copy.
type Outcome int

const (
	Copied Outcome = iota
	Exists
	Overwritten
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case Exists:
		return "exists"
	case Overwritten:
		return "overwritten"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Policy controls how an existing destination file is treated.
type Policy struct {
	// CheckExisting leaves an existing destination alone unless Overwrite is set.
	// When false the copy is always attempted.
	CheckExisting bool
	Overwrite     bool
}

// CopyError reports a failed copy of one file.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s -> %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// CopyFile copies src into destDir under its own base name, creating destDir
// if needed. A non-nil error is always a *CopyError and comes with Failed.
func CopyFile(src, destDir string, p Policy) (Outcome, error) {
	dst := filepath.Join(destDir, filepath.Base(src))

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return Failed, &CopyError{Src: src, Dst: dst, Err: goerr.Wrap(err, "failed to create destination directory")}
	}

	_, statErr := os.Stat(dst)
	existed := statErr == nil

	if p.CheckExisting && existed && !p.Overwrite {
		return Exists, nil
	}

	if err := copyContents(src, dst); err != nil {
		return Failed, &CopyError{Src: src, Dst: dst, Err: err}
	}

	if existed && p.Overwrite {
		return Overwritten, nil
	}
	return Copied, nil
}

func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat source file")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file")
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return goerr.Wrap(err, "failed to write destination file")
	}
	if err := out.Close(); err != nil {
		return goerr.Wrap(err, "failed to close destination file")
	}

	// OpenFile only applies the mode to newly created files.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return goerr.Wrap(err, "failed to set destination file mode")
	}
	return nil
}

// Tally counts outcomes.
type Tally struct {
	Copied      int
	Exists      int
	Overwritten int
	Failed      int
}

// Add records one outcome.
func (t *Tally) Add(o Outcome) {
	switch o {
	case Copied:
		t.Copied++
	case Exists:
		t.Exists++
	case Overwritten:
		t.Overwritten++
	case Failed:
		t.Failed++
	}
}

// Merge adds the counts of other to t.
func (t *Tally) Merge(other Tally) {
	t.Copied += other.Copied
	t.Exists += other.Exists
	t.Overwritten += other.Overwritten
	t.Failed += other.Failed
}

// Existing is the number of files that were already at the destination,
// whether or not they were overwritten.
func (t Tally) Existing() int { return t.Exists + t.Overwritten }

// Total is the number of attempted files.
func (t Tally) Total() int { return t.Copied + t.Exists + t.Overwritten + t.Failed }

// Result is the outcome of installing a set of files.
type Result struct {
	Tally
	Errors []error // non-fatal per-file failures, each a *CopyError
}

// Install copies every file in srcs into destDir. Failures are collected and
// do not stop the remaining copies.
func Install(srcs []string, destDir string, p Policy) *Result {
	result := &Result{}
	for _, src := range srcs {
		outcome, err := CopyFile(src, destDir, p)
		result.Add(outcome)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	return result
}
