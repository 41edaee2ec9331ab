package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TempPattern is the os.MkdirTemp pattern used for extraction roots.
const TempPattern = "font-extractor-*"

// Error reports an archive that could not be opened, read or safely extracted.
// It only affects the archive it names.
type Error struct {
	Archive string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extraction is the scratch copy of an unpacked archive.
// Callers must Close it; Close removes Dir and everything under it.
type Extraction struct {
	Archive string
	Dir     string
	Entries []string // extracted file paths relative to Dir, slash separated
}

// Close deletes the extraction root. It is safe to call more than once.
func (e *Extraction) Close() error {
	if e == nil || e.Dir == "" {
		return nil
	}
	err := os.RemoveAll(e.Dir)
	e.Dir = ""
	return err
}

// Unpack extracts every entry of the zip at zipPath into a fresh temporary
// directory. On failure nothing is left behind on disk.
func Unpack(zipPath string) (*Extraction, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &Error{Archive: zipPath, Err: goerr.Wrap(err, "failed to open zip file")}
	}
	defer zr.Close()

	tempDir, err := os.MkdirTemp("", TempPattern)
	if err != nil {
		return nil, &Error{Archive: zipPath, Err: goerr.Wrap(err, "failed to create temporary directory")}
	}

	ex := &Extraction{Archive: zipPath, Dir: tempDir}
	for _, file := range zr.File {
		if err := extractFile(file, tempDir); err != nil {
			ex.Close()
			return nil, &Error{Archive: zipPath, Err: err}
		}
		if !file.FileInfo().IsDir() {
			ex.Entries = append(ex.Entries, file.Name)
		}
	}

	return ex, nil
}

// extractFile writes one zip entry below destDir.
func extractFile(file *zip.File, destDir string) error {
	// Prevent path traversal.
	destPath := filepath.Join(destDir, filepath.FromSlash(file.Name))
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid file path in zip", goerr.V("entry", file.Name))
	}

	if file.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0755); err != nil {
			return goerr.Wrap(err, "failed to create directory", goerr.V("path", destPath))
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directory", goerr.V("path", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip", goerr.V("entry", file.Name))
	}
	defer rc.Close()

	// Some archivers store no permission bits at all.
	mode := file.Mode().Perm() | 0600
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	return nil
}
