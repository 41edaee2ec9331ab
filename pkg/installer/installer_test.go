package installer_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kataras/font-extractor/pkg/installer"

	"github.com/m-mizutani/gt"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return string(data)
}

func TestCopyFile(t *testing.T) {
	tests := []struct {
		name        string
		existing    bool
		policy      installer.Policy
		wantOutcome installer.Outcome
		wantContent string
	}{
		{
			name:        "new file",
			policy:      installer.Policy{CheckExisting: true},
			wantOutcome: installer.Copied,
			wantContent: "new",
		},
		{
			name:        "existing file is kept",
			existing:    true,
			policy:      installer.Policy{CheckExisting: true},
			wantOutcome: installer.Exists,
			wantContent: "old",
		},
		{
			name:        "existing file is overwritten",
			existing:    true,
			policy:      installer.Policy{CheckExisting: true, Overwrite: true},
			wantOutcome: installer.Overwritten,
			wantContent: "new",
		},
		{
			name:        "no existence check always copies",
			existing:    true,
			policy:      installer.Policy{CheckExisting: false},
			wantOutcome: installer.Copied,
			wantContent: "new",
		},
		{
			name:        "no existence check with overwrite reports overwritten",
			existing:    true,
			policy:      installer.Policy{CheckExisting: false, Overwrite: true},
			wantOutcome: installer.Overwritten,
			wantContent: "new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src", "Font-Regular.otf")
			destDir := filepath.Join(dir, "out", "Font")
			writeFile(t, src, "new")
			if tt.existing {
				writeFile(t, filepath.Join(destDir, "Font-Regular.otf"), "old")
			}

			got, err := installer.CopyFile(src, destDir, tt.policy)
			gt.NoError(t, err)
			gt.Equal(t, got, tt.wantOutcome)
			gt.Equal(t, readFile(t, filepath.Join(destDir, "Font-Regular.otf")), tt.wantContent)
		})
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()

	got, err := installer.CopyFile(filepath.Join(dir, "missing.ttf"), filepath.Join(dir, "out"), installer.Policy{CheckExisting: true})
	gt.Error(t, err)
	gt.Equal(t, got, installer.Failed)

	var copyErr *installer.CopyError
	gt.True(t, errors.As(err, &copyErr))
	gt.Equal(t, copyErr.Dst, filepath.Join(dir, "out", "missing.ttf"))
	gt.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "src", "A.ttf")
	b := filepath.Join(dir, "src", "B.ttf")
	missing := filepath.Join(dir, "src", "C.ttf")
	writeFile(t, a, "a")
	writeFile(t, b, "b")
	destDir := filepath.Join(dir, "out")
	writeFile(t, filepath.Join(destDir, "B.ttf"), "old b")

	res := installer.Install([]string{a, missing, b}, destDir, installer.Policy{CheckExisting: true})
	gt.Equal(t, res.Tally, installer.Tally{Copied: 1, Exists: 1, Failed: 1})
	gt.Equal(t, len(res.Errors), 1)
	gt.Equal(t, res.Existing(), 1)
	gt.Equal(t, res.Total(), 3)
	gt.Equal(t, readFile(t, filepath.Join(destDir, "A.ttf")), "a")
	gt.Equal(t, readFile(t, filepath.Join(destDir, "B.ttf")), "old b")
}

func TestInstallEmptyDoesNotCreateFolder(t *testing.T) {
	destDir := filepath.Join(t.TempDir(), "web")
	res := installer.Install(nil, destDir, installer.Policy{CheckExisting: true})
	gt.Equal(t, res.Total(), 0)

	_, err := os.Stat(destDir)
	gt.True(t, os.IsNotExist(err))
}

func TestTally(t *testing.T) {
	var tally installer.Tally
	for _, o := range []installer.Outcome{installer.Copied, installer.Copied, installer.Exists, installer.Overwritten, installer.Failed} {
		tally.Add(o)
	}
	gt.Equal(t, tally, installer.Tally{Copied: 2, Exists: 1, Overwritten: 1, Failed: 1})

	tally.Merge(installer.Tally{Copied: 1, Failed: 2})
	gt.Equal(t, tally.Copied, 3)
	gt.Equal(t, tally.Failed, 3)
	gt.Equal(t, tally.Existing(), 2)
}

func TestOutcomeString(t *testing.T) {
	gt.Equal(t, installer.Copied.String(), "copied")
	gt.Equal(t, installer.Exists.String(), "exists")
	gt.Equal(t, installer.Overwritten.String(), "overwritten")
	gt.Equal(t, installer.Failed.String(), "failed")
}
