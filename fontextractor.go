package fontextractor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kataras/font-extractor/pkg/archive"
	"github.com/kataras/font-extractor/pkg/classifier"
	"github.com/kataras/font-extractor/pkg/installer"
	"github.com/kataras/font-extractor/pkg/report"

	"github.com/m-mizutani/goerr/v2"
)

// Version is the current release of the tool.
const Version = "1.0.0"

const (
	// DefaultOutputDir is used when Options.OutputDir is empty.
	DefaultOutputDir = "out"
	// WebDir is the folder under a family folder that receives web fonts.
	WebDir = "web"
)

// ErrInputNotFound is returned by Run when the input folder is missing.
// Nothing is written in that case.
var ErrInputNotFound = errors.New("input folder does not exist")

// Options configures a run.
type Options struct {
	InputDir     string            // folder holding the .zip archives
	OutputDir    string            // default "out"
	Prefer       classifier.Format // default classifier.OTF
	SkipWebFonts bool
	Overwrite    bool
	Logger       Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

func (o *Options) logDebug(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(f, a...)
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// FamilyResult is the outcome of processing one archive.
type FamilyResult struct {
	Name     string // archive file name without the .zip suffix
	Archive  string
	Dir      string // destination folder
	Format   classifier.Format
	Fallback bool
	NoFonts  bool // nothing to install was found

	Fonts    installer.Tally
	Web      installer.Tally
	Licenses installer.Tally

	Errors []error // per-file copy failures
	Err    error   // archive error, the family was skipped
}

// Copied is the number of newly copied font and web font files.
func (f *FamilyResult) Copied() int { return f.Fonts.Copied + f.Web.Copied }

// Existing is the number of font and web font files that were already in
// place, overwritten or not.
func (f *FamilyResult) Existing() int { return f.Fonts.Existing() + f.Web.Existing() }

// Overwritten is the number of font and web font files replaced in place.
func (f *FamilyResult) Overwritten() int { return f.Fonts.Overwritten + f.Web.Overwritten }

// Failed is the number of failed copies of any kind.
func (f *FamilyResult) Failed() int { return f.Fonts.Failed + f.Web.Failed + f.Licenses.Failed }

// HasNewFiles reports whether the run put new content into the family folder.
func (f *FamilyResult) HasNewFiles(overwrite bool) bool {
	return f.Copied() > 0 || (overwrite && f.Existing() > 0)
}

// Status is the one line progress message for the family.
func (f *FamilyResult) Status(overwrite bool) string {
	switch {
	case f.Err != nil:
		return "skipped: " + f.Err.Error()
	case f.NoFonts:
		return "no font files found"
	}

	copied, existing := f.Copied(), f.Existing()
	if copied == 0 && existing == 0 {
		return fmt.Sprintf("no files installed, %d failed", f.Failed())
	}

	if copied == 0 {
		if overwrite {
			return fmt.Sprintf("All %d files overwritten", existing)
		}
		return fmt.Sprintf("All %d files already existed", existing)
	}

	var parts []string
	if copied > 0 {
		parts = append(parts, fmt.Sprintf("%d new files", copied))
	}
	if existing > 0 {
		if overwrite {
			parts = append(parts, fmt.Sprintf("%d files overwritten", existing))
		} else {
			parts = append(parts, fmt.Sprintf("%d already existed", existing))
		}
	}
	return strings.Join(parts, ", ")
}

// Result aggregates a whole run.
type Result struct {
	InputDir  string
	OutputDir string
	Overwrite bool
	Families  []FamilyResult

	NewFamilies         int // families that received new content
	NewFiles            int
	ExistingFamilies    int // families whose files were all already in place
	ExistingFiles       int // files of ExistingFamilies
	OverwrittenFamilies int
	OverwrittenFiles    int
	FailedFiles         int
	ArchiveErrors       int
	EmptyArchives       int // archives without font files
}

func (r *Result) add(f FamilyResult) {
	r.Families = append(r.Families, f)

	switch {
	case f.Err != nil:
		r.ArchiveErrors++
		return
	case f.NoFonts:
		r.EmptyArchives++
		return
	}

	r.FailedFiles += f.Failed()
	if n := f.Overwritten(); n > 0 {
		r.OverwrittenFamilies++
		r.OverwrittenFiles += n
	}

	if f.Copied() == 0 && f.Existing() == 0 {
		return
	}
	if f.HasNewFiles(r.Overwrite) {
		r.NewFamilies++
		r.NewFiles += f.Copied()
	} else {
		r.ExistingFamilies++
		r.ExistingFiles += f.Existing()
	}
}

// Report converts the result into its serializable form.
func (r *Result) Report() *report.Report {
	rep := &report.Report{
		Input:     r.InputDir,
		Output:    r.OutputDir,
		Overwrite: r.Overwrite,
		Totals: report.Totals{
			NewFamilies:         r.NewFamilies,
			NewFiles:            r.NewFiles,
			ExistingFamilies:    r.ExistingFamilies,
			ExistingFiles:       r.ExistingFiles,
			OverwrittenFamilies: r.OverwrittenFamilies,
			OverwrittenFiles:    r.OverwrittenFiles,
			FailedFiles:         r.FailedFiles,
			ArchiveErrors:       r.ArchiveErrors,
			EmptyArchives:       r.EmptyArchives,
		},
		Families: make([]report.Family, 0, len(r.Families)),
	}

	for i := range r.Families {
		f := &r.Families[i]
		fam := report.Family{
			Name:     f.Name,
			Archive:  f.Archive,
			Dir:      f.Dir,
			Format:   string(f.Format),
			Fallback: f.Fallback,
			Status:   f.Status(r.Overwrite),
			Fonts:    counts(f.Fonts),
			Web:      counts(f.Web),
			Licenses: counts(f.Licenses),
		}
		if f.Err != nil {
			fam.Error = f.Err.Error()
		}
		rep.Families = append(rep.Families, fam)
	}
	return rep
}

func counts(t installer.Tally) report.Counts {
	return report.Counts{
		Copied:      t.Copied,
		Exists:      t.Exists,
		Overwritten: t.Overwritten,
		Failed:      t.Failed,
	}
}

// Run extracts the fonts of every .zip archive in opts.InputDir into one
// folder per family under opts.OutputDir. Only a missing input folder or an
// unusable output folder stops the run; archive and copy failures are
// recorded on the returned Result.
func Run(opts Options) (*Result, error) {
	// Apply defaults.
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Prefer == "" {
		opts.Prefer = classifier.OTF
	}
	if opts.Prefer != classifier.OTF && opts.Prefer != classifier.TTF {
		return nil, goerr.New("invalid preferred format", goerr.V("format", opts.Prefer))
	}

	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return nil, goerr.Wrap(ErrInputNotFound, "cannot read archives", goerr.V("input", opts.InputDir))
	}

	entries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list input folder", goerr.V("input", opts.InputDir))
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output folder", goerr.V("output", opts.OutputDir))
	}

	result := &Result{InputDir: opts.InputDir, OutputDir: opts.OutputDir, Overwrite: opts.Overwrite}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".zip") {
			continue
		}

		family := FamilyName(name)
		zipPath := filepath.Join(opts.InputDir, name)

		opts.logInfo("Processing %s...", zipPath)
		fr := extractFamily(&opts, zipPath, family, filepath.Join(opts.OutputDir, family))
		opts.logInfo("  -> %s", fr.Status(opts.Overwrite))

		result.add(fr)
	}

	return result, nil
}

// FamilyName derives the family name from an archive file name.
func FamilyName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// extractFamily runs unpack, classify, select and install for one archive.
func extractFamily(opts *Options, zipPath, family, familyDir string) FamilyResult {
	fr := FamilyResult{Name: family, Archive: zipPath, Dir: familyDir}

	ex, err := archive.Unpack(zipPath)
	if err != nil {
		opts.logError("%v", err)
		fr.Err = err
		return fr
	}
	defer func() {
		if err := ex.Close(); err != nil {
			opts.logWarn("Could not remove temporary folder: %v", err)
		}
	}()
	opts.logDebug("Unpacked %d file(s) to %s", len(ex.Entries), ex.Dir)

	buckets, err := classifier.Walk(ex.Dir, !opts.SkipWebFonts)
	if err != nil {
		fr.Err = &archive.Error{Archive: zipPath, Err: err}
		opts.logError("%v", fr.Err)
		return fr
	}
	opts.logDebug("Found %d program font(s), %d web font(s), %d document(s), %d ignored",
		len(buckets.Fonts), len(buckets.Web), len(buckets.Licenses), buckets.Ignored)

	selection := classifier.Select(buckets.Fonts, opts.Prefer)
	if selection.Empty() && len(buckets.Web) == 0 {
		fr.NoFonts = true
		return fr
	}
	fr.Format = selection.Format
	fr.Fallback = selection.Fallback
	if selection.Fallback {
		opts.logDebug("No %s files, using %s", opts.Prefer, selection.Format)
	}

	fontPolicy := installer.Policy{CheckExisting: true, Overwrite: opts.Overwrite}
	docPolicy := installer.Policy{CheckExisting: false, Overwrite: opts.Overwrite}

	fonts := installer.Install(classifier.Paths(selection.Files), familyDir, fontPolicy)
	docs := installer.Install(classifier.Paths(buckets.Licenses), familyDir, docPolicy)
	web := installer.Install(classifier.Paths(buckets.Web), filepath.Join(familyDir, WebDir), fontPolicy)

	fr.Fonts, fr.Licenses, fr.Web = fonts.Tally, docs.Tally, web.Tally
	for _, res := range []*installer.Result{fonts, docs, web} {
		for _, copyErr := range res.Errors {
			opts.logWarn("%v", copyErr)
			fr.Errors = append(fr.Errors, copyErr)
		}
	}

	return fr
}
