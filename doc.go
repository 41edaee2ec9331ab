// Package fontextractor collects font files from a folder of ZIP archives,
// one archive per font family, into a structured output tree.
//
// The CLI lives in cmd/font-extractor; this root package exposes the same
// pipeline as a Go API so that callers can embed extraction in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named fontextractor:
//
//	import "github.com/kataras/font-extractor" // package fontextractor
//
// # Quick start
//
//	result, err := fontextractor.Run(fontextractor.Options{
//	    InputDir:  "archives",
//	    OutputDir: "out",
//	    Prefer:    classifier.OTF,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range result.Report().SummaryLines() {
//	    fmt.Println(line)
//	}
//
// # Output layout
//
// Every archive Name.zip becomes the folder out/Name. Program fonts and
// license documents (.txt, .pdf) are copied into it and web fonts go to
// out/Name/web. When an archive ships both .ttf and .otf files only the
// preferred format is kept; the other one is used when the preferred
// format is missing. __MACOSX folders and "._" files are never copied.
//
// Files that already exist in the output tree are left alone unless
// [Options.Overwrite] is set, so repeated runs only add what is new.
// License documents are always copied.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. A *log.Logger from
// github.com/charmbracelet/log can be used as is.
//
// # Errors
//
// Run only fails when the input folder is missing ([ErrInputNotFound]) or
// the output folder cannot be created. An unreadable archive is recorded on
// its [FamilyResult] and the run moves on; a failed copy is counted as
// failed and the remaining files are still copied.
package fontextractor
