package classifier

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Kind is the bucket a file is sorted into.
type Kind int

const (
	Ignored Kind = iota
	ProgramFont
	WebFont
	License
)

func (k Kind) String() string {
	switch k {
	case ProgramFont:
		return "program-font"
	case WebFont:
		return "web-font"
	case License:
		return "license"
	default:
		return "ignored"
	}
}

// Format is one of the two competing program font outline formats.
type Format string

const (
	TTF Format = "ttf"
	OTF Format = "otf"
)

// Other returns the competing format.
func (f Format) Other() Format {
	if f == TTF {
		return OTF
	}
	return TTF
}

// Class is the result of classifying one extension. Format is only set for
// ProgramFont.
type Class struct {
	Kind   Kind
	Format Format
}

type rule struct {
	ext     string
	class   Class
	webOnly bool // only applies when web fonts are included
}

// rules is checked in order and the first match wins. Extensions never
// repeat across kinds.
var rules = []rule{
	{ext: ".ttf", class: Class{Kind: ProgramFont, Format: TTF}},
	{ext: ".otf", class: Class{Kind: ProgramFont, Format: OTF}},
	{ext: ".woff", class: Class{Kind: WebFont}, webOnly: true},
	{ext: ".woff2", class: Class{Kind: WebFont}, webOnly: true},
	{ext: ".eot", class: Class{Kind: WebFont}, webOnly: true},
	{ext: ".svg", class: Class{Kind: WebFont}, webOnly: true},
	{ext: ".txt", class: Class{Kind: License}},
	{ext: ".pdf", class: Class{Kind: License}},
}

// Extensions returns the extensions recognised for kind, in match order.
func Extensions(kind Kind) []string {
	var exts []string
	for _, r := range rules {
		if r.class.Kind == kind {
			exts = append(exts, r.ext)
		}
	}
	return exts
}

// Classify maps a file extension (with its leading dot, any case) to its class.
func Classify(ext string, includeWeb bool) Class {
	ext = strings.ToLower(ext)
	for _, r := range rules {
		if r.ext != ext {
			continue
		}
		if r.webOnly && !includeWeb {
			continue
		}
		return r.class
	}
	return Class{Kind: Ignored}
}

// File is a classified file found in an extracted archive.
type File struct {
	Path  string
	Ext   string // lowercase, with leading dot
	Class Class
}

// Name returns the base name of the file.
func (f File) Name() string { return filepath.Base(f.Path) }

// Buckets holds the files of one archive sorted by kind.
type Buckets struct {
	Fonts    []File
	Web      []File
	Licenses []File
	Ignored  int
}

const (
	macOSMetadataDir   = "__MACOSX"
	resourceForkPrefix = "._"
)

// Walk classifies every regular file under root. __MACOSX directories are
// skipped entirely, and so are AppleDouble "._" files.
func Walk(root string, includeWeb bool) (*Buckets, error) {
	b := &Buckets{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && d.Name() == macOSMetadataDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), resourceForkPrefix) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		f := File{Path: path, Ext: ext, Class: Classify(ext, includeWeb)}
		switch f.Class.Kind {
		case ProgramFont:
			b.Fonts = append(b.Fonts, f)
		case WebFont:
			b.Web = append(b.Web, f)
		case License:
			b.Licenses = append(b.Licenses, f)
		default:
			b.Ignored++
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk extracted files", goerr.V("root", root))
	}
	return b, nil
}

// Paths returns the paths of files.
func Paths(files []File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	return paths
}
