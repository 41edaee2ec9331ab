package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Report is the serializable record of a run.
type Report struct {
	Input     string   `json:"input" yaml:"input" toml:"input"`
	Output    string   `json:"output" yaml:"output" toml:"output"`
	Overwrite bool     `json:"overwrite" yaml:"overwrite" toml:"overwrite"`
	Totals    Totals   `json:"totals" yaml:"totals" toml:"totals"`
	Families  []Family `json:"families" yaml:"families" toml:"families"`
}

// Totals are the run-wide counters.
type Totals struct {
	NewFamilies         int `json:"new_families" yaml:"new_families" toml:"new_families"`
	NewFiles            int `json:"new_files" yaml:"new_files" toml:"new_files"`
	ExistingFamilies    int `json:"existing_families" yaml:"existing_families" toml:"existing_families"`
	ExistingFiles       int `json:"existing_files" yaml:"existing_files" toml:"existing_files"`
	OverwrittenFamilies int `json:"overwritten_families" yaml:"overwritten_families" toml:"overwritten_families"`
	OverwrittenFiles    int `json:"overwritten_files" yaml:"overwritten_files" toml:"overwritten_files"`
	FailedFiles         int `json:"failed_files" yaml:"failed_files" toml:"failed_files"`
	ArchiveErrors       int `json:"archive_errors" yaml:"archive_errors" toml:"archive_errors"`
	EmptyArchives       int `json:"empty_archives" yaml:"empty_archives" toml:"empty_archives"`
}

// Family is the record of one archive.
type Family struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Archive  string `json:"archive" yaml:"archive" toml:"archive"`
	Dir      string `json:"dir" yaml:"dir" toml:"dir"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Fallback bool   `json:"fallback,omitempty" yaml:"fallback,omitempty" toml:"fallback,omitempty"`
	Status   string `json:"status" yaml:"status" toml:"status"`
	Fonts    Counts `json:"fonts" yaml:"fonts" toml:"fonts"`
	Web      Counts `json:"web" yaml:"web" toml:"web"`
	Licenses Counts `json:"licenses" yaml:"licenses" toml:"licenses"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Counts mirrors the per-outcome copy counters.
type Counts struct {
	Copied      int `json:"copied" yaml:"copied" toml:"copied"`
	Exists      int `json:"exists" yaml:"exists" toml:"exists"`
	Overwritten int `json:"overwritten" yaml:"overwritten" toml:"overwritten"`
	Failed      int `json:"failed" yaml:"failed" toml:"failed"`
}

// SummaryLines returns the closing summary printed after a run.
func (r *Report) SummaryLines() []string {
	t := r.Totals
	lines := []string{
		"Font extraction complete.",
		fmt.Sprintf("Extracted %d font files from %d font families.", t.NewFiles, t.NewFamilies),
	}

	if r.Overwrite {
		if t.OverwrittenFiles > 0 {
			lines = append(lines, fmt.Sprintf("Overwritten %d font files from %d font families.", t.OverwrittenFiles, t.OverwrittenFamilies))
		}
	} else if t.ExistingFiles > 0 {
		lines = append(lines, fmt.Sprintf("Found %d font files from %d font families already installed.", t.ExistingFiles, t.ExistingFamilies))
	}

	if t.EmptyArchives > 0 {
		lines = append(lines, fmt.Sprintf("%d archives contained no font files.", t.EmptyArchives))
	}
	if t.FailedFiles > 0 {
		lines = append(lines, fmt.Sprintf("%d files could not be copied.", t.FailedFiles))
	}
	if t.ArchiveErrors > 0 {
		lines = append(lines, fmt.Sprintf("%d archives could not be read.", t.ArchiveErrors))
	}
	return lines
}

// Format is a report file encoding.
type Format string

const (
	YAML     Format = "yaml"
	TOML     Format = "toml"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	case ".md", ".markdown":
		return Markdown, nil
	default:
		return "", goerr.New("unsupported report format (use .yaml, .yml, .toml, .json or .md)", goerr.V("path", path))
	}
}

// Encode serializes r in the given format.
func Encode(r *Report, format Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case YAML:
		data, err = yaml.Marshal(r)
	case TOML:
		data, err = toml.Marshal(r)
	case JSON:
		data, err = json.MarshalIndent(r, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case Markdown:
		data = []byte(ToMarkdown(r))
	default:
		return nil, goerr.New("unknown report format", goerr.V("format", format))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode report", goerr.V("format", format))
	}
	return data, nil
}

// WriteFile encodes r according to the extension of path and writes it.
func WriteFile(path string, r *Report) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(r, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create report folder", goerr.V("path", dir))
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
	}
	return nil
}
