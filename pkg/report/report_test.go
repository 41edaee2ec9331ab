package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kataras/font-extractor/pkg/report"

	"github.com/m-mizutani/gt"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func sampleReport() *report.Report {
	return &report.Report{
		Input:  "archives",
		Output: "out",
		Totals: report.Totals{NewFamilies: 1, NewFiles: 2, ExistingFamilies: 1, ExistingFiles: 3},
		Families: []report.Family{
			{
				Name:     "Roboto",
				Archive:  "archives/Roboto.zip",
				Dir:      "out/Roboto",
				Format:   "otf",
				Status:   "2 new files",
				Fonts:    report.Counts{Copied: 2},
				Licenses: report.Counts{Copied: 1},
			},
			{
				Name:    "Broken",
				Archive: "archives/Broken.zip",
				Dir:     "out/Broken",
				Status:  "skipped",
				Error:   "zip: not a valid zip file",
			},
		},
	}
}

func TestSummaryLines(t *testing.T) {
	tests := []struct {
		name   string
		report report.Report
		want   []string
	}{
		{
			name:   "nothing found",
			report: report.Report{},
			want: []string{
				"Font extraction complete.",
				"Extracted 0 font files from 0 font families.",
			},
		},
		{
			name:   "new and existing",
			report: report.Report{Totals: report.Totals{NewFamilies: 2, NewFiles: 5, ExistingFamilies: 1, ExistingFiles: 3}},
			want: []string{
				"Font extraction complete.",
				"Extracted 5 font files from 2 font families.",
				"Found 3 font files from 1 font families already installed.",
			},
		},
		{
			name:   "overwrite mode",
			report: report.Report{Overwrite: true, Totals: report.Totals{NewFamilies: 1, OverwrittenFamilies: 1, OverwrittenFiles: 4}},
			want: []string{
				"Font extraction complete.",
				"Extracted 0 font files from 1 font families.",
				"Overwritten 4 font files from 1 font families.",
			},
		},
		{
			name:   "failures",
			report: report.Report{Totals: report.Totals{FailedFiles: 2, ArchiveErrors: 1, EmptyArchives: 3}},
			want: []string{
				"Font extraction complete.",
				"Extracted 0 font files from 0 font families.",
				"3 archives contained no font files.",
				"2 files could not be copied.",
				"1 archives could not be read.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.report.SummaryLines(), tt.want)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    report.Format
		wantErr bool
	}{
		{path: "report.yaml", want: report.YAML},
		{path: "report.YML", want: report.YAML},
		{path: "dir/report.toml", want: report.TOML},
		{path: "report.json", want: report.JSON},
		{path: "report.md", want: report.Markdown},
		{path: "report.csv", wantErr: true},
		{path: "report", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := report.FormatFromPath(tt.path)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tt.want)
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "reports", "run.yaml")
		gt.NoError(t, report.WriteFile(path, rep))

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		var got report.Report
		gt.NoError(t, yaml.Unmarshal(data, &got))
		gt.Equal(t, got.Totals, rep.Totals)
		gt.Equal(t, len(got.Families), 2)
		gt.Equal(t, got.Families[1].Error, "zip: not a valid zip file")
	})

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "run.toml")
		gt.NoError(t, report.WriteFile(path, rep))

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		var got report.Report
		gt.NoError(t, toml.Unmarshal(data, &got))
		gt.Equal(t, got.Families[0].Name, "Roboto")
		gt.Equal(t, got.Families[0].Fonts.Copied, 2)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "run.json")
		gt.NoError(t, report.WriteFile(path, rep))

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		var got map[string]any
		gt.NoError(t, json.Unmarshal(data, &got))
		gt.Equal(t, got["output"], any("out"))
	})

	t.Run("markdown", func(t *testing.T) {
		path := filepath.Join(dir, "run.md")
		gt.NoError(t, report.WriteFile(path, rep))

		data, err := os.ReadFile(path)
		gt.NoError(t, err)
		gt.String(t, string(data)).Contains("# Font Extraction Report")
		gt.String(t, string(data)).Contains("### Roboto")
		gt.String(t, string(data)).Contains("- Format: OTF")
		gt.String(t, string(data)).Contains("| Fonts | 2 | 0 | 0 | 0 |")
		gt.String(t, string(data)).Contains("- Error: `zip: not a valid zip file`")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "run.csv")
		gt.Error(t, report.WriteFile(path, rep))
		_, err := os.Stat(path)
		gt.True(t, os.IsNotExist(err))
	})
}
