package report

import (
	"fmt"
	"strings"
)

// ToMarkdown renders the report as a markdown document with a totals table
// and one section per font family.
func ToMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Font Extraction Report\n\n")
	sb.WriteString(fmt.Sprintf("- Input: `%s`\n", r.Input))
	sb.WriteString(fmt.Sprintf("- Output: `%s`\n", r.Output))
	sb.WriteString(fmt.Sprintf("- Overwrite: %t\n\n", r.Overwrite))

	// Totals
	t := r.Totals
	sb.WriteString("## Totals\n\n")
	sb.WriteString("| Counter | Value |\n")
	sb.WriteString("|---|---|\n")
	rows := []struct {
		name  string
		value int
	}{
		{"New families", t.NewFamilies},
		{"New files", t.NewFiles},
		{"Existing families", t.ExistingFamilies},
		{"Existing files", t.ExistingFiles},
		{"Overwritten families", t.OverwrittenFamilies},
		{"Overwritten files", t.OverwrittenFiles},
		{"Failed files", t.FailedFiles},
		{"Archive errors", t.ArchiveErrors},
		{"Archives without fonts", t.EmptyArchives},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", row.name, row.value))
	}
	sb.WriteString("\n")

	if len(r.Families) == 0 {
		return sb.String()
	}

	// Families
	sb.WriteString("## Families\n\n")
	for _, f := range r.Families {
		sb.WriteString(fmt.Sprintf("### %s\n\n", f.Name))
		sb.WriteString(fmt.Sprintf("- Archive: `%s`\n", f.Archive))
		sb.WriteString(fmt.Sprintf("- Folder: `%s`\n", f.Dir))
		if f.Format != "" {
			format := strings.ToUpper(f.Format)
			if f.Fallback {
				format += " (fallback)"
			}
			sb.WriteString(fmt.Sprintf("- Format: %s\n", format))
		}
		sb.WriteString(fmt.Sprintf("- Status: %s\n", f.Status))
		if f.Error != "" {
			sb.WriteString(fmt.Sprintf("- Error: `%s`\n", f.Error))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString("\n")

		sb.WriteString("| Files | Copied | Exists | Overwritten | Failed |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, c := range []struct {
			name string
			c    Counts
		}{
			{"Fonts", f.Fonts},
			{"Web fonts", f.Web},
			{"Licenses", f.Licenses},
		} {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d |\n", c.name, c.c.Copied, c.c.Exists, c.c.Overwritten, c.c.Failed))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
