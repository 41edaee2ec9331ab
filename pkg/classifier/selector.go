package classifier

// Selection is the set of program fonts chosen for a family.
type Selection struct {
	Files    []File
	Format   Format // empty when Files is empty
	Fallback bool   // the preferred format was absent
}

// Empty reports whether no program fonts were found.
func (s Selection) Empty() bool { return len(s.Files) == 0 }

// Select keeps the fonts of the preferred format, or the other format's
// fonts when the archive has none of the preferred one. The result never
// mixes formats.
func Select(fonts []File, prefer Format) Selection {
	byFormat := map[Format][]File{}
	for _, f := range fonts {
		if f.Class.Kind != ProgramFont {
			continue
		}
		byFormat[f.Class.Format] = append(byFormat[f.Class.Format], f)
	}

	if files := byFormat[prefer]; len(files) > 0 {
		return Selection{Files: files, Format: prefer}
	}
	if files := byFormat[prefer.Other()]; len(files) > 0 {
		return Selection{Files: files, Format: prefer.Other(), Fallback: true}
	}
	return Selection{}
}
