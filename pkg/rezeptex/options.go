// Package rezeptex extracts recipes and embedded images from xlsx recipe
// workbooks.
package rezeptex

import "log/slog"

// DefaultTOCSheet is the table-of-contents sheet name.
const DefaultTOCSheet = "Inhaltsverzeichnis"

// DefaultExcludedSheets lists sheets that are never recipes: the table of
// contents and the blank recipe template.
var DefaultExcludedSheets = []string{"Inhaltsverzeichnis", "Vorlage"}

// Options configures extraction behavior.
type Options struct {
	// ExcludeSheets names worksheets to leave out of the recipe list.
	// Excluded sheets may still appear in the raw image mapping; the
	// mapping is indifferent to semantic sheet roles.
	ExcludeSheets []string
	// TOCSheet is the sheet consulted for recipe categories.
	TOCSheet string
	// SkipImageData leaves image payloads unread (metadata only).
	SkipImageData bool
	// Logger receives per-sheet progress and skip warnings. Nil means
	// silent.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		ExcludeSheets: DefaultExcludedSheets,
		TOCSheet:      DefaultTOCSheet,
	}
}

func (o Options) excluded(sheetName string) bool {
	for _, name := range o.ExcludeSheets {
		if name == sheetName {
			return true
		}
	}
	return false
}
