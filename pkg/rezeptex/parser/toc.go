package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// LookupCategories reads the table-of-contents sheet and maps worksheet
// names to categories. A row whose only non-empty cell is not itself a
// worksheet name starts a new category; every cell matching a worksheet
// name is assigned the current category. Returns an empty map when the
// sheet is absent or unreadable — categories are a nicety, never a
// failure.
func LookupCategories(f *excelize.File, tocSheet string, sheetNames []string) map[string]string {
	result := make(map[string]string)

	rows, err := f.GetRows(tocSheet)
	if err != nil {
		return result
	}

	known := make(map[string]bool, len(sheetNames))
	for _, name := range sheetNames {
		known[name] = true
	}

	category := ""
	for _, row := range rows {
		var filled []string
		for _, cell := range row {
			if s := strings.TrimSpace(cell); s != "" {
				filled = append(filled, s)
			}
		}
		if len(filled) == 0 {
			continue
		}

		if len(filled) == 1 && !known[filled[0]] {
			category = filled[0]
			continue
		}
		for _, cell := range filled {
			if known[cell] && category != "" {
				result[cell] = category
			}
		}
	}

	return result
}
