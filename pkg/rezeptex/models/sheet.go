// Package models defines data structures for recipe workbook extraction.
package models

// WorksheetDescriptor identifies one worksheet entry in the workbook manifest.
type WorksheetDescriptor struct {
	// Name is the worksheet display name (unique within the package).
	Name string `json:"name"`
	// PackageIndex is the 1-based position among the manifest's worksheet
	// entries. The package-relative relationship file naming keys off this
	// position, not off the worksheet's internal sheetId attribute.
	PackageIndex int `json:"package_index"`
}
