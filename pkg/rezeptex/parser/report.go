package parser

import "rezeptex/pkg/rezeptex/models"

// SkipReason classifies why a worksheet contributed no images.
type SkipReason string

const (
	// SkipNoRelationships: the worksheet has no relationship file.
	SkipNoRelationships SkipReason = "no-relationships"
	// SkipNoDrawing: a relationship file exists but names no drawing.
	SkipNoDrawing SkipReason = "no-drawing"
	// SkipMalformedRelationships: the worksheet relationship file does not
	// parse as XML.
	SkipMalformedRelationships SkipReason = "malformed-relationships"
	// SkipDrawingMissing: the drawing part named by the relationship is
	// absent from the package.
	SkipDrawingMissing SkipReason = "drawing-missing"
	// SkipDrawingRelsMissing: the drawing has no relationship file of its
	// own, so no image targets can be found.
	SkipDrawingRelsMissing SkipReason = "drawing-rels-missing"
	// SkipMalformedDrawingRels: the drawing relationship file does not
	// parse as XML.
	SkipMalformedDrawingRels SkipReason = "malformed-drawing-rels"
	// SkipNoImages: the drawing resolved but carries no image
	// relationships.
	SkipNoImages SkipReason = "no-images"
)

// Structural reports whether the reason is a plain absence rather than a
// malformed fragment. Absences are informational; malformed fragments
// warrant a warning.
func (r SkipReason) Structural() bool {
	switch r {
	case SkipMalformedRelationships, SkipMalformedDrawingRels:
		return false
	}
	return true
}

// SheetOutcome records what the mapping build did with one manifest sheet.
type SheetOutcome struct {
	// Sheet is the worksheet the outcome belongs to.
	Sheet models.WorksheetDescriptor `json:"sheet"`
	// ImageCount is the number of mapped images (0 when skipped).
	ImageCount int `json:"image_count"`
	// Skipped is set when the sheet contributed nothing to the mapping.
	Skipped bool `json:"skipped"`
	// Reason classifies the skip; empty for mapped sheets.
	Reason SkipReason `json:"reason,omitempty"`
	// Detail carries the underlying error text for malformed fragments.
	Detail string `json:"detail,omitempty"`
}

// BuildReport is the per-unit outcome ledger of one mapping build.
type BuildReport struct {
	// Sheets holds one outcome per manifest worksheet, in manifest order.
	Sheets []SheetOutcome `json:"sheets"`
}

// Mapped returns the number of worksheets that contributed images.
func (r *BuildReport) Mapped() int {
	n := 0
	for _, o := range r.Sheets {
		if !o.Skipped {
			n++
		}
	}
	return n
}
