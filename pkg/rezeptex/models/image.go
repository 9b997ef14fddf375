package models

// ImageReference points at a binary media entry inside the package.
type ImageReference struct {
	// Path is the absolute package-internal path to the media entry
	// (e.g. "xl/media/image1.png").
	Path string `json:"path"`
}

// CropRect describes the percentage of the source image cropped from each
// edge. All values are in [0,100].
type CropRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// ImageTransform is the rotation/flip/crop geometry applied to a picture as
// authored, independent of the underlying image bytes. The zero value is the
// identity transform; a picture without explicit transform attributes always
// gets the identity value, never an absent one.
type ImageTransform struct {
	// RotationDegrees is the clockwise rotation, normalized into [0,360).
	RotationDegrees float64 `json:"rotation_degrees"`
	// FlipHorizontal mirrors the picture across its vertical axis.
	FlipHorizontal bool `json:"flip_horizontal"`
	// FlipVertical mirrors the picture across its horizontal axis.
	FlipVertical bool `json:"flip_vertical"`
	// Crop is the per-edge source crop in percent.
	Crop CropRect `json:"crop"`
}

// IsIdentity reports whether the transform leaves the picture untouched.
func (t ImageTransform) IsIdentity() bool {
	return t == ImageTransform{}
}

// SheetImage pairs one media entry with its authored transform. The pairing
// is positional: entry i of a worksheet's image list is described by
// transform i extracted from the same drawing.
type SheetImage struct {
	Ref       ImageReference `json:"ref"`
	Transform ImageTransform `json:"transform"`
}

// SheetImageMapping maps a worksheet name to its ordered picture list.
// Order is the drawing's document order; consumers treat the first entry as
// the primary image. A worksheet appears only if at least one image resolved
// for it — absence and "has no images" are the same observable state.
type SheetImageMapping map[string][]SheetImage
