package parser

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"rezeptex/pkg/rezeptex/models"
)

// ExtractTransforms scans a drawing document for picture elements in
// document order and returns their authored transforms, at most
// expectedCount entries. A picture without transform attributes, or one
// whose element fails to parse, yields the identity transform; the image
// bytes are the higher-priority payload and a broken transform must never
// block them. The result is positionally aligned with the drawing's image
// relationship list: index i describes image path i.
func ExtractTransforms(drawingXML string, expectedCount int) []models.ImageTransform {
	var transforms []models.ImageTransform
	if expectedCount <= 0 {
		return transforms
	}

	decoder := xml.NewDecoder(strings.NewReader(drawingXML))
	for len(transforms) < expectedCount {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "pic" {
			transforms = append(transforms, parsePicture(decoder))
		}
	}

	return transforms
}

// parsePicture consumes one pic element and extracts its transform.
// Any decode error mid-element is swallowed and the attributes read so far
// (or none) stand; missing attributes keep their identity value.
func parsePicture(decoder *xml.Decoder) models.ImageTransform {
	var t models.ImageTransform

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch tok := token.(type) {
		case xml.StartElement:
			depth++
			switch tok.Name.Local {
			case "xfrm":
				applyGeometry(&t, tok)
			case "srcRect":
				applyCrop(&t, tok)
			}
		case xml.EndElement:
			depth--
		}
	}

	return t
}

// applyGeometry reads rotation and flip flags off a shape-geometry element.
func applyGeometry(t *models.ImageTransform, se xml.StartElement) {
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "rot":
			if raw, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
				t.RotationDegrees = angleToDegrees(raw)
			}
		case "flipH":
			t.FlipHorizontal = attr.Value == "1"
		case "flipV":
			t.FlipVertical = attr.Value == "1"
		}
	}
}

// applyCrop reads the image-fill source rectangle edge attributes.
func applyCrop(t *models.ImageTransform, se xml.StartElement) {
	for _, attr := range se.Attr {
		raw, err := strconv.ParseInt(attr.Value, 10, 64)
		if err != nil {
			continue
		}
		switch attr.Name.Local {
		case "l":
			t.Crop.Left = cropToPercent(raw)
		case "t":
			t.Crop.Top = cropToPercent(raw)
		case "r":
			t.Crop.Right = cropToPercent(raw)
		case "b":
			t.Crop.Bottom = cropToPercent(raw)
		}
	}
}
