package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rezeptex/pkg/rezeptex/models"
)

// Fixed package path conventions. Deviations are a hard failure, not a
// recovery path.
const (
	manifestPath  = "xl/workbook.xml"
	sheetRelsDir  = "xl/worksheets/_rels"
	worksheetsDir = "xl/worksheets"
)

// SheetResolution is the per-worksheet outcome of the relationship walk.
type SheetResolution struct {
	// Sheet describes the worksheet entry from the manifest.
	Sheet models.WorksheetDescriptor
	// DrawingPath is the absolute package path of the worksheet's drawing,
	// empty when the worksheet has none.
	DrawingPath string
	// Reason records why DrawingPath is empty (zero when it is not).
	Reason SkipReason
	// ReasonDetail carries the underlying parse error text, if any.
	ReasonDetail string
	// IndexMismatch is set when the manifest sheetId attribute parses but
	// disagrees with the 1-based manifest position. Relationship files are
	// still located by position; callers should surface a warning.
	IndexMismatch bool
}

// ResolveSheets walks workbook manifest → per-worksheet relationships and
// returns one resolution per manifest sheet, in manifest order. Only an
// unreadable or unparseable manifest is an error; anything wrong with a
// single worksheet resolves that worksheet to "no drawing" and the walk
// continues.
func ResolveSheets(pkg PackageReader) ([]SheetResolution, error) {
	manifest, err := pkg.ReadText(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read workbook manifest: %w", err)
	}

	sheets, err := parseManifestSheets(manifest)
	if err != nil {
		return nil, fmt.Errorf("parse workbook manifest: %w", err)
	}

	resolutions := make([]SheetResolution, 0, len(sheets))
	for _, sheet := range sheets {
		res := SheetResolution{
			Sheet:         sheet.descriptor,
			IndexMismatch: sheet.indexMismatch,
		}

		relsPath := fmt.Sprintf("%s/sheet%d.xml.rels", sheetRelsDir, sheet.descriptor.PackageIndex)
		relsXML, err := pkg.ReadText(relsPath)
		if err != nil {
			// No relationship file means no drawing. Normal, silent.
			res.Reason = SkipNoRelationships
			resolutions = append(resolutions, res)
			continue
		}

		target, err := findDrawingTarget(relsXML)
		if err != nil {
			res.Reason = SkipMalformedRelationships
			res.ReasonDetail = err.Error()
			resolutions = append(resolutions, res)
			continue
		}
		if target == "" {
			res.Reason = SkipNoDrawing
			resolutions = append(resolutions, res)
			continue
		}

		res.DrawingPath = resolveRelativePath(target, worksheetsDir)
		resolutions = append(resolutions, res)
	}

	return resolutions, nil
}

// manifestSheet is one worksheet entry scanned out of the manifest.
type manifestSheet struct {
	descriptor    models.WorksheetDescriptor
	indexMismatch bool
}

// parseManifestSheets extracts the ordered worksheet list from workbook.xml.
// The 1-based document position becomes the PackageIndex; the sheetId
// attribute is only consulted to flag position/identifier disagreement.
func parseManifestSheets(data string) ([]manifestSheet, error) {
	var sheets []manifestSheet

	decoder := xml.NewDecoder(strings.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}

		var name, sheetID string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				name = attr.Value
			case "sheetId":
				sheetID = attr.Value
			}
		}
		if name == "" {
			continue
		}

		position := len(sheets) + 1
		mismatch := false
		if id, err := strconv.Atoi(sheetID); err == nil && id != position {
			mismatch = true
		}

		sheets = append(sheets, manifestSheet{
			descriptor: models.WorksheetDescriptor{
				Name:         name,
				PackageIndex: position,
			},
			indexMismatch: mismatch,
		})
	}

	return sheets, nil
}

// findDrawingTarget returns the target of the first relationship whose
// target path contains "drawing", in document order. Empty when none
// qualifies; error when the relationship list does not parse.
func findDrawingTarget(data string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}

		var target string
		for _, attr := range se.Attr {
			if attr.Name.Local == "Target" {
				target = attr.Value
			}
		}
		if strings.Contains(strings.ToLower(target), "drawing") {
			return target, nil
		}
	}
}

// resolveRelativePath resolves a relationship target against the package
// root convention: "../foo" re-roots at "xl/", absolute targets and bare
// names attach to baseDir.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return baseDir + target
	}
	return baseDir + "/" + target
}
