package parser

import (
	"encoding/xml"
	"io"
	"log/slog"
	"path"
	"strings"

	"rezeptex/pkg/rezeptex/models"
)

const drawingsDir = "xl/drawings"

// ExtractImagePaths scans a drawing's relationship list and returns the
// absolute package paths of its image targets, in relationship document
// order. That order is canonical for the worksheet: transforms are paired
// with it positionally. A relationship qualifies when its target path or
// declared type contains "image".
func ExtractImagePaths(relsXML string) ([]string, error) {
	var paths []string

	decoder := xml.NewDecoder(strings.NewReader(relsXML))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return paths, nil
		}
		if err != nil {
			return nil, err
		}

		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}

		var relType, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Type":
				relType = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if target == "" {
			continue
		}
		if strings.Contains(strings.ToLower(target), "image") ||
			strings.Contains(strings.ToLower(relType), "image") {
			paths = append(paths, resolveRelativePath(target, drawingsDir))
		}
	}
}

// drawingRelsPath derives a drawing's relationship file path from the
// drawing's own path: <dir>/_rels/<file>.rels.
func drawingRelsPath(drawingPath string) string {
	return path.Dir(drawingPath) + "/_rels/" + path.Base(drawingPath) + ".rels"
}

// BuildMapping walks every worksheet of the package and assembles the
// sheet-name → ordered (image, transform) mapping. Per-worksheet problems
// skip that worksheet and are recorded in the report; only a manifest that
// cannot be read or parsed aborts the build, returning an empty mapping
// and the error. The walk is strictly sequential: correctness depends on
// reading a drawing's body and its relationship list in the same logical
// step.
func BuildMapping(pkg PackageReader, logger *slog.Logger) (models.SheetImageMapping, *BuildReport, error) {
	mapping := make(models.SheetImageMapping)
	report := &BuildReport{}

	resolutions, err := ResolveSheets(pkg)
	if err != nil {
		return mapping, report, err
	}

	for _, res := range resolutions {
		if res.IndexMismatch {
			logger.Warn("worksheet position disagrees with sheetId; relationships located by position",
				"sheet", res.Sheet.Name,
				"package_index", res.Sheet.PackageIndex)
		}

		outcome := SheetOutcome{Sheet: res.Sheet}

		if res.DrawingPath == "" {
			outcome.Skipped = true
			outcome.Reason = res.Reason
			outcome.Detail = res.ReasonDetail
			logSkip(logger, outcome)
			report.Sheets = append(report.Sheets, outcome)
			continue
		}

		images, reason, detail := resolveDrawing(pkg, res.DrawingPath)
		if reason != "" {
			outcome.Skipped = true
			outcome.Reason = reason
			outcome.Detail = detail
			logSkip(logger, outcome)
			report.Sheets = append(report.Sheets, outcome)
			continue
		}

		// Duplicate sheet names are last-write-wins, plain map semantics.
		mapping[res.Sheet.Name] = images
		outcome.ImageCount = len(images)
		report.Sheets = append(report.Sheets, outcome)
	}

	return mapping, report, nil
}

// resolveDrawing reads one drawing's body and relationship list and zips
// image paths with transforms. Both parts must be present; a missing or
// malformed part skips the whole worksheet.
func resolveDrawing(pkg PackageReader, drawingPath string) ([]models.SheetImage, SkipReason, string) {
	drawingXML, err := pkg.ReadText(drawingPath)
	if err != nil {
		return nil, SkipDrawingMissing, ""
	}

	relsXML, err := pkg.ReadText(drawingRelsPath(drawingPath))
	if err != nil {
		return nil, SkipDrawingRelsMissing, ""
	}

	paths, err := ExtractImagePaths(relsXML)
	if err != nil {
		return nil, SkipMalformedDrawingRels, err.Error()
	}
	if len(paths) == 0 {
		return nil, SkipNoImages, ""
	}

	transforms := ExtractTransforms(drawingXML, len(paths))

	images := make([]models.SheetImage, len(paths))
	for i, p := range paths {
		img := models.SheetImage{Ref: models.ImageReference{Path: p}}
		// Fewer pictures than image relationships: trailing entries keep
		// the identity transform.
		if i < len(transforms) {
			img.Transform = transforms[i]
		}
		images[i] = img
	}

	return images, "", ""
}

func logSkip(logger *slog.Logger, o SheetOutcome) {
	if o.Reason.Structural() {
		logger.Debug("worksheet has no images", "sheet", o.Sheet.Name, "reason", string(o.Reason))
		return
	}
	logger.Warn("worksheet skipped", "sheet", o.Sheet.Name, "reason", string(o.Reason), "detail", o.Detail)
}
