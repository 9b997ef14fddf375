package rezeptex

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"rezeptex/pkg/rezeptex/logging"
	"rezeptex/pkg/rezeptex/models"
	"rezeptex/pkg/rezeptex/parser"
)

// Extract reads the workbook at path and assembles one Recipe per
// non-excluded worksheet, merging the tabular fields, the table-of-contents
// categories, and the embedded image mapping. Per-sheet problems are
// recovered (the sheet's fields or images stay empty) and recorded in the
// report; the returned error is non-nil only when the workbook itself is
// unreadable.
func Extract(path string, opts Options) (*models.Cookbook, *parser.BuildReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithComponent(logger, "extract")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	// The cell reader does not expose raw package parts; reopen the file
	// as a plain zip archive for the relationship walk.
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer zr.Close()
	pkg := parser.NewPackage(&zr.Reader)

	mapping, report, err := parser.BuildMapping(pkg, logging.WithComponent(logger, "mapping"))
	if err != nil {
		// The manifest itself is unusable. Recipes without images would
		// still be possible via the cell reader, but a package this broken
		// is not worth guessing at.
		return nil, report, fmt.Errorf("build image mapping: %w", err)
	}

	sheetList := f.GetSheetList()
	categories := parser.LookupCategories(f, opts.TOCSheet, sheetList)

	book := &models.Cookbook{BookName: filepath.Base(path)}
	for _, sheetName := range sheetList {
		if opts.excluded(sheetName) {
			continue
		}

		recipe := models.Recipe{
			SheetName: sheetName,
			Title:     sheetName,
			Category:  categories[sheetName],
		}

		fields, err := parser.ExtractRecipeFields(f, sheetName)
		if err != nil {
			logger.Warn("recipe fields unreadable",
				"sheet", sheetName, "error", err)
		} else {
			recipe.Title = fields.Title
			recipe.Servings = fields.Servings
			recipe.Ingredients = fields.Ingredients
			recipe.Steps = fields.Steps
		}

		recipe.Images = loadImages(pkg, mapping[sheetName], opts, logger)

		book.Recipes = append(book.Recipes, recipe)
	}

	return book, report, nil
}

// loadImages turns a worksheet's mapped image list into payload-carrying
// records. An unreadable media entry drops that one image with a warning;
// the rest of the list survives.
func loadImages(pkg parser.PackageReader, mapped []models.SheetImage, opts Options, logger *slog.Logger) []models.RecipeImage {
	var images []models.RecipeImage
	for _, m := range mapped {
		img := models.RecipeImage{
			Path:      m.Ref.Path,
			MediaType: parser.MediaType(m.Ref.Path),
			Transform: m.Transform,
		}
		if !opts.SkipImageData {
			data, err := pkg.ReadBinary(m.Ref.Path)
			if err != nil {
				logger.Warn("media entry unreadable, image dropped",
					"path", m.Ref.Path, "error", err)
				continue
			}
			img.Data = data
			img.Width, img.Height = probeSize(data)
		}
		images = append(images, img)
	}
	return images
}

// probeSize decodes just the image header for pixel dimensions. Undecodable
// payloads report 0x0; the bytes are stored regardless.
func probeSize(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
