package rezeptex

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds a small recipe workbook with a table of
// contents, one recipe sheet carrying a picture, and a template sheet.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "foto.png")
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(pngPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "Inhaltsverzeichnis")
	if _, err := f.NewSheet("Lasagne"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if _, err := f.NewSheet("Vorlage"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}

	f.SetCellValue("Inhaltsverzeichnis", "A1", "Hauptgerichte")
	f.SetCellValue("Inhaltsverzeichnis", "A2", "Lasagne")
	f.SetCellValue("Inhaltsverzeichnis", "B2", "Seite 2")

	f.SetCellValue("Lasagne", "A1", "Lasagne al Forno")
	f.SetCellValue("Lasagne", "A2", "Portionen")
	f.SetCellValue("Lasagne", "B2", 4)
	f.SetCellValue("Lasagne", "A4", "Zutaten")
	f.SetCellValue("Lasagne", "A5", "500 g")
	f.SetCellValue("Lasagne", "B5", "Hackfleisch")
	f.SetCellValue("Lasagne", "D4", "Zubereitung")
	f.SetCellValue("Lasagne", "D5", "Alles schichten und backen.")

	if err := f.AddPicture("Lasagne", "F2", pngPath, nil); err != nil {
		t.Fatalf("add picture: %v", err)
	}

	bookPath := filepath.Join(dir, "rezepte.xlsx")
	if err := f.SaveAs(bookPath); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return bookPath
}

func TestExtract(t *testing.T) {
	path := writeTestWorkbook(t)

	book, report, err := Extract(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if book.BookName != "rezepte.xlsx" {
		t.Errorf("BookName = %q", book.BookName)
	}
	if len(book.Recipes) != 1 {
		t.Fatalf("expected 1 recipe (TOC and template excluded), got %d", len(book.Recipes))
	}

	r := book.Recipes[0]
	if r.SheetName != "Lasagne" {
		t.Errorf("SheetName = %q", r.SheetName)
	}
	if r.Title != "Lasagne al Forno" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Category != "Hauptgerichte" {
		t.Errorf("Category = %q", r.Category)
	}
	if r.Servings != 4 {
		t.Errorf("Servings = %d", r.Servings)
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Name != "Hackfleisch" {
		t.Errorf("Ingredients = %+v", r.Ingredients)
	}
	if len(r.Steps) != 1 {
		t.Errorf("Steps = %+v", r.Steps)
	}

	if len(r.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(r.Images))
	}
	img := r.Images[0]
	if img.MediaType != "image/png" {
		t.Errorf("MediaType = %q", img.MediaType)
	}
	if len(img.Data) == 0 {
		t.Error("expected image payload")
	}
	if img.Width != 2 || img.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", img.Width, img.Height)
	}
	if !img.Transform.IsIdentity() {
		t.Errorf("Transform = %+v, want identity", img.Transform)
	}

	if report.Mapped() != 1 {
		t.Errorf("report.Mapped() = %d, want 1", report.Mapped())
	}
}

func TestExtractSkipImageData(t *testing.T) {
	path := writeTestWorkbook(t)

	opts := DefaultOptions()
	opts.SkipImageData = true
	book, _, err := Extract(path, opts)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	img := book.Recipes[0].Images[0]
	if img.Data != nil {
		t.Error("expected no payload with SkipImageData")
	}
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("dimensions = %dx%d, want unprobed", img.Width, img.Height)
	}
	if img.Path == "" || img.MediaType != "image/png" {
		t.Errorf("metadata missing: %+v", img)
	}
}

func TestExtractExcludedSheetStillMaps(t *testing.T) {
	// The raw image mapping is indifferent to semantic sheet roles: a
	// picture on the template sheet is mapped but never becomes a recipe.
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "foto.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(pngPath, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Lasagne")
	if _, err := f.NewSheet("Vorlage"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.AddPicture("Vorlage", "B2", pngPath, nil); err != nil {
		t.Fatalf("add picture: %v", err)
	}

	bookPath := filepath.Join(dir, "rezepte.xlsx")
	if err := f.SaveAs(bookPath); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	book, report, err := Extract(bookPath, DefaultOptions())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(book.Recipes) != 1 || book.Recipes[0].SheetName != "Lasagne" {
		t.Errorf("Recipes = %+v, want only Lasagne", book.Recipes)
	}
	if report.Mapped() != 1 {
		t.Errorf("report.Mapped() = %d, want the template sheet mapped", report.Mapped())
	}
}

func TestExtractNotAWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not.xlsx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, _, err := Extract(path, DefaultOptions()); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestExtractMissingFile(t *testing.T) {
	if _, _, err := Extract(filepath.Join(t.TempDir(), "absent.xlsx"), DefaultOptions()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
