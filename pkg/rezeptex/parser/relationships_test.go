package parser

import (
	"strings"
	"testing"
)

const testManifest = `<?xml version="1.0"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheets>
    <sheet name="Inhaltsverzeichnis" sheetId="1" r:id="rId1"/>
    <sheet name="Lasagne" sheetId="2" r:id="rId2"/>
    <sheet name="Kaiserschmarrn" sheetId="3" r:id="rId3"/>
  </sheets>
</workbook>`

func sheetRels(targets ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><Relationships>`)
	for i, target := range targets {
		b.WriteString(`<Relationship Id="rId`)
		b.WriteString(string(rune('1' + i)))
		b.WriteString(`" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/drawing" Target="`)
		b.WriteString(target)
		b.WriteString(`"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func TestResolveSheets(t *testing.T) {
	pkg := newTestPackage(t, map[string]string{
		"xl/workbook.xml": testManifest,
		// Sheet 1: no relationship file at all.
		// Sheet 2: drawing relationship.
		"xl/worksheets/_rels/sheet2.xml.rels": sheetRels("../drawings/drawing1.xml"),
		// Sheet 3: relationships without a drawing target.
		"xl/worksheets/_rels/sheet3.xml.rels": `<?xml version="1.0"?><Relationships>
  <Relationship Id="rId1" Type="hyperlink" Target="https://example.com"/>
</Relationships>`,
	})

	resolutions, err := ResolveSheets(pkg)
	if err != nil {
		t.Fatalf("ResolveSheets failed: %v", err)
	}
	if len(resolutions) != 3 {
		t.Fatalf("expected 3 resolutions, got %d", len(resolutions))
	}

	if got := resolutions[0]; got.DrawingPath != "" || got.Reason != SkipNoRelationships {
		t.Errorf("sheet 1: got path %q reason %q", got.DrawingPath, got.Reason)
	}
	if got := resolutions[1]; got.DrawingPath != "xl/drawings/drawing1.xml" {
		t.Errorf("sheet 2: got path %q", got.DrawingPath)
	}
	if got := resolutions[2]; got.DrawingPath != "" || got.Reason != SkipNoDrawing {
		t.Errorf("sheet 3: got path %q reason %q", got.DrawingPath, got.Reason)
	}

	for i, want := range []struct {
		name  string
		index int
	}{
		{"Inhaltsverzeichnis", 1},
		{"Lasagne", 2},
		{"Kaiserschmarrn", 3},
	} {
		if resolutions[i].Sheet.Name != want.name || resolutions[i].Sheet.PackageIndex != want.index {
			t.Errorf("sheet %d: got %+v, want %+v", i, resolutions[i].Sheet, want)
		}
		if resolutions[i].IndexMismatch {
			t.Errorf("sheet %d: unexpected index mismatch", i)
		}
	}
}

func TestResolveSheetsMalformedRelationships(t *testing.T) {
	// A broken relationship file for one sheet must never prevent the
	// others from resolving.
	pkg := newTestPackage(t, map[string]string{
		"xl/workbook.xml":                     testManifest,
		"xl/worksheets/_rels/sheet1.xml.rels": `<Relationships><Relationship`,
		"xl/worksheets/_rels/sheet2.xml.rels": sheetRels("../drawings/drawing1.xml"),
	})

	resolutions, err := ResolveSheets(pkg)
	if err != nil {
		t.Fatalf("ResolveSheets failed: %v", err)
	}

	if got := resolutions[0]; got.Reason != SkipMalformedRelationships || got.ReasonDetail == "" {
		t.Errorf("sheet 1: got reason %q detail %q", got.Reason, got.ReasonDetail)
	}
	if got := resolutions[1]; got.DrawingPath != "xl/drawings/drawing1.xml" {
		t.Errorf("sheet 2: got path %q", got.DrawingPath)
	}
}

func TestResolveSheetsIndexMismatch(t *testing.T) {
	// Non-contiguous sheetId attributes: relationship files are still
	// located by manifest position; the mismatch is only flagged.
	manifest := `<workbook><sheets>
  <sheet name="Erste" sheetId="1"/>
  <sheet name="Zweite" sheetId="7"/>
</sheets></workbook>`
	pkg := newTestPackage(t, map[string]string{
		"xl/workbook.xml":                     manifest,
		"xl/worksheets/_rels/sheet2.xml.rels": sheetRels("../drawings/drawing9.xml"),
	})

	resolutions, err := ResolveSheets(pkg)
	if err != nil {
		t.Fatalf("ResolveSheets failed: %v", err)
	}

	if resolutions[0].IndexMismatch {
		t.Error("sheet 1: unexpected mismatch")
	}
	if !resolutions[1].IndexMismatch {
		t.Error("sheet 2: expected mismatch flag")
	}
	if resolutions[1].Sheet.PackageIndex != 2 {
		t.Errorf("sheet 2: PackageIndex = %d, want 2", resolutions[1].Sheet.PackageIndex)
	}
	if resolutions[1].DrawingPath != "xl/drawings/drawing9.xml" {
		t.Errorf("sheet 2: DrawingPath = %q", resolutions[1].DrawingPath)
	}
}

func TestResolveSheetsManifestFailures(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		pkg := newTestPackage(t, map[string]string{"other.xml": "<x/>"})
		if _, err := ResolveSheets(pkg); err == nil {
			t.Error("expected error for missing manifest")
		}
	})
	t.Run("malformed", func(t *testing.T) {
		pkg := newTestPackage(t, map[string]string{"xl/workbook.xml": "<workbook><sheets><sheet"})
		if _, err := ResolveSheets(pkg); err == nil {
			t.Error("expected error for malformed manifest")
		}
	})
}

func TestFindDrawingTargetFirstWins(t *testing.T) {
	rels := `<Relationships>
  <Relationship Id="rId1" Type="x" Target="../comments1.xml"/>
  <Relationship Id="rId2" Type="x" Target="../drawings/drawing2.xml"/>
  <Relationship Id="rId3" Type="x" Target="../drawings/drawing1.xml"/>
</Relationships>`
	target, err := findDrawingTarget(rels)
	if err != nil {
		t.Fatalf("findDrawingTarget failed: %v", err)
	}
	if target != "../drawings/drawing2.xml" {
		t.Errorf("target = %q, want first drawing in document order", target)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../drawings/drawing1.xml", "xl/worksheets", "xl/drawings/drawing1.xml"},
		{"../media/image1.png", "xl/drawings", "xl/media/image1.png"},
		{"../../media/image1.png", "xl/drawings", "xl/media/image1.png"},
		{"/drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
		{"drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
	}

	for _, tt := range tests {
		result := resolveRelativePath(tt.target, tt.baseDir)
		if result != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q",
				tt.target, tt.baseDir, result, tt.expected)
		}
	}
}
