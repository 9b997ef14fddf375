package models

// Ingredient is one row of a recipe's ingredient list.
type Ingredient struct {
	// Amount is the quantity text as authored (e.g. "200 g").
	Amount string `json:"amount,omitempty"`
	// Name is the ingredient name.
	Name string `json:"name"`
}

// RecipeImage is one extracted image payload with derived metadata.
type RecipeImage struct {
	// Path is the package-internal media path the payload came from.
	Path string `json:"path"`
	// MediaType is the MIME type derived from the path's file extension.
	MediaType string `json:"media_type"`
	// Width and Height are the decoded pixel dimensions (0 when the
	// payload could not be decoded).
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Transform is the authored rotation/flip/crop geometry.
	Transform ImageTransform `json:"transform"`
	// Data is the raw image payload. Excluded from JSON output.
	Data []byte `json:"-"`
}

// Recipe is the assembled record for one worksheet.
type Recipe struct {
	// SheetName is the owning worksheet name and the store key.
	SheetName string `json:"sheet_name"`
	// Title is the recipe title (falls back to the sheet name).
	Title string `json:"title"`
	// Category comes from the table-of-contents sheet, if any.
	Category string `json:"category,omitempty"`
	// Servings is the portion count, 0 when not stated.
	Servings int `json:"servings,omitempty"`
	// Ingredients in row order.
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	// Steps are the preparation instructions in row order.
	Steps []string `json:"steps,omitempty"`
	// Images in drawing document order; the first is the primary image.
	Images []RecipeImage `json:"images,omitempty"`
}

// Cookbook is the whole-workbook extraction result.
type Cookbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Recipes in manifest sheet order, excluded sheets removed.
	Recipes []Recipe `json:"recipes"`
}
