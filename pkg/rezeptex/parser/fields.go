package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"rezeptex/pkg/rezeptex/models"
)

// Header keywords anchoring the recipe regions on a sheet. Matching is
// case-insensitive substring.
const (
	headerIngredients = "zutaten"
	headerSteps       = "zubereitung"
	headerServings    = "portionen"
)

// RecipeFields is the tabular part of one recipe sheet.
type RecipeFields struct {
	Title       string
	Servings    int
	Ingredients []models.Ingredient
	Steps       []string
}

// ExtractRecipeFields scans a worksheet's cell grid for the recipe title,
// servings, ingredient rows, and instruction steps. The layout is keyword
// anchored: ingredient rows sit below a "Zutaten" cell, steps below a
// "Zubereitung" cell.
func ExtractRecipeFields(f *excelize.File, sheetName string) (RecipeFields, error) {
	fields := RecipeFields{Title: sheetName}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return fields, err
	}

	if t := firstNonEmpty(rows, 0); t != "" {
		fields.Title = t
	}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			key := strings.ToLower(strings.TrimSpace(cell))
			switch {
			case strings.Contains(key, headerServings):
				fields.Servings = cellInt(row, colIdx+1)
			case strings.Contains(key, headerIngredients):
				fields.Ingredients = scanIngredients(rows, rowIdx+1, colIdx)
			case strings.Contains(key, headerSteps):
				fields.Steps = scanSteps(rows, rowIdx+1, colIdx)
			}
		}
	}

	return fields, nil
}

// scanIngredients reads amount/name pairs starting below the header row.
// Amount sits in the header's column, name one column to the right. The
// region ends at the first row providing neither.
func scanIngredients(rows [][]string, startRow, col int) []models.Ingredient {
	var result []models.Ingredient
	for r := startRow; r < len(rows); r++ {
		amount := strings.TrimSpace(cellAt(rows[r], col))
		name := strings.TrimSpace(cellAt(rows[r], col+1))
		if amount == "" && name == "" {
			break
		}
		if name == "" {
			// Single-cell rows like "Salz" carry no amount.
			name = amount
			amount = ""
		}
		result = append(result, models.Ingredient{Amount: amount, Name: name})
	}
	return result
}

// scanSteps reads non-empty cells below the header in the same column,
// ending after two consecutive empty rows.
func scanSteps(rows [][]string, startRow, col int) []string {
	var result []string
	empty := 0
	for r := startRow; r < len(rows); r++ {
		step := strings.TrimSpace(cellAt(rows[r], col))
		if step == "" {
			empty++
			if empty >= 2 {
				break
			}
			continue
		}
		empty = 0
		result = append(result, step)
	}
	return result
}

func firstNonEmpty(rows [][]string, rowIdx int) string {
	if rowIdx >= len(rows) {
		return ""
	}
	for _, cell := range rows[rowIdx] {
		if s := strings.TrimSpace(cell); s != "" {
			return s
		}
	}
	return ""
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// cellInt parses the cell as an integer, tolerating trailing text like
// "4 Personen". Returns 0 when no leading number is present.
func cellInt(row []string, col int) int {
	s := strings.TrimSpace(cellAt(row, col))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
