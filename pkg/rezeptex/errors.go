package rezeptex

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx package.
var ErrInvalidFormat = errors.New("invalid xlsx package")

// ExtractionError reports a per-sheet failure during assembly.
type ExtractionError struct {
	SheetName string
	Component string // "fields", "images", "mapping"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
