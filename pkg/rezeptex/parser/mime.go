package parser

import (
	"path"
	"strings"
)

// mediaTypes is the fixed extension → MIME table for package media entries.
// Deliberately not mime.TypeByExtension, which consults the host OS table.
var mediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// MediaType derives the MIME type of a media entry from its file
// extension. Unrecognized extensions default to image/png.
func MediaType(mediaPath string) string {
	ext := strings.ToLower(path.Ext(mediaPath))
	if mt, ok := mediaTypes[ext]; ok {
		return mt
	}
	return "image/png"
}
