// Package output serializes extraction results for the CLI.
package output

import "encoding/json"

// ToJSON marshals v, optionally indented for human readers.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
