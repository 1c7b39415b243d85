package render

import (
	"encoding/json"
	"io"
)

// JSON writes v as a single line of JSON.
func JSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
