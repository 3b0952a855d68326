package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Load decodes an embedded JSON catalog file, rejecting unknown fields.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse JSON from %s: %w", filename, err)
	}
	return result, nil
}
