package db

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fields a patch may not overwrite
var storeOwnedFields = map[string]bool{
	"id":           true,
	"created_date": true,
	"updated_date": true,
}

// applyPatch merges patch over the JSON form of current and decodes the result.
// Keys not present in patch keep their current value; a null value clears the field.
// A key naming no field of the record fails with ErrInvalidPatch.
func applyPatch[T any](current T, patch Patch) (T, error) {
	var merged T

	raw, err := json.Marshal(current)
	if err != nil {
		return merged, fmt.Errorf("failed to encode record: %w", err)
	}

	doc := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return merged, fmt.Errorf("failed to decode record: %w", err)
	}

	for key, value := range patch {
		if storeOwnedFields[key] {
			continue
		}
		doc[key] = value
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return merged, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	strict := json.NewDecoder(bytes.NewReader(out))
	strict.DisallowUnknownFields()
	if err := strict.Decode(&merged); err != nil {
		return merged, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return merged, nil
}
