package persistence

import (
	"encoding/json"
	"fmt"
)

// Marshal serializes a stored record to JSON. name is used in error messages.
func Marshal[T any](v *T, name string) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot marshal nil %s", name)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s to JSON: %w", name, err)
	}
	return data, nil
}

// Unmarshal deserializes a stored record from JSON.
func Unmarshal[T any](data []byte, name string) (*T, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot unmarshal empty data")
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON to %s: %w", name, err)
	}
	return &v, nil
}
