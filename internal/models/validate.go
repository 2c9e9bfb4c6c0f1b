package models

import "encoding/json"

// Shared validation primitives. Every entity constructor runs these; an entity
// value that exists has already passed them.

// assertPositiveInt rejects values <= 0.
func assertPositiveInt(v int64, field string) error {
	if v <= 0 {
		return validationErrorf(field, "must be a positive integer")
	}

	return nil
}

// assertOptionalPositiveInt rejects non-nil values <= 0. nil means "not set".
func assertOptionalPositiveInt(v *int64, field string) error {
	if v == nil {
		return nil
	}

	return assertPositiveInt(*v, field)
}

// assertMinInt rejects values below min.
func assertMinInt(v, min int, field string) error {
	if v < min {
		return validationErrorf(field, "must be >= %d", min)
	}

	return nil
}

// assertJSONMap rejects maps whose values cannot be serialized to JSON.
// Map keys are strings by construction in Go; payloads that arrive with
// non-object meta fail JSON binding before reaching this check.
func assertJSONMap(m map[string]any, field string) error {
	if m == nil {
		return nil
	}

	if _, err := json.Marshal(m); err != nil {
		return validationErrorf(field, "must be JSON encodable")
	}

	return nil
}
