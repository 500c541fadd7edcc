//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap round-trips a DTO through JSON into a map so individual request
// fields can be mutated or removed for validation tests.
func DtoMap(t *testing.T, dto any, mutations ...func(m map[string]any)) map[string]any {
	t.Helper()

	raw, err := json.Marshal(dto)
	require.NoError(t, err, "Failed to marshal DTO")

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), "Failed to unmarshal DTO into map")

	for _, mutate := range mutations {
		mutate(m)
	}
	return m
}

// Field sets a key to a value; nil removes the key entirely.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
