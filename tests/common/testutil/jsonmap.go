//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// JSONMap renders a request DTO as the generic map a client would send,
// then applies mutations so tests can break one field at a time.
func JSONMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mutate := range muts {
		mutate(m)
	}
	return m
}

// Set overrides a JSON field. A nil value removes it.
func Set(key string, value any) func(map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// Drop removes each named field.
func Drop(keys ...string) func(map[string]any) {
	return func(m map[string]any) {
		for _, k := range keys {
			delete(m, k)
		}
	}
}
