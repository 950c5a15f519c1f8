package handler

import (
	"encoding/json"

	"github.com/AkashAman27/cuddly-nest-blog/model"
)

// Extraction helpers for the validated request context. Handlers destructure
// extra body fields directly, so every getter tolerates absence and wrong
// shapes by returning its zero value.

func strField(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func strPtrField(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func boolField(m map[string]any, key string, fallback bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

func boolPtrField(m map[string]any, key string) *bool {
	if v, ok := m[key].(bool); ok {
		return &v
	}
	return nil
}

func intField(m map[string]any, key string, fallback int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func intPtrField(m map[string]any, key string) *int {
	if v, ok := m[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func mapField(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// strSliceField returns nil when the key is absent, so callers can tell
// "not submitted" apart from "submitted empty".
func strSliceField(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func jsonField(m map[string]any, key string) model.JSONText {
	v, ok := m[key]
	if !ok {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
