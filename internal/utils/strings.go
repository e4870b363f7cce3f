package utils

import (
	"encoding/json"
	"fmt"
)

// previewLength bounds how much of a payload ends up in error messages.
const previewLength = 500

// JSONToString serialises object to JSON. With indent set to true the output
// uses two-space indentation. Marshaling failures produce a JSON error object
// instead of panicking, so the result is always printable.
func JSONToString(object any, indent ...bool) string {
	var encoded []byte
	var err error
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		return "{\"error\": \"failed to marshal to JSON: " + err.Error() + "\"}"
	}
	return string(encoded)
}

// TruncateString shortens s to at most maxLen bytes and records the original
// length in a suffix. A non-positive maxLen uses a 500 byte preview.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = previewLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
