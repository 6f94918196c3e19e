package payload

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractMessage returns the value of the "msg" field when body is a JSON
// object carrying one, and body unchanged otherwise. String values are
// returned unquoted; any other JSON value is returned as its JSON text.
func ExtractMessage(body string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return body
	}

	msg, ok := obj["msg"]
	if !ok {
		return body
	}

	msg = bytes.TrimSpace(msg)
	if bytes.Equal(msg, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(msg))
}
