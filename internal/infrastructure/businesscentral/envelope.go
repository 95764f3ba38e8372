package businesscentral

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erp/bcadapter/internal/domain/shared"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Codeunit endpoints answer with {"value": "<json text>"}: the payload is a
// JSON document serialized into a string. Decoding happens in two stages.
//
// Normalization: Business Central may prefix both the HTTP body and the
// embedded string with a UTF-8 byte order mark. It is removed, together
// with surrounding whitespace, before each stage.
type envelope struct {
	Value *string `json:"value"`
}

// decodeEnvelope unwraps a codeunit answer into a slice of T.
// A missing or null value yields an empty slice.
func decodeEnvelope[T any](body []byte) ([]T, error) {
	normalized, err := stripBOM(body)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize envelope: %v", shared.ErrRemoteRequestFailed, err)
	}
	if len(normalized) == 0 {
		return []T{}, nil
	}

	var env envelope
	if err := json.Unmarshal(normalized, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", shared.ErrRemoteRequestFailed, err)
	}
	if env.Value == nil {
		return []T{}, nil
	}

	payload := strings.TrimSpace(strings.TrimPrefix(*env.Value, "\ufeff"))
	if payload == "" {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("%w: decode envelope payload: %v", shared.ErrRemoteRequestFailed, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// stripBOM removes a leading byte order mark and surrounding whitespace
func stripBOM(body []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), body)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(out), nil
}
