package fallback

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// payload is what the fallback endpoint returned, decoded into one of two
// shapes: recordsPayload or unrecognizedPayload.
type payload interface {
	isPayload()
}

// recordsPayload is an array of objects, or a single object promoted to one.
type recordsPayload struct {
	records []record
}

// unrecognizedPayload is valid JSON of any other shape.
type unrecognizedPayload struct {
	kind string
}

func (recordsPayload) isPayload()      {}
func (unrecognizedPayload) isPayload() {}

// record is one loosely-typed hotel object.
type record map[string]any

// decodePayload classifies body. Only malformed JSON is an error; valid JSON
// of an unexpected shape comes back as unrecognizedPayload.
func decodePayload(body []byte) (payload, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("fallback: decode payload: %w", err)
	}

	switch t := v.(type) {
	case map[string]any:
		return recordsPayload{records: []record{t}}, nil
	case []any:
		records := make([]record, 0, len(t))
		for _, item := range t {
			obj, ok := item.(map[string]any)
			if !ok {
				return unrecognizedPayload{kind: fmt.Sprintf("array of %T", item)}, nil
			}
			records = append(records, obj)
		}
		return recordsPayload{records: records}, nil
	default:
		return unrecognizedPayload{kind: fmt.Sprintf("%T", v)}, nil
	}
}

// name returns the first non-empty string among the name keys.
func (r record) name() (string, bool) {
	for _, key := range []string{"name", "hotel_name"} {
		if s, ok := r[key].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

// text renders a field as text for the normalizer. Objects, arrays and
// booleans are rendered as their JSON text, so {"amount": 10} still yields 10
// and true yields nothing numeric.
func (r record) text(key string) (string, bool) {
	switch v := r[key].(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
