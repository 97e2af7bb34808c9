package instrument

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// Masked replaces the value of every sensitive field.
const Masked = "***"

// Masker hides sensitive fields, such as staff passwords and relay secrets,
// in log payloads. Field names are compared case-insensitively.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker from the configured field names.
func NewMasker(fields []string) Masker {
	names := lo.Compact(lo.Map(fields, func(f string, _ int) string {
		return strings.ToLower(strings.TrimSpace(f))
	}))

	return Masker{keys: lo.Keyify(names)}
}

// Empty reports whether no field is masked.
func (m Masker) Empty() bool {
	return len(m.keys) == 0
}

// Hides reports whether the field name is masked.
func (m Masker) Hides(field string) bool {
	_, ok := m.keys[strings.ToLower(field)]
	return ok
}

// Value masks a decoded JSON value in place of its sensitive fields.
func (m Masker) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.Hides(k) {
				out[k] = Masked
				continue
			}
			out[k] = m.Value(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = inner
		}
		return m.Value(out)
	case []any:
		return lo.Map(val, func(inner any, _ int) any { return m.Value(inner) })
	default:
		return v
	}
}

// JSON decodes payload and masks it. ok is false when payload is not JSON.
func (m Masker) JSON(payload []byte) (v any, ok bool) {
	if len(payload) == 0 {
		return nil, false
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, false
	}

	return m.Value(decoded), true
}
