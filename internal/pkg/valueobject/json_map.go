// Package valueobject holds small value types shared by entities and adapters.
package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// ErrScanValueNotBytes indicates the database value is not JSON text.
var ErrScanValueNotBytes = errors.New("valueobject: jsonmap scan value is not []byte")

// JSONMap is a free-form JSON object, such as a staff member's training
// progress keyed by module id. A nil map encodes as {} rather than null.
// @swaggertype object
type JSONMap map[string]any

// Value implements driver.Valuer for JSONMap.
func (j JSONMap) Value() (driver.Value, error) {
	return json.Marshal(j.orEmpty())
}

// Scan implements sql.Scanner for JSONMap. SQL NULL scans as an empty map.
func (j *JSONMap) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*j = JSONMap{}
		return nil
	case map[string]any:
		*j = JSONMap(v)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return ErrScanValueNotBytes
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}

	*j = JSONMap(m).orEmpty()
	return nil
}

// MarshalJSON implements json.Marshaler for JSONMap.
func (j JSONMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(j.orEmpty()))
}

func (j JSONMap) orEmpty() JSONMap {
	if j == nil {
		return JSONMap{}
	}
	return j
}
