package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_Scan(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    JSONMap
		wantErr bool
	}{
		{name: "null", in: nil, want: JSONMap{}},
		{name: "bytes", in: []byte(`{"module1":true}`), want: JSONMap{"module1": true}},
		{name: "text", in: `{"quiz":{"score":7}}`, want: JSONMap{"quiz": map[string]any{"score": float64(7)}}},
		{name: "json null", in: `null`, want: JSONMap{}},
		{name: "decoded map", in: map[string]any{"m": 1}, want: JSONMap{"m": 1}},
		{name: "array", in: `[1,2]`, wantErr: true},
		{name: "number", in: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONMap
			err := got.Scan(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONMap_NilEncodesAsObject(t *testing.T) {
	var progress JSONMap

	b, err := json.Marshal(struct {
		Progress JSONMap `json:"progress"`
	}{progress})
	require.NoError(t, err)
	assert.JSONEq(t, `{"progress":{}}`, string(b))

	v, err := progress.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), v)
}
