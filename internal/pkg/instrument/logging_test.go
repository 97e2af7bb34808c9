package instrument

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAttr(t *testing.T) {
	keys := NewMasker([]string{" Password ", "", "EMAIL_PASS"})

	tests := []struct {
		name string
		attr slog.Attr
		want any
	}{
		{
			name: "top level key",
			attr: slog.String("password", "Yatri@euston"),
			want: "***",
		},
		{
			name: "json string body",
			attr: slog.String("body", `{"staffId":"Y-01","password":"secret"}`),
			want: `{"password":"***","staffId":"Y-01"}`,
		},
		{
			name: "nested map",
			attr: slog.Any("body", map[string]any{"inner": map[string]any{"email_pass": "x"}}),
			want: map[string]any{"inner": map[string]any{"email_pass": "***"}},
		},
		{
			name: "untouched",
			attr: slog.Int("status", 200),
			want: int64(200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maskAttr(tt.attr, keys)
			assert.Equal(t, tt.want, got.Value.Any())
		})
	}
}

func TestCorrelationID(t *testing.T) {
	ctx := SetCorrelationID(context.Background(), "cid-42")

	assert.Equal(t, "cid-42", GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestNew_Disabled(t *testing.T) {
	ins, err := New(context.Background(), &Config{ServiceName: "yatri", MaskFields: []string{"password"}})

	assert.NoError(t, err)
	assert.NotNil(t, ins.Tracer("test"))
	assert.NoError(t, ins.Shutdown(context.Background()))
}

func TestMasker_Value(t *testing.T) {
	m := NewMasker([]string{"password", "temporaryPassword"})

	got := m.Value(map[string]any{
		"staffId": "S100",
		"staff":   []any{map[string]any{"TemporaryPassword": "Tmp#123", "name": "Asha"}},
	})

	assert.Equal(t, map[string]any{
		"staffId": "S100",
		"staff":   []any{map[string]any{"TemporaryPassword": "***", "name": "Asha"}},
	}, got)
	assert.True(t, NewMasker([]string{" ", ""}).Empty())

	_, ok := m.JSON([]byte("not json"))
	assert.False(t, ok)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestSourceAttr(t *testing.T) {
	inside := sourceAttr(nil, slog.Any(slog.SourceKey, &slog.Source{File: "/src/yatri/internal/staff/usecase/login.go", Line: 12}))
	assert.Equal(t, "file", inside.Key)
	assert.Equal(t, "internal/staff/usecase/login.go:12", inside.Value.String())

	outside := sourceAttr(nil, slog.Any(slog.SourceKey, &slog.Source{File: "/go/pkg/mod/x/y.go", Line: 1}))
	assert.True(t, outside.Equal(slog.Attr{}))

	assert.Equal(t, "ts", sourceAttr(nil, slog.String(slog.TimeKey, "now")).Key)
}
