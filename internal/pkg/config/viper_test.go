package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
app:
  tz: Europe/London
mail:
  username: ""
  send_timeout_seconds: 60
  verify_timeout_seconds: 30
modules:
  staff:
    admins: "pratham:Yatriwest,ketal:Yatri@euston"
  notification:
    broadcast_workers: 10
instrument:
  log_mask_fields: "password,authorization"
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	require.NoError(t, err)

	assert.Equal(t, "Europe/London", cfg.GetString("app.tz"))
	assert.Equal(t, 60*time.Second, cfg.GetSecond("mail.send_timeout_seconds"))
	assert.Equal(t, 30*time.Second, cfg.GetSecond("mail.verify_timeout_seconds"))
	assert.Equal(t, 10, cfg.GetInt("modules.notification.broadcast_workers"))
	assert.Equal(t, []string{"password", "authorization"}, cfg.GetArray("instrument.log_mask_fields"))
	assert.Equal(t, map[string]string{"pratham": "Yatriwest", "ketal": "Yatri@euston"}, cfg.GetMap("modules.staff.admins"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_EmptyType(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(testYAML))

	assert.Error(t, err)
}

func TestViper_EnvOverrides(t *testing.T) {
	t.Setenv("EMAIL_USER", "portal@yatri.test")
	t.Setenv("PORT", "3000")
	t.Setenv("YATRI_APP_TZ", "UTC")

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	require.NoError(t, err)

	assert.Equal(t, "portal@yatri.test", cfg.GetString("mail.username"))
	assert.Equal(t, "3000", cfg.GetString("app.server.http.port"))
	assert.Equal(t, "UTC", cfg.GetString("app.tz"))
}

func TestNewViper_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(cfgPath, []byte(testYAML), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("EMAIL_PASS=app-password\n"), 0o600))

	t.Setenv("EMAIL_PASS", "")
	require.NoError(t, os.Unsetenv("EMAIL_PASS"))

	cfg, err := NewViper(cfgPath, envPath, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "app-password", cfg.GetString("mail.password"))
}

func TestViper_ListsAndMaps(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(`
app:
  server:
    cors:
      - http://localhost:3000
      - " "
      - https://portal.yatri.test
modules:
  staff:
    admins:
      pratham: Yatriwest
plain:
  list: " a, ,b "
  pairs: "x:1:2, bad ,:nokey"
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://portal.yatri.test"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []string{"a", "b"}, cfg.GetArray("plain.list"))
	assert.Empty(t, cfg.GetArray("missing"))
	assert.Equal(t, map[string]string{"pratham": "Yatriwest"}, cfg.GetMap("modules.staff.admins"))
	assert.Equal(t, map[string]string{"x": "1:2"}, cfg.GetMap("plain.pairs"))
}
