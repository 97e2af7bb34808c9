package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of arbitrary keys, e.g. YATRI_APP_TZ for app.tz.
const EnvPrefix = "YATRI"

// envBindings maps configuration keys to the conventional environment
// variables that deployments already set.
var envBindings = map[string]string{
	"app.server.http.port": "PORT",
	"database.url":         "DATABASE_URL",
	"redis.url":            "REDIS_URL",
	"mail.username":        "EMAIL_USER",
	"mail.password":        "EMAIL_PASS",
	"modules.staff.admins": "ADMIN_ACCOUNTS",
}

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension.
// Each envFile is loaded with godotenv first; missing env files are skipped and
// variables already present in the process environment win.
func NewViper(pathFile string, envFiles ...string) (*Viper, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	v := viper.New()
	bindEnv(v)

	filename := path.Base(pathFile)
	filePath := path.Dir(pathFile)

	configName := path.Base(filename[:len(filename)-len(path.Ext(filename))])

	v.AddConfigPath(filePath)
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)
	bindEnv(v)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func loadEnvFiles(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		slog.Info("env file loaded", "path", file)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		//nolint:errcheck,gosec // only fails on an empty key
		v.BindEnv(key, env)
	}
}

func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

func (vc *Viper) GetInt32(key string) int32 {
	return vc.v.GetInt32(key)
}

func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetArray(key string) []string {
	var items []string
	if s, ok := vc.v.Get(key).(string); ok {
		items = strings.Split(s, ",")
	} else {
		items = vc.v.GetStringSlice(key)
	}

	return lo.Compact(lo.Map(items, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

func (vc *Viper) GetMap(key string) map[string]string {
	s, ok := vc.v.Get(key).(string)
	if !ok {
		return vc.v.GetStringMapString(key)
	}

	m := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(pair), ":")
		if found && k != "" {
			m[k] = v
		}
	}

	return m
}

// Close stops nothing; the file watcher lives as long as the process.
func (vc *Viper) Close() error {
	return nil
}
