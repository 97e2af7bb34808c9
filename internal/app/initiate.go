package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/yatri/database"
	"github.com/shandysiswandi/yatri/internal/pkg/config"
	"github.com/shandysiswandi/yatri/internal/pkg/goroutine"
	"github.com/shandysiswandi/yatri/internal/pkg/hash"
	"github.com/shandysiswandi/yatri/internal/pkg/idempotency"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
	"github.com/shandysiswandi/yatri/internal/pkg/router"
	"github.com/shandysiswandi/yatri/internal/pkg/uid"
	"github.com/shandysiswandi/yatri/internal/pkg/validator"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path, ".env")
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		LogLevel:         a.config.GetString("instrument.log_level"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initDatabase() {
	poolCfg, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	poolCfg.MaxConns = a.config.GetInt32("database.pool.max_conns")
	poolCfg.MinConns = a.config.GetInt32("database.pool.min_conns")
	poolCfg.MaxConnLifetime = a.config.GetSecond("database.pool.max_conn_lifetime_seconds")
	poolCfg.MaxConnIdleTime = a.config.GetSecond("database.pool.max_conn_idle_seconds")
	poolCfg.HealthCheckPeriod = a.config.GetSecond("database.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, poolCfg)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	// the database container usually comes up together with the service
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxDuration(a.config.GetSecond("database.connect_timeout_seconds"), b)

	if err := retry.Do(a.ctx, b, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := pool.Ping(pingCtx); err != nil {
			slog.Warn("database not ready yet", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(a.ctx, pool); err != nil {
		slog.Error("failed to migrate DB schema", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(a.cacheConn, a.config.GetString("redis.idempotency_prefix"))
}

func (a *App) initMail() {
	smtp, err := mail.NewSMTP(mail.SMTPConfig{
		Host:               a.config.GetString("mail.host"),
		Port:               a.config.GetInt("mail.port"),
		Username:           a.config.GetString("mail.username"),
		Password:           a.config.GetString("mail.password"),
		From:               a.config.GetString("mail.from"),
		FromName:           a.config.GetString("mail.from_name"),
		InsecureSkipVerify: a.config.GetBool("mail.insecure_skip_verify"),
		MaxConnections:     a.config.GetInt("mail.max_connections"),
		MaxMessages:        a.config.GetInt("mail.max_messages"),
		RateLimit:          a.config.GetInt("mail.rate_limit_per_minute"),
		VerifyTimeout:      a.config.GetSecond("mail.verify_timeout_seconds"),
		SendTimeout:        a.config.GetSecond("mail.send_timeout_seconds"),
	})
	if errors.Is(err, mail.ErrConfigurationMissing) {
		slog.Warn("email service disabled, relay account is not configured")
		a.mail = mail.NewDisabled(err)
		return
	}
	if err != nil {
		slog.Error("failed to init mail", "error", err)
		os.Exit(1)
	}

	// verification runs in the background so startup never blocks on the relay
	a.goroutine.Go(a.ctx, func(ctx context.Context) error {
		err := smtp.Verify(ctx)
		switch {
		case err == nil:
			slog.InfoContext(ctx, "email service ready", "host", a.config.GetString("mail.host"))
		case errors.Is(err, mail.ErrVerificationTimeout):
			slog.WarnContext(ctx, "email verification timed out, will retry on first send", "error", err)
		default:
			slog.ErrorContext(ctx, "email service verification failed", "error", err)
			smtp.MarkUnavailable(err)
		}

		return nil
	})

	a.mail = smtp
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
		Health:     a.health,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	addr := a.config.GetString("app.server.http.address")
	if port := a.config.GetString("app.server.http.port"); port != "" {
		addr = ":" + port
	}

	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := func(err error) string {
		if err != nil {
			return err.Error()
		}
		return router.HealthUp
	}

	checks := map[string]string{
		"database": status(a.dbConn.Ping(ctx)),
		"redis":    status(a.cacheConn.Ping(ctx).Err()),
		"email":    mailHealth(a.mail),
	}

	return checks
}

// mailHealth reports a transport left unconfigured as disabled, and one that
// failed at runtime as unavailable.
func mailHealth(m mail.Mail) string {
	if _, ok := m.(*mail.Disabled); ok {
		return router.HealthDisabled
	}
	if !m.Available() {
		return mail.ErrTransportUnavailable.Error()
	}
	return router.HealthUp
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				return a.cacheConn.Close()
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				a.dbConn.Close()

				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
