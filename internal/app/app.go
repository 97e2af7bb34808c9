package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	bcrypt    hash.Hash
	uuid      uid.StringID

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
