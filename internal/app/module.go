package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/yatri/internal/notification"
	"github.com/shandysiswandi/yatri/internal/staff"
)

func (a *App) initModules() {
	notifier, err := notification.New(notification.Dependency{
		DBConn:      a.dbConn,
		Mail:        a.mail,
		Idempotency: a.idemp,
		Router:      a.router,
		Config:      a.config,
		Instrument:  a.ins,
		Validator:   a.validator,
	})
	if err != nil {
		slog.Error("failed to init module notification", "error", err)
		os.Exit(1)
	}

	if err := staff.New(staff.Dependency{
		DBConn:     a.dbConn,
		Notifier:   notifier,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		Bcrypt:     a.bcrypt,
		Validator:  a.validator,
	}); err != nil {
		slog.Error("failed to init module staff", "error", err)
		os.Exit(1)
	}
}
