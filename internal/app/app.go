package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pieceful-app/pieceful-server/internal/config"
	"github.com/pieceful-app/pieceful-server/internal/database"
	"github.com/pieceful-app/pieceful-server/internal/localstore"
	"github.com/pieceful-app/pieceful-server/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	local      *localstore.Store
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	session    *config.Session
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db

	localDB, err := localstore.Open(config.LocalStorePath())
	if err != nil {
		return fmt.Errorf("unable to open local store: %w", err)
	}
	local, err := localstore.New(localDB, "pieceful")
	if err != nil {
		return fmt.Errorf("unable to init local store: %w", err)
	}
	a.local = local

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	session, err := config.NewSession()
	if err != nil {
		return err
	}
	a.session = session

	a.loadRoutes()

	server := &http.Server{
		Addr: config.Port(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Auth(cookies),
			middleware.Logging(a.logger),
		),
	}

	done := make(chan struct{})
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("unable to listen and serve", slog.Any("error", err))
		}
		close(done)
	}()

	a.logger.Info("server listening", slog.String("addr", config.Port()))
	select {
	case <-done:
		break
	case <-ctx.Done():
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		server.Shutdown(sCtx)
		cancel()
	}

	return nil
}
