package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/auditwarp/auditwarp/internal/db"
)

type Server struct {
	config *Config
	server *http.Server
	db     *sqlx.DB
	svc    *Services
}

func New(config *Config) (*Server, error) {
	if config.HTTP.Addr == "" {
		config.HTTP.Addr = DefaultAddr
	}

	dbOpts := []db.SqliteOption{}
	if config.DBPath != "" {
		dbOpts = append(dbOpts, db.WithPath(config.DBPath))
	}
	sqldb, err := db.NewSqliteDB(dbOpts...)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	svc, err := NewServices(config, sqldb)
	if err != nil {
		sqldb.Close()
		return nil, err
	}

	return &Server{
		config: config,
		db:     sqldb,
		svc:    svc,
		server: &http.Server{
			Addr:    config.HTTP.Addr,
			Handler: SetupRoutes(svc, config),
		},
	}, nil
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("auditwarp server start")
	defer slog.Info("auditwarp server stop")

	errCh := make(chan error, 1)
	go func() {
		if err := s.runHTTPServer(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		slog.Info("http server stopped")
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("auditwarp shutdown signal")
	if err := s.Stop(context.Background()); err != nil {
		slog.Error("auditwarp shutdown error", "error", err)
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.db.Close()
}

func (s *Server) runHTTPServer() error {
	if s.config.HTTP.CertFile != "" && s.config.HTTP.KeyFile != "" {
		slog.Info("server start tls", "addr", s.config.HTTP.Addr)
		return s.server.ListenAndServeTLS(s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	}
	slog.Info("server start http", "addr", s.config.HTTP.Addr)
	return s.server.ListenAndServe()
}
