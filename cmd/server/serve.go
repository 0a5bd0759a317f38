package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"resaleops/internal/adapters/executor"
	httpadapter "resaleops/internal/adapters/http"
	"resaleops/internal/adapters/memory"
	pg "resaleops/internal/adapters/postgres"
	"resaleops/internal/config"
	"resaleops/internal/ports"
	"resaleops/internal/services/lifecycle"
	"resaleops/internal/workers/jobrunner"
)

func newServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the job runner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log := cfg.NewLogger()
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clock := clockwork.NewRealClock()

	var store ports.JobStore
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("db connect error: %w", err)
		}
		defer db.Close()
		store = db
	} else {
		log.Warn("DATABASE_URL not set, using in-memory job store")
		store = memory.NewJobStore(clock)
	}

	var exec ports.Executor = executor.Noop{Log: log}
	if cfg.ExecutorURL != "" {
		exec = executor.NewHTTPClient(executor.Config{
			BaseURL: cfg.ExecutorURL,
			Timeout: cfg.ExecutorTimeout,
			Retries: uint64(cfg.ExecutorRetries),
		}, log)
	} else {
		log.Warn("EXECUTOR_URL not set, dispatched jobs are acknowledged locally")
	}

	jobs := lifecycle.New(store, exec,
		lifecycle.WithClock(clock),
		lifecycle.WithLogger(log),
		lifecycle.WithDefaultMaxRetries(cfg.DefaultMaxRetries),
	)

	runnerDone := make(chan struct{})
	if cfg.DispatchWorkers > 0 {
		runner := jobrunner.New(store, jobs, jobrunner.Config{
			Workers:           cfg.DispatchWorkers,
			PollInterval:      cfg.PollInterval,
			ProcessingTimeout: cfg.ProcessingTimeout,
			RetryBackoff:      cfg.DispatchBackoff,
			MaxRetryBackoff:   cfg.DispatchBackoffMax,
		}, clock, log)
		go func() {
			defer close(runnerDone)
			runner.Run(ctx)
		}()
	} else {
		close(runnerDone)
	}

	r := chi.NewRouter()
	r.Mount("/", httpadapter.New(jobs, log).Routes())
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.WithFields(logrus.Fields{"addr": cfg.ListenAddr, "env": cfg.Env}).Info("listening")

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			cancel()
			<-runnerDone
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	cancel()
	<-runnerDone
	return nil
}
