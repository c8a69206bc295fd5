package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cse-motors/dealership/internal/api"
	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/pipeline"
	"github.com/cse-motors/dealership/internal/api/validation"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/auth"
	"github.com/cse-motors/dealership/internal/core/ports"
	"github.com/cse-motors/dealership/internal/core/service"
	"github.com/cse-motors/dealership/internal/infrastructure/db/redis"
	"github.com/cse-motors/dealership/internal/pkg/config"
	"github.com/cse-motors/dealership/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Output:  os.Stdout,
		Service: "dealership",
	})

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	probes := map[string]handler.Probe{"store": st.probe}

	// Sessions still expire on their own without the revocation list, so a
	// missing Redis only degrades logout.
	var revoker ports.SessionRevoker
	redisClient, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("session revocation disabled")
	} else {
		defer redisClient.Close()
		revoker = redis.NewRevoker(redisClient, cfg.Session.TTL)
		probes["redis"] = redis.Ping(redisClient)
	}

	hasher := auth.NewHasher(cfg.Session.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)

	accounts := service.NewAccountService(st.accounts, hasher, tokens)
	inventory := service.NewInventoryService(st.classes, st.items)
	checker := service.NewConsistencyChecker(st.accounts, st.classes, hasher)

	renderer, err := view.NewRenderer()
	if err != nil {
		return oops.Code("TEMPLATES_INVALID").Wrap(err)
	}
	validator := validation.New(checker)
	pages := handler.NewPages(inventory, log)
	runner := pipeline.NewRunner(validator, pages.Nav, middleware.CookieOptions{
		MaxAge: tokens.CookieMaxAge(),
		Secure: !cfg.Development(),
	}, log)

	e := api.NewRouter(api.Deps{
		Log:       log,
		Renderer:  renderer,
		Validator: validator,
		Tokens:    tokens,
		Revoker:   revoker,
		Pages:     pages,
		Accounts:  handler.NewAccountHandler(accounts, tokens, revoker, runner, pages, log),
		Inventory: handler.NewInventoryHandler(inventory, runner, pages),
		Health:    handler.NewHealthHandler(probes),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return oops.Code("SERVER_FAILED").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}
