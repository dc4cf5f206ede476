package main

//
//  @title           intradaypulse API
//  @version         1.0
//  @description     Daily aggregates of Alpha Vantage intraday data with premium-to-free tier fallback.
//  @termsOfService  https://github.com/guttosm/intradaypulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/intradaypulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        intraday
//  @tag.description Daily aggregates of intraday market data
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/intradaypulse/config"
	_ "github.com/guttosm/intradaypulse/docs" // swagger docs
	"github.com/guttosm/intradaypulse/internal/app"
	"github.com/guttosm/intradaypulse/internal/domain/dto"
	"github.com/guttosm/intradaypulse/internal/logger"
	"github.com/guttosm/intradaypulse/internal/service"
)

// newServer builds the HTTP server. WriteTimeout leaves headroom over the
// per-request timeout so that timed-out requests can still be answered.
func newServer(router http.Handler, port string, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// serve runs the server until ctx is cancelled (SIGINT/SIGTERM in production),
// then shuts it down gracefully and runs cleanup.
//
// Both the listener and the shutdown watcher run in an errgroup: a listener
// failure cancels the watcher, and a cancelled ctx stops the listener.
func serve(ctx context.Context, server *http.Server, cleanup func()) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		cleanup()
		if err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		logger.L().Info().Msg("server exited gracefully")
		return nil
	})

	return g.Wait()
}

// fetchOnce runs a single fetch-then-reduce for symbol and writes the JSON
// array of daily aggregates to out.
func fetchOnce(ctx context.Context, svc service.IntradayService, symbol string, out io.Writer) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return errors.New("--symbol is required in fetch mode")
	}

	result, err := svc.GetDailyAggregates(ctx, symbol)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewDayAggregateResponses(result.Days))
}

// main is the entry point of the intradaypulse application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the REST API (default).
//   - fetch: Fetches and aggregates one symbol, printing JSON to stdout.
//
// Flags:
//   - --mode:   Execution mode ("api" or "fetch"). Default: "api".
//   - --symbol: Ticker symbol for fetch mode.
//   - --port:   Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Configure(logger.Options{Level: config.AppConfig.Log.Level, Pretty: config.AppConfig.Log.Pretty})

	mode := flag.String("mode", "api", "Mode: api or fetch")
	symbol := flag.String("symbol", "", "Ticker symbol (fetch mode)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := newServer(router, *port, config.AppConfig.Server.RequestTimeout)
		if err := serve(ctx, server, cleanup); err != nil {
			logger.L().Fatal().Err(err).Msg("server error")
		}

	case "fetch":
		svc, client, err := app.NewIntradayService(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer client.CloseIdleConnections()

		// Logs go to stdout by default; keep stdout for the JSON result.
		logger.Configure(logger.Options{Level: config.AppConfig.Log.Level, Pretty: config.AppConfig.Log.Pretty, Out: os.Stderr})

		if err := fetchOnce(ctx, svc, *symbol, os.Stdout); err != nil {
			logger.L().Error().Err(err).Str("symbol", *symbol).Msg("fetch failed")
			stop()
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
