package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xtding233/keno-backend/internal/config"
	"github.com/xtding233/keno-backend/internal/events"
	"github.com/xtding233/keno-backend/internal/httpapi"
	"github.com/xtding233/keno-backend/internal/keno"
	"github.com/xtding233/keno-backend/internal/logger"
	"github.com/xtding233/keno-backend/internal/rpc"
	"github.com/xtding233/keno-backend/internal/session"
)

type serveOpts struct {
	configDir string
	profile   string
	httpAddr  string
	grpcAddr  string
	debug     bool
	watch     time.Duration
}

func newServeCmd() *cobra.Command {
	var o serveOpts
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and gRPC servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configDir, "config", "configs", "config base directory")
	f.StringVar(&o.profile, "profile", "", "profile under keno/profiles to merge over the default")
	f.StringVar(&o.httpAddr, "http", "", "HTTP listen address (overrides config)")
	f.StringVar(&o.grpcAddr, "grpc", "", "gRPC listen address (overrides config)")
	f.BoolVar(&o.debug, "debug", false, "enable debug logs")
	f.DurationVar(&o.watch, "watch", 2*time.Second, "config poll interval; 0 disables hot reload")
	return cmd
}

func sessionConfig(s config.Settings) session.Config {
	return session.Config{
		StartingBalance: s.StartingBalance,
		HistorySize:     s.HistorySize,
		Limits:          limitsOf(s),
	}
}

func limitsOf(s config.Settings) session.Limits {
	return session.Limits{MinBet: s.MinBet, MaxBet: s.MaxBet, DefaultBet: s.DefaultBet}
}

func runServe(ctx context.Context, o serveOpts) error {
	loader := config.NewLoader(o.configDir)
	settings, err := loader.Load(o.profile)
	if err != nil {
		return err
	}
	if o.httpAddr != "" {
		settings.HTTPAddr = o.httpAddr
	}
	if o.grpcAddr != "" {
		settings.GRPCAddr = o.grpcAddr
	}

	level := logger.ParseLevel(settings.LogLevel)
	if o.debug {
		level = slog.LevelDebug
	}
	logger.Init(&logger.Options{Level: level, TimeFormat: settings.TimeFormat})
	logger.Info("Config loaded", "version", settings.Version, "profile", o.profile)

	var emitter events.Emitter = events.Nop{}
	if settings.NATSURL != "" {
		ne, err := events.NewNATSEmitter(settings.NATSURL, settings.Subject)
		if err != nil {
			return err
		}
		emitter = ne
		logger.Info("Publishing rounds to NATS", "url", settings.NATSURL, "subject", settings.Subject)
	}
	defer emitter.Close()

	manager := session.NewManager(keno.NewEngine(), sessionConfig(settings), session.WithEmitter(emitter))

	if o.watch > 0 {
		w := config.NewFileWatcher(loader.Paths().Files(o.profile), o.watch, func(path string) {
			loader.Invalidate()
			next, err := loader.Load(o.profile)
			if err != nil {
				logger.Warn("Config reload rejected", "path", path, "err", err)
				return
			}
			manager.ApplyLimits(limitsOf(next))
			logger.Info("Config reloaded", "path", path, "min_bet", next.MinBet, "max_bet", next.MaxBet)
		})
		w.Start()
		defer w.Stop()
	}

	httpSrv := &http.Server{
		Addr:              settings.HTTPAddr,
		Handler:           httpapi.NewRouter(manager),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := rpc.NewServer(rpc.NewService(manager))
	lis, err := net.Listen("tcp", settings.GRPCAddr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("HTTP listening", "addr", settings.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("gRPC listening", "addr", settings.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-errCh:
		logger.Error("Server failed", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := httpSrv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("HTTP shutdown", "err", serr)
	}
	grpcSrv.GracefulStop()
	return err
}
